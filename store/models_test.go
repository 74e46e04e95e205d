package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContiguousUS(t *testing.T) {
	tests := []struct {
		id   string
		keep bool
	}{
		{"KJFK", true},
		{"KDEN", true},
		{"KSLC", true},
		{"PHNL", false}, // Hawaii
		{"PAJN", false}, // Alaska
		{"K1", false},   // too short
		{"KJFKX", false},
		{"kjfk", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.keep, ContiguousUS(Station{ID: tt.id}))
		})
	}
}

func TestFilterStations(t *testing.T) {
	stations := []Station{
		{ID: "KJFK", Name: "New York/JFK"},
		{ID: "PHNL", Name: "Honolulu"},
		{ID: "KDEN", Name: "Denver"},
	}

	filtered := FilterStations(stations, ContiguousUS)

	assert.Len(t, filtered, 2)
	assert.Equal(t, "KJFK", filtered[0].ID)
	assert.Equal(t, "KDEN", filtered[1].ID)
}

func TestFilterStationsKeepAll(t *testing.T) {
	stations := []Station{{ID: "KJFK"}, {ID: "PHNL"}}

	assert.Len(t, FilterStations(stations, KeepAll), 2)
	// nil filter behaves like KeepAll
	assert.Len(t, FilterStations(stations, nil), 2)
}
