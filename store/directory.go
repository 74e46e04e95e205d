// Package store owns the in-memory station collection for the session.
package store

import (
	"sort"
	"strconv"
	"sync"

	"github.com/mitchellh/hashstructure"
)

// Directory holds the station collection loaded once at startup.
//
// Concurrency model: the collection is written exactly once, by
// Publish, and read-only afterwards. Publishing an empty collection is
// valid; it is how a failed directory load degrades (no markers, app
// still Ready).
type Directory struct {
	mu       sync.RWMutex
	stations []Station
	byID     map[string]Station
	etag     string
	ready    bool
}

// NewDirectory returns an empty, not-yet-ready directory.
func NewDirectory() *Directory {
	return &Directory{byID: make(map[string]Station)}
}

// Publish installs the station collection and marks the directory
// ready. Stations are sorted by identifier for stable listings and the
// collection ETag is precomputed.
func (d *Directory) Publish(stations []Station) error {
	sorted := make([]Station, len(stations))
	copy(sorted, stations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	hash, err := hashstructure.Hash(sorted, nil)
	if err != nil {
		return err
	}

	byID := make(map[string]Station, len(sorted))
	for _, s := range sorted {
		byID[s.ID] = s
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.stations = sorted
	d.byID = byID
	d.etag = "\"" + strconv.FormatUint(hash, 10) + "\""
	d.ready = true
	return nil
}

// Stations returns a copy of the collection to keep callers from
// mutating session state.
func (d *Directory) Stations() []Station {
	d.mu.RLock()
	defer d.mu.RUnlock()

	result := make([]Station, len(d.stations))
	copy(result, d.stations)
	return result
}

// Get looks up a station by identifier.
func (d *Directory) Get(id string) (Station, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s, ok := d.byID[id]
	return s, ok
}

// Len reports how many stations are loaded.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.stations)
}

// ETag returns the precomputed collection ETag, empty until published.
func (d *Directory) ETag() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.etag
}

// IsReady reports whether the startup load has resolved. Ready does not
// imply the collection is non-empty.
func (d *Directory) IsReady() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ready
}
