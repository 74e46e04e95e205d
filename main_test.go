package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STATION_LIMIT", "")
	t.Setenv("STATION_FILTER", "")
	t.Setenv("DEV_MODE", "")

	config := loadConfig()

	assert.Equal(t, "3000", config.Port)
	assert.Equal(t, 0, config.StationLimit)
	assert.False(t, config.AllStations)
	assert.False(t, config.DevMode)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("STATION_LIMIT", "750")
	t.Setenv("STATION_FILTER", "all")
	t.Setenv("DEV_MODE", "1")
	t.Setenv("NWS_BASE_URL", "http://localhost:9999")

	config := loadConfig()

	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, 750, config.StationLimit)
	assert.True(t, config.AllStations)
	assert.True(t, config.DevMode)
	assert.Equal(t, "http://localhost:9999", config.BaseURL)
}

func TestLoadConfigIgnoresInvalidLimit(t *testing.T) {
	t.Setenv("STATION_LIMIT", "not-a-number")
	assert.Equal(t, 0, loadConfig().StationLimit)

	t.Setenv("STATION_LIMIT", "-5")
	assert.Equal(t, 0, loadConfig().StationLimit)
}

func TestScreenConfigVariants(t *testing.T) {
	contiguous := screenConfig(Config{})
	assert.Equal(t, 2000, contiguous.StationLimit)
	assert.True(t, contiguous.Fields.Wind)

	all := screenConfig(Config{AllStations: true})
	assert.Equal(t, 500, all.StationLimit)
	assert.False(t, all.Fields.Wind)
}

func TestScreenConfigLimitOverride(t *testing.T) {
	cfg := screenConfig(Config{StationLimit: 123})
	assert.Equal(t, 123, cfg.StationLimit)
	// The override changes the page size only, not the variant.
	assert.True(t, cfg.Fields.Wind)
}
