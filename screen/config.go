package screen

import "github.com/wxmap/stations-live/store"

// FieldSet selects which derived observation fields a screen variant
// renders. Temperature is always shown.
type FieldSet struct {
	Conditions bool
	Wind       bool
	Humidity   bool
}

// Config parameterizes the map screen. The two historical variants of
// this screen differed only in station page size, identifier filtering,
// callout sizing and which derived fields they rendered; they collapse
// into one component driven by this struct.
type Config struct {
	// StationLimit is the single bounded page requested from the
	// directory endpoint.
	StationLimit int

	// StationFilter decides which fetched stations are kept.
	StationFilter store.Filter

	// CalloutMinHeight is the minimum callout height in pixels.
	CalloutMinHeight int

	Fields FieldSet
}

// ContiguousUSConfig requests a large page and keeps only 4-letter
// "K"-prefixed METAR identifiers; the callout renders every derived
// field.
func ContiguousUSConfig() Config {
	return Config{
		StationLimit:     2000,
		StationFilter:    store.ContiguousUS,
		CalloutMinHeight: 120,
		Fields:           FieldSet{Conditions: true, Wind: true, Humidity: true},
	}
}

// AllStationsConfig requests a small unfiltered page and renders a
// compact callout without wind details.
func AllStationsConfig() Config {
	return Config{
		StationLimit:     500,
		StationFilter:    store.KeepAll,
		CalloutMinHeight: 90,
		Fields:           FieldSet{Conditions: true, Humidity: true},
	}
}
