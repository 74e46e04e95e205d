package store

import "regexp"

// Station is a fixed weather-observing location identified by a short
// code. Stations are immutable for the lifetime of the session.
type Station struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Coordinate order in upstream GeoJSON is [longitude, latitude]; the
// nws package handles the swap before a Station is constructed.

// Filter decides which stations from a directory fetch are kept.
type Filter func(Station) bool

var metarPattern = regexp.MustCompile(`^K[A-Z]{3}$`)

// KeepAll keeps every station the fetch returned.
func KeepAll(Station) bool { return true }

// ContiguousUS keeps 4-letter "K"-prefixed identifiers, the METAR codes
// assigned to contiguous-US stations. "KJFK" passes, "PHNL" and "K1"
// do not.
func ContiguousUS(s Station) bool { return metarPattern.MatchString(s.ID) }

// FilterStations applies keep to stations, preserving order.
func FilterStations(stations []Station, keep Filter) []Station {
	if keep == nil {
		keep = KeepAll
	}
	filtered := make([]Station, 0, len(stations))
	for _, s := range stations {
		if keep(s) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
