package nws

// The stations endpoint returns a GeoJSON FeatureCollection; only the
// fields the directory needs are decoded.
type stationsResponse struct {
	Features []stationFeature `json:"features"`
}

type stationFeature struct {
	Geometry struct {
		// GeoJSON order: [longitude, latitude]
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties struct {
		StationIdentifier string `json:"stationIdentifier"`
		Name              string `json:"name"`
	} `json:"properties"`
}

// QuantitativeValue is the NWS measurement envelope. Value is null when
// the station did not report that sensor, independently of its
// siblings.
type QuantitativeValue struct {
	Value    *float64 `json:"value"`
	UnitCode string   `json:"unitCode"`
}

// Observation is the latest set of sensor readings published by a
// station. Observations are transient; one is fetched per selection
// and discarded when superseded.
type Observation struct {
	Timestamp        string            `json:"timestamp"`
	TextDescription  string            `json:"textDescription"`
	Temperature      QuantitativeValue `json:"temperature"`
	WindSpeed        QuantitativeValue `json:"windSpeed"`
	WindDirection    QuantitativeValue `json:"windDirection"`
	RelativeHumidity QuantitativeValue `json:"relativeHumidity"`
}

type observationResponse struct {
	Properties Observation `json:"properties"`
}
