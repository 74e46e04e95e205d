package screen

import (
	"encoding/json"

	"github.com/wxmap/stations-live/geo"
	"github.com/wxmap/stations-live/nws"
	"github.com/wxmap/stations-live/units"
)

// Status is the callout lifecycle state.
type Status int

const (
	Idle Status = iota
	Loading
	Ready
	Errored
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Errored:
		return "error"
	default:
		return "idle"
	}
}

// MarshalJSON encodes the status as its wire label.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a wire label back into a Status.
func (s *Status) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	switch label {
	case "loading":
		*s = Loading
	case "ready":
		*s = Ready
	case "error":
		*s = Errored
	default:
		*s = Idle
	}
	return nil
}

// DisplayObservation is the formatted, display-ready subset of an
// observation. Optional fields are nil when the station did not report
// the source value or the screen variant does not render them.
type DisplayObservation struct {
	TempF         string  `json:"tempF"`
	Conditions    string  `json:"conditions,omitempty"`
	WindSpeedMph  *int    `json:"windSpeedMph,omitempty"`
	WindDirection *string `json:"windDirection,omitempty"`
	HumidityPct   *int    `json:"humidityPct,omitempty"`
}

// Callout is the single active popup view-model. It is replaced
// wholesale on each selection and cleared to Idle on dismissal; it is
// never mutated in place across states visible to consumers.
type Callout struct {
	StationID   string              `json:"stationId,omitempty"`
	StationName string              `json:"stationName,omitempty"`
	Anchor      geo.Point           `json:"anchor"`
	Status      Status              `json:"status"`
	Message     string              `json:"message,omitempty"`
	Observation *DisplayObservation `json:"observation,omitempty"`
}

// displayObservation derives the renderable fields from a raw
// observation. Each derived field is computed only if its source value
// is present, independent of its siblings. The fetcher guarantees
// Temperature.Value is non-nil by the time an observation reaches here.
func displayObservation(obs *nws.Observation, fields FieldSet) DisplayObservation {
	d := DisplayObservation{TempF: units.ToFahrenheit(*obs.Temperature.Value)}
	if fields.Conditions {
		d.Conditions = obs.TextDescription
	}
	if fields.Wind {
		d.WindSpeedMph = units.MetersPerSecondToMph(obs.WindSpeed.Value)
		d.WindDirection = units.DegreesToCardinal(obs.WindDirection.Value)
	}
	if fields.Humidity {
		d.HumidityPct = units.RoundPercent(obs.RelativeHumidity.Value)
	}
	return d
}
