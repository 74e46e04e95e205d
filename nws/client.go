// Package nws provides access to the National Weather Service API
// (api.weather.gov) station and observation endpoints.
package nws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/wxmap/stations-live/store"
)

const (
	// DefaultBaseURL is the production NWS API endpoint.
	DefaultBaseURL = "https://api.weather.gov"

	// The NWS API rejects requests without a User-Agent.
	defaultUserAgent = "stations-live (github.com/wxmap/stations-live)"
)

// ErrObservationNotAvailable reports that the station responded but its
// latest observation lacks a temperature reading. It is distinct from
// transport failures so callers can surface a different message.
var ErrObservationNotAvailable = errors.New("observation not available")

// Client provides access to NWS API endpoints.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker
}

// NewClient creates a new NWS API client. Empty arguments fall back to
// the production endpoint and the default User-Agent.
func NewClient(baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: 10 * time.Second},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "nws",
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		}),
	}
}

// FetchStations fetches a single bounded page of station metadata.
// There is no pagination: stations beyond the page limit are absent.
func (c *Client) FetchStations(ctx context.Context, limit int) ([]store.Station, error) {
	reqURL := fmt.Sprintf("%s/stations?limit=%d", c.baseURL, limit)

	var payload stationsResponse
	if err := c.getJSON(ctx, reqURL, &payload); err != nil {
		return nil, err
	}

	stations := make([]store.Station, 0, len(payload.Features))
	for _, f := range payload.Features {
		if f.Properties.StationIdentifier == "" || len(f.Geometry.Coordinates) < 2 {
			continue
		}
		stations = append(stations, store.Station{
			ID:        f.Properties.StationIdentifier,
			Name:      f.Properties.Name,
			Longitude: f.Geometry.Coordinates[0],
			Latitude:  f.Geometry.Coordinates[1],
		})
	}
	return stations, nil
}

// FetchLatestObservation fetches the most recent observation for one
// station. A payload without a temperature reading is reported as
// ErrObservationNotAvailable; everything else that goes wrong is a
// transport-level failure.
func (c *Client) FetchLatestObservation(ctx context.Context, stationID string) (*Observation, error) {
	reqURL := fmt.Sprintf("%s/stations/%s/observations/latest", c.baseURL, url.PathEscape(stationID))

	var payload observationResponse
	if err := c.getJSON(ctx, reqURL, &payload); err != nil {
		return nil, err
	}

	obs := payload.Properties
	if obs.Temperature.Value == nil {
		return nil, ErrObservationNotAvailable
	}
	return &obs, nil
}

// getJSON fetches and decodes a JSON payload. Server-side failures
// count against the circuit breaker so a broken upstream fails fast
// instead of being hammered; there is no retry.
func (c *Client) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/geo+json")

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		return fmt.Errorf("failed to fetch: %w", err)
	}

	resp := result.(*http.Response)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}
	return nil
}
