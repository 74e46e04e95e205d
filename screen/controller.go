// Package screen owns the callout view-model and its state machine:
// Idle, Loading (anchor known, observation pending), Ready, Errored.
package screen

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wxmap/stations-live/geo"
	"github.com/wxmap/stations-live/logger"
	"github.com/wxmap/stations-live/metrics"
	"github.com/wxmap/stations-live/nws"
	"github.com/wxmap/stations-live/store"
)

// ObservationCounter and ObservationErrorCounter, when set by main,
// receive atomic per-fetch increments for the terminal HUD.
var (
	ObservationCounter      *int64
	ObservationErrorCounter *int64
)

// ObservationFetcher fetches the latest observation for one station.
type ObservationFetcher interface {
	FetchLatestObservation(ctx context.Context, stationID string) (*nws.Observation, error)
}

// Projector converts a geographic coordinate into screen space.
// geo.Viewport is the production implementation.
type Projector interface {
	Project(geo.Coordinate) geo.Point
}

// Controller orchestrates one interactive map session. It owns exactly
// one active callout at a time; a new selection replaces it wholesale
// and a dismissal clears it.
//
// Every fetch is tagged with the generation current at selection time.
// A resolution only applies while its generation is still current, so a
// slow fetch for a previously selected station can never overwrite a
// newer selection. Superseded fetches are not cancelled, their results
// are discarded.
type Controller struct {
	directory *store.Directory
	fetcher   ObservationFetcher
	fields    FieldSet

	mu         sync.Mutex
	projector  Projector
	generation uint64
	callout    *Callout
	emit       func(Callout)
}

// NewController creates a controller for one session. emit is invoked
// with every view-model the session should render; it may be nil for
// callers that poll Callout instead.
func NewController(directory *store.Directory, fetcher ObservationFetcher, fields FieldSet, emit func(Callout)) *Controller {
	return &Controller{
		directory: directory,
		fetcher:   fetcher,
		fields:    fields,
		emit:      emit,
	}
}

// SetProjector installs the projection for the session's current
// viewport. Selections made before a viewport is known are rejected.
func (c *Controller) SetProjector(p Projector) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projector = p
}

// Callout returns a snapshot of the active view-model, if any.
func (c *Controller) Callout() (Callout, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.callout == nil {
		return Callout{}, false
	}
	return *c.callout, true
}

// Select handles a marker tap. The anchor is projected synchronously,
// before the observation fetch is issued, so the callout renders
// immediately in its Loading state at the right position; it is never
// recomputed for the same selection.
func (c *Controller) Select(ctx context.Context, stationID string) error {
	station, ok := c.directory.Get(stationID)
	if !ok {
		return fmt.Errorf("unknown station %q", stationID)
	}

	c.mu.Lock()
	if c.projector == nil {
		c.mu.Unlock()
		return errors.New("no viewport configured")
	}
	anchor := c.projector.Project(geo.Coordinate{Latitude: station.Latitude, Longitude: station.Longitude})

	c.generation++
	generation := c.generation
	callout := Callout{
		StationID:   station.ID,
		StationName: station.Name,
		Anchor:      anchor,
		Status:      Loading,
	}
	c.callout = &callout
	c.emitLocked(callout)
	c.mu.Unlock()

	metrics.CalloutTransitions.WithLabelValues(Loading.String()).Inc()

	go c.resolve(ctx, generation, callout)
	return nil
}

// Dismiss handles a map background tap: the callout clears to Idle
// unconditionally and any in-flight fetch result becomes stale.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	c.generation++
	c.callout = nil
	c.emitLocked(Callout{Status: Idle})
	c.mu.Unlock()

	metrics.CalloutTransitions.WithLabelValues(Idle.String()).Inc()
}

// resolve runs the observation fetch and applies the result if this
// selection is still the active one.
func (c *Controller) resolve(ctx context.Context, generation uint64, callout Callout) {
	start := time.Now()
	obs, err := c.fetcher.FetchLatestObservation(ctx, callout.StationID)
	metrics.ObservationFetchDuration.Observe(time.Since(start).Seconds())

	if ObservationCounter != nil {
		atomic.AddInt64(ObservationCounter, 1)
	}
	if ObservationErrorCounter != nil && err != nil && !errors.Is(err, nws.ErrObservationNotAvailable) {
		atomic.AddInt64(ObservationErrorCounter, 1)
	}

	switch {
	case errors.Is(err, nws.ErrObservationNotAvailable):
		callout.Status = Errored
		callout.Message = "No current observation available"
		metrics.ObservationFetchTotal.WithLabelValues("not_available").Inc()
	case err != nil:
		logger.Error(err, "observation fetch failed for %s: %v", callout.StationID, err)
		callout.Status = Errored
		callout.Message = "Could not load current conditions"
		metrics.ObservationFetchTotal.WithLabelValues("error").Inc()
	default:
		display := displayObservation(obs, c.fields)
		callout.Status = Ready
		callout.Observation = &display
		metrics.ObservationFetchTotal.WithLabelValues("success").Inc()
	}

	c.mu.Lock()
	if generation != c.generation {
		c.mu.Unlock()
		logger.Muted("Discarding stale observation for %s", callout.StationID)
		metrics.StaleResolutionsDiscarded.Inc()
		return
	}
	c.callout = &callout
	c.emitLocked(callout)
	c.mu.Unlock()

	metrics.CalloutTransitions.WithLabelValues(callout.Status.String()).Inc()
}

// emitLocked publishes a view-model while holding the mutex so emission
// order matches state transition order.
func (c *Controller) emitLocked(callout Callout) {
	if c.emit != nil {
		c.emit(callout)
	}
}
