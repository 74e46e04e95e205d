package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wxmap/stations-live/nws"
	"github.com/wxmap/stations-live/screen"
	"github.com/wxmap/stations-live/store"
)

func fptr(v float64) *float64 { return &v }

// fakeFetcher resolves observations from a fixed map.
type fakeFetcher struct {
	obs  map[string]*nws.Observation
	errs map[string]error
}

func (f *fakeFetcher) FetchLatestObservation(_ context.Context, stationID string) (*nws.Observation, error) {
	if err, ok := f.errs[stationID]; ok {
		return nil, err
	}
	if obs, ok := f.obs[stationID]; ok {
		return obs, nil
	}
	return nil, errors.New("no fixture for " + stationID)
}

func testFetcher() *fakeFetcher {
	return &fakeFetcher{
		obs: map[string]*nws.Observation{
			"KSLC": {
				TextDescription:  "Clear",
				Temperature:      nws.QuantitativeValue{Value: fptr(20)},
				WindSpeed:        nws.QuantitativeValue{Value: fptr(5)},
				WindDirection:    nws.QuantitativeValue{Value: fptr(180)},
				RelativeHumidity: nws.QuantitativeValue{Value: fptr(40)},
			},
		},
		errs: map[string]error{
			"KBOI": nws.ErrObservationNotAvailable,
			"KLAS": errors.New("connection refused"),
		},
	}
}

func testTemplateFS() fstest.MapFS {
	return fstest.MapFS{
		"map.html.tmpl": &fstest.MapFile{
			Data: []byte(`<!DOCTYPE html><html><head><title>{{.Title}}</title></head><body data-stations="{{.StationCount}}"></body></html>`),
		},
	}
}

func setupTestServer(t *testing.T) *http.Server {
	t.Helper()

	directory := store.NewDirectory()
	require.NoError(t, directory.Publish([]store.Station{
		{ID: "KDEN", Name: "Denver", Latitude: 39.85, Longitude: -104.66},
		{ID: "KSLC", Name: "Salt Lake City", Latitude: 40.77, Longitude: -111.97},
	}))

	staticFS := fstest.MapFS{
		"map.css": &fstest.MapFile{Data: []byte(`body { margin: 0; }`)},
	}

	app, err := Start(ServerConfig{
		Directory:     directory,
		Fetcher:       testFetcher(),
		Screen:        screen.ContiguousUSConfig(),
		StaticFS:      staticFS,
		TemplateFS:    testTemplateFS(),
		DevMode:       false,
		SentryEnabled: false,
	})
	require.NoError(t, err)

	return &http.Server{Handler: app}
}

func TestHealthCheckReady(t *testing.T) {
	srv := setupTestServer(t)

	req := httptest.NewRequest("GET", "/healthcheck", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"stations":2`)
}

func TestHealthCheckBeforeStationsLoad(t *testing.T) {
	app, err := Start(ServerConfig{
		Directory:  store.NewDirectory(),
		Fetcher:    testFetcher(),
		Screen:     screen.ContiguousUSConfig(),
		StaticFS:   fstest.MapFS{},
		TemplateFS: testTemplateFS(),
	})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/healthcheck", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthCheckReadyWithEmptyDirectory(t *testing.T) {
	directory := store.NewDirectory()
	require.NoError(t, directory.Publish(nil))

	app, err := Start(ServerConfig{
		Directory:  directory,
		Fetcher:    testFetcher(),
		Screen:     screen.ContiguousUSConfig(),
		StaticFS:   fstest.MapFS{},
		TemplateFS: testTemplateFS(),
	})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/healthcheck", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	// An empty directory after a failed load still serves traffic.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"stations":0`)
}

func TestMapRoute(t *testing.T) {
	srv := setupTestServer(t)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Stations Live")
	assert.Contains(t, rec.Body.String(), `data-stations="2"`)
	assert.NotEmpty(t, rec.Header().Get("ETag"))
}

func TestMapRouteNotModified(t *testing.T) {
	srv := setupTestServer(t)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestStationsRoute(t *testing.T) {
	srv := setupTestServer(t)

	req := httptest.NewRequest("GET", "/stations.json", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var data StationsData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Equal(t, 2, data.Count)
	require.Len(t, data.Stations, 2)
	// Sorted by identifier.
	assert.Equal(t, "KDEN", data.Stations[0].ID)
	assert.Equal(t, "KSLC", data.Stations[1].ID)
}

func TestStationsRouteNotModified(t *testing.T) {
	srv := setupTestServer(t)

	req := httptest.NewRequest("GET", "/stations.json", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req = httptest.NewRequest("GET", "/stations.json", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotModified, rec.Code)
}

func TestObservationRoute(t *testing.T) {
	srv := setupTestServer(t)

	req := httptest.NewRequest("GET", "/observations/KSLC", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Clear")
}

func TestObservationRouteNotAvailable(t *testing.T) {
	srv := setupTestServer(t)

	req := httptest.NewRequest("GET", "/observations/KBOI", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No current observation available")
}

func TestObservationRouteUpstreamFailure(t *testing.T) {
	srv := setupTestServer(t)

	req := httptest.NewRequest("GET", "/observations/KLAS", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Could not load current conditions")
}

func TestVersionRoute(t *testing.T) {
	srv := setupTestServer(t)

	req := httptest.NewRequest("GET", "/version", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var info VersionInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "dev", info.Version)
	assert.NotEmpty(t, info.GoVersion)
}

func TestStaticFiles(t *testing.T) {
	srv := setupTestServer(t)

	req := httptest.NewRequest("GET", "/s/map.css", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "margin: 0")
}

func TestMetricsRoute(t *testing.T) {
	srv := setupTestServer(t)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
	assert.Contains(t, rec.Body.String(), "stations_sessions_active")
}

func readSessionEvent(t *testing.T, conn *websocket.Conn) sessionEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event sessionEvent
	require.NoError(t, conn.ReadJSON(&event))
	return event
}

func TestSessionSelectAndDismiss(t *testing.T) {
	srv := setupTestServer(t)
	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/session"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type":   "viewport",
		"center": map[string]float64{"latitude": 40, "longitude": -108},
		"span":   map[string]float64{"latDelta": 10, "lonDelta": 20},
		"width":  390,
		"height": 844,
	}))

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type":    "select",
		"station": "KSLC",
	}))

	loading := readSessionEvent(t, conn)
	assert.Equal(t, "callout", loading.Type)
	assert.Equal(t, "KSLC", loading.Callout.StationID)
	assert.Equal(t, screen.Loading, loading.Callout.Status)
	assert.Equal(t, "Salt Lake City", loading.Callout.StationName)

	ready := readSessionEvent(t, conn)
	assert.Equal(t, screen.Ready, ready.Callout.Status)
	require.NotNil(t, ready.Callout.Observation)
	assert.Equal(t, "68.0", ready.Callout.Observation.TempF)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "dismiss"}))
	idle := readSessionEvent(t, conn)
	assert.Equal(t, screen.Idle, idle.Callout.Status)
}

func TestSessionSelectBeforeViewport(t *testing.T) {
	srv := setupTestServer(t)
	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/session"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Selections before a viewport are rejected server-side and emit
	// nothing; the socket stays usable.
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "select", "station": "KSLC"}))

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type":   "viewport",
		"center": map[string]float64{"latitude": 40, "longitude": -108},
		"span":   map[string]float64{"latDelta": 10, "lonDelta": 20},
		"width":  390,
		"height": 844,
	}))
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "select", "station": "KSLC"}))

	loading := readSessionEvent(t, conn)
	assert.Equal(t, "KSLC", loading.Callout.StationID)
	assert.Equal(t, screen.Loading, loading.Callout.Status)
}
