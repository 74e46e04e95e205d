package server

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/wxmap/stations-live/geo"
	"github.com/wxmap/stations-live/logger"
	"github.com/wxmap/stations-live/metrics"
	"github.com/wxmap/stations-live/screen"
	"github.com/wxmap/stations-live/store"
)

// SessionCounter and ActiveSessionCounter, when set by main, receive
// atomic updates for the terminal HUD.
var (
	SessionCounter       *int64
	ActiveSessionCounter *int64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The map page is served by this same process; sessions carry
		// no credentials and mutate nothing shared.
		return true
	},
}

// clientMessage is what the map page sends over the session socket.
type clientMessage struct {
	Type    string          `json:"type"` // viewport, select, dismiss
	Station string          `json:"station,omitempty"`
	Center  *geo.Coordinate `json:"center,omitempty"`
	Span    *geo.Span       `json:"span,omitempty"`
	Width   float64         `json:"width,omitempty"`
	Height  float64         `json:"height,omitempty"`
}

// sessionEvent is what the server pushes back: every callout view-model
// the page should render, in transition order.
type sessionEvent struct {
	Type    string         `json:"type"`
	Callout screen.Callout `json:"callout"`
}

// SessionRoute upgrades the connection to a WebSocket and runs one
// interactive map session over it. Each session gets its own
// screen.Controller; view-model emissions happen under the controller's
// lock, which also serializes writes to the socket.
func SessionRoute(directory *store.Directory, fetcher screen.ObservationFetcher, cfg screen.Config) func(c echo.Context) error {
	return func(c echo.Context) error {
		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			return fmt.Errorf("failed to upgrade session: %w", err)
		}
		defer conn.Close()

		metrics.SessionsTotal.Inc()
		metrics.SessionsActive.Inc()
		defer metrics.SessionsActive.Dec()

		if SessionCounter != nil {
			atomic.AddInt64(SessionCounter, 1)
		}
		if ActiveSessionCounter != nil {
			atomic.AddInt64(ActiveSessionCounter, 1)
			defer atomic.AddInt64(ActiveSessionCounter, -1)
		}

		emit := func(callout screen.Callout) {
			if err := conn.WriteJSON(sessionEvent{Type: "callout", Callout: callout}); err != nil {
				logger.Muted("Session write failed: %v", err)
			}
		}
		ctrl := screen.NewController(directory, fetcher, cfg.Fields, emit)

		ctx := c.Request().Context()
		for {
			var msg clientMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Muted("Session closed: %v", err)
				}
				return nil
			}

			switch msg.Type {
			case "viewport":
				if msg.Center == nil || msg.Span == nil {
					logger.Muted("Viewport message missing center or span")
					continue
				}
				ctrl.SetProjector(geo.Viewport{
					Center: *msg.Center,
					Span:   *msg.Span,
					Width:  msg.Width,
					Height: msg.Height,
				})
			case "select":
				if err := ctrl.Select(ctx, msg.Station); err != nil {
					logger.Warn("Selection rejected: %v", err)
				}
			case "dismiss":
				ctrl.Dismiss()
			default:
				logger.Muted("Unknown session message type %q", msg.Type)
			}
		}
	}
}
