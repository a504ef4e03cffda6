package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"file_bridge_app_go/services"
	"file_bridge_app_go/services/counter"

	"github.com/labstack/echo/v4"
)

// statsSessionEvent tells the browser where to post viewport measurements.
type statsSessionEvent struct {
	ID          string `json:"id"`
	ViewportURL string `json:"viewport_url"`
}

// StatsStreamHandler streams the stats animation of one page view as
// server-sent events: a "session" event, then a "frame" event per tick.
// The session is closed when the client goes away, the animation
// completes or the hub shuts down.
func StatsStreamHandler(c echo.Context) error {
	v, ok := variantParam(c)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Unknown page variant")
	}

	hub := statsHub(c)
	session, err := hub.Open(v.Key, v.StatEntries())
	if err != nil {
		if errors.Is(err, services.ErrTooManySessions) || errors.Is(err, services.ErrHubClosed) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "Stats are temporarily unavailable")
		}
		return err
	}
	defer hub.Close(session.ID)

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.Header().Set("X-Accel-Buffering", "no")
	res.WriteHeader(http.StatusOK)

	a := session.Animator
	if err := writeEvent(res, "session", statsSessionEvent{
		ID:          session.ID,
		ViewportURL: "/stats/stream/" + session.ID + "/viewport",
	}); err != nil {
		return nil
	}
	if err := writeEvent(res, "frame", a.Snapshot()); err != nil {
		return nil
	}

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case f := <-a.Frames():
			if err := writeEvent(res, "frame", f); err != nil {
				return nil
			}
		case <-a.Done():
			// The last tick may still sit in Frames; the snapshot covers it.
			_ = writeEvent(res, "frame", a.Snapshot())
			return nil
		}
	}
}

func writeEvent(res *echo.Response, event string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(res, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	res.Flush()
	return nil
}

// viewportBodyLimit caps a measurement post; the payload is three numbers.
const viewportBodyLimit = "1K"

// ViewportHandler receives one measurement of the stats region for a stream
// session.
func ViewportHandler(c echo.Context) error {
	var m counter.Measurement
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid measurement")
	}
	if err := statsHub(c).Observe(c.Param("id"), m); err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Unknown stats session")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
