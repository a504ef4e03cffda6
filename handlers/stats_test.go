package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"file_bridge_app_go/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewportHandlerStartsAnimation(t *testing.T) {
	env := newTestEnv(t)
	v := env.store.Default()
	session, err := env.hub.Open(v.Key, v.StatEntries())
	require.NoError(t, err)

	body := `{"top": 100, "bottom": 400, "viewport_height": 800}`
	c, rec := env.postJSON("/stats/stream/"+session.ID+"/viewport", body)
	withParams(c, "id", session.ID)

	require.NoError(t, ViewportHandler(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Eventually(t, session.Animator.Started, time.Second, 5*time.Millisecond)
}

func TestViewportHandlerIgnoresInvisibleRegion(t *testing.T) {
	env := newTestEnv(t)
	v := env.store.Default()
	session, err := env.hub.Open(v.Key, v.StatEntries())
	require.NoError(t, err)

	body := `{"top": 900, "bottom": 1200, "viewport_height": 800}`
	c, rec := env.postJSON("/", body)
	withParams(c, "id", session.ID)

	require.NoError(t, ViewportHandler(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Never(t, session.Animator.Started, 50*time.Millisecond, 5*time.Millisecond)
}

func TestViewportHandlerErrors(t *testing.T) {
	env := newTestEnv(t)

	c, _ := env.postJSON("/", `{"top": 1, "bottom": 2, "viewport_height": 3}`)
	withParams(c, "id", "missing")
	requireHTTPError(t, ViewportHandler(c), http.StatusNotFound)

	c, _ = env.postJSON("/", `not json`)
	withParams(c, "id", "missing")
	requireHTTPError(t, ViewportHandler(c), http.StatusBadRequest)

	c, _ = env.setupEcho(http.MethodPost, "/", strings.NewReader(`{"top": 1}`))
	withParams(c, "id", "missing")
	requireHTTPError(t, ViewportHandler(c), http.StatusBadRequest)
}

func TestViewportRouteRejectsOversizedBody(t *testing.T) {
	e := echo.New()
	RegisterRoutes(e, &config.Config{}, nil)

	body := `{"top": 1, "bottom": 2, "viewport_height": 3, "padding": "` + strings.Repeat("x", 2048) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/stats/stream/abc/viewport", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestStatsStreamHandlerClosesOnDisconnect(t *testing.T) {
	env := newTestEnv(t)
	c, rec := env.setupEcho(http.MethodGet, "/stats/stream", nil)
	ctx, cancel := context.WithCancel(context.Background())
	c.SetRequest(c.Request().WithContext(ctx))

	done := make(chan error, 1)
	go func() { done <- StatsStreamHandler(c) }()

	require.Eventually(t, func() bool { return env.hub.Len() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end after disconnect")
	}
	assert.Equal(t, 0, env.hub.Len())
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "event: session\ndata: {\"id\":"))
	assert.Contains(t, body, "event: frame\ndata: {\"tick\":0,")
	assert.Contains(t, body, `"display":"0+"`)
}

func TestStatsStreamHandlerEndsOnHubShutdown(t *testing.T) {
	env := newTestEnv(t)
	c, rec := env.setupEcho(http.MethodGet, "/stats/stream?variant=bridgeglobal", nil)

	done := make(chan error, 1)
	go func() { done <- StatsStreamHandler(c) }()

	require.Eventually(t, func() bool { return env.hub.Len() == 1 }, time.Second, 5*time.Millisecond)
	env.hub.Shutdown()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end after shutdown")
	}
	assert.Equal(t, 2, strings.Count(rec.Body.String(), "event: frame"))
}

func TestStatsStreamHandlerRejectsWhenFull(t *testing.T) {
	env := newTestEnv(t)
	v := env.store.Default()
	for range 10 {
		_, err := env.hub.Open(v.Key, v.StatEntries())
		require.NoError(t, err)
	}

	c, _ := env.setupEcho(http.MethodGet, "/stats/stream", nil)
	requireHTTPError(t, StatsStreamHandler(c), http.StatusServiceUnavailable)

	c, _ = env.setupEcho(http.MethodGet, "/stats/stream?variant=nope", nil)
	requireHTTPError(t, StatsStreamHandler(c), http.StatusNotFound)
}
