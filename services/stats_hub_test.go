package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"file_bridge_app_go/services/counter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var (
	inView  = counter.Measurement{Top: 100, Bottom: 300, ViewportHeight: 800}
	offView = counter.Measurement{Top: 1200, Bottom: 1500, ViewportHeight: 800}
)

func hubEntries() []counter.StatEntry {
	return []counter.StatEntry{
		{Key: "clients", Target: 1200, Step: 24, Format: counter.FloorPlus},
		{Key: "satisfaction", Target: 98, Step: 1.96, Format: counter.Percent},
	}
}

func TestStatsHubOpenObserveClose(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub := NewStatsHub(10, time.Minute, counter.WithInterval(time.Millisecond))
	s, err := hub.Open("filebridge", hubEntries())
	require.NoError(t, err)
	assert.Len(t, s.ID, 36)
	assert.Equal(t, "filebridge", s.Variant)
	assert.Equal(t, 1, hub.Len())

	got, ok := hub.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	require.NoError(t, hub.Observe(s.ID, offView))
	require.NoError(t, hub.Observe(s.ID, inView))

	select {
	case <-s.Animator.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("animation did not complete")
	}
	final := s.Animator.Snapshot()
	assert.True(t, final.Complete)
	assert.Equal(t, "1200+", final.Values[0].Display)
	assert.Equal(t, "98%", final.Values[1].Display)

	hub.Close(s.ID)
	hub.Close(s.ID)
	assert.Equal(t, 0, hub.Len())
	assert.ErrorIs(t, hub.Observe(s.ID, inView), ErrSessionNotFound)
}

func TestStatsHubNeverVisibleStaysAtZero(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub := NewStatsHub(10, time.Minute, counter.WithInterval(time.Millisecond))
	s, err := hub.Open("filebridge", hubEntries())
	require.NoError(t, err)

	require.NoError(t, hub.Observe(s.ID, offView))
	time.Sleep(20 * time.Millisecond)
	assert.False(t, s.Animator.Started())
	assert.Equal(t, 0.0, s.Animator.Snapshot().Values[0].Current)

	hub.Close(s.ID)
}

func TestStatsHubLimitsSessions(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub := NewStatsHub(2, time.Minute)
	defer hub.Shutdown()

	_, err := hub.Open("a", hubEntries())
	require.NoError(t, err)
	second, err := hub.Open("a", hubEntries())
	require.NoError(t, err)

	_, err = hub.Open("a", hubEntries())
	assert.ErrorIs(t, err, ErrTooManySessions)

	hub.Close(second.ID)
	_, err = hub.Open("a", hubEntries())
	assert.NoError(t, err)
}

func TestStatsHubObserveNeverBlocks(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub := NewStatsHub(1, time.Minute)
	s, err := hub.Open("a", hubEntries())
	require.NoError(t, err)
	s.Animator.Close()

	// The listener is gone; the buffer fills and extra reports are dropped.
	for range measurementBuffer * 4 {
		require.NoError(t, hub.Observe(s.ID, offView))
	}
	hub.Shutdown()
}

func TestStatsHubSweepClosesStaleSessions(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	hub := NewStatsHub(10, time.Minute)
	hub.now = func() time.Time { return now }

	old, err := hub.Open("a", hubEntries())
	require.NoError(t, err)

	now = now.Add(45 * time.Second)
	fresh, err := hub.Open("a", hubEntries())
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	assert.Equal(t, 1, hub.Sweep())

	_, ok := hub.Get(old.ID)
	assert.False(t, ok)
	_, ok = hub.Get(fresh.ID)
	assert.True(t, ok)

	select {
	case <-old.Animator.Done():
	default:
		t.Fatal("swept session animator not closed")
	}
	hub.Shutdown()
}

func TestStatsHubShutdown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub := NewStatsHub(10, time.Minute, counter.WithInterval(time.Hour))
	var sessions []*StatsSession
	for range 3 {
		s, err := hub.Open("a", hubEntries())
		require.NoError(t, err)
		require.NoError(t, hub.Observe(s.ID, inView))
		sessions = append(sessions, s)
	}

	hub.Shutdown()
	assert.Equal(t, 0, hub.Len())
	for _, s := range sessions {
		select {
		case <-s.Animator.Done():
		default:
			t.Fatal("session not closed by shutdown")
		}
	}

	_, err := hub.Open("a", hubEntries())
	assert.ErrorIs(t, err, ErrHubClosed)
}

func TestStatsHubRunStopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub := NewStatsHub(10, time.Minute)
	s, err := hub.Open("a", hubEntries())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, hub.Run(ctx, 5*time.Millisecond))
	}()

	cancel()
	wg.Wait()

	<-s.Animator.Done()
	_, err = hub.Open("a", hubEntries())
	assert.ErrorIs(t, err, ErrHubClosed)
}
