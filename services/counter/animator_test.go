package counter

import (
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()               { f.stopped.Store(true) }

type fakeClock struct {
	mu       sync.Mutex
	tickers  []*fakeTicker
	interval time.Duration
}

func (c *fakeClock) NewTicker(d time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTicker{ch: make(chan time.Time)}
	c.tickers = append(c.tickers, t)
	c.interval = d
	return t
}

func (c *fakeClock) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

func (c *fakeClock) ticker(t *testing.T) *fakeTicker {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.Len(t, c.tickers, 1)
	return c.tickers[0]
}

var visible = Measurement{Top: 100, Bottom: 400, ViewportHeight: 800}
var below = Measurement{Top: 900, Bottom: 1200, ViewportHeight: 800}

func siteStats() []StatEntry {
	return []StatEntry{
		{Key: "clients", Label: "Satisfied Clients", Target: 1200, Step: 24, Format: FloorPlus},
		{Key: "savings", Label: "Million in Tax Savings", Target: 25, Step: 0.5, Format: CurrencyMillions},
		{Key: "experience", Label: "Years Experience", Target: 15, Step: 0.3, Format: RoundPlus},
		{Key: "satisfaction", Label: "Client Satisfaction", Target: 98, Step: 1.96, Format: Percent},
	}
}

func TestMeasurementVisible(t *testing.T) {
	tests := []struct {
		name string
		m    Measurement
		want bool
	}{
		{"inside", visible, true},
		{"below viewport", below, false},
		{"above viewport", Measurement{Top: -500, Bottom: -10, ViewportHeight: 800}, false},
		{"straddles top edge", Measurement{Top: -100, Bottom: 10, ViewportHeight: 800}, true},
		{"straddles bottom edge", Measurement{Top: 790, Bottom: 1000, ViewportHeight: 800}, true},
		{"top touches bottom edge", Measurement{Top: 800, Bottom: 1000, ViewportHeight: 800}, false},
		{"bottom touches top edge", Measurement{Top: -100, Bottom: 0, ViewportHeight: 800}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.m.Visible())
		})
	}
}

func TestTickSaturatingSequence(t *testing.T) {
	a := New([]StatEntry{{Key: "clients", Target: 120, Step: 24}})
	defer a.Close()

	var got []float64
	for range 7 {
		got = append(got, a.Tick().Values[0].Current)
	}
	assert.Equal(t, []float64{24, 48, 72, 96, 120, 120, 120}, got)
}

func TestTickFractionalStepPinsAtTarget(t *testing.T) {
	a := New([]StatEntry{{Key: "satisfaction", Target: 98, Step: 1.96, Format: Percent}})
	defer a.Close()

	var f Frame
	for range 50 {
		f = a.Tick()
	}
	assert.Equal(t, 98.0, f.Values[0].Current)
	assert.Equal(t, "98%", f.Values[0].Display)
	assert.True(t, f.Complete)

	f = a.Tick()
	assert.Equal(t, 98.0, f.Values[0].Current)
}

func TestTickMatchesClosedForm(t *testing.T) {
	entries := []StatEntry{
		{Key: "a", Target: 1200, Step: 24},
		{Key: "b", Target: 25, Step: 0.5},
		{Key: "c", Target: 15, Step: 0.3},
		{Key: "d", Target: 98, Step: 1.96},
		{Key: "e", Target: 10, Step: 7},
	}
	a := New(entries)
	defer a.Close()

	for k := 1; k <= 80; k++ {
		f := a.Tick()
		for i, e := range entries {
			want := math.Min(e.Target, float64(k)*e.Step)
			assert.Equal(t, want, f.Values[i].Current, "entry %s after %d ticks", e.Key, k)
			assert.LessOrEqual(t, f.Values[i].Current, e.Target)
			assert.GreaterOrEqual(t, f.Values[i].Current, 0.0)
		}
	}
}

func TestSnapshotFormatsWithoutMutating(t *testing.T) {
	a := New(siteStats())
	defer a.Close()

	f := a.Snapshot()
	assert.Equal(t, 0, f.Tick)
	assert.False(t, f.Complete)
	assert.Equal(t, "0+", f.Values[0].Display)
	assert.Equal(t, "$0.0M+", f.Values[1].Display)
	assert.Equal(t, "0+", f.Values[2].Display)
	assert.Equal(t, "0%", f.Values[3].Display)

	a.Snapshot()
	assert.Equal(t, 0.0, a.Snapshot().Values[0].Current)
}

func TestNewResetsCurrentValues(t *testing.T) {
	entries := siteStats()
	entries[0].current = 500

	a := New(entries)
	defer a.Close()
	assert.Equal(t, 0.0, a.Snapshot().Values[0].Current)
}

func TestObserveStartsOnlyWhenVisible(t *testing.T) {
	clock := &fakeClock{}
	a := New(siteStats(), WithClock(clock), WithInterval(30*time.Millisecond))
	defer a.Close()

	assert.False(t, a.Observe(below))
	assert.False(t, a.Started())
	assert.Equal(t, 0, clock.count())

	assert.True(t, a.Observe(visible))
	assert.True(t, a.Started())
	assert.Equal(t, 30*time.Millisecond, clock.interval)

	// Leaving and re-entering the viewport does not restart.
	assert.False(t, a.Observe(below))
	assert.False(t, a.Observe(visible))
	assert.Equal(t, 1, clock.count())
}

func TestTickerDrivesFramesUntilSaturated(t *testing.T) {
	clock := &fakeClock{}
	a := New([]StatEntry{{Key: "clients", Target: 120, Step: 24, Format: FloorPlus}}, WithClock(clock))
	defer a.Close()

	require.True(t, a.Observe(visible))
	ft := clock.ticker(t)

	want := []string{"24+", "48+", "72+", "96+", "120+"}
	for _, display := range want {
		ft.ch <- time.Now()
		f := <-a.Frames()
		assert.Equal(t, display, f.Values[0].Display)
	}

	select {
	case <-a.Done():
	case <-time.After(time.Second):
		t.Fatal("animator did not finish after saturation")
	}
	assert.True(t, ft.stopped.Load())
	assert.True(t, a.Snapshot().Complete)
}

func TestCloseBeforeVisibility(t *testing.T) {
	clock := &fakeClock{}
	a := New(siteStats(), WithClock(clock))
	events := make(chan Measurement)
	a.Listen(events)

	a.Close()
	a.Close()

	select {
	case <-a.Done():
	default:
		t.Fatal("Done not closed after Close")
	}
	assert.False(t, a.Observe(visible))
	assert.Equal(t, 0, clock.count())
}

func TestCloseStopsRunningTicker(t *testing.T) {
	clock := &fakeClock{}
	a := New(siteStats(), WithClock(clock))
	require.True(t, a.Observe(visible))
	ft := clock.ticker(t)

	ft.ch <- time.Now()
	<-a.Frames()

	a.Close()
	assert.True(t, ft.stopped.Load())
	assert.False(t, a.Snapshot().Complete)
}

func TestListenFeedsObserve(t *testing.T) {
	clock := &fakeClock{}
	a := New(siteStats(), WithClock(clock))
	defer a.Close()

	events := make(chan Measurement)
	a.Listen(events)
	events <- below
	events <- visible

	assert.Eventually(t, a.Started, time.Second, 5*time.Millisecond)
	close(events)
}

func TestRealClockCompletes(t *testing.T) {
	a := New([]StatEntry{{Key: "x", Target: 3, Step: 1}}, WithInterval(time.Millisecond))
	defer a.Close()

	require.True(t, a.Observe(visible))
	select {
	case <-a.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("animation did not complete")
	}
	f := a.Snapshot()
	assert.Equal(t, 3.0, f.Values[0].Current)
	assert.Equal(t, 3, f.Tick)
}
