// Package counter animates a fixed set of statistics from zero toward their
// targets once the region showing them becomes visible.
//
// An [Animator] owns two resources: the repeating ticker started on the
// first visible [Measurement], and the listener goroutine started by
// [Animator.Listen]. Both are released by [Animator.Close], which is safe to
// call on every exit path and more than once.
//
//	a := counter.New(entries)
//	defer a.Close()
//	a.Listen(measurements)
//	for {
//	    select {
//	    case f := <-a.Frames():
//	        render(f)
//	    case <-a.Done():
//	        render(a.Snapshot())
//	        return
//	    }
//	}
package counter

import (
	"sync"
	"time"
)

// DefaultInterval is the cadence of animation ticks.
const DefaultInterval = 30 * time.Millisecond

// Value is one statistic inside a Frame.
type Value struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
	Display string  `json:"display"`
}

// Frame is a snapshot of every statistic after a number of ticks.
type Frame struct {
	Tick     int     `json:"tick"`
	Values   []Value `json:"values"`
	Complete bool    `json:"complete"`
}

// Option configures an Animator.
type Option func(*Animator)

// WithInterval sets the tick cadence. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(a *Animator) {
		if d > 0 {
			a.interval = d
		}
	}
}

// WithClock replaces the ticker source.
func WithClock(c Clock) Option {
	return func(a *Animator) {
		if c != nil {
			a.clock = c
		}
	}
}

// Animator advances its statistics on a fixed cadence, starting on the
// first visible measurement and running at most once per lifetime.
type Animator struct {
	interval time.Duration
	clock    Clock

	mu      sync.Mutex
	entries []StatEntry
	ticks   int
	started bool
	closed  bool

	frames   chan Frame
	stop     chan struct{}
	done     chan struct{}
	doneOnce sync.Once
	wg       sync.WaitGroup
}

// New creates an animator for entries. The entries are copied; every
// current value starts at zero.
func New(entries []StatEntry, opts ...Option) *Animator {
	a := &Animator{
		interval: DefaultInterval,
		clock:    realClock{},
		entries:  make([]StatEntry, len(entries)),
		frames:   make(chan Frame, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for i, e := range entries {
		e.current = 0
		a.entries[i] = e
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Observe evaluates one measurement. The first visible measurement starts
// the ticker and Observe returns true; every other call is a no-op. Leaving
// and re-entering the viewport never resets or restarts the animation.
func (a *Animator) Observe(m Measurement) bool {
	if !m.Visible() {
		return false
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.started || a.closed {
		return false
	}
	a.started = true

	t := a.clock.NewTicker(a.interval)
	a.wg.Add(1)
	go a.run(t)
	return true
}

// Listen feeds measurements from events into Observe until the channel is
// closed or the animator is closed.
func (a *Animator) Listen(events <-chan Measurement) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		for {
			select {
			case <-a.stop:
				return
			case m, ok := <-events:
				if !ok {
					return
				}
				a.Observe(m)
			}
		}
	}()
}

// Started reports whether visibility has been detected.
func (a *Animator) Started() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.started
}

// Tick advances every entry by one saturating step and returns the
// resulting frame. Once every entry is saturated further ticks change
// nothing.
func (a *Animator) Tick() Frame {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.completeLocked() {
		a.ticks++
		for i := range a.entries {
			a.entries[i].advance(a.ticks)
		}
	}
	return a.snapshotLocked()
}

// Snapshot returns the current frame.
func (a *Animator) Snapshot() Frame {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

// Frames delivers the latest frame after each tick. Slow readers only see
// the most recent frame.
func (a *Animator) Frames() <-chan Frame {
	return a.frames
}

// Done is closed when every entry has saturated or the animator is closed.
// Snapshot holds the final frame afterwards.
func (a *Animator) Done() <-chan struct{} {
	return a.done
}

// Close stops the ticker and the listener and waits for both to exit.
func (a *Animator) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	close(a.stop)
	a.mu.Unlock()

	a.wg.Wait()
	a.markDone()
}

func (a *Animator) run(t Ticker) {
	defer a.wg.Done()
	for {
		select {
		case <-a.stop:
			t.Stop()
			return
		case <-t.C():
			f := a.Tick()
			a.publish(f)
			if f.Complete {
				// Saturated: halt the timer early.
				t.Stop()
				a.markDone()
				return
			}
		}
	}
}

func (a *Animator) publish(f Frame) {
	for {
		select {
		case a.frames <- f:
			return
		default:
		}
		// Drop the stale frame nobody picked up.
		select {
		case <-a.frames:
		default:
		}
	}
}

func (a *Animator) markDone() {
	a.doneOnce.Do(func() { close(a.done) })
}

func (a *Animator) completeLocked() bool {
	for i := range a.entries {
		if !a.entries[i].Saturated() {
			return false
		}
	}
	return true
}

func (a *Animator) snapshotLocked() Frame {
	values := make([]Value, len(a.entries))
	for i := range a.entries {
		e := &a.entries[i]
		values[i] = Value{
			Key:     e.Key,
			Label:   e.Label,
			Current: e.Value(),
			Target:  e.Target,
			Display: e.Display(),
		}
	}
	return Frame{
		Tick:     a.ticks,
		Values:   values,
		Complete: a.completeLocked(),
	}
}
