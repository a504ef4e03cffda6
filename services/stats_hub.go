package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"file_bridge_app_go/services/counter"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("stats session not found")
	ErrTooManySessions = errors.New("too many stats sessions")
	ErrHubClosed       = errors.New("stats hub is shut down")
)

// measurementBuffer bounds pending viewport reports per session. Extra
// reports are dropped; only the first visible one matters.
const measurementBuffer = 8

// StatsSession is one page view's stats animation, driven by the viewport
// reports its browser posts back.
type StatsSession struct {
	ID       string
	Variant  string
	Created  time.Time
	Animator *counter.Animator

	measurements chan counter.Measurement
}

// StatsHub tracks live stats sessions by id.
type StatsHub struct {
	maxSessions int
	ttl         time.Duration
	opts        []counter.Option
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*StatsSession
	closed   bool
}

// NewStatsHub creates a hub holding at most maxSessions sessions, each
// living no longer than ttl. opts configure every session's animator.
func NewStatsHub(maxSessions int, ttl time.Duration, opts ...counter.Option) *StatsHub {
	return &StatsHub{
		maxSessions: maxSessions,
		ttl:         ttl,
		opts:        opts,
		now:         time.Now,
		sessions:    make(map[string]*StatsSession),
	}
}

// Open starts a session for entries. The animator waits for the first
// visible measurement before ticking.
func (h *StatsHub) Open(variant string, entries []counter.StatEntry) (*StatsSession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}
	if h.maxSessions > 0 && len(h.sessions) >= h.maxSessions {
		return nil, ErrTooManySessions
	}

	s := &StatsSession{
		ID:           uuid.New().String(),
		Variant:      variant,
		Created:      h.now(),
		Animator:     counter.New(entries, h.opts...),
		measurements: make(chan counter.Measurement, measurementBuffer),
	}
	s.Animator.Listen(s.measurements)
	h.sessions[s.ID] = s
	return s, nil
}

// Observe queues a viewport measurement for session id without blocking.
func (h *StatsHub) Observe(id string, m counter.Measurement) error {
	s, ok := h.Get(id)
	if !ok {
		return ErrSessionNotFound
	}

	select {
	case s.measurements <- m:
	default:
	}
	return nil
}

// Get returns the live session with id.
func (h *StatsHub) Get(id string) (*StatsSession, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[id]
	return s, ok
}

// Close removes session id and releases its animator. Unknown ids are ignored.
func (h *StatsHub) Close(id string) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()

	if ok {
		s.Animator.Close()
	}
}

// Len reports the number of live sessions.
func (h *StatsHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Sweep closes sessions older than the hub's ttl and returns how many were
// removed.
func (h *StatsHub) Sweep() int {
	if h.ttl <= 0 {
		return 0
	}
	cutoff := h.now().Add(-h.ttl)

	h.mu.Lock()
	var stale []*StatsSession
	for id, s := range h.sessions {
		if s.Created.Before(cutoff) {
			stale = append(stale, s)
			delete(h.sessions, id)
		}
	}
	h.mu.Unlock()

	for _, s := range stale {
		s.Animator.Close()
	}
	return len(stale)
}

// Run sweeps stale sessions every interval until ctx is done, then shuts the
// hub down.
func (h *StatsHub) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.Shutdown()
			return nil
		case <-ticker.C:
			if n := h.Sweep(); n > 0 {
				log.Printf("[INFO] Closed %d stale stats sessions", n)
			}
		}
	}
}

// Shutdown closes every session and rejects new ones. Streams waiting on a
// session observe its animator's Done channel.
func (h *StatsHub) Shutdown() {
	h.mu.Lock()
	h.closed = true
	sessions := h.sessions
	h.sessions = make(map[string]*StatsSession)
	h.mu.Unlock()

	for _, s := range sessions {
		s.Animator.Close()
	}
}
