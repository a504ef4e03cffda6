package counter

import "time"

// Ticker is a repeating timer owned by whoever created it. Stop must be
// called to release it.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock creates tickers. The default implementation wraps time.Ticker;
// tests inject a fake clock to drive ticks by hand.
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

type realClock struct{}

func (realClock) NewTicker(d time.Duration) Ticker {
	return realTicker{time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }
