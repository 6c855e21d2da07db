package delicious

import (
	"sync"
	"time"
)

const (
	// DefaultInterval is the service's published request etiquette.
	DefaultInterval = 1 * time.Second
	// DefaultMaxInterval caps backoff growth after rate-limit failures.
	DefaultMaxInterval = 60 * time.Second
)

// Throttle enforces a minimum interval between consecutive outbound
// requests made through one client instance. The last-call timestamp is
// the only shared mutable state in the client, so the lock is held across
// the wait: concurrent callers each reserve their own slot and two callers
// can never both observe "enough time has passed".
type Throttle struct {
	mu          sync.Mutex
	interval    time.Duration
	maxInterval time.Duration
	last        time.Time

	// now and sleep are replaceable so tests can simulate elapsed time
	// without real sleeps.
	now   func() time.Time
	sleep func(time.Duration)
}

func NewThrottle(interval time.Duration) *Throttle {
	if interval < 0 {
		interval = 0
	}
	return &Throttle{
		interval:    interval,
		maxInterval: DefaultMaxInterval,
		now:         time.Now,
		sleep:       time.Sleep,
	}
}

// Wait blocks until at least the configured interval has elapsed since
// the previous call, then records the new last-call timestamp.
func (t *Throttle) Wait() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if !t.last.IsZero() {
		if elapsed := now.Sub(t.last); elapsed < t.interval {
			t.sleep(t.interval - elapsed)
			now = t.now()
		}
	}
	t.last = now
}

// Backoff doubles the minimum interval, up to the cap. Called only in
// response to explicit rate-limit failures; success never grows it.
func (t *Throttle) Backoff() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := t.interval * 2
	if next == 0 {
		next = DefaultInterval
	}
	if next > t.maxInterval {
		next = t.maxInterval
	}
	t.interval = next
	return next
}

func (t *Throttle) Interval() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.interval
}
