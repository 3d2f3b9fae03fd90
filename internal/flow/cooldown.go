package flow

import (
	"sync"
	"time"
)

// DefaultCooldownSeconds seeds the countdown when the backend's send
// response carries no cooldown value.
const DefaultCooldownSeconds = 60

// Countdown is the client-local resend cooldown: a non-negative counter
// derived from a server-supplied number of seconds, ticked down once
// per second. Reaching zero enables resend; it never triggers one.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	tick      time.Duration
	stop      chan struct{}
}

// NewCountdown returns a countdown ticking at one-second intervals.
func NewCountdown() *Countdown {
	return &Countdown{tick: time.Second}
}

// NewCountdownWithTick returns a countdown with a custom tick interval.
// Tests use short intervals to exercise the decrement path quickly.
func NewCountdownWithTick(tick time.Duration) *Countdown {
	return &Countdown{tick: tick}
}

// Reset replaces the remaining seconds with a fresh server-supplied
// value and restarts the ticker. A non-positive value clears the
// countdown immediately.
func (c *Countdown) Reset(seconds int) {
	c.mu.Lock()
	c.stopLocked()
	if seconds <= 0 {
		c.remaining = 0
		c.mu.Unlock()
		return
	}
	c.remaining = seconds
	stop := make(chan struct{})
	c.stop = stop
	c.mu.Unlock()

	go c.run(stop)
}

func (c *Countdown) run(stop chan struct{}) {
	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			select {
			case <-stop:
				// Torn down between the tick firing and the lock;
				// a stale tick must not touch the counter.
				c.mu.Unlock()
				return
			default:
			}
			if c.remaining > 0 {
				c.remaining--
			}
			done := c.remaining == 0
			c.mu.Unlock()
			if done {
				return
			}
		}
	}
}

// Remaining returns the seconds left before resend is allowed.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Active reports whether the resend affordance should be disabled.
func (c *Countdown) Active() bool {
	return c.Remaining() > 0
}

// Stop tears the countdown down. Safe to call repeatedly; the owning
// component calls it on unmount so no stale tick can fire afterwards.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.remaining = 0
}

func (c *Countdown) stopLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}
