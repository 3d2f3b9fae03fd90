package flow

import (
	"testing"
	"time"
)

func TestCountdown_TicksDownToZero(t *testing.T) {
	c := NewCountdownWithTick(5 * time.Millisecond)
	defer c.Stop()

	c.Reset(3)
	if got := c.Remaining(); got != 3 {
		t.Fatalf("expected 3 remaining after reset, got %d", got)
	}
	if !c.Active() {
		t.Fatal("countdown should be active at 3")
	}

	deadline := time.After(500 * time.Millisecond)
	last := c.Remaining()
	for c.Remaining() > 0 {
		select {
		case <-deadline:
			t.Fatalf("countdown never reached zero, stuck at %d", c.Remaining())
		case <-time.After(time.Millisecond):
		}
		// Monotonically non-increasing while mounted.
		if now := c.Remaining(); now > last {
			t.Fatalf("countdown increased from %d to %d", last, now)
		} else {
			last = now
		}
	}

	if c.Active() {
		t.Error("countdown should be inactive at zero")
	}
	// Reaching zero stays at zero.
	time.Sleep(20 * time.Millisecond)
	if got := c.Remaining(); got != 0 {
		t.Errorf("expected 0 after completion, got %d", got)
	}
}

func TestCountdown_ResetReplacesValue(t *testing.T) {
	c := NewCountdownWithTick(time.Hour)
	defer c.Stop()

	c.Reset(30)
	c.Reset(42)
	if got := c.Remaining(); got != 42 {
		t.Errorf("expected 42 after second reset, got %d", got)
	}

	c.Reset(0)
	if c.Active() {
		t.Error("reset to zero should clear the countdown")
	}
}

func TestCountdown_StopPreventsStaleTicks(t *testing.T) {
	c := NewCountdownWithTick(5 * time.Millisecond)

	c.Reset(1000)
	c.Stop()
	if got := c.Remaining(); got != 0 {
		t.Fatalf("expected 0 after stop, got %d", got)
	}

	// A stale tick must never touch the counter after teardown.
	time.Sleep(25 * time.Millisecond)
	if got := c.Remaining(); got != 0 {
		t.Errorf("stale tick fired after stop: remaining %d", got)
	}

	// Stop is idempotent.
	c.Stop()
}

func TestCountdown_ZeroNeverGoesNegative(t *testing.T) {
	c := NewCountdownWithTick(time.Millisecond)
	defer c.Stop()

	c.Reset(1)
	time.Sleep(30 * time.Millisecond)
	if got := c.Remaining(); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}
