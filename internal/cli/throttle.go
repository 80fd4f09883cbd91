package cli

import (
	"sync"
	"time"
)

// Message admission spacing for the chat surface. The floor widens after a
// rate-limit error so a throttled upstream gets room to recover.
const (
	minChatSpacing     = 2 * time.Second
	backoffChatSpacing = 10 * time.Second
)

// throttle enforces a minimum spacing between chat exchanges.
type throttle struct {
	mu      sync.Mutex
	last    time.Time
	spacing time.Duration
	now     func() time.Time
}

func newThrottle() *throttle {
	return &throttle{
		spacing: minChatSpacing,
		now:     time.Now,
	}
}

// allow reports whether a new exchange may start and, if so, marks it started.
func (t *throttle) allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if now.Sub(t.last) < t.spacing {
		return false
	}
	t.last = now
	return true
}

// backoff widens the spacing after a rate-limit error.
func (t *throttle) backoff() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.spacing = backoffChatSpacing
}

// reset restores the normal spacing after a successful exchange.
func (t *throttle) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.spacing = minChatSpacing
}
