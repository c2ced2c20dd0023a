package verify

import (
	"sync"
	"time"
)

type breakerState int

const (
	breakerClosed breakerState = iota
	breakerOpen
	breakerHalfOpen
)

// breaker stops calls to a remote that keeps failing. After threshold
// consecutive failures it rejects calls for cooldown, then lets one through.
type breaker struct {
	mu          sync.Mutex
	threshold   int
	cooldown    time.Duration
	state       breakerState
	failures    int
	lastFailure time.Time
	probeAt     time.Time
	now         func() time.Time
}

func newBreaker(threshold int, cooldown time.Duration) *breaker {
	return &breaker{threshold: threshold, cooldown: cooldown, now: time.Now}
}

func (b *breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case breakerOpen:
		if b.now().Sub(b.lastFailure) < b.cooldown {
			return false
		}
		b.state = breakerHalfOpen
		b.probeAt = b.now()
		return true
	case breakerHalfOpen:
		// One probe per cooldown; a probe that never reported is replaced.
		if b.now().Sub(b.probeAt) < b.cooldown {
			return false
		}
		b.probeAt = b.now()
		return true
	default:
		return true
	}
}

func (b *breaker) success() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = breakerClosed
	b.failures = 0
}

func (b *breaker) failure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastFailure = b.now()
	b.failures++
	if b.state == breakerHalfOpen || b.failures >= b.threshold {
		b.state = breakerOpen
	}
}
