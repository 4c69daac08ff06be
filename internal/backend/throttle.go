package backend

import (
	"sync"
	"time"
)

// Throttle admits at most one operation per interval without blocking.
type Throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		return &Throttle{}
	}
	return &Throttle{interval: interval}
}

// Allow reports whether an operation may run now.
func (t *Throttle) Allow() bool {
	return t.allowAt(time.Now())
}

func (t *Throttle) allowAt(now time.Time) bool {
	if t == nil || t.interval <= 0 {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if now.Before(t.next) {
		return false
	}
	t.next = now.Add(t.interval)
	return true
}
