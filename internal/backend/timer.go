package backend

import (
	"sync"
	"time"

	"github.com/atomicstack/files-tooltip/internal/tooltip"
)

// TimerScheduler runs deferred tooltip tasks on wall-clock timers and hands
// them back to the loop, so Fire executes on the loop goroutine.
type TimerScheduler struct {
	loop *Loop

	mu     sync.Mutex
	timers map[uint64]*time.Timer
}

// NewTimerScheduler creates a scheduler that posts to loop.
func NewTimerScheduler(loop *Loop) *TimerScheduler {
	return &TimerScheduler{loop: loop, timers: make(map[uint64]*time.Timer)}
}

// UseTimers installs a TimerScheduler on the loop's controller.
func (l *Loop) UseTimers() *TimerScheduler {
	s := NewTimerScheduler(l)
	l.Call(func(c *tooltip.Controller) {
		c.SetScheduler(s)
	})
	return s
}

func (s *TimerScheduler) Schedule(task tooltip.Task) {
	seq := task.Seq
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers[seq] = time.AfterFunc(task.Delay, func() {
		s.mu.Lock()
		delete(s.timers, seq)
		s.mu.Unlock()
		s.loop.Post(tooltip.Event{Kind: tooltip.KindFire, Seq: seq})
	})
}

func (s *TimerScheduler) Cancel(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.timers[seq]; ok {
		timer.Stop()
		delete(s.timers, seq)
	}
}

// Pending reports how many timers have not fired or been cancelled.
func (s *TimerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels every outstanding timer.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for seq, timer := range s.timers {
		timer.Stop()
		delete(s.timers, seq)
	}
}
