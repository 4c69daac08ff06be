package tooltip

import "time"

// Task is a deferred show for a hovered anchor. The task is live only while
// its Seq matches the controller's pending task; any contradicting event
// invalidates it, so a late Fire is harmless.
type Task struct {
	Seq      uint64
	AnchorID string
	Delay    time.Duration
}

// Scheduler arranges for Controller.Fire(task.Seq) to be called once
// task.Delay has elapsed. Implementations must deliver the call on the same
// goroutine that delivers every other controller event.
type Scheduler interface {
	Schedule(task Task)
	Cancel(seq uint64)
}

// SchedulerFunc adapts a function to the Scheduler interface for hosts that
// only need to schedule; cancellation is handled by sequence invalidation.
type SchedulerFunc func(Task)

func (f SchedulerFunc) Schedule(task Task) { f(task) }

func (SchedulerFunc) Cancel(uint64) {}

type pendingShow struct {
	seq      uint64
	anchorID string
}
