package backend

import (
	"context"
	"sync"

	"github.com/atomicstack/files-tooltip/internal/tooltip"
)

type request struct {
	evt  tooltip.Event
	fn   func(*tooltip.Controller)
	done chan struct{}
}

// Loop owns a tooltip controller on a single goroutine so that hosts with
// several input sources deliver events one at a time.
type Loop struct {
	ctrl *tooltip.Controller

	ctx    context.Context
	cancel context.CancelFunc

	inbox   chan request
	updates chan tooltip.Surface
	wg      sync.WaitGroup
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithUpdates publishes every surface change on Updates. The channel must be
// drained; the loop blocks while it is full.
func WithUpdates(buffer int) LoopOption {
	return func(l *Loop) {
		if buffer < 0 {
			buffer = 0
		}
		l.updates = make(chan tooltip.Surface, buffer)
	}
}

// NewLoop starts the event loop for ctrl. The caller must not touch ctrl
// directly afterwards; use Post or Call.
func NewLoop(ctrl *tooltip.Controller, opts ...LoopOption) *Loop {
	ctx, cancel := context.WithCancel(context.Background())
	l := &Loop{
		ctrl:   ctrl,
		ctx:    ctx,
		cancel: cancel,
		inbox:  make(chan request, 64),
	}
	for _, opt := range opts {
		opt(l)
	}

	l.wg.Add(1)
	go l.run()

	go func() {
		l.wg.Wait()
		if l.updates != nil {
			close(l.updates)
		}
	}()

	return l
}

// Post enqueues an event. It reports false once the loop has stopped.
func (l *Loop) Post(evt tooltip.Event) bool {
	return l.send(request{evt: evt})
}

// Call runs fn on the loop goroutine and waits for it to return.
func (l *Loop) Call(fn func(*tooltip.Controller)) bool {
	done := make(chan struct{})
	if !l.send(request{fn: fn, done: done}) {
		return false
	}
	select {
	case <-l.ctx.Done():
		return false
	case <-done:
		return true
	}
}

// Snapshot returns the surface after every previously posted event has been
// applied.
func (l *Loop) Snapshot() (tooltip.Surface, bool) {
	var s tooltip.Surface
	ok := l.Call(func(c *tooltip.Controller) {
		s = c.Surface()
	})
	return s, ok
}

// Updates returns the surface change channel, or nil without WithUpdates.
func (l *Loop) Updates() <-chan tooltip.Surface {
	return l.updates
}

// Stop cancels the loop. Queued events that have not been applied are
// dropped.
func (l *Loop) Stop() {
	l.cancel()
}

// Wait blocks until the loop goroutine has exited.
func (l *Loop) Wait() {
	l.wg.Wait()
}

func (l *Loop) send(req request) bool {
	if l.ctx.Err() != nil {
		return false
	}
	select {
	case <-l.ctx.Done():
		return false
	case l.inbox <- req:
		return true
	}
}

func (l *Loop) run() {
	defer l.wg.Done()

	prev := l.ctrl.Surface()
	for {
		select {
		case <-l.ctx.Done():
			return
		case req := <-l.inbox:
			if req.fn != nil {
				req.fn(l.ctrl)
			} else {
				l.ctrl.Apply(req.evt)
			}
			if req.done != nil {
				close(req.done)
			}
			cur := l.ctrl.Surface()
			if cur == prev {
				continue
			}
			prev = cur
			if l.updates == nil {
				continue
			}
			select {
			case <-l.ctx.Done():
				return
			case l.updates <- cur:
			}
		}
	}
}
