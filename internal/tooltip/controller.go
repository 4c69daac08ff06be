package tooltip

import (
	"time"

	"github.com/atomicstack/files-tooltip/internal/logging/events"
)

// Controller drives the shared tooltip surface of one view. It is not safe
// for concurrent use; hosts with several input goroutines serialize delivery
// through a single queue (see backend.Loop).
type Controller struct {
	anchors map[string]Anchor
	surface Surface

	// Focus and hover are independent activation sources. Each holds at
	// most one anchor id.
	focused string
	hovered string

	pending    *pendingShow
	seq        uint64
	hoverDelay time.Duration
	scheduler  Scheduler
	redraw     func(Surface)
}

// Option configures a Controller.
type Option func(*Controller)

// WithHoverDelay defers showing the tooltip on hover while it is hidden.
// The delay only takes effect together with a Scheduler.
func WithHoverDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.hoverDelay = d
		}
	}
}

// WithScheduler sets the scheduler used for deferred hover tasks.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		c.scheduler = s
	}
}

// WithRedraw registers the hook invoked whenever the surface changes.
func WithRedraw(fn func(Surface)) Option {
	return func(c *Controller) {
		c.redraw = fn
	}
}

// New returns a controller with a hidden, unanchored surface.
func New(opts ...Option) *Controller {
	c := &Controller{anchors: make(map[string]Anchor)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetScheduler replaces the scheduler. Hosts whose scheduler needs a
// reference back to the controller use this after New.
func (c *Controller) SetScheduler(s Scheduler) {
	c.cancelPending()
	c.scheduler = s
}

// RegisterAnchor adds or updates an anchor. Registering a live id overwrites
// its attributes; if that anchor is currently shown, the surface follows.
func (c *Controller) RegisterAnchor(id string, hasTooltip bool, label string) error {
	if id == "" {
		return ErrEmptyAnchorID
	}
	a := Anchor{ID: id, HasTooltip: hasTooltip, Label: label}
	c.anchors[id] = a
	events.Tooltip.Register(id, hasTooltip, label)

	if !hasTooltip && c.pending != nil && c.pending.anchorID == id {
		c.cancelPending()
	}
	if !c.surface.Visible || c.surface.AnchorID != id {
		return nil
	}
	if !hasTooltip {
		c.hide("tooltip removed")
		return nil
	}
	c.activate(a)
	return nil
}

// UnregisterAnchor forgets an anchor. Unknown ids are ignored. If the anchor
// was shown, the surface is hidden immediately.
func (c *Controller) UnregisterAnchor(id string) {
	if _, ok := c.anchors[id]; !ok {
		return
	}
	delete(c.anchors, id)
	events.Tooltip.Unregister(id)
	if c.focused == id {
		c.focused = ""
	}
	if c.hovered == id {
		c.hovered = ""
	}
	if c.pending != nil && c.pending.anchorID == id {
		c.cancelPending()
	}
	if c.surface.Visible && c.surface.AnchorID == id {
		c.hide("unregistered")
	}
}

// Anchor returns the registered attributes for id.
func (c *Controller) Anchor(id string) (Anchor, bool) {
	a, ok := c.anchors[id]
	return a, ok
}

// Focus records that id gained focus. Focus is exclusive, so any previously
// focused anchor loses it.
func (c *Controller) Focus(id string) {
	a, ok := c.lookup(KindFocus, id)
	if !ok {
		return
	}
	c.focused = id
	if !a.HasTooltip {
		c.releaseIfInactive("focus moved")
		return
	}
	c.cancelPending()
	c.activate(a)
}

// Blur records that id lost focus.
func (c *Controller) Blur(id string) {
	if _, ok := c.lookup(KindBlur, id); !ok {
		return
	}
	if c.focused == id {
		c.focused = ""
	}
	if !c.surface.Visible {
		return
	}
	if c.surface.AnchorID != id {
		events.Tooltip.Ignore(KindBlur.String(), id, "not anchored")
		return
	}
	if c.hovered == id {
		return
	}
	c.hide("blur")
}

// PointerEnter records that the pointer moved over id. While the surface is
// hidden and a hover delay is configured, showing is deferred to a Task.
func (c *Controller) PointerEnter(id string) {
	a, ok := c.lookup(KindPointerEnter, id)
	if !ok {
		return
	}
	c.hovered = id
	if !a.HasTooltip {
		c.cancelPending()
		c.releaseIfInactive("pointer moved")
		return
	}
	if c.surface.Visible || c.hoverDelay <= 0 || c.scheduler == nil {
		c.cancelPending()
		c.activate(a)
		return
	}
	if c.pending != nil && c.pending.anchorID == id {
		return
	}
	c.cancelPending()
	c.schedule(id)
}

// PointerLeave records that the pointer moved off id.
func (c *Controller) PointerLeave(id string) {
	if _, ok := c.lookup(KindPointerLeave, id); !ok {
		return
	}
	if c.hovered == id {
		c.hovered = ""
	}
	if c.pending != nil && c.pending.anchorID == id {
		c.cancelPending()
	}
	if !c.surface.Visible {
		return
	}
	if c.surface.AnchorID != id {
		events.Tooltip.Ignore(KindPointerLeave.String(), id, "not anchored")
		return
	}
	if c.focused == id {
		return
	}
	c.hide("pointer left")
}

// GlobalClick hides the tooltip regardless of target, including clicks on
// the anchored element itself. The target need not be registered.
func (c *Controller) GlobalClick(target string) {
	c.cancelPending()
	if !c.surface.Visible {
		return
	}
	c.hide("click")
}

// Dismiss hides the tooltip unconditionally, e.g. on Escape.
func (c *Controller) Dismiss() {
	c.cancelPending()
	if !c.surface.Visible {
		return
	}
	c.hide("dismiss")
}

// Fire runs the deferred task with the given sequence. Stale or cancelled
// sequences are ignored.
func (c *Controller) Fire(seq uint64) {
	if c.pending == nil || c.pending.seq != seq {
		return
	}
	id := c.pending.anchorID
	c.pending = nil
	a, ok := c.anchors[id]
	if !ok || !a.HasTooltip || c.hovered != id {
		return
	}
	c.activate(a)
}

// Apply dispatches evt to the matching intake function.
func (c *Controller) Apply(evt Event) {
	switch evt.Kind {
	case KindFocus:
		c.Focus(evt.Target)
	case KindBlur:
		c.Blur(evt.Target)
	case KindPointerEnter:
		c.PointerEnter(evt.Target)
	case KindPointerLeave:
		c.PointerLeave(evt.Target)
	case KindGlobalClick:
		c.GlobalClick(evt.Target)
	case KindDismiss:
		c.Dismiss()
	case KindFire:
		c.Fire(evt.Seq)
	}
}

// IsVisible reports whether the surface is shown.
func (c *Controller) IsVisible() bool {
	return c.surface.Visible
}

// CurrentLabelText returns the label on the surface, empty when hidden.
func (c *Controller) CurrentLabelText() string {
	return c.surface.Label
}

// AnchoredAnchorID returns the id the surface is anchored to.
func (c *Controller) AnchoredAnchorID() (string, bool) {
	return c.surface.AnchorID, c.surface.AnchorID != ""
}

// Surface returns a copy of the surface state.
func (c *Controller) Surface() Surface {
	return c.surface
}

// PendingAnchorID returns the anchor waiting on a deferred show, if any.
func (c *Controller) PendingAnchorID() (string, bool) {
	if c.pending == nil {
		return "", false
	}
	return c.pending.anchorID, true
}

func (c *Controller) lookup(kind Kind, id string) (Anchor, bool) {
	a, ok := c.anchors[id]
	if !ok {
		events.Tooltip.Ignore(kind.String(), id, "unregistered")
	}
	return a, ok
}

// releaseIfInactive hides the surface when neither activation source still
// holds the anchored element.
func (c *Controller) releaseIfInactive(reason string) {
	if !c.surface.Visible {
		return
	}
	id := c.surface.AnchorID
	if c.focused == id || c.hovered == id {
		return
	}
	c.hide(reason)
}

// activate anchors the surface to a in a single step, so observers never see
// a hidden frame or a label belonging to another anchor.
func (c *Controller) activate(a Anchor) {
	prev := c.surface
	next := Surface{Visible: true, Label: a.Label, AnchorID: a.ID}
	if prev == next {
		return
	}
	c.surface = next
	if prev.Visible {
		events.Tooltip.Reanchor(prev.AnchorID, a.ID, a.Label)
	} else {
		events.Tooltip.Show(a.ID, a.Label)
	}
	c.publish()
}

func (c *Controller) hide(reason string) {
	id := c.surface.AnchorID
	c.surface = Surface{}
	events.Tooltip.Hide(id, reason)
	c.publish()
}

func (c *Controller) schedule(id string) {
	c.seq++
	c.pending = &pendingShow{seq: c.seq, anchorID: id}
	events.Tooltip.Schedule(id, c.seq, c.hoverDelay.Milliseconds())
	c.scheduler.Schedule(Task{Seq: c.seq, AnchorID: id, Delay: c.hoverDelay})
}

func (c *Controller) cancelPending() {
	if c.pending == nil {
		return
	}
	p := c.pending
	c.pending = nil
	events.Tooltip.Cancel(p.anchorID, p.seq)
	if c.scheduler != nil {
		c.scheduler.Cancel(p.seq)
	}
}

func (c *Controller) publish() {
	if c.redraw != nil {
		c.redraw(c.surface)
	}
}
