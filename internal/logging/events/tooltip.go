package events

import "github.com/atomicstack/files-tooltip/internal/logging"

type TooltipTracer struct{}

var Tooltip = TooltipTracer{}

func (TooltipTracer) Register(id string, hasTooltip bool, label string) {
	logging.Trace("tooltip.register", map[string]interface{}{
		"anchor":     id,
		"hasTooltip": hasTooltip,
		"label":      label,
	})
}

func (TooltipTracer) Unregister(id string) {
	logging.Trace("tooltip.unregister", map[string]interface{}{"anchor": id})
}

func (TooltipTracer) Show(id, label string) {
	logging.Trace("tooltip.show", map[string]interface{}{"anchor": id, "label": label})
}

func (TooltipTracer) Reanchor(from, to, label string) {
	logging.Trace("tooltip.reanchor", map[string]interface{}{"from": from, "to": to, "label": label})
}

func (TooltipTracer) Hide(id, reason string) {
	logging.Trace("tooltip.hide", map[string]interface{}{"anchor": id, "reason": reason})
}

func (TooltipTracer) Ignore(event, id, reason string) {
	logging.Trace("tooltip.ignore", map[string]interface{}{"event": event, "anchor": id, "reason": reason})
}

func (TooltipTracer) Schedule(id string, seq uint64, delayMS int64) {
	logging.Trace("tooltip.schedule", map[string]interface{}{"anchor": id, "seq": seq, "delayMs": delayMS})
}

func (TooltipTracer) Cancel(id string, seq uint64) {
	logging.Trace("tooltip.cancel", map[string]interface{}{"anchor": id, "seq": seq})
}
