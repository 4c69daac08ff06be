package events

import "github.com/atomicstack/files-tooltip/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

var (
	UI     = UITracer{}
	Filter = FilterTracer{}
)

func (UITracer) Key(key, focus string) {
	logging.Trace("ui.key", map[string]interface{}{"key": key, "focus": focus})
}

func (UITracer) Pointer(action string, x, y int, target string) {
	logging.Trace("ui.pointer", map[string]interface{}{
		"action": action,
		"x":      x,
		"y":      y,
		"target": target,
	})
}

func (UITracer) Focus(from, to string) {
	logging.Trace("ui.focus", map[string]interface{}{"from": from, "to": to})
}

func (UITracer) Activate(id string) {
	logging.Trace("ui.activate", map[string]interface{}{"id": id})
}

func (FilterTracer) Append(dir, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"dir": dir, "filter": filter})
}

func (FilterTracer) Backspace(dir, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"dir": dir, "filter": filter})
}

func (FilterTracer) Cleared(dir string) {
	logging.Trace("filter.clear", map[string]interface{}{"dir": dir})
}
