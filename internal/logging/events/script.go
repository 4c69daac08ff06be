package events

import "github.com/atomicstack/files-tooltip/internal/logging"

type ScriptTracer struct{}

var Script = ScriptTracer{}

func (ScriptTracer) Step(index int, step string) {
	logging.Trace("script.step", map[string]interface{}{"index": index, "step": step})
}

func (ScriptTracer) Result(passed, failed int) {
	logging.Trace("script.result", map[string]interface{}{"passed": passed, "failed": failed})
}
