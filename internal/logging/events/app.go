package events

import (
	"os"

	"github.com/atomicstack/files-tooltip/internal/logging"
)

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(args []string, flags map[string]string) {
	payload := map[string]interface{}{
		"argv":  args,
		"flags": flags,
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	logging.Trace("app.start", payload)
}

func (AppTracer) Terminal(interactive bool, width, height int) {
	logging.Trace("app.terminal", map[string]interface{}{
		"interactive": interactive,
		"width":       width,
		"height":      height,
	})
}

func (AppTracer) Exit(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.exit", payload)
}
