package events

import "github.com/atomicstack/files-tooltip/internal/logging"

type BrowserTracer struct{}

var Browser = BrowserTracer{}

func (BrowserTracer) Load(dir string, entries int) {
	logging.Trace("browser.load", map[string]interface{}{"dir": dir, "entries": entries})
}

func (BrowserTracer) Filter(dir, filter string, matches int) {
	logging.Trace("browser.filter", map[string]interface{}{"dir": dir, "filter": filter, "matches": matches})
}

func (BrowserTracer) Open(path string) {
	logging.Trace("browser.open", map[string]interface{}{"path": path})
}

func (BrowserTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("browser.error", map[string]interface{}{"error": err.Error()})
}
