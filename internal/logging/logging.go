package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "files-tooltip.log"

// sink is the shared append-only log file. Errors are plain log lines and
// trace entries are one JSON object per line.
type sink struct {
	mu    sync.Mutex
	path  string
	trace bool
}

var std = &sink{path: defaultLogFile}

func (s *sink) append(write func(io.Writer) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging to %s failed: %v\n", s.path, err)
		return
	}
	defer f.Close()
	if err := write(f); err != nil {
		fmt.Fprintf(os.Stderr, "logging to %s failed: %v\n", s.path, err)
	}
}

// Error appends err to the log file.
func Error(err error) {
	if err == nil {
		return
	}
	std.append(func(w io.Writer) error {
		return log.New(w, "", log.LstdFlags).Output(2, err.Error())
	})
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	std.mu.Lock()
	std.trace = enabled
	std.mu.Unlock()
}

// TraceEnabled reports whether Trace writes anything. Callers use it to skip
// building payloads on hot paths.
func TraceEnabled() bool {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.trace
}

type traceEntry struct {
	Time    time.Time   `json:"time"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// Trace appends a JSON entry for event when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	entry := traceEntry{Time: time.Now().UTC(), Event: event, Payload: payload}
	std.append(func(w io.Writer) error {
		return json.NewEncoder(w).Encode(entry)
	})
}

// Configure sets the log destination, creating missing directories. Blank
// paths, or paths whose directory cannot be created, fall back to the
// default file in the working directory.
func Configure(path string) {
	path = strings.TrimSpace(path)
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
			path = ""
		}
	}
	if path == "" {
		path = defaultLogFile
	}
	std.mu.Lock()
	std.path = path
	std.mu.Unlock()
}

func currentPath() string {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.path
}
