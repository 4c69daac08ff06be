package main

import (
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/files-tooltip/internal/app"
	"github.com/atomicstack/files-tooltip/internal/config"
	"github.com/atomicstack/files-tooltip/internal/logging"
	"github.com/atomicstack/files-tooltip/internal/logging/events"
)

func main() {
	os.Exit(run(config.MustLoad(), os.Stderr))
}

// run executes one session and returns the process exit status: 2 for an
// invalid configuration, 1 when the browser or script fails.
func run(cfg config.Config, stderr io.Writer) int {
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 2
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	events.App.Start(cfg.Args, cfg.Flags)

	err := app.Run(cfg.App)
	events.App.Exit(err)
	if err != nil {
		logging.Error(err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
