package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atomicstack/files-tooltip/internal/logging/events"
	"github.com/atomicstack/files-tooltip/internal/script"
	"github.com/atomicstack/files-tooltip/internal/toolbar"
	"github.com/atomicstack/files-tooltip/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
)

// Config describes user-provided application options.
type Config struct {
	Dir        string
	Toolbar    string
	HoverDelay time.Duration
	Script     string
	Width      int
	Height     int
	ShowFooter bool
}

// Run executes the script when one is configured and the interactive
// browser otherwise.
func Run(cfg Config) error {
	fs := afero.NewOsFs()
	if cfg.Script != "" {
		return RunScript(context.Background(), fs, cfg.Script, os.Stdout)
	}
	tty := currentTerminal()
	events.App.Terminal(tty.Interactive, tty.Width, tty.Height)
	if !tty.Interactive {
		return ErrNoTerminal
	}
	buttons, err := loadToolbar(fs, cfg.Toolbar)
	if err != nil {
		return err
	}
	dir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return fmt.Errorf("resolve directory: %w", err)
	}
	model, err := ui.NewModel(ui.Options{
		Fs:         fs,
		Dir:        dir,
		Buttons:    buttons,
		HoverDelay: cfg.HoverDelay,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
	})
	if err != nil {
		return fmt.Errorf("build view: %w", err)
	}
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// RunScript replays the script at path and writes the report to out.
func RunScript(ctx context.Context, fs afero.Fs, path string, out io.Writer) error {
	f, err := script.Load(fs, path)
	if err != nil {
		return err
	}
	report, err := script.Run(ctx, f)
	if lines := report.Lines(); len(lines) > 0 {
		fmt.Fprintln(out, strings.Join(lines, "\n"))
	}
	return err
}

func loadToolbar(fs afero.Fs, path string) ([]toolbar.Button, error) {
	if path == "" {
		return toolbar.Default(), nil
	}
	return toolbar.Load(fs, path)
}
