package ui

import (
	"time"

	"github.com/atomicstack/files-tooltip/internal/tooltip"
	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives the UI model programmatically for integration tests.
// Deferred tooltip messages are held back until Flush so tests control when
// the hover delay elapses.
type Harness struct {
	model    *Model
	deferred []tea.Msg
	frames   []tooltip.Surface
	quit     bool
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	h := &Harness{model: model}
	if model != nil {
		model.after = func(_ time.Duration, msg tea.Msg) tea.Cmd {
			h.deferred = append(h.deferred, msg)
			return nil
		}
		model.onFrame = func(s tooltip.Surface) {
			h.frames = append(h.frames, s)
		}
	}
	return h
}

// Start runs the model's Init command.
func (h *Harness) Start() {
	if h.model == nil {
		return
	}
	h.processCmd(h.model.Init())
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// Flush delivers every deferred message queued so far, as if their delays
// had all elapsed.
func (h *Harness) Flush() {
	queued := h.deferred
	h.deferred = nil
	for _, msg := range queued {
		h.Send(msg)
	}
}

// Deferred reports how many delayed messages are waiting.
func (h *Harness) Deferred() int {
	return len(h.deferred)
}

// Frames returns the tooltip surfaces published since the last reset.
func (h *Harness) Frames() []tooltip.Surface {
	return h.frames
}

// ResetFrames forgets recorded surfaces.
func (h *Harness) ResetFrames() {
	h.frames = nil
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool {
	return h.quit
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			h.processCmd(c)
		}
	case tea.QuitMsg:
		h.quit = true
	default:
		h.Send(msg)
	}
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
