package ui

import (
	"github.com/atomicstack/files-tooltip/internal/logging"
	"github.com/atomicstack/files-tooltip/internal/logging/events"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	km := msg.(tea.KeyMsg)
	events.UI.Key(km.String(), m.focusedID())
	if m.searching {
		if handled := m.handleSearchKey(km); handled {
			return nil
		}
	}
	switch {
	case key.Matches(km, m.keys.Quit):
		return tea.Quit
	case key.Matches(km, m.keys.Escape):
		return m.handleEscape()
	case key.Matches(km, m.keys.Next):
		m.moveFocus(1)
	case key.Matches(km, m.keys.Prev):
		m.moveFocus(-1)
	case key.Matches(km, m.keys.Up):
		m.listing.MoveCursor(-1)
	case key.Matches(km, m.keys.Down):
		m.listing.MoveCursor(1)
	case key.Matches(km, m.keys.Home):
		m.listing.MoveCursorHome()
	case key.Matches(km, m.keys.End):
		m.listing.MoveCursorEnd()
	case key.Matches(km, m.keys.Activate):
		return m.activateFocused()
	case key.Matches(km, m.keys.Parent):
		return m.openParent()
	case key.Matches(km, m.keys.Search):
		m.searching = true
	case key.Matches(km, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	default:
		return nil
	}
	m.syncViewport()
	return nil
}

// handleSearchKey feeds text keys into the listing filter while search is
// active. Keys it does not consume fall through to the normal bindings.
func (m *Model) handleSearchKey(km tea.KeyMsg) bool {
	switch km.Type {
	case tea.KeyRunes:
		if km.Alt {
			return false
		}
		m.listing.AppendFilter(string(km.Runes))
		events.Filter.Append(m.listing.Dir, m.listing.Filter)
	case tea.KeySpace:
		m.listing.AppendFilter(" ")
		events.Filter.Append(m.listing.Dir, m.listing.Filter)
	case tea.KeyBackspace:
		if !m.listing.DeleteFilterRune() {
			m.searching = false
		}
		events.Filter.Backspace(m.listing.Dir, m.listing.Filter)
	case tea.KeyCtrlU:
		if m.listing.ClearFilter() {
			events.Filter.Cleared(m.listing.Dir)
		}
	default:
		return false
	}
	m.syncViewport()
	return true
}

// handleEscape peels back one layer per press: the tooltip first, then the
// search, then the program.
func (m *Model) handleEscape() tea.Cmd {
	switch {
	case m.tooltip.IsVisible():
		m.tooltip.Dismiss()
	case m.searching || m.listing.Filter != "":
		m.searching = false
		if m.listing.ClearFilter() {
			events.Filter.Cleared(m.listing.Dir)
		}
		m.syncViewport()
	default:
		return tea.Quit
	}
	return nil
}

func (m *Model) activateFocused() tea.Cmd {
	id := m.focusedID()
	events.UI.Activate(id)
	if id == fileListID {
		m.tooltip.GlobalClick(id)
		return m.openSelected()
	}
	return m.activate(id)
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev := msg.(tea.MouseMsg)
	target, index := m.hitTest(ev.X, ev.Y)
	switch ev.Action {
	case tea.MouseActionMotion:
		if logging.TraceEnabled() && m.motion.Allow() {
			events.UI.Pointer("motion", ev.X, ev.Y, target)
		}
		m.setHovered(target)
		return nil
	case tea.MouseActionPress:
	default:
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		m.listing.MoveCursor(-3)
		m.syncViewport()
		return nil
	case tea.MouseButtonWheelDown:
		m.listing.MoveCursor(3)
		m.syncViewport()
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}
	events.UI.Pointer("press", ev.X, ev.Y, target)
	m.setHovered(target)
	if target == "" {
		m.tooltip.GlobalClick("")
		return nil
	}
	m.focusID(target)
	if target == fileListID {
		if index >= 0 {
			m.listing.MoveCursor(index - m.listing.Cursor)
			m.syncViewport()
		}
		m.tooltip.GlobalClick(target)
		return nil
	}
	events.UI.Activate(target)
	return m.activate(target)
}

func (m *Model) syncViewport() {
	if m.listing == nil {
		return
	}
	m.listing.EnsureCursorVisible(m.visibleItems())
}
