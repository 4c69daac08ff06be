package ui

import (
	"path"

	"github.com/atomicstack/files-tooltip/internal/browser"
	"github.com/atomicstack/files-tooltip/internal/logging"
	"github.com/atomicstack/files-tooltip/internal/logging/events"
	"github.com/atomicstack/files-tooltip/internal/toolbar"
	"github.com/atomicstack/files-tooltip/internal/tooltip"
	tea "github.com/charmbracelet/bubbletea"
)

// tooltipDueMsg delivers a deferred tooltip task back to Update.
type tooltipDueMsg struct {
	seq uint64
}

// dirLoadedMsg mirrors the async directory loader response.
type dirLoadedMsg struct {
	dir     string
	listing *browser.Listing
	err     error
}

func (m *Model) scheduleTooltip(task tooltip.Task) {
	m.pending = append(m.pending, m.after(task.Delay, tooltipDueMsg{seq: task.Seq}))
}

func (m *Model) handleTooltipDueMsg(msg tea.Msg) tea.Cmd {
	m.tooltip.Fire(msg.(tooltipDueMsg).seq)
	return nil
}

func (m *Model) loadDirCmd(dir string) tea.Cmd {
	fs := m.fs
	return func() tea.Msg {
		listing, err := browser.Load(fs, dir)
		if err != nil {
			logging.Error(err)
		}
		return dirLoadedMsg{dir: dir, listing: listing, err: err}
	}
}

func (m *Model) handleDirLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded := msg.(dirLoadedMsg)
	m.loading = false
	if loaded.err != nil {
		m.errMsg = loaded.err.Error()
		events.Browser.Error(loaded.err)
		return nil
	}
	m.errMsg = ""
	m.dir = loaded.dir
	m.listing = loaded.listing
	m.applySort()
	m.syncViewport()
	return nil
}

func (m *Model) openDir(dir string) tea.Cmd {
	m.loading = true
	m.searching = false
	events.Browser.Open(dir)
	return m.loadDirCmd(dir)
}

func (m *Model) openSelected() tea.Cmd {
	entry, ok := m.listing.Selected()
	if !ok || !entry.IsDir {
		return nil
	}
	return m.openDir(path.Join(m.listing.Dir, entry.Name))
}

func (m *Model) openParent() tea.Cmd {
	parent, ok := m.listing.Parent()
	if !ok {
		return nil
	}
	return m.openDir(parent)
}

// moveFocus shifts focus around the ring and reports the change to the
// tooltip controller as a blur of the old anchor followed by a focus of the
// new one.
func (m *Model) moveFocus(delta int) {
	if len(m.focusRing) == 0 {
		return
	}
	next := (m.focus + delta) % len(m.focusRing)
	if next < 0 {
		next += len(m.focusRing)
	}
	m.focusAt(next)
}

func (m *Model) focusID(id string) {
	for i, candidate := range m.focusRing {
		if candidate == id {
			m.focusAt(i)
			return
		}
	}
}

func (m *Model) focusAt(idx int) {
	prev := m.focusedID()
	m.focus = idx
	next := m.focusedID()
	if prev == next {
		return
	}
	events.UI.Focus(prev, next)
	// Focus first so moving between tooltip anchors re-anchors in one frame;
	// the blur that follows is then stale.
	if next != "" {
		m.tooltip.Focus(next)
	}
	if prev != "" {
		m.tooltip.Blur(prev)
	}
}

func (m *Model) publishFrame(s tooltip.Surface) {
	if m.onFrame != nil {
		m.onFrame(s)
	}
}

// setHovered reports pointer movement between anchors. An empty id means the
// pointer is over no anchor.
func (m *Model) setHovered(id string) {
	if id == m.hovered {
		return
	}
	prev := m.hovered
	m.hovered = id
	// Enter before leave, as with focus, so a visible tooltip re-anchors
	// instead of hiding and waiting out the hover delay again.
	if id != "" {
		m.tooltip.PointerEnter(id)
	}
	if prev != "" {
		m.tooltip.PointerLeave(prev)
	}
}

// activate runs a toolbar button's action. Activation counts as a click in
// the view, so the tooltip is dismissed first.
func (m *Model) activate(id string) tea.Cmd {
	m.tooltip.GlobalClick(id)
	b, ok := m.button(id)
	if !ok {
		return nil
	}
	switch b.ID {
	case "search-button":
		m.searching = !m.searching
		if !m.searching {
			m.listing.ClearFilter()
		}
	case "view-button":
		m.thumbnail = !m.thumbnail
		label := viewLabelThumbnail
		if m.thumbnail {
			label = viewLabelList
		}
		m.relabel(b.ID, label)
	case "sort-button":
		m.reversed = !m.reversed
		m.applySort()
	case "gear-button":
		m.showFooter = !m.showFooter
	default:
		if b.Kind == toolbar.KindBreadcrumb {
			return m.openParent()
		}
	}
	m.syncViewport()
	return nil
}

func (m *Model) relabel(id, label string) {
	for i := range m.buttons {
		if m.buttons[i].ID != id {
			continue
		}
		m.buttons[i].Label = label
		if err := m.tooltip.RegisterAnchor(id, m.buttons[i].HasTooltip(), label); err != nil {
			logging.Error(err)
		}
		return
	}
}

func (m *Model) applySort() {
	if m.listing != nil {
		m.listing.SetDescending(m.reversed)
	}
}
