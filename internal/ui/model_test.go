package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/files-tooltip/internal/testutil"
	"github.com/atomicstack/files-tooltip/internal/tooltip"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

const downloads = testutil.DownloadsDir

func newTestHarness(t *testing.T) *Harness {
	t.Helper()
	m, err := NewModel(Options{
		Fs:         testutil.DownloadsFs(t),
		Dir:        downloads,
		HoverDelay: 500 * time.Millisecond,
		Width:      80,
		Height:     20,
	})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	h := NewHarness(m)
	h.Start()
	return h
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func regionOf(t *testing.T, m *Model, id string) region {
	t.Helper()
	for _, r := range m.toolbarRegions() {
		if r.id == id {
			return r
		}
	}
	t.Fatalf("no toolbar region for %s", id)
	return region{}
}

func plainView(h *Harness) string {
	return ansi.Strip(h.View())
}

func tooltipRow(h *Harness) string {
	lines := strings.Split(plainView(h), "\n")
	if len(lines) < 2 {
		return ""
	}
	return lines[1]
}

func expectLabel(t *testing.T, h *Harness, label string) {
	t.Helper()
	c := h.Model().Tooltip()
	if !c.IsVisible() || c.CurrentLabelText() != label {
		t.Fatalf("expected tooltip %q, got visible=%v label=%q", label, c.IsVisible(), c.CurrentLabelText())
	}
	if !strings.Contains(tooltipRow(h), label) {
		t.Fatalf("expected tooltip row to contain %q, got %q", label, tooltipRow(h))
	}
}

func expectHidden(t *testing.T, h *Harness) {
	t.Helper()
	c := h.Model().Tooltip()
	if c.IsVisible() || c.CurrentLabelText() != "" {
		t.Fatalf("expected hidden tooltip, got label %q", c.CurrentLabelText())
	}
	if strings.TrimSpace(tooltipRow(h)) != "" {
		t.Fatalf("expected empty tooltip row, got %q", tooltipRow(h))
	}
}

func TestInitialViewListsDirectory(t *testing.T) {
	h := newTestHarness(t)
	view := plainView(h)
	for _, want := range []string{"Downloads", "search", "photos/", "beautiful.jpg", "2.0 kB"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q:\n%s", want, view)
		}
	}
	expectHidden(t, h)
}

func TestTabFocusShowsTooltip(t *testing.T) {
	h := newTestHarness(t)
	h.Send(key(tea.KeyTab))
	if got := h.Model().focusedID(); got != "breadcrumb-path-0" {
		t.Fatalf("expected breadcrumb focus, got %s", got)
	}
	expectHidden(t, h)

	h.Send(key(tea.KeyTab))
	expectLabel(t, h, "Search")

	h.Send(key(tea.KeyTab))
	expectLabel(t, h, "Switch to thumbnail view")

	h.Send(key(tea.KeyShiftTab))
	expectLabel(t, h, "Search")

	h.Send(key(tea.KeyShiftTab))
	expectHidden(t, h)
}

func TestTabBetweenTooltipButtonsPublishesOneFrame(t *testing.T) {
	h := newTestHarness(t)
	h.Send(key(tea.KeyTab))
	h.Send(key(tea.KeyTab))
	expectLabel(t, h, "Search")

	h.ResetFrames()
	h.Send(key(tea.KeyTab))
	want := tooltip.Surface{Visible: true, Label: "Switch to thumbnail view", AnchorID: "view-button"}
	frames := h.Frames()
	if len(frames) != 1 || frames[0] != want {
		t.Fatalf("expected single frame %#v, got %#v", want, frames)
	}

	h.ResetFrames()
	h.Send(key(tea.KeyShiftTab))
	h.Send(key(tea.KeyShiftTab))
	frames = h.Frames()
	if len(frames) != 2 || frames[0].AnchorID != "search-button" || frames[1] != (tooltip.Surface{}) {
		t.Fatalf("expected search frame then hidden frame, got %#v", frames)
	}
}

func TestTooltipDrawnUnderAnchor(t *testing.T) {
	h := newTestHarness(t)
	h.Send(key(tea.KeyTab))
	h.Send(key(tea.KeyTab))
	r := regionOf(t, h.Model(), "search-button")
	row := tooltipRow(h)
	if idx := strings.Index(row, "Search"); idx != r.x0+1 {
		t.Fatalf("expected label at column %d, got %d in %q", r.x0+1, idx, row)
	}
}

func TestHoverShowsAfterDelay(t *testing.T) {
	h := newTestHarness(t)
	r := regionOf(t, h.Model(), "search-button")
	h.Send(motion(r.x0+1, 0))
	expectHidden(t, h)
	if h.Deferred() != 1 {
		t.Fatalf("expected one deferred show, got %d", h.Deferred())
	}
	h.Flush()
	expectLabel(t, h, "Search")
}

func TestHoverLeaveBeforeDelayCancelsShow(t *testing.T) {
	h := newTestHarness(t)
	r := regionOf(t, h.Model(), "search-button")
	h.Send(motion(r.x0+1, 0))
	h.Send(motion(79, 1))
	h.Flush()
	expectHidden(t, h)
}

func TestHoverMovesVisibleTooltipImmediately(t *testing.T) {
	h := newTestHarness(t)
	h.Send(key(tea.KeyTab))
	h.Send(key(tea.KeyTab))
	expectLabel(t, h, "Search")

	r := regionOf(t, h.Model(), "view-button")
	h.Send(motion(r.x0+1, 0))
	if h.Deferred() != 0 {
		t.Fatalf("expected no deferred show while visible, got %d", h.Deferred())
	}
	expectLabel(t, h, "Switch to thumbnail view")

	h.Send(motion(79, 1))
	expectHidden(t, h)
}

func TestHoverAcrossToolbarGapKeepsTooltip(t *testing.T) {
	h := newTestHarness(t)
	search := regionOf(t, h.Model(), "search-button")
	view := regionOf(t, h.Model(), "view-button")
	if view.x0 <= search.x1 {
		t.Fatalf("expected a separator between buttons, got %d..%d", search.x1, view.x0)
	}

	h.Send(motion(search.x0+1, 0))
	h.Flush()
	expectLabel(t, h, "Search")

	h.ResetFrames()
	h.Send(motion(search.x1, 0))
	expectLabel(t, h, "Search")
	if len(h.Frames()) != 0 {
		t.Fatalf("expected gap cell to keep the tooltip untouched, got %#v", h.Frames())
	}

	h.Send(motion(view.x0, 0))
	if h.Deferred() != 0 {
		t.Fatalf("expected no deferred show while visible, got %d", h.Deferred())
	}
	expectLabel(t, h, "Switch to thumbnail view")
	if len(h.Frames()) != 1 {
		t.Fatalf("expected one re-anchor frame, got %#v", h.Frames())
	}
}

func TestClickAnywhereDismisses(t *testing.T) {
	h := newTestHarness(t)
	h.Send(key(tea.KeyTab))
	h.Send(key(tea.KeyTab))
	expectLabel(t, h, "Search")

	h.Send(press(79, 1))
	expectHidden(t, h)
	if got := h.Model().focusedID(); got != "search-button" {
		t.Fatalf("expected focus to stay on search-button, got %s", got)
	}
}

func TestClickOnButtonHidesAndActivates(t *testing.T) {
	h := newTestHarness(t)
	r := regionOf(t, h.Model(), "search-button")
	h.Send(press(r.x0+1, 0))
	expectHidden(t, h)
	if !h.Model().searching {
		t.Fatalf("expected search mode after clicking search")
	}
	h.Flush()
	expectHidden(t, h)
}

func TestViewButtonRelabelsTooltip(t *testing.T) {
	h := newTestHarness(t)
	for i := 0; i < 3; i++ {
		h.Send(key(tea.KeyTab))
	}
	expectLabel(t, h, "Switch to thumbnail view")

	h.Send(key(tea.KeyEnter))
	expectHidden(t, h)
	if !h.Model().thumbnail {
		t.Fatalf("expected thumbnail mode")
	}
	a, ok := h.Model().Tooltip().Anchor("view-button")
	if !ok || a.Label != "Switch to list view" {
		t.Fatalf("expected relabelled anchor, got %#v", a)
	}

	h.Send(key(tea.KeyShiftTab))
	h.Send(key(tea.KeyTab))
	expectLabel(t, h, "Switch to list view")
}

func TestEscapeDismissesThenQuits(t *testing.T) {
	h := newTestHarness(t)
	h.Send(key(tea.KeyTab))
	h.Send(key(tea.KeyTab))
	h.Send(key(tea.KeyEsc))
	expectHidden(t, h)
	if h.Quit() {
		t.Fatalf("expected first escape to only dismiss")
	}
	h.Send(key(tea.KeyEsc))
	if !h.Quit() {
		t.Fatalf("expected second escape to quit")
	}
}

func TestTerminalBlurDismisses(t *testing.T) {
	h := newTestHarness(t)
	h.Send(key(tea.KeyTab))
	h.Send(key(tea.KeyTab))
	h.Send(tea.BlurMsg{})
	expectHidden(t, h)
}

func TestEnterOpensDirectory(t *testing.T) {
	h := newTestHarness(t)
	h.Send(key(tea.KeyEnter))
	if got := h.Model().listing.Dir; got != downloads+"/photos" {
		t.Fatalf("expected photos directory, got %s", got)
	}
	if !strings.Contains(plainView(h), "a.png") {
		t.Fatalf("expected a.png in view:\n%s", h.View())
	}
	r := regionOf(t, h.Model(), "breadcrumb-path-0")
	h.Send(press(r.x0+1, 0))
	if got := h.Model().listing.Dir; got != downloads {
		t.Fatalf("expected breadcrumb to open parent, got %s", got)
	}
}

func TestSearchFiltersListing(t *testing.T) {
	h := newTestHarness(t)
	h.Send(runes("/"))
	h.Send(runes("bea"))
	items := h.Model().listing.Items
	if len(items) != 1 || items[0].Name != "beautiful.jpg" {
		t.Fatalf("expected only beautiful.jpg, got %#v", items)
	}
	if strings.Contains(plainView(h), "notes.txt") {
		t.Fatalf("expected notes.txt filtered out")
	}
	h.Send(key(tea.KeyEsc))
	if h.Model().searching || len(h.Model().listing.Items) != 3 {
		t.Fatalf("expected escape to clear search")
	}
}

func TestClickOnRowMovesCursor(t *testing.T) {
	h := newTestHarness(t)
	top := h.Model().bodyTop()
	h.Send(press(2, top+2))
	if got := h.Model().listing.Cursor; got != 2 {
		t.Fatalf("expected cursor on third row, got %d", got)
	}
	if got := h.Model().focusedID(); got != fileListID {
		t.Fatalf("expected file list focus, got %s", got)
	}
}

func TestSortButtonReversesFiles(t *testing.T) {
	h := newTestHarness(t)
	h.Model().activate("sort-button")
	var names []string
	for _, e := range h.Model().listing.Items {
		names = append(names, e.Name)
	}
	if got := strings.Join(names, ","); got != "photos,notes.txt,beautiful.jpg" {
		t.Fatalf("unexpected order %q", got)
	}
}
