package ui

import (
	"strings"

	"github.com/atomicstack/files-tooltip/internal/toolbar"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	defaultWidth     = 80
	thumbCellWidth   = 16
	headerRows       = 3 // toolbar, tooltip row, rule
	toolbarSeparator = " "
	// size and modified columns plus separators
	fixedColumnsWidth = 27
	minNameWidth      = 8
)

// region is the horizontal extent of a toolbar anchor on row 0. x1 is
// exclusive.
type region struct {
	id     string
	x0, x1 int
}

func (m *Model) View() string {
	width := m.renderWidth()
	lines := []string{
		m.viewToolbar(width),
		m.viewTooltip(width),
		styles.Rule.Render(strings.Repeat("─", width)),
	}
	if m.showSearchLine() {
		lines = append(lines, m.viewSearch(width))
	}
	if m.showStatusLine() {
		if m.errMsg != "" {
			lines = append(lines, styles.Error.Render(fit(m.errMsg, width)))
		} else {
			lines = append(lines, styles.Info.Render("Loading…"))
		}
	}
	if m.thumbnail {
		lines = append(lines, m.viewGrid(width)...)
	} else {
		lines = append(lines, m.viewRows(width)...)
	}
	if m.showFooter {
		lines = append(lines, "", styles.Footer.Render(m.help.View(m.keys)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultWidth
}

func (m *Model) caption(b toolbar.Button) string {
	if b.Kind == toolbar.KindBreadcrumb {
		if m.listing != nil {
			return m.listing.Title()
		}
		return b.Caption
	}
	if b.Caption != "" {
		return b.Caption
	}
	return b.ID
}

func (m *Model) toolbarRegions() []region {
	regions := make([]region, 0, len(m.buttons))
	x := 0
	for i, b := range m.buttons {
		if i > 0 {
			x += lipgloss.Width(toolbarSeparator)
		}
		w := lipgloss.Width(" " + m.caption(b) + " ")
		regions = append(regions, region{id: b.ID, x0: x, x1: x + w})
		x += w
	}
	return regions
}

func (m *Model) viewToolbar(width int) string {
	focused := m.focusedID()
	parts := make([]string, 0, len(m.buttons))
	for _, b := range m.buttons {
		style := styles.Button
		switch {
		case b.ID == focused:
			style = styles.ButtonFocused
		case b.ID == m.hovered:
			style = styles.ButtonHovered
		case b.Kind == toolbar.KindBreadcrumb:
			style = styles.Breadcrumb
		}
		parts = append(parts, style.Render(" "+m.caption(b)+" "))
	}
	return fit(strings.Join(parts, toolbarSeparator), width)
}

// viewTooltip renders the tooltip row. The label starts under its anchor and
// is shifted left when it would run past the right edge.
func (m *Model) viewTooltip(width int) string {
	id, ok := m.tooltip.AnchoredAnchorID()
	label := m.tooltip.CurrentLabelText()
	if !ok || label == "" {
		return ""
	}
	x := 0
	for _, r := range m.toolbarRegions() {
		if r.id == id {
			x = r.x0
			break
		}
	}
	text := fit(" "+label+" ", width)
	if over := x + lipgloss.Width(text) - width; over > 0 {
		x -= over
	}
	if x < 0 {
		x = 0
	}
	return strings.Repeat(" ", x) + styles.Tooltip.Render(text)
}

func (m *Model) viewSearch(width int) string {
	prompt := styles.FilterPrompt.Render("/ ")
	if m.listing.Filter == "" {
		return prompt + styles.FilterPlaceholder.Render("type to filter")
	}
	return prompt + styles.Filter.Render(fit(m.listing.Filter, width-2))
}

func (m *Model) viewRows(width int) []string {
	if len(m.listing.Items) == 0 {
		return m.emptyBody()
	}
	nameWidth := max(width-fixedColumnsWidth, minNameWidth)
	offset := m.listing.ViewportOffset
	rows := m.listing.Rows(offset, m.visibleRows(), nameWidth)
	out := make([]string, len(rows))
	for i, row := range rows {
		idx := offset + i
		out[i] = m.itemStyle(idx).Render(fit(row, width))
	}
	return out
}

func (m *Model) viewGrid(width int) []string {
	if len(m.listing.Items) == 0 {
		return m.emptyBody()
	}
	cols := m.columns()
	count := m.visibleItems()
	items := m.listing.Items[m.listing.ViewportOffset:]
	if count > 0 && len(items) > count {
		items = items[:count]
	}
	var out []string
	var line strings.Builder
	for i, e := range items {
		name := e.Name
		if e.IsDir {
			name += "/"
		}
		cell := fit(name, thumbCellWidth-2)
		cell += strings.Repeat(" ", thumbCellWidth-lipgloss.Width(cell))
		line.WriteString(m.itemStyle(m.listing.ViewportOffset + i).Render(cell))
		if (i+1)%cols == 0 || i == len(items)-1 {
			out = append(out, fit(strings.TrimRight(line.String(), " "), width))
			line.Reset()
		}
	}
	return out
}

func (m *Model) emptyBody() []string {
	if m.loading || m.errMsg != "" {
		return nil
	}
	if m.listing.Filter != "" {
		return []string{styles.Info.Render("no matches")}
	}
	return []string{styles.Info.Render("empty directory")}
}

func (m *Model) itemStyle(idx int) *lipgloss.Style {
	if idx == m.listing.Cursor {
		return styles.SelectedItem
	}
	if idx >= 0 && idx < len(m.listing.Items) && m.listing.Items[idx].IsDir {
		return styles.Directory
	}
	return styles.Item
}

func (m *Model) showSearchLine() bool {
	return m.searching || (m.listing != nil && m.listing.Filter != "")
}

func (m *Model) showStatusLine() bool {
	return m.loading || m.errMsg != ""
}

// bodyTop is the screen row of the first file entry.
func (m *Model) bodyTop() int {
	top := headerRows
	if m.showSearchLine() {
		top++
	}
	if m.showStatusLine() {
		top++
	}
	return top
}

func (m *Model) footerRows() int {
	if !m.showFooter {
		return 0
	}
	return 1 + lipgloss.Height(m.help.View(m.keys))
}

// visibleRows returns how many body rows fit, or -1 when the height is
// unknown.
func (m *Model) visibleRows() int {
	if m.height <= 0 {
		return -1
	}
	remain := m.height - m.bodyTop() - m.footerRows()
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) columns() int {
	if !m.thumbnail {
		return 1
	}
	return max(1, m.renderWidth()/thumbCellWidth)
}

func (m *Model) visibleItems() int {
	rows := m.visibleRows()
	if rows < 0 {
		return -1
	}
	return rows * m.columns()
}

// hitTest maps a screen cell to the anchor under it and, for the file list,
// the item index (-1 when the cell holds no item).
func (m *Model) hitTest(x, y int) (string, int) {
	if y == 0 {
		// The separator cell after a button still belongs to it, so crossing
		// to a neighbour never passes over empty space.
		regions := m.toolbarRegions()
		for i, r := range regions {
			end := r.x1
			if i+1 < len(regions) {
				end = regions[i+1].x0
			}
			if x >= r.x0 && x < end {
				return r.id, -1
			}
		}
		return "", -1
	}
	top := m.bodyTop()
	if y < top || m.listing == nil {
		return "", -1
	}
	row := y - top
	if rows := m.visibleRows(); rows >= 0 && row >= rows {
		return "", -1
	}
	cols := m.columns()
	col := 0
	if m.thumbnail {
		col = x / thumbCellWidth
		if col >= cols {
			return fileListID, -1
		}
	}
	idx := m.listing.ViewportOffset + row*cols + col
	if idx >= len(m.listing.Items) {
		return fileListID, -1
	}
	return fileListID, idx
}

func fit(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
