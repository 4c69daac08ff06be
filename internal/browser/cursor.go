package browser

// MoveCursor moves the cursor by delta, clamped to the item range.
func (l *Listing) MoveCursor(delta int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor += delta
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	return l.Cursor != old
}

// MoveCursorHome moves the cursor to the first item.
func (l *Listing) MoveCursorHome() bool {
	return l.MoveCursor(-len(l.Items))
}

// MoveCursorEnd moves the cursor to the last item.
func (l *Listing) MoveCursorEnd() bool {
	return l.MoveCursor(len(l.Items))
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (l *Listing) EnsureCursorVisible(maxVisible int) {
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := len(l.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.ViewportOffset > maxOffset {
		l.ViewportOffset = maxOffset
	}
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
	if l.Cursor < l.ViewportOffset {
		l.ViewportOffset = l.Cursor
	}
	if upper := l.ViewportOffset + maxVisible - 1; l.Cursor > upper {
		l.ViewportOffset = min(l.Cursor-maxVisible+1, maxOffset)
	}
}
