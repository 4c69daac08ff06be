package browser

import (
	"strings"

	"github.com/atomicstack/files-tooltip/internal/logging/events"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter updates the search query and re-applies it.
func (l *Listing) SetFilter(query string) {
	l.Filter = query
	l.Cursor = 0
	l.applyFilter()
	if strings.TrimSpace(query) != "" {
		if idx := BestMatchIndex(l.Items, query); idx >= 0 {
			l.Cursor = idx
		}
	}
	events.Browser.Filter(l.Dir, l.Filter, len(l.Items))
}

// AppendFilter appends text to the query.
func (l *Listing) AppendFilter(text string) bool {
	if text == "" {
		return false
	}
	l.SetFilter(l.Filter + text)
	return true
}

// DeleteFilterRune removes the last rune of the query.
func (l *Listing) DeleteFilterRune() bool {
	runes := []rune(l.Filter)
	if len(runes) == 0 {
		return false
	}
	l.SetFilter(string(runes[:len(runes)-1]))
	return true
}

// ClearFilter drops the query.
func (l *Listing) ClearFilter() bool {
	if l.Filter == "" {
		return false
	}
	l.SetFilter("")
	return true
}

func (l *Listing) applyFilter() {
	l.Items = FilterEntries(l.Full, l.Filter)
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	if l.ViewportOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
	}
}

// FilterEntries returns entries whose names fuzzily match query, keeping
// listing order. Falls back to substring matching when fuzzy ranking finds
// nothing.
func FilterEntries(entries []Entry, query string) []Entry {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return cloneEntries(entries)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, names)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]Entry, 0, len(matches))
		for idx, e := range entries {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, e)
			}
		}
		return filtered
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), lower) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// BestMatchIndex picks the entry the cursor should land on for query:
// exact name, then prefix, then substring, then the closest fuzzy rank.
func BestMatchIndex(entries []Entry, query string) int {
	trimmed := strings.TrimSpace(query)
	if len(entries) == 0 {
		return -1
	}
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, e := range entries {
		if strings.EqualFold(e.Name, trimmed) {
			return i
		}
	}
	for i, e := range entries {
		if strings.HasPrefix(strings.ToLower(e.Name), lower) {
			return i
		}
	}
	for i, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), lower) {
			return i
		}
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, names)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance || (rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.OriginalIndex
}
