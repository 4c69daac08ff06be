// Package browser holds the file list state of the browser view: the
// directory entries, the search filter and the cursor/viewport.
package browser

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/atomicstack/files-tooltip/internal/format/table"
	"github.com/atomicstack/files-tooltip/internal/logging/events"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
)

// Entry is a single directory entry.
type Entry struct {
	Name    string
	IsDir   bool
	Size    int64
	ModTime time.Time
}

// Listing encapsulates the entries of one directory together with filter,
// cursor and viewport state.
type Listing struct {
	Dir            string
	Full           []Entry
	Items          []Entry
	Filter         string
	Cursor         int
	ViewportOffset int
	Descending     bool
}

// Load reads dir from fs. Hidden entries are skipped; directories sort
// before files.
func Load(fs afero.Fs, dir string) (*Listing, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		if strings.HasPrefix(info.Name(), ".") {
			continue
		}
		entries = append(entries, Entry{
			Name:    info.Name(),
			IsDir:   info.IsDir(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	events.Browser.Load(dir, len(entries))
	return NewListing(dir, entries), nil
}

// NewListing builds a listing from entries.
func NewListing(dir string, entries []Entry) *Listing {
	full := cloneEntries(entries)
	sortEntries(full, false)
	l := &Listing{Dir: dir, Full: full}
	l.applyFilter()
	return l
}

// SetDescending switches between ascending and descending name order.
// Directories stay ahead of files either way.
func (l *Listing) SetDescending(desc bool) {
	if l.Descending == desc {
		return
	}
	l.Descending = desc
	sortEntries(l.Full, desc)
	l.applyFilter()
}

func sortEntries(entries []Entry, desc bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		a, b := strings.ToLower(entries[i].Name), strings.ToLower(entries[j].Name)
		if desc {
			return a > b
		}
		return a < b
	})
}

// Parent returns the parent directory, or false at the root.
func (l *Listing) Parent() (string, bool) {
	clean := path.Clean(l.Dir)
	parent := path.Dir(clean)
	if parent == clean {
		return "", false
	}
	return parent, true
}

// Title returns the directory name shown in the breadcrumb.
func (l *Listing) Title() string {
	clean := path.Clean(l.Dir)
	if clean == "/" || clean == "." {
		return clean
	}
	return path.Base(clean)
}

// Selected returns the entry under the cursor.
func (l *Listing) Selected() (Entry, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Entry{}, false
	}
	return l.Items[l.Cursor], true
}

// Rows renders the visible window of items as aligned table rows.
func (l *Listing) Rows(start, count, nameWidth int) []string {
	if start < 0 {
		start = 0
	}
	end := start + count
	if count <= 0 || end > len(l.Items) {
		end = len(l.Items)
	}
	if start >= end {
		return nil
	}
	rows := make([][]string, 0, end-start)
	for _, e := range l.Items[start:end] {
		name, size := e.Name, humanize.Bytes(uint64(max(e.Size, 0)))
		if e.IsDir {
			name += "/"
			size = ""
		}
		modified := ""
		if !e.ModTime.IsZero() {
			modified = e.ModTime.Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{name, size, modified})
	}
	return table.Format(rows, []table.Column{
		{MaxWidth: nameWidth},
		{Align: table.AlignRight},
		{},
	})
}

func cloneEntries(entries []Entry) []Entry {
	dup := make([]Entry, len(entries))
	copy(dup, entries)
	return dup
}
