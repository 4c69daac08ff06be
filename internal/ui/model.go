package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/files-tooltip/internal/backend"
	"github.com/atomicstack/files-tooltip/internal/browser"
	"github.com/atomicstack/files-tooltip/internal/theme"
	"github.com/atomicstack/files-tooltip/internal/toolbar"
	"github.com/atomicstack/files-tooltip/internal/tooltip"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
)

// fileListID is the anchor id of the file list. It takes part in focus and
// hover tracking but carries no tooltip.
const fileListID = "file-list"

const (
	viewLabelThumbnail = "Switch to thumbnail view"
	viewLabelList      = "Switch to list view"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Fs         afero.Fs
	Dir        string
	Buttons    []toolbar.Button
	HoverDelay time.Duration
	Width      int
	Height     int
	ShowFooter bool
}

// Model implements the Bubble Tea model for the file browser view.
type Model struct {
	fs      afero.Fs
	dir     string
	listing *browser.Listing
	loading bool
	errMsg  string

	buttons   []toolbar.Button
	tooltip   *tooltip.Controller
	focusRing []string
	focus     int
	hovered   string
	searching bool
	thumbnail bool
	reversed  bool

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	keys   keyMap
	help   help.Model
	motion *backend.Throttle

	// onFrame sees every surface the controller publishes.
	onFrame func(tooltip.Surface)

	// after turns a deferred tooltip task into a command. Tests swap it to
	// control time.
	after   func(time.Duration, tea.Msg) tea.Cmd
	pending []tea.Cmd

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the view state and registers the toolbar anchors.
func NewModel(opts Options) (*Model, error) {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	buttons := opts.Buttons
	if len(buttons) == 0 {
		buttons = toolbar.Default()
	}
	m := &Model{
		fs:         fs,
		dir:        dir,
		listing:    browser.NewListing(dir, nil),
		loading:    true,
		buttons:    append([]toolbar.Button(nil), buttons...),
		showFooter: opts.ShowFooter,
		keys:       defaultKeyMap(),
		help:       help.New(),
		motion:     backend.NewThrottle(50 * time.Millisecond),
		after: func(d time.Duration, msg tea.Msg) tea.Cmd {
			return tea.Tick(d, func(time.Time) tea.Msg { return msg })
		},
	}
	m.tooltip = tooltip.New(
		tooltip.WithHoverDelay(opts.HoverDelay),
		tooltip.WithScheduler(tooltip.SchedulerFunc(m.scheduleTooltip)),
		tooltip.WithRedraw(m.publishFrame),
	)
	if err := toolbar.Register(m.tooltip, m.buttons); err != nil {
		return nil, err
	}
	if err := m.tooltip.RegisterAnchor(fileListID, false, ""); err != nil {
		return nil, err
	}
	for _, b := range m.buttons {
		m.focusRing = append(m.focusRing, b.ID)
	}
	m.focusRing = append(m.focusRing, fileListID)
	m.focus = len(m.focusRing) - 1
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.registerHandlers()
	return m, nil
}

// Tooltip exposes the controller for observation.
func (m *Model) Tooltip() *tooltip.Controller {
	return m.tooltip
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return m.loadDirCmd(m.dir)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tea.BlurMsg{}):       m.handleTerminalBlurMsg,
		reflect.TypeOf(tooltipDueMsg{}):     m.handleTooltipDueMsg,
		reflect.TypeOf(dirLoadedMsg{}):      m.handleDirLoadedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate adds the commands for tooltip tasks scheduled during this
// update.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if len(m.pending) > 0 {
		cmds = append(cmds, m.pending...)
		m.pending = nil
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size := msg.(tea.WindowSizeMsg)
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	m.help.Width = m.width
	m.syncViewport()
	return nil
}

// handleTerminalBlurMsg dismisses the tooltip when the terminal itself loses
// focus; no further leave events can arrive in that state.
func (m *Model) handleTerminalBlurMsg(tea.Msg) tea.Cmd {
	m.tooltip.Dismiss()
	return nil
}

func (m *Model) focusedID() string {
	if m.focus < 0 || m.focus >= len(m.focusRing) {
		return ""
	}
	return m.focusRing[m.focus]
}

func (m *Model) button(id string) (toolbar.Button, bool) {
	for _, b := range m.buttons {
		if b.ID == id {
			return b, true
		}
	}
	return toolbar.Button{}, false
}
