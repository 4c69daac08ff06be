package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Up       key.Binding
	Down     key.Binding
	Home     key.Binding
	End      key.Binding
	Activate key.Binding
	Parent   key.Binding
	Search   key.Binding
	Escape   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Activate: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open")),
		Parent:   key.NewBinding(key.WithKeys("backspace", "left"), key.WithHelp("⌫", "parent")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp is part of the help.KeyMap interface.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Activate, k.Search, k.Escape, k.Help, k.Quit}
}

// FullHelp is part of the help.KeyMap interface.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Activate, k.Parent},
		{k.Up, k.Down, k.Home, k.End},
		{k.Search, k.Escape, k.Help, k.Quit},
	}
}
