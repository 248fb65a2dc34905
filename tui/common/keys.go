package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit     key.Binding
	Refresh  key.Binding
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding // enter — open selected item
	Back     key.Binding // esc — close the current overlay
	NextPage key.Binding
	PrevPage key.Binding
	New      key.Binding // n — compose a new post
	Like     key.Binding
	Delete   key.Binding
	Comment  key.Binding
	Expand   key.Binding // x — toggle long-post preview
	Feed     key.Binding
	Search   key.Binding
	Profile  key.Binding
	Logout   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "]"),
			key.WithHelp("→", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "["),
			key.WithHelp("←", "prev page"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new post"),
		),
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		Expand: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "expand"),
		),
		Feed: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "feed"),
		),
		Search: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "search"),
		),
		Profile: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "profile"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "log out"),
		),
	}
}
