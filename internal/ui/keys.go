package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// Presence
	Refresh     key.Binding
	OpenTrack   key.Binding
	OpenArtist  key.Binding
	ToggleLinks key.Binding

	// Log overlay
	Logs   key.Binding
	Follow key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close overlay"),
		),

		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh now"),
		),
		OpenTrack: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Open track"),
		),
		OpenArtist: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Search artist"),
		),
		ToggleLinks: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Show/hide links"),
		),

		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Toggle log"),
		),
		Follow: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Toggle follow mode"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Refresh, k.OpenTrack, k.OpenArtist, k.ToggleLinks},
		{k.Logs, k.Follow, k.Escape},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
