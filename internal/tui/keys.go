package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the game's key bindings
type keyMap struct {
	Deal  key.Binding
	Fold  key.Binding
	Call  key.Binding
	Raise key.Binding
	Reset key.Binding
	Odds  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Deal: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new hand"),
		),
		Fold: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fold"),
		),
		Call: key.NewBinding(
			key.WithKeys("c", "k"),
			key.WithHelp("c", "check/call"),
		),
		Raise: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "raise"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset"),
		),
		Odds: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "win odds"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Deal, k.Fold, k.Call, k.Raise, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Deal, k.Reset, k.Odds},
		{k.Fold, k.Call, k.Raise},
		{k.Help, k.Quit},
	}
}
