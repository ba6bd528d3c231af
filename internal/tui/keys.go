package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	PrevProfile key.Binding
	NextProfile key.Binding
	NextCard    key.Binding
	PrevCard    key.Binding
	Add         key.Binding
	Reset       key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevProfile: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev profile"),
		),
		NextProfile: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next profile"),
		),
		NextCard: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next card"),
		),
		PrevCard: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev card"),
		),
		Add: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset profile"),
		),
		// q only quits while the focused input is empty.
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevProfile, k.NextProfile, k.NextCard, k.Add, k.Reset, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevProfile, k.NextProfile},
		{k.NextCard, k.PrevCard, k.Add},
		{k.Reset, k.Quit},
	}
}
