package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Increase key.Binding
	Decrease key.Binding
	Apply    key.Binding
	Year     key.Binding
	Reset    key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Increase, k.Decrease, k.Apply, k.Year, k.Reset, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Increase: key.NewBinding(
		key.WithKeys("right", "l", "+"),
		key.WithHelp("→/+", "increase"),
	),
	Decrease: key.NewBinding(
		key.WithKeys("left", "h", "-"),
		key.WithHelp("←/-", "decrease"),
	),
	Apply: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "apply suggestions"),
	),
	Year: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "next fiscal year"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
