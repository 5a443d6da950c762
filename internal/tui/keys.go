package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Reset      key.Binding
	Next       key.Binding
	Pause      key.Binding
	Mode       key.Binding
	Difficulty key.Binding
	Time       key.Binding
	History    key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Reset:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
		Next:       key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new text")),
		Pause:      key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "start/pause")),
		Mode:       key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "mode")),
		Difficulty: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "difficulty")),
		Time:       key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "time")),
		History:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "history")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reset, k.Next, k.Pause, k.Mode, k.Difficulty, k.Time, k.History, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
