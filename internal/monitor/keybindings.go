package monitor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap holds every binding the dashboard reacts to.
type KeyMap struct {
	Quit    key.Binding
	Sort    key.Binding
	Reverse key.Binding
	Pause   key.Binding
	Refresh key.Binding
	Help    key.Binding
	Close   key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle sort column"),
		),
		Reverse: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reverse order"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", " ", "space"),
			key.WithHelp("p/space", "pause"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "refresh now"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close help"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Sort, k.Pause, k.Help}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Sort, k.Reverse, k.Pause, k.Refresh},
		{k.Help, k.Close, k.Quit},
	}
}

// HandleKeyMsg processes keyboard input. Keys only change display parameters;
// the process table is never touched from here. Returns true if the key was handled.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	// Help toggle takes priority
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return true, nil
	}

	if m.showHelp && key.Matches(msg, m.keys.Close) {
		m.showHelp = false
		return true, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.state = StateTerminated
		return true, tea.Quit

	case key.Matches(msg, m.keys.Sort):
		m.sortKey = m.sortKey.Next()
		m.redraw()
		return true, nil

	case key.Matches(msg, m.keys.Reverse):
		m.descending = !m.descending
		m.redraw()
		return true, nil

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		m.log.Debug("paused=%v", m.paused)
		m.redraw()
		return true, nil

	case key.Matches(msg, m.keys.Refresh):
		return true, m.startSample("forced refresh")
	}

	return false, nil
}
