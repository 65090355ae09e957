package monitor

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/ptop/internal/proctable"
	samplertest "github.com/rileyhilliard/ptop/internal/sampler/testing"
	"github.com/stretchr/testify/assert"
)

func TestKeyMap_ShortHelp(t *testing.T) {
	help := DefaultKeyMap().ShortHelp()

	assert.Len(t, help, 4) // Quit, Sort, Pause, Help
}

func TestKeyMap_FullHelp(t *testing.T) {
	help := DefaultKeyMap().FullHelp()

	assert.Len(t, help, 2)
	assert.Len(t, help[0], 4)
	assert.Len(t, help[1], 3)
}

func TestDefaultKeyMap_Bindings(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"q quits", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, keys.Quit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, keys.Quit},
		{"s sorts", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")}, keys.Sort},
		{"r reverses", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, keys.Reverse},
		{"p pauses", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")}, keys.Pause},
		{"space pauses", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, keys.Pause},
		{"f refreshes", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")}, keys.Refresh},
		{"? toggles help", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")}, keys.Help},
		{"esc closes", tea.KeyMsg{Type: tea.KeyEsc}, keys.Close},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, key.Matches(tt.msg, tt.binding))
		})
	}
}

func TestHandleKeyMsg_Unbound(t *testing.T) {
	m := NewModel(nil, samplertest.NewFakeSampler(), proctable.New(1), Options{})

	handled, cmd := m.HandleKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.False(t, handled)
	assert.Nil(t, cmd)
}

func TestHandleKeyMsg_EscWithoutHelpIsIgnored(t *testing.T) {
	m := NewModel(nil, samplertest.NewFakeSampler(), proctable.New(1), Options{})

	handled, _ := m.HandleKeyMsg(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, handled)
	assert.Equal(t, StateIdle, m.State())
}

func TestHandleKeyMsg_SortCyclesEveryKey(t *testing.T) {
	m := NewModel(nil, samplertest.NewFakeSampler(), proctable.New(1), Options{SortKey: proctable.SortByCPU})
	s := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")}

	var seen []proctable.SortKey
	for i := 0; i < 4; i++ {
		m.HandleKeyMsg(s)
		seen = append(seen, m.SortKey())
	}

	assert.Equal(t, []proctable.SortKey{
		proctable.SortByMemory,
		proctable.SortByPID,
		proctable.SortByName,
		proctable.SortByCPU,
	}, seen)
}
