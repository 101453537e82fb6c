package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ballflaps/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"space flaps", tea.KeyMsg{Type: tea.KeySpace}, core.ActionFlap, false},
		{"w flaps", runeKey('w'), core.ActionFlap, false},
		{"up flaps", tea.KeyMsg{Type: tea.KeyUp}, core.ActionFlap, false},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"r restarts", runeKey('r'), core.ActionRestart, false},
		{"left previous color", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionColorPrev, false},
		{"l next color", runeKey('l'), core.ActionColorNext, false},
		{"tab scoreboard", tea.KeyMsg{Type: tea.KeyTab}, core.ActionScoreboard, false},
		{"esc back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"m mutes", runeKey('m'), core.ActionMute, false},
		{"q quits", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound key", runeKey('z'), core.ActionNone, false},
	}

	km := NewKeyMapper()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)",
					tc.msg.String(), action, quit, tc.action, tc.quit)
			}
		})
	}
}
