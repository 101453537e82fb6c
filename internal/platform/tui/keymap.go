package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ballflaps/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case " ", "w", "up", "k":
		return core.ActionFlap, false
	case "enter":
		return core.ActionConfirm, false
	case "r":
		return core.ActionRestart, false
	case "left", "h":
		return core.ActionColorPrev, false
	case "right", "l":
		return core.ActionColorNext, false
	case "tab":
		return core.ActionScoreboard, false
	case "b", "esc":
		return core.ActionBack, false
	case "m":
		return core.ActionMute, false
	}

	return core.ActionNone, false
}
