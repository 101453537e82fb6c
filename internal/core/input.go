package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionFlap              // Space, W, Up - upward impulse
	ActionConfirm           // Enter - start game from the start screen
	ActionRestart           // R key - restart after game over
	ActionColorPrev         // Left, H - previous ball color
	ActionColorNext         // Right, L - next ball color
	ActionScoreboard        // Tab - open scoreboard
	ActionBack              // B, Escape - leave scoreboard / return to start
	ActionMute              // M - toggle sound
	ActionQuit              // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFlap:
		return "Flap"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionColorPrev:
		return "ColorPrev"
	case ActionColorNext:
		return "ColorNext"
	case ActionScoreboard:
		return "Scoreboard"
	case ActionBack:
		return "Back"
	case ActionMute:
		return "Mute"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
