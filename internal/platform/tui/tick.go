// Package tui provides the Bubble Tea front end for Ball Flaps.
// It maps keys to controller commands, drives frames from tea ticks and
// renders snapshots through lipgloss.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger one simulation frame.
// Gen identifies the tick loop that scheduled it; ticks from a stopped
// loop are ignored.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// tickCmd returns a Bubble Tea command that sends one tick after the
// frame interval for the given rate.
func tickCmd(tickRate, gen int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
