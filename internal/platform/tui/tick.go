// Package tui provides the Bubble Tea integration for the snake platform.
// It handles the terminal UI loop, input mapping, and move scheduling.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg asks the game to advance one move.
// Gen identifies the schedule that produced it; ticks from an older
// schedule (before a pause or restart) are dropped.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// tickCmd schedules a single tick after interval.
// The game's speed can change after every move, so each tick is one-shot.
func tickCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
