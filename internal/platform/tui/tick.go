// Package tui is the terminal shell for the arcade. It maps Bubble Tea key
// and mouse messages to input events, drives the simulation from tick
// messages and rasterizes snapshots onto a cell screen.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultKeyHold is the auto-release window for terminals, which report
// key presses and repeats but never releases. It covers the usual gap
// between a press and the first auto-repeat.
const DefaultKeyHold = 300 * time.Millisecond

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
