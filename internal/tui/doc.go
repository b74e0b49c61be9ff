// Package tui implements the live watch dashboard for the ema-ctl tool.
//
// The dashboard is a full-screen Bubble Tea program showing all four channels
// of a module at once: measured temperature, sensor health, and relay state,
// plus the firmware version and limit-control status in the footer. It
// refreshes on a fixed interval.
//
// # Refresh Discipline
//
// The module answers one request at a time, so the dashboard never overlaps
// reads: a timer tick starts a refresh command, and only the refresh result
// schedules the next tick. A manual refresh ("r") is ignored while one is
// already in flight. When a refresh fails the last good snapshot stays on
// screen with an error banner, and the next tick retries.
//
// # Framework Components
//
//   - bubbles/spinner: refresh indicator
//   - bubbles/help and bubbles/key: key bindings and the help line
//   - lipgloss: styling and layout
//
// # Usage Example
//
//	model := tui.NewWatchModel(client, "192.168.1.100:6936", time.Second)
//	program := tea.NewProgram(model, tea.WithAltScreen())
//	if _, err := program.Run(); err != nil {
//	    log.Fatal(err)
//	}
package tui
