package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Message types for tea.Cmd
type (
	// TickMsg is sent on each clock tick.
	TickMsg time.Time

	// AutosaveMsg fires every editor.autosaveInterval.
	AutosaveMsg time.Time

	// StylesheetChangedMsg reports that the stylesheet file changed on disk.
	StylesheetChangedMsg struct{}

	// RefreshMsg triggers a reload of the note list.
	RefreshMsg struct{}

	// ErrorMsg represents an error condition.
	ErrorMsg struct {
		Err error
	}
)

// tickCmd returns a command that ticks every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// autosaveCmd schedules the next autosave attempt.
func autosaveCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return AutosaveMsg(t)
	})
}

// waitForStylesheet blocks until the watcher reports a change.
// A closed channel ends the loop.
func waitForStylesheet(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return StylesheetChangedMsg{}
	}
}

// Refresh returns a command to trigger a refresh.
func Refresh() tea.Cmd {
	return func() tea.Msg {
		return RefreshMsg{}
	}
}

// ReportError returns a command to report an error.
func ReportError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}
