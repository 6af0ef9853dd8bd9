// Package msg holds tea messages shared between the shell and its helpers.
package msg

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Level is the severity of a toast.
type Level int

const (
	LevelSuccess Level = iota
	LevelWarning
	LevelError
)

// Default toast durations
const (
	ShortToast = 2 * time.Second
	LongToast  = 5 * time.Second
)

// ToastMsg displays a temporary message.
type ToastMsg struct {
	Message  string
	Duration time.Duration
	Level    Level
}

// ShowToast returns a command to show a success toast.
func ShowToast(message string, duration time.Duration) tea.Cmd {
	return toast(message, duration, LevelSuccess)
}

// ShowWarning returns a command to show a warning toast.
func ShowWarning(message string) tea.Cmd {
	return toast(message, LongToast, LevelWarning)
}

// ShowError returns a command to show an error toast.
func ShowError(message string) tea.Cmd {
	return toast(message, LongToast, LevelError)
}

func toast(message string, d time.Duration, level Level) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Message: message, Duration: d, Level: level}
	}
}
