package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/timetrack/internal/store"
)

// viewState represents the currently active window.
type viewState int

const (
	viewTrack viewState = iota
	viewTodo
	viewHistory
	viewHelp
)

var viewNames = []string{"Track Activities [1]", "Todo [2]", "History [3]", "Help [4]"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// exitMsg is a window asking the program to end. The App decides whether it
// actually does.
type exitMsg struct{}

type exportDoneMsg struct {
	path string
}

func requestExit() tea.Msg { return exitMsg{} }

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: describeError(err), isError: true} }
}

// describeError turns a domain error into the line shown in the status bar.
func describeError(err error) string {
	switch {
	case errors.Is(err, store.ErrAlreadyOngoing):
		return "Another activity is already running; end it first"
	case errors.Is(err, store.ErrNoCurrentActivity):
		return "No activity is running"
	case errors.Is(err, store.ErrPomoOngoing):
		return "A pomodoro is running; end it from the Ongoing panel"
	case errors.Is(err, store.ErrInvalidID):
		return "Nothing selected"
	case errors.Is(err, store.ErrEqualIDs),
		errors.Is(err, store.ErrFirstInvalid),
		errors.Is(err, store.ErrSecondInvalid),
		errors.Is(err, store.ErrInvalidSelection),
		errors.Is(err, store.ErrInvalidTargetIndex):
		return "Cannot move further"
	case errors.Is(err, store.ErrInvalidBucket):
		return "No such bucket"
	}
	return err.Error()
}

// --- Helpers ---

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// formatMinutes renders a minute count as "1h 05m", or "25m" under an hour.
func formatMinutes(m uint) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", m/60, m%60)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
