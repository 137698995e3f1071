package history

import "time"

// Session is one finished tracking session.
type Session struct {
	ID           string
	ActivityID   uint
	ActivityName string
	StartTime    time.Time
	EndTime      time.Time
	Minutes      uint
	PomoMinutes  *uint // set for pomodoro sessions
	CreatedAt    time.Time
}

func (s Session) Pomodoro() bool { return s.PomoMinutes != nil }

// Filter narrows List queries.
type Filter struct {
	ActivityID   *uint
	From         *time.Time
	To           *time.Time
	PomodoroOnly bool
	Limit        int
}

// DailySummary represents aggregated minutes per activity per day.
type DailySummary struct {
	Date          string
	ActivityID    uint
	ActivityName  string
	TotalMinutes  int64
	SessionCount  int
	PomodoroCount int
}
