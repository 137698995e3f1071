package history

import (
	"fmt"
	"time"
)

// PomodoroStats counts pomodoro sessions started in [from, to). A pomodoro
// is completed when it ran its full length; the rest were cut short.
type PomodoroStats struct {
	Completed    int
	Interrupted  int
	TotalMinutes int64
}

func (s *Store) PomodoroStats(from, to time.Time) (PomodoroStats, error) {
	var st PomodoroStats
	err := s.db.QueryRow(`
		SELECT COALESCE(SUM(minutes >= pomo_minutes), 0),
		       COALESCE(SUM(minutes < pomo_minutes), 0),
		       COALESCE(SUM(minutes), 0)
		FROM sessions
		WHERE pomodoro = 1
		  AND start_time >= ? AND start_time < ?`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	).Scan(&st.Completed, &st.Interrupted, &st.TotalMinutes)
	if err != nil {
		return PomodoroStats{}, fmt.Errorf("pomodoro stats: %w", err)
	}
	return st, nil
}
