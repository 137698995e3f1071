package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/timetrack/internal/store"
)

const sessionColumns = `id, activity_id, activity_name, start_time, end_time, minutes, pomo_minutes, created_at`

// Record appends a finished session to the log.
func (s *Store) Record(rec store.SessionRecord) (*Session, error) {
	id := uuid.NewString()
	var pomo sql.NullInt64
	if rec.PomoMinutes != nil {
		pomo = sql.NullInt64{Int64: int64(*rec.PomoMinutes), Valid: true}
	}
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, activity_id, activity_name, start_time, end_time, minutes, pomodoro, pomo_minutes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, uint(rec.ActivityID), rec.ActivityName,
		rec.Start.UTC().Format(time.RFC3339), rec.End.UTC().Format(time.RFC3339),
		rec.Minutes, rec.Pomodoro(), pomo,
		s.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("record session: %w", err)
	}
	return s.Get(id)
}

func (s *Store) Get(id string) (*Session, error) {
	row := s.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	sess, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	return sess, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*Session, error) {
	var (
		sess                        Session
		startTime, endTime, created string
		pomo                        sql.NullInt64
	)
	if err := row.Scan(&sess.ID, &sess.ActivityID, &sess.ActivityName, &startTime, &endTime, &sess.Minutes, &pomo, &created); err != nil {
		return nil, err
	}
	if pomo.Valid {
		m := uint(pomo.Int64)
		sess.PomoMinutes = &m
	}
	sess.StartTime, _ = time.Parse(time.RFC3339, startTime)
	sess.EndTime, _ = time.Parse(time.RFC3339, endTime)
	sess.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &sess, nil
}

// List returns sessions matching f, newest first.
func (s *Store) List(f Filter) ([]Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE 1=1`
	var args []any

	if f.ActivityID != nil {
		query += ` AND activity_id = ?`
		args = append(args, *f.ActivityID)
	}
	if f.From != nil {
		query += ` AND start_time >= ?`
		args = append(args, f.From.UTC().Format(time.RFC3339))
	}
	if f.To != nil {
		query += ` AND start_time < ?`
		args = append(args, f.To.UTC().Format(time.RFC3339))
	}
	if f.PomodoroOnly {
		query += ` AND pomodoro = 1`
	}
	query += ` ORDER BY start_time DESC, created_at DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sess)
	}
	return sessions, rows.Err()
}

// DailySummary aggregates minutes per day and activity for sessions that
// started in [from, to). Days are UTC dates.
func (s *Store) DailySummary(from, to time.Time) ([]DailySummary, error) {
	rows, err := s.db.Query(`
		SELECT date(start_time) AS day, activity_id, MAX(activity_name),
		       COALESCE(SUM(minutes), 0), COUNT(*), COALESCE(SUM(pomodoro), 0)
		FROM sessions
		WHERE start_time >= ? AND start_time < ?
		GROUP BY day, activity_id
		ORDER BY day, MAX(activity_name)`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("daily summary: %w", err)
	}
	defer rows.Close()

	var summaries []DailySummary
	for rows.Next() {
		var ds DailySummary
		if err := rows.Scan(&ds.Date, &ds.ActivityID, &ds.ActivityName, &ds.TotalMinutes, &ds.SessionCount, &ds.PomodoroCount); err != nil {
			return nil, err
		}
		summaries = append(summaries, ds)
	}
	return summaries, rows.Err()
}

// TodayTotal is the number of minutes logged today.
func (s *Store) TodayTotal() (int64, error) {
	today := s.now().UTC().Format("2006-01-02")
	var total sql.NullInt64
	err := s.db.QueryRow(`
		SELECT COALESCE(SUM(minutes), 0)
		FROM sessions
		WHERE date(start_time) = ?`, today,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("today total: %w", err)
	}
	return total.Int64, nil
}
