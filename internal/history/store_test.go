package history

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sadopc/timetrack/internal/store"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	s.now = func() time.Time { return testNow }
	t.Cleanup(func() { s.Close() })
	return s
}

func uintPtr(v uint) *uint { return &v }

// record is a test helper that logs a finished session starting at start.
func record(t *testing.T, s *Store, id uint, name string, start time.Time, minutes uint, pomo *uint) *Session {
	t.Helper()
	sess, err := s.Record(store.SessionRecord{
		ActivityID:   store.ActivityID(id),
		ActivityName: name,
		Start:        start,
		End:          start.Add(time.Duration(minutes) * time.Minute),
		Minutes:      minutes,
		PomoMinutes:  pomo,
	})
	if err != nil {
		t.Fatalf("record session: %v", err)
	}
	return sess
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != currentVersion {
		t.Fatalf("expected user_version %d, got %d", currentVersion, version)
	}
}

func TestNewWithPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "history.db")
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	record(t, s, 1, "Read", testNow, 5, nil)
	s.Close()

	// Reopen: the row survives and migrations do not run again.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	sessions, err := s2.List(Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session after reopen, got %d", len(sessions))
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Sessions
// ============================================================

func TestRecordAndGet(t *testing.T) {
	s := newTestStore(t)
	start := testNow.Add(-30 * time.Minute)

	sess := record(t, s, 3, "Write", start, 17, nil)

	if sess.ID == "" {
		t.Fatal("expected a generated id")
	}
	if sess.ActivityID != 3 || sess.ActivityName != "Write" {
		t.Fatalf("unexpected activity: %d %q", sess.ActivityID, sess.ActivityName)
	}
	if !sess.StartTime.Equal(start) {
		t.Fatalf("expected start %v, got %v", start, sess.StartTime)
	}
	if sess.Minutes != 17 {
		t.Fatalf("expected 17 minutes, got %d", sess.Minutes)
	}
	if sess.Pomodoro() {
		t.Fatal("freeform session reported as pomodoro")
	}
	if !sess.CreatedAt.Equal(testNow) {
		t.Fatalf("expected created_at %v, got %v", testNow, sess.CreatedAt)
	}
}

func TestRecordPomodoro(t *testing.T) {
	s := newTestStore(t)
	sess := record(t, s, 1, "Read", testNow.Add(-time.Hour), 25, uintPtr(25))

	if !sess.Pomodoro() {
		t.Fatal("expected a pomodoro session")
	}
	if *sess.PomoMinutes != 25 {
		t.Fatalf("expected pomo_minutes 25, got %d", *sess.PomoMinutes)
	}
}

func TestRecordIDsAreUnique(t *testing.T) {
	s := newTestStore(t)
	a := record(t, s, 1, "Read", testNow, 1, nil)
	b := record(t, s, 1, "Read", testNow, 1, nil)
	if a.ID == b.ID {
		t.Fatalf("duplicate id %s", a.ID)
	}
}

func TestGetNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get("missing")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	record(t, s, 1, "Read", testNow.Add(-3*time.Hour), 10, nil)
	record(t, s, 2, "Write", testNow.Add(-1*time.Hour), 20, nil)
	record(t, s, 1, "Read", testNow.Add(-2*time.Hour), 30, nil)

	sessions, err := s.List(Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	if sessions[0].Minutes != 20 || sessions[2].Minutes != 10 {
		t.Fatalf("unexpected order: %d, %d, %d", sessions[0].Minutes, sessions[1].Minutes, sessions[2].Minutes)
	}
}

func TestListFilters(t *testing.T) {
	s := newTestStore(t)
	record(t, s, 1, "Read", testNow.Add(-50*time.Hour), 10, nil)
	record(t, s, 1, "Read", testNow.Add(-2*time.Hour), 25, uintPtr(25))
	record(t, s, 2, "Write", testNow.Add(-1*time.Hour), 15, nil)

	from := testNow.Add(-24 * time.Hour)
	to := testNow
	activity := uint(1)

	tests := []struct {
		name string
		f    Filter
		want int
	}{
		{"none", Filter{}, 3},
		{"activity", Filter{ActivityID: &activity}, 2},
		{"date range", Filter{From: &from, To: &to}, 2},
		{"activity and range", Filter{ActivityID: &activity, From: &from}, 1},
		{"pomodoro only", Filter{PomodoroOnly: true}, 1},
		{"limit", Filter{Limit: 2}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions, err := s.List(tt.f)
			if err != nil {
				t.Fatal(err)
			}
			if len(sessions) != tt.want {
				t.Fatalf("expected %d sessions, got %d", tt.want, len(sessions))
			}
		})
	}
}

func TestListEmpty(t *testing.T) {
	s := newTestStore(t)
	sessions, err := s.List(Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if sessions != nil {
		t.Fatal("expected nil for empty list")
	}
}

// ============================================================
// Summaries
// ============================================================

func TestDailySummary(t *testing.T) {
	s := newTestStore(t)
	yesterday := testNow.Add(-24 * time.Hour)
	record(t, s, 1, "Read", yesterday, 30, nil)
	record(t, s, 1, "Read", testNow.Add(-3*time.Hour), 25, uintPtr(25))
	record(t, s, 1, "Read", testNow.Add(-2*time.Hour), 10, nil)
	record(t, s, 2, "Write", testNow.Add(-1*time.Hour), 45, nil)

	summaries, err := s.DailySummary(testNow.Add(-48*time.Hour), testNow.Add(24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries (day x activity), got %d", len(summaries))
	}

	first := summaries[0]
	if first.Date != "2026-03-13" || first.ActivityName != "Read" || first.TotalMinutes != 30 {
		t.Fatalf("unexpected first summary: %+v", first)
	}
	read := summaries[1]
	if read.Date != "2026-03-14" || read.TotalMinutes != 35 || read.SessionCount != 2 || read.PomodoroCount != 1 {
		t.Fatalf("unexpected Read summary: %+v", read)
	}
	if summaries[2].ActivityName != "Write" || summaries[2].TotalMinutes != 45 {
		t.Fatalf("unexpected Write summary: %+v", summaries[2])
	}
}

func TestDailySummaryEmpty(t *testing.T) {
	s := newTestStore(t)
	summaries, err := s.DailySummary(testNow.Add(-24*time.Hour), testNow.Add(24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if summaries != nil {
		t.Fatal("expected nil for empty summary")
	}
}

func TestTodayTotal(t *testing.T) {
	s := newTestStore(t)
	record(t, s, 1, "Read", testNow.Add(-2*time.Hour), 60, nil)
	record(t, s, 2, "Write", testNow.Add(-1*time.Hour), 30, nil)
	record(t, s, 1, "Read", testNow.Add(-24*time.Hour), 90, nil)

	total, err := s.TodayTotal()
	if err != nil {
		t.Fatal(err)
	}
	if total != 90 {
		t.Fatalf("expected 90 minutes, got %d", total)
	}
}

func TestTodayTotalEmpty(t *testing.T) {
	s := newTestStore(t)
	total, err := s.TodayTotal()
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 {
		t.Fatalf("expected 0 for empty, got %d", total)
	}
}

func TestPomodoroStats(t *testing.T) {
	s := newTestStore(t)
	record(t, s, 1, "Read", testNow.Add(-3*time.Hour), 25, uintPtr(25))
	record(t, s, 1, "Read", testNow.Add(-2*time.Hour), 12, uintPtr(25)) // cut short
	record(t, s, 2, "Write", testNow.Add(-1*time.Hour), 40, nil)

	st, err := s.PomodoroStats(testNow.Add(-time.Hour*24), testNow)
	if err != nil {
		t.Fatal(err)
	}
	if st.Completed != 1 || st.Interrupted != 1 {
		t.Fatalf("expected 1 completed and 1 interrupted, got %+v", st)
	}
	if st.TotalMinutes != 37 {
		t.Fatalf("expected 37 pomodoro minutes, got %d", st.TotalMinutes)
	}
}

func TestPomodoroStatsEmpty(t *testing.T) {
	s := newTestStore(t)
	st, err := s.PomodoroStats(testNow.Add(-time.Hour), testNow.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if st != (PomodoroStats{}) {
		t.Fatal("expected zeros for empty stats")
	}
}

func TestCloseStore(t *testing.T) {
	s, _ := NewMemory()
	if err := s.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
}
