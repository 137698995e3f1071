package store

import (
	"fmt"
	"time"
)

// DefaultBucket is the reserved bucket that always exists and can never be deleted.
const DefaultBucket = "N/A"

const dateLayout = "2006-01-02"

// ActivityID identifies an activity. IDs are never reused.
type ActivityID uint

func (id ActivityID) String() string {
	return fmt.Sprintf("[%d]", uint(id))
}

type Activity struct {
	ID              ActivityID
	Name            string
	TargetMinutes   uint
	AchievedMinutes uint
}

// Remaining is the number of minutes left until the target, saturating at zero.
func (a Activity) Remaining() uint {
	if a.AchievedMinutes >= a.TargetMinutes {
		return 0
	}
	return a.TargetMinutes - a.AchievedMinutes
}

// CurrentSession is the single ongoing session. A non-nil PomoMinutes
// bounds the session and makes it a pomodoro.
type CurrentSession struct {
	ActivityID  ActivityID
	StartTime   time.Time
	PomoMinutes *uint
}

func (c CurrentSession) IsPomodoro() bool { return c.PomoMinutes != nil }

type TodoItem struct {
	Text string
}

type Bucket struct {
	Name  string
	Todos []TodoItem
}

// Date is a calendar day without a time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	t = t.UTC()
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(dateLayout)
}

// State is the whole persisted aggregate for one user.
type State struct {
	Date           Date
	Activities     []Activity
	NextActivityID ActivityID // last issued id
	Current        *CurrentSession
	Buckets        []Bucket
}

// NewState returns an empty state for the given day holding only the default bucket.
func NewState(today Date) State {
	return State{
		Date:    today,
		Buckets: []Bucket{{Name: DefaultBucket}},
	}
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := State{
		Date:           s.Date,
		NextActivityID: s.NextActivityID,
		Activities:     append([]Activity(nil), s.Activities...),
		Buckets:        make([]Bucket, len(s.Buckets)),
	}
	if s.Current != nil {
		cur := s.Current.clone()
		out.Current = &cur
	}
	for i, b := range s.Buckets {
		out.Buckets[i] = Bucket{Name: b.Name, Todos: append([]TodoItem(nil), b.Todos...)}
	}
	return out
}

// Refreshed applies the daily reset: every achieved counter goes back to zero
// and the date moves to today. Targets, ids, the current session and all
// todos are preserved. The receiver is not modified.
func (s State) Refreshed(today Date) State {
	out := s.Clone()
	out.Date = today
	for i := range out.Activities {
		out.Activities[i].AchievedMinutes = 0
	}
	return out
}

// SessionRecord describes a finished session.
type SessionRecord struct {
	ActivityID   ActivityID
	ActivityName string
	Start        time.Time
	End          time.Time
	Minutes      uint
	PomoMinutes  *uint
}

func (r SessionRecord) Pomodoro() bool { return r.PomoMinutes != nil }
