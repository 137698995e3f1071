package store

import (
	"time"
)

// Store owns the whole State and exposes the only legal mutations on it.
// It is not safe for concurrent use; the App dispatcher (or a CLI command)
// is its single owner.
type Store struct {
	state    State
	now      func() time.Time
	dirty    bool
	finished []SessionRecord
}

type Option func(*Store)

// WithClock overrides the clock used for sessions and the daily reset.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New takes ownership of a copy of st. The default bucket is synthesized if
// missing, a session pointing at an unknown activity is dropped, and the daily
// reset is applied when st belongs to another day.
func New(st State, opts ...Option) *Store {
	s := &Store{state: st.Clone(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.BucketIndex(DefaultBucket) < 0 {
		s.state.Buckets = append([]Bucket{{Name: DefaultBucket}}, s.state.Buckets...)
		s.dirty = true
	}
	if cur := s.state.Current; cur != nil && s.indexOf(cur.ActivityID) < 0 {
		s.state.Current = nil
		s.dirty = true
	}
	if today := s.Today(); s.state.Date != today {
		s.state = s.state.Refreshed(today)
		s.dirty = true
	}
	return s
}

func (s *Store) Now() time.Time { return s.now() }

func (s *Store) Today() Date { return DateOf(s.now()) }

// Refresh applies the daily reset unconditionally.
func (s *Store) Refresh() {
	s.state = s.state.Refreshed(s.Today())
	s.dirty = true
}

// State returns a deep copy of the current state.
func (s *Store) State() State { return s.state.Clone() }

func (s *Store) Date() Date { return s.state.Date }

// Dirty reports whether the state changed since the last MarkClean.
func (s *Store) Dirty() bool { return s.dirty }

func (s *Store) MarkClean() { s.dirty = false }

// TakeFinished drains the sessions that ended since the previous call.
func (s *Store) TakeFinished() []SessionRecord {
	out := s.finished
	s.finished = nil
	return out
}

func (s *Store) touch() { s.dirty = true }
