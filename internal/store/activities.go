package store

import (
	"time"
)

// AddActivity appends a new activity and returns its freshly assigned id.
func (s *Store) AddActivity(name string, targetMinutes uint) ActivityID {
	s.state.NextActivityID++
	id := s.state.NextActivityID
	s.state.Activities = append(s.state.Activities, Activity{
		ID:            id,
		Name:          name,
		TargetMinutes: targetMinutes,
	})
	s.touch()
	return id
}

func (s *Store) Activities() []Activity {
	return append([]Activity(nil), s.state.Activities...)
}

func (s *Store) ActivityCount() int { return len(s.state.Activities) }

// ActivityAt returns the activity at display position i.
func (s *Store) ActivityAt(i int) (Activity, bool) {
	if i < 0 || i >= len(s.state.Activities) {
		return Activity{}, false
	}
	return s.state.Activities[i], true
}

func (s *Store) Activity(id ActivityID) (Activity, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.state.Activities[i], true
	}
	return Activity{}, false
}

func (s *Store) indexOf(id ActivityID) int {
	for i, a := range s.state.Activities {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// Delete removes an activity. Deleting the activity of a freeform session
// ends that session first; a pomodoro session blocks the deletion.
//
// Errors: ErrInvalidID, ErrPomoOngoing.
func (s *Store) Delete(id ActivityID) error {
	if s.indexOf(id) < 0 {
		return ErrInvalidID
	}
	if s.state.Current != nil && s.state.Current.ActivityID == id {
		if err := s.EndActivity(false); err != nil {
			return err
		}
	}
	i := s.indexOf(id)
	s.state.Activities = append(s.state.Activities[:i], s.state.Activities[i+1:]...)
	s.touch()
	return nil
}

// StartActivity starts a freeform session.
//
// Errors: ErrAlreadyOngoing, ErrInvalidID.
func (s *Store) StartActivity(id ActivityID) error {
	return s.StartActivityPomo(id, nil)
}

// StartActivityPomo starts a session bounded by pomoMinutes, or a freeform one
// when pomoMinutes is nil.
//
// Errors: ErrAlreadyOngoing, ErrInvalidID.
func (s *Store) StartActivityPomo(id ActivityID, pomoMinutes *uint) error {
	if s.state.Current != nil {
		return ErrAlreadyOngoing
	}
	if s.indexOf(id) < 0 {
		return ErrInvalidID
	}
	cur := &CurrentSession{ActivityID: id, StartTime: s.now()}
	if pomoMinutes != nil {
		m := *pomoMinutes
		cur.PomoMinutes = &m
	}
	s.state.Current = cur
	s.touch()
	return nil
}

// EndActivity credits the elapsed whole minutes of the current session to its
// activity and clears the session. A pomodoro session only ends early when
// overridePomo is set.
//
// Errors: ErrNoCurrentActivity, ErrPomoOngoing.
func (s *Store) EndActivity(overridePomo bool) error {
	cur := s.state.Current
	if cur == nil {
		return ErrNoCurrentActivity
	}
	if cur.IsPomodoro() && !overridePomo {
		return ErrPomoOngoing
	}
	now := s.now()
	minutes := elapsedMinutes(cur.StartTime, now)
	rec := SessionRecord{
		ActivityID:  cur.ActivityID,
		Start:       cur.StartTime,
		End:         now,
		Minutes:     minutes,
		PomoMinutes: cur.PomoMinutes,
	}
	if i := s.indexOf(cur.ActivityID); i >= 0 {
		s.state.Activities[i].AchievedMinutes += minutes
		rec.ActivityName = s.state.Activities[i].Name
	}
	s.state.Current = nil
	s.finished = append(s.finished, rec)
	s.touch()
	return nil
}

// CheckPomodoroExpiry ends the current pomodoro session once its bound is
// reached. It reports the finished session, if any.
func (s *Store) CheckPomodoroExpiry() (SessionRecord, bool) {
	cur := s.state.Current
	if cur == nil || !cur.IsPomodoro() {
		return SessionRecord{}, false
	}
	if elapsedMinutes(cur.StartTime, s.now()) < *cur.PomoMinutes {
		return SessionRecord{}, false
	}
	if err := s.EndActivity(true); err != nil {
		return SessionRecord{}, false
	}
	rec := s.finished[len(s.finished)-1]
	return rec, true
}

// AddTime registers extra achieved minutes.
//
// Errors: ErrInvalidID.
func (s *Store) AddTime(id ActivityID, minutes uint) error {
	i := s.indexOf(id)
	if i < 0 {
		return ErrInvalidID
	}
	s.state.Activities[i].AchievedMinutes += minutes
	s.touch()
	return nil
}

// OverwriteTime replaces the achieved minutes.
//
// Errors: ErrInvalidID.
func (s *Store) OverwriteTime(id ActivityID, minutes uint) error {
	i := s.indexOf(id)
	if i < 0 {
		return ErrInvalidID
	}
	s.state.Activities[i].AchievedMinutes = minutes
	s.touch()
	return nil
}

// ChangeTarget replaces the daily target.
//
// Errors: ErrInvalidID.
func (s *Store) ChangeTarget(id ActivityID, minutes uint) error {
	i := s.indexOf(id)
	if i < 0 {
		return ErrInvalidID
	}
	s.state.Activities[i].TargetMinutes = minutes
	s.touch()
	return nil
}

// Current returns a copy of the ongoing session.
func (s *Store) Current() (CurrentSession, bool) {
	if s.state.Current == nil {
		return CurrentSession{}, false
	}
	return s.state.Current.clone(), true
}

func (c *CurrentSession) clone() CurrentSession {
	out := *c
	if c.PomoMinutes != nil {
		m := *c.PomoMinutes
		out.PomoMinutes = &m
	}
	return out
}

func (s *Store) CurrentID() (ActivityID, bool) {
	if s.state.Current == nil {
		return 0, false
	}
	return s.state.Current.ActivityID, true
}

func (s *Store) CurrentActivity() (Activity, bool) {
	id, ok := s.CurrentID()
	if !ok {
		return Activity{}, false
	}
	return s.Activity(id)
}

// PomoMinutes returns the bound of the current session when it is a pomodoro.
func (s *Store) PomoMinutes() (uint, bool) {
	if s.state.Current == nil || s.state.Current.PomoMinutes == nil {
		return 0, false
	}
	return *s.state.Current.PomoMinutes, true
}

// CurrentElapsed is the wall time since the current session started, floored at zero.
func (s *Store) CurrentElapsed() (time.Duration, bool) {
	if s.state.Current == nil {
		return 0, false
	}
	d := s.now().Sub(s.state.Current.StartTime)
	if d < 0 {
		d = 0
	}
	return d, true
}

// CurrentMinutes is the number of whole minutes the current session has run.
func (s *Store) CurrentMinutes() (uint, bool) {
	if s.state.Current == nil {
		return 0, false
	}
	return elapsedMinutes(s.state.Current.StartTime, s.now()), true
}

// AchievedWithCurrent is the achieved time of a including the running session.
func (s *Store) AchievedWithCurrent(a Activity) uint {
	if id, ok := s.CurrentID(); ok && id == a.ID {
		m, _ := s.CurrentMinutes()
		return a.AchievedMinutes + m
	}
	return a.AchievedMinutes
}

// ActivityStatus is the progress label shown next to an activity.
type ActivityStatus int

const (
	StatusNotDone ActivityStatus = iota
	StatusComplete
	StatusOngoing
	StatusOverwork
)

var statusNames = [...]string{"NOT DONE", "COMPLETE", "ONGOING", "OVERWORK"}

func (st ActivityStatus) String() string { return statusNames[st] }

// Status reports the progress of a, counting the running session.
func (s *Store) Status(a Activity) ActivityStatus {
	achieved := s.AchievedWithCurrent(a)
	id, ongoing := s.CurrentID()
	ongoing = ongoing && id == a.ID
	switch {
	case ongoing && achieved < a.TargetMinutes:
		return StatusOngoing
	case ongoing:
		return StatusOverwork
	case achieved < a.TargetMinutes:
		return StatusNotDone
	}
	return StatusComplete
}

func elapsedMinutes(start, now time.Time) uint {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return uint(d / time.Minute)
}
