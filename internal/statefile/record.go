package statefile

import (
	"time"

	"github.com/sadopc/timetrack/internal/store"
)

// record is the on-disk document. Every field is optional so that files
// written by any earlier version still decode; migrateBuckets folds the legacy
// todo representations into buckets_v2.
type record struct {
	Date           *string          `json:"date,omitempty"`
	Activities     []activityRecord `json:"activities"`
	NextActivityID *uint            `json:"next_activity_id,omitempty"`
	Current        *currentRecord   `json:"current"`

	// Legacy: a flat list of todos, all belonging to the default bucket.
	Todo []string `json:"todo,omitempty"`
	// Legacy: todos tagged with the name of their bucket.
	TodoV2 []taggedTodoRecord `json:"todo_v2,omitempty"`
	// Legacy: bucket names, possibly empty buckets.
	Buckets []string `json:"buckets,omitempty"`

	BucketsV2 []bucketRecord `json:"buckets_v2"`
}

type activityRecord struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	TargetMinutes   uint   `json:"target_minutes"`
	AchievedMinutes *uint  `json:"achieved_minutes,omitempty"`
	// Older files spell the key this way.
	LegacyAchieved *uint `json:"acheived_minutes,omitempty"`
}

type currentRecord struct {
	ActivityID  uint      `json:"activity_id"`
	StartTime   time.Time `json:"start_time"`
	PomoMinutes *uint     `json:"pomo_minutes"`
}

type taggedTodoRecord struct {
	Todo   string `json:"todo"`
	Bucket string `json:"bucket"`
}

type bucketRecord struct {
	Name  string   `json:"name"`
	Todos []string `json:"todos"`
}

// toState migrates r into the canonical in-memory shape. A missing date
// means today.
func (r record) toState(today store.Date) (store.State, error) {
	st := store.State{Date: today}
	if r.Date != nil {
		d, err := store.ParseDate(*r.Date)
		if err != nil {
			return store.State{}, err
		}
		st.Date = d
	}

	var maxID uint
	for _, a := range r.Activities {
		var achieved uint
		switch {
		case a.AchievedMinutes != nil:
			achieved = *a.AchievedMinutes
		case a.LegacyAchieved != nil:
			achieved = *a.LegacyAchieved
		}
		st.Activities = append(st.Activities, store.Activity{
			ID:              store.ActivityID(a.ID),
			Name:            a.Name,
			TargetMinutes:   a.TargetMinutes,
			AchievedMinutes: achieved,
		})
		maxID = max(maxID, a.ID)
	}

	// The counter holds the last issued id and must never fall behind an
	// existing one, or ids would be reused.
	next := maxID
	if r.NextActivityID != nil {
		next = max(next, *r.NextActivityID)
	}
	st.NextActivityID = store.ActivityID(next)

	if c := r.Current; c != nil {
		cur := &store.CurrentSession{
			ActivityID: store.ActivityID(c.ActivityID),
			StartTime:  c.StartTime,
		}
		if c.PomoMinutes != nil {
			m := *c.PomoMinutes
			cur.PomoMinutes = &m
		}
		st.Current = cur
	}

	st.Buckets = r.migrateBuckets()
	return st, nil
}

// migrateBuckets resolves the todo representations. buckets_v2 supersedes
// everything else. Otherwise legacy bucket names come first and are filled
// from the tagged todo_v2 list; the flat todo list is read into the default
// bucket only when todo_v2 is absent. Duplicate names merge and the default
// bucket is put first when no representation mentions it.
func (r record) migrateBuckets() []store.Bucket {
	var out []store.Bucket
	index := map[string]int{}
	bucket := func(name string) int {
		if name == "" {
			name = store.DefaultBucket
		}
		if i, ok := index[name]; ok {
			return i
		}
		index[name] = len(out)
		out = append(out, store.Bucket{Name: name})
		return index[name]
	}

	if r.BucketsV2 != nil {
		for _, b := range r.BucketsV2 {
			i := bucket(b.Name)
			for _, t := range b.Todos {
				out[i].Todos = append(out[i].Todos, store.TodoItem{Text: t})
			}
		}
	} else {
		for _, name := range r.Buckets {
			bucket(name)
		}
		for _, t := range r.TodoV2 {
			i := bucket(t.Bucket)
			out[i].Todos = append(out[i].Todos, store.TodoItem{Text: t.Todo})
		}
		if r.TodoV2 == nil {
			for _, t := range r.Todo {
				i := bucket(store.DefaultBucket)
				out[i].Todos = append(out[i].Todos, store.TodoItem{Text: t})
			}
		}
	}

	if _, ok := index[store.DefaultBucket]; !ok {
		out = append([]store.Bucket{{Name: store.DefaultBucket}}, out...)
	}
	return out
}

// fromState builds the canonical record. Legacy fields are never written.
func fromState(st store.State) record {
	date := st.Date.String()
	next := uint(st.NextActivityID)
	r := record{
		Date:           &date,
		Activities:     make([]activityRecord, 0, len(st.Activities)),
		NextActivityID: &next,
		BucketsV2:      make([]bucketRecord, 0, len(st.Buckets)),
	}
	for _, a := range st.Activities {
		achieved := a.AchievedMinutes
		r.Activities = append(r.Activities, activityRecord{
			ID:              uint(a.ID),
			Name:            a.Name,
			TargetMinutes:   a.TargetMinutes,
			AchievedMinutes: &achieved,
		})
	}
	if c := st.Current; c != nil {
		r.Current = &currentRecord{
			ActivityID:  uint(c.ActivityID),
			StartTime:   c.StartTime.UTC(),
			PomoMinutes: c.PomoMinutes,
		}
	}
	for _, b := range st.Buckets {
		todos := make([]string, 0, len(b.Todos))
		for _, t := range b.Todos {
			todos = append(todos, t.Text)
		}
		r.BucketsV2 = append(r.BucketsV2, bucketRecord{Name: b.Name, Todos: todos})
	}
	return r
}
