package store

// RecommendationKind tells what the recommendation engine decided.
type RecommendationKind int

const (
	// Recommended carries the activity to work on next.
	Recommended RecommendationKind = iota
	// NoMoreTasks means every activity reached its target.
	NoMoreTasks
	// Ongoing means a session is running and has not reached its target yet.
	Ongoing
	// OngoingCompleted means a session is running past its activity's target.
	OngoingCompleted
)

var recommendationNames = map[RecommendationKind]string{
	Recommended:      "recommended",
	NoMoreTasks:      "no more tasks",
	Ongoing:          "ongoing",
	OngoingCompleted: "ongoing (target reached)",
}

func (k RecommendationKind) String() string { return recommendationNames[k] }

type Recommendation struct {
	Kind     RecommendationKind
	Activity Activity // zero for NoMoreTasks
}

// OK reports whether a new activity can be started from this recommendation.
func (r Recommendation) OK() bool { return r.Kind == Recommended }

// Recommend picks what to work on next. While a session runs it only reports
// on that session; the caller must stop it before starting a new one.
// Otherwise the unfinished activity with the fewest achieved minutes wins,
// ties going to the first one in stored order.
func (s *Store) Recommend() Recommendation {
	if cur, ok := s.CurrentActivity(); ok {
		if s.AchievedWithCurrent(cur) >= cur.TargetMinutes {
			return Recommendation{Kind: OngoingCompleted, Activity: cur}
		}
		return Recommendation{Kind: Ongoing, Activity: cur}
	}

	best := -1
	for i, a := range s.state.Activities {
		if a.AchievedMinutes >= a.TargetMinutes {
			continue
		}
		if best < 0 || a.AchievedMinutes < s.state.Activities[best].AchievedMinutes {
			best = i
		}
	}
	if best < 0 {
		return Recommendation{Kind: NoMoreTasks}
	}
	return Recommendation{Kind: Recommended, Activity: s.state.Activities[best]}
}

// SuggestedPomoMinutes is the length of the next pomodoro for the recommended
// activity: the remaining minutes, capped at limit.
func (s *Store) SuggestedPomoMinutes(limit uint) (uint, bool) {
	rec := s.Recommend()
	if !rec.OK() {
		return 0, false
	}
	return min(rec.Activity.Remaining(), limit), true
}
