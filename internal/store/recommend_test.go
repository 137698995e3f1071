package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendPicksLeastAchieved(t *testing.T) {
	s, _ := newTestStore(t)
	a := s.AddActivity("A", 60)
	b := s.AddActivity("B", 30)
	require.NoError(t, s.AddTime(b, 10))

	rec := s.Recommend()

	require.Equal(t, Recommended, rec.Kind)
	assert.Equal(t, a, rec.Activity.ID)
}

func TestRecommendTieGoesToFirstStored(t *testing.T) {
	s, _ := newTestStore(t)
	first := s.AddActivity("first", 30)
	s.AddActivity("second", 30)
	s.AddActivity("third", 30)

	assert.Equal(t, first, s.Recommend().Activity.ID)
}

func TestRecommendSkipsCompleted(t *testing.T) {
	s, _ := newTestStore(t)
	done := s.AddActivity("done", 20)
	require.NoError(t, s.AddTime(done, 20))
	s.AddActivity("zero target", 0)

	assert.Equal(t, NoMoreTasks, s.Recommend().Kind)

	open := s.AddActivity("open", 5)
	rec := s.Recommend()
	require.True(t, rec.OK())
	assert.Equal(t, open, rec.Activity.ID)
}

func TestRecommendWhileOngoing(t *testing.T) {
	s, clock := newTestStore(t)
	id := s.AddActivity("A", 30)
	require.NoError(t, s.AddTime(id, 20))
	s.AddActivity("B", 60)
	require.NoError(t, s.StartActivity(id))

	rec := s.Recommend()
	assert.Equal(t, Ongoing, rec.Kind)
	assert.Equal(t, id, rec.Activity.ID)

	clock.Advance(10 * time.Minute)
	rec = s.Recommend()
	assert.Equal(t, OngoingCompleted, rec.Kind)
	assert.Equal(t, id, rec.Activity.ID)
}

func TestRecommendNeverReturnsFinishedActivity(t *testing.T) {
	s, _ := newTestStore(t)
	for i, achieved := range []uint{30, 45, 10, 0} {
		id := s.AddActivity("a", uint(20+i*10))
		require.NoError(t, s.OverwriteTime(id, achieved))
	}

	rec := s.Recommend()
	require.True(t, rec.OK())
	assert.Less(t, rec.Activity.AchievedMinutes, rec.Activity.TargetMinutes)
	assert.Zero(t, rec.Activity.AchievedMinutes)
}

func TestSuggestedPomoMinutes(t *testing.T) {
	s, _ := newTestStore(t)
	id := s.AddActivity("A", 100)

	m, ok := s.SuggestedPomoMinutes(30)
	require.True(t, ok)
	assert.Equal(t, uint(30), m)

	require.NoError(t, s.AddTime(id, 88))
	m, ok = s.SuggestedPomoMinutes(30)
	require.True(t, ok)
	assert.Equal(t, uint(12), m)

	require.NoError(t, s.StartActivity(id))
	_, ok = s.SuggestedPomoMinutes(30)
	assert.False(t, ok)
}

func TestRecommendThenPomodoroScenario(t *testing.T) {
	s, clock := newTestStore(t)
	a := s.AddActivity("A", 60)
	b := s.AddActivity("B", 30)
	require.NoError(t, s.AddTime(b, 10))

	rec := s.Recommend()
	require.Equal(t, a, rec.Activity.ID)
	require.NoError(t, s.StartActivityPomo(rec.Activity.ID, uintPtr(25)))

	clock.Advance(25 * time.Minute)
	_, expired := s.CheckPomodoroExpiry()
	require.True(t, expired)

	got, _ := s.Activity(a)
	assert.Equal(t, uint(25), got.AchievedMinutes)
	_, ok := s.Current()
	assert.False(t, ok)
}
