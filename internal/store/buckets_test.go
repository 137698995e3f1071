package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func todos(texts ...string) []TodoItem {
	out := make([]TodoItem, len(texts))
	for i, t := range texts {
		out[i] = TodoItem{Text: t}
	}
	return out
}

func bucketNames(s *Store) []string {
	var names []string
	for _, b := range s.Buckets() {
		names = append(names, b.Name)
	}
	return names
}

func TestCreateBucketMergesExisting(t *testing.T) {
	s, _ := newTestStore(t)

	assert.True(t, s.CreateBucket("Work", todos("a", "b")...))
	assert.False(t, s.CreateBucket("Work", todos("c")...))

	assert.Equal(t, []string{DefaultBucket, "Work"}, bucketNames(s))
	assert.Equal(t, todos("a", "b", "c"), s.Todos(s.BucketIndex("Work")))
}

func TestCreateBucketNamesAreCaseSensitive(t *testing.T) {
	s, _ := newTestStore(t)

	assert.True(t, s.CreateBucket("work"))
	assert.True(t, s.CreateBucket("Work"))
	assert.Equal(t, 3, s.BucketCount())
}

func TestCreateDefaultBucketNeverDuplicates(t *testing.T) {
	s, _ := newTestStore(t)

	assert.False(t, s.CreateBucket(DefaultBucket, todos("x")...))
	assert.Equal(t, []string{DefaultBucket}, bucketNames(s))
	assert.Equal(t, todos("x"), s.Todos(0))
}

func TestDeleteBucket(t *testing.T) {
	s, _ := newTestStore(t)
	s.CreateBucket("Work", todos("only")...)
	work := s.BucketIndex("Work")

	assert.False(t, s.DeleteBucket(work), "non-empty bucket")
	assert.False(t, s.DeleteBucket(s.BucketIndex(DefaultBucket)), "default bucket")
	assert.False(t, s.DeleteBucket(17), "out of range")

	_, err := s.DeleteTodo(work, 0)
	require.NoError(t, err)
	assert.True(t, s.DeleteBucket(work))
	assert.Equal(t, []string{DefaultBucket}, bucketNames(s))
}

func TestDefaultBucketSurvivesAnySequence(t *testing.T) {
	s, _ := newTestStore(t)
	s.CreateBucket("A")
	s.CreateBucket("B")
	require.NoError(t, s.MoveBucket(0, 2))

	for i := s.BucketCount() - 1; i >= 0; i-- {
		s.DeleteBucket(i)
	}

	assert.Equal(t, []string{DefaultBucket}, bucketNames(s))
}

func TestMoveBucket(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
		wantErr  error
	}{
		{name: "forward", from: 0, to: 2, want: []string{"A", "B", DefaultBucket}},
		{name: "backward", from: 2, to: 0, want: []string{"B", DefaultBucket, "A"}},
		{name: "same place", from: 1, to: 1, want: []string{DefaultBucket, "A", "B"}},
		{name: "bad selection", from: 3, to: 0, wantErr: ErrInvalidSelection},
		{name: "bad target", from: 0, to: -1, wantErr: ErrInvalidTargetIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			s.CreateBucket("A")
			s.CreateBucket("B")

			err := s.MoveBucket(tt.from, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, bucketNames(s))
		})
	}
}

func TestSwapTodos(t *testing.T) {
	s, _ := newTestStore(t)
	for _, text := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, s.AddTodo(0, text))
	}

	assert.ErrorIs(t, s.SwapTodos(0, 2, 2), ErrEqualIDs)
	assert.ErrorIs(t, s.SwapTodos(0, 0, 10), ErrSecondInvalid)
	assert.ErrorIs(t, s.SwapTodos(0, 10, 0), ErrFirstInvalid)
	assert.ErrorIs(t, s.SwapTodos(4, 0, 1), ErrInvalidBucket)

	require.NoError(t, s.SwapTodos(0, 0, 4))
	assert.Equal(t, todos("e", "b", "c", "d", "a"), s.Todos(0))
}

func TestDeleteTodo(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.AddTodo(0, "a"))
	require.NoError(t, s.AddTodo(0, "b"))

	item, err := s.DeleteTodo(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "a", item.Text)
	assert.Equal(t, todos("b"), s.Todos(0))

	_, err = s.DeleteTodo(0, 1)
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestMoveTodoBetweenBuckets(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.AddTodo(0, "a"))
	require.NoError(t, s.AddTodo(0, "b"))
	s.CreateBucket("Work", todos("w")...)
	work := s.BucketIndex("Work")

	require.NoError(t, s.MoveTodoBetweenBuckets(0, 0, work))
	assert.Equal(t, todos("b"), s.Todos(0))
	assert.Equal(t, todos("w", "a"), s.Todos(work))

	assert.ErrorIs(t, s.MoveTodoBetweenBuckets(0, 5, work), ErrInvalidID)
	assert.ErrorIs(t, s.MoveTodoBetweenBuckets(0, 0, 9), ErrInvalidBucket)
	assert.ErrorIs(t, s.MoveTodoBetweenBuckets(9, 0, 0), ErrInvalidBucket)
	assert.Equal(t, todos("b"), s.Todos(0))
}

func TestMoveTodoAboveAndBelow(t *testing.T) {
	tests := []struct {
		name           string
		below          bool
		anchor, toMove int
		want           []string
		wantErr        error
	}{
		{name: "above, moving up", anchor: 1, toMove: 3, want: []string{"a", "d", "b", "c"}},
		{name: "above, moving down", anchor: 3, toMove: 0, want: []string{"b", "c", "a", "d"}},
		{name: "below, moving up", below: true, anchor: 0, toMove: 2, want: []string{"a", "c", "b", "d"}},
		{name: "below, moving down", below: true, anchor: 2, toMove: 0, want: []string{"b", "c", "a", "d"}},
		{name: "same todo", anchor: 1, toMove: 1, wantErr: ErrEqualIDs},
		{name: "bad anchor", anchor: 9, toMove: 1, wantErr: ErrFirstInvalid},
		{name: "bad todo", anchor: 1, toMove: 9, wantErr: ErrSecondInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			for _, text := range []string{"a", "b", "c", "d"} {
				require.NoError(t, s.AddTodo(0, text))
			}

			var err error
			if tt.below {
				err = s.MoveTodoBelow(0, tt.anchor, tt.toMove)
			} else {
				err = s.MoveTodoAbove(0, tt.anchor, tt.toMove)
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, todos(tt.want...), s.Todos(0))
		})
	}
}

func TestInsertTodo(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.InsertTodo(0, 0, TodoItem{Text: "b"}))
	require.NoError(t, s.InsertTodo(0, 0, TodoItem{Text: "a"}))
	require.NoError(t, s.InsertTodo(0, 2, TodoItem{Text: "c"}))

	assert.Equal(t, todos("a", "b", "c"), s.Todos(0))
	assert.ErrorIs(t, s.InsertTodo(0, 5, TodoItem{}), ErrInvalidID)
}

func TestTodosReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.AddTodo(0, "a"))

	got := s.Todos(0)
	got[0].Text = "changed"

	assert.Equal(t, todos("a"), s.Todos(0))
}
