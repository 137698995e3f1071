package store

func (s *Store) Buckets() []Bucket {
	return s.State().Buckets
}

func (s *Store) BucketCount() int { return len(s.state.Buckets) }

func (s *Store) Bucket(i int) (Bucket, bool) {
	if !s.validBucket(i) {
		return Bucket{}, false
	}
	b := s.state.Buckets[i]
	return Bucket{Name: b.Name, Todos: append([]TodoItem(nil), b.Todos...)}, true
}

// BucketIndex returns the display position of the named bucket, or -1.
func (s *Store) BucketIndex(name string) int {
	for i, b := range s.state.Buckets {
		if b.Name == name {
			return i
		}
	}
	return -1
}

// Todos returns the todos of bucket i, or nil for an unknown bucket.
func (s *Store) Todos(bucket int) []TodoItem {
	if !s.validBucket(bucket) {
		return nil
	}
	return append([]TodoItem(nil), s.state.Buckets[bucket].Todos...)
}

func (s *Store) TodoCount(bucket int) int {
	if !s.validBucket(bucket) {
		return 0
	}
	return len(s.state.Buckets[bucket].Todos)
}

func (s *Store) validBucket(i int) bool {
	return i >= 0 && i < len(s.state.Buckets)
}

// CreateBucket adds a bucket holding todos. If a bucket with that name already
// exists the todos are appended to it instead and false is returned.
func (s *Store) CreateBucket(name string, todos ...TodoItem) bool {
	if i := s.BucketIndex(name); i >= 0 {
		s.state.Buckets[i].Todos = append(s.state.Buckets[i].Todos, todos...)
		if len(todos) > 0 {
			s.touch()
		}
		return false
	}
	s.state.Buckets = append(s.state.Buckets, Bucket{
		Name:  name,
		Todos: append([]TodoItem(nil), todos...),
	})
	s.touch()
	return true
}

// DeleteBucket removes an empty, non-default bucket. It is a no-op returning
// false otherwise.
func (s *Store) DeleteBucket(i int) bool {
	if !s.validBucket(i) {
		return false
	}
	b := s.state.Buckets[i]
	if b.Name == DefaultBucket || len(b.Todos) > 0 {
		return false
	}
	s.state.Buckets = append(s.state.Buckets[:i], s.state.Buckets[i+1:]...)
	s.touch()
	return true
}

// MoveBucket moves the bucket at from so that it ends up at position to.
//
// Errors: ErrInvalidSelection, ErrInvalidTargetIndex.
func (s *Store) MoveBucket(from, to int) error {
	if !s.validBucket(from) {
		return ErrInvalidSelection
	}
	if !s.validBucket(to) {
		return ErrInvalidTargetIndex
	}
	if from == to {
		return nil
	}
	b := s.state.Buckets[from]
	rest := append(s.state.Buckets[:from:from], s.state.Buckets[from+1:]...)
	s.state.Buckets = append(rest[:to:to], append([]Bucket{b}, rest[to:]...)...)
	s.touch()
	return nil
}

// AddTodo appends a todo to bucket.
//
// Errors: ErrInvalidBucket.
func (s *Store) AddTodo(bucket int, text string) error {
	if !s.validBucket(bucket) {
		return ErrInvalidBucket
	}
	s.state.Buckets[bucket].Todos = append(s.state.Buckets[bucket].Todos, TodoItem{Text: text})
	s.touch()
	return nil
}

// InsertTodo places item at index, which may equal the todo count.
//
// Errors: ErrInvalidBucket, ErrInvalidID.
func (s *Store) InsertTodo(bucket, index int, item TodoItem) error {
	if !s.validBucket(bucket) {
		return ErrInvalidBucket
	}
	todos := s.state.Buckets[bucket].Todos
	if index < 0 || index > len(todos) {
		return ErrInvalidID
	}
	todos = append(todos, TodoItem{})
	copy(todos[index+1:], todos[index:])
	todos[index] = item
	s.state.Buckets[bucket].Todos = todos
	s.touch()
	return nil
}

// DeleteTodo removes and returns the todo at index i of bucket.
//
// Errors: ErrInvalidBucket, ErrInvalidID.
func (s *Store) DeleteTodo(bucket, i int) (TodoItem, error) {
	if !s.validBucket(bucket) {
		return TodoItem{}, ErrInvalidBucket
	}
	todos := s.state.Buckets[bucket].Todos
	if i < 0 || i >= len(todos) {
		return TodoItem{}, ErrInvalidID
	}
	item := todos[i]
	s.state.Buckets[bucket].Todos = append(todos[:i], todos[i+1:]...)
	s.touch()
	return item, nil
}

// SwapTodos exchanges two todos inside one bucket.
//
// Errors: ErrInvalidBucket, ErrEqualIDs, ErrFirstInvalid, ErrSecondInvalid.
func (s *Store) SwapTodos(bucket, i, j int) error {
	if !s.validBucket(bucket) {
		return ErrInvalidBucket
	}
	todos := s.state.Buckets[bucket].Todos
	switch {
	case i == j:
		return ErrEqualIDs
	case i < 0 || i >= len(todos):
		return ErrFirstInvalid
	case j < 0 || j >= len(todos):
		return ErrSecondInvalid
	}
	todos[i], todos[j] = todos[j], todos[i]
	s.touch()
	return nil
}

// MoveTodoBetweenBuckets transfers a todo from src to the end of dst.
//
// Errors: ErrInvalidBucket, ErrInvalidID.
func (s *Store) MoveTodoBetweenBuckets(src, todo, dst int) error {
	if !s.validBucket(dst) {
		return ErrInvalidBucket
	}
	item, err := s.DeleteTodo(src, todo)
	if err != nil {
		return err
	}
	s.state.Buckets[dst].Todos = append(s.state.Buckets[dst].Todos, item)
	return nil
}

// MoveTodoAbove moves toMove so it sits directly above anchor.
//
// Errors: ErrInvalidBucket, ErrFirstInvalid (anchor), ErrSecondInvalid (toMove), ErrEqualIDs.
func (s *Store) MoveTodoAbove(bucket, anchor, toMove int) error {
	return s.moveTodoNextTo(bucket, anchor, toMove, false)
}

// MoveTodoBelow moves toMove so it sits directly below anchor.
//
// Errors: same as MoveTodoAbove.
func (s *Store) MoveTodoBelow(bucket, anchor, toMove int) error {
	return s.moveTodoNextTo(bucket, anchor, toMove, true)
}

func (s *Store) moveTodoNextTo(bucket, anchor, toMove int, below bool) error {
	if !s.validBucket(bucket) {
		return ErrInvalidBucket
	}
	n := len(s.state.Buckets[bucket].Todos)
	switch {
	case anchor < 0 || anchor >= n:
		return ErrFirstInvalid
	case toMove < 0 || toMove >= n:
		return ErrSecondInvalid
	case anchor == toMove:
		return ErrEqualIDs
	}
	item, err := s.DeleteTodo(bucket, toMove)
	if err != nil {
		return err
	}
	if toMove < anchor {
		anchor--
	}
	if below {
		anchor++
	}
	return s.InsertTodo(bucket, anchor, item)
}
