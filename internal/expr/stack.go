package expr

// DefaultStackCapacity bounds both evaluation stacks unless overridden.
const DefaultStackCapacity = 256

// Stack is a fixed-capacity LIFO owned by a single evaluation
type Stack[T any] struct {
	items []T
}

// NewStack creates an empty stack holding at most capacity items
func NewStack[T any](capacity int) *Stack[T] {
	if capacity <= 0 {
		capacity = DefaultStackCapacity
	}
	return &Stack[T]{items: make([]T, 0, capacity)}
}

// Push adds an item, failing with ErrStackOverflow when full
func (s *Stack[T]) Push(v T) error {
	if len(s.items) == cap(s.items) {
		return ErrStackOverflow
	}
	s.items = append(s.items, v)
	return nil
}

// Pop removes and returns the top item
func (s *Stack[T]) Pop() (T, error) {
	var zero T
	if len(s.items) == 0 {
		return zero, ErrStackUnderflow
	}
	top := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return top, nil
}

// Peek returns the top item without removing it
func (s *Stack[T]) Peek() (T, error) {
	var zero T
	if len(s.items) == 0 {
		return zero, ErrStackUnderflow
	}
	return s.items[len(s.items)-1], nil
}

func (s *Stack[T]) Len() int      { return len(s.items) }
func (s *Stack[T]) IsEmpty() bool { return len(s.items) == 0 }
