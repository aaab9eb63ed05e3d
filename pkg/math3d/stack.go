package math3d

import "errors"

// ErrEmptyStack is returned when popping or peeking a TransformStack that
// holds no checkpoints. It always indicates unbalanced Push/Pop calls.
var ErrEmptyStack = errors.New("math3d: transform stack is empty")

// TransformStack holds composed placement matrices saved during a
// hierarchical traversal. The top of the stack is the most recent checkpoint.
//
// Matrices are stored by value, so callers may keep mutating their own copy
// after a Push without affecting the saved checkpoint.
type TransformStack struct {
	items []Mat4
}

// NewTransformStack creates an empty stack with room for depth checkpoints.
func NewTransformStack(depth int) *TransformStack {
	return &TransformStack{items: make([]Mat4, 0, depth)}
}

// Push saves m as the new top of the stack.
func (s *TransformStack) Push(m Mat4) {
	s.items = append(s.items, m)
}

// Pop removes and returns the top of the stack.
func (s *TransformStack) Pop() (Mat4, error) {
	n := len(s.items)
	if n == 0 {
		return Mat4{}, ErrEmptyStack
	}
	m := s.items[n-1]
	s.items = s.items[:n-1]
	return m, nil
}

// Current returns the top of the stack without removing it.
func (s *TransformStack) Current() (Mat4, error) {
	n := len(s.items)
	if n == 0 {
		return Mat4{}, ErrEmptyStack
	}
	return s.items[n-1], nil
}

// Len returns the number of saved checkpoints.
func (s *TransformStack) Len() int {
	return len(s.items)
}

// Reset drops every checkpoint but keeps the allocated storage.
func (s *TransformStack) Reset() {
	s.items = s.items[:0]
}
