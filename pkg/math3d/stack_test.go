package math3d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformStackEmpty(t *testing.T) {
	s := NewTransformStack(4)

	_, err := s.Pop()
	assert.ErrorIs(t, err, ErrEmptyStack)

	_, err = s.Current()
	assert.ErrorIs(t, err, ErrEmptyStack)
	assert.Equal(t, 0, s.Len())
}

func TestTransformStackLIFO(t *testing.T) {
	s := NewTransformStack(0)
	a := Translate(V3(1, 0, 0))
	b := RotateY(Radians(30))

	s.Push(a)
	s.Push(b)

	top, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, b, top)
	assert.Equal(t, 2, s.Len())

	got, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, b, got)

	got, err = s.Pop()
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestTransformStackValueCopy(t *testing.T) {
	s := NewTransformStack(1)
	m := Identity()
	s.Push(m)

	m.Set(0, 3, 5)

	saved, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, Identity(), saved)
}

// Balanced push/pop sequences must return the traversal to its starting
// matrix no matter how deep the nesting goes.
func TestTransformStackBalancedUnwind(t *testing.T) {
	s := NewTransformStack(8)
	start := LookAt(V3(0, 0, 4), Zero3(), Up())
	current := start

	offsets := []Vec3{
		V3(0, 1.5, 0), V3(0, -0.375, 0), V3(0, -0.125, 0),
		V3(-1, -0.125, 0), V3(0, -0.375, 0), V3(0.5, -0.125, 0), V3(0, -0.375, 0),
	}
	for i, off := range offsets {
		s.Push(current)
		current = current.Mul(Translate(off)).Mul(RotateY(Radians(float64(i) * 10)))
	}
	assert.Equal(t, len(offsets), s.Len())

	for range offsets {
		var err error
		current, err = s.Pop()
		require.NoError(t, err)
	}

	assert.Equal(t, start, current)
	assert.Equal(t, 0, s.Len())
	_, err := s.Pop()
	assert.ErrorIs(t, err, ErrEmptyStack)
}

func TestTransformStackReset(t *testing.T) {
	s := NewTransformStack(2)
	s.Push(Identity())
	s.Push(Identity())
	s.Reset()

	assert.Equal(t, 0, s.Len())
	_, err := s.Current()
	assert.ErrorIs(t, err, ErrEmptyStack)
}
