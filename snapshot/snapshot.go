package snapshot

import "casenara/clone"

// Snapshot holds a private clone of a value captured once, typically the
// initial state of a form, and hands out fresh copies of it.
type Snapshot[T any] struct {
	value T
}

// Take captures a clone of v.
func Take[T any](v T) Snapshot[T] {
	return Snapshot[T]{value: clone.DeepClone(v)}
}

// Value returns a fresh clone of the captured value.
func (s Snapshot[T]) Value() T {
	return clone.DeepClone(s.value)
}

// Restore resets *ref to the captured value.
func (s Snapshot[T]) Restore(ref *T) {
	ResetValue(ref, s.value)
}
