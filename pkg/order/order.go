// Package order provides the single list-move primitive shared by every
// ordered collection in the application (section components, bank columns).
package order

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a move index falls outside the sequence.
var ErrIndexOutOfRange = errors.New("index out of range")

// Move returns a copy of s with the element at from relocated to position to.
// Every other element keeps its relative order (a single-element list move,
// not a swap). A move with from == to is a no-op, not an error.
//
// The remove-then-reinsert algorithm makes the operation self-inverse:
// Move(Move(s, i, j), j, i) == s for every valid pair i, j.
func Move[T any](s []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(s) {
		return nil, fmt.Errorf("move from %d in sequence of length %d: %w", from, len(s), ErrIndexOutOfRange)
	}
	if to < 0 || to >= len(s) {
		return nil, fmt.Errorf("move to %d in sequence of length %d: %w", to, len(s), ErrIndexOutOfRange)
	}

	out := make([]T, len(s))
	copy(out, s)
	if from == to {
		return out, nil
	}

	elem := out[from]
	out = append(out[:from], out[from+1:]...)

	// Reinsert at the target index.
	out = append(out, elem)
	copy(out[to+1:], out[to:len(out)-1])
	out[to] = elem
	return out, nil
}
