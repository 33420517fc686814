// Package slots provides a fixed-capacity arena of reusable session slots
// addressed by small integer handles.
package slots

import (
	"errors"
	"fmt"
	"sync"
)

// InvalidHandle is returned alongside every acquisition error.
const InvalidHandle = -1

var (
	// ErrExhausted indicates that every slot is assigned.
	ErrExhausted = errors.New("slots: no free slot")

	// ErrInvalidHandle indicates an out-of-range or unassigned handle.
	ErrInvalidHandle = errors.New("slots: invalid handle")
)

// Arena is a fixed pool of T values. Storage is allocated once in New.
//
// Acquire and Release are serialized by a mutex. Get does not lock: a
// handle must not be used concurrently with its own Release, but distinct
// handles may be driven from different goroutines.
type Arena[T any] struct {
	mu     sync.Mutex
	items  []T
	used   []bool
	next   int // next-fit cursor
	active int
}

// New creates an arena with capacity slots, all free.
func New[T any](capacity int) *Arena[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Arena[T]{
		items: make([]T, capacity),
		used:  make([]bool, capacity),
	}
}

// Acquire assigns the lowest-numbered free slot.
func (a *Arena[T]) Acquire() (int, *T, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for h := range a.items {
		if !a.used[h] {
			return a.assign(h), &a.items[h], nil
		}
	}
	return InvalidHandle, nil, fmt.Errorf("%w: capacity %d", ErrExhausted, len(a.items))
}

// AcquireNext assigns the first free slot at or after a rotating cursor
// that advances past every slot it hands out.
func (a *Arena[T]) AcquireNext() (int, *T, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := len(a.items)
	for i := range n {
		h := (a.next + i) % n
		if !a.used[h] {
			a.next = (h + 1) % n
			return a.assign(h), &a.items[h], nil
		}
	}
	return InvalidHandle, nil, fmt.Errorf("%w: capacity %d", ErrExhausted, n)
}

func (a *Arena[T]) assign(h int) int {
	a.used[h] = true
	a.active++
	return h
}

// Get returns the value of an assigned slot.
func (a *Arena[T]) Get(h int) (*T, error) {
	if h < 0 || h >= len(a.items) || !a.used[h] {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}
	return &a.items[h], nil
}

// Release zeroes the slot and marks it free.
func (a *Arena[T]) Release(h int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if h < 0 || h >= len(a.items) || !a.used[h] {
		return fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}

	var zero T
	a.items[h] = zero
	a.used[h] = false
	a.active--
	return nil
}

// Active returns the number of assigned slots.
func (a *Arena[T]) Active() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

// Capacity returns the total number of slots.
func (a *Arena[T]) Capacity() int {
	return len(a.items)
}
