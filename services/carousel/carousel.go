// Package carousel keeps a position over a fixed, non-empty list and moves
// it forward, backward or directly, always wrapping around the ends.
package carousel

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when a carousel is built from an empty list.
	ErrEmpty = errors.New("carousel: no items")
	// ErrIndexOutOfRange is returned by JumpTo and At for an index outside [0, N).
	ErrIndexOutOfRange = errors.New("carousel: index out of range")
)

// Carousel is a position over an immutable list of items.
// It is not safe for concurrent use.
type Carousel[T any] struct {
	items []T
	index int
}

// New returns a carousel over items positioned at the first one.
func New[T any](items []T) (*Carousel[T], error) {
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	cp := make([]T, len(items))
	copy(cp, items)
	return &Carousel[T]{items: cp}, nil
}

// At returns a carousel over items positioned at index.
func At[T any](items []T, index int) (*Carousel[T], error) {
	c, err := New(items)
	if err != nil {
		return nil, err
	}
	if err := c.JumpTo(index); err != nil {
		return nil, err
	}
	return c, nil
}

// Next moves forward one position, wrapping from the last item to the first.
func (c *Carousel[T]) Next() T {
	c.index = (c.index + 1) % len(c.items)
	return c.items[c.index]
}

// Previous moves back one position, wrapping from the first item to the last.
func (c *Carousel[T]) Previous() T {
	n := len(c.items)
	c.index = (c.index - 1 + n) % n
	return c.items[c.index]
}

// JumpTo moves directly to index. Out-of-range indices are rejected and
// leave the position unchanged.
func (c *Carousel[T]) JumpTo(index int) error {
	if index < 0 || index >= len(c.items) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(c.items))
	}
	c.index = index
	return nil
}

// Index returns the current position.
func (c *Carousel[T]) Index() int { return c.index }

// Len returns the number of items.
func (c *Carousel[T]) Len() int { return len(c.items) }

// Current returns the item at the current position.
func (c *Carousel[T]) Current() T { return c.items[c.index] }

// Items returns a copy of the items in order.
func (c *Carousel[T]) Items() []T {
	cp := make([]T, len(c.items))
	copy(cp, c.items)
	return cp
}

// NextIndex returns the index Next would move to, without moving.
func (c *Carousel[T]) NextIndex() int {
	return (c.index + 1) % len(c.items)
}

// PreviousIndex returns the index Previous would move to, without moving.
func (c *Carousel[T]) PreviousIndex() int {
	n := len(c.items)
	return (c.index - 1 + n) % n
}
