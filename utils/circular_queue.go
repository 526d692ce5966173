package utils

import (
	"iter"

	"github.com/oomph-ac/pathrecall/oerror"
)

// CircularQueue is a fixed-capacity double-ended queue. Items are appended at the tail and may be
// removed from either end. Once the queue is full, appending drops the oldest item.
type CircularQueue[T any] struct {
	items []T
	head  int
	count int
}

func NewCircularQueue[T any](capacity int) *CircularQueue[T] {
	return &CircularQueue[T]{items: make([]T, capacity)}
}

// Iter yields every element from oldest to newest.
func (q *CircularQueue[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for index := range q.count {
			if !yield(q.items[q.slot(index)]) {
				return
			}
		}
	}
}

// Len returns the number of items currently held by the queue.
func (q *CircularQueue[T]) Len() int {
	return q.count
}

// Cap returns the maximum number of items the queue can hold.
func (q *CircularQueue[T]) Cap() int {
	return len(q.items)
}

// Full returns true if the next Append will drop the oldest item.
func (q *CircularQueue[T]) Full() bool {
	return q.count == len(q.items)
}

// Pop removes and returns the oldest element. The boolean ok is false if the
// queue is empty.
func (q *CircularQueue[T]) Pop() (item T, ok bool) {
	if q.count == 0 {
		return item, false
	}
	var zero T
	item = q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.count--
	return item, true
}

// PopBack removes and returns the newest element. The boolean ok is false if
// the queue is empty.
func (q *CircularQueue[T]) PopBack() (item T, ok bool) {
	if q.count == 0 {
		return item, false
	}
	var zero T
	tail := q.slot(q.count - 1)
	item = q.items[tail]
	q.items[tail] = zero
	q.count--
	return item, true
}

// Append appends an item at the tail. If the queue is full, the oldest item is dropped first and
// returned with dropped set to true. An error is returned if the queue has zero capacity.
func (q *CircularQueue[T]) Append(item T) (evicted T, dropped bool, err error) {
	if len(q.items) == 0 {
		return evicted, false, oerror.New("circularQueue: append on zero-capacity queue")
	}
	if q.Full() {
		evicted, dropped = q.Pop()
	}
	q.items[q.slot(q.count)] = item
	q.count++
	return evicted, dropped, nil
}

// Clear drops every item in the queue.
func (q *CircularQueue[T]) Clear() {
	clear(q.items)
	q.head, q.count = 0, 0
}

func (q *CircularQueue[T]) slot(index int) int {
	return (q.head + index) % len(q.items)
}
