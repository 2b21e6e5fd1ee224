package collections

import (
	"fmt"
)

type Queue[V any] interface {
	Push(V)
	Pop() (V, bool)
	Peek() (V, bool)
	// Drain pops every queued value in FIFO order, including values pushed by
	// fn itself, and returns how many were popped.
	Drain(fn func(V)) int
	Size() int
}

type queue[V any] struct {
	entries []V
	head    int
}

func NewQueue[V any]() Queue[V] {
	return &queue[V]{
		entries: make([]V, 0),
	}
}

func (q *queue[V]) Push(v V) {
	q.entries = append(q.entries, v)
}

func (q *queue[V]) Pop() (v V, ok bool) {
	if q.Size() == 0 {
		return v, false
	}
	v = q.entries[q.head]
	var zero V
	q.entries[q.head] = zero
	q.head++
	if q.head == len(q.entries) {
		// empty again, reuse the backing array
		q.entries = q.entries[:0]
		q.head = 0
	}
	return v, true
}

func (q *queue[V]) Peek() (v V, ok bool) {
	if q.Size() == 0 {
		return v, false
	}
	return q.entries[q.head], true
}

func (q *queue[V]) Drain(fn func(V)) int {
	n := 0
	for {
		v, ok := q.Pop()
		if !ok {
			return n
		}
		fn(v)
		n++
	}
}

func (q *queue[V]) Size() int {
	return len(q.entries) - q.head
}

func (q queue[V]) String() string {
	return fmt.Sprint(q.entries[q.head:])
}
