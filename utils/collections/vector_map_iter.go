package collections

import (
	"iter"
	"maps"
	"slices"
)

// All yields every key/value pair in current dense order. The map must not
// be mutated while a traversal is in progress.
func (m *VectorMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, e := range m.source {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

func (m *VectorMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, e := range m.source {
			if !yield(e.Key) {
				return
			}
		}
	}
}

func (m *VectorMap[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, e := range m.source {
			if !yield(e.Value) {
				return
			}
		}
	}
}

// Entries returns the dense backing slice itself, for tight loops that want
// contiguous memory. Values may be modified in place. Writing a Key breaks
// the index and later lookups report ErrCorruptedIndex. The slice is only
// valid until the next mutation of the map.
func (m *VectorMap[K, V]) Entries() []Entry[K, V] {
	return m.source
}

func (m *VectorMap[K, V]) ForEach(fn func(slot int, e Entry[K, V])) {
	for i, e := range m.source {
		fn(i, e)
	}
}

// Some reports whether fn returns true for any entry, stopping at the first.
func (m *VectorMap[K, V]) Some(fn func(slot int, e Entry[K, V]) bool) bool {
	for i, e := range m.source {
		if fn(i, e) {
			return true
		}
	}
	return false
}

// MapEntries lazily transforms every entry of m.
func MapEntries[K comparable, V, T any](m *VectorMap[K, V], fn func(slot int, e Entry[K, V]) T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for i, e := range m.source {
			if !yield(fn(i, e)) {
				return
			}
		}
	}
}

// FilterMap lazily transforms the entries for which fn reports true.
func FilterMap[K comparable, V, U any](m *VectorMap[K, V], fn func(slot int, e Entry[K, V]) (U, bool)) iter.Seq[U] {
	return func(yield func(U) bool) {
		for i, e := range m.source {
			u, ok := fn(i, e)
			if !ok {
				continue
			}
			if !yield(u) {
				return
			}
		}
	}
}

func Reduce[K comparable, V, T any](m *VectorMap[K, V], fn func(acc T, slot int, e Entry[K, V]) T, init T) T {
	acc := init
	for i, e := range m.source {
		acc = fn(acc, i, e)
	}
	return acc
}

// Clone returns a shallow copy with its own entries and index.
func (m *VectorMap[K, V]) Clone() *VectorMap[K, V] {
	return &VectorMap[K, V]{
		index:  m.index.clone(),
		source: slices.Clone(m.source),
	}
}

// InsertInto copies every pair into dst in dense order.
func (m *VectorMap[K, V]) InsertInto(dst map[K]V) {
	for _, e := range m.source {
		dst[e.Key] = e.Value
	}
}

// From replaces the contents of m with the pairs of src, in src's iteration
// order.
func (m *VectorMap[K, V]) From(src map[K]V) {
	m.FromSeq(maps.All(src))
}

// FromSeq replaces the contents of m with the pairs of seq. A key repeated in
// seq keeps its first slot and its last value. seq is drained before m is
// cleared, so it may be backed by m itself.
func (m *VectorMap[K, V]) FromSeq(seq iter.Seq2[K, V]) {
	var pairs []Entry[K, V]
	for k, v := range seq {
		pairs = append(pairs, Entry[K, V]{Key: k, Value: v})
	}
	m.Clear()
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
}
