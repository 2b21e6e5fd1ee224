package collections

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Entry is a key/value pair stored in a VectorMap.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// SwapFunc observes a swap-delete. moved is the entry that now occupies the
// removed entry's slot. Both arguments are copies.
type SwapFunc[K comparable, V any] func(moved, removed Entry[K, V])

// VectorMap is a map whose entries are kept in a dense slice. Lookups go
// through an index table from key to slot; removals move the last entry into
// the freed slot, so iteration order is insertion order only until the first
// removal.
//
// A VectorMap is not safe for concurrent use. The zero value is an empty map.
type VectorMap[K comparable, V any] struct {
	index  slotIndex[K]
	source []Entry[K, V]
}

// NewVectorMap returns a map seeded with pairs in order. A key repeated in
// pairs keeps the slot of its first occurrence and the value of its last.
func NewVectorMap[K comparable, V any](pairs ...Entry[K, V]) *VectorMap[K, V] {
	m := &VectorMap[K, V]{
		index:  newSlotIndex[K](len(pairs)),
		source: make([]Entry[K, V], 0, len(pairs)),
	}
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return m
}

// ParsePairs builds a map from untyped two-element pairs, such as decoded
// JSON arrays. Duplicate keys follow NewVectorMap.
func ParsePairs[K comparable, V any](pairs [][]any) (*VectorMap[K, V], error) {
	m := NewVectorMap[K, V]()
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, errors.Wrapf(ErrMalformedInput, "pair %d has %d elements", i, len(p))
		}
		k, ok := assertPart[K](p[0])
		if !ok {
			return nil, errors.Wrapf(ErrMalformedInput, "pair %d: key %v has type %T", i, p[0], p[0])
		}
		if p[0] != nil && !reflect.ValueOf(p[0]).Comparable() {
			return nil, errors.Wrapf(ErrMalformedInput, "pair %d: key of type %T is not hashable", i, p[0])
		}
		v, ok := assertPart[V](p[1])
		if !ok {
			return nil, errors.Wrapf(ErrMalformedInput, "pair %d: value %v has type %T", i, p[1], p[1])
		}
		m.Set(k, v)
	}
	return m, nil
}

func assertPart[T any](x any) (T, bool) {
	if t, ok := x.(T); ok {
		return t, true
	}
	var zero T
	// untyped nil is accepted for interface types only
	return zero, x == nil && any(zero) == nil
}

// resolve returns the slot of key. A missing key is not an error; an index
// entry that does not match the dense entries is.
func (m *VectorMap[K, V]) resolve(key K) (int, bool, error) {
	slot, ok := m.index.lookup(key)
	if !ok {
		return -1, false, nil
	}
	if slot < 0 || slot >= len(m.source) || m.source[slot].Key != key {
		return -1, false, errors.Wrapf(ErrCorruptedIndex, "key %v points to slot %d of %d", key, slot, len(m.source))
	}
	return slot, true, nil
}

func (m *VectorMap[K, V]) mustResolve(key K) (int, bool) {
	slot, ok, err := m.resolve(key)
	if err != nil {
		panic(err)
	}
	return slot, ok
}

// Get returns the value stored under key. It panics with an error wrapping
// ErrCorruptedIndex if the index no longer matches the entries, which only
// happens after a caller rewrote a Key obtained from Entries.
func (m *VectorMap[K, V]) Get(key K) (V, bool) {
	slot, ok := m.mustResolve(key)
	if !ok {
		var zero V
		return zero, false
	}
	return m.source[slot].Value, true
}

// Lookup is Get reporting failures as errors: ErrKeyNotFound for a missing
// key and ErrCorruptedIndex for a broken index.
func (m *VectorMap[K, V]) Lookup(key K) (v V, err error) {
	slot, err := m.slotOrErr(key)
	if err != nil {
		return v, err
	}
	return m.source[slot].Value, nil
}

func (m *VectorMap[K, V]) Has(key K) bool {
	return m.index.contains(key)
}

// Slot returns the current dense position of key. It is only valid until
// the next mutation.
func (m *VectorMap[K, V]) Slot(key K) (int, bool) {
	return m.index.lookup(key)
}

func (m *VectorMap[K, V]) Head() (e Entry[K, V], ok bool) {
	if len(m.source) == 0 {
		return e, false
	}
	return m.source[0], true
}

func (m *VectorMap[K, V]) Tail() (e Entry[K, V], ok bool) {
	if len(m.source) == 0 {
		return e, false
	}
	return m.source[len(m.source)-1], true
}

// Set stores value under key and returns its slot. An existing key is
// updated in place; a new key is appended.
func (m *VectorMap[K, V]) Set(key K, value V) int {
	if slot, ok := m.mustResolve(key); ok {
		m.source[slot].Value = value
		return slot
	}
	slot := len(m.source)
	m.index.assign(key, slot)
	m.source = append(m.source, Entry[K, V]{Key: key, Value: value})
	return slot
}

func (m *VectorMap[K, V]) Delete(key K) bool {
	return m.DeleteWithSwap(key, nil)
}

// DeleteWithSwap removes key by moving the last entry into its slot. When an
// entry was moved, onSwap is called after the map is consistent again.
func (m *VectorMap[K, V]) DeleteWithSwap(key K, onSwap SwapFunc[K, V]) bool {
	slot, ok := m.mustResolve(key)
	if !ok {
		return false
	}
	last := len(m.source) - 1
	removed := m.source[slot]
	moved := slot != last
	if moved {
		m.source[slot] = m.source[last]
		m.index.assign(m.source[slot].Key, slot)
	}
	// detach the old tail so the backing array holds no stale entry
	m.source[last] = Entry[K, V]{}
	m.source = m.source[:last]
	m.index.remove(key)
	if moved && onSwap != nil {
		onSwap(m.source[slot], removed)
	}
	return true
}

// Pop removes and returns the last entry.
func (m *VectorMap[K, V]) Pop() (e Entry[K, V], ok bool) {
	n := len(m.source)
	if n == 0 {
		return e, false
	}
	e = m.source[n-1]
	m.source[n-1] = Entry[K, V]{}
	m.source = m.source[:n-1]
	m.index.remove(e.Key)
	return e, true
}

// Clear drops every entry, keeping the allocated capacity.
func (m *VectorMap[K, V]) Clear() {
	clear(m.source)
	m.source = m.source[:0]
	m.index.reset()
}

func (m *VectorMap[K, V]) Size() int {
	return len(m.source)
}

// Verify checks that every entry is indexed at its own slot and that the
// index holds nothing else.
func (m *VectorMap[K, V]) Verify() error {
	if m.index.size() != len(m.source) {
		return errors.Wrapf(ErrCorruptedIndex, "index holds %d keys, entries hold %d", m.index.size(), len(m.source))
	}
	for i, e := range m.source {
		slot, ok := m.index.lookup(e.Key)
		if !ok {
			return errors.Wrapf(ErrCorruptedIndex, "key %v at slot %d is not indexed", e.Key, i)
		}
		if slot != i {
			return errors.Wrapf(ErrCorruptedIndex, "key %v at slot %d is indexed at %d", e.Key, i, slot)
		}
	}
	return nil
}

func (m *VectorMap[K, V]) String() string {
	var sb strings.Builder
	sb.WriteString("map[")
	for i, e := range m.source {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%v:%v", e.Key, e.Value)
	}
	sb.WriteByte(']')
	return sb.String()
}
