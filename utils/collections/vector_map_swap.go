package collections

import (
	"github.com/pkg/errors"
)

// SwapMode selects what stays fixed when two entries are exchanged.
type SwapMode int

const (
	// SwapValues exchanges the two values. Keys stay in their slots.
	SwapValues SwapMode = iota
	// SwapLabels exchanges the two key labels and their index entries. Rows
	// stay where they are, so each key resolves to the other's old value.
	SwapLabels
	// SwapRows exchanges the two rows physically. Each key keeps its value.
	SwapRows
)

func (mode SwapMode) String() string {
	switch mode {
	case SwapValues:
		return "values"
	case SwapLabels:
		return "labels"
	case SwapRows:
		return "rows"
	default:
		return "unknown"
	}
}

// Exchange swaps the entries of k1 and k2 according to mode. Both keys are
// checked before anything is touched, so a failed exchange leaves the map
// unchanged.
func (m *VectorMap[K, V]) Exchange(mode SwapMode, k1, k2 K) error {
	if mode < SwapValues || mode > SwapRows {
		return errors.Errorf("unknown swap mode %d", mode)
	}
	i1, err := m.slotOrErr(k1)
	if err != nil {
		return err
	}
	i2, err := m.slotOrErr(k2)
	if err != nil {
		return err
	}
	m.exchange(mode, i1, i2)
	return nil
}

func (m *VectorMap[K, V]) Swap(k1, k2 K) error {
	return m.Exchange(SwapValues, k1, k2)
}

func (m *VectorMap[K, V]) SwapPointer(k1, k2 K) error {
	return m.Exchange(SwapLabels, k1, k2)
}

func (m *VectorMap[K, V]) SwapIndex(k1, k2 K) error {
	return m.Exchange(SwapRows, k1, k2)
}

// SwapWithTail moves the row of key to the last slot and the last row to
// key's slot.
func (m *VectorMap[K, V]) SwapWithTail(key K) error {
	i, err := m.slotOrErr(key)
	if err != nil {
		return err
	}
	m.exchange(SwapRows, i, len(m.source)-1)
	return nil
}

// Reverse reverses the dense order and re-indexes every key.
func (m *VectorMap[K, V]) Reverse() {
	for i, j := 0, len(m.source)-1; i < j; i, j = i+1, j-1 {
		m.source[i], m.source[j] = m.source[j], m.source[i]
	}
	for i, e := range m.source {
		m.index.assign(e.Key, i)
	}
}

func (m *VectorMap[K, V]) slotOrErr(key K) (int, error) {
	slot, ok, err := m.resolve(key)
	if err != nil {
		return -1, err
	}
	if !ok {
		return -1, errors.Wrapf(ErrKeyNotFound, "key %v", key)
	}
	return slot, nil
}

func (m *VectorMap[K, V]) exchange(mode SwapMode, i1, i2 int) {
	a, b := &m.source[i1], &m.source[i2]
	switch mode {
	case SwapValues:
		a.Value, b.Value = b.Value, a.Value
	case SwapLabels:
		a.Key, b.Key = b.Key, a.Key
		m.index.assign(a.Key, i1)
		m.index.assign(b.Key, i2)
	case SwapRows:
		*a, *b = *b, *a
		m.index.assign(a.Key, i1)
		m.index.assign(b.Key, i2)
	}
}
