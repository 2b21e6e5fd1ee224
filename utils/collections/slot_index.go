package collections

// slotIndex maps each live key to its position in the dense entries.
// The zero value is an empty index.
type slotIndex[K comparable] struct {
	entries map[K]int
}

func newSlotIndex[K comparable](capacity int) slotIndex[K] {
	return slotIndex[K]{
		entries: make(map[K]int, capacity),
	}
}

func (s *slotIndex[K]) contains(k K) bool {
	_, ok := s.entries[k]
	return ok
}

func (s *slotIndex[K]) lookup(k K) (int, bool) {
	slot, ok := s.entries[k]
	return slot, ok
}

func (s *slotIndex[K]) assign(k K, slot int) {
	if s.entries == nil {
		s.entries = make(map[K]int)
	}
	s.entries[k] = slot
}

func (s *slotIndex[K]) remove(k K) {
	delete(s.entries, k)
}

func (s *slotIndex[K]) reset() {
	clear(s.entries)
}

func (s *slotIndex[K]) size() int {
	return len(s.entries)
}

func (s *slotIndex[K]) clone() slotIndex[K] {
	c := newSlotIndex[K](len(s.entries))
	for k, slot := range s.entries {
		c.entries[k] = slot
	}
	return c
}
