package collections

import "iter"

// Map is the keyed, densely iterable surface shared by VectorMap and its
// consumers.
type Map[K comparable, V any] interface {
	Has(k K) bool
	Get(k K) (V, bool)
	Set(k K, v V) int
	Delete(k K) bool
	Size() int
	All() iter.Seq2[K, V]
}

var _ Map[string, int] = (*VectorMap[string, int])(nil)
