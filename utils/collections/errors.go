package collections

import "errors"

var (
	ErrMalformedInput = errors.New("malformed input")
	ErrKeyNotFound    = errors.New("key not found")
	// ErrCorruptedIndex means the index table and the dense entries disagree
	// about where a key lives. It is never a normal "not found".
	ErrCorruptedIndex = errors.New("corrupted index")
)
