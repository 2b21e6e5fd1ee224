package collections

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlotIndex(t *testing.T) {
	s := newSlotIndex[string](0)
	s.assign("aa", 0)
	s.assign("bb", 1)
	require.Equal(t, 2, s.size())
	require.Equal(t, true, s.contains("aa"))
	require.Equal(t, false, s.contains("cc"))
	slot, ok := s.lookup("bb")
	require.True(t, ok)
	require.Equal(t, 1, slot)

	c := s.clone()
	c.assign("bb", 7)
	slot, _ = s.lookup("bb")
	require.Equal(t, 1, slot)

	s.remove("bb")
	require.Equal(t, false, s.contains("bb"))
	require.Equal(t, 1, s.size())
	require.Equal(t, 2, c.size())

	s.reset()
	require.Equal(t, 0, s.size())
}

func TestSlotIndexZeroValue(t *testing.T) {
	var s slotIndex[int]
	require.Equal(t, 0, s.size())
	require.False(t, s.contains(1))
	s.remove(1)
	s.reset()
	s.assign(1, 0)
	require.Equal(t, 1, s.size())
}
