package commons

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntityIDFromReader(t *testing.T) {
	a, err := NewEntityIDFromReader(rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	b, err := NewEntityIDFromReader(rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Len(t, a.String(), 36)
	require.Equal(t, a.String()[:8], a.Short())
	require.NotEqual(t, NewEntityID(), NewEntityID())
}

func TestTransformStep(t *testing.T) {
	tr := Transform{X: 0, Y: 0, VX: 2, VY: -1}
	tr.Step(1, 10)
	require.Equal(t, Transform{X: 2, Y: -1, VX: 2, VY: -1}, tr)

	tr = Transform{X: 9, Y: -9, VX: 4, VY: -4}
	tr.Step(1, 10)
	require.Equal(t, Transform{X: 10, Y: -10, VX: -4, VY: 4}, tr)
	require.True(t, tr.InBounds(10))
	require.InDelta(t, 5.656854, tr.Speed(), 1e-6)
}
