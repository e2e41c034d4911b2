package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rmalmain/alcov/errs"
)

func TestAdjacency_RoundTrip(t *testing.T) {
	adjacency := map[uint64]uint64{1: 2, 2: 1, 7: 9}

	buf := AppendAdjacency(nil, adjacency)
	require.Len(t, buf, len(adjacency)*EdgeSize)

	parsed, err := ParseAdjacency(buf, 0, uint64(len(adjacency)))
	require.NoError(t, err)
	require.Equal(t, adjacency, parsed)
}

func TestAdjacency_Offset(t *testing.T) {
	first := map[uint64]uint64{0: 1}
	second := map[uint64]uint64{3: 4, 5: 6}

	buf := AppendAdjacency(nil, first)
	offset := uint64(len(buf))
	buf = AppendAdjacency(buf, second)

	parsed, err := ParseAdjacency(buf, offset, 2)
	require.NoError(t, err)
	require.Equal(t, second, parsed)
}

func TestAdjacency_Empty(t *testing.T) {
	parsed, err := ParseAdjacency(nil, 0, 0)
	require.NoError(t, err)
	require.Empty(t, parsed)
}

func TestAdjacency_OutOfRange(t *testing.T) {
	buf := AppendAdjacency(nil, map[uint64]uint64{1: 1})

	_, err := ParseAdjacency(buf, 0, 2)
	require.ErrorIs(t, err, errs.ErrMalformedBinary)

	_, err = ParseAdjacency(buf, uint64(len(buf)), 1)
	require.ErrorIs(t, err, errs.ErrMalformedBinary)

	// Huge count must not overflow the bounds check.
	_, err = ParseAdjacency(buf, 0, ^uint64(0)/2)
	require.ErrorIs(t, err, errs.ErrMalformedBinary)
}
