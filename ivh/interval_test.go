package ivh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWindowMinSingleElementLeavesSentinel(t *testing.T) {
	v := []ivhInterval{{iv: 0, minIV: sentinelBit}}
	windowMin(v, 4)
	require.Equal(t, uint32(sentinelBit), v[0].minIV)
}

func TestWindowMinTwoElementGroup(t *testing.T) {
	v := []ivhInterval{
		{iv: 37, minIV: sentinelBit},
		{iv: 0, minIV: sentinelBit},
	}
	windowMin(v, 3)
	require.Equal(t, uint32(37), v[0].minIV)
	require.Equal(t, uint32(37), v[1].minIV)
}

func TestWindowMinWideWindowTakesGroupMinimum(t *testing.T) {
	v := []ivhInterval{
		{iv: 10, minIV: sentinelBit},
		{iv: 5, minIV: sentinelBit},
		{iv: 0, minIV: sentinelBit},
	}
	windowMin(v, 5) // wing wide enough to cover the whole 3-element group
	require.Equal(t, uint32(5), v[0].minIV)
	require.Equal(t, uint32(5), v[1].minIV)
	require.Equal(t, uint32(5), v[2].minIV)
}

func TestWindowMinRespectsGroupBoundaries(t *testing.T) {
	// Two independent sub-groups concatenated: a zero iv always marks a
	// boundary, so the second sub-group's minimum must never leak into the
	// first's.
	v := []ivhInterval{
		{iv: 3, minIV: sentinelBit},
		{iv: 0, minIV: sentinelBit}, // boundary
		{iv: 9, minIV: sentinelBit},
		{iv: 0, minIV: sentinelBit}, // boundary
	}
	windowMin(v, 8)
	require.Equal(t, uint32(3), v[0].minIV)
	require.Equal(t, uint32(3), v[1].minIV, "a boundary entry records the minimum of the sub-group it closes")
	require.Equal(t, uint32(9), v[2].minIV)
	require.Equal(t, uint32(9), v[3].minIV)
}
