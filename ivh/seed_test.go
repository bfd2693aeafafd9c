package ivh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeedSelectMidOccFilter(t *testing.T) {
	a := []Seed{{N: 5}, {N: 15}, {N: 20}}
	seedSelect(a, 0, 10)
	require.False(t, a[0].Filtered)
	require.True(t, a[1].Filtered)
	require.True(t, a[2].Filtered)
}

func TestSeedSelectTieRescueWithheldWhenTooTied(t *testing.T) {
	a := []Seed{{N: 1}, {N: 1}, {N: 1}, {N: 1}}
	seedSelect(a, 4, 0) // midOcc 0 filters every seed first
	for i := range a {
		require.True(t, a[i].Filtered, "four equally-rare seeds tie; none should be rescued")
	}
}

func TestSeedSelectTieRescueRescuesUniqueRarest(t *testing.T) {
	a := []Seed{{N: 1}, {N: 2}, {N: 3}, {N: 4}}
	seedSelect(a, 4, 0)
	require.False(t, a[0].Filtered, "the single locally-rarest seed must be rescued")
	require.True(t, a[1].Filtered)
	require.True(t, a[2].Filtered)
	require.True(t, a[3].Filtered)
}

func TestCollectMatchesMergesAndSkipsAlreadyFiltered(t *testing.T) {
	y0 := uint64(1000)<<1 | 0
	y2 := uint64(3000)<<1 | 1

	mv := []Minimizer{
		{Y: y0},
		{Y: uint64(1) << 62}, // already filtered before seed collection; has no seed of its own
		{Y: y2},
	}
	seeds := []Seed{
		{Y: y0, N: 3, Filtered: false},
		{Y: y2, N: 5, Filtered: true},
	}
	cfg := DefaultConfig()
	cfg.MidOcc = 1 << 20

	kept, totalOcc := CollectMatches(mv, seeds, cfg)

	require.False(t, mv[0].filtered())
	require.True(t, mv[1].filtered())
	require.True(t, mv[2].filtered(), "a filtered seed must mark its minimizer filtered even though it isn't kept")

	require.Len(t, kept, 1)
	require.Equal(t, int64(3), totalOcc)
	require.Equal(t, uint64(uint32(y0)), kept[0].Y, "a kept seed's correlation key is trimmed back to position<<1|strand")
}
