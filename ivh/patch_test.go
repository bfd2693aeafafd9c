package ivh

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grailbio/ivh/ivh/internal/golden"
)

func flattenWords(mv []Minimizer, idx Index) []uint64 {
	words := make([]uint64, 0, 2*len(mv)+len(idx))
	for _, m := range mv {
		words = append(words, m.X, m.Y)
	}
	for _, e := range idx {
		words = append(words, uint64(e.FC), uint64(e.RC), uint64(e.IV), uint64(e.MiniIdx))
	}
	return words
}

func TestPatchSketchEmptyAndSingleton(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Wing = 3

	arena := NewBumpArena()
	idx := PatchSketch(arena, nil, 0, cfg)
	require.Len(t, idx, 0)

	mv := []Minimizer{{X: 10, Y: 200}}
	idx = PatchSketch(arena, mv, 1000, cfg)
	require.Len(t, idx, 1)
	require.Equal(t, uint64(10), mv[0].X, "a lone minimizer has no group partner and must be left untouched")
}

func TestPatchSketchAllDistinctFingerprintsIsStructuralNoOp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Wing = 3

	mv := []Minimizer{
		{X: 1<<8 | 10, Y: 100<<1 | 0},
		{X: 2<<8 | 10, Y: 150<<1 | 0},
		{X: 3<<8 | 10, Y: 200<<1 | 0},
	}
	orig := append([]Minimizer(nil), mv...)

	idx := PatchSketch(NewBumpArena(), mv, 10000, cfg)
	require.Len(t, idx, 3)

	for i := range mv {
		require.Equal(t, orig[i].X, mv[i].X, "with no two minimizers sharing a fingerprint, every group is a singleton and patch_sketch must not alter its fingerprint")
		require.Equal(t, uint32(orig[i].Y), uint32(mv[i].Y), "position and strand must be unchanged")
		require.True(t, idx[i].IsFirst)
		require.Equal(t, uint32(i), idx[i].MiniIdx)
		require.Equal(t, uint32(i), mv[i].backIndex())
		require.Equal(t, uint32(0), idx[i].FC)
		require.Equal(t, uint32(0), idx[i].RC)
		require.Equal(t, uint32(0), idx[i].IV)
	}
}

func TestPatchSketchTwoMemberGroup(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Wing = 3
	cfg.MaxIVHSpan = 2000

	// Both minimizers share fingerprint 0 and span 10; positions 100 and
	// 150 give an inter-minimizer gap of (150-10+1)-100 = 41, hand-traced
	// through windowMin/computeHash to the hashes asserted below.
	mv := []Minimizer{
		{X: 0<<8 | 10, Y: 100<<1 | 0},
		{X: 0<<8 | 10, Y: 150<<1 | 0},
	}

	idx := PatchSketch(NewBumpArena(), mv, 10000, cfg)
	require.Len(t, idx, 2)

	require.Equal(t, uint64(5306128)<<32, mv[0].Fingerprint())
	require.Equal(t, uint64(11041672)<<32, mv[1].Fingerprint())
	require.Equal(t, uint8(10), mv[0].Span())
	require.Equal(t, uint8(10), mv[1].Span())
	require.Equal(t, int32(100), mv[0].Position())
	require.Equal(t, int32(150), mv[1].Position())
	require.Equal(t, uint32(0), mv[0].backIndex())
	require.Equal(t, uint32(1), mv[1].backIndex())

	require.Equal(t, Entry{FC: 0, RC: 1, IV: 41, MiniIdx: 0, IsFirst: true}, idx[0])
	require.Equal(t, Entry{FC: 1, RC: 0, IV: 0, MiniIdx: 1, IsFirst: false}, idx[1])
}

func TestPatchSketchGoldenDigestIsStableAndSensitive(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Wing = 3
	cfg.MaxIVHSpan = 2000

	build := func() ([]Minimizer, Index) {
		mv := []Minimizer{
			{X: 0<<8 | 10, Y: 100<<1 | 0},
			{X: 0<<8 | 10, Y: 150<<1 | 0},
			{X: 0<<8 | 10, Y: 220<<1 | 0},
		}
		idx := PatchSketch(NewBumpArena(), mv, 10000, cfg)
		return mv, idx
	}

	mvA, idxA := build()
	mvB, idxB := build()
	require.Equal(t, golden.DigestUint64s(flattenWords(mvA, idxA)), golden.DigestUint64s(flattenWords(mvB, idxB)),
		"patch_sketch is a pure function of its inputs, so a golden digest of its output must reproduce identically run to run")

	altCfg := cfg
	altCfg.Wing = 5
	mvC := []Minimizer{
		{X: 0<<8 | 10, Y: 100<<1 | 0},
		{X: 0<<8 | 10, Y: 150<<1 | 0},
		{X: 0<<8 | 10, Y: 220<<1 | 0},
	}
	idxC := PatchSketch(NewBumpArena(), mvC, 10000, altCfg)
	require.NotEqual(t, golden.DigestUint64s(flattenWords(mvA, idxA)), golden.DigestUint64s(flattenWords(mvC, idxC)),
		"a different Wing changes the patched output, and the golden digest must catch that")
}
