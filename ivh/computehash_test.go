package ivh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeHashTooFewRecordsOrZeroWing(t *testing.T) {
	out := make([]uint32, 1)
	require.Equal(t, 1, ComputeHash(nil, 3, 2000, 9, false, out))
	require.Equal(t, 1, ComputeHash([]PositionRecord{{Position: 1}}, 3, 2000, 9, false, out))

	recs := []PositionRecord{{Position: 100}, {Position: 150}}
	out = make([]uint32, 2)
	require.Equal(t, 1, ComputeHash(recs, 0, 2000, 9, false, out))
}

func TestComputeHashMatchesPatchSketchHashDerivation(t *testing.T) {
	// Same gap (41) and wing (3) as the hand-traced PatchSketch two-member
	// group test: ComputeHash shares windowMin/computeHash with PatchSketch,
	// so an identical gap must produce identical hashes.
	recs := []PositionRecord{
		{Position: 100, SeqLen: 10000},
		{Position: 150, SeqLen: 10000},
	}
	out := make([]uint32, 2)
	nHash := ComputeHash(recs, 3, 2000, 9, false, out)
	require.Equal(t, uint32(5306128), out[0])
	require.Equal(t, uint32(11041672), out[1])
	require.Equal(t, 2, nHash)
}
