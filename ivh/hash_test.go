package ivh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeHashSentinelSingleton(t *testing.T) {
	v := []ivhInterval{{iv: 0, minIV: sentinelBit | uint32(sentinelSingleton)}}
	computeHash(v, 4)
	require.Equal(t, uint32(0), v[0].minIV)
}

func TestComputeHashSentinelQueryBoundary(t *testing.T) {
	v := []ivhInterval{{iv: 0, minIV: sentinelBit | uint32(sentinelQueryBoundary)}}
	computeHash(v, 4)
	require.Equal(t, boundaryTable[sentinelQueryBoundary]&0xffffff, v[0].minIV)
}

func TestComputeHashSentinelTargetBoundary(t *testing.T) {
	v := []ivhInterval{{iv: 0, minIV: sentinelBit | uint32(sentinelTargetBoundary)}}
	computeHash(v, 4)
	require.Equal(t, boundaryTable[sentinelTargetBoundary]&0xffffff, v[0].minIV)
}

func TestComputeHashIsolatedGroupOfOneIsZero(t *testing.T) {
	// A single-entry group has no neighbors to build a pattern from, so the
	// product loop over [b, e) is empty and the hash degenerates to zero.
	v := []ivhInterval{{iv: 0, minIV: 100}}
	computeHash(v, 4)
	require.Equal(t, uint32(0), v[0].minIV)
}

func TestComputeHashAlwaysFits24Bits(t *testing.T) {
	v := []ivhInterval{
		{iv: 12, minIV: 8},
		{iv: 40, minIV: 3},
		{iv: 0, minIV: 19},
	}
	computeHash(v, 2)
	for i, e := range v {
		require.LessOrEqualf(t, e.minIV, uint32(0xffffff), "entry %d hash exceeds 24 bits", i)
	}
}
