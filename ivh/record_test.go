package ivh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMinimizerAccessors(t *testing.T) {
	var m Minimizer
	m.X = 0x1234<<8 | 0x2a
	m.Y = 100<<1 | 1

	require.Equal(t, uint8(0x2a), m.Span())
	require.Equal(t, uint64(0x1234), m.Fingerprint())
	require.Equal(t, int32(100), m.Position())
	require.True(t, m.Strand())
}

func TestPatchFingerprintIsSelfInverse(t *testing.T) {
	var m Minimizer
	m.X = 0xabcdef<<8 | 0x15
	orig := m.X

	m.PatchFingerprint(0x00c0ffee)
	require.NotEqual(t, orig, m.X)

	m.PatchFingerprint(0x00c0ffee)
	require.Equal(t, orig, m.X, "XOR-patching the same signature twice must restore the original fingerprint")
}

func TestHitCountSaturates(t *testing.T) {
	var m Minimizer
	m.Y = uint64(hitCountMax) << hitCountShift
	require.Equal(t, uint32(hitCountMax), m.hitCount())
	m.incHitCount()
	require.Equal(t, uint32(hitCountMax), m.hitCount(), "hit counter must saturate, not wrap")
}

func TestHitFilteredFlagsAreIndependent(t *testing.T) {
	var m Minimizer
	m.setHit()
	require.True(t, m.hit())
	require.False(t, m.filtered())

	m.setFiltered()
	require.True(t, m.hit())
	require.True(t, m.filtered())
}

func TestBackIndexRoundTrip(t *testing.T) {
	var m Minimizer
	m.Y = 42<<1 | 1
	m.setBackIndex(7)
	require.Equal(t, uint32(7), m.backIndex())
	require.Equal(t, int32(42), m.Position())
	require.True(t, m.Strand())
}

func TestClearHighBit(t *testing.T) {
	var m Minimizer
	m.Y = 1<<63 | 1234
	m.clearHighBit()
	require.Equal(t, uint64(1234), m.Y)
}
