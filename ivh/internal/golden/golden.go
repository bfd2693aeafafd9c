// Package golden provides a highwayhash-based digest helper for tests that
// want to assert a large patched minimizer vector or Index is byte-for-byte
// unchanged without pasting the whole thing into the test file. It is test
// tooling only (spec.md section 6.4) and is never part of the bit-exact
// hash contract itself.
package golden

import (
	"encoding/binary"

	"github.com/minio/highwayhash"
)

// key is fixed and arbitrary: this digest is a test oracle, not a MAC, so
// there is no secret to protect.
var key = [32]byte{
	0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
	0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10,
	0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18,
	0x19, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f, 0x20,
}

// DigestUint64s returns a hex-encoded highwayhash digest of a slice of
// uint64s (e.g. a minimizer vector flattened to its raw X/Y words), for use
// as a compact golden value in a test assertion.
func DigestUint64s(vs []uint64) string {
	h, err := highwayhash.New64(key[:])
	if err != nil {
		panic(err) // key is a fixed 32 bytes; New64 only fails on wrong key length
	}
	var buf [8]byte
	for _, v := range vs {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	sum := h.Sum(nil)
	const hextable = "0123456789abcdef"
	out := make([]byte, len(sum)*2)
	for i, b := range sum {
		out[i*2] = hextable[b>>4]
		out[i*2+1] = hextable[b&0xf]
	}
	return string(out)
}
