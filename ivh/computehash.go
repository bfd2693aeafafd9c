package ivh

import "sort"

// PositionRecord is one minimizer occurrence as the target-side index
// builder sees it: a strand-tagged position on a named sequence, without
// the fingerprint/span fields a query-side Minimizer carries (spec.md
// section 6, "compute_hash"). SeqLen is that sequence's total length, used
// by skipBnd exactly as Minimizer's sibling path uses the query length.
type PositionRecord struct {
	Position int32
	Strand   bool
	SeqLen   int32
}

// ComputeHash is the target-side twin of the pattern-hash half of
// PatchSketch (spec.md section 6, "compute_hash(idx, n, y, wing, max_span,
// k, out) -> n_distinct_hashes", ivh.c's mm_ivh_compute_hash). Unlike
// PatchSketch it has no per-minimizer span: gaps are measured against a
// fixed k-mer size k, matching how the original index builder derives
// intervals from a sequence's minimizer positions alone. recs must already
// be sorted by position; out receives each record's 24-bit pattern hash,
// and the return value is the number of distinct hash values produced.
//
// n < 2 or wing == 0 is a no-op, matching PatchSketch's own early return:
// out is left untouched and the return value is 1.
func ComputeHash(recs []PositionRecord, wing, maxIVHSpan uint32, k uint32, skipBnd bool, out []uint32) int {
	n := len(recs)
	if n < 2 || wing == 0 {
		return 1
	}

	v := make([]ivhInterval, n)
	for i := 0; i < n-1; i++ {
		b := int64(recs[i].Position)
		e := int64(recs[i+1].Position) - int64(k)
		dist := e - b
		if dist < 0 {
			dist = 0
		}
		if dist > int64(maxIVHSpan) {
			dist = int64(maxIVHSpan)
		}
		v[i] = ivhInterval{isRev: recs[i].Strand, iv: uint32(dist), minIV: sentinelBit}
	}
	v[n-1] = ivhInterval{isRev: recs[n-1].Strand, iv: 0, minIV: sentinelBit}
	windowMin(v, wing)

	if skipBnd {
		for i := range recs {
			e := recs[i].Position
			mlen := int32(marginN * v[i].minIV)
			if mlen > int32(maxIVHSpan)/2 {
				mlen = int32(maxIVHSpan) / 2
			}
			if e < mlen || e+mlen > recs[i].SeqLen {
				v[i].minIV = sentinelBit | uint32(sentinelTargetBoundary)
			}
		}
	}
	computeHash(v, wing)

	for i := range v {
		out[i] = v[i].minIV
	}

	ordered := make([]uint32, n)
	copy(ordered, out)
	sort.Slice(ordered, func(a, b int) bool { return ordered[a] < ordered[b] })
	nHash := 0
	for i := 0; i < n; i++ {
		if i == n-1 || ordered[i] != ordered[i+1] {
			nHash++
		}
	}
	return nHash
}
