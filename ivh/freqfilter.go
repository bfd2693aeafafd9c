package ivh

// FltRep is the standalone local-frequency filter named in spec.md section
// 6 ("flt_rep(n, y, span, max_rep) -> n_remaining"), ported from ivh.c's
// mm_ivh_flt_rep. Unlike the per-group filter embedded in PatchSketch
// (patch.go's applyGroupFrequencyFilter, which flags bit 62 within
// fingerprint groups and never removes anything), FltRep operates globally
// over mv — which must already be sorted by position — temporarily marks
// bit 63 on over-dense minimizers, and compacts them out in place.
//
// FltRep returns the number of minimizers remaining; mv[:n] holds them,
// still in position order. Bit 63 never survives past this call: on the
// minimizers that are kept it is always 0, and the hit flag's later use
// during pileup starts from a clean slate.
func FltRep(mv []Minimizer, span uint32, maxRep uint32) int {
	n := len(mv)
	if n < 2 || span == 0 {
		return n
	}

	half := int32(span) / 2
	s, e := 0, 0
	for p := 0; p < n; p++ {
		for s < p && beginPos(mv[s])+half <= beginPos(mv[p]) {
			s++
		}
		for e < n && endPos(mv[p])+half > endPos(mv[e]) {
			e++
		}
		if uint32(e-s) >= maxRep {
			mv[p].setHit()
		}
	}

	out := 0
	for i := 0; i < n; i++ {
		if !mv[i].hit() {
			mv[out] = mv[i]
			out++
		}
	}
	return out
}
