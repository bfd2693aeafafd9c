package ivh

import "sort"

// groupMember pairs a minimizer with its index in the caller's original
// (pre-sort) vector, which survives every reordering PatchSketch performs
// and becomes Entry.MiniIdx once the group it lands in is processed.
type groupMember struct {
	m    Minimizer
	orig uint32
}

func beginPos(m Minimizer) int32 { return m.Position() - int32(m.Span()) + 1 }
func endPos(m Minimizer) int32   { return m.Position() }

// PatchSketch implements the Sketch Patching & Index Build and
// Local-Frequency Filter stages (spec.md sections 4.5 and 4.6, ivh.c's
// mm_ivh_patch_sketch). It sorts mv into fingerprint groups, derives and
// folds in each minimizer's pattern signature, builds the parallel Index,
// marks locally over-represented minimizers, and leaves mv sorted back
// into its original (by-position) order with patched fingerprints and
// index back-pointers in Y's high bits.
//
// n < 2 or cfg.Wing == 0 is a no-op per spec.md section 7 ("Empty
// input"): mv is left untouched and a blank (zeroed) Index of the same
// length is returned.
func PatchSketch(arena Arena, mv []Minimizer, qlen int, cfg Config) Index {
	n := len(mv)
	idx := Index(arena.Entries(n))
	if n < 2 || cfg.Wing == 0 {
		for i := range idx {
			idx[i] = Entry{}
		}
		return idx
	}

	work := make([]groupMember, n)
	for i, m := range mv {
		work[i] = groupMember{m: m, orig: uint32(i)}
	}

	// Sort by fingerprint (spec.md section 4.1). The original transposes
	// bits so a radix sort keyed on the low word ignores the span byte;
	// sorting by Fingerprint() directly (which already excludes the span
	// byte, see record.go) is the comparator-based alternative the design
	// notes explicitly sanction (section 9), since nothing downstream
	// observes anything but the resulting grouping and intra-group order.
	stableSortByFingerprint(work)
	processGroups(arena, work, idx, qlen, cfg)

	// Patching XORs the pattern signature into each fingerprint (within
	// the 56-bit region the sort above keyed on), which can change group
	// membership; re-sort and re-group for the local-frequency filter so
	// it operates on the patched groups, exactly as ivh.c does.
	stableSortByFingerprint(work)
	applyGroupFrequencyFilter(work, cfg.RepFltSpan, cfg.MaxRep)

	// Sort back into the caller's original order and copy out.
	sort.SliceStable(work, func(a, b int) bool {
		return uint32(work[a].m.Y) < uint32(work[b].m.Y)
	})
	for i := range mv {
		mv[i] = work[i].m
	}
	return idx
}

func stableSortByFingerprint(work []groupMember) {
	sort.SliceStable(work, func(a, b int) bool {
		return work[a].m.Fingerprint() < work[b].m.Fingerprint()
	})
}

// processGroups walks work in fingerprint-group order, building the IVH
// pattern and Index entries for each group (spec.md sections 4.2-4.5).
func processGroups(arena Arena, work []groupMember, idx Index, qlen int, cfg Config) {
	n := len(work)
	last := 0
	for i := 0; i < n; i++ {
		if i != n-1 && work[i].m.Fingerprint() == work[i+1].m.Fingerprint() {
			continue
		}
		group := work[last : i+1]
		groupIdx := idx[last : i+1]
		if len(group) >= 2 {
			sort.SliceStable(group, func(a, b int) bool {
				return group[a].m.Position() < group[b].m.Position()
			})
			v := arena.Intervals(len(group))
			extractGroupIntervals(group, v, cfg.MaxIVHSpan)
			windowMin(v, cfg.Wing)
			if cfg.SkipBnd {
				applySkipBnd(group, v, qlen, cfg.MaxIVHSpan)
			}
			computeHash(v, cfg.Wing)
			updateHashAndIdx(uint32(last), group, v, groupIdx, cfg.Wing)
		} else {
			blankIdx(uint32(last), group, groupIdx)
		}
		last = i + 1
	}
}

func extractGroupIntervals(group []groupMember, v []ivhInterval, maxSpan uint32) {
	n := len(group)
	for j := 0; j < n-1; j++ {
		b := int64(endPos(group[j].m))
		e := int64(beginPos(group[j+1].m))
		dist := e - b
		if dist < 0 {
			dist = 0
		}
		if dist > int64(maxSpan) {
			dist = int64(maxSpan)
		}
		v[j] = ivhInterval{isRev: group[j].m.Strand(), iv: uint32(dist), minIV: sentinelBit}
	}
	v[n-1] = ivhInterval{isRev: group[n-1].m.Strand(), iv: 0, minIV: sentinelBit}
}

// applySkipBnd suppresses hash augmentation for minimizers too close to the
// query sequence's boundaries, so the core never manufactures false hits
// there (spec.md section 4.5, ivh.c's skip_bnd block). Applies only to the
// query side, as documented.
func applySkipBnd(group []groupMember, v []ivhInterval, qlen int, maxSpan uint32) {
	for j := range group {
		b := beginPos(group[j].m)
		e := endPos(group[j].m)
		mlen := int32(marginN * v[j].minIV)
		if mlen > int32(maxSpan)/2 {
			mlen = int32(maxSpan) / 2
		}
		if b < mlen || int(e)+int(mlen) > qlen {
			v[j].minIV = sentinelBit | uint32(sentinelQueryBoundary)
		}
	}
}

// updateHashAndIdx folds each minimizer's 24-bit pattern into its
// fingerprint and builds this group's Index entries, including the wing
// counts (FC/RC) that later let pileup propagate a hit to every minimizer
// sharing the hit's pattern window (spec.md section 4.5, ivh.c's
// update_hash_and_idx).
func updateHashAndIdx(base uint32, group []groupMember, v []ivhInterval, idx []Entry, wing uint32) {
	n := len(group)
	s, e := 0, 0
	for i := 0; i < n; i++ {
		isBrk := v[i].iv == 0
		for i+int(wing) > e && e < n && v[e].iv != 0 {
			e++
		}
		if s+int(wing) < i {
			s++
		}

		origIdx := group[i].orig
		group[i].m.PatchFingerprint(v[i].minIV)
		group[i].m.setBackIndex(base + uint32(i))

		idx[i] = Entry{
			FC:      uint32(i - s),
			RC:      uint32(e - i),
			IV:      v[i].iv,
			MiniIdx: origIdx,
			IsFirst: i == 0,
		}
		if isBrk {
			s, e = i+1, i+1
		}
	}
}

// blankIdx handles groups of size 1, the "blank path" of spec.md section
// 4.5: no pattern is derived, and FC/RC/IV all stay zero.
func blankIdx(base uint32, group []groupMember, idx []Entry) {
	for i := range group {
		origIdx := group[i].orig
		group[i].m.setBackIndex(base + uint32(i))
		idx[i] = Entry{MiniIdx: origIdx, IsFirst: i == 0}
	}
}

// applyGroupFrequencyFilter is the pipeline's Local-Frequency Filter stage
// (spec.md section 2, step 6 / section 4.6) as embedded directly in
// ivh.c's mm_ivh_patch_sketch: within each (now pattern-patched)
// fingerprint group, mark bit 62 of Y on minimizers whose positional
// density exceeds MaxRep within a RepFltSpan-wide window. This differs
// from the standalone FltRep (freqfilter.go), which operates globally
// (not per group), marks bit 63, and compacts rather than flags. A
// repFltSpan of 0 disables it.
func applyGroupFrequencyFilter(work []groupMember, repFltSpan, maxRep uint32) {
	if repFltSpan == 0 {
		return
	}
	n := len(work)
	last := 0
	for i := 0; i < n; i++ {
		if i != n-1 && work[i].m.Fingerprint() == work[i+1].m.Fingerprint() {
			continue
		}
		group := work[last : i+1]
		if len(group) >= 2 {
			sort.SliceStable(group, func(a, b int) bool {
				return group[a].m.Position() < group[b].m.Position()
			})
			s, e := 0, 0
			for p := 0; p < len(group); p++ {
				for s < p && beginPos(group[s].m)+int32(repFltSpan)/2 <= beginPos(group[p].m) {
					s++
				}
				for e < len(group) && endPos(group[p].m)+int32(repFltSpan)/2 > endPos(group[e].m) {
					e++
				}
				if uint32(e-s) >= maxRep {
					group[p].m.setFiltered()
				}
			}
		}
		last = i + 1
	}
}
