package ivh

// Seed is one fingerprint's occurrence record as a caller's target-index
// lookup reports it (ivh.c's mm_seed_t; the lookup itself, mm_seed_collect_all,
// is out of this package's scope per spec.md's non-goals — only the
// filter/merge glue below is IVH's job). Y must carry exactly the same
// 64-bit value as the Minimizer it was collected for, including whatever
// PatchSketch left in its high bits, so CollectMatches can correlate the
// two by equality.
type Seed struct {
	Y        uint64
	N        int  // occurrences of this k-mer in the target index
	Filtered bool // seed_select's "flt" flag
}

// weight ranks a seed inversely to its occurrence count: rarer seeds score
// higher (ivh.c's weight()).
func weight(s Seed) uint64 {
	return ((uint64(1) << 63) / uint64(s.N)) >> 34
}

// seedSelect filters seeds occurring more than midOcc times, then rescues
// the single locally-rarest seed in every tieRescueW-wide sliding window
// unless the window is too tied to pick a clear winner (spec.md section
// 4.7, ivh.c's seed_select).
func seedSelect(a []Seed, tieRescueW uint32, midOcc uint32) {
	n := len(a)
	if n == 0 {
		return
	}
	for i := range a {
		if uint32(a[i].N) > midOcc {
			a[i].Filtered = true
		}
	}

	w := int(tieRescueW)
	if w == 0 || n < w {
		return
	}
	for i := 0; i <= n-w; i++ {
		maxWt := uint64(0)
		maxI := -1
		tie := 0
		for j := i; j < i+w; j++ {
			if wt := weight(a[j]); wt > maxWt {
				maxWt, maxI, tie = wt, j, 0
			} else if wt == maxWt {
				tie++
			}
		}
		if tie < w/2 {
			a[maxI].Filtered = false
		}
	}
}

// CollectMatches runs seed selection over seeds and merges its filtering
// decisions back into mv's bit 62 (spec.md section 4.8, ivh.c's
// mm_ivh_collect_matches). seeds must be exactly the seeds a caller's own
// target-index lookup collected for mv's not-yet-filtered minimizers
// (those with bit 62 clear), in the same relative order those minimizers
// appear in mv.
//
// It returns the seeds surviving filtering, with their correlation key
// trimmed back down to (position<<1|strand) now that it has served its
// purpose, plus the total occurrence count across them.
func CollectMatches(mv []Minimizer, seeds []Seed, cfg Config) (kept []Seed, totalOcc int64) {
	seedSelect(seeds, cfg.TieRescueW, cfg.MidOcc)

	kept = make([]Seed, 0, len(seeds))
	j := 0
	for i := range mv {
		if mv[i].filtered() {
			continue
		}
		if j >= len(seeds) || seeds[j].Y != mv[i].Y {
			continue
		}
		if seeds[j].Filtered {
			mv[i].setFiltered()
		} else {
			s := seeds[j]
			totalOcc += int64(s.N)
			s.Y = uint64(uint32(s.Y))
			kept = append(kept, s)
		}
		j++
	}
	return kept, totalOcc
}
