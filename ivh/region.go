package ivh

import (
	"math"

	"github.com/biogo/store/llrb"
	"github.com/grailbio/base/log"
)

// Region is the subset of a chain's alignment-region record these
// post-filters need: its query/target span, chain length, score, and the
// diagnostic fields EstErr fills in. Building the region itself (chaining,
// DP extension) is out of this package's scope; HasCigar mirrors whether
// the original region carries an extension payload (mm_reg1_t.p != NULL),
// which decides whether Score or Score0 is authoritative.
type Region struct {
	RID              int
	QS, QE           int
	RS, RE           int
	Cnt              int // chain length (number of anchors)
	As               int // offset of this chain's first anchor in the shared anchor array
	Rev              bool
	Score, Score0    int
	HasCigar         bool
	Div              float32
	FracFlt, FracHit float64
	Aux              int
}

// DelFullIntl drops regions that are fully internal to both the query and
// the target sequence (not reaching within maxOvh of either end on either
// side), keeping long half-internal matches (spec.md section 4.10, ivh.c's
// mm_ra_del_full_intl). refLens maps a target RID to its sequence length.
func DelFullIntl(regs []Region, refLens []int, maxOvh, minIntl, qlen int) []Region {
	j := 0
	for i := range regs {
		r := regs[i]
		rlen := refLens[r.RID]
		s := r.QS < maxOvh || r.RS < maxOvh
		e := r.QE+maxOvh > qlen || r.RE+maxOvh > rlen
		isFull := s && e
		isHalf := s || e
		if isFull || (isHalf && r.QE-r.QS >= minIntl && r.RE-r.RS >= minIntl) {
			regs[j] = regs[i]
			j++
		}
	}
	return regs[:j]
}

// EstErr estimates each region's sequence divergence from how densely its
// chain's anchors hit non-frequency-filtered minimizers (spec.md section
// 4.10, ivh.c's mm_ra_est_err). It reuses CompHitsPileup per region, so
// mv/idx must be the same pair PatchSketch produced for this query. verbose
// at 2 or above logs (rather than panics on) the otherwise-impossible case
// of a region whose first anchor doesn't land on any minimizer — the
// original's own comment calls this "a logic inconsistency" and asks to be
// reported, so it's diagnostic, not a normal error path.
func EstErr(regs []Region, minCnt int, qlen int32, a []Anchor, mv []Minimizer, idx Index, refLens []int, verbose int) {
	n := len(mv)
	if n == 0 {
		return
	}
	var sumK uint64
	for i := range mv {
		sumK += mv[i].X & 0xff
		mv[i].Y = uint64(uint32(mv[i].Y))
	}
	avgK := float32(sumK) / float32(n)

	for ri := range regs {
		r := &regs[ri]
		r.Div = -1
		if r.Cnt == 0 {
			continue
		}
		first := a[r.As]
		if r.Rev {
			first = a[r.As+r.Cnt-1]
		}
		st := getMiniIdx(qlen, first, mv)
		r.Aux = st
		if st < 0 {
			if verbose >= 2 {
				log.Error.Printf("ivh: logic inconsistency estimating divergence for region rid=%d qs=%d; this should never happen", r.RID, r.QS)
			}
			continue
		}
		lRef := refLens[r.RID]
		nFlt, nTot, nMatch := CompHitsPileup(mv, idx, minCnt, r.Rev, qlen, a[r.As:r.As+r.Cnt], r.Cnt)
		r.FracFlt = float64(nFlt) / float64(nFlt+nTot)
		r.FracHit = float64(nMatch) / float64(nFlt+nTot)

		if float32(r.QS) > avgK && float32(r.RS) > avgK {
			nTot++
		}
		if float32(int(qlen)-r.QS) > avgK && float32(lRef-r.RE) > avgK {
			nTot++
		}
		if nMatch >= nTot {
			r.Div = 0
		} else {
			r.Div = float32(1.0 - math.Pow(float64(nMatch)/float64(nTot), 1.0/float64(avgK)))
		}
	}
}

// regionScoreKey orders regions for SelectSubIndv's per-reference grouping:
// ascending by target RID, then ascending by normalized score within a RID,
// then by original index to keep the ordering stable.
type regionScoreKey struct {
	rid, score, orig int
}

func (k regionScoreKey) Compare(b llrb.Comparable) int {
	o := b.(regionScoreKey)
	switch {
	case k.rid != o.rid:
		if k.rid < o.rid {
			return -1
		}
		return 1
	case k.score != o.score:
		if k.score < o.score {
			return -1
		}
		return 1
	case k.orig != o.orig:
		if k.orig < o.orig {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// SelectSubIndv subsamples regions per target reference: within each
// reference's group of regions (grouped and ordered via an llrb tree on
// regionScoreKey), it considers only the BestN highest-normalized-score
// regions and, of those, keeps the ones scoring at least PriRatio times
// the group's best score; every other region in the group is dropped. A
// BestN of 0 keeps only the best region (spec.md section 4.10, ivh.c's
// mm_ra_select_sub_indv). Score
// normalization divides by the overhang-extended overlap span so regions
// of very different lengths are compared fairly.
func SelectSubIndv(regs []Region, refLens []int, maxOvh int, priRatio float32, bestN int, qlen int) []Region {
	n := len(regs)
	if n == 0 {
		return regs
	}
	if bestN > 0 {
		bestN--
	}

	tree := &llrb.Tree{}
	for i, r := range regs {
		rlen := refLens[r.RID]
		qs, qe := r.QS, r.QE
		if qs < maxOvh {
			qs = 0
		} else {
			qs -= maxOvh
		}
		if qe+maxOvh > qlen {
			qe = qlen
		} else {
			qe += maxOvh
		}
		rs, re := r.RS, r.RE
		if rs < maxOvh {
			rs = 0
		} else {
			rs -= maxOvh
		}
		if re+maxOvh > rlen {
			re = rlen
		} else {
			re += maxOvh
		}
		l := qe - qs
		if re-rs < l {
			l = re - rs
		}
		sc := r.Score
		if !r.HasCigar {
			sc = r.Score0
		}
		score := int(float32(sc)*10000.0/float32(l) + 0.4999)
		tree.Insert(regionScoreKey{rid: r.RID, score: score, orig: i})
	}

	ordered := make([]regionScoreKey, 0, n)
	tree.Do(func(c llrb.Comparable) bool {
		ordered = append(ordered, c.(regionScoreKey))
		return false
	})

	keep := make([]bool, n)
	for i := range keep {
		keep[i] = true
	}

	j := 0
	for i := 0; i < n; i++ {
		if i != n-1 && ordered[i].rid == ordered[i+1].rid {
			continue
		}
		s := j
		if i-bestN > s {
			s = i - bestN
		}
		k := i
		for ; k >= s; k-- {
			if float32(ordered[k].score) < priRatio*float32(ordered[i].score) {
				break
			}
		}
		for ; k >= j; k-- {
			keep[ordered[k].orig] = false
		}
		j = i + 1
	}

	out := regs[:0]
	for i, r := range regs {
		if keep[i] {
			out = append(out, r)
		}
	}
	return out
}
