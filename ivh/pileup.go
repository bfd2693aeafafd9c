package ivh

// Anchor is one chain anchor as the chaining stage (out of this package's
// scope) produces it. Its field layout differs from Minimizer's: X's top
// bit holds the query strand, Y's low 32 bits hold the raw (unshifted)
// query coordinate, and bits 32-39 of Y hold the k-mer span (ivh.c's
// get_for_qpos / get_mini_idx).
type Anchor struct {
	X uint64
	Y uint64
}

func (a Anchor) strand() bool { return a.X>>63 != 0 }
func (a Anchor) qSpan() int32 { return int32(uint8(a.Y >> 32)) }

// getForQpos converts one chain anchor's query coordinate onto the forward
// strand of the query sequence (ivh.c's get_for_qpos).
func getForQpos(qlen int32, a Anchor) int32 {
	x := int32(uint32(a.Y))
	if a.strand() {
		x = qlen - 1 - (x + 1 - a.qSpan())
	}
	return x
}

// getMiniIdx binary-searches mv, which must be sorted by query position,
// for the minimizer at forward-strand query coordinate x (ivh.c's
// get_mini_idx). Returns -1 if none matches exactly.
func getMiniIdx(qlen int32, a Anchor, mv []Minimizer) int {
	x := getForQpos(qlen, a)
	lo, hi := 0, len(mv)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		y := int32(uint32(mv[mid].Y)) >> 1
		switch {
		case y < x:
			lo = mid + 1
		case y > x:
			hi = mid - 1
		default:
			return mid
		}
	}
	return -1
}

// CompHitsPileup is the Hit Pileup stage (spec.md section 4.9, ivh.c's
// mm_ivh_comp_hits_pileup). a holds cnt chain anchors, in forward order
// unless rev is set (in which case they run from the tail backward); mv is
// the patched minimizer vector for this query and idx is the Index
// PatchSketch built from it.
//
// It marks the minimizer each anchor lands on, propagates every hit
// through its pattern-window wing (idx's FC/RC — spec.md section 3), folds
// a saturating hit count into mv whenever the chain is at least minCnt
// anchors long, and clears its own scratch bits before returning. Over the
// minimizers in the chain's span it reports how many were already
// frequency-filtered (nFlt), how many were not (nTot), and how many of
// those unfiltered ones matched (nMatch).
func CompHitsPileup(mv []Minimizer, idx Index, minCnt int, rev bool, qlen int32, a []Anchor, cnt int) (nFlt, nTot, nMatch int) {
	n := len(mv)
	first := a[0]
	if rev {
		first = a[cnt-1]
	}
	st := getMiniIdx(qlen, first, mv)

	i, j := st, 0
	for ; i < n && j < cnt; i++ {
		anchor := a[j]
		if rev {
			anchor = a[cnt-1-j]
		}
		q := getForQpos(qlen, anchor)
		if q == int32(uint32(mv[i].Y))>>1 {
			mv[i].setHit()
			j++
		}
	}
	en := i

	for k := range idx {
		idx[k].aux = b2u32(mv[idx[k].MiniIdx].hit())
	}
	for k := range idx {
		if idx[k].aux == 0 {
			continue
		}
		for w := k - int(idx[k].FC); w < k+int(idx[k].RC)+1; w++ {
			idx[w].aux |= 2
		}
	}
	for k := range idx {
		if idx[k].aux>>1 != 0 {
			mv[idx[k].MiniIdx].setHit()
		}
	}

	for i := st; i < en; i++ {
		if mv[i].filtered() {
			nFlt++
			continue
		}
		nTot++
		if !mv[i].hit() {
			continue
		}
		nMatch++
		if cnt >= minCnt {
			mv[i].incHitCount()
		}
	}

	for i := range mv {
		mv[i].clearHighBit()
	}
	for k := range idx {
		idx[k].aux = 0
	}
	return nFlt, nTot, nMatch
}

func b2u32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
