package ivh

// sentinelBit marks a min_iv value as a sentinel rather than a genuine
// windowed minimum (spec.md section 3, "bit 31 of min_iv set => sentinel").
const sentinelBit = 1 << 31

// sentinelKind is the low 2 bits of a sentinel min_iv.
type sentinelKind uint32

const (
	sentinelSingleton      sentinelKind = 0
	sentinelQueryBoundary  sentinelKind = 1
	sentinelTargetBoundary sentinelKind = 2
)

// ivhInterval is the synthesis-phase view of one minimizer's interval
// record (spec.md section 3, "During synthesis (iv_t)"). It is scratch:
// nothing outside this package ever sees it, and it does not outlive the
// PatchSketch call (which takes it from the Arena) or ComputeHash call
// (which allocates it itself) that created it.
type ivhInterval struct {
	isRev bool
	iv    uint32 // gap to the next minimizer in the group, saturated into [0, MaxIVHSpan]
	minIV uint32 // windowed minimum gap; compute_hash overwrites this with the 24-bit pattern hash
	aux   uint32
}

// Entry is the post-patch IVH index record for one minimizer (spec.md
// section 3, "After patch (idx_t)"). An Index is []Entry, parallel to (and
// the same length as) the minimizer vector it was built from.
type Entry struct {
	FC      uint32 // forward wing size: # of preceding minimizers sharing this pattern window
	RC      uint32 // backward wing size: # of following minimizers sharing this pattern window
	IV      uint32 // gap to the next minimizer in the group, preserved from synthesis
	MiniIdx uint32 // back-pointer into the original minimizer vector
	IsFirst bool
	aux     uint32 // pileup scratch; always 0 outside of CompHitsPileup
}

// Index is the auxiliary per-minimizer IVH index built by PatchSketch.
type Index []Entry

// windowMin fills each v[i].minIV with a windowed minimum of the gaps
// v[j].iv within the current group — where group boundaries are wherever
// iv == 0 appears, so a single call may span several concatenated groups
// (spec.md section 4.3, ivh.c's cal_unit_intv). The window trails i by up
// to 2*wing entries, and whenever a smaller minimum enters it, that
// minimum is also written back to the earlier entries still inside the
// window. The result is therefore not, in general, the minimum over the
// symmetric range [i-wing, i+wing]: with wing 1 and gaps 1, 9, 9, 9, 0,
// entry 2 receives 1. A group's closing entry (iv == 0) receives the
// group's last running minimum, and a group of one gets sentinelBit.
// Ported directly from the original two-pointer sliding
// window; the control flow below is deliberately literal, not idiomatic,
// to keep it checkable line-for-line against ivh.c.
func windowMin(v []ivhInterval, wing uint32) {
	n := len(v)
	if n == 0 {
		return
	}
	w1 := 2 * wing
	i, j := 0, 0
	min := uint32(sentinelBit)
	for ; i < n-1; i++ {
		switch {
		case v[i].iv == 0:
			v[i].minIV = min
			min = sentinelBit
			j = i + 1
		case v[i].iv < min:
			min = v[i].iv
			if j+int(w1)+1 <= i {
				j++
			}
			skipFirst := 0
			if j+int(w1) == i {
				skipFirst = 1
			}
			for k := j + skipFirst; k < i+1; k++ {
				if min < v[k].minIV {
					v[k].minIV = min
				}
			}
		default:
			if j+int(w1)+1 <= i {
				if v[j].iv == min {
					min = sentinelBit
					for k := j + 1; k < i+1; k++ {
						if v[k].iv < min {
							min = v[k].iv
						}
					}
				}
				j++
			}
			v[i].minIV = min
		}
	}
	v[n-1].minIV = min
}
