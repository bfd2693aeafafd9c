package ivh

// hashTable and boundaryTable are process constants: a 32-entry XOR table
// over quantized gap buckets, and a 3-entry table for sentinel
// (singleton/query-boundary/target-boundary) positions. They must be
// reproduced bit-for-bit for hash compatibility with existing indices
// (spec.md section 6), so they are transcribed verbatim from ivh.c and
// must never be touched by a formatter that reorders or "cleans up"
// numeric literals.
var hashTable = [32]uint32{
	0x58ea1ee2, // 1
	0x41fc3e80, // 1.25
	0x3462e86b, // 1.5
	0x4cbf6848, // 1.75
	0x7bf817f0, // 2
	0x19b6c2ea, // 2.25
	0x69d22ca3, // 2.5
	0x5c49da04, // 2.75
	0x0ad06df1, // 3
	0x2161a558, // 3.25
	0x297f67ac, // 3.5
	0x32c2ea11, // 3.75
	0x2d5b49ac, // 4
	0x155f803c, // 4.25
	0x1584e4b5, // 4.5
	0x7431ccd0, // 4.75
	0x23faf39d, // 5
	0x1f1f17ac, // 5.25
	0x57064bd2, // 5.5
	0x0f00cf1c, // 5.75
	0x43390b8b, // 6
	0x36cee8a8, // 6.25
	0x173a7857, // 6.5
	0x1862821e, // 6.75
	0x4c669812, // 7
	0x7643748c, // 7.25
	0x4d550e1c, // 7.5
	0x7a1d81ba, // 7.75
	0x675497e1, // 8
	0x16ede062, // 8.25
	0x1b6d09a3, // 8.5
	0x2fe1504d, // 8.75
}

var boundaryTable = [3]uint32{
	0,          // singleton
	0xfd2adec3, // query boundary
	0xba102f14, // target boundary
}

// marginN is the "MARGIN_N" multiplier applied to a minimizer's windowed
// minimum gap to decide how close to a sequence end counts as "too close"
// for skip_bnd (ivh.c).
const marginN = 3

// computeHash reduces each minimizer's windowed-minimum-tagged interval
// record in v to a 24-bit pattern hash, written back into v[i].minIV
// (spec.md section 4.4, ivh.c's compute_hash). v must already have gone
// through interval extraction (extractGroupIntervals, or ComputeHash's own
// loop) and windowMin. wing is the window radius.
func computeHash(v []ivhInterval, wing uint32) {
	n := len(v)
	w2 := int(wing)
	b, e := 0, 0
	var q [32]uint64
	for i := 0; i < n; i++ {
		isRev := v[i].isRev
		d := uint64(v[i].minIV) >> 2
		rc := d >> 1
		var h uint64
		s := 0

		for e < i+w2 && e < n && v[e].iv != 0 {
			e++
		}
		if b+w2 < i {
			b++
		}
		if !isRev {
			s = b + w2 - i
		} else {
			s = i + w2 - e
		}

		if v[i].minIV>>31 == 0 {
			for j := 0; j < e-b; j++ {
				if d > 0 {
					// Intentional uint64 wraparound when the quotient is
					// < 4, exactly as in ivh.c's unsigned arithmetic; the
					// wrapped (huge) value is clamped to 31 just below,
					// same as the original.
					q[j] = (uint64(v[b+j].iv)+rc)/d - 4
				} else {
					q[j] = 0
				}
			}
			for j := 0; j < e-b; j, s = j+1, s+1 {
				idx := j
				if isRev {
					idx = e - b - j - 1
				}
				qv := q[idx]
				if qv > 31 {
					qv = 31
				}
				// Reproduce the original's C shift semantics verbatim: a
				// uint64_t shifted by an int shift count that can be
				// negative or >=64 near sequence boundaries wraps modulo
				// 64 on the hardware this was built for (spec.md section
				// 9, "Open question"). Go does not truncate shift counts
				// the way C's implementation-defined/UB behavior does
				// here, so the wrap is reproduced explicitly.
				h ^= uint64(hashTable[qv]) << (uint(s) & 63)
			}
		} else {
			h = uint64(boundaryTable[v[i].minIV&3])
		}
		v[i].minIV = uint32(h & 0xffffff)

		if v[i].iv == 0 {
			b, e = i+1, i+1
		}
	}
}
