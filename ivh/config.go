package ivh

import "github.com/pkg/errors"

// Config holds the enumerated options that parameterize every operation in
// this package (spec.md section 6). The patched fingerprint is a pure
// function of a sketch's contents plus (Wing, MaxIVHSpan) only; the
// remaining fields parameterize filtering and pileup, not the hash itself.
type Config struct {
	// Wing is the window radius used to derive each minimizer's pattern;
	// 0 disables IVH entirely (patch_sketch becomes a no-op). Valid range
	// is [0, 16].
	Wing uint32
	// MaxIVHSpan clamps inter-minimizer gap distances, in bases. A gap
	// exceeding this saturates at MaxIVHSpan.
	MaxIVHSpan uint32
	// RepFltSpan is the width of the local-frequency filter's window, in
	// bases. 0 disables the filter.
	RepFltSpan uint32
	// MaxRep is the local minimizer-density threshold the frequency
	// filter masks at.
	MaxRep uint32
	// MidOcc is the per-k-mer occurrence threshold seed selection filters
	// above, subject to tie-rescue.
	MidOcc uint32
	// TieRescueW is the sliding-window width used to rescue the locally
	// rarest seed.
	TieRescueW uint32
	// MaxOcc is an occurrence cap for a caller's own target-index lookup;
	// no function in this package reads it, CollectMatches included.
	MaxOcc int
	// MinCnt is the minimum chain length a pileup must reach before it
	// increments the 30-bit saturating hit counter.
	MinCnt int
	// MaxOvh is the overhang tolerance used by the internal-overlap
	// region filter.
	MaxOvh int
	// MinIntl is the minimum half-dovetail extent the internal-overlap
	// region filter requires in both dimensions.
	MinIntl int
	// PriRatio is the minimum fraction of the top score a region must
	// reach to survive per-reference subsampling.
	PriRatio float32
	// BestN bounds how many regions per reference subsampling keeps
	// outright, before PriRatio pruning.
	BestN int
	// SkipBnd suppresses hash augmentation for minimizers too close to
	// the query's sequence boundaries, to avoid false hits there.
	SkipBnd bool
}

// DefaultConfig returns the zero-value-safe defaults used when a caller
// doesn't need to tune anything; Wing defaults to 0 (IVH disabled) so that
// an uninitialized Config is always safe to pass to patch_sketch.
func DefaultConfig() Config {
	return Config{
		Wing:       0,
		MaxIVHSpan: 2000,
		RepFltSpan: 0,
		MaxRep:     0,
		MidOcc:     1 << 30,
		TieRescueW: 0,
		MaxOcc:     1 << 30,
		MinCnt:     4,
		MaxOvh:     1000,
		MinIntl:    0,
		PriRatio:   0,
		BestN:      0,
	}
}

// Validate checks the enumerated ranges spec.md section 6 calls out
// explicitly; everything else is left to the caller's judgment since the
// original places no documented bound on it.
func (c Config) Validate() error {
	if c.Wing > 16 {
		return errors.Errorf("ivh: Wing must be in [0, 16], got %d", c.Wing)
	}
	if c.PriRatio < 0 || c.PriRatio > 1 {
		return errors.Errorf("ivh: PriRatio must be in [0, 1], got %f", c.PriRatio)
	}
	return nil
}
