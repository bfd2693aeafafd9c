package ivh

import "github.com/pkg/errors"

// Arena is a caller-supplied, scoped allocator for the buffers PatchSketch
// needs per invocation (interval arrays and the Index it returns). It
// exists so that a caller processing many queries can reuse a
// single arena's backing storage across calls instead of letting each call
// hit the garbage collector; the package never retains a reference to
// memory obtained from an Arena past the call that requested it, and never
// frees anything itself — bulk release is the caller's job when it tears
// the arena down (spec.md section 5).
//
// This mirrors the role of kalloc's km handle in the original C
// implementation, generalized into an interface so callers can plug in a
// bump allocator, a free-list (as in encoding/bam's FreePool), or — in
// tests — a plain allocate-and-forget implementation.
type Arena interface {
	// Intervals returns a slice of length n, not necessarily zeroed, for
	// use as synthesis-phase scratch. The returned slice must not be used
	// after the arena is reset or released.
	Intervals(n int) []ivhInterval
	// Entries returns a slice of length n for the post-patch IVH index.
	// Unlike Intervals, the returned slice is long-lived: callers keep
	// using it as the Index after patch_sketch returns, so arenas that
	// free in bulk must not reclaim it before the caller is done with the
	// index.
	Entries(n int) []Entry
	// Seeds returns a slice of length n for seed-selection scratch.
	Seeds(n int) []Seed
}

// ErrArenaExhausted is what the fixed-capacity arena wraps and panics with,
// matching kalloc's fatal-on-exhaustion behavior, when it cannot satisfy a
// request. No function in this package returns it as an error.
var ErrArenaExhausted = errors.New("ivh: arena exhausted")

// bumpArena is a minimal Arena that allocates fresh slices on every call
// and relies on the garbage collector for reclamation. It is always
// correct and is what NewBumpArena returns; it's the right choice for
// one-shot callers and for tests.
type bumpArena struct{}

// NewBumpArena returns an Arena backed directly by make(); every call
// allocates fresh memory with no reuse across Arena calls or across
// invocations. Use this when per-query garbage is acceptable, or wrap the
// pluggable Arena interface with a pooling implementation when it is not.
func NewBumpArena() Arena { return bumpArena{} }

func (bumpArena) Intervals(n int) []ivhInterval { return make([]ivhInterval, n) }
func (bumpArena) Entries(n int) []Entry         { return make([]Entry, n) }
func (bumpArena) Seeds(n int) []Seed            { return make([]Seed, n) }

// fixedArena is a bounded Arena that hands out slices from three
// preallocated backing buffers and panics (wrapping ErrArenaExhausted) once
// any of them is exhausted, mirroring kalloc's "allocation failure is
// fatal, arena teardown cleans up" contract (spec.md section 7). It is
// meant to be reused across many queries by a single worker: call Reset
// between queries to make the whole backing buffer available again without
// any further allocation.
type fixedArena struct {
	intervals []ivhInterval
	entries   []Entry
	seeds     []Seed
}

// NewFixedArena returns an Arena backed by buffers of the given capacities.
// It never grows; exceeding a capacity panics. Reset reclaims all three
// buffers in bulk.
func NewFixedArena(intervalCap, entryCap, seedCap int) *fixedArena {
	return &fixedArena{
		intervals: make([]ivhInterval, 0, intervalCap),
		entries:   make([]Entry, 0, entryCap),
		seeds:     make([]Seed, 0, seedCap),
	}
}

// Reset releases everything handed out so far in bulk, without freeing the
// backing arrays themselves.
func (a *fixedArena) Reset() {
	a.intervals = a.intervals[:0]
	a.entries = a.entries[:0]
	a.seeds = a.seeds[:0]
}

func (a *fixedArena) Intervals(n int) []ivhInterval {
	if len(a.intervals)+n > cap(a.intervals) {
		panic(errors.Wrapf(ErrArenaExhausted, "intervals: requested %d, have %d/%d", n, len(a.intervals), cap(a.intervals)))
	}
	start := len(a.intervals)
	a.intervals = a.intervals[:start+n]
	return a.intervals[start : start+n]
}

func (a *fixedArena) Entries(n int) []Entry {
	if len(a.entries)+n > cap(a.entries) {
		panic(errors.Wrapf(ErrArenaExhausted, "entries: requested %d, have %d/%d", n, len(a.entries), cap(a.entries)))
	}
	start := len(a.entries)
	a.entries = a.entries[:start+n]
	return a.entries[start : start+n]
}

func (a *fixedArena) Seeds(n int) []Seed {
	if len(a.seeds)+n > cap(a.seeds) {
		panic(errors.Wrapf(ErrArenaExhausted, "seeds: requested %d, have %d/%d", n, len(a.seeds), cap(a.seeds)))
	}
	start := len(a.seeds)
	a.seeds = a.seeds[:start+n]
	return a.seeds[start : start+n]
}
