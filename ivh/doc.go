// Package ivh implements interval-hash-augmented minimizers: it takes the
// sorted minimizer sketch of a long read and augments each minimizer's
// fingerprint with a 24-bit signature derived from the pattern of gaps to
// its neighbors on the same strand. Matches against the resulting index
// must agree on k-mer identity and on local minimizer spacing, which
// sharply cuts the number of spurious hits an all-vs-all overlapper has to
// chain through in repetitive regions.
//
// The package is purely computational: every entry point is synchronous
// and single-threaded. PatchSketch takes its interval scratch and the Index
// it returns from the caller-supplied Arena (see arena.go); other working
// buffers (sort copies, ComputeHash's scratch, returned seed and region
// slices) are ordinary Go allocations. Sequence input, k-mer extraction, chaining, alignment,
// and output formatting are all handled by collaborators outside this
// package; ivh only ever sees an already-sketched minimizer vector and
// hands back an augmented vector plus an auxiliary Index for chaining and
// pileup reconstruction to consume.
package ivh
