// Package driver implements the "one invocation per query sequence"
// parallelism unit the core ivh package deliberately stays out of
// (spec.md section 5): a fixed worker pool that fans queries out by
// hashing each query's name to a shard, so a query name is always handled
// by the same worker and that worker can reuse one long-lived Arena
// across queries instead of allocating fresh scratch every call.
package driver

import (
	"runtime"
	"sync"

	farm "github.com/dgryski/go-farm"

	"github.com/grailbio/ivh/ivh"
)

// Query is one unit of work: a name used only to pick a shard, and the
// minimizer vector/query length PatchSketch needs.
type Query struct {
	Name string
	MV   []ivh.Minimizer
	QLen int
}

// Result is what PatchSketch produced for one Query.
type Result struct {
	Query Query
	Index ivh.Index
}

// Pool is a fixed-size worker pool over PatchSketch.
type Pool struct {
	cfg     ivh.Config
	jobs    []chan Query
	results chan Result
	wg      sync.WaitGroup
}

// NewPool starts a Pool with n workers (runtime.GOMAXPROCS(0) if n <= 0),
// each backed by its own ivh.Arena sized to hold one query of up to
// maxMinimizersPerQuery minimizers.
//
// Callers must fully consume (or copy out of) a Result's Index — received
// from Results() — before a later query lands on the same worker shard,
// since that shard's Arena is reset as soon as it accepts its next query.
// Submit/Results' blocking, unbuffered hand-off enforces exactly this as
// long as a caller drains Results between Submit calls, the natural usage
// pattern for a pool like this.
func NewPool(n int, cfg ivh.Config, maxMinimizersPerQuery int) *Pool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		cfg:     cfg,
		jobs:    make([]chan Query, n),
		results: make(chan Result),
	}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		ch := make(chan Query)
		p.jobs[i] = ch
		go func() {
			defer p.wg.Done()
			p.work(ch, maxMinimizersPerQuery)
		}()
	}
	go func() {
		p.wg.Wait()
		close(p.results)
	}()
	return p
}

func (p *Pool) work(jobs <-chan Query, cap int) {
	arena := ivh.NewFixedArena(cap, cap, cap)
	for q := range jobs {
		arena.Reset()
		idx := ivh.PatchSketch(arena, q.MV, q.QLen, p.cfg)
		p.results <- Result{Query: q, Index: idx}
	}
}

// Submit routes q to the worker shard farm.Hash64 of its name selects,
// blocking until that worker is free to accept it. Submit must not be
// called after Close.
func (p *Pool) Submit(q Query) {
	shard := farm.Hash64([]byte(q.Name)) % uint64(len(p.jobs))
	p.jobs[shard] <- q
}

// Results returns the channel Submit's results arrive on. It closes once
// Close has been called and every in-flight query has been processed.
func (p *Pool) Results() <-chan Result { return p.results }

// Close stops the Pool from accepting further work. Callers must keep
// draining Results until it closes.
func (p *Pool) Close() {
	for _, ch := range p.jobs {
		close(ch)
	}
}
