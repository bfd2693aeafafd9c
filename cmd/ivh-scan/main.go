// Command ivh-scan reads a batch of per-query minimizer vectors, runs each
// through PatchSketch, and prints per query its minimizer count and the
// number of distinct (FC, RC) wing pairs in the resulting Index; it reports
// no seed or pileup statistics. It is a way to exercise the core package
// end-to-end against real input without a full aligner around it.
package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/grailbio/ivh/ivh"
	"github.com/grailbio/ivh/ivh/snapshot"
)

var (
	inputPath  = flag.String("input", "", "path to a batch file of per-query minimizer vectors")
	wing       = flag.Uint("wing", 8, "IVH window radius")
	maxIVHSpan = flag.Uint("max-ivh-span", 2000, "maximum inter-minimizer gap, in bases")
	repFltSpan = flag.Uint("rep-flt-span", 0, "local-frequency filter window, in bases (0 disables)")
	maxRep     = flag.Uint("max-rep", 0, "local-frequency filter density threshold")
	skipBnd    = flag.Bool("skip-bnd", false, "suppress hash augmentation near query boundaries")
)

// batch file format: repeated records of
//   varint  name length
//   bytes   name
//   varint  query length
//   varint  minimizer count n
//   n * (uint64 X, uint64 Y), little-endian
func readBatch(r io.Reader) ([]string, [][]ivh.Minimizer, []int, error) {
	br := bufio.NewReader(r)
	var names []string
	var mvs [][]ivh.Minimizer
	var qlens []int
	for {
		nameLen, err := binary.ReadUvarint(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, nil, err
		}
		name := make([]byte, nameLen)
		if _, err := io.ReadFull(br, name); err != nil {
			return nil, nil, nil, err
		}
		qlen, err := binary.ReadUvarint(br)
		if err != nil {
			return nil, nil, nil, err
		}
		n, err := binary.ReadUvarint(br)
		if err != nil {
			return nil, nil, nil, err
		}
		mv := make([]ivh.Minimizer, n)
		var word [8]byte
		for i := range mv {
			if _, err := io.ReadFull(br, word[:]); err != nil {
				return nil, nil, nil, err
			}
			mv[i].X = binary.LittleEndian.Uint64(word[:])
			if _, err := io.ReadFull(br, word[:]); err != nil {
				return nil, nil, nil, err
			}
			mv[i].Y = binary.LittleEndian.Uint64(word[:])
		}
		names = append(names, string(name))
		mvs = append(mvs, mv)
		qlens = append(qlens, int(qlen))
	}
	return names, mvs, qlens, nil
}

func main() {
	shutdown := grail.Init()
	defer shutdown()
	ctx := vcontext.Background()

	if *inputPath == "" {
		log.Error.Printf("ivh-scan: -input is required")
		os.Exit(2)
	}
	// Read via snapshot.Store rather than a bare os.Open so -input can also
	// name an s3:// path, not just a local one.
	f, err := snapshot.NewFileStore().Open(ctx, *inputPath)
	if err != nil {
		log.Error.Printf("ivh-scan: %v", err)
		os.Exit(1)
	}
	defer f.Close()

	names, mvs, qlens, err := readBatch(f)
	if err != nil {
		log.Error.Printf("ivh-scan: reading batch: %v", err)
		os.Exit(1)
	}

	cfg := ivh.Config{
		Wing:       uint32(*wing),
		MaxIVHSpan: uint32(*maxIVHSpan),
		RepFltSpan: uint32(*repFltSpan),
		MaxRep:     uint32(*maxRep),
		SkipBnd:    *skipBnd,
	}
	if err := cfg.Validate(); err != nil {
		log.Error.Printf("ivh-scan: %v", err)
		os.Exit(2)
	}

	arena := ivh.NewBumpArena()
	for i, name := range names {
		idx := ivh.PatchSketch(arena, mvs[i], qlens[i], cfg)
		distinct := map[uint64]struct{}{}
		for _, e := range idx {
			distinct[uint64(e.FC)<<32|uint64(e.RC)] = struct{}{}
		}
		fmt.Printf("%s\tn=%d\tdistinct_wings=%d\n", name, len(mvs[i]), len(distinct))
	}
}
