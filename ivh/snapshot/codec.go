package snapshot

import (
	"io"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
)

// CodecKind identifies which Codec a Header's body was written with, so
// Read can pick the matching decompressor without the caller having to
// remember.
type CodecKind uint32

const (
	// CodecSnappy is the default: fast, low compression ratio, good for
	// snapshots a worker writes and rereads within the same run.
	CodecSnappy CodecKind = iota
	// CodecGzip trades write/read speed for a higher compression ratio,
	// for snapshots meant to be archived.
	CodecGzip
)

// Codec wraps a stream compressor/decompressor pair.
type Codec interface {
	Kind() CodecKind
	NewWriter(w io.Writer) io.WriteCloser
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// CodecFor returns the Codec implementation for a CodecKind, defaulting to
// CodecSnappy for any unrecognized value (matching a Header read from a
// future version of this package that adds a codec this build doesn't
// know about).
func CodecFor(k CodecKind) Codec {
	if k == CodecGzip {
		return gzipCodec{}
	}
	return snappyCodec{}
}

type snappyCodec struct{}

func (snappyCodec) Kind() CodecKind                 { return CodecSnappy }
func (snappyCodec) NewWriter(w io.Writer) io.WriteCloser { return snappy.NewBufferedWriter(w) }
func (snappyCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(snappy.NewReader(r)), nil
}

type gzipCodec struct{}

func (gzipCodec) Kind() CodecKind { return CodecGzip }

func (gzipCodec) NewWriter(w io.Writer) io.WriteCloser {
	gw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		// BestCompression is always a valid level for klauspost/compress/gzip;
		// the only failure mode is a caller-supplied bad level.
		panic(err)
	}
	return gw
}

func (gzipCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}
