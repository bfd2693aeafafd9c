package snapshot

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/grailbio/base/file"
)

// Store abstracts where a snapshot's bytes live, so Write/Read work the
// same way against a local path or a grailbio/base/file-transparent remote
// one (e.g. s3://...) without this package caring which.
type Store interface {
	Create(ctx context.Context, path string) (io.WriteCloser, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// fileStore is the default Store, delegating to github.com/grailbio/base/file,
// which already resolves s3:// and local paths transparently (as
// markduplicates/mark_duplicates.go and pileup/common.go rely on for shard
// I/O).
type fileStore struct{}

// NewFileStore returns the default Store, backed by grailbio/base/file's
// default credential chain and region.
func NewFileStore() Store { return fileStore{} }

func (fileStore) Create(ctx context.Context, path string) (io.WriteCloser, error) {
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, err
	}
	return &fileWriteCloser{ctx: ctx, f: f, w: f.Writer(ctx)}, nil
}

func (fileStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return &fileReadCloser{ctx: ctx, f: f, r: f.Reader(ctx)}, nil
}

type fileWriteCloser struct {
	ctx context.Context
	f   file.File
	w   io.Writer
}

func (w *fileWriteCloser) Write(p []byte) (int, error) { return w.w.Write(p) }
func (w *fileWriteCloser) Close() error                 { return w.f.Close(w.ctx) }

type fileReadCloser struct {
	ctx context.Context
	f   file.File
	r   io.Reader
}

func (r *fileReadCloser) Read(p []byte) (int, error) { return r.r.Read(p) }
func (r *fileReadCloser) Close() error                { return r.f.Close(r.ctx) }

// NewAWSSession builds the AWS session a caller can thread through when a
// snapshot lives in a bucket outside grailbio/base/file's default
// credential chain or region, the way
// encoding/bamprovider/provider_test.go wires a non-default session in for
// test fixtures. It is a caller-side concern — Store itself stays
// credential-agnostic — surfaced here so nothing about this package
// forecloses it.
func NewAWSSession() (*session.Session, error) {
	return session.NewSession()
}
