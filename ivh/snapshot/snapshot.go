package snapshot

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"io/ioutil"

	"blainsmith.com/go/seahash"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"

	"github.com/grailbio/ivh/ivh"
)

// magic tags the start of every snapshot file, so Read can fail fast on a
// file that isn't one of ours instead of misinterpreting garbage as a huge
// header length.
var magic = [4]byte{'i', 'v', 'h', '1'}

// Write serializes cfg's Wing, MaxIVHSpan, RepFltSpan and MaxRep, and
// entries, to path via store, compressed with codec and trailed with a
// seahash checksum of the compressed body. The checksum does not cover the
// header.
func Write(ctx context.Context, store Store, path string, cfg ivh.Config, entries ivh.Index, codec Codec) error {
	w, err := store.Create(ctx, path)
	if err != nil {
		return errors.Wrapf(err, "snapshot: create %s", path)
	}
	defer w.Close()

	header := &Header{
		Wing:       cfg.Wing,
		MaxIVHSpan: cfg.MaxIVHSpan,
		RepFltSpan: cfg.RepFltSpan,
		MaxRep:     cfg.MaxRep,
		NumEntries: uint64(len(entries)),
		Codec:      uint32(codec.Kind()),
	}
	headerBytes, err := proto.Marshal(header)
	if err != nil {
		return errors.Wrap(err, "snapshot: marshal header")
	}

	var body bytes.Buffer
	cw := codec.NewWriter(&body)
	if err := encodeEntries(cw, entries); err != nil {
		return errors.Wrap(err, "snapshot: encode entries")
	}
	if err := cw.Close(); err != nil {
		return errors.Wrap(err, "snapshot: flush codec")
	}

	checksum := seahash.Sum64(body.Bytes())

	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	if err := writeUvarint(w, uint64(len(headerBytes))); err != nil {
		return err
	}
	if _, err := w.Write(headerBytes); err != nil {
		return err
	}
	if err := writeUvarint(w, uint64(body.Len())); err != nil {
		return err
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return err
	}
	var checksumBytes [8]byte
	binary.LittleEndian.PutUint64(checksumBytes[:], checksum)
	_, err = w.Write(checksumBytes[:])
	return err
}

// Read loads a snapshot written by Write. It decodes the header first, then
// verifies the body against the trailing checksum before decompressing and
// decoding the entries. The returned Config carries only the fields the
// header stores (Wing, MaxIVHSpan, RepFltSpan, MaxRep); the rest are zero.
func Read(ctx context.Context, store Store, path string) (ivh.Config, ivh.Index, error) {
	r, err := store.Open(ctx, path)
	if err != nil {
		return ivh.Config{}, nil, errors.Wrapf(err, "snapshot: open %s", path)
	}
	defer r.Close()

	raw, err := ioutil.ReadAll(r)
	if err != nil {
		return ivh.Config{}, nil, errors.Wrap(err, "snapshot: read")
	}
	if len(raw) < len(magic)+8 || !bytes.Equal(raw[:len(magic)], magic[:]) {
		return ivh.Config{}, nil, errors.New("snapshot: not a valid snapshot file")
	}
	br := bytes.NewReader(raw[len(magic):])

	headerLen, err := binary.ReadUvarint(br)
	if err != nil {
		return ivh.Config{}, nil, errors.Wrap(err, "snapshot: read header length")
	}
	headerBytes := make([]byte, headerLen)
	if _, err := io.ReadFull(br, headerBytes); err != nil {
		return ivh.Config{}, nil, errors.Wrap(err, "snapshot: read header")
	}
	header := &Header{}
	if err := proto.Unmarshal(headerBytes, header); err != nil {
		return ivh.Config{}, nil, errors.Wrap(err, "snapshot: unmarshal header")
	}

	bodyLen, err := binary.ReadUvarint(br)
	if err != nil {
		return ivh.Config{}, nil, errors.Wrap(err, "snapshot: read body length")
	}
	bodyStart := len(raw) - br.Len()
	if bodyStart+int(bodyLen)+8 > len(raw) {
		return ivh.Config{}, nil, errors.New("snapshot: truncated body")
	}
	body := raw[bodyStart : bodyStart+int(bodyLen)]
	wantChecksum := binary.LittleEndian.Uint64(raw[bodyStart+int(bodyLen):])
	if got := seahash.Sum64(body); got != wantChecksum {
		return ivh.Config{}, nil, errors.Errorf("snapshot: checksum mismatch (want %x, got %x)", wantChecksum, got)
	}

	codecReader, err := CodecFor(CodecKind(header.Codec)).NewReader(bytes.NewReader(body))
	if err != nil {
		return ivh.Config{}, nil, errors.Wrap(err, "snapshot: open codec reader")
	}
	defer codecReader.Close()

	entries, err := decodeEntries(codecReader, int(header.NumEntries))
	if err != nil {
		return ivh.Config{}, nil, errors.Wrap(err, "snapshot: decode entries")
	}

	cfg := ivh.Config{
		Wing:       header.Wing,
		MaxIVHSpan: header.MaxIVHSpan,
		RepFltSpan: header.RepFltSpan,
		MaxRep:     header.MaxRep,
	}
	return cfg, entries, nil
}

func writeUvarint(w io.Writer, v uint64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	_, err := w.Write(buf[:n])
	return err
}

// entryRecordSize is the fixed on-disk width of one ivh.Entry: four uint32
// fields plus a one-byte boolean.
const entryRecordSize = 4*4 + 1

func encodeEntries(w io.Writer, entries ivh.Index) error {
	buf := make([]byte, entryRecordSize)
	for _, e := range entries {
		binary.LittleEndian.PutUint32(buf[0:4], e.FC)
		binary.LittleEndian.PutUint32(buf[4:8], e.RC)
		binary.LittleEndian.PutUint32(buf[8:12], e.IV)
		binary.LittleEndian.PutUint32(buf[12:16], e.MiniIdx)
		if e.IsFirst {
			buf[16] = 1
		} else {
			buf[16] = 0
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

func decodeEntries(r io.Reader, n int) (ivh.Index, error) {
	entries := make(ivh.Index, n)
	buf := make([]byte, entryRecordSize)
	for i := 0; i < n; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		entries[i] = ivh.Entry{
			FC:      binary.LittleEndian.Uint32(buf[0:4]),
			RC:      binary.LittleEndian.Uint32(buf[4:8]),
			IV:      binary.LittleEndian.Uint32(buf[8:12]),
			MiniIdx: binary.LittleEndian.Uint32(buf[12:16]),
			IsFirst: buf[16] != 0,
		}
	}
	return entries, nil
}
