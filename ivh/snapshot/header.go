// Package snapshot persists a built ivh.Index, together with the Config
// fields Header stores, to a portable file so a downstream chaining/alignment
// process can load it without recomputing PatchSketch (spec.md section 6,
// "the IVH-patched minimizer fingerprints live inside the sketch index
// written to disk").
package snapshot

import "fmt"

// Header is the snapshot file's fixed fields: the Wing, MaxIVHSpan,
// RepFltSpan and MaxRep of the Config an Index was built with (no other
// Config field, SkipBnd included, is stored), how many Entry records
// follow, and which Codec compressed them.
// Hand-authored in gogo/protobuf's generated-struct idiom (biopb.Coord's
// pattern of a plain struct with protobuf field tags and hand-added
// convenience methods) rather than produced by protoc, since this wire
// format is wholly internal to this package.
type Header struct {
	Wing       uint32 `protobuf:"varint,1,opt,name=wing" json:"wing"`
	MaxIVHSpan uint32 `protobuf:"varint,2,opt,name=max_ivh_span" json:"max_ivh_span"`
	RepFltSpan uint32 `protobuf:"varint,3,opt,name=rep_flt_span" json:"rep_flt_span"`
	MaxRep     uint32 `protobuf:"varint,4,opt,name=max_rep" json:"max_rep"`
	NumEntries uint64 `protobuf:"varint,5,opt,name=num_entries" json:"num_entries"`
	Codec      uint32 `protobuf:"varint,6,opt,name=codec" json:"codec"`
}

func (h *Header) Reset()         { *h = Header{} }
func (h *Header) String() string { return fmt.Sprintf("%+v", *h) }
func (h *Header) ProtoMessage()  {}
