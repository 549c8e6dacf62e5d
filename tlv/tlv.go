// Package tlv implements SMPP optional-parameter framing: a 4-byte
// header (tag, length) followed by length bytes of value, and a
// closed registry of known tags.
package tlv

import (
	"fmt"

	"github.com/Ucell-first/smppv5/wire"
)

// Tag identifies an optional parameter.
type Tag uint16

// TLV is one decoded optional parameter: a known Value if the tag is
// in the registry, or raw bytes if it isn't.
type TLV struct {
	Tag   Tag
	Value Value
	raw   wire.Octets // always populated; Value is derived from it for known tags
}

// Raw returns the exact bytes that were (or will be) on the wire for
// this TLV's value, regardless of whether the tag is known.
func (t TLV) Raw() []byte { return t.raw.Bytes() }

// New builds a TLV from a tag and already-encoded value bytes,
// re-deriving the typed Value through the registry if the tag is
// known, so construction and decoding agree on representation.
func New(tag Tag, value []byte) (TLV, error) {
	raw := wire.NewOwned(value)
	v, err := decodeKnownValue(tag, raw.Bytes())
	if err != nil {
		return TLV{}, fmt.Errorf("tlv: tag 0x%04x: %w", tag, err)
	}
	return TLV{Tag: tag, Value: v, raw: raw}, nil
}

// Encode appends this TLV's wire representation: 2-byte tag, 2-byte
// length, value bytes. Length always equals len(Raw()).
func (t TLV) Encode(dst []byte) []byte {
	dst = wire.PutUint16(dst, uint16(t.Tag))
	dst = wire.PutUint16(dst, uint16(len(t.raw.Bytes())))
	return append(dst, t.raw.Bytes()...)
}

// Decode reads one TLV (tag, length, value) from c. A known tag's
// value is validated against exactly the declared length; an unknown
// tag's value is preserved as raw bytes.
func Decode(c *wire.Cursor) (TLV, error) {
	tag, err := c.ReadUint16("tlv.tag")
	if err != nil {
		return TLV{}, err
	}
	length, err := c.ReadUint16("tlv.length")
	if err != nil {
		return TLV{}, err
	}
	raw, err := c.ReadExact("tlv.value", int(length))
	if err != nil {
		return TLV{}, err
	}
	v, err := decodeKnownValue(Tag(tag), raw.Bytes())
	if err != nil {
		return TLV{}, fmt.Errorf("tlv: tag 0x%04x: %w", tag, err)
	}
	return TLV{Tag: Tag(tag), Value: v, raw: raw}, nil
}

// DecodeAll decodes every TLV in buf back to back. Every PDU with an
// optional part calls this once on whatever bytes remain after its
// mandatory fields.
func DecodeAll(buf []byte) ([]TLV, error) {
	c := wire.NewCursor(buf, wire.Borrowed)
	var out []TLV
	for c.Remaining() > 0 {
		t, err := Decode(c)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// EncodeAll appends every TLV in order.
func EncodeAll(dst []byte, tlvs []TLV) []byte {
	for _, t := range tlvs {
		dst = t.Encode(dst)
	}
	return dst
}

// Find returns the first TLV with the given tag, if present.
func Find(tlvs []TLV, tag Tag) (TLV, bool) {
	for _, t := range tlvs {
		if t.Tag == tag {
			return t, true
		}
	}
	return TLV{}, false
}
