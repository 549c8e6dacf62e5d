package wire

import "encoding/binary"

// Cursor decodes primitives from a buffer in declaration order. It is
// the "Frame Codec feeds PDU Schema" seam: a single Cursor is built
// once per PDU body and every field decode advances it.
//
// mode controls whether OctetString/CString/AnyOctetString values
// returned by this cursor alias buf (Borrowed) or copy out of it
// (Owned). Integers are always returned by value since there's nothing
// to borrow.
type Cursor struct {
	buf  []byte
	pos  int
	mode Mode
}

// NewCursor creates a cursor over buf using the given ownership mode
// for any octet-bearing value it decodes.
func NewCursor(buf []byte, mode Mode) *Cursor {
	return &Cursor{buf: buf, mode: mode}
}

// Remaining returns the number of undecoded bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Rest returns everything left in the buffer without advancing.
func (c *Cursor) Rest() []byte { return c.buf[c.pos:] }

// Pos returns the current read offset.
func (c *Cursor) Pos() int { return c.pos }

func (c *Cursor) octets(data []byte) Octets {
	if c.mode == Owned {
		return NewOwned(data)
	}
	return NewBorrowed(data)
}

// ReadUint8 reads one byte.
func (c *Cursor) ReadUint8(field string) (byte, error) {
	if c.Remaining() < 1 {
		return 0, newErr(KindUnexpectedEOF, field, nil)
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// ReadUint16 reads a big-endian uint16.
func (c *Cursor) ReadUint16(field string) (uint16, error) {
	if c.Remaining() < 2 {
		return 0, newErr(KindUnexpectedEOF, field, nil)
	}
	v := binary.BigEndian.Uint16(c.buf[c.pos : c.pos+2])
	c.pos += 2
	return v, nil
}

// ReadUint32 reads a big-endian uint32.
func (c *Cursor) ReadUint32(field string) (uint32, error) {
	if c.Remaining() < 4 {
		return 0, newErr(KindUnexpectedEOF, field, nil)
	}
	v := binary.BigEndian.Uint32(c.buf[c.pos : c.pos+4])
	c.pos += 4
	return v, nil
}

// ReadExact consumes exactly n bytes and returns them in this cursor's
// ownership mode. Fails UnexpectedEOF if fewer than n bytes remain.
func (c *Cursor) ReadExact(field string, n int) (Octets, error) {
	if c.Remaining() < n {
		return Octets{}, newErr(KindUnexpectedEOF, field, nil)
	}
	out := c.octets(c.buf[c.pos : c.pos+n])
	c.pos += n
	return out, nil
}

// ReadRest consumes everything left in the buffer.
func (c *Cursor) ReadRest() Octets {
	out := c.octets(c.buf[c.pos:])
	c.pos = len(c.buf)
	return out
}

// PutUint8 appends a byte.
func PutUint8(dst []byte, v byte) []byte { return append(dst, v) }

// PutUint16 appends a big-endian uint16.
func PutUint16(dst []byte, v uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return append(dst, b[:]...)
}

// PutUint32 appends a big-endian uint32.
func PutUint32(dst []byte, v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return append(dst, b[:]...)
}
