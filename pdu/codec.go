package pdu

import "github.com/Ucell-first/smppv5/wire"

// cursor is a local alias so PDU bodies read field by field, in
// declaration order, without a wire. prefix on every line.
type cursor = wire.Cursor

func newCursor(buf []byte) *cursor {
	return wire.NewCursor(buf, wire.Borrowed)
}

func newCString(field string, min, max int, s string) (wire.CString, error) {
	return wire.NewCString(field, min, max, s)
}

func encodeCString(dst []byte, cs wire.CString) []byte {
	return wire.EncodeCString(dst, cs)
}
