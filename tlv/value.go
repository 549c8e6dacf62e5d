package tlv

import (
	"fmt"

	"github.com/Ucell-first/smppv5/wire"
)

// Value is the typed representation of a known TLV's payload. Unknown
// tags never produce a Value; callers fall back to TLV.Raw().
type Value interface {
	isValue()
	Bytes() []byte
}

// Octets is a known TLV whose value is itself opaque bytes (e.g.
// message_payload).
type Octets struct{ data []byte }

func (Octets) isValue()          {}
func (o Octets) Bytes() []byte   { return o.data }
func (o Octets) String() string  { return fmt.Sprintf("%x", o.data) }

// CString is a known TLV whose value is a NUL-terminated string (e.g.
// receipted_message_id).
type CString struct{ data []byte }

func (CString) isValue()        {}
func (c CString) Bytes() []byte { return append(append([]byte{}, c.data...), 0) }
func (c CString) String() string {
	return string(c.data)
}

// U8 is a known single-byte TLV (e.g. dest_addr_subunit).
type U8 struct{ V byte }

func (U8) isValue()        {}
func (u U8) Bytes() []byte { return []byte{u.V} }

// U16 is a known 2-byte TLV (e.g. source_port).
type U16 struct{ V uint16 }

func (U16) isValue()        {}
func (u U16) Bytes() []byte { return wire.PutUint16(nil, u.V) }

// U32 is a known 4-byte TLV (e.g. qos_time_to_live).
type U32 struct{ V uint32 }

func (U32) isValue()        {}
func (u U32) Bytes() []byte { return wire.PutUint32(nil, u.V) }
