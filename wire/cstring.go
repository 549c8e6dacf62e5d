package wire

// CString is a NUL-terminated 7-bit ASCII byte sequence. Min/Max bound
// the on-wire length *including* the terminator: content length lies
// in [min-1, max-1].
//
// Go has no const generics, so the (min, max) pair is not stored in the
// value: the pdu package passes it as plain arguments at each call site
// instead of as a type parameter.
type CString struct {
	data Octets // content, without the trailing NUL
}

// String returns the content as a Go string.
func (c CString) String() string { return string(c.data.Bytes()) }

// Bytes returns the content without the NUL terminator.
func (c CString) Bytes() []byte { return c.data.Bytes() }

// NewCString validates s against [min-1, max-1] content length and
// 7-bit ASCII, returning an Owned CString.
func NewCString(field string, min, max int, s string) (CString, error) {
	b := []byte(s)
	if err := validateCStringContent(field, min, max, b); err != nil {
		return CString{}, err
	}
	return CString{data: NewOwned(b)}, nil
}

func validateCStringContent(field string, min, max int, b []byte) error {
	total := len(b) + 1
	if total < min {
		return newErr(KindTooFewBytes, field, nil)
	}
	if total > max {
		return newErr(KindTooManyBytes, field, nil)
	}
	for _, c := range b {
		if c&0x80 != 0 {
			return newErr(KindNotASCII, field, nil)
		}
	}
	return nil
}

// EncodeCString appends content followed by a NUL terminator.
func EncodeCString(dst []byte, c CString) []byte {
	dst = append(dst, c.data.Bytes()...)
	return append(dst, 0)
}

// ReadCString scans for the first NUL within the first max bytes,
// enforcing the [min-1,max-1] content-length bound and 7-bit ASCII.
func (c *Cursor) ReadCString(field string, min, max int) (CString, error) {
	limit := max
	if c.Remaining() < limit {
		limit = c.Remaining()
	}
	nul := -1
	for i := 0; i < limit; i++ {
		b := c.buf[c.pos+i]
		if b == 0 {
			nul = i
			break
		}
		if b&0x80 != 0 {
			return CString{}, newErr(KindNotASCII, field, nil)
		}
	}
	if nul < 0 {
		if c.Remaining() < max {
			return CString{}, newErr(KindUnexpectedEOF, field, nil)
		}
		return CString{}, newErr(KindNotNullTerminated, field, nil)
	}
	total := nul + 1
	if total < min {
		return CString{}, newErr(KindTooFewBytes, field, nil)
	}
	content := c.octets(c.buf[c.pos : c.pos+nul])
	c.pos += total
	return CString{data: content}, nil
}

// EmptyOrFullCString is the MIN=0 special case: either zero bytes
// total, or exactly max bytes including the NUL.
type EmptyOrFullCString struct {
	CString
	present bool
}

// Present reports whether the field carries content at all.
func (e EmptyOrFullCString) Present() bool { return e.present }

// NewEmptyOrFullCString builds an empty or fully-populated field.
func NewEmptyOrFullCString(field string, max int, s string) (EmptyOrFullCString, error) {
	if s == "" {
		return EmptyOrFullCString{}, nil
	}
	cs, err := NewCString(field, max, max, s)
	if err != nil {
		return EmptyOrFullCString{}, err
	}
	return EmptyOrFullCString{CString: cs, present: true}, nil
}

// EncodeEmptyOrFullCString writes a single NUL byte for an absent
// field or the full field otherwise. A bare zero-length write would
// be indistinguishable from EOF on the wire, so "empty" still costs
// one byte — the same convention ReadEmptyOrFullCString expects.
func EncodeEmptyOrFullCString(dst []byte, e EmptyOrFullCString) []byte {
	if !e.present {
		return append(dst, 0)
	}
	return EncodeCString(dst, e.CString)
}

// ReadEmptyOrFullCString decodes the empty-or-full variant: a leading
// NUL means empty, anything else must fill exactly max bytes.
func (c *Cursor) ReadEmptyOrFullCString(field string, max int) (EmptyOrFullCString, error) {
	if c.Remaining() == 0 {
		return EmptyOrFullCString{}, newErr(KindUnexpectedEOF, field, nil)
	}
	if c.buf[c.pos] == 0 {
		c.pos++
		return EmptyOrFullCString{}, nil
	}
	cs, err := c.ReadCString(field, max, max)
	if err != nil {
		return EmptyOrFullCString{}, err
	}
	return EmptyOrFullCString{CString: cs, present: true}, nil
}
