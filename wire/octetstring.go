package wire

// OctetString is a length-known opaque byte sequence with no
// terminator; length is dictated by the enclosing schema (either a
// fixed width or another field's value).
type OctetString struct {
	data Octets
}

// Bytes returns the content.
func (o OctetString) Bytes() []byte { return o.data.Bytes() }

// Len returns the content length.
func (o OctetString) Len() int { return o.data.Len() }

// NewOctetString validates len(b) against [min,max] and returns an
// Owned OctetString.
func NewOctetString(field string, min, max int, b []byte) (OctetString, error) {
	if len(b) < min {
		return OctetString{}, newErr(KindTooFewBytes, field, nil)
	}
	if len(b) > max {
		return OctetString{}, newErr(KindTooManyBytes, field, nil)
	}
	return OctetString{data: NewOwned(b)}, nil
}

// EncodeOctetString appends the raw content, no length prefix: the
// caller's schema already knows the length from elsewhere.
func EncodeOctetString(dst []byte, o OctetString) []byte {
	return append(dst, o.data.Bytes()...)
}

// ReadOctetString consumes exactly length bytes, bounded to [min,max].
func (c *Cursor) ReadOctetString(field string, min, max, length int) (OctetString, error) {
	if length < min {
		return OctetString{}, newErr(KindTooFewBytes, field, nil)
	}
	if length > max {
		return OctetString{}, newErr(KindTooManyBytes, field, nil)
	}
	o, err := c.ReadExact(field, length)
	if err != nil {
		return OctetString{}, err
	}
	return OctetString{data: o}, nil
}

// AnyOctetString is the trailing-tail variant: its length is known
// only from surrounding framing, never a bound of its own.
type AnyOctetString struct {
	data Octets
}

// Bytes returns the content.
func (a AnyOctetString) Bytes() []byte { return a.data.Bytes() }

// Len returns the content length.
func (a AnyOctetString) Len() int { return a.data.Len() }

// NewAnyOctetString wraps b as an Owned AnyOctetString.
func NewAnyOctetString(b []byte) AnyOctetString {
	return AnyOctetString{data: NewOwned(b)}
}

// EncodeAnyOctetString appends the raw content.
func EncodeAnyOctetString(dst []byte, a AnyOctetString) []byte {
	return append(dst, a.data.Bytes()...)
}

// ReadAnyOctetString consumes the declared remainder and never fails
// except on underrun of that declared amount.
func (c *Cursor) ReadAnyOctetString(field string, length int) (AnyOctetString, error) {
	o, err := c.ReadExact(field, length)
	if err != nil {
		return AnyOctetString{}, err
	}
	return AnyOctetString{data: o}, nil
}

// ReadAnyOctetStringRest consumes everything left in the cursor.
func (c *Cursor) ReadAnyOctetStringRest() AnyOctetString {
	return AnyOctetString{data: c.ReadRest()}
}
