package wire

import (
	"errors"
	"testing"
)

func TestCStringRoundTrip(t *testing.T) {
	cs, err := NewCString("system_id", 1, 16, "test")
	if err != nil {
		t.Fatalf("NewCString: %v", err)
	}
	buf := EncodeCString(nil, cs)
	if len(buf) != 5 {
		t.Fatalf("expected 5 bytes (4 + NUL), got %d", len(buf))
	}
	c := NewCursor(buf, Borrowed)
	got, err := c.ReadCString("system_id", 1, 16)
	if err != nil {
		t.Fatalf("ReadCString: %v", err)
	}
	if got.String() != "test" {
		t.Errorf("expected %q, got %q", "test", got.String())
	}
	if c.Remaining() != 0 {
		t.Errorf("expected cursor exhausted, %d bytes left", c.Remaining())
	}
}

func TestCStringNotNullTerminated(t *testing.T) {
	buf := []byte{'a', 'b', 'c'}
	c := NewCursor(buf, Borrowed)
	_, err := c.ReadCString("field", 1, 3)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if de.Kind != KindNotNullTerminated {
		t.Errorf("expected NotNullTerminated, got %s", de.Kind)
	}
}

func TestCStringNotASCII(t *testing.T) {
	buf := []byte{0x80, 0x00}
	c := NewCursor(buf, Borrowed)
	_, err := c.ReadCString("field", 1, 16)
	if !errors.Is(err, ErrNotASCII) {
		t.Fatalf("expected NotASCII, got %v", err)
	}
}

func TestCStringTooFewBytes(t *testing.T) {
	_, err := NewCString("system_id", 2, 16, "")
	if !errors.Is(err, ErrTooFewBytes) {
		t.Fatalf("expected TooFewBytes, got %v", err)
	}
}

func TestEmptyOrFullCStringRoundTrip(t *testing.T) {
	empty, err := NewEmptyOrFullCString("service_type", 17, "")
	if err != nil {
		t.Fatalf("NewEmptyOrFullCString(empty): %v", err)
	}
	buf := EncodeEmptyOrFullCString(nil, empty)
	if len(buf) != 0 {
		t.Fatalf("expected zero bytes for empty field, got %d", len(buf))
	}

	full, err := NewEmptyOrFullCString("service_type", 6, "abcde")
	if err != nil {
		t.Fatalf("NewEmptyOrFullCString(full): %v", err)
	}
	buf = EncodeEmptyOrFullCString(nil, full)
	if len(buf) != 6 {
		t.Fatalf("expected 6 bytes, got %d", len(buf))
	}
	c := NewCursor(buf, Borrowed)
	got, err := c.ReadEmptyOrFullCString("service_type", 6)
	if err != nil {
		t.Fatalf("ReadEmptyOrFullCString: %v", err)
	}
	if !got.Present() || got.String() != "abcde" {
		t.Errorf("expected 'abcde', got %q (present=%v)", got.String(), got.Present())
	}
}

func TestOctetStringRoundTrip(t *testing.T) {
	os, err := NewOctetString("short_message", 0, 254, []byte("hi"))
	if err != nil {
		t.Fatalf("NewOctetString: %v", err)
	}
	buf := EncodeOctetString(nil, os)
	c := NewCursor(buf, Borrowed)
	got, err := c.ReadOctetString("short_message", 0, 254, len(buf))
	if err != nil {
		t.Fatalf("ReadOctetString: %v", err)
	}
	if string(got.Bytes()) != "hi" {
		t.Errorf("expected 'hi', got %q", got.Bytes())
	}
}

func TestOctetStringTooManyBytes(t *testing.T) {
	_, err := NewOctetString("short_message", 0, 2, []byte("abc"))
	if !errors.Is(err, ErrTooManyBytes) {
		t.Fatalf("expected TooManyBytes, got %v", err)
	}
}

func TestAnyOctetStringConsumesRemainder(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	c := NewCursor(buf, Borrowed)
	got := c.ReadAnyOctetStringRest()
	if len(got.Bytes()) != 4 {
		t.Errorf("expected 4 bytes, got %d", len(got.Bytes()))
	}
	if c.Remaining() != 0 {
		t.Errorf("expected cursor exhausted")
	}
}

func TestBoundedVecTooManyElements(t *testing.T) {
	_, err := NewBoundedVec[int]("dest_addresses", 2, []int{1, 2, 3})
	if !errors.Is(err, ErrTooManyElements) {
		t.Fatalf("expected TooManyElements, got %v", err)
	}
}

func TestReadBoundedVecGreedyDecode(t *testing.T) {
	buf := []byte{1, 2, 3}
	c := NewCursor(buf, Borrowed)
	vec, err := ReadBoundedVec[byte](c, "items", 10, func(c *Cursor) (byte, error) {
		return c.ReadUint8("item")
	})
	if err != nil {
		t.Fatalf("ReadBoundedVec: %v", err)
	}
	if vec.Len() != 3 {
		t.Fatalf("expected 3 items, got %d", vec.Len())
	}
}

func TestReadBoundedVecTooManyElements(t *testing.T) {
	buf := []byte{1, 2, 3}
	c := NewCursor(buf, Borrowed)
	_, err := ReadBoundedVec[byte](c, "items", 2, func(c *Cursor) (byte, error) {
		return c.ReadUint8("item")
	})
	if !errors.Is(err, ErrTooManyElements) {
		t.Fatalf("expected TooManyElements, got %v", err)
	}
}

func TestIntegerRoundTrip(t *testing.T) {
	buf := PutUint32(PutUint16(PutUint8(nil, 0x12), 0x3456), 0x789ABCDE)
	c := NewCursor(buf, Borrowed)
	u8, _ := c.ReadUint8("u8")
	u16, _ := c.ReadUint16("u16")
	u32, _ := c.ReadUint32("u32")
	if u8 != 0x12 || u16 != 0x3456 || u32 != 0x789ABCDE {
		t.Fatalf("round trip mismatch: %x %x %x", u8, u16, u32)
	}
}

func TestReadUint32UnexpectedEOF(t *testing.T) {
	c := NewCursor([]byte{1, 2}, Borrowed)
	_, err := c.ReadUint32("seq")
	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("expected UnexpectedEOF, got %v", err)
	}
}

func TestOctetsBorrowedVsOwned(t *testing.T) {
	src := []byte{1, 2, 3}
	b := NewBorrowed(src)
	o := b.ToOwned()
	src[0] = 99
	if o.Bytes()[0] != 1 {
		t.Errorf("owned copy should not observe mutation of source buffer")
	}
	if b.Bytes()[0] != 99 {
		t.Errorf("borrowed view should observe mutation of source buffer")
	}
}
