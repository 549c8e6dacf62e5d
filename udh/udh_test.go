package udh

import "testing"

func TestParseConcatenated8Bit(t *testing.T) {
	// UDH length 5, IEI 0x00 8-bit concat, len 3, ref=0x42, total=3, part=2
	sm := []byte{0x05, 0x00, 0x03, 0x42, 0x03, 0x02, 'h', 'i'}
	elements, body, err := Parse(sm)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if string(body) != "hi" {
		t.Fatalf("expected body 'hi', got %q", body)
	}
	if len(elements) != 1 {
		t.Fatalf("expected 1 element, got %d", len(elements))
	}
	c, ok, err := elements[0].AsConcatenated()
	if err != nil || !ok {
		t.Fatalf("AsConcatenated: ok=%v err=%v", ok, err)
	}
	if c.Reference != 0x42 || c.TotalParts != 3 || c.PartNumber != 2 {
		t.Fatalf("unexpected concatenation header: %+v", c)
	}
}

func TestConcatenatedTotalPartsZero(t *testing.T) {
	sm := []byte{0x05, 0x00, 0x03, 0x42, 0x00, 0x02}
	elements, _, err := Parse(sm)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, _, err = elements[0].AsConcatenated()
	if err == nil {
		t.Fatalf("expected TotalPartsZero error")
	}
	if e, ok := err.(*Error); !ok || e.Kind != ErrTotalPartsZero {
		t.Fatalf("expected TotalPartsZero, got %v", err)
	}
}

func TestConcatenatedPartNumberZero(t *testing.T) {
	sm := []byte{0x05, 0x00, 0x03, 0x42, 0x03, 0x00}
	elements, _, _ := Parse(sm)
	_, _, err := elements[0].AsConcatenated()
	if e, ok := err.(*Error); !ok || e.Kind != ErrPartNumberZero {
		t.Fatalf("expected PartNumberZero, got %v", err)
	}
}

func TestConcatenatedPartNumberExceedsTotal(t *testing.T) {
	sm := []byte{0x05, 0x00, 0x03, 0x42, 0x03, 0x04}
	elements, _, _ := Parse(sm)
	_, _, err := elements[0].AsConcatenated()
	if e, ok := err.(*Error); !ok || e.Kind != ErrPartNumberExceedsTotal {
		t.Fatalf("expected PartNumberExceedsTotalParts, got %v", err)
	}
}

func TestConcatenated16BitRoundTrip(t *testing.T) {
	el, err := NewConcatenated16Bit(0x1234, 5, 3)
	if err != nil {
		t.Fatalf("NewConcatenated16Bit: %v", err)
	}
	encoded := Encode([]Element{el}, []byte("payload"))
	elements, body, err := Parse(encoded)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if string(body) != "payload" {
		t.Fatalf("expected body 'payload', got %q", body)
	}
	c, ok, err := elements[0].AsConcatenated()
	if err != nil || !ok {
		t.Fatalf("AsConcatenated: ok=%v err=%v", ok, err)
	}
	if c.Reference != 0x1234 || c.TotalParts != 5 || c.PartNumber != 3 {
		t.Fatalf("unexpected round trip: %+v", c)
	}
}

func TestUnknownIEIPreservedRaw(t *testing.T) {
	sm := []byte{0x03, 0x70, 0x01, 0xAB, 'x'}
	elements, body, err := Parse(sm)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if string(body) != "x" {
		t.Fatalf("expected body 'x', got %q", body)
	}
	if elements[0].IEI != 0x70 || len(elements[0].Data) != 1 || elements[0].Data[0] != 0xAB {
		t.Fatalf("unexpected unknown element: %+v", elements[0])
	}
	_, ok, _ := elements[0].AsConcatenated()
	if ok {
		t.Fatalf("unknown IEI should not parse as concatenated")
	}
}
