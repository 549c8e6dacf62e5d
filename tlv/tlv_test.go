package tlv

import (
	"testing"

	"github.com/Ucell-first/smppv5/wire"
)

func TestKnownTagRoundTrip(t *testing.T) {
	tl, err := New(TagSourcePort, wire.PutUint16(nil, 9200))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	encoded := tl.Encode(nil)
	decoded, err := Decode(wire.NewCursor(encoded, wire.Borrowed))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	u16, ok := decoded.Value.(U16)
	if !ok || u16.V != 9200 {
		t.Fatalf("expected U16(9200), got %#v", decoded.Value)
	}
}

func TestUnknownTagPreservedRaw(t *testing.T) {
	buf := wire.PutUint16(nil, 0x1400)
	buf = wire.PutUint16(buf, 3)
	buf = append(buf, 0xAA, 0xBB, 0xCC)
	decoded, err := Decode(wire.NewCursor(buf, wire.Borrowed))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Value != nil {
		t.Fatalf("expected nil Value for unknown tag, got %#v", decoded.Value)
	}
	if string(decoded.Raw()) != "\xAA\xBB\xCC" {
		t.Fatalf("expected raw bytes preserved, got %x", decoded.Raw())
	}
	reencoded := decoded.Encode(nil)
	if string(reencoded) != string(buf) {
		t.Fatalf("re-encoding unknown tag should be byte-identical:\n got %x\nwant %x", reencoded, buf)
	}
}

func TestMessagePayloadTag(t *testing.T) {
	payload := make([]byte, 500)
	for i := range payload {
		payload[i] = byte(i)
	}
	tl, err := New(TagMessagePayload, payload)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	encoded := tl.Encode(nil)
	if uint16(encoded[2])<<8|uint16(encoded[3]) != 500 {
		t.Fatalf("expected length 500, got %x %x", encoded[2], encoded[3])
	}
	if string(encoded[:2]) != "\x04\x24" {
		t.Fatalf("expected tag 0x0424, got %x", encoded[:2])
	}
}

func TestDecodeAllMultipleTLVs(t *testing.T) {
	var buf []byte
	t1, _ := New(TagSourcePort, wire.PutUint16(nil, 1))
	t2, _ := New(TagDestinationPort, wire.PutUint16(nil, 2))
	buf = t1.Encode(buf)
	buf = t2.Encode(buf)
	all, err := DecodeAll(buf)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 TLVs, got %d", len(all))
	}
	found, ok := Find(all, TagDestinationPort)
	if !ok || found.Value.(U16).V != 2 {
		t.Fatalf("expected to find destination_port=2, got %#v ok=%v", found.Value, ok)
	}
}

func TestDecodeUnexpectedEOF(t *testing.T) {
	buf := wire.PutUint16(nil, uint16(TagSourcePort))
	buf = wire.PutUint16(buf, 10) // declares 10 bytes but none follow
	_, err := Decode(wire.NewCursor(buf, wire.Borrowed))
	if err == nil {
		t.Fatalf("expected error for truncated TLV")
	}
}

func TestKnownTagLengthMismatch(t *testing.T) {
	buf := wire.PutUint16(nil, uint16(TagSourcePort))
	buf = wire.PutUint16(buf, 1) // source_port must be exactly 2 bytes
	buf = append(buf, 0xFF)
	_, err := Decode(wire.NewCursor(buf, wire.Borrowed))
	if err == nil {
		t.Fatalf("expected length-mismatch error for source_port with 1 byte")
	}
}
