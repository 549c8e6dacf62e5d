package frame

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/Ucell-first/smppv5/pdu"
)

type pipeConn struct {
	r io.Reader
	w io.Writer
}

func (p pipeConn) Read(b []byte) (int, error)  { return p.r.Read(b) }
func (p pipeConn) Write(b []byte) (int, error) { return p.w.Write(b) }
func (p pipeConn) Close() error                { return nil }

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cmd := pdu.NewRequest(7, pdu.EnquireLink())
	buf, err := Encode(cmd)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(buf) != HeaderLen {
		t.Fatalf("expected bodyless frame of %d bytes, got %d", HeaderLen, len(buf))
	}
	length, err := Peek(buf, 0)
	if err != nil {
		t.Fatalf("peek: %v", err)
	}
	f, err := Decode(buf, length)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if f.Header.ID != pdu.EnquireLinkID || f.Header.Sequence != 7 {
		t.Fatalf("got %+v", f.Header)
	}
}

func TestPeekNeedMore(t *testing.T) {
	if _, err := Peek([]byte{0, 0, 0}, 0); !IsNeedMore(err) {
		t.Fatalf("expected NeedMore, got %v", err)
	}
	full, _ := Encode(pdu.NewRequest(1, pdu.EnquireLink()))
	if _, err := Peek(full[:HeaderLen-1], 0); !IsNeedMore(err) {
		t.Fatalf("expected NeedMore for partial frame, got %v", err)
	}
}

func TestPeekFrameTooShort(t *testing.T) {
	buf := make([]byte, 4)
	buf[3] = 10 // command_length = 10, below HeaderLen
	if _, err := Peek(buf, 0); err == nil {
		t.Fatal("expected FrameTooShort")
	} else if fe := err.(*Error); fe.Kind != KindFrameTooShort {
		t.Fatalf("got kind %v", fe.Kind)
	}
}

func TestPeekFrameTooLarge(t *testing.T) {
	buf := make([]byte, 4)
	buf[0] = 0xff // command_length huge
	if _, err := Peek(buf, 1024); err == nil {
		t.Fatal("expected FrameTooLarge")
	} else if fe := err.(*Error); fe.Kind != KindFrameTooLarge {
		t.Fatalf("got kind %v", fe.Kind)
	}
}

func TestDecoderStreamingSplitFrames(t *testing.T) {
	cmd1, _ := Encode(pdu.NewRequest(1, pdu.EnquireLink()))
	cmd2, _ := Encode(pdu.NewRequest(2, pdu.Unbind()))
	stream := append(append([]byte{}, cmd1...), cmd2...)

	d := NewDecoder(0)
	// Feed one byte at a time to exercise NeedMore repeatedly.
	var frames []Frame
	for i := 0; i < len(stream); i++ {
		d.Feed(stream[i : i+1])
		for {
			f, err := d.Next()
			if IsNeedMore(err) {
				break
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			frames = append(frames, f)
		}
	}
	if len(frames) != 2 {
		t.Fatalf("got %d frames", len(frames))
	}
	if frames[0].Header.ID != pdu.EnquireLinkID || frames[1].Header.ID != pdu.UnbindID {
		t.Fatalf("got %+v", frames)
	}
}

func TestConnReadWriteCommand(t *testing.T) {
	var wireBuf bytes.Buffer
	conn := NewConn(pipeConn{r: &wireBuf, w: &wireBuf}, 0)

	cmd := pdu.NewRequest(3, pdu.EnquireLink())
	if err := conn.WriteCommand(cmd); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := conn.ReadCommand(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Header.ID != pdu.EnquireLinkID || got.Header.Sequence != 3 {
		t.Fatalf("got %+v", got.Header)
	}
}
