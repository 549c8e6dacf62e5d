// Package frame implements the SMPP length-prefixed wire framing:
// a 4-byte command_length (inclusive of itself) followed by the
// 12-byte remainder of the header and the body.
package frame

import (
	"encoding/binary"
	"fmt"

	"github.com/Ucell-first/smppv5/pdu"
)

const (
	// HeaderLen is the fixed 16-byte header: command_length,
	// command_id, command_status, sequence_number.
	HeaderLen = 16
	// DefaultMaxFrameSize bounds a single frame's command_length.
	DefaultMaxFrameSize = 64 * 1024
)

// Kind enumerates the ways a byte stream can fail to frame.
type Kind int

const (
	// KindNeedMore means the buffer doesn't yet hold a full frame;
	// the caller should read more bytes and retry.
	KindNeedMore Kind = iota
	KindFrameTooShort
	KindFrameTooLarge
	KindTruncated
)

func (k Kind) String() string {
	switch k {
	case KindNeedMore:
		return "need_more"
	case KindFrameTooShort:
		return "frame_too_short"
	case KindFrameTooLarge:
		return "frame_too_large"
	case KindTruncated:
		return "truncated"
	default:
		return "unknown"
	}
}

// Error reports a framing failure. NeedMore is not fatal to the
// stream; the other kinds are.
type Error struct {
	Kind   Kind
	Length uint32
}

func (e *Error) Error() string {
	return fmt.Sprintf("frame: %s (command_length=%d)", e.Kind, e.Length)
}

// IsNeedMore reports whether err signals an incomplete frame rather
// than a permanent framing failure.
func IsNeedMore(err error) bool {
	fe, ok := err.(*Error)
	return ok && fe.Kind == KindNeedMore
}

// Frame is one decoded header+body pair, still a raw byte region: the
// caller hands Body to pdu.Decode once Header.ID is known.
type Frame struct {
	Header pdu.Header
	Body   []byte
}

// Peek inspects buf for a complete frame without consuming anything.
// It returns the frame's total length (command_length) and a nil
// error once buf holds at least that many bytes; otherwise it returns
// a *Error of KindNeedMore (buf too short to know yet),
// KindFrameTooShort (command_length < HeaderLen) or KindFrameTooLarge
// (command_length > maxFrameSize).
func Peek(buf []byte, maxFrameSize int) (uint32, error) {
	if len(buf) < 4 {
		return 0, &Error{Kind: KindNeedMore}
	}
	length := binary.BigEndian.Uint32(buf[:4])
	if length < HeaderLen {
		return 0, &Error{Kind: KindFrameTooShort, Length: length}
	}
	if maxFrameSize > 0 && int(length) > maxFrameSize {
		return 0, &Error{Kind: KindFrameTooLarge, Length: length}
	}
	if len(buf) < int(length) {
		return 0, &Error{Kind: KindNeedMore}
	}
	return length, nil
}

// Decode splits one complete frame (as identified by a prior Peek) out
// of buf, returning the Frame. It does not modify buf; the frame
// occupies buf[:length].
func Decode(buf []byte, length uint32) (Frame, error) {
	if uint32(len(buf)) < length {
		return Frame{}, &Error{Kind: KindTruncated, Length: length}
	}
	id := binary.BigEndian.Uint32(buf[4:8])
	status := binary.BigEndian.Uint32(buf[8:12])
	seq := binary.BigEndian.Uint32(buf[12:16])
	body := make([]byte, length-HeaderLen)
	copy(body, buf[HeaderLen:length])
	return Frame{Header: pdu.Header{ID: pdu.CommandID(id), Status: pdu.Status(status), Sequence: seq}, Body: body}, nil
}

// Encode serializes cmd into one length-prefixed frame.
func Encode(cmd pdu.Command) ([]byte, error) {
	body, err := pdu.Encode(cmd)
	if err != nil {
		return nil, err
	}
	total := HeaderLen + len(body)
	out := make([]byte, HeaderLen, total)
	binary.BigEndian.PutUint32(out[0:4], uint32(total))
	binary.BigEndian.PutUint32(out[4:8], uint32(cmd.Header.ID))
	binary.BigEndian.PutUint32(out[8:12], uint32(cmd.Header.Status))
	binary.BigEndian.PutUint32(out[12:16], cmd.Header.Sequence)
	return append(out, body...), nil
}
