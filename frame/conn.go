package frame

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/Ucell-first/smppv5/pdu"
)

// Conn wraps an io.ReadWriteCloser (ordinarily a net.Conn) with a
// buffered streaming decode loop: frames accumulate in a growable
// buffer so a short read never blocks a whole PDU.
type Conn struct {
	rw     io.ReadWriteCloser
	r      *bufio.Reader
	dec    *Decoder
	closed bool
}

// NewConn wraps rw, bounding incoming frames to maxFrameSize bytes.
func NewConn(rw io.ReadWriteCloser, maxFrameSize int) *Conn {
	return &Conn{rw: rw, r: bufio.NewReader(rw), dec: NewDecoder(maxFrameSize)}
}

// ReadCommand blocks until one full PDU arrives, decoding it through
// the pdu package, or the connection errors. ctx is checked before each
// read from the transport; a read already blocked on the transport is
// not interrupted when ctx is cancelled.
func (c *Conn) ReadCommand(ctx context.Context) (pdu.Command, error) {
	for {
		f, err := c.dec.Next()
		if err == nil {
			return pdu.Decode(f.Header, f.Body)
		}
		if !IsNeedMore(err) {
			return pdu.Command{}, err
		}
		if err := ctx.Err(); err != nil {
			return pdu.Command{}, err
		}
		chunk := make([]byte, 4096)
		n, rerr := c.r.Read(chunk)
		if n > 0 {
			c.dec.Feed(chunk[:n])
		}
		if rerr != nil {
			if n > 0 && c.dec.Pending() > 0 {
				// Let the next loop iteration try to decode what we have
				// before reporting the read error, so a peer that closes
				// right after its last frame doesn't mask that frame.
				continue
			}
			return pdu.Command{}, fmt.Errorf("frame: read: %w", rerr)
		}
	}
}

// WriteCommand encodes and writes one PDU. Concurrent writers must
// serialize their own calls; Conn does not lock.
func (c *Conn) WriteCommand(cmd pdu.Command) error {
	buf, err := Encode(cmd)
	if err != nil {
		return err
	}
	_, err = c.rw.Write(buf)
	return err
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.rw.Close()
}
