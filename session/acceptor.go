package session

import (
	"context"
	"fmt"
	"io"

	"github.com/Ucell-first/smppv5/frame"
	"github.com/Ucell-first/smppv5/pdu"
)

// Acceptor runs the server side of the bind handshake over one
// already-accepted transport connection (e.g. a net.Conn from
// net.Listener.Accept).
type Acceptor struct {
	conn *frame.Conn
	cfg  Config
}

// NewAcceptor wraps an accepted connection, ready to read its bind
// request.
func NewAcceptor(conn io.ReadWriteCloser, cfg Config) *Acceptor {
	cfg = cfg.withDefaults()
	return &Acceptor{conn: frame.NewConn(conn, cfg.MaxFrameSize), cfg: cfg}
}

// BindRequest is the peer's bind_transmitter/receiver/transceiver,
// held open until the caller decides to Accept or Reject it.
type BindRequest struct {
	acceptor *Acceptor
	cmd      pdu.Command
}

// Kind returns the requested bind command.
func (r *BindRequest) Kind() pdu.CommandID { return r.cmd.Header.ID }

// Body returns the decoded bind request body.
func (r *BindRequest) Body() pdu.Body { return r.cmd.Body }

// Accept waits for one bind request and returns it, or an error if
// none arrives within cfg.SessionBindTimeout, the peer sends something
// else, or the transport fails.
func (a *Acceptor) Accept(ctx context.Context) (*BindRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.SessionBindTimeout)
	defer cancel()
	// ReadCommand only checks ctx between reads, so closing the
	// connection is what interrupts a read still blocked at the deadline.
	stop := context.AfterFunc(ctx, func() { _ = a.conn.Close() })
	cmd, err := a.conn.ReadCommand(ctx)
	if !stop() && err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return nil, fmt.Errorf("session: acceptor: %w", err)
	}
	switch cmd.Header.ID {
	case pdu.BindTransmitterID, pdu.BindReceiverID, pdu.BindTransceiverID:
		return &BindRequest{acceptor: a, cmd: cmd}, nil
	default:
		resp := pdu.NewResponse(cmd.Header.Sequence, pdu.StatusInvBnd, respBodyFor(cmd.Header.ID))
		_ = a.conn.WriteCommand(resp)
		_ = a.conn.Close()
		return nil, &SessionError{Op: "accept", Status: uint32(pdu.StatusInvBnd),
			Err: fmt.Errorf("unexpected command %s before bind", cmd.Header.ID)}
	}
}

// Accept completes the handshake: it writes the bind_resp carrying
// status and, on StatusOK, returns a live *Client in the bound state
// matching the request's role. Every other status closes the
// connection after writing the response.
func (r *BindRequest) Accept(status pdu.Status, respBody pdu.Body) (*Client, error) {
	resp := pdu.NewResponse(r.cmd.Header.Sequence, status, respBody)
	if err := r.acceptor.conn.WriteCommand(resp); err != nil {
		_ = r.acceptor.conn.Close()
		return nil, &IOError{Err: err}
	}
	if status != pdu.StatusOK {
		_ = r.acceptor.conn.Close()
		return nil, &SessionError{Op: "bind", Status: uint32(status)}
	}
	var state State
	switch r.cmd.Header.ID {
	case pdu.BindTransmitterID:
		state = StateBoundTx
	case pdu.BindReceiverID:
		state = StateBoundRx
	case pdu.BindTransceiverID:
		state = StateBoundTrx
	}
	return newClient(r.acceptor.conn, r.acceptor.cfg, state), nil
}

// Reject writes a bind_resp carrying the given failure status and
// closes the connection. Unlike a bare drop, the peer always receives
// a correlated response to the sequence number it bound with — per
// the protocol's own framing rules, an unanswered bind request is
// indistinguishable from a lost packet, and a compliant peer will
// retry or hang a timer waiting for a response that will never come.
func (r *BindRequest) Reject(status pdu.Status) error {
	if status == pdu.StatusOK {
		status = pdu.StatusBindFail
	}
	resp := pdu.NewResponse(r.cmd.Header.Sequence, status, respBodyFor(r.cmd.Header.ID))
	err := r.acceptor.conn.WriteCommand(resp)
	closeErr := r.acceptor.conn.Close()
	if err != nil {
		return fmt.Errorf("session: reject: %w", err)
	}
	return closeErr
}

// respBodyFor returns an empty-valued response body of the right type
// for id's request (or id's own response type if id is already one),
// used to carry a failure status without a successful bind's payload.
func respBodyFor(id pdu.CommandID) pdu.Body {
	switch id {
	case pdu.BindTransmitterID, pdu.BindTransmitterRespID:
		return pdu.NewBindTransmitterResp("")
	case pdu.BindReceiverID, pdu.BindReceiverRespID:
		return pdu.NewBindReceiverResp("")
	case pdu.BindTransceiverID, pdu.BindTransceiverRespID:
		return pdu.NewBindTransceiverResp("")
	default:
		return pdu.GenericNack()
	}
}
