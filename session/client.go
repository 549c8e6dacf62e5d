// Package session implements the SMPP session runtime: a state
// machine, sequence allocator, and pending-response table driven by a
// single goroutine per connection, with a bounded action channel as
// its external API surface.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Ucell-first/smppv5/frame"
	"github.com/Ucell-first/smppv5/pdu"
)

// action is the internal message type the driver goroutine consumes,
// a tagged union realized as distinct Go types handled in one
// select/switch.
type action interface{ isAction() }

type actionRequest struct {
	body pdu.Body
	done chan requestResult
}

type actionSendOneway struct {
	body pdu.Body
	done chan error
}

type actionClose struct{ done chan error }

type actionPendingCount struct{ reply chan int }

type actionRespond struct {
	cmd  pdu.Command
	done chan error
}

func (actionRequest) isAction()      {}
func (actionSendOneway) isAction()   {}
func (actionClose) isAction()        {}
func (actionPendingCount) isAction() {}
func (actionRespond) isAction()      {}

// Client drives one bound (or binding) SMPP connection. All exported
// methods are safe to call from multiple goroutines; they communicate
// with the single internal driver goroutine over a bounded channel.
type Client struct {
	conn *frame.Conn
	cfg  Config
	log  *slog.Logger

	state atomic.Int32
	seq   atomic.Uint32

	actions chan action
	events  chan pdu.Command

	closedCh chan struct{}
	closeErr atomic.Value // error
}

func newClient(conn *frame.Conn, cfg Config, initial State) *Client {
	cfg = cfg.withDefaults()
	c := &Client{
		conn:     conn,
		cfg:      cfg,
		log:      cfg.Logger,
		actions:  make(chan action, 32),
		events:   make(chan pdu.Command, 32),
		closedCh: make(chan struct{}),
	}
	c.state.Store(int32(initial))
	go c.drive()
	return c
}

// Dial connects a client-side session over conn, which must already be
// a live transport (TCP, TLS, ...). The session starts in StateOpen;
// call Bind to complete a role.
func Dial(conn io.ReadWriteCloser, cfg Config) *Client {
	fc := frame.NewConn(conn, cfg.withDefaults().MaxFrameSize)
	return newClient(fc, cfg, StateOpen)
}

// State returns the session's current state. Safe for concurrent use.
func (c *Client) State() State { return State(c.state.Load()) }

// Closed reports whether the session has finished closing.
func (c *Client) Closed() bool {
	select {
	case <-c.closedCh:
		return true
	default:
		return false
	}
}

// Done returns a channel closed once the session has finished closing,
// for callers that want to select on it alongside other channels.
func (c *Client) Done() <-chan struct{} { return c.closedCh }

// Events yields inbound requests the peer sent that the driver doesn't
// handle itself (deliver_sm, data_sm, alert_notification, ...).
// enquire_link is answered automatically and never appears here.
func (c *Client) Events() <-chan pdu.Command { return c.events }

func (c *Client) nextSequence() uint32 { return c.seq.Add(1) }

// request sends body as a new request PDU and blocks for its matching
// response, honoring ctx cancellation and the configured response
// timeout, whichever comes first.
func (c *Client) request(ctx context.Context, body pdu.Body) (pdu.Command, error) {
	done := make(chan requestResult, 1)
	select {
	case c.actions <- actionRequest{body: body, done: done}:
	case <-c.closedCh:
		return pdu.Command{}, ErrClosed{}
	case <-ctx.Done():
		return pdu.Command{}, ctx.Err()
	}
	select {
	case r := <-done:
		return r.cmd, r.err
	case <-ctx.Done():
		return pdu.Command{}, ctx.Err()
	case <-c.closedCh:
		return pdu.Command{}, ErrClosed{}
	}
}

// Bind sends a bind_transmitter/receiver/transceiver request and, on a
// successful response, transitions the session to the matching bound
// state.
func (c *Client) Bind(ctx context.Context, body pdu.Body) (pdu.Command, error) {
	if s := c.State(); s != StateOpen {
		return pdu.Command{}, &ErrWrongState{Op: "bind", State: s}
	}
	resp, err := c.request(ctx, body)
	if err != nil {
		return pdu.Command{}, err
	}
	if resp.Header.Status != pdu.StatusOK {
		return resp, &SessionError{Op: "bind", Status: uint32(resp.Header.Status)}
	}
	var next State
	switch body.CommandID() {
	case pdu.BindTransmitterID:
		next = StateBoundTx
	case pdu.BindReceiverID:
		next = StateBoundRx
	case pdu.BindTransceiverID:
		next = StateBoundTrx
	default:
		return resp, fmt.Errorf("session: bind: unexpected command %s", body.CommandID())
	}
	c.state.Store(int32(next))
	return resp, nil
}

// Submit sends a submit_sm (or any other request PDU the bound role
// permits) and waits for its response.
func (c *Client) Submit(ctx context.Context, body pdu.Body) (pdu.Command, error) {
	if s := c.State(); !s.CanSubmit() {
		return pdu.Command{}, &ErrWrongState{Op: "submit", State: s}
	}
	return c.request(ctx, body)
}

// SendOneway fires a request PDU without waiting for a response
// (alert_notification and similar fire-and-forget PDUs).
func (c *Client) SendOneway(ctx context.Context, body pdu.Body) error {
	done := make(chan error, 1)
	select {
	case c.actions <- actionSendOneway{body: body, done: done}:
	case <-c.closedCh:
		return ErrClosed{}
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-c.closedCh:
		return ErrClosed{}
	}
}

// Respond writes a response PDU the caller already built (e.g. a
// handler answering an inbound request from Events()) through the
// driver, so it serializes with the driver's own writes.
func (c *Client) Respond(cmd pdu.Command) error {
	done := make(chan error, 1)
	select {
	case c.actions <- actionRespond{cmd: cmd, done: done}:
	case <-c.closedCh:
		return ErrClosed{}
	}
	return <-done
}

// Unbind requests graceful teardown: send unbind, wait for unbind_resp
// (or GracefulCloseTimeout), then close the transport either way.
func (c *Client) Unbind(ctx context.Context) error {
	if !c.State().Bound() {
		return &ErrWrongState{Op: "unbind", State: c.State()}
	}
	unbindCtx, cancel := context.WithTimeout(ctx, c.cfg.GracefulCloseTimeout)
	defer cancel()
	_, err := c.request(unbindCtx, pdu.Unbind())
	c.state.Store(int32(StateUnbound))
	closeErr := c.Close()
	if err != nil {
		return err
	}
	return closeErr
}

// Close tears the session down immediately, failing every pending
// waiter with ErrClosed and closing the transport.
func (c *Client) Close() error {
	select {
	case <-c.closedCh:
		return c.loadCloseErr()
	default:
	}
	done := make(chan error, 1)
	select {
	case c.actions <- actionClose{done: done}:
		return <-done
	case <-c.closedCh:
		return c.loadCloseErr()
	}
}

func (c *Client) loadCloseErr() error {
	if v := c.closeErr.Load(); v != nil {
		return v.(error)
	}
	return nil
}

// PendingCount reports how many requests are currently awaiting a
// response, exposed for tests and metrics polling.
func (c *Client) PendingCount() int {
	reply := make(chan int, 1)
	select {
	case c.actions <- actionPendingCount{reply: reply}:
		return <-reply
	case <-c.closedCh:
		return 0
	}
}

// drive is the single goroutine owning all session-internal mutable
// state: the pending table, the sequence counter, and the read loop.
// Every other method communicates with it over c.actions instead of
// touching that state directly.
func (c *Client) drive() {
	pending := make(map[uint32]pendingEntry)
	ctx, cancelReader := context.WithCancel(context.Background())
	defer cancelReader()

	readCh := make(chan requestResult, 1)
	go c.readLoop(ctx, readCh)

	timeoutCh := make(chan uint32, 16)
	ticker := time.NewTicker(c.cfg.EnquireLinkInterval)
	defer ticker.Stop()

	finish := func(closeErr error) {
		cancelReader()
		_ = c.conn.Close()
		waiterErr := closeErr
		if waiterErr == nil {
			waiterErr = ErrClosed{}
		}
		for seq, entry := range pending {
			delete(pending, seq)
			if entry.done != nil {
				entry.done <- requestResult{err: waiterErr}
			}
		}
		if closeErr != nil {
			c.closeErr.Store(closeErr)
		}
		c.state.Store(int32(StateClosed))
		close(c.closedCh)
	}

	for {
		c.cfg.Metrics.SetPendingCount(len(pending))
		select {
		case act := <-c.actions:
			switch a := act.(type) {
			case actionRequest:
				seq := c.nextSequence()
				cmd := pdu.NewRequest(seq, a.body)
				if err := c.conn.WriteCommand(cmd); err != nil {
					a.done <- requestResult{err: &IOError{Err: err}}
					finish(&IOError{Err: err})
					return
				}
				c.cfg.Metrics.ObserveSent(uint32(cmd.Header.ID))
				pending[seq] = pendingEntry{done: a.done}
				deadline := c.cfg.ResponseTimeout
				time.AfterFunc(deadline, func() {
					select {
					case timeoutCh <- seq:
					default:
					}
				})
			case actionSendOneway:
				cmd := pdu.NewRequest(c.nextSequence(), a.body)
				err := c.conn.WriteCommand(cmd)
				if err == nil {
					c.cfg.Metrics.ObserveSent(uint32(cmd.Header.ID))
				}
				a.done <- err
			case actionPendingCount:
				a.reply <- len(pending)
			case actionRespond:
				err := c.conn.WriteCommand(a.cmd)
				if err == nil {
					c.cfg.Metrics.ObserveSent(uint32(a.cmd.Header.ID))
				}
				a.done <- err
			case actionClose:
				finish(nil)
				a.done <- nil
				return
			}

		case seq := <-timeoutCh:
			entry, ok := pending[seq]
			if !ok {
				continue
			}
			delete(pending, seq)
			if entry.done != nil {
				entry.done <- requestResult{err: &TimeoutError{Op: "request", Sequence: seq}}
				continue
			}
			// The unanswered request was our own keep-alive enquire_link:
			// a single missed reply within its response timeout is a
			// link failure.
			c.cfg.Metrics.ObserveKeepAliveLoss()
			finish(&TimeoutError{Op: "enquire_link", Sequence: seq})
			return

		case r := <-readCh:
			if r.err != nil {
				finish(&IOError{Err: r.err})
				return
			}
			cmd := r.cmd
			c.cfg.Metrics.ObserveReceived(uint32(cmd.Header.ID))
			switch {
			case pdu.IsResponse(cmd.Header.ID):
				if entry, ok := pending[cmd.Header.Sequence]; ok {
					delete(pending, cmd.Header.Sequence)
					if entry.done != nil {
						entry.done <- requestResult{cmd: cmd}
					}
				}
			case cmd.Header.ID == pdu.EnquireLinkID:
				resp := pdu.NewResponse(cmd.Header.Sequence, pdu.StatusOK, pdu.EnquireLinkResp())
				_ = c.conn.WriteCommand(resp)
			case cmd.Header.ID == pdu.UnbindID:
				resp := pdu.NewResponse(cmd.Header.Sequence, pdu.StatusOK, pdu.UnbindResp())
				_ = c.conn.WriteCommand(resp)
				finish(nil)
				return
			default:
				select {
				case c.events <- cmd:
				default:
					c.log.Warn("session: dropping event, subscriber too slow", "command_id", cmd.Header.ID.String())
				}
			}
			go c.readLoop(ctx, readCh)

		case <-ticker.C:
			if !c.State().Bound() {
				continue
			}
			seq := c.nextSequence()
			cmd := pdu.NewRequest(seq, pdu.EnquireLink())
			if err := c.conn.WriteCommand(cmd); err != nil {
				finish(&IOError{Err: err})
				return
			}
			c.cfg.Metrics.ObserveSent(uint32(cmd.Header.ID))
			pending[seq] = pendingEntry{}
			time.AfterFunc(c.cfg.ResponseTimeout, func() {
				select {
				case timeoutCh <- seq:
				default:
				}
			})
		}
	}
}

// readLoop performs exactly one blocking frame read per invocation and
// reports it on ch; the driver re-launches it after consuming the
// result so there is never more than one outstanding reader goroutine.
func (c *Client) readLoop(ctx context.Context, ch chan<- requestResult) {
	cmd, err := c.conn.ReadCommand(ctx)
	if err != nil && errors.Is(err, context.Canceled) {
		return
	}
	select {
	case ch <- requestResult{cmd: cmd, err: err}:
	case <-ctx.Done():
	}
}
