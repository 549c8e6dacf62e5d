package session

import "fmt"

// State is the session lifecycle state, held in an atomic so any
// goroutine can read a snapshot. The driver goroutine stores
// StateClosed; Bind and Unbind store the bound and unbound states from
// the calling goroutine once their response returns.
type State int32

const (
	StateOpen State = iota
	StateBoundTx
	StateBoundRx
	StateBoundTrx
	StateUnbound
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateBoundTx:
		return "bound_tx"
	case StateBoundRx:
		return "bound_rx"
	case StateBoundTrx:
		return "bound_trx"
	case StateUnbound:
		return "unbound"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Bound reports whether s permits submit/deliver traffic.
func (s State) Bound() bool {
	return s == StateBoundTx || s == StateBoundRx || s == StateBoundTrx
}

// CanSubmit and CanDeliver report whether a session in state s is
// allowed to submit or receive application traffic: transmitter-bound
// sessions cannot receive, and receiver-bound sessions cannot submit.
func (s State) CanSubmit() bool { return s == StateBoundTx || s == StateBoundTrx }
func (s State) CanDeliver() bool { return s == StateBoundRx || s == StateBoundTrx }
