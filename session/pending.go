package session

import "github.com/Ucell-first/smppv5/pdu"

// pendingEntry tracks one in-flight request awaiting its response,
// keyed by sequence number. done is nil for a driver-initiated request
// (the keep-alive enquire_link) that has no external waiter: a timeout
// on one of those ends the session instead of delivering an error.
type pendingEntry struct {
	done chan requestResult
}

// requestResult is delivered to a Submit/Bind/Unbind caller exactly
// once: either the matching response or an error.
type requestResult struct {
	cmd pdu.Command
	err error
}
