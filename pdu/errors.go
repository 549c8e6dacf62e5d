package pdu

import "fmt"

// FieldError wraps a lower-level decode failure (wire.DecodeError,
// tlv errors, udh errors) with the PDU-level field path it occurred
// at, so a caller sees e.g. "submit_sm.short_message: too_many_bytes"
// rather than a bare "too_many_bytes".
type FieldError struct {
	PDU   CommandID
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("pdu: %s.%s: %v", e.PDU, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func wrapField(id CommandID, field string, err error) error {
	if err == nil {
		return nil
	}
	return &FieldError{PDU: id, Field: field, Err: err}
}

// UnsupportedKeyError is raised when a keyed field's discriminator
// doesn't match any known variant.
type UnsupportedKeyError struct {
	PDU   CommandID
	Field string
	Key   uint32
}

func (e *UnsupportedKeyError) Error() string {
	return fmt.Sprintf("pdu: %s.%s: unsupported key 0x%x", e.PDU, e.Field, e.Key)
}

// MutualExclusionError reports a violation of the short_message /
// message_payload invariant: a PDU may carry the text inline or via
// the TLV, never both.
type MutualExclusionError struct {
	PDU CommandID
}

func (e *MutualExclusionError) Error() string {
	return fmt.Sprintf("pdu: %s: short_message and message_payload are mutually exclusive", e.PDU)
}

// UnrecognizedCommandError is returned by Decode when the frame's
// command_id has no registered body type. The frame layer treats the
// body as opaque; the schema layer is what actually rejects it.
type UnrecognizedCommandError struct {
	ID CommandID
}

func (e *UnrecognizedCommandError) Error() string {
	return fmt.Sprintf("pdu: unrecognized command_id 0x%08x", uint32(e.ID))
}
