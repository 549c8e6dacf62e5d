package pdu

// Body is implemented by every PDU body type. A Body knows its own
// CommandID and how to marshal/unmarshal itself in that PDU's
// mandatory field order.
type Body interface {
	CommandID() CommandID
	MarshalBody() ([]byte, error)
	UnmarshalBody([]byte) error
}

// Command is the wire-level PDU envelope: header fields plus an
// optional body, present iff the id has a defined body (enquire_link,
// enquire_link_resp, unbind, unbind_resp and generic_nack carry none).
type Command struct {
	Header Header
	Body   Body // nil for bodyless PDUs
}

// NewRequest builds a Command for a request PDU with status zero.
func NewRequest(seq uint32, body Body) Command {
	return Command{Header: Header{ID: body.CommandID(), Status: StatusOK, Sequence: seq}, Body: body}
}

// NewResponse builds a Command for a response PDU, reusing the
// request's sequence number.
func NewResponse(seq uint32, status Status, body Body) Command {
	id := CommandID(0)
	if body != nil {
		id = body.CommandID()
	}
	return Command{Header: Header{ID: id, Status: status, Sequence: seq}, Body: body}
}

// emptyBody implements Body for PDUs with no defined body
// (enquire_link, enquire_link_resp, unbind_resp, unbind, generic_nack
// carries only a status and no body either).
type emptyBody struct{ id CommandID }

func (e emptyBody) CommandID() CommandID         { return e.id }
func (e emptyBody) MarshalBody() ([]byte, error) { return nil, nil }
func (e *emptyBody) UnmarshalBody(b []byte) error { return nil }

// EnquireLink is the keep-alive request.
func EnquireLink() Body { return &emptyBody{id: EnquireLinkID} }

// EnquireLinkResp is the keep-alive reply.
func EnquireLinkResp() Body { return &emptyBody{id: EnquireLinkRespID} }

// Unbind requests graceful session teardown.
func Unbind() Body { return &emptyBody{id: UnbindID} }

// UnbindResp acknowledges an unbind request.
func UnbindResp() Body { return &emptyBody{id: UnbindRespID} }

// GenericNack is returned for a PDU the peer could not process at all
// (malformed frame, throttling, unsupported command).
func GenericNack() Body { return &emptyBody{id: GenericNackID} }

// newBody allocates a zero-value Body for the given command_id, or nil
// if the id is unrecognized. An unrecognized command_id is permitted
// at the frame layer; it's this layer, reached through
// frame.Conn.ReadCommand, that rejects it.
func newBody(id CommandID) Body {
	switch id {
	case EnquireLinkID, EnquireLinkRespID, UnbindID, UnbindRespID, GenericNackID:
		return &emptyBody{id: id}
	case BindTransmitterID:
		return &BindTransmitter{}
	case BindTransmitterRespID:
		return &BindTransmitterResp{}
	case BindReceiverID:
		return &BindReceiver{}
	case BindReceiverRespID:
		return &BindReceiverResp{}
	case BindTransceiverID:
		return &BindTransceiver{}
	case BindTransceiverRespID:
		return &BindTransceiverResp{}
	case OutbindID:
		return &Outbind{}
	case SubmitSmID:
		return &SubmitSM{}
	case SubmitSmRespID:
		return &SubmitSMResp{}
	case DeliverSmID:
		return &DeliverSM{}
	case DeliverSmRespID:
		return &DeliverSMResp{}
	case ReplaceSmID:
		return &ReplaceSM{}
	case ReplaceSmRespID:
		return &ReplaceSMResp{}
	case QuerySmID:
		return &QuerySM{}
	case QuerySmRespID:
		return &QuerySMResp{}
	case CancelSmID:
		return &CancelSM{}
	case CancelSmRespID:
		return &CancelSMResp{}
	case DataSmID:
		return &DataSM{}
	case DataSmRespID:
		return &DataSMResp{}
	case SubmitMultiID:
		return &SubmitMulti{}
	case SubmitMultiRespID:
		return &SubmitMultiResp{}
	case AlertNotificationID:
		return &AlertNotificationPDU{}
	default:
		return nil
	}
}

// Decode builds a Command from an already-framed header and body
// bytes (the frame layer has already stripped the 4-byte length
// prefix and validated overall size).
func Decode(h Header, bodyBytes []byte) (Command, error) {
	body := newBody(h.ID)
	if body == nil {
		return Command{Header: h}, &UnrecognizedCommandError{ID: h.ID}
	}
	if len(bodyBytes) == 0 {
		if _, ok := body.(*emptyBody); ok {
			return Command{Header: h, Body: body}, nil
		}
	}
	if err := body.UnmarshalBody(bodyBytes); err != nil {
		return Command{Header: h}, err
	}
	return Command{Header: h, Body: body}, nil
}

// Encode serializes cmd's body (if any). The caller (frame.Encode)
// prepends the 16-byte header, whose first 4 bytes are command_length.
func Encode(cmd Command) ([]byte, error) {
	if cmd.Body == nil {
		return nil, nil
	}
	return cmd.Body.MarshalBody()
}
