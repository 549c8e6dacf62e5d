package pdu

import "github.com/Ucell-first/smppv5/wire"

// QuerySM asks the SMSC for the state of a previously submitted
// message.
type QuerySM struct {
	MessageID string // CString<1,65>
	Source    Address
}

func NewQuerySM(messageID string, source Address) *QuerySM {
	return &QuerySM{MessageID: messageID, Source: source}
}

func (q *QuerySM) CommandID() CommandID { return QuerySmID }

func (q *QuerySM) MarshalBody() ([]byte, error) {
	messageID, err := newCString("message_id", 1, 65, q.MessageID)
	if err != nil {
		return nil, wrapField(QuerySmID, "message_id", err)
	}
	dst := encodeCString(nil, messageID)
	sourceEnc, err := q.Source.encode(nil)
	if err != nil {
		return nil, wrapField(QuerySmID, "source_addr", err)
	}
	return append(dst, sourceEnc...), nil
}

func (q *QuerySM) UnmarshalBody(buf []byte) error {
	c := newCursor(buf)
	messageID, err := c.ReadCString("message_id", 1, 65)
	if err != nil {
		return wrapField(QuerySmID, "message_id", err)
	}
	source, err := decodeAddress(c, "source_addr")
	if err != nil {
		return wrapField(QuerySmID, "source_addr", err)
	}
	q.MessageID = messageID.String()
	q.Source = source
	return nil
}

// MessageState is the final_status/message_state enumeration returned
// by query_sm_resp and carried by delivery receipts.
type MessageState byte

const (
	MessageStateEnroute       MessageState = 1
	MessageStateDelivered     MessageState = 2
	MessageStateExpired       MessageState = 3
	MessageStateDeleted       MessageState = 4
	MessageStateUndeliverable MessageState = 5
	MessageStateAccepted      MessageState = 6
	MessageStateUnknown       MessageState = 7
	MessageStateRejected      MessageState = 8
)

// QuerySMResp reports the current state of a queried message.
type QuerySMResp struct {
	MessageID  string // CString<1,65>
	FinalDate  string // EmptyOrFullCString<17>
	State      MessageState
	ErrorCode  byte
}

func NewQuerySMResp(messageID string, state MessageState, errorCode byte) *QuerySMResp {
	return &QuerySMResp{MessageID: messageID, State: state, ErrorCode: errorCode}
}

func (q *QuerySMResp) CommandID() CommandID { return QuerySmRespID }

func (q *QuerySMResp) MarshalBody() ([]byte, error) {
	messageID, err := newCString("message_id", 1, 65, q.MessageID)
	if err != nil {
		return nil, wrapField(QuerySmRespID, "message_id", err)
	}
	dst := encodeCString(nil, messageID)
	finalDate, err := wire.NewEmptyOrFullCString("final_date", 17, q.FinalDate)
	if err != nil {
		return nil, wrapField(QuerySmRespID, "final_date", err)
	}
	dst = wire.EncodeEmptyOrFullCString(dst, finalDate)
	return append(dst, byte(q.State), q.ErrorCode), nil
}

func (q *QuerySMResp) UnmarshalBody(buf []byte) error {
	c := newCursor(buf)
	messageID, err := c.ReadCString("message_id", 1, 65)
	if err != nil {
		return wrapField(QuerySmRespID, "message_id", err)
	}
	finalDate, err := c.ReadEmptyOrFullCString("final_date", 17)
	if err != nil {
		return wrapField(QuerySmRespID, "final_date", err)
	}
	state, err := c.ReadUint8("message_state")
	if err != nil {
		return wrapField(QuerySmRespID, "message_state", err)
	}
	errorCode, err := c.ReadUint8("error_code")
	if err != nil {
		return wrapField(QuerySmRespID, "error_code", err)
	}
	q.MessageID = messageID.String()
	q.FinalDate = finalDate.String()
	q.State = MessageState(state)
	q.ErrorCode = errorCode
	return nil
}
