// Package pdu implements the SMPP v5 PDU schema: the Command envelope,
// every supported PDU body, TLV-bearing optional sections, and the
// builder discipline each one follows.
package pdu

import "fmt"

// CommandID identifies a PDU type on the wire.
type CommandID uint32

const (
	GenericNackID           CommandID = 0x80000000
	BindReceiverID          CommandID = 0x00000001
	BindReceiverRespID      CommandID = 0x80000001
	BindTransmitterID       CommandID = 0x00000002
	BindTransmitterRespID   CommandID = 0x80000002
	QuerySmID               CommandID = 0x00000003
	QuerySmRespID           CommandID = 0x80000003
	SubmitSmID              CommandID = 0x00000004
	SubmitSmRespID          CommandID = 0x80000004
	DeliverSmID             CommandID = 0x00000005
	DeliverSmRespID         CommandID = 0x80000005
	UnbindID                CommandID = 0x00000006
	UnbindRespID            CommandID = 0x80000006
	ReplaceSmID             CommandID = 0x00000007
	ReplaceSmRespID         CommandID = 0x80000007
	CancelSmID              CommandID = 0x00000008
	CancelSmRespID          CommandID = 0x80000008
	BindTransceiverID       CommandID = 0x00000009
	BindTransceiverRespID   CommandID = 0x80000009
	OutbindID               CommandID = 0x0000000B
	EnquireLinkID           CommandID = 0x00000015
	EnquireLinkRespID       CommandID = 0x80000015
	SubmitMultiID           CommandID = 0x00000021
	SubmitMultiRespID       CommandID = 0x80000021
	AlertNotificationID     CommandID = 0x00000102
	DataSmID                CommandID = 0x00000103
	DataSmRespID            CommandID = 0x80000103
)

func (id CommandID) String() string {
	if name, ok := commandIDNames[id]; ok {
		return name
	}
	return fmt.Sprintf("command_id(0x%08x)", uint32(id))
}

var commandIDNames = map[CommandID]string{
	GenericNackID:         "generic_nack",
	BindReceiverID:        "bind_receiver",
	BindReceiverRespID:    "bind_receiver_resp",
	BindTransmitterID:     "bind_transmitter",
	BindTransmitterRespID: "bind_transmitter_resp",
	QuerySmID:             "query_sm",
	QuerySmRespID:         "query_sm_resp",
	SubmitSmID:            "submit_sm",
	SubmitSmRespID:        "submit_sm_resp",
	DeliverSmID:           "deliver_sm",
	DeliverSmRespID:       "deliver_sm_resp",
	UnbindID:              "unbind",
	UnbindRespID:          "unbind_resp",
	ReplaceSmID:           "replace_sm",
	ReplaceSmRespID:       "replace_sm_resp",
	CancelSmID:            "cancel_sm",
	CancelSmRespID:        "cancel_sm_resp",
	BindTransceiverID:     "bind_transceiver",
	BindTransceiverRespID: "bind_transceiver_resp",
	OutbindID:             "outbind",
	EnquireLinkID:         "enquire_link",
	EnquireLinkRespID:     "enquire_link_resp",
	SubmitMultiID:         "submit_multi",
	SubmitMultiRespID:     "submit_multi_resp",
	AlertNotificationID:   "alert_notification",
	DataSmID:              "data_sm",
	DataSmRespID:          "data_sm_resp",
}

// IsResponse reports whether id names a *_resp PDU (or generic_nack,
// which responds to anything).
func IsResponse(id CommandID) bool {
	switch id {
	case GenericNackID, BindReceiverRespID, BindTransmitterRespID, BindTransceiverRespID,
		QuerySmRespID, SubmitSmRespID, DeliverSmRespID, UnbindRespID, ReplaceSmRespID,
		CancelSmRespID, EnquireLinkRespID, SubmitMultiRespID, DataSmRespID:
		return true
	default:
		return false
	}
}

// Status is the command_status field: zero on requests, a result code
// on responses.
type Status uint32

const (
	StatusOK                Status = 0x00000000
	StatusInvMsgLen         Status = 0x00000001
	StatusInvCmdLen         Status = 0x00000002
	StatusInvCmdID          Status = 0x00000003
	StatusInvBnd            Status = 0x00000004
	StatusAlyBnd            Status = 0x00000005
	StatusInvPrtFlg         Status = 0x00000006
	StatusInvRegDlvFlg      Status = 0x00000007
	StatusSysErr            Status = 0x00000008
	StatusInvSrcAdr         Status = 0x0000000A
	StatusInvDstAdr         Status = 0x0000000B
	StatusInvMsgID          Status = 0x0000000C
	StatusBindFail          Status = 0x0000000D
	StatusInvPaswd          Status = 0x0000000E
	StatusInvSysID          Status = 0x0000000F
	StatusCancelFail        Status = 0x00000011
	StatusReplaceFail       Status = 0x00000013
	StatusMsgQFul           Status = 0x00000014
	StatusInvSerTyp         Status = 0x00000015
	StatusInvNumDe          Status = 0x00000033
	StatusInvDLName         Status = 0x00000034
	StatusInvDestFlag       Status = 0x00000040
	StatusInvSubRep         Status = 0x00000042
	StatusInvEsmClass       Status = 0x00000043
	StatusCntSubDL          Status = 0x00000044
	StatusSubmitFail        Status = 0x00000045
	StatusInvSrcTON         Status = 0x00000048
	StatusInvSrcNPI         Status = 0x00000049
	StatusInvDstTON         Status = 0x00000050
	StatusInvDstNPI         Status = 0x00000051
	StatusInvSysTyp         Status = 0x00000053
	StatusInvRepFlag        Status = 0x00000054
	StatusInvNumMsgs        Status = 0x00000055
	StatusThrottled         Status = 0x00000058
	StatusInvSched          Status = 0x00000061
	StatusInvExpiry         Status = 0x00000062
	StatusInvDftMsgID       Status = 0x00000063
	StatusTempAppErr        Status = 0x00000064
	StatusPermAppErr        Status = 0x00000065
	StatusRejeAppErr        Status = 0x00000066
	StatusQueryFail         Status = 0x00000067
	StatusInvOptParStream   Status = 0x000000C0
	StatusOptParNotAllwd    Status = 0x000000C1
	StatusInvParLen         Status = 0x000000C2
	StatusMissingOptParam   Status = 0x000000C3
	StatusInvOptParamVal    Status = 0x000000C4
	StatusDeliveryFailure   Status = 0x000000FE
	StatusUnknownErr        Status = 0x000000FF
)

// Header is the fixed 16-byte SMPP header: command_length (implicit in
// framing, not stored here), command_id, command_status,
// sequence_number.
type Header struct {
	ID       CommandID
	Status   Status
	Sequence uint32
}
