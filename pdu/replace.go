package pdu

import (
	"github.com/Ucell-first/smppv5/tlv"
	"github.com/Ucell-first/smppv5/wire"
)

// ReplaceSM replaces a previously submitted short message still
// queued at the SMSC.
type ReplaceSM struct {
	MessageID            string // CString<1,65>
	Source               Address
	ScheduleDeliveryTime string // EmptyOrFullCString<17>
	ValidityPeriod       string // EmptyOrFullCString<17>
	RegisteredDelivery   byte
	SMDefaultMsgID       byte
	ShortMessage         []byte // <= 254 bytes; mutually exclusive with MessagePayload
	MessagePayload       []byte // TLV 0x0424; mutually exclusive with ShortMessage
	TLVs                 []tlv.TLV
}

func NewReplaceSM(messageID string, source Address, registeredDelivery byte) *ReplaceSM {
	return &ReplaceSM{MessageID: messageID, Source: source, RegisteredDelivery: registeredDelivery}
}

func (r *ReplaceSM) CommandID() CommandID { return ReplaceSmID }

func (r *ReplaceSM) MarshalBody() ([]byte, error) {
	if len(r.ShortMessage) > 0 && len(r.MessagePayload) > 0 {
		return nil, &MutualExclusionError{PDU: ReplaceSmID}
	}
	messageID, err := newCString("message_id", 1, 65, r.MessageID)
	if err != nil {
		return nil, wrapField(ReplaceSmID, "message_id", err)
	}
	dst := encodeCString(nil, messageID)
	sourceEnc, err := r.Source.encode(nil)
	if err != nil {
		return nil, wrapField(ReplaceSmID, "source_addr", err)
	}
	dst = append(dst, sourceEnc...)
	sched, err := wire.NewEmptyOrFullCString("schedule_delivery_time", 17, r.ScheduleDeliveryTime)
	if err != nil {
		return nil, wrapField(ReplaceSmID, "schedule_delivery_time", err)
	}
	dst = wire.EncodeEmptyOrFullCString(dst, sched)
	validity, err := wire.NewEmptyOrFullCString("validity_period", 17, r.ValidityPeriod)
	if err != nil {
		return nil, wrapField(ReplaceSmID, "validity_period", err)
	}
	dst = wire.EncodeEmptyOrFullCString(dst, validity)
	if len(r.ShortMessage) > 254 {
		return nil, wrapField(ReplaceSmID, "short_message", wire.ErrTooManyBytes)
	}
	dst = append(dst, r.RegisteredDelivery, r.SMDefaultMsgID, byte(len(r.ShortMessage)))
	dst = append(dst, r.ShortMessage...)
	if len(r.MessagePayload) > 0 {
		t, err := tlv.New(tlv.TagMessagePayload, r.MessagePayload)
		if err != nil {
			return nil, wrapField(ReplaceSmID, "message_payload", err)
		}
		dst = t.Encode(dst)
	}
	return tlv.EncodeAll(dst, r.TLVs), nil
}

func (r *ReplaceSM) UnmarshalBody(buf []byte) error {
	c := newCursor(buf)
	messageID, err := c.ReadCString("message_id", 1, 65)
	if err != nil {
		return wrapField(ReplaceSmID, "message_id", err)
	}
	source, err := decodeAddress(c, "source_addr")
	if err != nil {
		return wrapField(ReplaceSmID, "source_addr", err)
	}
	sched, err := c.ReadEmptyOrFullCString("schedule_delivery_time", 17)
	if err != nil {
		return wrapField(ReplaceSmID, "schedule_delivery_time", err)
	}
	validity, err := c.ReadEmptyOrFullCString("validity_period", 17)
	if err != nil {
		return wrapField(ReplaceSmID, "validity_period", err)
	}
	registeredDelivery, err := c.ReadUint8("registered_delivery")
	if err != nil {
		return wrapField(ReplaceSmID, "registered_delivery", err)
	}
	defMsgID, err := c.ReadUint8("sm_default_msg_id")
	if err != nil {
		return wrapField(ReplaceSmID, "sm_default_msg_id", err)
	}
	smLength, err := c.ReadUint8("sm_length")
	if err != nil {
		return wrapField(ReplaceSmID, "sm_length", err)
	}
	shortMessage, err := c.ReadOctetString("short_message", 0, 254, int(smLength))
	if err != nil {
		return wrapField(ReplaceSmID, "short_message", err)
	}
	r.MessageID = messageID.String()
	r.Source = source
	if sched.Present() {
		r.ScheduleDeliveryTime = sched.String()
	}
	if validity.Present() {
		r.ValidityPeriod = validity.String()
	}
	r.RegisteredDelivery = registeredDelivery
	r.SMDefaultMsgID = defMsgID
	r.ShortMessage = shortMessage.Bytes()

	if c.Remaining() > 0 {
		tlvs, err := tlv.DecodeAll(c.Rest())
		if err != nil {
			return wrapField(ReplaceSmID, "optional_parameters", err)
		}
		if payload, ok := tlv.Find(tlvs, tlv.TagMessagePayload); ok {
			r.MessagePayload = payload.Raw()
		}
		r.TLVs = tlvs
	}
	if len(r.ShortMessage) > 0 && len(r.MessagePayload) > 0 {
		return &MutualExclusionError{PDU: ReplaceSmID}
	}
	return nil
}

// ReplaceSMResp acknowledges replace_sm; SMPP defines no body fields
// for it beyond the header.
type ReplaceSMResp struct{}

func (r *ReplaceSMResp) CommandID() CommandID          { return ReplaceSmRespID }
func (r *ReplaceSMResp) MarshalBody() ([]byte, error)   { return nil, nil }
func (r *ReplaceSMResp) UnmarshalBody(buf []byte) error { return nil }
