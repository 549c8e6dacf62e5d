package pdu

import (
	"github.com/Ucell-first/smppv5/tlv"
	"github.com/Ucell-first/smppv5/wire"
)

// smBody is the field layout shared by submit_sm and deliver_sm (spec
// §4.2 catalogue): identical mandatory parameters, identical
// short_message/message_payload mutual exclusion, differing only in
// command_id.
type smBody struct {
	id                     CommandID
	ServiceType            string // CString<1,6>
	Source                 Address
	Dest                   Address
	ESMClass               byte
	ProtocolID             byte
	PriorityFlag           byte
	ScheduleDeliveryTime   string // EmptyOrFullCString<17>
	ValidityPeriod         string // EmptyOrFullCString<17>
	RegisteredDelivery     byte
	ReplaceIfPresentFlag   byte
	DataCoding             byte
	SMDefaultMsgID         byte
	shortMessage           []byte // <= 254 bytes; mutually exclusive with messagePayload
	messagePayload         []byte // TLV 0x0424; mutually exclusive with shortMessage
	TLVs                   []tlv.TLV
}

// SetShortMessage sets the inline short_message field. Fails if
// message_payload is already populated, since the two are mutually
// exclusive, or the content exceeds 254 bytes.
func (m *smBody) SetShortMessage(b []byte) bool {
	if len(m.messagePayload) > 0 || len(b) > 254 {
		return false
	}
	m.shortMessage = b
	return true
}

// SetMessagePayload sets the message_payload TLV (sm_length stays 0,
// short_message stays empty). Fails if short_message is already
// populated.
func (m *smBody) SetMessagePayload(b []byte) bool {
	if len(m.shortMessage) > 0 {
		return false
	}
	m.messagePayload = b
	return true
}

// ShortMessage returns whichever of short_message/message_payload is
// populated, and which one it was.
func (m *smBody) ShortMessage() (data []byte, viaPayload bool) {
	if len(m.messagePayload) > 0 {
		return m.messagePayload, true
	}
	return m.shortMessage, false
}

func (m *smBody) marshal() ([]byte, error) {
	if len(m.shortMessage) > 0 && len(m.messagePayload) > 0 {
		return nil, &MutualExclusionError{PDU: m.id}
	}
	var dst []byte
	serviceType, err := newCString("service_type", 1, 6, m.ServiceType)
	if err != nil {
		return nil, wrapField(m.id, "service_type", err)
	}
	dst = encodeCString(dst, serviceType)
	dst = append(dst, byte(m.Source.TON), byte(m.Source.NPI))
	srcAddr, err := newCString("source_addr", 1, 21, m.Source.Addr)
	if err != nil {
		return nil, wrapField(m.id, "source_addr", err)
	}
	dst = encodeCString(dst, srcAddr)
	dst = append(dst, byte(m.Dest.TON), byte(m.Dest.NPI))
	destAddr, err := newCString("destination_addr", 1, 21, m.Dest.Addr)
	if err != nil {
		return nil, wrapField(m.id, "destination_addr", err)
	}
	dst = encodeCString(dst, destAddr)
	dst = append(dst, m.ESMClass, m.ProtocolID, m.PriorityFlag)
	sched, err := wire.NewEmptyOrFullCString("schedule_delivery_time", 17, m.ScheduleDeliveryTime)
	if err != nil {
		return nil, wrapField(m.id, "schedule_delivery_time", err)
	}
	dst = wire.EncodeEmptyOrFullCString(dst, sched)
	validity, err := wire.NewEmptyOrFullCString("validity_period", 17, m.ValidityPeriod)
	if err != nil {
		return nil, wrapField(m.id, "validity_period", err)
	}
	dst = wire.EncodeEmptyOrFullCString(dst, validity)
	dst = append(dst, m.RegisteredDelivery, m.ReplaceIfPresentFlag, m.DataCoding, m.SMDefaultMsgID)
	dst = append(dst, byte(len(m.shortMessage)))
	dst = append(dst, m.shortMessage...)
	if len(m.messagePayload) > 0 {
		t, err := tlv.New(tlv.TagMessagePayload, m.messagePayload)
		if err != nil {
			return nil, wrapField(m.id, "message_payload", err)
		}
		dst = t.Encode(dst)
	}
	dst = tlv.EncodeAll(dst, m.TLVs)
	return dst, nil
}

func (m *smBody) unmarshal(buf []byte) error {
	c := newCursor(buf)
	serviceType, err := c.ReadCString("service_type", 1, 6)
	if err != nil {
		return wrapField(m.id, "service_type", err)
	}
	srcTON, err := c.ReadUint8("source_addr_ton")
	if err != nil {
		return wrapField(m.id, "source_addr_ton", err)
	}
	srcNPI, err := c.ReadUint8("source_addr_npi")
	if err != nil {
		return wrapField(m.id, "source_addr_npi", err)
	}
	srcAddr, err := c.ReadCString("source_addr", 1, 21)
	if err != nil {
		return wrapField(m.id, "source_addr", err)
	}
	dstTON, err := c.ReadUint8("dest_addr_ton")
	if err != nil {
		return wrapField(m.id, "dest_addr_ton", err)
	}
	dstNPI, err := c.ReadUint8("dest_addr_npi")
	if err != nil {
		return wrapField(m.id, "dest_addr_npi", err)
	}
	dstAddr, err := c.ReadCString("destination_addr", 1, 21)
	if err != nil {
		return wrapField(m.id, "destination_addr", err)
	}
	esmClass, err := c.ReadUint8("esm_class")
	if err != nil {
		return wrapField(m.id, "esm_class", err)
	}
	protocolID, err := c.ReadUint8("protocol_id")
	if err != nil {
		return wrapField(m.id, "protocol_id", err)
	}
	priority, err := c.ReadUint8("priority_flag")
	if err != nil {
		return wrapField(m.id, "priority_flag", err)
	}
	sched, err := c.ReadEmptyOrFullCString("schedule_delivery_time", 17)
	if err != nil {
		return wrapField(m.id, "schedule_delivery_time", err)
	}
	validity, err := c.ReadEmptyOrFullCString("validity_period", 17)
	if err != nil {
		return wrapField(m.id, "validity_period", err)
	}
	registeredDelivery, err := c.ReadUint8("registered_delivery")
	if err != nil {
		return wrapField(m.id, "registered_delivery", err)
	}
	replaceFlag, err := c.ReadUint8("replace_if_present_flag")
	if err != nil {
		return wrapField(m.id, "replace_if_present_flag", err)
	}
	dataCoding, err := c.ReadUint8("data_coding")
	if err != nil {
		return wrapField(m.id, "data_coding", err)
	}
	defMsgID, err := c.ReadUint8("sm_default_msg_id")
	if err != nil {
		return wrapField(m.id, "sm_default_msg_id", err)
	}
	smLength, err := c.ReadUint8("sm_length")
	if err != nil {
		return wrapField(m.id, "sm_length", err)
	}
	shortMessage, err := c.ReadOctetString("short_message", 0, 254, int(smLength))
	if err != nil {
		return wrapField(m.id, "short_message", err)
	}
	m.ServiceType = serviceType.String()
	m.Source = Address{TON: TypeOfNumber(srcTON), NPI: NumberingPlanIndicator(srcNPI), Addr: srcAddr.String()}
	m.Dest = Address{TON: TypeOfNumber(dstTON), NPI: NumberingPlanIndicator(dstNPI), Addr: dstAddr.String()}
	m.ESMClass = esmClass
	m.ProtocolID = protocolID
	m.PriorityFlag = priority
	if sched.Present() {
		m.ScheduleDeliveryTime = sched.String()
	}
	if validity.Present() {
		m.ValidityPeriod = validity.String()
	}
	m.RegisteredDelivery = registeredDelivery
	m.ReplaceIfPresentFlag = replaceFlag
	m.DataCoding = dataCoding
	m.SMDefaultMsgID = defMsgID
	m.shortMessage = shortMessage.Bytes()

	if c.Remaining() > 0 {
		tlvs, err := tlv.DecodeAll(c.Rest())
		if err != nil {
			return wrapField(m.id, "optional_parameters", err)
		}
		if payload, ok := tlv.Find(tlvs, tlv.TagMessagePayload); ok {
			m.messagePayload = payload.Raw()
		}
		m.TLVs = tlvs
	}
	if len(m.shortMessage) > 0 && len(m.messagePayload) > 0 {
		return &MutualExclusionError{PDU: m.id}
	}
	return nil
}

// messageIDResp is the shared shape of submit_sm_resp, deliver_sm_resp
// and data_sm_resp: message_id followed by optional TLVs.
type messageIDResp struct {
	id        CommandID
	MessageID string // CString<1,65>
	TLVs      []tlv.TLV
}

func (r *messageIDResp) marshal() ([]byte, error) {
	messageID, err := newCString("message_id", 1, 65, r.MessageID)
	if err != nil {
		return nil, wrapField(r.id, "message_id", err)
	}
	dst := encodeCString(nil, messageID)
	return tlv.EncodeAll(dst, r.TLVs), nil
}

func (r *messageIDResp) unmarshal(buf []byte) error {
	c := newCursor(buf)
	messageID, err := c.ReadCString("message_id", 1, 65)
	if err != nil {
		return wrapField(r.id, "message_id", err)
	}
	r.MessageID = messageID.String()
	if c.Remaining() == 0 {
		return nil
	}
	tlvs, err := tlv.DecodeAll(c.Rest())
	if err != nil {
		return wrapField(r.id, "optional_parameters", err)
	}
	r.TLVs = tlvs
	return nil
}
