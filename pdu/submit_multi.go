package pdu

import (
	"github.com/Ucell-first/smppv5/tlv"
	"github.com/Ucell-first/smppv5/wire"
)

// SubmitMulti fans a single message out to up to 255 destinations, each
// either a plain SME address or a distribution list name.
type SubmitMulti struct {
	ServiceType          string // CString<1,6>
	Source               Address
	Dests                wire.BoundedVec[DestAddress] // max 255
	ESMClass             byte
	ProtocolID           byte
	PriorityFlag         byte
	ScheduleDeliveryTime string // EmptyOrFullCString<17>
	ValidityPeriod       string // EmptyOrFullCString<17>
	RegisteredDelivery   byte
	ReplaceIfPresentFlag byte
	DataCoding           byte
	SMDefaultMsgID       byte
	ShortMessage         []byte // mutually exclusive with MessagePayload
	MessagePayload       []byte
	TLVs                 []tlv.TLV
}

// NewSubmitMulti builds a submit_multi with up to 255 destinations.
func NewSubmitMulti(serviceType string, source Address, dests []DestAddress) (*SubmitMulti, error) {
	v, err := wire.NewBoundedVec("dest_address_list", 255, dests)
	if err != nil {
		return nil, wrapField(SubmitMultiID, "dest_address_list", err)
	}
	return &SubmitMulti{ServiceType: serviceType, Source: source, Dests: v}, nil
}

func (s *SubmitMulti) CommandID() CommandID { return SubmitMultiID }

func (s *SubmitMulti) MarshalBody() ([]byte, error) {
	if len(s.ShortMessage) > 0 && len(s.MessagePayload) > 0 {
		return nil, &MutualExclusionError{PDU: SubmitMultiID}
	}
	serviceType, err := newCString("service_type", 1, 6, s.ServiceType)
	if err != nil {
		return nil, wrapField(SubmitMultiID, "service_type", err)
	}
	dst := encodeCString(nil, serviceType)
	sourceEnc, err := s.Source.encode(nil)
	if err != nil {
		return nil, wrapField(SubmitMultiID, "source_addr", err)
	}
	dst = append(dst, sourceEnc...)
	dst = append(dst, byte(s.Dests.Len()))
	for _, d := range s.Dests.Items() {
		dst, err = d.encode(dst)
		if err != nil {
			return nil, wrapField(SubmitMultiID, "dest_address_list", err)
		}
	}
	dst = append(dst, s.ESMClass, s.ProtocolID, s.PriorityFlag)
	sched, err := wire.NewEmptyOrFullCString("schedule_delivery_time", 17, s.ScheduleDeliveryTime)
	if err != nil {
		return nil, wrapField(SubmitMultiID, "schedule_delivery_time", err)
	}
	dst = wire.EncodeEmptyOrFullCString(dst, sched)
	validity, err := wire.NewEmptyOrFullCString("validity_period", 17, s.ValidityPeriod)
	if err != nil {
		return nil, wrapField(SubmitMultiID, "validity_period", err)
	}
	dst = wire.EncodeEmptyOrFullCString(dst, validity)
	dst = append(dst, s.RegisteredDelivery, s.ReplaceIfPresentFlag, s.DataCoding, s.SMDefaultMsgID)
	dst = append(dst, byte(len(s.ShortMessage)))
	dst = append(dst, s.ShortMessage...)
	if len(s.MessagePayload) > 0 {
		t, err := tlv.New(tlv.TagMessagePayload, s.MessagePayload)
		if err != nil {
			return nil, wrapField(SubmitMultiID, "message_payload", err)
		}
		dst = t.Encode(dst)
	}
	return tlv.EncodeAll(dst, s.TLVs), nil
}

func (s *SubmitMulti) UnmarshalBody(buf []byte) error {
	c := newCursor(buf)
	serviceType, err := c.ReadCString("service_type", 1, 6)
	if err != nil {
		return wrapField(SubmitMultiID, "service_type", err)
	}
	source, err := decodeAddress(c, "source_addr")
	if err != nil {
		return wrapField(SubmitMultiID, "source_addr", err)
	}
	numberOfDests, err := c.ReadUint8("number_of_dests")
	if err != nil {
		return wrapField(SubmitMultiID, "number_of_dests", err)
	}
	dests := make([]DestAddress, 0, numberOfDests)
	for i := 0; i < int(numberOfDests); i++ {
		d, err := decodeDestAddress(c)
		if err != nil {
			return wrapField(SubmitMultiID, "dest_address_list", err)
		}
		dests = append(dests, d)
	}
	destVec, err := wire.NewBoundedVec("dest_address_list", 255, dests)
	if err != nil {
		return wrapField(SubmitMultiID, "dest_address_list", err)
	}
	esmClass, err := c.ReadUint8("esm_class")
	if err != nil {
		return wrapField(SubmitMultiID, "esm_class", err)
	}
	protocolID, err := c.ReadUint8("protocol_id")
	if err != nil {
		return wrapField(SubmitMultiID, "protocol_id", err)
	}
	priority, err := c.ReadUint8("priority_flag")
	if err != nil {
		return wrapField(SubmitMultiID, "priority_flag", err)
	}
	sched, err := c.ReadEmptyOrFullCString("schedule_delivery_time", 17)
	if err != nil {
		return wrapField(SubmitMultiID, "schedule_delivery_time", err)
	}
	validity, err := c.ReadEmptyOrFullCString("validity_period", 17)
	if err != nil {
		return wrapField(SubmitMultiID, "validity_period", err)
	}
	registeredDelivery, err := c.ReadUint8("registered_delivery")
	if err != nil {
		return wrapField(SubmitMultiID, "registered_delivery", err)
	}
	replaceFlag, err := c.ReadUint8("replace_if_present_flag")
	if err != nil {
		return wrapField(SubmitMultiID, "replace_if_present_flag", err)
	}
	dataCoding, err := c.ReadUint8("data_coding")
	if err != nil {
		return wrapField(SubmitMultiID, "data_coding", err)
	}
	defMsgID, err := c.ReadUint8("sm_default_msg_id")
	if err != nil {
		return wrapField(SubmitMultiID, "sm_default_msg_id", err)
	}
	smLength, err := c.ReadUint8("sm_length")
	if err != nil {
		return wrapField(SubmitMultiID, "sm_length", err)
	}
	shortMessage, err := c.ReadOctetString("short_message", 0, 254, int(smLength))
	if err != nil {
		return wrapField(SubmitMultiID, "short_message", err)
	}
	s.ServiceType = serviceType.String()
	s.Source = source
	s.Dests = destVec
	s.ESMClass = esmClass
	s.ProtocolID = protocolID
	s.PriorityFlag = priority
	if sched.Present() {
		s.ScheduleDeliveryTime = sched.String()
	}
	if validity.Present() {
		s.ValidityPeriod = validity.String()
	}
	s.RegisteredDelivery = registeredDelivery
	s.ReplaceIfPresentFlag = replaceFlag
	s.DataCoding = dataCoding
	s.SMDefaultMsgID = defMsgID
	s.ShortMessage = shortMessage.Bytes()
	if c.Remaining() > 0 {
		tlvs, err := tlv.DecodeAll(c.Rest())
		if err != nil {
			return wrapField(SubmitMultiID, "optional_parameters", err)
		}
		if payload, ok := tlv.Find(tlvs, tlv.TagMessagePayload); ok {
			s.MessagePayload = payload.Raw()
		}
		s.TLVs = tlvs
	}
	if len(s.ShortMessage) > 0 && len(s.MessagePayload) > 0 {
		return &MutualExclusionError{PDU: SubmitMultiID}
	}
	return nil
}

// UnsuccessfulDest reports one destination submit_multi could not
// reach.
type UnsuccessfulDest struct {
	Addr        Address
	ErrorStatus Status
}

// SubmitMultiResp acknowledges submit_multi with a message_id and the
// list of destinations that failed.
type SubmitMultiResp struct {
	MessageID  string // CString<1,65>
	Unsuccess  []UnsuccessfulDest
}

func NewSubmitMultiResp(messageID string, unsuccess []UnsuccessfulDest) *SubmitMultiResp {
	return &SubmitMultiResp{MessageID: messageID, Unsuccess: unsuccess}
}

func (s *SubmitMultiResp) CommandID() CommandID { return SubmitMultiRespID }

func (s *SubmitMultiResp) MarshalBody() ([]byte, error) {
	if len(s.Unsuccess) > 255 {
		return nil, wrapField(SubmitMultiRespID, "no_unsuccess", wire.ErrTooManyElements)
	}
	messageID, err := newCString("message_id", 1, 65, s.MessageID)
	if err != nil {
		return nil, wrapField(SubmitMultiRespID, "message_id", err)
	}
	dst := encodeCString(nil, messageID)
	dst = append(dst, byte(len(s.Unsuccess)))
	for _, u := range s.Unsuccess {
		enc, err := u.Addr.encode(dst)
		if err != nil {
			return nil, wrapField(SubmitMultiRespID, "unsuccess_sme", err)
		}
		dst = wire.PutUint32(enc, uint32(u.ErrorStatus))
	}
	return dst, nil
}

func (s *SubmitMultiResp) UnmarshalBody(buf []byte) error {
	c := newCursor(buf)
	messageID, err := c.ReadCString("message_id", 1, 65)
	if err != nil {
		return wrapField(SubmitMultiRespID, "message_id", err)
	}
	noUnsuccess, err := c.ReadUint8("no_unsuccess")
	if err != nil {
		return wrapField(SubmitMultiRespID, "no_unsuccess", err)
	}
	unsuccess := make([]UnsuccessfulDest, 0, noUnsuccess)
	for i := 0; i < int(noUnsuccess); i++ {
		addr, err := decodeAddress(c, "unsuccess_sme")
		if err != nil {
			return wrapField(SubmitMultiRespID, "unsuccess_sme", err)
		}
		status, err := c.ReadUint32("unsuccess_sme.error_status_code")
		if err != nil {
			return wrapField(SubmitMultiRespID, "unsuccess_sme.error_status_code", err)
		}
		unsuccess = append(unsuccess, UnsuccessfulDest{Addr: addr, ErrorStatus: Status(status)})
	}
	s.MessageID = messageID.String()
	s.Unsuccess = unsuccess
	return nil
}
