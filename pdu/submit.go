package pdu

// SubmitSM is an ESME-to-SMSC short message submission.
type SubmitSM struct{ smBody }

// NewSubmitSM builds a submit_sm with the given mandatory fields; the
// message body is set afterwards via SetShortMessage or
// SetMessagePayload.
func NewSubmitSM(serviceType string, source, dest Address, esmClass, protocolID, priority byte) *SubmitSM {
	return &SubmitSM{smBody{id: SubmitSmID, ServiceType: serviceType, Source: source, Dest: dest, ESMClass: esmClass, ProtocolID: protocolID, PriorityFlag: priority}}
}

func (s *SubmitSM) CommandID() CommandID        { return SubmitSmID }
func (s *SubmitSM) MarshalBody() ([]byte, error) { return s.smBody.marshal() }
func (s *SubmitSM) UnmarshalBody(buf []byte) error {
	s.smBody.id = SubmitSmID
	return s.smBody.unmarshal(buf)
}

// SubmitSMResp acknowledges submit_sm with an SMSC-assigned message_id.
type SubmitSMResp struct{ messageIDResp }

func NewSubmitSMResp(messageID string) *SubmitSMResp {
	return &SubmitSMResp{messageIDResp{id: SubmitSmRespID, MessageID: messageID}}
}

func (s *SubmitSMResp) CommandID() CommandID        { return SubmitSmRespID }
func (s *SubmitSMResp) MarshalBody() ([]byte, error) { return s.messageIDResp.marshal() }
func (s *SubmitSMResp) UnmarshalBody(buf []byte) error {
	s.messageIDResp.id = SubmitSmRespID
	return s.messageIDResp.unmarshal(buf)
}
