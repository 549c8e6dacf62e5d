package pdu

// DeliverSM is an SMSC-to-ESME short message delivery, including
// delivery receipts. Field layout is identical to submit_sm.
type DeliverSM struct{ smBody }

func NewDeliverSM(serviceType string, source, dest Address, esmClass, protocolID, priority byte) *DeliverSM {
	return &DeliverSM{smBody{id: DeliverSmID, ServiceType: serviceType, Source: source, Dest: dest, ESMClass: esmClass, ProtocolID: protocolID, PriorityFlag: priority}}
}

func (d *DeliverSM) CommandID() CommandID        { return DeliverSmID }
func (d *DeliverSM) MarshalBody() ([]byte, error) { return d.smBody.marshal() }
func (d *DeliverSM) UnmarshalBody(buf []byte) error {
	d.smBody.id = DeliverSmID
	return d.smBody.unmarshal(buf)
}

// DeliverSMResp acknowledges deliver_sm. message_id is conventionally
// empty for delivery acks.
type DeliverSMResp struct{ messageIDResp }

func NewDeliverSMResp(messageID string) *DeliverSMResp {
	return &DeliverSMResp{messageIDResp{id: DeliverSmRespID, MessageID: messageID}}
}

func (d *DeliverSMResp) CommandID() CommandID        { return DeliverSmRespID }
func (d *DeliverSMResp) MarshalBody() ([]byte, error) { return d.messageIDResp.marshal() }
func (d *DeliverSMResp) UnmarshalBody(buf []byte) error {
	d.messageIDResp.id = DeliverSmRespID
	return d.messageIDResp.unmarshal(buf)
}
