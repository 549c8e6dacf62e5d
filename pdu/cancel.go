package pdu

// CancelSM cancels a previously submitted short message still queued
// at the SMSC.
type CancelSM struct {
	ServiceType string // CString<1,6>
	MessageID   string // CString<1,65>
	Source      Address
	Dest        Address
}

func NewCancelSM(serviceType, messageID string, source, dest Address) *CancelSM {
	return &CancelSM{ServiceType: serviceType, MessageID: messageID, Source: source, Dest: dest}
}

func (cs *CancelSM) CommandID() CommandID { return CancelSmID }

func (cs *CancelSM) MarshalBody() ([]byte, error) {
	serviceType, err := newCString("service_type", 1, 6, cs.ServiceType)
	if err != nil {
		return nil, wrapField(CancelSmID, "service_type", err)
	}
	dst := encodeCString(nil, serviceType)
	messageID, err := newCString("message_id", 1, 65, cs.MessageID)
	if err != nil {
		return nil, wrapField(CancelSmID, "message_id", err)
	}
	dst = encodeCString(dst, messageID)
	sourceEnc, err := cs.Source.encode(nil)
	if err != nil {
		return nil, wrapField(CancelSmID, "source_addr", err)
	}
	dst = append(dst, sourceEnc...)
	destEnc, err := cs.Dest.encode(nil)
	if err != nil {
		return nil, wrapField(CancelSmID, "destination_addr", err)
	}
	return append(dst, destEnc...), nil
}

func (cs *CancelSM) UnmarshalBody(buf []byte) error {
	c := newCursor(buf)
	serviceType, err := c.ReadCString("service_type", 1, 6)
	if err != nil {
		return wrapField(CancelSmID, "service_type", err)
	}
	messageID, err := c.ReadCString("message_id", 1, 65)
	if err != nil {
		return wrapField(CancelSmID, "message_id", err)
	}
	source, err := decodeAddress(c, "source_addr")
	if err != nil {
		return wrapField(CancelSmID, "source_addr", err)
	}
	dest, err := decodeAddress(c, "destination_addr")
	if err != nil {
		return wrapField(CancelSmID, "destination_addr", err)
	}
	cs.ServiceType = serviceType.String()
	cs.MessageID = messageID.String()
	cs.Source = source
	cs.Dest = dest
	return nil
}

// CancelSMResp acknowledges cancel_sm; SMPP defines no body fields for
// it beyond the header.
type CancelSMResp struct{}

func (cs *CancelSMResp) CommandID() CommandID          { return CancelSmRespID }
func (cs *CancelSMResp) MarshalBody() ([]byte, error)   { return nil, nil }
func (cs *CancelSMResp) UnmarshalBody(buf []byte) error { return nil }
