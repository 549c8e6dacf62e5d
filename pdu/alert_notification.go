package pdu

import "github.com/Ucell-first/smppv5/tlv"

// AlertNotificationPDU tells an ESME that a mobile subscriber it
// previously tried to reach has become available. It defines no
// response.
type AlertNotificationPDU struct {
	Source Address
	ESME   Address
	TLVs   []tlv.TLV // typically ms_availability_status
}

func NewAlertNotification(source, esme Address) *AlertNotificationPDU {
	return &AlertNotificationPDU{Source: source, ESME: esme}
}

func (a *AlertNotificationPDU) CommandID() CommandID { return AlertNotificationID }

func (a *AlertNotificationPDU) MarshalBody() ([]byte, error) {
	sourceEnc, err := a.Source.encode(nil)
	if err != nil {
		return nil, wrapField(AlertNotificationID, "source_addr", err)
	}
	dst := sourceEnc
	esmeEnc, err := a.ESME.encode(nil)
	if err != nil {
		return nil, wrapField(AlertNotificationID, "esme_addr", err)
	}
	dst = append(dst, esmeEnc...)
	return tlv.EncodeAll(dst, a.TLVs), nil
}

func (a *AlertNotificationPDU) UnmarshalBody(buf []byte) error {
	c := newCursor(buf)
	source, err := decodeAddress(c, "source_addr")
	if err != nil {
		return wrapField(AlertNotificationID, "source_addr", err)
	}
	esme, err := decodeAddress(c, "esme_addr")
	if err != nil {
		return wrapField(AlertNotificationID, "esme_addr", err)
	}
	a.Source = source
	a.ESME = esme
	if c.Remaining() > 0 {
		tlvs, err := tlv.DecodeAll(c.Rest())
		if err != nil {
			return wrapField(AlertNotificationID, "optional_parameters", err)
		}
		a.TLVs = tlvs
	}
	return nil
}
