package pdu

import "github.com/Ucell-first/smppv5/tlv"

// DataSM carries a message entirely via the message_payload TLV; it
// has no inline short_message/sm_length fields.
type DataSM struct {
	ServiceType        string // CString<1,6>
	Source             Address
	Dest               Address
	ESMClass           byte
	RegisteredDelivery byte
	DataCoding         byte
	TLVs               []tlv.TLV
}

func NewDataSM(serviceType string, source, dest Address, esmClass, registeredDelivery, dataCoding byte) *DataSM {
	return &DataSM{ServiceType: serviceType, Source: source, Dest: dest, ESMClass: esmClass, RegisteredDelivery: registeredDelivery, DataCoding: dataCoding}
}

func (d *DataSM) CommandID() CommandID { return DataSmID }

func (d *DataSM) MarshalBody() ([]byte, error) {
	serviceType, err := newCString("service_type", 1, 6, d.ServiceType)
	if err != nil {
		return nil, wrapField(DataSmID, "service_type", err)
	}
	dst := encodeCString(nil, serviceType)
	srcAddrEnc, err := d.Source.encode(nil)
	if err != nil {
		return nil, wrapField(DataSmID, "source_addr", err)
	}
	dst = append(dst, srcAddrEnc...)
	dstAddrEnc, err := d.Dest.encode(nil)
	if err != nil {
		return nil, wrapField(DataSmID, "destination_addr", err)
	}
	dst = append(dst, dstAddrEnc...)
	dst = append(dst, d.ESMClass, d.RegisteredDelivery, d.DataCoding)
	return tlv.EncodeAll(dst, d.TLVs), nil
}

func (d *DataSM) UnmarshalBody(buf []byte) error {
	c := newCursor(buf)
	serviceType, err := c.ReadCString("service_type", 1, 6)
	if err != nil {
		return wrapField(DataSmID, "service_type", err)
	}
	source, err := decodeAddress(c, "source_addr")
	if err != nil {
		return wrapField(DataSmID, "source_addr", err)
	}
	dest, err := decodeAddress(c, "destination_addr")
	if err != nil {
		return wrapField(DataSmID, "destination_addr", err)
	}
	esmClass, err := c.ReadUint8("esm_class")
	if err != nil {
		return wrapField(DataSmID, "esm_class", err)
	}
	registeredDelivery, err := c.ReadUint8("registered_delivery")
	if err != nil {
		return wrapField(DataSmID, "registered_delivery", err)
	}
	dataCoding, err := c.ReadUint8("data_coding")
	if err != nil {
		return wrapField(DataSmID, "data_coding", err)
	}
	d.ServiceType = serviceType.String()
	d.Source = source
	d.Dest = dest
	d.ESMClass = esmClass
	d.RegisteredDelivery = registeredDelivery
	d.DataCoding = dataCoding
	if c.Remaining() > 0 {
		tlvs, err := tlv.DecodeAll(c.Rest())
		if err != nil {
			return wrapField(DataSmID, "optional_parameters", err)
		}
		d.TLVs = tlvs
	}
	return nil
}

// MessagePayload returns the message_payload TLV's content, if set.
func (d *DataSM) MessagePayload() ([]byte, bool) {
	t, ok := tlv.Find(d.TLVs, tlv.TagMessagePayload)
	if !ok {
		return nil, false
	}
	return t.Raw(), true
}

// SetMessagePayload replaces the message_payload TLV.
func (d *DataSM) SetMessagePayload(b []byte) error {
	t, err := tlv.New(tlv.TagMessagePayload, b)
	if err != nil {
		return wrapField(DataSmID, "message_payload", err)
	}
	for i, existing := range d.TLVs {
		if existing.Tag == tlv.TagMessagePayload {
			d.TLVs[i] = t
			return nil
		}
	}
	d.TLVs = append(d.TLVs, t)
	return nil
}

// DataSMResp acknowledges data_sm with an SMSC-assigned message_id.
type DataSMResp struct{ messageIDResp }

func NewDataSMResp(messageID string) *DataSMResp {
	return &DataSMResp{messageIDResp{id: DataSmRespID, MessageID: messageID}}
}

func (d *DataSMResp) CommandID() CommandID        { return DataSmRespID }
func (d *DataSMResp) MarshalBody() ([]byte, error) { return d.messageIDResp.marshal() }
func (d *DataSMResp) UnmarshalBody(buf []byte) error {
	d.messageIDResp.id = DataSmRespID
	return d.messageIDResp.unmarshal(buf)
}
