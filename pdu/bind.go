package pdu

import "github.com/Ucell-first/smppv5/tlv"

// bindRequest is the common shape of bind_transmitter/receiver/
// transceiver: system_id, password, system_type, interface_version,
// addr_ton, addr_npi, address_range, in that order.
type bindRequest struct {
	id               CommandID
	SystemID         string // CString<1,16>
	Password         string // CString<1,9>
	SystemType       string // CString<1,13>
	InterfaceVersion byte
	AddrTON          TypeOfNumber
	AddrNPI          NumberingPlanIndicator
	AddressRange     string // CString<1,41>
}

func (b *bindRequest) CommandID() CommandID { return b.id }

func (b *bindRequest) MarshalBody() ([]byte, error) {
	var dst []byte
	systemID, err := newCString("system_id", 1, 16, b.SystemID)
	if err != nil {
		return nil, wrapField(b.id, "system_id", err)
	}
	password, err := newCString("password", 1, 9, b.Password)
	if err != nil {
		return nil, wrapField(b.id, "password", err)
	}
	systemType, err := newCString("system_type", 1, 13, b.SystemType)
	if err != nil {
		return nil, wrapField(b.id, "system_type", err)
	}
	addressRange, err := newCString("address_range", 1, 41, b.AddressRange)
	if err != nil {
		return nil, wrapField(b.id, "address_range", err)
	}
	dst = encodeCString(dst, systemID)
	dst = encodeCString(dst, password)
	dst = encodeCString(dst, systemType)
	dst = append(dst, b.InterfaceVersion, byte(b.AddrTON), byte(b.AddrNPI))
	dst = encodeCString(dst, addressRange)
	return dst, nil
}

func (b *bindRequest) UnmarshalBody(buf []byte) error {
	c := newCursor(buf)
	systemID, err := c.ReadCString("system_id", 1, 16)
	if err != nil {
		return wrapField(b.id, "system_id", err)
	}
	password, err := c.ReadCString("password", 1, 9)
	if err != nil {
		return wrapField(b.id, "password", err)
	}
	systemType, err := c.ReadCString("system_type", 1, 13)
	if err != nil {
		return wrapField(b.id, "system_type", err)
	}
	ifVer, err := c.ReadUint8("interface_version")
	if err != nil {
		return wrapField(b.id, "interface_version", err)
	}
	ton, err := c.ReadUint8("addr_ton")
	if err != nil {
		return wrapField(b.id, "addr_ton", err)
	}
	npi, err := c.ReadUint8("addr_npi")
	if err != nil {
		return wrapField(b.id, "addr_npi", err)
	}
	addressRange, err := c.ReadCString("address_range", 1, 41)
	if err != nil {
		return wrapField(b.id, "address_range", err)
	}
	b.SystemID = systemID.String()
	b.Password = password.String()
	b.SystemType = systemType.String()
	b.InterfaceVersion = ifVer
	b.AddrTON = TypeOfNumber(ton)
	b.AddrNPI = NumberingPlanIndicator(npi)
	b.AddressRange = addressRange.String()
	return nil
}

// BindTransmitter requests the Tx role.
type BindTransmitter struct{ bindRequest }

// BindReceiver requests the Rx role.
type BindReceiver struct{ bindRequest }

// BindTransceiver requests the Trx role.
type BindTransceiver struct{ bindRequest }

// NewBindTransmitter builds a bind_transmitter body.
func NewBindTransmitter(systemID, password, systemType string, ifVer byte, ton TypeOfNumber, npi NumberingPlanIndicator, addressRange string) *BindTransmitter {
	return &BindTransmitter{bindRequest{id: BindTransmitterID, SystemID: systemID, Password: password, SystemType: systemType, InterfaceVersion: ifVer, AddrTON: ton, AddrNPI: npi, AddressRange: addressRange}}
}

// NewBindReceiver builds a bind_receiver body.
func NewBindReceiver(systemID, password, systemType string, ifVer byte, ton TypeOfNumber, npi NumberingPlanIndicator, addressRange string) *BindReceiver {
	return &BindReceiver{bindRequest{id: BindReceiverID, SystemID: systemID, Password: password, SystemType: systemType, InterfaceVersion: ifVer, AddrTON: ton, AddrNPI: npi, AddressRange: addressRange}}
}

// NewBindTransceiver builds a bind_transceiver body.
func NewBindTransceiver(systemID, password, systemType string, ifVer byte, ton TypeOfNumber, npi NumberingPlanIndicator, addressRange string) *BindTransceiver {
	return &BindTransceiver{bindRequest{id: BindTransceiverID, SystemID: systemID, Password: password, SystemType: systemType, InterfaceVersion: ifVer, AddrTON: ton, AddrNPI: npi, AddressRange: addressRange}}
}

func init() {
	// bindRequest.id is set per-constructor above; UnmarshalBody needs
	// it set before decode too, since newBody() allocates a zero value.
}

// UnmarshalBody on the zero value must still know its own command id,
// so each wrapper sets it before delegating.
func (b *BindTransmitter) UnmarshalBody(buf []byte) error {
	b.bindRequest.id = BindTransmitterID
	return b.bindRequest.UnmarshalBody(buf)
}

func (b *BindReceiver) UnmarshalBody(buf []byte) error {
	b.bindRequest.id = BindReceiverID
	return b.bindRequest.UnmarshalBody(buf)
}

func (b *BindTransceiver) UnmarshalBody(buf []byte) error {
	b.bindRequest.id = BindTransceiverID
	return b.bindRequest.UnmarshalBody(buf)
}

func (b *BindTransmitter) CommandID() CommandID { return BindTransmitterID }
func (b *BindReceiver) CommandID() CommandID    { return BindReceiverID }
func (b *BindTransceiver) CommandID() CommandID { return BindTransceiverID }

// bindResponse is the common shape of bind_*_resp: system_id followed
// by an optional sc_interface_version TLV (SMPP v5 addition).
type bindResponse struct {
	id                 CommandID
	SystemID           string // CString<1,16>
	SCInterfaceVersion *byte  // optional TLV 0x0210
}

func (b *bindResponse) MarshalBody() ([]byte, error) {
	systemID, err := newCString("system_id", 1, 16, b.SystemID)
	if err != nil {
		return nil, wrapField(b.id, "system_id", err)
	}
	dst := encodeCString(nil, systemID)
	if b.SCInterfaceVersion != nil {
		t, err := tlv.New(tlv.TagScInterfaceVersion, []byte{*b.SCInterfaceVersion})
		if err != nil {
			return nil, wrapField(b.id, "sc_interface_version", err)
		}
		dst = t.Encode(dst)
	}
	return dst, nil
}

func (b *bindResponse) UnmarshalBody(buf []byte) error {
	c := newCursor(buf)
	systemID, err := c.ReadCString("system_id", 1, 16)
	if err != nil {
		return wrapField(b.id, "system_id", err)
	}
	b.SystemID = systemID.String()
	if c.Remaining() == 0 {
		return nil
	}
	tlvs, err := tlv.DecodeAll(c.Rest())
	if err != nil {
		return wrapField(b.id, "optional_parameters", err)
	}
	if found, ok := tlv.Find(tlvs, tlv.TagScInterfaceVersion); ok {
		if v, ok := found.Value.(tlv.U8); ok {
			b.SCInterfaceVersion = &v.V
		}
	}
	return nil
}

// BindTransmitterResp acknowledges bind_transmitter.
type BindTransmitterResp struct{ bindResponse }

// BindReceiverResp acknowledges bind_receiver.
type BindReceiverResp struct{ bindResponse }

// BindTransceiverResp acknowledges bind_transceiver.
type BindTransceiverResp struct{ bindResponse }

func NewBindTransmitterResp(systemID string) *BindTransmitterResp {
	return &BindTransmitterResp{bindResponse{id: BindTransmitterRespID, SystemID: systemID}}
}
func NewBindReceiverResp(systemID string) *BindReceiverResp {
	return &BindReceiverResp{bindResponse{id: BindReceiverRespID, SystemID: systemID}}
}
func NewBindTransceiverResp(systemID string) *BindTransceiverResp {
	return &BindTransceiverResp{bindResponse{id: BindTransceiverRespID, SystemID: systemID}}
}

func (b *BindTransmitterResp) CommandID() CommandID { return BindTransmitterRespID }
func (b *BindReceiverResp) CommandID() CommandID    { return BindReceiverRespID }
func (b *BindTransceiverResp) CommandID() CommandID { return BindTransceiverRespID }

func (b *BindTransmitterResp) UnmarshalBody(buf []byte) error {
	b.bindResponse.id = BindTransmitterRespID
	return b.bindResponse.UnmarshalBody(buf)
}
func (b *BindReceiverResp) UnmarshalBody(buf []byte) error {
	b.bindResponse.id = BindReceiverRespID
	return b.bindResponse.UnmarshalBody(buf)
}
func (b *BindTransceiverResp) UnmarshalBody(buf []byte) error {
	b.bindResponse.id = BindTransceiverRespID
	return b.bindResponse.UnmarshalBody(buf)
}

// Outbind is an SMSC-initiated session request carrying only
// system_id and password; it defines no response PDU.
type Outbind struct {
	SystemID string // CString<1,16>
	Password string // CString<1,9>
}

func (o *Outbind) CommandID() CommandID { return OutbindID }

func (o *Outbind) MarshalBody() ([]byte, error) {
	systemID, err := newCString("system_id", 1, 16, o.SystemID)
	if err != nil {
		return nil, wrapField(OutbindID, "system_id", err)
	}
	password, err := newCString("password", 1, 9, o.Password)
	if err != nil {
		return nil, wrapField(OutbindID, "password", err)
	}
	dst := encodeCString(nil, systemID)
	return encodeCString(dst, password), nil
}

func (o *Outbind) UnmarshalBody(buf []byte) error {
	c := newCursor(buf)
	systemID, err := c.ReadCString("system_id", 1, 16)
	if err != nil {
		return wrapField(OutbindID, "system_id", err)
	}
	password, err := c.ReadCString("password", 1, 9)
	if err != nil {
		return wrapField(OutbindID, "password", err)
	}
	o.SystemID = systemID.String()
	o.Password = password.String()
	return nil
}
