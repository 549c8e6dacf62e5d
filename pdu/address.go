package pdu

// TypeOfNumber and NumberingPlanIndicator are the addr_ton/addr_npi
// mandatory parameters shared by almost every PDU with an address.
type TypeOfNumber byte

const (
	TONUnknown          TypeOfNumber = 0x00
	TONInternational    TypeOfNumber = 0x01
	TONNational         TypeOfNumber = 0x02
	TONNetworkSpecific  TypeOfNumber = 0x03
	TONSubscriberNumber TypeOfNumber = 0x04
	TONAlphanumeric     TypeOfNumber = 0x05
	TONAbbreviated      TypeOfNumber = 0x06
)

type NumberingPlanIndicator byte

const (
	NPIUnknown    NumberingPlanIndicator = 0x00
	NPIISDN       NumberingPlanIndicator = 0x01
	NPIData       NumberingPlanIndicator = 0x03
	NPITelex      NumberingPlanIndicator = 0x04
	NPILandMobile NumberingPlanIndicator = 0x06
	NPINational   NumberingPlanIndicator = 0x08
	NPIPrivate    NumberingPlanIndicator = 0x09
	NPIERMES      NumberingPlanIndicator = 0x0A
	NPIInternet   NumberingPlanIndicator = 0x0E
	NPIWAPClient  NumberingPlanIndicator = 0x12
)

// Address is the (ton, npi, addr) triple used by source/destination
// addressing across nearly every PDU.
type Address struct {
	TON  TypeOfNumber
	NPI  NumberingPlanIndicator
	Addr string // CString<1,21>
}

func (a Address) encode(dst []byte) ([]byte, error) {
	cs, err := newCString("addr", 1, 21, a.Addr)
	if err != nil {
		return nil, err
	}
	dst = append(dst, byte(a.TON), byte(a.NPI))
	return encodeCString(dst, cs), nil
}

func decodeAddress(c *cursor, field string) (Address, error) {
	ton, err := c.ReadUint8(field + ".ton")
	if err != nil {
		return Address{}, err
	}
	npi, err := c.ReadUint8(field + ".npi")
	if err != nil {
		return Address{}, err
	}
	addr, err := c.ReadCString(field+".addr", 1, 21)
	if err != nil {
		return Address{}, err
	}
	return Address{TON: TypeOfNumber(ton), NPI: NumberingPlanIndicator(npi), Addr: addr.String()}, nil
}

// DestFlag discriminates the submit_multi dest_address union (spec
// §4.2's "key" annotation — the clearest real example of it in the
// v5 wire format).
type DestFlag byte

const (
	DestFlagSMEAddress        DestFlag = 0x01
	DestFlagDistributionList  DestFlag = 0x02
)

// DestAddress is a key-discriminated union: either a plain SME address
// or a distribution list name, selected by a leading DestFlag byte.
type DestAddress struct {
	Flag             DestFlag
	SME              Address // valid iff Flag == DestFlagSMEAddress
	DistributionList string  // CString<1,21>, valid iff Flag == DestFlagDistributionList
}

func (d DestAddress) encode(dst []byte) ([]byte, error) {
	dst = append(dst, byte(d.Flag))
	switch d.Flag {
	case DestFlagSMEAddress:
		return d.SME.encode(dst)
	case DestFlagDistributionList:
		cs, err := newCString("dl_name", 1, 21, d.DistributionList)
		if err != nil {
			return nil, err
		}
		return encodeCString(dst, cs), nil
	default:
		return nil, &UnsupportedKeyError{Field: "dest_address.dest_flag", Key: uint32(d.Flag)}
	}
}

func decodeDestAddress(c *cursor) (DestAddress, error) {
	flag, err := c.ReadUint8("dest_address.dest_flag")
	if err != nil {
		return DestAddress{}, err
	}
	switch DestFlag(flag) {
	case DestFlagSMEAddress:
		addr, err := decodeAddress(c, "dest_address.sme")
		if err != nil {
			return DestAddress{}, err
		}
		return DestAddress{Flag: DestFlagSMEAddress, SME: addr}, nil
	case DestFlagDistributionList:
		name, err := c.ReadCString("dest_address.dl_name", 1, 21)
		if err != nil {
			return DestAddress{}, err
		}
		return DestAddress{Flag: DestFlagDistributionList, DistributionList: name.String()}, nil
	default:
		return DestAddress{}, &UnsupportedKeyError{Field: "dest_address.dest_flag", Key: uint32(flag)}
	}
}
