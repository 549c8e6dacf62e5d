package tlv

import "fmt"

// Known SMPP v5 optional parameter tags. Values and widths follow the
// SMPP Forum v5.0 specification; broadcast_* tags are deliberately
// left out of the registry since broadcast PDUs aren't implemented —
// a broadcast tag decodes as an unknown tag, which is the correct
// behavior for any tag this registry doesn't resolve.
const (
	TagDestAddrSubunit           Tag = 0x0005
	TagDestNetworkType           Tag = 0x0006
	TagDestBearerType            Tag = 0x0007
	TagDestTelematicsID          Tag = 0x0008
	TagSourceAddrSubunit         Tag = 0x000D
	TagSourceNetworkType         Tag = 0x000E
	TagSourceBearerType          Tag = 0x000F
	TagSourceTelematicsID        Tag = 0x0010
	TagQosTimeToLive             Tag = 0x0017
	TagPayloadType               Tag = 0x0019
	TagAdditionalStatusInfoText  Tag = 0x001D
	TagReceiptedMessageID        Tag = 0x001E
	TagMsMsgWaitFacilities       Tag = 0x0030
	TagPrivacyIndicator          Tag = 0x0201
	TagSourceSubaddress          Tag = 0x0202
	TagDestSubaddress            Tag = 0x0203
	TagUserMessageReference      Tag = 0x0204
	TagUserResponseCode          Tag = 0x0205
	TagSourcePort                Tag = 0x020A
	TagDestinationPort           Tag = 0x020B
	TagSarMsgRefNum              Tag = 0x020C
	TagLanguageIndicator         Tag = 0x020D
	TagSarTotalSegments          Tag = 0x020E
	TagSarSegmentSeqnum          Tag = 0x020F
	TagScInterfaceVersion        Tag = 0x0210
	TagCallbackNumPresInd        Tag = 0x0302
	TagCallbackNumAtag           Tag = 0x0303
	TagNumberOfMessages          Tag = 0x0304
	TagCallbackNum               Tag = 0x0381
	TagDpfResult                 Tag = 0x0420
	TagSetDpf                    Tag = 0x0421
	TagMsAvailabilityStatus      Tag = 0x0422
	TagNetworkErrorCode          Tag = 0x0423
	TagMessagePayload            Tag = 0x0424
	TagDeliveryFailureReason     Tag = 0x0425
	TagMoreMessagesToSend        Tag = 0x0426
	TagMessageState              Tag = 0x0427
	TagCongestionState           Tag = 0x0428
	TagUssdServiceOp             Tag = 0x0501
	TagBillingIdentification     Tag = 0x060B
	TagSourceNetworkID           Tag = 0x060D
	TagDestNetworkID             Tag = 0x060E
	TagSourceNodeID              Tag = 0x060F
	TagDestNodeID                Tag = 0x0610
	TagDestAddrNpResolution      Tag = 0x0611
	TagDestAddrNpInformation     Tag = 0x0612
	TagDestAddrNpCountry         Tag = 0x0613
	TagDisplayTime               Tag = 0x1201
	TagSmsSignal                 Tag = 0x1203
	TagMsValidity                Tag = 0x1204
	TagAlertOnMessageDelivery    Tag = 0x130C
	TagItsReplyType              Tag = 0x1380
	TagItsSessionInfo            Tag = 0x1383
)

type decoderFunc func([]byte) (Value, error)

var registry = map[Tag]decoderFunc{
	TagDestAddrSubunit:          decodeU8,
	TagDestNetworkType:          decodeU8,
	TagDestBearerType:           decodeU8,
	TagDestTelematicsID:         decodeU16,
	TagSourceAddrSubunit:        decodeU8,
	TagSourceNetworkType:        decodeU8,
	TagSourceBearerType:         decodeU8,
	TagSourceTelematicsID:       decodeU8,
	TagQosTimeToLive:            decodeU32,
	TagPayloadType:              decodeU8,
	TagAdditionalStatusInfoText: decodeCStringMax(256),
	TagReceiptedMessageID:       decodeCStringMax(65),
	TagMsMsgWaitFacilities:      decodeU8,
	TagPrivacyIndicator:         decodeU8,
	TagSourceSubaddress:         decodeOctetsRange(2, 23),
	TagDestSubaddress:           decodeOctetsRange(2, 23),
	TagUserMessageReference:     decodeU16,
	TagUserResponseCode:         decodeU8,
	TagSourcePort:               decodeU16,
	TagDestinationPort:          decodeU16,
	TagSarMsgRefNum:             decodeU16,
	TagLanguageIndicator:        decodeU8,
	TagSarTotalSegments:         decodeU8,
	TagSarSegmentSeqnum:         decodeU8,
	TagScInterfaceVersion:       decodeU8,
	TagCallbackNumPresInd:       decodeU8,
	TagCallbackNumAtag:          decodeOctetsRange(0, 65),
	TagNumberOfMessages:         decodeU8,
	TagCallbackNum:              decodeOctetsRange(4, 19),
	TagDpfResult:                decodeU8,
	TagSetDpf:                   decodeU8,
	TagMsAvailabilityStatus:     decodeU8,
	TagNetworkErrorCode:         decodeOctetsExact(3),
	TagMessagePayload:           decodeOctetsRange(0, 64000),
	TagDeliveryFailureReason:    decodeU8,
	TagMoreMessagesToSend:       decodeU8,
	TagMessageState:             decodeU8,
	TagCongestionState:          decodeU8,
	TagUssdServiceOp:            decodeU8,
	TagBillingIdentification:    decodeOctetsRange(0, 1024),
	TagSourceNetworkID:          decodeOctetsExact(8),
	TagDestNetworkID:            decodeOctetsExact(8),
	TagSourceNodeID:             decodeOctetsExact(6),
	TagDestNodeID:               decodeOctetsExact(6),
	TagDestAddrNpResolution:     decodeU8,
	TagDestAddrNpInformation:    decodeOctetsRange(0, 10),
	TagDestAddrNpCountry:        decodeOctetsRange(0, 5),
	TagDisplayTime:              decodeU8,
	TagSmsSignal:                decodeU16,
	TagMsValidity:               decodeU8,
	TagAlertOnMessageDelivery:   decodeOctetsExact(0),
	TagItsReplyType:             decodeU8,
	TagItsSessionInfo:           decodeOctetsExact(2),
}

func decodeU8(b []byte) (Value, error) {
	if len(b) != 1 {
		return nil, fmt.Errorf("expected 1 byte, got %d", len(b))
	}
	return U8{V: b[0]}, nil
}

func decodeU16(b []byte) (Value, error) {
	if len(b) != 2 {
		return nil, fmt.Errorf("expected 2 bytes, got %d", len(b))
	}
	return U16{V: uint16(b[0])<<8 | uint16(b[1])}, nil
}

func decodeU32(b []byte) (Value, error) {
	if len(b) != 4 {
		return nil, fmt.Errorf("expected 4 bytes, got %d", len(b))
	}
	return U32{V: uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])}, nil
}

func decodeCStringMax(max int) decoderFunc {
	return func(b []byte) (Value, error) {
		if len(b) > max {
			return nil, fmt.Errorf("exceeds max length %d", max)
		}
		if len(b) > 0 && b[len(b)-1] == 0 {
			b = b[:len(b)-1]
		}
		return CString{data: append([]byte{}, b...)}, nil
	}
}

func decodeOctetsExact(n int) decoderFunc {
	return func(b []byte) (Value, error) {
		if n > 0 && len(b) != n {
			return nil, fmt.Errorf("expected %d bytes, got %d", n, len(b))
		}
		return Octets{data: append([]byte{}, b...)}, nil
	}
}

func decodeOctetsRange(min, max int) decoderFunc {
	return func(b []byte) (Value, error) {
		if len(b) < min || len(b) > max {
			return nil, fmt.Errorf("length %d outside [%d,%d]", len(b), min, max)
		}
		return Octets{data: append([]byte{}, b...)}, nil
	}
}

// decodeKnownValue dispatches on tag; an unregistered tag returns a
// nil Value with no error, signalling "preserve as raw bytes" to
// TLV.Raw().
func decodeKnownValue(tag Tag, b []byte) (Value, error) {
	fn, ok := registry[tag]
	if !ok {
		return nil, nil
	}
	return fn(b)
}
