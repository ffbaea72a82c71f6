package sdp

import "github.com/google/uuid"

// Universal attribute identifiers
const (
	AttrServiceRecordHandle            uint16 = 0x0000
	AttrServiceClassIDList             uint16 = 0x0001
	AttrServiceRecordState             uint16 = 0x0002
	AttrServiceID                      uint16 = 0x0003
	AttrProtocolDescriptorList         uint16 = 0x0004
	AttrBrowseGroupList                uint16 = 0x0005
	AttrLanguageBaseAttributeIDList    uint16 = 0x0006
	AttrServiceInfoTimeToLive          uint16 = 0x0007
	AttrServiceAvailability            uint16 = 0x0008
	AttrBluetoothProfileDescriptorList uint16 = 0x0009
	AttrDocumentationURL               uint16 = 0x000a
	AttrClientExecutableURL            uint16 = 0x000b
	AttrIconURL                        uint16 = 0x000c

	// Offsets from the primary language base
	AttrPrimaryLanguageBase uint16 = 0x0100
	AttrServiceName         uint16 = AttrPrimaryLanguageBase + 0
	AttrServiceDescription  uint16 = AttrPrimaryLanguageBase + 1
	AttrProviderName        uint16 = AttrPrimaryLanguageBase + 2
)

// ProtocolParameter returns the first parameter following protocol in a
// ProtocolDescriptorList value. For RFCOMM that is the server channel,
// for L2CAP the PSM.
func ProtocolParameter(list Value, protocol uuid.UUID) (uint64, bool) {
	outer, ok := list.(Sequence)

	if !ok {
		return 0, false
	}

	for _, entry := range outer {
		desc, ok := entry.(Sequence)

		if !ok || len(desc) < 2 {
			continue
		}

		id, ok := desc[0].(UUID)

		if !ok || uuid.UUID(id) != protocol {
			continue
		}

		return Uint(desc[1])
	}

	return 0, false
}
