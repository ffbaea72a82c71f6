package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/robgonnella/btscan/internal/bt"
	"github.com/robgonnella/btscan/internal/sdp"
)

// Descriptor represents one service offered by a remote device
type Descriptor struct {
	Device      bt.Address
	ServiceUUID *uuid.UUID
	ClassUUIDs  []uuid.UUID
	Name        string
	Description string
	Provider    string
	Attributes  map[uint16]sdp.Value
}

// NewDescriptor returns an empty descriptor for device
func NewDescriptor(device bt.Address) Descriptor {
	return Descriptor{
		Device:     device,
		ClassUUIDs: []uuid.UUID{},
		Attributes: map[uint16]sdp.Value{},
	}
}

// Valid reports whether d identifies a service at all
func (d Descriptor) Valid() bool {
	return d.ServiceUUID != nil || len(d.ClassUUIDs) > 0
}

// SetServiceUUID sets the primary service uuid and its ServiceID attribute
func (d *Descriptor) SetServiceUUID(u uuid.UUID) {
	d.ServiceUUID = &u
	d.setAttribute(sdp.AttrServiceID, sdp.UUID(u))
}

// SetClassUUIDs sets the service class list and its attribute
func (d *Descriptor) SetClassUUIDs(list []uuid.UUID) {
	d.ClassUUIDs = append([]uuid.UUID{}, list...)

	seq := make(sdp.Sequence, 0, len(list))

	for _, u := range list {
		seq = append(seq, sdp.UUID(u))
	}

	d.setAttribute(sdp.AttrServiceClassIDList, seq)
}

// SetName sets the service name and its primary language attribute
func (d *Descriptor) SetName(name string) {
	d.Name = name
	d.setAttribute(sdp.AttrServiceName, sdp.Text(name))
}

func (d *Descriptor) setAttribute(id uint16, v sdp.Value) {
	if d.Attributes == nil {
		d.Attributes = map[uint16]sdp.Value{}
	}

	d.Attributes[id] = v
}

// RFCOMMChannel returns the RFCOMM server channel if the service has one
func (d Descriptor) RFCOMMChannel() (uint8, bool) {
	v, ok := sdp.ProtocolParameter(
		d.Attributes[sdp.AttrProtocolDescriptorList],
		bt.FromUint16(bt.ProtocolRFCOMM),
	)

	if !ok || v > 0xff {
		return 0, false
	}

	return uint8(v), true
}

// L2CAPPSM returns the L2CAP PSM if the service has one
func (d Descriptor) L2CAPPSM() (uint16, bool) {
	v, ok := sdp.ProtocolParameter(
		d.Attributes[sdp.AttrProtocolDescriptorList],
		bt.FromUint16(bt.ProtocolL2CAP),
	)

	if !ok || v > 0xffff {
		return 0, false
	}

	return uint16(v), true
}

// Key identifies a descriptor among those of its device following the
// same rules used for duplicate detection
func (d Descriptor) Key() string {
	if d.ServiceUUID != nil {
		return d.Device.String() + "/" + d.ServiceUUID.String()
	}

	classes := make([]string, 0, len(d.ClassUUIDs))

	for _, u := range d.ClassUUIDs {
		classes = append(classes, u.String())
	}

	return d.Device.String() + "/" + strings.Join(classes, ",")
}

// sameService reports whether a and b describe the same service
func sameService(a, b Descriptor) bool {
	if a.Device != b.Device {
		return false
	}

	if a.ServiceUUID != nil || b.ServiceUUID != nil {
		return a.ServiceUUID != nil &&
			b.ServiceUUID != nil &&
			*a.ServiceUUID == *b.ServiceUUID
	}

	if len(a.ClassUUIDs) != len(b.ClassUUIDs) {
		return false
	}

	for i := range a.ClassUUIDs {
		if a.ClassUUIDs[i] != b.ClassUUIDs[i] {
			return false
		}
	}

	return true
}
