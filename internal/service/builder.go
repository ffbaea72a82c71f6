package service

import (
	"github.com/google/uuid"

	"github.com/robgonnella/btscan/internal/bt"
	"github.com/robgonnella/btscan/internal/sdp"
)

// Build assembles a descriptor for device from a decoded service record.
// The result may be invalid, callers check Valid before using it.
func Build(device bt.Address, attrs map[uint16]sdp.Value) Descriptor {
	desc := NewDescriptor(device)

	for id, v := range attrs {
		desc.Attributes[id] = v
	}

	if id, ok := attrs[sdp.AttrServiceID].(sdp.UUID); ok {
		u := uuid.UUID(id)
		desc.ServiceUUID = &u
	}

	if classes, ok := attrs[sdp.AttrServiceClassIDList].(sdp.Sequence); ok {
		desc.ClassUUIDs = classes.UUIDs()
	}

	desc.Name = text(attrs, sdp.AttrServiceName)
	desc.Description = text(attrs, sdp.AttrServiceDescription)
	desc.Provider = text(attrs, sdp.AttrProviderName)

	return desc
}

func text(attrs map[uint16]sdp.Value, id uint16) string {
	if t, ok := attrs[id].(sdp.Text); ok {
		return string(t)
	}

	return ""
}
