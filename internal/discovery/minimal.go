package discovery

import (
	"github.com/google/uuid"

	"github.com/robgonnella/btscan/internal/bt"
	"github.com/robgonnella/btscan/internal/service"
)

// CustomServiceName names services known only by a vendor specific uuid
const CustomServiceName = "Custom Service"

// MinimalLookup builds descriptors for device from the uuid strings the
// host stack cached for it. Unparsable uuids are skipped.
func MinimalLookup(
	device bt.Address,
	uuidStrings []string,
	filter service.Filter,
) []service.Descriptor {
	descs := []service.Descriptor{}

	for _, s := range uuidStrings {
		u, err := bt.ParseUUID(s)

		if err != nil {
			continue
		}

		if !filter.Empty() && !filter.Contains(u) {
			continue
		}

		desc := service.NewDescriptor(device)

		if !bt.IsBaseDerived(u) {
			desc.SetServiceUUID(u)
			desc.SetName(CustomServiceName)
		} else {
			desc.SetClassUUIDs([]uuid.UUID{u})
			desc.SetName(bt.ServiceClassName(bt.Short16(u)))
		}

		descs = append(descs, desc)
	}

	return descs
}
