package stack

import (
	"context"

	"github.com/godbus/dbus/v5"
	"github.com/google/uuid"

	"github.com/robgonnella/btscan/internal/bt"
	"github.com/robgonnella/btscan/internal/sdp"
)

//go:generate mockgen -destination=../mock/stack/stack.go -package=mock_stack . Capability

// Generation identifies the host stack protocol generation
type Generation string

const (
	// GenerationLegacy manager / adapter / device objects (BlueZ 4)
	GenerationLegacy Generation = "bluez4"
	// GenerationObjectManager object manager with Adapter1 / Device1 (BlueZ 5)
	GenerationObjectManager Generation = "bluez5"
)

// Adapter local bluetooth adapter as reported by the host stack
type Adapter struct {
	Path    dbus.ObjectPath
	Address bt.Address
	Powered bool
}

// Capability everything discovery needs from the local host stack.
// Exactly one implementation is chosen per process.
type Capability interface {
	Generation() Generation
	Adapters(ctx context.Context) ([]Adapter, error)
	Powered(ctx context.Context, adapter Adapter) (bool, error)
	DeviceUUIDs(ctx context.Context, adapter Adapter, device bt.Address) ([]string, error)
	ServiceRecords(
		ctx context.Context,
		adapter Adapter,
		device bt.Address,
		filter []uuid.UUID,
	) ([]sdp.RawRecord, error)
}
