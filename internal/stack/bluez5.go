package stack

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/google/uuid"

	"github.com/robgonnella/btscan/internal/bt"
	"github.com/robgonnella/btscan/internal/exception"
	"github.com/robgonnella/btscan/internal/logger"
	"github.com/robgonnella/btscan/internal/sdp"
)

// ObjectManager Capability for object manager based host stacks. Full
// service records are fetched with a blocking SDP scanner.
type ObjectManager struct {
	conn    Conn
	scanner sdp.Scanner
	log     logger.Logger
}

// NewObjectManager returns a new object manager capability
func NewObjectManager(conn Conn, scanner sdp.Scanner) *ObjectManager {
	return &ObjectManager{
		conn:    conn,
		scanner: scanner,
		log:     logger.New(),
	}
}

// Generation implements Capability
func (o *ObjectManager) Generation() Generation {
	return GenerationObjectManager
}

func (o *ObjectManager) objects(ctx context.Context) (managedObjects, error) {
	objs := managedObjects{}

	err := invoke(ctx, o.conn, "/", objManagerIface+".GetManagedObjects", nil, &objs)

	if err != nil {
		return nil, fmt.Errorf("GetManagedObjects: %w", err)
	}

	return objs, nil
}

// Adapters implements Capability. Adapters are returned in object path
// order.
func (o *ObjectManager) Adapters(ctx context.Context) ([]Adapter, error) {
	objs, err := o.objects(ctx)

	if err != nil {
		return nil, err
	}

	adapters := []Adapter{}

	for path, ifaces := range objs {
		props, ok := ifaces[adapter1Iface]

		if !ok {
			continue
		}

		addr, err := bt.ParseAddress(variantString(props, "Address"))

		if err != nil {
			o.log.Warn().Err(err).Str("path", string(path)).Msg("skipping adapter with invalid address")
			continue
		}

		adapters = append(adapters, Adapter{
			Path:    path,
			Address: addr,
			Powered: variantBool(props, "Powered"),
		})
	}

	sort.Slice(adapters, func(i, j int) bool {
		return adapters[i].Path < adapters[j].Path
	})

	return adapters, nil
}

// Powered implements Capability
func (o *ObjectManager) Powered(ctx context.Context, adapter Adapter) (bool, error) {
	var powered dbus.Variant

	err := invoke(
		ctx,
		o.conn,
		adapter.Path,
		propsIface+".Get",
		[]interface{}{adapter1Iface, "Powered"},
		&powered,
	)

	if err != nil {
		return false, err
	}

	b, ok := powered.Value().(bool)

	if !ok {
		return false, fmt.Errorf("%w: unexpected Powered value %s", exception.ErrIO, powered)
	}

	return b, nil
}

// DeviceUUIDs implements Capability. A device the adapter does not know
// yields an empty list.
func (o *ObjectManager) DeviceUUIDs(
	ctx context.Context,
	adapter Adapter,
	device bt.Address,
) ([]string, error) {
	objs, err := o.objects(ctx)

	if err != nil {
		return nil, err
	}

	prefix := string(adapter.Path) + "/"

	for path, ifaces := range objs {
		if !strings.HasPrefix(string(path), prefix) {
			continue
		}

		props, ok := ifaces[device1Iface]

		if !ok {
			continue
		}

		addr, err := bt.ParseAddress(variantString(props, "Address"))

		if err != nil || addr != device {
			continue
		}

		return variantStrings(props, "UUIDs"), nil
	}

	return []string{}, nil
}

// ServiceRecords implements Capability. The SDP exchange cannot be
// interrupted once started so ctx is only checked before dialing.
func (o *ObjectManager) ServiceRecords(
	ctx context.Context,
	adapter Adapter,
	device bt.Address,
	_ []uuid.UUID,
) ([]sdp.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return o.scanner.Scan(adapter.Address, device)
}
