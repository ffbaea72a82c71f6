package stack

import (
	"context"
	"errors"
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

// Legacy Capability for manager / adapter / device host stacks where
// bluetoothd performs the SDP exchange itself
type Legacy struct {
	conn Conn
	log  logger.Logger
}

// NewLegacy returns a new legacy capability
func NewLegacy(conn Conn) *Legacy {
	return &Legacy{
		conn: conn,
		log:  logger.New(),
	}
}

// Generation implements Capability
func (l *Legacy) Generation() Generation {
	return GenerationLegacy
}

func (l *Legacy) properties(
	ctx context.Context,
	path dbus.ObjectPath,
	iface string,
) (map[string]dbus.Variant, error) {
	props := map[string]dbus.Variant{}

	if err := invoke(ctx, l.conn, path, iface+".GetProperties", nil, &props); err != nil {
		return nil, err
	}

	return props, nil
}

// Adapters implements Capability. Adapters are returned in the order the
// manager lists them.
func (l *Legacy) Adapters(ctx context.Context) ([]Adapter, error) {
	paths := []dbus.ObjectPath{}

	if err := invoke(ctx, l.conn, "/", managerIface+".ListAdapters", nil, &paths); err != nil {
		return nil, fmt.Errorf("ListAdapters: %w", err)
	}

	adapters := []Adapter{}

	for _, path := range paths {
		props, err := l.properties(ctx, path, adapterIface)

		if err != nil {
			return nil, fmt.Errorf("adapter %s properties: %w", path, err)
		}

		addr, err := bt.ParseAddress(variantString(props, "Address"))

		if err != nil {
			l.log.Warn().Err(err).Str("path", string(path)).Msg("skipping adapter with invalid address")
			continue
		}

		adapters = append(adapters, Adapter{
			Path:    path,
			Address: addr,
			Powered: variantBool(props, "Powered"),
		})
	}

	return adapters, nil
}

// Powered implements Capability
func (l *Legacy) Powered(ctx context.Context, adapter Adapter) (bool, error) {
	props, err := l.properties(ctx, adapter.Path, adapterIface)

	if err != nil {
		return false, err
	}

	return variantBool(props, "Powered"), nil
}

// DeviceUUIDs implements Capability. A device the adapter does not know
// yields an empty list.
func (l *Legacy) DeviceUUIDs(
	ctx context.Context,
	adapter Adapter,
	device bt.Address,
) ([]string, error) {
	var path dbus.ObjectPath

	err := invoke(
		ctx,
		l.conn,
		adapter.Path,
		adapterIface+".FindDevice",
		[]interface{}{device.String()},
		&path,
	)

	if hasErrorName(err, errDoesNotExist) {
		return []string{}, nil
	}

	if err != nil {
		return nil, err
	}

	props, err := l.properties(ctx, path, deviceIface)

	if err != nil {
		return nil, err
	}

	return variantStrings(props, "UUIDs"), nil
}

// devicePath creates the device object or, when it already exists, looks
// it up. The looked up path is trusted without comparing its address.
func (l *Legacy) devicePath(
	ctx context.Context,
	adapter Adapter,
	device bt.Address,
) (dbus.ObjectPath, error) {
	var path dbus.ObjectPath

	args := []interface{}{device.String()}

	err := invoke(ctx, l.conn, adapter.Path, adapterIface+".CreateDevice", args, &path)

	if err == nil {
		return path, nil
	}

	if !hasErrorName(err, errAlreadyExists) {
		if errors.Is(err, exception.ErrAdapterNotFound) || ctx.Err() != nil {
			return "", err
		}

		return "", fmt.Errorf("%w: cannot create device %s: %w", exception.ErrIO, device, err)
	}

	err = invoke(ctx, l.conn, adapter.Path, adapterIface+".FindDevice", args, &path)

	if err != nil {
		if errors.Is(err, exception.ErrAdapterNotFound) || ctx.Err() != nil {
			return "", err
		}

		return "", fmt.Errorf("%w: cannot access device %s: %w", exception.ErrIO, device, err)
	}

	return path, nil
}

// ServiceRecords implements Capability. bluetoothd is asked to run the
// discovery restricted to filter. When ctx ends first the pending
// discovery is canceled on the device.
func (l *Legacy) ServiceRecords(
	ctx context.Context,
	adapter Adapter,
	device bt.Address,
	filter []uuid.UUID,
) ([]sdp.RawRecord, error) {
	path, err := l.devicePath(ctx, adapter, device)

	if err != nil {
		return nil, err
	}

	services := map[uint32]string{}

	err = invoke(
		ctx,
		l.conn,
		path,
		deviceIface+".DiscoverServices",
		[]interface{}{pattern(filter)},
		&services,
	)

	if ctx.Err() != nil {
		l.cancelDiscovery(path)
		return nil, ctx.Err()
	}

	if err != nil {
		return nil, fmt.Errorf("DiscoverServices: %w", err)
	}

	handles := make([]uint32, 0, len(services))

	for h := range services {
		handles = append(handles, h)
	}

	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	records := make([]sdp.RawRecord, 0, len(handles))

	for _, h := range handles {
		records = append(records, sdp.RawRecord{Device: device, Document: services[h]})
	}

	return records, nil
}

func (l *Legacy) cancelDiscovery(path dbus.ObjectPath) {
	err := invoke(context.Background(), l.conn, path, deviceIface+".CancelDiscovery", nil)

	if err != nil {
		l.log.Debug().Err(err).Str("path", string(path)).Msg("failed to cancel discovery")
	}
}

// pattern joins the filter into the space separated form DiscoverServices
// expects. An empty pattern requests every record.
func pattern(filter []uuid.UUID) string {
	parts := make([]string, 0, len(filter))

	for _, u := range filter {
		parts = append(parts, u.String())
	}

	return strings.Join(parts, " ")
}
