package stack

import (
	"context"

	"github.com/godbus/dbus/v5"
)

const (
	bluezService    = "org.bluez"
	objManagerIface = "org.freedesktop.DBus.ObjectManager"
	propsIface      = "org.freedesktop.DBus.Properties"
	managerIface    = "org.bluez.Manager"
	adapterIface    = "org.bluez.Adapter"
	deviceIface     = "org.bluez.Device"
	adapter1Iface   = "org.bluez.Adapter1"
	device1Iface    = "org.bluez.Device1"
)

// managedObjects reply shape of ObjectManager.GetManagedObjects
type managedObjects = map[dbus.ObjectPath]map[string]map[string]dbus.Variant

// Conn issues asynchronous method calls against bluetoothd. The returned
// call completes on its Done channel.
type Conn interface {
	Go(ctx context.Context, path dbus.ObjectPath, method string, args ...interface{}) *dbus.Call
}

type busConn struct {
	bus *dbus.Conn
}

// NewConn returns a Conn talking to bluetoothd over bus
func NewConn(bus *dbus.Conn) Conn {
	return &busConn{bus: bus}
}

// Go implements Conn
func (c *busConn) Go(
	ctx context.Context,
	path dbus.ObjectPath,
	method string,
	args ...interface{},
) *dbus.Call {
	return c.bus.Object(bluezService, path).GoWithContext(
		ctx,
		method,
		0,
		make(chan *dbus.Call, 1),
		args...,
	)
}

// await waits for call to complete and stores its reply in out. Host
// stack errors are translated with mapError.
func await(ctx context.Context, call *dbus.Call, out ...interface{}) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case done := <-call.Done:
		if done.Err != nil {
			return mapError(done.Err)
		}

		if len(out) == 0 {
			return nil
		}

		return done.Store(out...)
	}
}

// invoke issues a call and waits for it
func invoke(
	ctx context.Context,
	conn Conn,
	path dbus.ObjectPath,
	method string,
	args []interface{},
	out ...interface{},
) error {
	return await(ctx, conn.Go(ctx, path, method, args...), out...)
}

func variantString(props map[string]dbus.Variant, key string) string {
	v, ok := props[key]

	if !ok {
		return ""
	}

	s, _ := v.Value().(string)

	return s
}

func variantBool(props map[string]dbus.Variant, key string) bool {
	v, ok := props[key]

	if !ok {
		return false
	}

	b, _ := v.Value().(bool)

	return b
}

func variantStrings(props map[string]dbus.Variant, key string) []string {
	v, ok := props[key]

	if !ok {
		return []string{}
	}

	list, _ := v.Value().([]string)

	if list == nil {
		return []string{}
	}

	return list
}
