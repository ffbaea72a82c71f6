package stack_test

import (
	"context"
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/golang/mock/gomock"
	"github.com/robgonnella/btscan/internal/bt"
	"github.com/robgonnella/btscan/internal/exception"
	mock_sdp "github.com/robgonnella/btscan/internal/mock/sdp"
	"github.com/robgonnella/btscan/internal/sdp"
	"github.com/robgonnella/btscan/internal/stack"
	"github.com/stretchr/testify/assert"
)

func adapter1(addr string, powered bool) map[string]map[string]dbus.Variant {
	return map[string]map[string]dbus.Variant{
		"org.bluez.Adapter1": {
			"Address": dbus.MakeVariant(addr),
			"Powered": dbus.MakeVariant(powered),
		},
	}
}

func device1(addr string, uuids []string) map[string]map[string]dbus.Variant {
	return map[string]map[string]dbus.Variant{
		"org.bluez.Device1": {
			"Address": dbus.MakeVariant(addr),
			"UUIDs":   dbus.MakeVariant(uuids),
		},
	}
}

func managedObjects() map[dbus.ObjectPath]map[string]map[string]dbus.Variant {
	return map[dbus.ObjectPath]map[string]map[string]dbus.Variant{
		"/org/bluez/hci1": adapter1("00:11:22:33:44:66", false),
		"/org/bluez/hci0": adapter1("00:11:22:33:44:55", true),
		"/org/bluez/hci0/dev_AA_BB_CC_DD_EE_FF": device1(
			"AA:BB:CC:DD:EE:FF",
			[]string{"0000110a-0000-1000-8000-00805f9b34fb"},
		),
		"/org/bluez/hci1/dev_11_22_33_44_55_66": device1(
			"11:22:33:44:55:66",
			[]string{"00001105-0000-1000-8000-00805f9b34fb"},
		),
	}
}

func TestObjectManager(t *testing.T) {
	ctrl := gomock.NewController(t)

	defer ctrl.Finish()

	ctx := context.Background()

	hci0 := stack.Adapter{
		Path:    "/org/bluez/hci0",
		Address: bt.MustParseAddress("00:11:22:33:44:55"),
		Powered: true,
	}

	t.Run("lists adapters in path order", func(st *testing.T) {
		conn := newFakeConn()
		conn.on("/", "org.freedesktop.DBus.ObjectManager.GetManagedObjects", reply{
			body: []interface{}{managedObjects()},
		})

		om := stack.NewObjectManager(conn, mock_sdp.NewMockScanner(ctrl))

		adapters, err := om.Adapters(ctx)

		assert.NoError(st, err)
		assert.Equal(st, 2, len(adapters))
		assert.Equal(st, hci0, adapters[0])
		assert.Equal(st, dbus.ObjectPath("/org/bluez/hci1"), adapters[1].Path)
		assert.False(st, adapters[1].Powered)
		assert.Equal(st, stack.GenerationObjectManager, om.Generation())
	})

	t.Run("maps enumeration failure", func(st *testing.T) {
		conn := newFakeConn()
		conn.on("/", "org.freedesktop.DBus.ObjectManager.GetManagedObjects", reply{
			err: dbus.Error{Name: "org.freedesktop.DBus.Error.ServiceUnknown"},
		})

		om := stack.NewObjectManager(conn, mock_sdp.NewMockScanner(ctrl))

		_, err := om.Adapters(ctx)

		assert.ErrorIs(st, err, exception.ErrAdapterNotFound)
	})

	t.Run("reads power state", func(st *testing.T) {
		conn := newFakeConn()
		conn.on(hci0.Path, "org.freedesktop.DBus.Properties.Get", reply{
			body: []interface{}{dbus.MakeVariant(false)},
		})

		om := stack.NewObjectManager(conn, mock_sdp.NewMockScanner(ctrl))

		powered, err := om.Powered(ctx, hci0)

		assert.NoError(st, err)
		assert.False(st, powered)

		calls := conn.called("org.freedesktop.DBus.Properties.Get")

		assert.Equal(st, []interface{}{"org.bluez.Adapter1", "Powered"}, calls[0].args)
	})

	t.Run("returns uuids of device under adapter", func(st *testing.T) {
		conn := newFakeConn()
		conn.on("/", "org.freedesktop.DBus.ObjectManager.GetManagedObjects", reply{
			body: []interface{}{managedObjects()},
		})

		om := stack.NewObjectManager(conn, mock_sdp.NewMockScanner(ctrl))

		uuids, err := om.DeviceUUIDs(ctx, hci0, bt.MustParseAddress("AA:BB:CC:DD:EE:FF"))

		assert.NoError(st, err)
		assert.Equal(st, []string{"0000110a-0000-1000-8000-00805f9b34fb"}, uuids)

		uuids, err = om.DeviceUUIDs(ctx, hci0, bt.MustParseAddress("11:22:33:44:55:66"))

		assert.NoError(st, err)
		assert.Empty(st, uuids)
	})

	t.Run("delegates service records to scanner", func(st *testing.T) {
		scanner := mock_sdp.NewMockScanner(ctrl)
		remote := bt.MustParseAddress("AA:BB:CC:DD:EE:FF")
		expected := []sdp.RawRecord{{Device: remote, Document: "<record/>"}}

		scanner.EXPECT().Scan(hci0.Address, remote).Return(expected, nil)

		om := stack.NewObjectManager(newFakeConn(), scanner)

		records, err := om.ServiceRecords(ctx, hci0, remote, nil)

		assert.NoError(st, err)
		assert.Equal(st, expected, records)
	})

	t.Run("does not scan with canceled context", func(st *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		om := stack.NewObjectManager(newFakeConn(), mock_sdp.NewMockScanner(ctrl))

		_, err := om.ServiceRecords(canceled, hci0, bt.MustParseAddress("AA:BB:CC:DD:EE:FF"), nil)

		assert.True(st, errors.Is(err, context.Canceled))
	})
}

func TestDetect(t *testing.T) {
	ctx := context.Background()

	t.Run("detects object manager", func(st *testing.T) {
		conn := newFakeConn()
		conn.on("/", "org.freedesktop.DBus.ObjectManager.GetManagedObjects", reply{
			body: []interface{}{managedObjects()},
		})

		gen, err := stack.Detect(ctx, conn)

		assert.NoError(st, err)
		assert.Equal(st, stack.GenerationObjectManager, gen)
	})

	t.Run("falls back to legacy", func(st *testing.T) {
		gen, err := stack.Detect(ctx, newFakeConn())

		assert.NoError(st, err)
		assert.Equal(st, stack.GenerationLegacy, gen)
	})

	t.Run("fails when bluetoothd is missing", func(st *testing.T) {
		conn := newFakeConn()
		conn.on("/", "org.freedesktop.DBus.ObjectManager.GetManagedObjects", reply{
			err: &dbus.Error{Name: "org.freedesktop.DBus.Error.ServiceUnknown"},
		})

		_, err := stack.Detect(ctx, conn)

		assert.ErrorIs(st, err, exception.ErrAdapterNotFound)
	})

	t.Run("builds capability per generation", func(st *testing.T) {
		conn := newFakeConn()

		capability, err := stack.New(stack.GenerationLegacy, conn, nil)

		assert.NoError(st, err)
		assert.Equal(st, stack.GenerationLegacy, capability.Generation())

		_, err = stack.New("bluez3", conn, nil)

		assert.Error(st, err)
	})
}
