package bt_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/robgonnella/btscan/internal/bt"
	"github.com/stretchr/testify/assert"
)

func TestAddress(t *testing.T) {
	t.Run("parses and formats address", func(st *testing.T) {
		addr, err := bt.ParseAddress("aa:bb:cc:dd:ee:ff")

		assert.NoError(st, err)
		assert.Equal(st, bt.Address{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}, addr)
		assert.Equal(st, "AA:BB:CC:DD:EE:FF", addr.String())
	})

	t.Run("rejects long hardware addresses", func(st *testing.T) {
		_, err := bt.ParseAddress("00:00:00:00:fe:80:00:00:00:00:00:00:02:00:5e:10:00:00:00:01")

		assert.Error(st, err)
	})

	t.Run("extracts address from object path", func(st *testing.T) {
		addr, ok := bt.AddressFromPath("/org/bluez/hci0/dev_AA_BB_CC_DD_EE_FF")

		assert.True(st, ok)
		assert.Equal(st, "AA:BB:CC:DD:EE:FF", addr.String())

		_, ok = bt.AddressFromPath("/org/bluez/hci0")

		assert.False(st, ok)
	})

	t.Run("unmarshals empty text to zero address", func(st *testing.T) {
		addr := bt.MustParseAddress("11:22:33:44:55:66")

		assert.NoError(st, addr.UnmarshalText([]byte("")))
		assert.True(st, addr.IsZero())
	})
}

func TestUUID(t *testing.T) {
	t.Run("promotes short forms through the base uuid", func(st *testing.T) {
		u, err := bt.ParseUUID("0x1105")

		assert.NoError(st, err)
		assert.Equal(st, uuid.MustParse("00001105-0000-1000-8000-00805f9b34fb"), u)
		assert.True(st, bt.IsBaseDerived(u))

		u32, err := bt.ParseUUID("0x12345678")

		assert.NoError(st, err)
		assert.Equal(st, uuid.MustParse("12345678-0000-1000-8000-00805f9b34fb"), u32)
	})

	t.Run("parses full uuids", func(st *testing.T) {
		u, err := bt.ParseUUID("6E400001-B5A3-F393-E0A9-E50E24DCCA9E")

		assert.NoError(st, err)
		assert.False(st, bt.IsBaseDerived(u))

		_, ok := bt.Short(u)

		assert.False(st, ok)
	})

	t.Run("extracts short values", func(st *testing.T) {
		u := bt.FromUint16(0x110a)
		v, ok := bt.Short(u)

		assert.True(st, ok)
		assert.Equal(st, uint32(0x110a), v)
		assert.Equal(st, uint16(0x110a), bt.Short16(u))
	})

	t.Run("rejects garbage", func(st *testing.T) {
		_, err := bt.ParseUUID("not-a-uuid")

		assert.Error(st, err)
	})

	t.Run("names service classes", func(st *testing.T) {
		assert.Equal(st, "Object Push", bt.ServiceClassName(0x1105))
		assert.Equal(st, bt.UnknownServiceName, bt.ServiceClassName(0xfffe))
	})
}
