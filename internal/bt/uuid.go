package bt

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// BaseUUID is the Bluetooth base UUID short-form UUIDs are promoted through
var BaseUUID = uuid.MustParse("00000000-0000-1000-8000-00805f9b34fb")

// Well known 16 bit values used by the discovery code
const (
	PublicBrowseGroup uint16 = 0x1002
	ProtocolL2CAP     uint16 = 0x0100
	ProtocolRFCOMM    uint16 = 0x0003
)

// FromUint16 promotes a 16 bit short-form UUID to its full 128 bit form
func FromUint16(v uint16) uuid.UUID {
	return FromUint32(uint32(v))
}

// FromUint32 promotes a 32 bit short-form UUID to its full 128 bit form
func FromUint32(v uint32) uuid.UUID {
	u := BaseUUID
	binary.BigEndian.PutUint32(u[0:4], v)
	return u
}

// IsBaseDerived reports whether u is a promoted short-form UUID
func IsBaseDerived(u uuid.UUID) bool {
	for i := 4; i < len(u); i++ {
		if u[i] != BaseUUID[i] {
			return false
		}
	}

	return true
}

// Short returns the 32 bit value embedded in a base derived UUID
func Short(u uuid.UUID) (uint32, bool) {
	if !IsBaseDerived(u) {
		return 0, false
	}

	return binary.BigEndian.Uint32(u[0:4]), true
}

// Short16 returns the 16 bit value embedded in bytes 2..3 of u. The
// value is only meaningful for well-known service class UUIDs.
func Short16(u uuid.UUID) uint16 {
	return binary.BigEndian.Uint16(u[2:4])
}

// ParseUUID parses a full UUID literal or a hex short form. Short forms
// may carry a "0x" prefix and are 4 (16 bit) or 8 (32 bit) hex digits.
func ParseUUID(s string) (uuid.UUID, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}")

	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")

	if len(digits) == 4 || len(digits) == 8 {
		v, err := strconv.ParseUint(digits, 16, 32)

		if err != nil {
			return uuid.Nil, fmt.Errorf("invalid short uuid %q: %w", s, err)
		}

		if len(digits) == 4 {
			return FromUint16(uint16(v)), nil
		}

		return FromUint32(uint32(v)), nil
	}

	u, err := uuid.Parse(s)

	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid uuid %q: %w", s, err)
	}

	return u, nil
}

// ParseUUIDs parses every entry of list, failing on the first bad one
func ParseUUIDs(list []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(list))

	for _, s := range list {
		u, err := ParseUUID(s)

		if err != nil {
			return nil, err
		}

		out = append(out, u)
	}

	return out, nil
}
