package bt

import (
	"fmt"
	"net"
	"strings"
)

// Address is a 48 bit Bluetooth device address stored in display order,
// i.e. Address[0] is the most significant octet of "AA:BB:CC:DD:EE:FF"
type Address [6]byte

// ParseAddress parses a colon or dash separated Bluetooth address
func ParseAddress(s string) (Address, error) {
	var addr Address

	hw, err := net.ParseMAC(strings.TrimSpace(s))

	if err != nil {
		return addr, fmt.Errorf("invalid bluetooth address %q: %w", s, err)
	}

	if len(hw) != len(addr) {
		return addr, fmt.Errorf("invalid bluetooth address %q: expected 6 octets", s)
	}

	copy(addr[:], hw)

	return addr, nil
}

// MustParseAddress is like ParseAddress but panics on error
func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)

	if err != nil {
		panic(err)
	}

	return addr
}

// String returns the upper-case colon separated form
func (a Address) String() string {
	return fmt.Sprintf(
		"%02X:%02X:%02X:%02X:%02X:%02X",
		a[0], a[1], a[2], a[3], a[4], a[5],
	)
}

// IsZero reports whether a is the unset address 00:00:00:00:00:00
func (a Address) IsZero() bool {
	return a == Address{}
}

// MarshalText implements encoding.TextMarshaler
func (a Address) MarshalText() ([]byte, error) {
	if a.IsZero() {
		return []byte{}, nil
	}

	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty input yields
// the zero address.
func (a *Address) UnmarshalText(text []byte) error {
	if len(strings.TrimSpace(string(text))) == 0 {
		*a = Address{}
		return nil
	}

	parsed, err := ParseAddress(string(text))

	if err != nil {
		return err
	}

	*a = parsed

	return nil
}

// AddressFromPath extracts the device address from a BlueZ object path
// of the form .../dev_XX_XX_XX_XX_XX_XX
func AddressFromPath(path string) (Address, bool) {
	idx := strings.LastIndex(path, "/dev_")

	if idx < 0 {
		return Address{}, false
	}

	mac := strings.ReplaceAll(path[idx+5:], "_", ":")

	addr, err := ParseAddress(mac)

	if err != nil {
		return Address{}, false
	}

	return addr, true
}
