package discovery

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/robgonnella/btscan/internal/bt"
)

// Mode selects how services are discovered on each target
type Mode string

const (
	// MinimalDiscovery uses the uuids the host stack already cached
	MinimalDiscovery Mode = "minimal"
	// FullDiscovery queries every service record from the device
	FullDiscovery Mode = "full"
)

// ParseMode returns the Mode named by s
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case MinimalDiscovery:
		return MinimalDiscovery, nil
	case FullDiscovery:
		return FullDiscovery, nil
	default:
		return "", fmt.Errorf("invalid discovery mode %q", s)
	}
}

// Request describes one discovery run
type Request struct {
	// Adapter local adapter to use, zero selects the first one
	Adapter bt.Address
	// Targets remote devices processed in order
	Targets []bt.Address
	Mode    Mode
	// Filter restricts results to these uuids, empty means no filtering
	Filter []uuid.UUID
	// SingleDevice makes a failure on the target fatal to the run
	SingleDevice bool
}

// NewRequest returns a request for targets. A request for exactly one
// target is a single device request.
func NewRequest(
	adapter bt.Address,
	targets []bt.Address,
	mode Mode,
	filter []uuid.UUID,
) Request {
	return Request{
		Adapter:      adapter,
		Targets:      append([]bt.Address{}, targets...),
		Mode:         mode,
		Filter:       append([]uuid.UUID{}, filter...),
		SingleDevice: len(targets) == 1,
	}
}
