package stack

import (
	"context"
	"fmt"

	"github.com/robgonnella/btscan/internal/sdp"
)

// Detect probes bluetoothd for the object manager interface. Stacks
// without it are legacy.
func Detect(ctx context.Context, conn Conn) (Generation, error) {
	err := invoke(ctx, conn, "/", objManagerIface+".GetManagedObjects", nil)

	switch {
	case err == nil:
		return GenerationObjectManager, nil
	case hasErrorName(err, errUnknownMethod),
		hasErrorName(err, errUnknownObject),
		hasErrorName(err, errUnknownInterface):
		return GenerationLegacy, nil
	default:
		return "", fmt.Errorf("failed to detect bluetooth stack: %w", err)
	}
}

// New returns the Capability for generation. scanner is only used by
// object manager stacks.
func New(generation Generation, conn Conn, scanner sdp.Scanner) (Capability, error) {
	switch generation {
	case GenerationObjectManager:
		return NewObjectManager(conn, scanner), nil
	case GenerationLegacy:
		return NewLegacy(conn), nil
	default:
		return nil, fmt.Errorf("unsupported bluetooth stack generation %q", generation)
	}
}
