package stack

import (
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/robgonnella/btscan/internal/exception"
)

// host stack error names with a known meaning
const (
	errAlreadyExists    = "org.bluez.Error.AlreadyExists"
	errDoesNotExist     = "org.bluez.Error.DoesNotExist"
	errNoSuchAdapter    = "org.bluez.Error.NoSuchAdapter"
	errNotReady         = "org.bluez.Error.NotReady"
	errFailed           = "org.bluez.Error.Failed"
	errConnectionFailed = "org.bluez.Error.ConnectionAttemptFailed"
	errUnknownObject    = "org.freedesktop.DBus.Error.UnknownObject"
	errUnknownMethod    = "org.freedesktop.DBus.Error.UnknownMethod"
	errUnknownInterface = "org.freedesktop.DBus.Error.UnknownInterface"
	errServiceUnknown   = "org.freedesktop.DBus.Error.ServiceUnknown"
	errNoReply          = "org.freedesktop.DBus.Error.NoReply"
	errTimeout          = "org.freedesktop.DBus.Error.Timeout"
)

var errorKinds = map[string]error{
	errNoSuchAdapter:    exception.ErrAdapterNotFound,
	errUnknownObject:    exception.ErrAdapterNotFound,
	errServiceUnknown:   exception.ErrAdapterNotFound,
	errNotReady:         exception.ErrPoweredOff,
	errFailed:           exception.ErrIO,
	errConnectionFailed: exception.ErrIO,
	errNoReply:          exception.ErrIO,
	errTimeout:          exception.ErrIO,
}

// errorName returns the D-Bus error name carried by err, if any
func errorName(err error) (string, bool) {
	var byValue dbus.Error

	if errors.As(err, &byValue) {
		return byValue.Name, true
	}

	var byPointer *dbus.Error

	if errors.As(err, &byPointer) && byPointer != nil {
		return byPointer.Name, true
	}

	return "", false
}

// hasErrorName reports whether err is a D-Bus error called name
func hasErrorName(err error, name string) bool {
	got, ok := errorName(err)
	return ok && got == name
}

// mapError wraps err with the exception sentinel matching its D-Bus name.
// Transport level failures without a name are I/O errors.
func mapError(err error) error {
	name, ok := errorName(err)

	if !ok {
		return fmt.Errorf("%w: %w", exception.ErrIO, err)
	}

	if sentinel, ok := errorKinds[name]; ok {
		return fmt.Errorf("%w: %w", sentinel, err)
	}

	return fmt.Errorf("%w: %w", exception.ErrUnknown, err)
}
