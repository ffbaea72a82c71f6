package exception

import "errors"

// ErrRecordNotFound custom database error for failure to find record
var ErrRecordNotFound = errors.New("record not found")

// ErrAdapterNotFound the requested (or any) local adapter could not be found
var ErrAdapterNotFound = errors.New("cannot find local bluetooth adapter")

// ErrPoweredOff the local adapter is present but powered off
var ErrPoweredOff = errors.New("local device is powered off")

// ErrIO transport or session failure talking to a device
var ErrIO = errors.New("input/output error")

// ErrUnknown unclassified failure reported by the host stack
var ErrUnknown = errors.New("unknown error")

// ErrAlreadyRunning a discovery run is already in progress
var ErrAlreadyRunning = errors.New("service discovery already running")

// ErrNotSupported operation unavailable on this platform or stack
var ErrNotSupported = errors.New("operation not supported")

// Kind classifies errors surfaced to discovery callers
type Kind string

const (
	KindNone            Kind = ""
	KindAdapterNotFound Kind = "adapter-not-found"
	KindPoweredOff      Kind = "powered-off"
	KindIO              Kind = "io"
	KindUnknown         Kind = "unknown"
	KindAlreadyRunning  Kind = "already-running"
	KindNotSupported    Kind = "not-supported"
	KindRecordNotFound  Kind = "record-not-found"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrAdapterNotFound, KindAdapterNotFound},
	{ErrPoweredOff, KindPoweredOff},
	{ErrIO, KindIO},
	{ErrAlreadyRunning, KindAlreadyRunning},
	{ErrNotSupported, KindNotSupported},
	{ErrRecordNotFound, KindRecordNotFound},
	{ErrUnknown, KindUnknown},
}

// KindOf returns the Kind of the first known sentinel found in err's chain.
// Errors that match no sentinel are KindUnknown, nil is KindNone.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}

	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}

	return KindUnknown
}

// Report is the payload of an error event
type Report struct {
	Kind    Kind
	Message string
}

// NewReport builds a Report from err
func NewReport(err error) Report {
	return Report{
		Kind:    KindOf(err),
		Message: err.Error(),
	}
}

// Error implements error so a received Report can be returned as is
func (r Report) Error() string {
	return r.Message
}

// Unwrap returns the sentinel matching the report kind
func (r Report) Unwrap() error {
	for _, k := range kinds {
		if k.kind == r.Kind {
			return k.err
		}
	}

	return nil
}
