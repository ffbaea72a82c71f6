//go:build !linux

package sdp

import (
	"github.com/robgonnella/btscan/internal/bt"
	"github.com/robgonnella/btscan/internal/exception"
)

type unsupportedDialer struct{}

// NewDialer returns the platform SDP dialer
func NewDialer() Dialer {
	return unsupportedDialer{}
}

func (unsupportedDialer) Dial(_, _ bt.Address) (Session, error) {
	return nil, exception.ErrNotSupported
}
