//go:build linux

package sdp

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/robgonnella/btscan/internal/bt"
)

// psmSDP well known L2CAP PSM of the SDP server
const psmSDP = 0x0001

// socketConn packet oriented connection backed by a raw socket
type socketConn struct {
	fd int
}

func (c *socketConn) Read(b []byte) (int, error) {
	return unix.Read(c.fd, b)
}

func (c *socketConn) Write(b []byte) (int, error) {
	return unix.Write(c.fd, b)
}

func (c *socketConn) Close() error {
	return unix.Close(c.fd)
}

// L2CAPDialer dials the SDP server of a remote device over an L2CAP
// sequential packet socket
type L2CAPDialer struct{}

// NewDialer returns the platform SDP dialer
func NewDialer() Dialer {
	return L2CAPDialer{}
}

// Dial implements Dialer. A zero local address lets the kernel pick
// the adapter.
func (L2CAPDialer) Dial(local, remote bt.Address) (Session, error) {
	fd, err := unix.Socket(
		unix.AF_BLUETOOTH,
		unix.SOCK_SEQPACKET|unix.SOCK_CLOEXEC,
		unix.BTPROTO_L2CAP,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create l2cap socket: %w", err)
	}

	if !local.IsZero() {
		if err := unix.Bind(fd, &unix.SockaddrL2{Addr: local}); err != nil {
			unix.Close(fd)
			return nil, fmt.Errorf("failed to bind %s: %w", local, err)
		}
	}

	if err := unix.Connect(fd, &unix.SockaddrL2{PSM: psmSDP, Addr: remote}); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("failed to connect to %s: %w", remote, err)
	}

	return NewSession(&socketConn{fd: fd}), nil
}
