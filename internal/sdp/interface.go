package sdp

import (
	"github.com/google/uuid"

	"github.com/robgonnella/btscan/internal/bt"
)

//go:generate mockgen -destination=../mock/sdp/sdp.go -package=mock_sdp . Session,Dialer,Scanner

// RawRecord service record document fetched from a remote device
type RawRecord struct {
	Device   bt.Address
	Document string
}

// Session an open SDP client session with a remote device
type Session interface {
	SearchAttributes(patterns []uuid.UUID, ranges []AttributeRange) ([][]byte, error)
	Close() error
}

// Dialer opens SDP sessions from a local adapter to a remote device
type Dialer interface {
	Dial(local, remote bt.Address) (Session, error)
}

// Scanner fetches every public service record of a remote device
type Scanner interface {
	Scan(local, remote bt.Address) ([]RawRecord, error)
}
