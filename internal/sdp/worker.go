package sdp

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/robgonnella/btscan/internal/bt"
	"github.com/robgonnella/btscan/internal/exception"
	"github.com/robgonnella/btscan/internal/logger"
)

// number of dial attempts made before giving up on a device
const dialAttempts = 2

// Worker implements Scanner using blocking SDP sessions
type Worker struct {
	dialer Dialer
	log    logger.Logger
}

// NewWorker returns a new SDP scan worker
func NewWorker(dialer Dialer) *Worker {
	return &Worker{
		dialer: dialer,
		log:    logger.New(),
	}
}

// Scan implements Scanner. It blocks for the duration of the radio
// round trips and must not be called from a goroutine that needs to
// stay responsive.
func (w *Worker) Scan(local, remote bt.Address) ([]RawRecord, error) {
	session, err := w.dial(local, remote)

	if err != nil {
		return nil, err
	}

	defer func() {
		if err := session.Close(); err != nil {
			w.log.Debug().Err(err).Str("device", remote.String()).Msg("failed to close sdp session")
		}
	}()

	raw, err := session.SearchAttributes(
		[]uuid.UUID{bt.FromUint16(bt.PublicBrowseGroup)},
		[]AttributeRange{AllAttributes},
	)

	if err != nil {
		return nil, fmt.Errorf("%w: service search failed for %s: %w", exception.ErrIO, remote, err)
	}

	records := []RawRecord{}

	for _, r := range raw {
		doc, err := RenderRecord(r)

		if err != nil {
			w.log.Warn().Err(err).Str("device", remote.String()).Msg("skipping unreadable service record")
			continue
		}

		records = append(records, RawRecord{Device: remote, Document: doc})
	}

	w.log.Debug().
		Str("device", remote.String()).
		Int("records", len(records)).
		Msg("sdp scan complete")

	return records, nil
}

func (w *Worker) dial(local, remote bt.Address) (Session, error) {
	var err error

	for attempt := 1; attempt <= dialAttempts; attempt++ {
		var session Session

		session, err = w.dialer.Dial(local, remote)

		if err == nil {
			return session, nil
		}

		w.log.Debug().
			Err(err).
			Str("device", remote.String()).
			Int("attempt", attempt).
			Msg("sdp connect failed")
	}

	return nil, fmt.Errorf("%w: cannot connect to %s: %w", exception.ErrIO, remote, err)
}
