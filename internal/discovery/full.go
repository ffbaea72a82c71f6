package discovery

import (
	"context"

	"github.com/robgonnella/btscan/internal/bt"
	"github.com/robgonnella/btscan/internal/sdp"
	"github.com/robgonnella/btscan/internal/service"
	"github.com/robgonnella/btscan/internal/stack"
)

// scanResult one-shot hand-off from the background scan to the run
type scanResult struct {
	runID   int
	target  bt.Address
	records []sdp.RawRecord
	err     error
}

// scan fetches full service records for target on a background
// goroutine. The goroutine owns nothing of the agent, it only delivers
// one result which is discarded once the run is no longer current.
func (a *Agent) scan(
	ctx context.Context,
	runID int,
	adapter stack.Adapter,
	target bt.Address,
	filter service.Filter,
) ([]sdp.RawRecord, error) {
	results := make(chan scanResult, 1)

	go func() {
		records, err := a.capability.ServiceRecords(ctx, adapter, target, filter.UUIDs())

		results <- scanResult{
			runID:   runID,
			target:  target,
			records: records,
			err:     err,
		}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-results:
		if !a.current(res.runID) || res.target != target {
			return nil, context.Canceled
		}

		return res.records, res.err
	}
}

// fullLookup turns the records of target into descriptors that pass
// filter. Parse problems never fail the target.
func (a *Agent) fullLookup(
	ctx context.Context,
	runID int,
	adapter stack.Adapter,
	target bt.Address,
	filter service.Filter,
) ([]service.Descriptor, error) {
	records, err := a.scan(ctx, runID, adapter, target, filter)

	if err != nil {
		return nil, err
	}

	descs := []service.Descriptor{}

	for _, record := range records {
		attrs, err := sdp.Parse(record.Document)

		if err != nil {
			a.log.Warn().
				Err(err).
				Str("device", target.String()).
				Msg("malformed service record, using partial attributes")
		}

		desc := service.Build(target, attrs)

		if !desc.Valid() {
			a.log.Debug().Str("device", target.String()).Msg("skipping record without service uuids")
			continue
		}

		if !filter.Match(desc) {
			continue
		}

		descs = append(descs, desc)
	}

	return descs, nil
}
