package discovery

import (
	"context"
	"errors"
	"sync"

	"github.com/robgonnella/btscan/internal/bt"
	"github.com/robgonnella/btscan/internal/event"
	"github.com/robgonnella/btscan/internal/exception"
	"github.com/robgonnella/btscan/internal/logger"
	"github.com/robgonnella/btscan/internal/service"
	"github.com/robgonnella/btscan/internal/stack"
)

// Agent implements the Service interface on top of a host stack
// capability. Each run processes its targets in order on one goroutine.
type Agent struct {
	capability stack.Capability
	events     event.Manager
	log        logger.Logger
	mux        sync.Mutex
	state      State
	runID      int
	cancel     context.CancelFunc
	results    *service.ResultSet
}

// NewAgent returns a new inactive Agent
func NewAgent(capability stack.Capability, events event.Manager) *Agent {
	return &Agent{
		capability: capability,
		events:     events,
		log:        logger.New().WithComponent("discovery"),
		state:      StateInactive,
	}
}

// Start begins a discovery run in the background. Results and the end
// of the run are reported through the event manager.
func (a *Agent) Start(req Request) error {
	a.mux.Lock()
	defer a.mux.Unlock()

	if a.state != StateInactive {
		return exception.ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(context.Background())

	a.runID++
	a.cancel = cancel
	a.state = StateResolving
	a.results = service.NewResultSet()

	a.log.Info().
		Str("mode", string(req.Mode)).
		Int("targets", len(req.Targets)).
		Msg("starting service discovery")

	go a.run(ctx, a.runID, req)

	return nil
}

// Stop cancels the current run, if any, and emits a canceled event.
// Nothing else is emitted for the stopped run.
func (a *Agent) Stop() {
	a.mux.Lock()
	defer a.mux.Unlock()

	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}

	a.runID++
	a.state = StateInactive
	a.results = nil

	a.log.Debug().Msg("service discovery stopped")

	a.events.Send(event.Event{Type: event.CanceledEventType})
}

// State returns the current state of the agent
func (a *Agent) State() State {
	a.mux.Lock()
	defer a.mux.Unlock()
	return a.state
}

func (a *Agent) current(runID int) bool {
	a.mux.Lock()
	defer a.mux.Unlock()
	return a.runID == runID
}

func (a *Agent) transition(runID int, state State) bool {
	a.mux.Lock()
	defer a.mux.Unlock()

	if a.runID != runID {
		return false
	}

	a.state = state

	return true
}

func (a *Agent) run(ctx context.Context, runID int, req Request) {
	if len(req.Targets) == 0 {
		a.finish(runID)
		return
	}

	resolver := NewAdapterResolver(a.capability)
	filter := service.NewFilter(req.Filter)

	adapter, err := resolver.Resolve(ctx, req.Adapter)

	if err != nil {
		a.fail(runID, err)
		return
	}

	a.log.Debug().Str("adapter", adapter.Address.String()).Msg("using adapter")

	if !a.transition(runID, StateScanning) {
		return
	}

	for i, target := range req.Targets {
		if ctx.Err() != nil || !a.current(runID) {
			return
		}

		if i > 0 {
			// the adapter may have gone away or powered off since the
			// last target
			adapter, err = resolver.Resolve(ctx, req.Adapter)

			if err != nil {
				a.fail(runID, err)
				return
			}
		}

		err = a.discoverTarget(ctx, runID, resolver, &adapter, req, filter, target)

		if err == nil {
			continue
		}

		if ctx.Err() != nil || !a.current(runID) {
			return
		}

		if adapterError(err) || req.SingleDevice {
			a.fail(runID, err)
			return
		}

		a.log.Warn().
			Err(err).
			Str("device", target.String()).
			Msg("service discovery failed for device, continuing")
	}

	a.finish(runID)
}

func (a *Agent) discoverTarget(
	ctx context.Context,
	runID int,
	resolver *AdapterResolver,
	adapter *stack.Adapter,
	req Request,
	filter service.Filter,
	target bt.Address,
) error {
	descs, err := a.lookup(ctx, runID, *adapter, req.Mode, filter, target)

	if errors.Is(err, exception.ErrAdapterNotFound) && ctx.Err() == nil {
		a.log.Debug().Err(err).Msg("adapter lost, resolving again")

		resolver.Invalidate()

		resolved, rerr := resolver.Resolve(ctx, req.Adapter)

		if rerr != nil {
			return rerr
		}

		*adapter = resolved

		descs, err = a.lookup(ctx, runID, *adapter, req.Mode, filter, target)
	}

	if err != nil {
		return err
	}

	a.emit(runID, descs)

	return nil
}

func (a *Agent) lookup(
	ctx context.Context,
	runID int,
	adapter stack.Adapter,
	mode Mode,
	filter service.Filter,
	target bt.Address,
) ([]service.Descriptor, error) {
	if mode == FullDiscovery {
		return a.fullLookup(ctx, runID, adapter, target, filter)
	}

	uuids, err := a.capability.DeviceUUIDs(ctx, adapter, target)

	if err != nil {
		return nil, err
	}

	a.log.Debug().
		Str("device", target.String()).
		Strs("uuids", uuids).
		Msg("minimal uuid list")

	return MinimalLookup(target, uuids, filter), nil
}

func (a *Agent) emit(runID int, descs []service.Descriptor) {
	a.mux.Lock()
	defer a.mux.Unlock()

	if a.runID != runID {
		return
	}

	for _, desc := range descs {
		if !a.results.Add(desc) {
			continue
		}

		a.log.Info().
			Str("device", desc.Device.String()).
			Str("name", desc.Name).
			Msg("discovered service")

		a.events.Send(event.Event{
			Type:    event.ServiceDiscoveredEventType,
			Payload: desc,
		})
	}
}

func (a *Agent) fail(runID int, err error) {
	a.mux.Lock()
	defer a.mux.Unlock()

	if a.runID != runID {
		return
	}

	a.log.Error().Err(err).Msg("service discovery failed")

	a.events.ReportError(err)
	a.end()
}

func (a *Agent) finish(runID int) {
	a.mux.Lock()
	defer a.mux.Unlock()

	if a.runID != runID {
		return
	}

	a.log.Info().Int("services", a.results.Len()).Msg("service discovery finished")

	a.end()
}

// end must be called with the lock held
func (a *Agent) end() {
	a.state = StateFinished

	a.events.Send(event.Event{Type: event.FinishedEventType})

	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}

	a.results = nil
	a.state = StateInactive
}

func adapterError(err error) bool {
	return errors.Is(err, exception.ErrAdapterNotFound) ||
		errors.Is(err, exception.ErrPoweredOff)
}
