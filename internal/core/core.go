package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/robgonnella/btscan/internal/bt"
	"github.com/robgonnella/btscan/internal/config"
	"github.com/robgonnella/btscan/internal/discovery"
	"github.com/robgonnella/btscan/internal/event"
	"github.com/robgonnella/btscan/internal/logger"
	"github.com/robgonnella/btscan/internal/service"
	"github.com/robgonnella/btscan/internal/stack"
)

// Core represents our core data structure
type Core struct {
	conf       config.Config
	capability stack.Capability
	discovery  discovery.Service
	history    service.Service
	events     event.Manager
	logger     logger.Logger
	mux        sync.Mutex
}

// New returns new core module for given configuration
func New(
	conf config.Config,
	capability stack.Capability,
	discovery discovery.Service,
	history service.Service,
	events event.Manager,
) *Core {
	return &Core{
		conf:       conf,
		capability: capability,
		discovery:  discovery,
		history:    history,
		events:     events,
		logger:     logger.New(),
	}
}

// Conf returns the configuration the core was created with
func (c *Core) Conf() config.Config {
	return c.conf
}

// Generation returns the host stack generation in use
func (c *Core) Generation() stack.Generation {
	return c.capability.Generation()
}

// Adapters returns every local adapter with its current power state
func (c *Core) Adapters(ctx context.Context) ([]stack.Adapter, error) {
	adapters, err := c.capability.Adapters(ctx)

	if err != nil {
		return nil, err
	}

	for i, adapter := range adapters {
		powered, err := c.capability.Powered(ctx, adapter)

		if err != nil {
			return nil, fmt.Errorf("power state of %s: %w", adapter.Address, err)
		}

		adapters[i].Powered = powered
	}

	return adapters, nil
}

// NewRequest builds a discovery request for targets from the configured
// defaults. A non empty mode or filter overrides the configuration.
func (c *Core) NewRequest(
	targets []bt.Address,
	mode discovery.Mode,
	filter []uuid.UUID,
) (discovery.Request, error) {
	adapter, err := c.conf.AdapterAddress()

	if err != nil {
		return discovery.Request{}, err
	}

	if mode == "" {
		if mode, err = c.conf.DiscoveryMode(); err != nil {
			return discovery.Request{}, err
		}
	}

	if len(filter) == 0 {
		if filter, err = c.conf.FilterUUIDs(); err != nil {
			return discovery.Request{}, err
		}
	}

	return discovery.NewRequest(adapter, targets, mode, filter), nil
}

// History returns stored services, only those of device when it is set
func (c *Core) History(device *bt.Address) ([]*service.Descriptor, error) {
	if device != nil {
		return c.history.GetByDevice(*device)
	}

	return c.history.GetAll()
}

// ClearHistory removes every stored service
func (c *Core) ClearHistory() error {
	return c.history.Clear()
}
