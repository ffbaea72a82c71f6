package core

import (
	"context"

	"github.com/robgonnella/btscan/internal/discovery"
	"github.com/robgonnella/btscan/internal/event"
	"github.com/robgonnella/btscan/internal/exception"
	"github.com/robgonnella/btscan/internal/service"
)

// Discover runs one discovery and blocks until it ends. Every discovered
// service is stored in the history and handed to onService. Canceling
// ctx stops the discovery and returns ctx.Err(). A fatal discovery error
// is returned as an exception.Report.
func (c *Core) Discover(
	ctx context.Context,
	req discovery.Request,
	onService func(desc service.Descriptor),
) error {
	c.mux.Lock()
	defer c.mux.Unlock()

	evtReceiveChan := make(chan event.Event, 100)

	// create event subscription
	subscription := c.events.RegisterListener(evtReceiveChan)

	defer c.events.RemoveListener(subscription)

	if err := c.discovery.Start(req); err != nil {
		return err
	}

	done := ctx.Done()

	var runErr error

	for {
		select {
		case <-done:
			// Stop always answers with a canceled event
			done = nil
			c.discovery.Stop()
		case evt := <-evtReceiveChan:
			switch evt.Type {
			case event.ServiceDiscoveredEventType:
				c.handleService(evt.Payload.(service.Descriptor), onService)
			case event.ErrorEventType:
				report := evt.Payload.(exception.Report)
				c.logger.Error().Str("kind", string(report.Kind)).Msg(report.Message)
				runErr = report
			case event.FinishedEventType:
				if done == nil {
					continue
				}

				return runErr
			case event.CanceledEventType:
				return ctx.Err()
			}
		}
	}
}

func (c *Core) handleService(desc service.Descriptor, onService func(desc service.Descriptor)) {
	fields := map[string]interface{}{
		"device":  desc.Device.String(),
		"name":    desc.Name,
		"classes": len(desc.ClassUUIDs),
	}

	if desc.ServiceUUID != nil {
		fields["uuid"] = desc.ServiceUUID.String()
	}

	if channel, ok := desc.RFCOMMChannel(); ok {
		fields["rfcomm"] = channel
	}

	c.logger.Debug().Fields(fields).Msg("Event Received")

	if err := c.history.Record(desc); err != nil {
		c.logger.Warn().Err(err).Str("key", desc.Key()).Msg("failed to store service")
	}

	if onService != nil {
		onService(desc)
	}
}
