package core_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/robgonnella/btscan/internal/bt"
	"github.com/robgonnella/btscan/internal/config"
	"github.com/robgonnella/btscan/internal/core"
	"github.com/robgonnella/btscan/internal/discovery"
	"github.com/robgonnella/btscan/internal/event"
	"github.com/robgonnella/btscan/internal/exception"
	mock_discovery "github.com/robgonnella/btscan/internal/mock/discovery"
	mock_service "github.com/robgonnella/btscan/internal/mock/service"
	mock_stack "github.com/robgonnella/btscan/internal/mock/stack"
	"github.com/robgonnella/btscan/internal/service"
	"github.com/robgonnella/btscan/internal/stack"
	"github.com/stretchr/testify/assert"
)

func TestCore(t *testing.T) {
	ctrl := gomock.NewController(t)

	defer ctrl.Finish()

	mockCapability := mock_stack.NewMockCapability(ctrl)
	mockDiscovery := mock_discovery.NewMockService(ctrl)
	mockHistory := mock_service.NewMockService(ctrl)
	events := event.NewEventManager()

	conf := config.Default()
	conf.Mode = string(discovery.FullDiscovery)
	conf.Filter = []string{"0x1101"}

	coreService := core.New(*conf, mockCapability, mockDiscovery, mockHistory, events)

	device := bt.MustParseAddress("AA:BB:CC:DD:EE:FF")

	desc := service.NewDescriptor(device)
	desc.SetClassUUIDs([]uuid.UUID{bt.FromUint16(0x1101)})
	desc.SetName("Serial Port")

	t.Run("returns config", func(st *testing.T) {
		assert.Equal(st, *conf, coreService.Conf())
	})

	t.Run("builds requests from config", func(st *testing.T) {
		req, err := coreService.NewRequest([]bt.Address{device}, "", nil)

		assert.NoError(st, err)
		assert.Equal(st, discovery.FullDiscovery, req.Mode)
		assert.Equal(st, []uuid.UUID{bt.FromUint16(0x1101)}, req.Filter)
		assert.True(st, req.SingleDevice)
		assert.True(st, req.Adapter.IsZero())
	})

	t.Run("request overrides config", func(st *testing.T) {
		filter := []uuid.UUID{bt.FromUint16(0x1105)}

		req, err := coreService.NewRequest(
			[]bt.Address{device, device},
			discovery.MinimalDiscovery,
			filter,
		)

		assert.NoError(st, err)
		assert.Equal(st, discovery.MinimalDiscovery, req.Mode)
		assert.Equal(st, filter, req.Filter)
		assert.False(st, req.SingleDevice)
	})

	t.Run("lists adapters with power state", func(st *testing.T) {
		hci0 := stack.Adapter{Path: "/org/bluez/hci0", Address: bt.MustParseAddress("00:11:22:33:44:55")}
		hci1 := stack.Adapter{Path: "/org/bluez/hci1", Address: bt.MustParseAddress("00:11:22:33:44:66")}

		mockCapability.EXPECT().Adapters(gomock.Any()).Return([]stack.Adapter{hci0, hci1}, nil)
		mockCapability.EXPECT().Powered(gomock.Any(), hci0).Return(true, nil)
		mockCapability.EXPECT().Powered(gomock.Any(), hci1).Return(false, nil)

		adapters, err := coreService.Adapters(context.Background())

		assert.NoError(st, err)
		assert.True(st, adapters[0].Powered)
		assert.False(st, adapters[1].Powered)
	})

	t.Run("discovers and records services", func(st *testing.T) {
		req, _ := coreService.NewRequest([]bt.Address{device}, "", nil)

		mockDiscovery.EXPECT().Start(req).DoAndReturn(func(discovery.Request) error {
			events.Send(event.Event{Type: event.ServiceDiscoveredEventType, Payload: desc})
			events.Send(event.Event{Type: event.FinishedEventType})
			return nil
		})

		mockHistory.EXPECT().Record(desc).Return(nil)

		found := []service.Descriptor{}

		err := coreService.Discover(context.Background(), req, func(d service.Descriptor) {
			found = append(found, d)
		})

		assert.NoError(st, err)
		assert.Equal(st, []service.Descriptor{desc}, found)
	})

	t.Run("history failure does not end discovery", func(st *testing.T) {
		req, _ := coreService.NewRequest([]bt.Address{device}, "", nil)

		mockDiscovery.EXPECT().Start(req).DoAndReturn(func(discovery.Request) error {
			events.Send(event.Event{Type: event.ServiceDiscoveredEventType, Payload: desc})
			events.Send(event.Event{Type: event.FinishedEventType})
			return nil
		})

		mockHistory.EXPECT().Record(desc).Return(errors.New("disk full"))

		count := 0

		err := coreService.Discover(context.Background(), req, func(service.Descriptor) {
			count++
		})

		assert.NoError(st, err)
		assert.Equal(st, 1, count)
	})

	t.Run("returns reported discovery error", func(st *testing.T) {
		req, _ := coreService.NewRequest([]bt.Address{device}, "", nil)

		mockDiscovery.EXPECT().Start(req).DoAndReturn(func(discovery.Request) error {
			events.ReportError(fmt.Errorf("%w: hci0", exception.ErrPoweredOff))
			events.Send(event.Event{Type: event.FinishedEventType})
			return nil
		})

		err := coreService.Discover(context.Background(), req, nil)

		assert.ErrorIs(st, err, exception.ErrPoweredOff)

		var report exception.Report

		assert.ErrorAs(st, err, &report)
		assert.Equal(st, exception.KindPoweredOff, report.Kind)
	})

	t.Run("returns start error", func(st *testing.T) {
		req, _ := coreService.NewRequest([]bt.Address{device}, "", nil)

		mockDiscovery.EXPECT().Start(req).Return(exception.ErrAlreadyRunning)

		err := coreService.Discover(context.Background(), req, nil)

		assert.ErrorIs(st, err, exception.ErrAlreadyRunning)
	})

	t.Run("stops discovery when context is canceled", func(st *testing.T) {
		req, _ := coreService.NewRequest([]bt.Address{device}, "", nil)

		ctx, cancel := context.WithCancel(context.Background())

		mockDiscovery.EXPECT().Start(req).DoAndReturn(func(discovery.Request) error {
			cancel()
			return nil
		})

		mockDiscovery.EXPECT().Stop().Do(func() {
			events.Send(event.Event{Type: event.CanceledEventType})
		})

		err := coreService.Discover(ctx, req, nil)

		assert.ErrorIs(st, err, context.Canceled)
	})

	t.Run("returns history", func(st *testing.T) {
		stored := []*service.Descriptor{&desc}

		mockHistory.EXPECT().GetAll().Return(stored, nil)
		mockHistory.EXPECT().GetByDevice(device).Return(stored, nil)
		mockHistory.EXPECT().Clear().Return(nil)

		all, err := coreService.History(nil)

		assert.NoError(st, err)
		assert.Equal(st, stored, all)

		byDevice, err := coreService.History(&device)

		assert.NoError(st, err)
		assert.Equal(st, stored, byDevice)

		assert.NoError(st, coreService.ClearHistory())
	})
}
