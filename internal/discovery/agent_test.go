package discovery_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/robgonnella/btscan/internal/bt"
	"github.com/robgonnella/btscan/internal/discovery"
	"github.com/robgonnella/btscan/internal/event"
	"github.com/robgonnella/btscan/internal/exception"
	mock_stack "github.com/robgonnella/btscan/internal/mock/stack"
	"github.com/robgonnella/btscan/internal/sdp"
	"github.com/robgonnella/btscan/internal/service"
	"github.com/robgonnella/btscan/internal/stack"
	"github.com/stretchr/testify/assert"
)

var hci0 = stack.Adapter{
	Path:    "/org/bluez/hci0",
	Address: bt.MustParseAddress("00:11:22:33:44:55"),
	Powered: true,
}

func classRecord(device bt.Address, class uint16, name string) sdp.RawRecord {
	return sdp.RawRecord{
		Device: device,
		Document: fmt.Sprintf(`<record>
  <attribute id="0x0001">
    <sequence>
      <uuid value="0x%04x" />
    </sequence>
  </attribute>
  <attribute id="0x0100">
    <text value="%s" />
  </attribute>
</record>`, class, name),
	}
}

func setup(st *testing.T) (*mock_stack.MockCapability, *discovery.Agent, chan event.Event) {
	ctrl := gomock.NewController(st)

	mockCapability := mock_stack.NewMockCapability(ctrl)
	events := event.NewEventManager()
	listener := make(chan event.Event, 100)

	events.RegisterListener(listener)

	return mockCapability, discovery.NewAgent(mockCapability, events), listener
}

func expectAdapter(mockCapability *mock_stack.MockCapability) {
	mockCapability.EXPECT().Adapters(gomock.Any()).Return([]stack.Adapter{hci0}, nil).AnyTimes()
	mockCapability.EXPECT().Powered(gomock.Any(), gomock.Any()).Return(true, nil).AnyTimes()
}

// collect reads events until the run ends
func collect(st *testing.T, listener chan event.Event) []event.Event {
	received := []event.Event{}
	timeout := time.After(2 * time.Second)

	for {
		select {
		case evt := <-listener:
			received = append(received, evt)

			if evt.Type == event.FinishedEventType || evt.Type == event.CanceledEventType {
				return received
			}
		case <-timeout:
			st.Fatal("timed out waiting for discovery to end")
			return received
		}
	}
}

func types(events []event.Event) []event.EventType {
	result := []event.EventType{}

	for _, evt := range events {
		result = append(result, evt.Type)
	}

	return result
}

func descriptors(events []event.Event) []service.Descriptor {
	result := []service.Descriptor{}

	for _, evt := range events {
		if desc, ok := evt.Payload.(service.Descriptor); ok {
			result = append(result, desc)
		}
	}

	return result
}

func TestAgent(t *testing.T) {
	first := bt.MustParseAddress("AA:BB:CC:DD:EE:01")
	second := bt.MustParseAddress("AA:BB:CC:DD:EE:02")

	t.Run("continues batch after a failed target", func(st *testing.T) {
		mockCapability, agent, listener := setup(st)

		expectAdapter(mockCapability)

		gomock.InOrder(
			mockCapability.EXPECT().
				ServiceRecords(gomock.Any(), hci0, first, gomock.Any()).
				Return(nil, fmt.Errorf("%w: cannot connect to %s", exception.ErrIO, first)),
			mockCapability.EXPECT().
				ServiceRecords(gomock.Any(), hci0, second, gomock.Any()).
				Return([]sdp.RawRecord{classRecord(second, 0x1101, "Serial Port")}, nil),
		)

		req := discovery.NewRequest(
			bt.Address{},
			[]bt.Address{first, second},
			discovery.FullDiscovery,
			nil,
		)

		err := agent.Start(req)

		assert.NoError(st, err)

		received := collect(st, listener)

		assert.Equal(
			st,
			[]event.EventType{event.ServiceDiscoveredEventType, event.FinishedEventType},
			types(received),
		)

		desc := received[0].Payload.(service.Descriptor)

		assert.Equal(st, second, desc.Device)
		assert.Equal(st, "Serial Port", desc.Name)
		assert.Eventually(st, func() bool {
			return agent.State() == discovery.StateInactive
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("minimal run emits deduplicated descriptors in order", func(st *testing.T) {
		mockCapability, agent, listener := setup(st)

		expectAdapter(mockCapability)

		mockCapability.EXPECT().
			DeviceUUIDs(gomock.Any(), hci0, first).
			Return([]string{"0x1105", "bogus", "0x1105", "0000110a-0000-1000-8000-00805f9b34fb"}, nil)

		req := discovery.NewRequest(bt.Address{}, []bt.Address{first}, discovery.MinimalDiscovery, nil)

		assert.NoError(st, agent.Start(req))

		received := collect(st, listener)
		descs := descriptors(received)

		assert.Equal(st, 3, len(received))
		assert.Equal(st, 2, len(descs))
		assert.Equal(st, []uuid.UUID{bt.FromUint16(0x1105)}, descs[0].ClassUUIDs)
		assert.Equal(st, []uuid.UUID{bt.FromUint16(0x110a)}, descs[1].ClassUUIDs)
		assert.Equal(st, event.FinishedEventType, received[2].Type)
	})

	t.Run("drops duplicate and invalid records in full mode", func(st *testing.T) {
		mockCapability, agent, listener := setup(st)

		expectAdapter(mockCapability)

		records := []sdp.RawRecord{
			classRecord(first, 0x1105, "Object Push"),
			classRecord(first, 0x1105, "Object Push again"),
			{Device: first, Document: `<record><attribute id="0x0100"><text value="no uuids" /></attribute></record>`},
			classRecord(first, 0x1112, "Headset Gateway"),
		}

		mockCapability.EXPECT().
			ServiceRecords(gomock.Any(), hci0, first, gomock.Any()).
			Return(records, nil)

		req := discovery.NewRequest(bt.Address{}, []bt.Address{first}, discovery.FullDiscovery, nil)

		assert.NoError(st, agent.Start(req))

		descs := descriptors(collect(st, listener))

		assert.Equal(st, 2, len(descs))
		assert.Equal(st, "Object Push", descs[0].Name)
		assert.Equal(st, "Headset Gateway", descs[1].Name)
	})

	t.Run("filtered run is a subset of the unfiltered run", func(st *testing.T) {
		records := []sdp.RawRecord{
			classRecord(first, 0x1105, "Object Push"),
			classRecord(first, 0x1101, "Serial Port"),
			classRecord(first, 0x1112, "Headset Gateway"),
		}

		run := func(st *testing.T, filter []uuid.UUID) []service.Descriptor {
			mockCapability, agent, listener := setup(st)

			expectAdapter(mockCapability)

			mockCapability.EXPECT().
				ServiceRecords(gomock.Any(), hci0, first, filter).
				Return(records, nil)

			req := discovery.NewRequest(bt.Address{}, []bt.Address{first}, discovery.FullDiscovery, filter)

			assert.NoError(st, agent.Start(req))

			return descriptors(collect(st, listener))
		}

		filter := []uuid.UUID{bt.FromUint16(0x1101), bt.FromUint16(0x1112)}

		all := run(st, []uuid.UUID{})
		filtered := run(st, filter)

		expected := []service.Descriptor{}

		for _, desc := range all {
			if service.NewFilter(filter).Match(desc) {
				expected = append(expected, desc)
			}
		}

		assert.Equal(st, 3, len(all))
		assert.Equal(st, expected, filtered)
	})

	t.Run("malformed record still yields partial descriptor", func(st *testing.T) {
		mockCapability, agent, listener := setup(st)

		expectAdapter(mockCapability)

		doc := `<record>
  <attribute id="0x0001"><sequence><uuid value="0x1101" /></sequence></attribute>
  <attribute id="0x0100"><text value="broken" ></attribute>
</record>`

		mockCapability.EXPECT().
			ServiceRecords(gomock.Any(), hci0, first, gomock.Any()).
			Return([]sdp.RawRecord{{Device: first, Document: doc}}, nil)

		req := discovery.NewRequest(bt.Address{}, []bt.Address{first}, discovery.FullDiscovery, nil)

		assert.NoError(st, agent.Start(req))

		received := collect(st, listener)

		assert.Equal(
			st,
			[]event.EventType{event.ServiceDiscoveredEventType, event.FinishedEventType},
			types(received),
		)
	})

	t.Run("single device failure reports one error then finished", func(st *testing.T) {
		mockCapability, agent, listener := setup(st)

		expectAdapter(mockCapability)

		mockCapability.EXPECT().
			DeviceUUIDs(gomock.Any(), hci0, first).
			Return(nil, fmt.Errorf("%w: device vanished", exception.ErrIO))

		req := discovery.NewRequest(bt.Address{}, []bt.Address{first}, discovery.MinimalDiscovery, nil)

		assert.NoError(st, agent.Start(req))

		received := collect(st, listener)

		assert.Equal(
			st,
			[]event.EventType{event.ErrorEventType, event.FinishedEventType},
			types(received),
		)

		report := received[0].Payload.(exception.Report)

		assert.Equal(st, exception.KindIO, report.Kind)
		assert.ErrorIs(st, report, exception.ErrIO)
	})

	t.Run("powered off adapter is fatal", func(st *testing.T) {
		mockCapability, agent, listener := setup(st)

		mockCapability.EXPECT().Adapters(gomock.Any()).Return([]stack.Adapter{hci0}, nil)
		mockCapability.EXPECT().Powered(gomock.Any(), hci0).Return(false, nil)

		req := discovery.NewRequest(
			bt.Address{},
			[]bt.Address{first, second},
			discovery.MinimalDiscovery,
			nil,
		)

		assert.NoError(st, agent.Start(req))

		received := collect(st, listener)

		assert.Equal(
			st,
			[]event.EventType{event.ErrorEventType, event.FinishedEventType},
			types(received),
		)
		assert.Equal(st, exception.KindPoweredOff, received[0].Payload.(exception.Report).Kind)
	})

	t.Run("adapter powered off between targets ends the batch", func(st *testing.T) {
		mockCapability, agent, listener := setup(st)

		mockCapability.EXPECT().Adapters(gomock.Any()).Return([]stack.Adapter{hci0}, nil)

		gomock.InOrder(
			mockCapability.EXPECT().Powered(gomock.Any(), hci0).Return(true, nil),
			mockCapability.EXPECT().Powered(gomock.Any(), hci0).Return(false, nil),
		)

		mockCapability.EXPECT().
			DeviceUUIDs(gomock.Any(), hci0, first).
			Return([]string{"0x1105"}, nil)

		req := discovery.NewRequest(
			bt.Address{},
			[]bt.Address{first, second},
			discovery.MinimalDiscovery,
			nil,
		)

		assert.NoError(st, agent.Start(req))

		assert.Equal(
			st,
			[]event.EventType{
				event.ServiceDiscoveredEventType,
				event.ErrorEventType,
				event.FinishedEventType,
			},
			types(collect(st, listener)),
		)
	})

	t.Run("resolves the adapter again once when it goes away", func(st *testing.T) {
		mockCapability, agent, listener := setup(st)

		mockCapability.EXPECT().Adapters(gomock.Any()).Return([]stack.Adapter{hci0}, nil).Times(2)
		mockCapability.EXPECT().Powered(gomock.Any(), hci0).Return(true, nil).Times(2)

		gomock.InOrder(
			mockCapability.EXPECT().
				DeviceUUIDs(gomock.Any(), hci0, first).
				Return(nil, fmt.Errorf("%w: hci0", exception.ErrAdapterNotFound)),
			mockCapability.EXPECT().
				DeviceUUIDs(gomock.Any(), hci0, first).
				Return([]string{"0x1105"}, nil),
		)

		req := discovery.NewRequest(bt.Address{}, []bt.Address{first}, discovery.MinimalDiscovery, nil)

		assert.NoError(st, agent.Start(req))

		assert.Equal(
			st,
			[]event.EventType{event.ServiceDiscoveredEventType, event.FinishedEventType},
			types(collect(st, listener)),
		)
	})

	t.Run("zero targets finishes immediately", func(st *testing.T) {
		_, agent, listener := setup(st)

		req := discovery.NewRequest(bt.Address{}, nil, discovery.FullDiscovery, nil)

		assert.NoError(st, agent.Start(req))

		assert.Equal(
			st,
			[]event.EventType{event.FinishedEventType},
			types(collect(st, listener)),
		)
	})

	t.Run("stop cancels the run and drops late results", func(st *testing.T) {
		mockCapability, agent, listener := setup(st)

		expectAdapter(mockCapability)

		started := make(chan struct{})
		release := make(chan struct{})
		returned := make(chan struct{})

		mockCapability.EXPECT().
			ServiceRecords(gomock.Any(), hci0, first, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ stack.Adapter, device bt.Address, _ []uuid.UUID) ([]sdp.RawRecord, error) {
				defer close(returned)
				close(started)
				<-release
				return []sdp.RawRecord{classRecord(device, 0x1101, "Serial Port")}, nil
			})

		req := discovery.NewRequest(
			bt.Address{},
			[]bt.Address{first, second},
			discovery.FullDiscovery,
			nil,
		)

		assert.NoError(st, agent.Start(req))

		<-started

		assert.Equal(st, discovery.StateScanning, agent.State())

		err := agent.Start(req)

		assert.ErrorIs(st, err, exception.ErrAlreadyRunning)

		agent.Stop()

		assert.Equal(st, discovery.StateInactive, agent.State())
		assert.Equal(st, []event.EventType{event.CanceledEventType}, types(collect(st, listener)))

		close(release)
		<-returned

		select {
		case evt := <-listener:
			st.Fatalf("unexpected event after stop: %s", evt.Type)
		case <-time.After(50 * time.Millisecond):
		}

		assert.Equal(st, discovery.StateInactive, agent.State())
	})

	t.Run("stop while inactive still emits canceled", func(st *testing.T) {
		_, agent, listener := setup(st)

		agent.Stop()

		assert.Equal(st, discovery.StateInactive, agent.State())
		assert.Equal(st, []event.EventType{event.CanceledEventType}, types(collect(st, listener)))
	})

	t.Run("can start again after a run finishes", func(st *testing.T) {
		mockCapability, agent, listener := setup(st)

		expectAdapter(mockCapability)

		mockCapability.EXPECT().
			DeviceUUIDs(gomock.Any(), hci0, first).
			Return([]string{"0x1105"}, nil).
			Times(2)

		req := discovery.NewRequest(bt.Address{}, []bt.Address{first}, discovery.MinimalDiscovery, nil)

		assert.NoError(st, agent.Start(req))
		assert.Equal(st, 1, len(descriptors(collect(st, listener))))

		assert.Eventually(st, func() bool {
			return agent.State() == discovery.StateInactive
		}, time.Second, 5*time.Millisecond)

		// results are not shared between runs
		assert.NoError(st, agent.Start(req))
		assert.Equal(st, 1, len(descriptors(collect(st, listener))))
	})

	t.Run("non adapter failures in a batch never emit errors", func(st *testing.T) {
		mockCapability, agent, listener := setup(st)

		expectAdapter(mockCapability)

		mockCapability.EXPECT().
			DeviceUUIDs(gomock.Any(), hci0, gomock.Any()).
			Return(nil, errors.New("org.bluez.Error.Unknown")).
			Times(2)

		req := discovery.NewRequest(
			bt.Address{},
			[]bt.Address{first, second},
			discovery.MinimalDiscovery,
			nil,
		)

		assert.NoError(st, agent.Start(req))

		assert.Equal(
			st,
			[]event.EventType{event.FinishedEventType},
			types(collect(st, listener)),
		)
	})
}
