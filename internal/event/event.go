package event

import (
	"sync"

	"github.com/robgonnella/btscan/internal/exception"
	"github.com/robgonnella/btscan/internal/logger"
	"github.com/robgonnella/btscan/internal/util"
)

// represents a registered event listener. Events are queued and handed
// to the listener channel in the order they were sent.
type eventChannel struct {
	id         int
	eventTypes []EventType
	send       chan Event
	queue      []Event
	mux        sync.Mutex
	cond       *sync.Cond
	done       chan struct{}
	stopped    bool
}

func newEventChannel(id int, send chan Event, eventTypes []EventType) *eventChannel {
	c := &eventChannel{
		id:         id,
		eventTypes: eventTypes,
		send:       send,
		queue:      []Event{},
		done:       make(chan struct{}),
	}

	c.cond = sync.NewCond(&c.mux)

	go c.pump()

	return c
}

func (c *eventChannel) wants(t EventType) bool {
	return len(c.eventTypes) == 0 || util.SliceIncludes(c.eventTypes, t)
}

func (c *eventChannel) push(evt Event) {
	c.mux.Lock()
	defer c.mux.Unlock()

	if c.stopped {
		return
	}

	c.queue = append(c.queue, evt)
	c.cond.Signal()
}

func (c *eventChannel) stop() {
	c.mux.Lock()
	defer c.mux.Unlock()

	if c.stopped {
		return
	}

	c.stopped = true
	close(c.done)
	c.cond.Signal()
}

func (c *eventChannel) pump() {
	for {
		c.mux.Lock()

		for len(c.queue) == 0 && !c.stopped {
			c.cond.Wait()
		}

		if c.stopped {
			c.mux.Unlock()
			return
		}

		evt := c.queue[0]
		c.queue = c.queue[1:]

		c.mux.Unlock()

		select {
		case c.send <- evt:
		case <-c.done:
			return
		}
	}
}

// EventManager represents our event.Manager implementation
type EventManager struct {
	log       logger.Logger
	channelID int
	evtChans  []*eventChannel
	mux       sync.Mutex
}

// NewEventManager returns a new instance of EventManager
func NewEventManager() *EventManager {
	return &EventManager{
		log:      logger.New(),
		evtChans: []*eventChannel{},
	}
}

// RegisterListener registers listener for the given event types, or for
// every event when none are given. Returns the listener id.
func (m *EventManager) RegisterListener(listener chan Event, eventTypes ...EventType) int {
	m.mux.Lock()
	defer m.mux.Unlock()

	m.channelID++

	m.evtChans = append(
		m.evtChans,
		newEventChannel(m.channelID, listener, eventTypes),
	)

	return m.channelID
}

// RemoveListener stops delivery to a registered listener. Events still
// queued for it are dropped. The listener channel is left open.
func (m *EventManager) RemoveListener(id int) int {
	m.mux.Lock()
	defer m.mux.Unlock()

	remaining := []*eventChannel{}

	for _, c := range m.evtChans {
		if c.id == id {
			c.stop()
			continue
		}

		remaining = append(remaining, c)
	}

	m.evtChans = remaining

	return id
}

// Send queues evt for every interested listener without blocking
func (m *EventManager) Send(evt Event) {
	m.mux.Lock()
	defer m.mux.Unlock()

	for _, c := range m.evtChans {
		if c.wants(evt.Type) {
			c.push(evt)
		}
	}
}

// ReportError sends an error event describing err
func (m *EventManager) ReportError(err error) {
	m.log.Error().Err(err).Msg("reporting error")

	m.Send(Event{
		Type:    ErrorEventType,
		Payload: exception.NewReport(err),
	})
}
