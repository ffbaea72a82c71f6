package event

type EventType string

const (
	// ServiceDiscoveredEventType payload is a service.Descriptor
	ServiceDiscoveredEventType EventType = "service-discovered"
	// FinishedEventType signals the end of a discovery run
	FinishedEventType EventType = "finished"
	// CanceledEventType signals a discovery run was stopped
	CanceledEventType EventType = "canceled"
	// ErrorEventType payload is an exception.Report
	ErrorEventType EventType = "error"
)

// Event data structure representing any event we may want to react to
type Event struct {
	Type    EventType
	Payload any
}
