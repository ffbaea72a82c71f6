package event

//go:generate mockgen -destination=../mock/event/event.go -package=mock_event . Manager

// Manager fans events out to registered listeners
type Manager interface {
	RegisterListener(listener chan Event, eventTypes ...EventType) int
	RemoveListener(id int) int
	Send(event Event)
	ReportError(err error)
}
