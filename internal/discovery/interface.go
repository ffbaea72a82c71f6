package discovery

//go:generate mockgen -destination=../mock/discovery/mock_discovery.go -package=mock_discovery . Service

// State represents the lifecycle of a discovery run
type State string

const (
	StateInactive  State = "inactive"
	StateResolving State = "resolving"
	StateScanning  State = "scanning"
	StateFinished  State = "finished"
)

// Service interface for discovering the services of remote devices
type Service interface {
	Start(req Request) error
	Stop()
	State() State
}
