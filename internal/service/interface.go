package service

import "github.com/robgonnella/btscan/internal/bt"

//go:generate mockgen -destination=../mock/service/mock_service.go -package=mock_service . Repo,Service

// Repo interface representing access to stored service descriptors
type Repo interface {
	Get(key string) (*Descriptor, error)
	GetAll() ([]*Descriptor, error)
	GetByDevice(device bt.Address) ([]*Descriptor, error)
	Create(desc *Descriptor) (*Descriptor, error)
	Update(desc *Descriptor) (*Descriptor, error)
	Delete(key string) error
	Clear() error
}

// Service interface for the history of discovered services
type Service interface {
	Record(desc Descriptor) error
	GetAll() ([]*Descriptor, error)
	GetByDevice(device bt.Address) ([]*Descriptor, error)
	Clear() error
}
