package service

import (
	"errors"

	"github.com/robgonnella/btscan/internal/bt"
	"github.com/robgonnella/btscan/internal/exception"
	"github.com/robgonnella/btscan/internal/logger"
)

// HistoryService represents our service.Service implementation
type HistoryService struct {
	log  logger.Logger
	repo Repo
}

// NewHistoryService returns a new instance of HistoryService
func NewHistoryService(repo Repo) *HistoryService {
	return &HistoryService{
		log:  logger.New(),
		repo: repo,
	}
}

// Record adds or updates a discovered service
func (s *HistoryService) Record(desc Descriptor) error {
	_, err := s.repo.Get(desc.Key())

	if errors.Is(err, exception.ErrRecordNotFound) {
		// handle add case
		_, err2 := s.repo.Create(&desc)
		return err2
	}

	if err != nil {
		// handle all other errors
		return err
	}

	// handle update case
	_, err = s.repo.Update(&desc)

	if err == nil {
		s.log.Debug().Str("key", desc.Key()).Msg("updated stored service")
	}

	return err
}

// GetAll returns every stored service
func (s *HistoryService) GetAll() ([]*Descriptor, error) {
	return s.repo.GetAll()
}

// GetByDevice returns the stored services of one device
func (s *HistoryService) GetByDevice(device bt.Address) ([]*Descriptor, error) {
	return s.repo.GetByDevice(device)
}

// Clear removes all stored services
func (s *HistoryService) Clear() error {
	return s.repo.Clear()
}
