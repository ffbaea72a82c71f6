package service

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/robgonnella/btscan/internal/bt"
	"github.com/robgonnella/btscan/internal/exception"
	"github.com/robgonnella/btscan/internal/sdp"
)

// SqliteRepo is our repo implementation for sqlite
type SqliteRepo struct {
	db *gorm.DB
}

// NewSqliteRepo returns a new btscan sqlite repo
func NewSqliteRepo(db *gorm.DB) *SqliteRepo {
	return &SqliteRepo{
		db: db,
	}
}

// Get returns a descriptor from the db
func (r *SqliteRepo) Get(key string) (*Descriptor, error) {
	if key == "" {
		return nil, errors.New("service key cannot be empty")
	}

	model := ServiceModel{Key: key}

	if result := r.db.First(&model); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, exception.ErrRecordNotFound
		}

		return nil, result.Error
	}

	return modelToDescriptor(&model)
}

// GetAll returns all descriptors in db ordered by device
func (r *SqliteRepo) GetAll() ([]*Descriptor, error) {
	models := []ServiceModel{}

	if result := r.db.Order("device, service_key").Find(&models); result.Error != nil {
		return nil, result.Error
	}

	return modelsToDescriptors(models)
}

// GetByDevice returns all descriptors stored for device
func (r *SqliteRepo) GetByDevice(device bt.Address) ([]*Descriptor, error) {
	models := []ServiceModel{}

	result := r.db.
		Where("device = ?", device.String()).
		Order("service_key").
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	return modelsToDescriptors(models)
}

// Create creates a new descriptor in db
func (r *SqliteRepo) Create(desc *Descriptor) (*Descriptor, error) {
	if !desc.Valid() {
		return nil, errors.New("cannot store invalid service descriptor")
	}

	model, err := descriptorToModel(desc)

	if err != nil {
		return nil, err
	}

	if result := r.db.Create(model); result.Error != nil {
		return nil, result.Error
	}

	return modelToDescriptor(model)
}

// Update updates a descriptor in db
func (r *SqliteRepo) Update(desc *Descriptor) (*Descriptor, error) {
	if !desc.Valid() {
		return nil, errors.New("cannot store invalid service descriptor")
	}

	model, err := descriptorToModel(desc)

	if err != nil {
		return nil, err
	}

	if result := r.db.Save(model); result.Error != nil {
		return nil, result.Error
	}

	return modelToDescriptor(model)
}

// Delete deletes a descriptor from db
func (r *SqliteRepo) Delete(key string) error {
	if key == "" {
		return errors.New("service key cannot be empty")
	}

	return r.db.Delete(&ServiceModel{Key: key}).Error
}

// Clear deletes every stored descriptor
func (r *SqliteRepo) Clear() error {
	return r.db.Where("1 = 1").Delete(&ServiceModel{}).Error
}

// helpers
func modelsToDescriptors(models []ServiceModel) ([]*Descriptor, error) {
	descs := []*Descriptor{}

	for i := range models {
		d, err := modelToDescriptor(&models[i])

		if err != nil {
			return nil, err
		}

		descs = append(descs, d)
	}

	return descs, nil
}

func modelToDescriptor(model *ServiceModel) (*Descriptor, error) {
	device, err := bt.ParseAddress(model.Device)

	if err != nil {
		return nil, err
	}

	desc := NewDescriptor(device)

	if model.ServiceUUID != "" {
		u, err := uuid.Parse(model.ServiceUUID)

		if err != nil {
			return nil, err
		}

		desc.ServiceUUID = &u
	}

	if err := json.Unmarshal([]byte(model.ClassUUIDs.String()), &desc.ClassUUIDs); err != nil {
		return nil, err
	}

	attrs, err := sdp.UnmarshalAttributes([]byte(model.Attributes.String()))

	if err != nil {
		return nil, err
	}

	desc.Attributes = attrs
	desc.Name = model.Name
	desc.Description = model.Description
	desc.Provider = model.Provider

	return &desc, nil
}

func descriptorToModel(desc *Descriptor) (*ServiceModel, error) {
	classes := desc.ClassUUIDs

	if classes == nil {
		classes = []uuid.UUID{}
	}

	classBytes, err := json.Marshal(classes)

	if err != nil {
		return nil, err
	}

	attrBytes, err := sdp.MarshalAttributes(desc.Attributes)

	if err != nil {
		return nil, err
	}

	serviceUUID := ""

	if desc.ServiceUUID != nil {
		serviceUUID = desc.ServiceUUID.String()
	}

	return &ServiceModel{
		Key:         desc.Key(),
		Device:      desc.Device.String(),
		ServiceUUID: serviceUUID,
		ClassUUIDs:  datatypes.JSON(classBytes),
		Name:        desc.Name,
		Description: desc.Description,
		Provider:    desc.Provider,
		Attributes:  datatypes.JSON(attrBytes),
	}, nil
}
