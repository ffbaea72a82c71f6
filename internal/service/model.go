package service

import (
	"time"

	"gorm.io/datatypes"
)

// ServiceModel represents a discovered service stored in the database
type ServiceModel struct {
	Key         string `gorm:"primaryKey;column:service_key"`
	Device      string `gorm:"index"`
	ServiceUUID string
	ClassUUIDs  datatypes.JSON
	Name        string
	Description string
	Provider    string
	Attributes  datatypes.JSON
	UpdatedAt   time.Time
}

// TableName implements gorm's tabler interface
func (ServiceModel) TableName() string {
	return "services"
}
