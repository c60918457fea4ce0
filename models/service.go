package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	Description     string    `json:"description"`
	Price           float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationMinutes int       `gorm:"not null" json:"durationMinutes"`
	IsActive        bool      `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// MasterService links a master to a service they perform.
type MasterService struct {
	MasterID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"masterId"`
	ServiceID uuid.UUID `gorm:"type:uuid;primaryKey" json:"serviceId"`
}

func (MasterService) TableName() string {
	return "master_services"
}
