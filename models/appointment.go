package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment statuses. Completed and cancelled are terminal.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID  uuid.UUID `gorm:"type:uuid;not null;index" json:"clientId"`
	MasterID  uuid.UUID `gorm:"type:uuid;not null;index" json:"masterId"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"serviceId"`

	AppointmentDate time.Time `gorm:"type:date;not null;index" json:"appointmentDate"`
	StartTime       string    `gorm:"type:varchar(5);not null" json:"startTime"` // "HH:MM"
	EndTime         string    `gorm:"type:varchar(5);not null" json:"endTime"`

	// Snapshot of the service price at booking time; later price changes
	// do not affect existing appointments.
	TotalPrice float64 `gorm:"type:decimal(10,2);not null" json:"totalPrice"`

	Status string `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = AppointmentScheduled
	}
	return
}

// IsTerminal reports whether no further status transition is permitted.
func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentCompleted || a.Status == AppointmentCancelled
}
