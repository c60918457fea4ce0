package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleSlot is one bookable unit of a master's day.
// Natural key = (master_id, date, start_time).
type ScheduleSlot struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MasterID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_master_date_start,priority:1" json:"masterId"`

	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_master_date_start,priority:2" json:"date"`
	StartTime string    `gorm:"type:varchar(5);not null;uniqueIndex:idx_master_date_start,priority:3" json:"startTime"` // "HH:MM"
	EndTime   string    `gorm:"type:varchar(5);not null" json:"endTime"`

	IsAvailable bool `gorm:"default:true" json:"isAvailable"`
}

func (ScheduleSlot) TableName() string {
	return "master_schedules"
}

func (s *ScheduleSlot) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
