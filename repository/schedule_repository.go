package repository

import (
	"context"
	"time"

	"barbershop-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormScheduleRepository struct {
	db *gorm.DB
}

func NewGormScheduleRepository(db *gorm.DB) *GormScheduleRepository {
	return &GormScheduleRepository{db: db}
}

func (r *GormScheduleRepository) ClaimSlot(ctx context.Context, masterID uuid.UUID, date time.Time, start string) (bool, error) {
	// Conditional update: the WHERE clause on is_available makes the
	// check-and-claim a single statement, so two concurrent bookings for
	// the same slot cannot both see it as free.
	result := r.db.WithContext(ctx).
		Model(&models.ScheduleSlot{}).
		Where("master_id = ? AND date = ? AND start_time = ? AND is_available = ?",
			masterID, date, start, true).
		Update("is_available", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *GormScheduleRepository) ReleaseSlot(ctx context.Context, masterID uuid.UUID, date time.Time, start string) error {
	// RowsAffected is deliberately ignored: releasing a slot that was
	// deleted in the meantime is a no-op, not an error.
	return r.db.WithContext(ctx).
		Model(&models.ScheduleSlot{}).
		Where("master_id = ? AND date = ? AND start_time = ?", masterID, date, start).
		Update("is_available", true).Error
}

func (r *GormScheduleRepository) DeleteAvailable(ctx context.Context, masterID uuid.UUID, date time.Time) error {
	return r.db.WithContext(ctx).
		Where("master_id = ? AND date = ? AND is_available = ?", masterID, date, true).
		Delete(&models.ScheduleSlot{}).Error
}

func (r *GormScheduleRepository) CreateSlots(ctx context.Context, slots []models.ScheduleSlot) error {
	if len(slots) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&slots).Error
}

func (r *GormScheduleRepository) ListByDate(ctx context.Context, masterID uuid.UUID, date time.Time) ([]models.ScheduleSlot, error) {
	var slots []models.ScheduleSlot
	err := r.db.WithContext(ctx).
		Where("master_id = ? AND date = ?", masterID, date).
		Order("start_time").
		Find(&slots).Error
	return slots, err
}

func (r *GormScheduleRepository) ListRange(ctx context.Context, masterID uuid.UUID, from, to time.Time) ([]models.ScheduleSlot, error) {
	var slots []models.ScheduleSlot
	err := r.db.WithContext(ctx).
		Where("master_id = ? AND date >= ? AND date <= ?", masterID, from, to).
		Order("date, start_time").
		Find(&slots).Error
	return slots, err
}
