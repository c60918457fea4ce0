package repository

import (
	"context"
	"errors"
	"time"

	"barbershop-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

type ServiceRepository interface {
	// ActiveByID returns the service only if it exists and is active.
	ActiveByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
}

type ScheduleRepository interface {
	// ClaimSlot atomically flips is_available from true to false for the
	// slot at (masterID, date, start) and reports whether the flip
	// happened. A false result means the slot is missing or already
	// claimed.
	ClaimSlot(ctx context.Context, masterID uuid.UUID, date time.Time, start string) (bool, error)

	// ReleaseSlot sets the slot back to available. Releasing a slot that
	// no longer exists is a no-op.
	ReleaseSlot(ctx context.Context, masterID uuid.UUID, date time.Time, start string) error

	// DeleteAvailable removes all still-available slots for the master on
	// the given date; booked slots are left untouched.
	DeleteAvailable(ctx context.Context, masterID uuid.UUID, date time.Time) error

	CreateSlots(ctx context.Context, slots []models.ScheduleSlot) error

	ListByDate(ctx context.Context, masterID uuid.UUID, date time.Time) ([]models.ScheduleSlot, error)
	ListRange(ctx context.Context, masterID uuid.UUID, from, to time.Time) ([]models.ScheduleSlot, error)
}

type AppointmentRepository interface {
	ByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error)

	// ExistsActiveAt reports whether a non-cancelled appointment already
	// occupies (masterID, date, start).
	ExistsActiveAt(ctx context.Context, masterID uuid.UUID, date time.Time, start string) (bool, error)

	Create(ctx context.Context, appointment *models.Appointment) error
	Save(ctx context.Context, appointment *models.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repositories bundles the stores the booking workflow operates on.
type Repositories struct {
	Services     ServiceRepository
	Schedule     ScheduleRepository
	Appointments AppointmentRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Services:     NewGormServiceRepository(db),
		Schedule:     NewGormScheduleRepository(db),
		Appointments: NewGormAppointmentRepository(db),
	}
}

// TxManager runs a unit of work so that dependent writes either all
// happen or none do.
type TxManager interface {
	WithTx(ctx context.Context, fn func(repos Repositories) error) error
}

type GormTxManager struct {
	db *gorm.DB
}

func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

func (m *GormTxManager) WithTx(ctx context.Context, fn func(repos Repositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
