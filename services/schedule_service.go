package services

import (
	"context"
	"fmt"
	"time"

	"barbershop-backend/models"
	"barbershop-backend/repository"
	"barbershop-backend/utils"

	"github.com/google/uuid"
)

// Number of days returned by GetSchedule when no date is given.
const scheduleWindowDays = 14

// ScheduleService manages a master's bookable calendar.
type ScheduleService struct {
	repos repository.Repositories
	tx    repository.TxManager
	clock func() time.Time
}

func NewScheduleService(repos repository.Repositories, tx repository.TxManager) *ScheduleService {
	return &ScheduleService{
		repos: repos,
		tx:    tx,
		clock: time.Now,
	}
}

type SlotInput struct {
	StartTime string
	EndTime   string
}

// CreateSchedule replaces the master's open slots for the date with the
// given list. Slots already booked for that date are left untouched, so
// a schedule rewrite never breaks existing appointments.
func (s *ScheduleService) CreateSchedule(ctx context.Context, masterID uuid.UUID, date time.Time, slots []SlotInput) error {
	if masterID == uuid.Nil || date.IsZero() || len(slots) == 0 {
		return fmt.Errorf("%w: date and time slots are required", ErrInvalidRequest)
	}

	rows := make([]models.ScheduleSlot, 0, len(slots))
	for _, slot := range slots {
		start, err := utils.ParseClock(slot.StartTime)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidRequest, err)
		}
		end, err := utils.ParseClock(slot.EndTime)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidRequest, err)
		}
		if end <= start {
			return fmt.Errorf("%w: slot %s-%s ends before it starts", ErrInvalidRequest, slot.StartTime, slot.EndTime)
		}
		rows = append(rows, models.ScheduleSlot{
			MasterID:    masterID,
			Date:        date,
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
			IsAvailable: true,
		})
	}

	return s.tx.WithTx(ctx, func(repos repository.Repositories) error {
		if err := repos.Schedule.DeleteAvailable(ctx, masterID, date); err != nil {
			return err
		}
		return repos.Schedule.CreateSlots(ctx, rows)
	})
}

// GetSchedule returns the master's slots for the date, or for the next
// two weeks when no date is given.
func (s *ScheduleService) GetSchedule(ctx context.Context, masterID uuid.UUID, date *time.Time) ([]models.ScheduleSlot, error) {
	if masterID == uuid.Nil {
		return nil, fmt.Errorf("%w: master is required", ErrInvalidRequest)
	}
	if date != nil {
		return s.repos.Schedule.ListByDate(ctx, masterID, *date)
	}
	from := utils.BeginningOfDay(s.clock())
	to := from.AddDate(0, 0, scheduleWindowDays)
	return s.repos.Schedule.ListRange(ctx, masterID, from, to)
}
