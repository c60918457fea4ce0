package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"barbershop-backend/models"
	"barbershop-backend/repository"
	"barbershop-backend/utils"

	"github.com/google/uuid"
)

// BookingService orchestrates appointment creation and status
// transitions, keeping the appointment and schedule stores consistent.
// Every multi-step mutation runs inside a single transaction.
type BookingService struct {
	repos repository.Repositories
	tx    repository.TxManager
	clock func() time.Time
}

func NewBookingService(repos repository.Repositories, tx repository.TxManager) *BookingService {
	return &BookingService{
		repos: repos,
		tx:    tx,
		clock: time.Now,
	}
}

type CreateAppointmentInput struct {
	MasterID  uuid.UUID
	ServiceID uuid.UUID
	Date      time.Time
	StartTime string
}

// CreateAppointment books a slot for the client. The slot claim is an
// atomic conditional update, so concurrent attempts on the same
// (master, date, time) cannot both succeed.
func (s *BookingService) CreateAppointment(ctx context.Context, clientID uuid.UUID, in CreateAppointmentInput) (*models.Appointment, error) {
	if in.MasterID == uuid.Nil || in.ServiceID == uuid.Nil || in.Date.IsZero() || in.StartTime == "" {
		return nil, fmt.Errorf("%w: master, service, date and start time are required", ErrInvalidRequest)
	}
	if _, err := utils.ParseClock(in.StartTime); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}

	service, err := s.repos.Services.ActiveByID(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: service not found or inactive", ErrNotFound)
		}
		return nil, err
	}

	endTime, err := utils.AddClock(in.StartTime, service.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}

	appointment := &models.Appointment{
		ClientID:        clientID,
		MasterID:        in.MasterID,
		ServiceID:       in.ServiceID,
		AppointmentDate: in.Date,
		StartTime:       in.StartTime,
		EndTime:         endTime,
		TotalPrice:      service.Price,
		Status:          models.AppointmentScheduled,
	}

	err = s.tx.WithTx(ctx, func(repos repository.Repositories) error {
		claimed, err := repos.Schedule.ClaimSlot(ctx, in.MasterID, in.Date, in.StartTime)
		if err != nil {
			return err
		}
		if !claimed {
			return ErrSlotUnavailable
		}

		busy, err := repos.Appointments.ExistsActiveAt(ctx, in.MasterID, in.Date, in.StartTime)
		if err != nil {
			return err
		}
		if busy {
			return ErrConflict
		}

		return repos.Appointments.Create(ctx, appointment)
	})
	if err != nil {
		return nil, err
	}

	return appointment, nil
}

// CancelAppointment moves a scheduled appointment to cancelled and frees
// its slot. The slot release is a no-op when the slot row was deleted.
func (s *BookingService) CancelAppointment(ctx context.Context, callerID uuid.UUID, callerRole string, id uuid.UUID) error {
	appointment, err := s.getAppointment(ctx, id)
	if err != nil {
		return err
	}

	if !CanCancelAppointment(callerRole, callerID, appointment) {
		return fmt.Errorf("%w: not allowed to cancel this appointment", ErrForbidden)
	}
	if appointment.IsTerminal() {
		return fmt.Errorf("%w: appointment is already %s", ErrInvalidStateTransition, appointment.Status)
	}

	appointment.Status = models.AppointmentCancelled
	appointment.UpdatedAt = s.clock()

	return s.tx.WithTx(ctx, func(repos repository.Repositories) error {
		if err := repos.Appointments.Save(ctx, appointment); err != nil {
			return err
		}
		return repos.Schedule.ReleaseSlot(ctx, appointment.MasterID, appointment.AppointmentDate, appointment.StartTime)
	})
}

// CompleteAppointment marks a scheduled appointment as completed. The
// slot stays consumed; completing does not free capacity.
func (s *BookingService) CompleteAppointment(ctx context.Context, callerID uuid.UUID, callerRole string, id uuid.UUID, notes string) (*models.Appointment, error) {
	appointment, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanCompleteAppointment(callerRole, callerID, appointment) {
		return nil, fmt.Errorf("%w: not allowed to complete this appointment", ErrForbidden)
	}
	if appointment.IsTerminal() {
		return nil, fmt.Errorf("%w: appointment is already %s", ErrInvalidStateTransition, appointment.Status)
	}

	appointment.Status = models.AppointmentCompleted
	if notes != "" {
		appointment.Notes = notes
	}
	appointment.UpdatedAt = s.clock()

	if err := s.repos.Appointments.Save(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

type UpdateAppointmentInput struct {
	ServiceID *uuid.UUID
	MasterID  *uuid.UUID
	Date      *time.Time
	StartTime *string
	Status    *string
	Notes     *string
}

// UpdateAppointment is the administrative edit path. A service change
// re-snapshots price and recomputes the end time from the new duration.
// Slot availability is NOT re-validated for a new master/date/time: this
// is a deliberate admin override without a double-booking guard.
func (s *BookingService) UpdateAppointment(ctx context.Context, id uuid.UUID, in UpdateAppointmentInput) (*models.Appointment, error) {
	appointment, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.StartTime != nil {
		if _, err := utils.ParseClock(*in.StartTime); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
		}
		appointment.StartTime = *in.StartTime
	}
	if in.MasterID != nil {
		appointment.MasterID = *in.MasterID
	}
	if in.Date != nil {
		appointment.AppointmentDate = *in.Date
	}

	if in.ServiceID != nil {
		service, err := s.repos.Services.ActiveByID(ctx, *in.ServiceID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: service not found or inactive", ErrNotFound)
			}
			return nil, err
		}
		endTime, err := utils.AddClock(appointment.StartTime, service.DurationMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
		}
		appointment.ServiceID = service.ID
		appointment.TotalPrice = service.Price
		appointment.EndTime = endTime
	}

	if in.Status != nil {
		switch *in.Status {
		case models.AppointmentScheduled, models.AppointmentCompleted, models.AppointmentCancelled:
			appointment.Status = *in.Status
		default:
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidRequest, *in.Status)
		}
	}
	if in.Notes != nil {
		appointment.Notes = *in.Notes
	}

	appointment.UpdatedAt = s.clock()

	if err := s.repos.Appointments.Save(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// DeleteAppointment permanently removes the appointment and releases its
// slot using the pre-deletion (master, date, start time).
func (s *BookingService) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	appointment, err := s.getAppointment(ctx, id)
	if err != nil {
		return err
	}

	return s.tx.WithTx(ctx, func(repos repository.Repositories) error {
		if err := repos.Appointments.Delete(ctx, appointment.ID); err != nil {
			return err
		}
		return repos.Schedule.ReleaseSlot(ctx, appointment.MasterID, appointment.AppointmentDate, appointment.StartTime)
	})
}

func (s *BookingService) getAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	appointment, err := s.repos.Appointments.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: appointment not found", ErrNotFound)
		}
		return nil, err
	}
	return appointment, nil
}
