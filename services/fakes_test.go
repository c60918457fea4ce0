package services

import (
	"context"
	"fmt"
	"time"

	"barbershop-backend/models"
	"barbershop-backend/repository"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the three repositories the
// booking workflow touches.
type fakeStore struct {
	services     map[uuid.UUID]*models.Service
	slots        map[string]*models.ScheduleSlot
	appointments map[uuid.UUID]*models.Appointment
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		services:     make(map[uuid.UUID]*models.Service),
		slots:        make(map[string]*models.ScheduleSlot),
		appointments: make(map[uuid.UUID]*models.Appointment),
	}
}

func slotKey(masterID uuid.UUID, date time.Time, start string) string {
	return fmt.Sprintf("%s|%s|%s", masterID, date.Format("2006-01-02"), start)
}

func (f *fakeStore) addService(s *models.Service) *models.Service {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.services[s.ID] = s
	return s
}

func (f *fakeStore) addSlot(masterID uuid.UUID, date time.Time, start, end string, available bool) {
	f.slots[slotKey(masterID, date, start)] = &models.ScheduleSlot{
		ID:          uuid.New(),
		MasterID:    masterID,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: available,
	}
}

func (f *fakeStore) slot(masterID uuid.UUID, date time.Time, start string) *models.ScheduleSlot {
	return f.slots[slotKey(masterID, date, start)]
}

// ServiceRepository

func (f *fakeStore) ActiveByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	s, ok := f.services[id]
	if !ok || !s.IsActive {
		return nil, repository.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

// ScheduleRepository

func (f *fakeStore) ClaimSlot(ctx context.Context, masterID uuid.UUID, date time.Time, start string) (bool, error) {
	s, ok := f.slots[slotKey(masterID, date, start)]
	if !ok || !s.IsAvailable {
		return false, nil
	}
	s.IsAvailable = false
	return true, nil
}

func (f *fakeStore) ReleaseSlot(ctx context.Context, masterID uuid.UUID, date time.Time, start string) error {
	if s, ok := f.slots[slotKey(masterID, date, start)]; ok {
		s.IsAvailable = true
	}
	return nil
}

func (f *fakeStore) DeleteAvailable(ctx context.Context, masterID uuid.UUID, date time.Time) error {
	for key, s := range f.slots {
		if s.MasterID == masterID && s.Date.Equal(date) && s.IsAvailable {
			delete(f.slots, key)
		}
	}
	return nil
}

func (f *fakeStore) CreateSlots(ctx context.Context, slots []models.ScheduleSlot) error {
	for _, s := range slots {
		copied := s
		if copied.ID == uuid.Nil {
			copied.ID = uuid.New()
		}
		f.slots[slotKey(s.MasterID, s.Date, s.StartTime)] = &copied
	}
	return nil
}

func (f *fakeStore) ListByDate(ctx context.Context, masterID uuid.UUID, date time.Time) ([]models.ScheduleSlot, error) {
	var out []models.ScheduleSlot
	for _, s := range f.slots {
		if s.MasterID == masterID && s.Date.Equal(date) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeStore) ListRange(ctx context.Context, masterID uuid.UUID, from, to time.Time) ([]models.ScheduleSlot, error) {
	var out []models.ScheduleSlot
	for _, s := range f.slots {
		if s.MasterID == masterID && !s.Date.Before(from) && !s.Date.After(to) {
			out = append(out, *s)
		}
	}
	return out, nil
}

// AppointmentRepository

func (f *fakeStore) ByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeStore) ExistsActiveAt(ctx context.Context, masterID uuid.UUID, date time.Time, start string) (bool, error) {
	for _, a := range f.appointments {
		if a.MasterID == masterID && a.AppointmentDate.Equal(date) &&
			a.StartTime == start && a.Status != models.AppointmentCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Create(ctx context.Context, appointment *models.Appointment) error {
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	copied := *appointment
	f.appointments[appointment.ID] = &copied
	return nil
}

func (f *fakeStore) Save(ctx context.Context, appointment *models.Appointment) error {
	copied := *appointment
	f.appointments[appointment.ID] = &copied
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.appointments, id)
	return nil
}

func (f *fakeStore) repos() repository.Repositories {
	return repository.Repositories{
		Services:     f,
		Schedule:     f,
		Appointments: f,
	}
}

// fakeTxManager snapshots the store before the unit of work and restores
// it when the function fails, mimicking a transaction rollback.
type fakeTxManager struct {
	store *fakeStore
}

func (m *fakeTxManager) WithTx(ctx context.Context, fn func(repos repository.Repositories) error) error {
	snapshot := m.snapshot()
	if err := fn(m.store.repos()); err != nil {
		m.restore(snapshot)
		return err
	}
	return nil
}

func (m *fakeTxManager) snapshot() *fakeStore {
	s := newFakeStore()
	for k, v := range m.store.services {
		copied := *v
		s.services[k] = &copied
	}
	for k, v := range m.store.slots {
		copied := *v
		s.slots[k] = &copied
	}
	for k, v := range m.store.appointments {
		copied := *v
		s.appointments[k] = &copied
	}
	return s
}

func (m *fakeTxManager) restore(snapshot *fakeStore) {
	m.store.services = snapshot.services
	m.store.slots = snapshot.slots
	m.store.appointments = snapshot.appointments
}
