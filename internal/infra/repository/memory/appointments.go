package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	apdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentRepo struct {
	s    *Store
	inTx bool
}

func (s *Store) Appointments() *AppointmentRepo {
	return &AppointmentRepo{s: s}
}

var _ apdomain.Repository = (*AppointmentRepo)(nil)

func (r *AppointmentRepo) Transaction(
	_ context.Context,
	fn func(tx apdomain.Repository) error,
) error {
	return r.s.transaction(r.inTx, func() error {
		return fn(&AppointmentRepo{s: r.s, inTx: true})
	})
}

func (r *AppointmentRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	svc, ok := r.s.services[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &svc, nil
}

func (r *AppointmentRepo) GetStylist(_ context.Context, id uint) (*models.Stylist, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	st, ok := r.s.stylists[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &st, nil
}

func (r *AppointmentRepo) GetSlot(_ context.Context, id uint) (*models.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sl, ok := r.s.slots[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sl, nil
}

func (r *AppointmentRepo) FindSlotByStart(
	_ context.Context,
	stylistID uint,
	start time.Time,
) (*models.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, sl := range r.s.slots {
		if sl.StylistID == stylistID && sl.StartTime.Equal(start) {
			return &sl, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *AppointmentRepo) ReserveSlot(_ context.Context, slotID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sl, ok := r.s.slots[slotID]
	if !ok {
		return domain.ErrNotFound
	}
	if !sl.Available {
		return domain.ErrSlotUnavailable
	}
	sl.Available = false
	sl.UpdatedAt = r.s.Now()
	r.s.slots[slotID] = sl
	return nil
}

func (r *AppointmentRepo) ReleaseSlot(_ context.Context, slotID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sl, ok := r.s.slots[slotID]
	if !ok {
		return domain.ErrNotFound
	}
	sl.Available = true
	sl.UpdatedAt = r.s.Now()
	r.s.slots[slotID] = sl
	return nil
}

func (r *AppointmentRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.FailCreateAppointment; err != nil {
		return err
	}
	if apdomain.IsActive(apdomain.Status(ap.Status)) && r.s.activeOnSlot(ap.SlotID, 0) {
		return domain.ErrSlotUnavailable
	}

	now := r.s.Now()
	ap.ID = r.s.next("appointments")
	if ap.CreatedAt.IsZero() {
		ap.CreatedAt = now
	}
	ap.UpdatedAt = now
	r.s.appointments[ap.ID] = bare(*ap)
	return nil
}

func (r *AppointmentRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ap, ok := r.s.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	r.s.attach(&ap)
	return &ap, nil
}

// GetAppointmentForUpdate needs no row lock here: transactions already run
// one at a time.
func (r *AppointmentRepo) GetAppointmentForUpdate(ctx context.Context, id uint) (*models.Appointment, error) {
	return r.GetAppointment(ctx, id)
}

func (r *AppointmentRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.appointments[ap.ID]; !ok {
		return domain.ErrNotFound
	}
	if apdomain.IsActive(apdomain.Status(ap.Status)) && r.s.activeOnSlot(ap.SlotID, ap.ID) {
		return domain.ErrSlotUnavailable
	}

	ap.UpdatedAt = r.s.Now()
	r.s.appointments[ap.ID] = bare(*ap)
	return nil
}

func (r *AppointmentRepo) DeleteAppointment(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.appointments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.appointments, id)
	return nil
}

func (r *AppointmentRepo) ListAppointments(
	_ context.Context,
	filter apdomain.ListFilter,
) ([]models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var list []models.Appointment
	for _, ap := range r.s.appointments {
		if filter.UserID != nil && ap.UserID != *filter.UserID {
			continue
		}
		if filter.Status != "" && ap.Status != filter.Status {
			continue
		}
		r.s.attach(&ap)
		list = append(list, ap)
	}

	slices.SortFunc(list, func(a, b models.Appointment) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return list, nil
}

func (r *AppointmentRepo) ListAppointmentsCreatedBetween(
	_ context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var list []models.Appointment
	for _, ap := range r.s.appointments {
		if ap.CreatedAt.Before(start) || !ap.CreatedAt.Before(end) {
			continue
		}
		if svc, ok := r.s.services[ap.ServiceID]; ok {
			ap.Service = &svc
		}
		list = append(list, ap)
	}

	slices.SortFunc(list, func(a, b models.Appointment) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return list, nil
}

// attach fills the associations the way the gorm repository preloads them.
func (s *Store) attach(ap *models.Appointment) {
	if u, ok := s.users[ap.UserID]; ok {
		ap.User = &u
	}
	if st, ok := s.stylists[ap.StylistID]; ok {
		ap.Stylist = &st
	}
	if sl, ok := s.slots[ap.SlotID]; ok {
		ap.Slot = &sl
	}
	if svc, ok := s.services[ap.ServiceID]; ok {
		svc = s.serviceWithImages(svc)
		ap.Service = &svc
	}
}

func bare(ap models.Appointment) models.Appointment {
	ap.User = nil
	ap.Stylist = nil
	ap.Slot = nil
	ap.Service = nil
	return ap
}
