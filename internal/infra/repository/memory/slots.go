package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	slotdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type SlotRepo struct {
	s    *Store
	inTx bool
}

func (s *Store) Slots() *SlotRepo {
	return &SlotRepo{s: s}
}

var _ slotdomain.Repository = (*SlotRepo)(nil)

func (r *SlotRepo) Transaction(
	_ context.Context,
	fn func(tx slotdomain.Repository) error,
) error {
	return r.s.transaction(r.inTx, func() error {
		return fn(&SlotRepo{s: r.s, inTx: true})
	})
}

func (r *SlotRepo) LockStylist(_ context.Context, stylistID uint) (*models.Stylist, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	st, ok := r.s.stylists[stylistID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &st, nil
}

func (r *SlotRepo) CreateSlot(_ context.Context, sl *models.Slot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.overlaps(sl.StylistID, sl.StartTime, sl.EndTime, 0) {
		return domain.ErrSlotOverlap
	}

	now := r.s.Now()
	sl.ID = r.s.next("slots")
	sl.CreatedAt = now
	sl.UpdatedAt = now
	stored := *sl
	stored.Stylist = nil
	r.s.slots[sl.ID] = stored
	return nil
}

func (r *SlotRepo) GetSlot(_ context.Context, id uint) (*models.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sl, ok := r.s.slots[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if st, ok := r.s.stylists[sl.StylistID]; ok {
		sl.Stylist = &st
	}
	return &sl, nil
}

func (r *SlotRepo) GetSlotForUpdate(ctx context.Context, id uint) (*models.Slot, error) {
	return r.GetSlot(ctx, id)
}

func (r *SlotRepo) ListSlots(_ context.Context, f slotdomain.Filter) ([]models.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var list []models.Slot
	for _, sl := range r.s.slots {
		if f.StylistID != 0 && sl.StylistID != f.StylistID {
			continue
		}
		if f.From != nil && sl.StartTime.Before(*f.From) {
			continue
		}
		if f.To != nil && !sl.StartTime.Before(*f.To) {
			continue
		}
		if f.Available != nil && sl.Available != *f.Available {
			continue
		}
		if st, ok := r.s.stylists[sl.StylistID]; ok {
			sl.Stylist = &st
		}
		list = append(list, sl)
	}

	slices.SortFunc(list, func(a, b models.Slot) int {
		if c := a.StartTime.Compare(b.StartTime); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return list, nil
}

func (r *SlotRepo) UpdateSlot(_ context.Context, sl *models.Slot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.slots[sl.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.s.overlaps(cur.StylistID, sl.StartTime, sl.EndTime, sl.ID) {
		return domain.ErrSlotOverlap
	}

	cur.StartTime = sl.StartTime
	cur.EndTime = sl.EndTime
	cur.Available = sl.Available
	cur.UpdatedAt = r.s.Now()
	r.s.slots[sl.ID] = cur
	return nil
}

func (r *SlotRepo) DeleteSlot(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.slots[id]; !ok {
		return domain.ErrNotFound
	}
	for _, ap := range r.s.appointments {
		if ap.SlotID == id {
			return domain.ErrInUse
		}
	}
	delete(r.s.slots, id)
	return nil
}

func (r *SlotRepo) HasOverlap(
	_ context.Context,
	stylistID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.overlaps(stylistID, start, end, excludeID), nil
}

func (r *SlotRepo) HasActiveAppointment(_ context.Context, slotID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.activeOnSlot(slotID, 0), nil
}

func (s *Store) overlaps(stylistID uint, start, end time.Time, excludeID uint) bool {
	for _, sl := range s.slots {
		if sl.ID == excludeID || sl.StylistID != stylistID {
			continue
		}
		if slotdomain.Overlaps(sl.StartTime, sl.EndTime, start, end) {
			return true
		}
	}
	return false
}
