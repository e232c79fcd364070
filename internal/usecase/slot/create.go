package slot

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/identity"
	slotdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CreateSlotInput struct {
	StylistID uint
	StartTime time.Time
	EndTime   time.Time

	// nil means bookable
	Available *bool
}

type CreateSlot struct {
	repo   slotdomain.Repository
	audit  *audit.Dispatcher
	events slotdomain.Publisher
}

func NewCreateSlot(
	repo slotdomain.Repository,
	audit *audit.Dispatcher,
	events slotdomain.Publisher,
) *CreateSlot {
	return &CreateSlot{
		repo:   repo,
		audit:  audit,
		events: events,
	}
}

// Execute provisions a slot. Writes for one stylist are serialised by the
// stylist row lock; the exclusion constraint catches anything that slips by.
func (uc *CreateSlot) Execute(
	ctx context.Context,
	actor identity.Actor,
	in CreateSlotInput,
) (*models.Slot, error) {

	if !actor.IsAdmin() {
		return nil, httperr.ErrForbidden("admin_only")
	}
	if in.StylistID == 0 {
		return nil, httperr.ErrBusiness("missing_fields")
	}
	if err := slotdomain.ValidateRange(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}

	s := &models.Slot{
		StylistID: in.StylistID,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Available: true,
	}
	if in.Available != nil {
		s.Available = *in.Available
	}

	err := uc.repo.Transaction(ctx, func(tx slotdomain.Repository) error {
		if _, err := tx.LockStylist(ctx, in.StylistID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return httperr.ErrNotFound("stylist_not_found")
			}
			return err
		}

		overlap, err := tx.HasOverlap(ctx, in.StylistID, in.StartTime, in.EndTime, 0)
		if err != nil {
			return err
		}
		if overlap {
			return httperr.ErrConflict("slot_overlap")
		}

		return translate(tx.CreateSlot(ctx, s))
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.UserID,
		Action:   "slot_created",
		Entity:   "slot",
		EntityID: &s.ID,
		Metadata: map[string]any{"stylist_id": s.StylistID},
	})

	created, err := uc.repo.GetSlot(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	slotdomain.Notify(ctx, uc.events, slotdomain.NewEvent(slotdomain.EventCreated, created))
	return created, nil
}
