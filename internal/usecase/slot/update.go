package slot

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/identity"
	slotdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type UpdateSlotInput struct {
	StartTime *time.Time
	EndTime   *time.Time
	Available *bool
}

type UpdateSlot struct {
	repo   slotdomain.Repository
	audit  *audit.Dispatcher
	events slotdomain.Publisher
}

func NewUpdateSlot(
	repo slotdomain.Repository,
	audit *audit.Dispatcher,
	events slotdomain.Publisher,
) *UpdateSlot {
	return &UpdateSlot{
		repo:   repo,
		audit:  audit,
		events: events,
	}
}

func (uc *UpdateSlot) Execute(
	ctx context.Context,
	actor identity.Actor,
	slotID uint,
	in UpdateSlotInput,
) (*models.Slot, error) {

	if !actor.IsAdmin() {
		return nil, httperr.ErrForbidden("admin_only")
	}

	err := uc.repo.Transaction(ctx, func(tx slotdomain.Repository) error {
		s, err := tx.GetSlotForUpdate(ctx, slotID)
		if err != nil {
			return translate(err)
		}
		if _, err := tx.LockStylist(ctx, s.StylistID); err != nil {
			return err
		}

		if in.StartTime != nil {
			s.StartTime = *in.StartTime
		}
		if in.EndTime != nil {
			s.EndTime = *in.EndTime
		}
		if err := slotdomain.ValidateRange(s.StartTime, s.EndTime); err != nil {
			return err
		}

		overlap, err := tx.HasOverlap(ctx, s.StylistID, s.StartTime, s.EndTime, s.ID)
		if err != nil {
			return err
		}
		if overlap {
			return httperr.ErrConflict("slot_overlap")
		}

		if in.Available != nil {
			// an active appointment owns the slot until it is released
			if *in.Available && !s.Available {
				held, err := tx.HasActiveAppointment(ctx, s.ID)
				if err != nil {
					return err
				}
				if held {
					return httperr.ErrConflict("slot_in_use")
				}
			}
			s.Available = *in.Available
		}

		s.Stylist = nil
		return translate(tx.UpdateSlot(ctx, s))
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.UserID,
		Action:   "slot_updated",
		Entity:   "slot",
		EntityID: &slotID,
	})

	updated, err := uc.repo.GetSlot(ctx, slotID)
	if err != nil {
		return nil, translate(err)
	}
	slotdomain.Notify(ctx, uc.events, slotdomain.NewEvent(slotdomain.EventUpdated, updated))
	return updated, nil
}
