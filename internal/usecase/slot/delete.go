package slot

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/identity"
	slotdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type DeleteSlot struct {
	repo   slotdomain.Repository
	audit  *audit.Dispatcher
	events slotdomain.Publisher
}

func NewDeleteSlot(
	repo slotdomain.Repository,
	audit *audit.Dispatcher,
	events slotdomain.Publisher,
) *DeleteSlot {
	return &DeleteSlot{
		repo:   repo,
		audit:  audit,
		events: events,
	}
}

// Execute refuses while an active appointment holds the slot. Past
// appointments keep their foreign key, so the store refuses those too.
func (uc *DeleteSlot) Execute(
	ctx context.Context,
	actor identity.Actor,
	slotID uint,
) error {

	if !actor.IsAdmin() {
		return httperr.ErrForbidden("admin_only")
	}

	var deleted models.Slot
	err := uc.repo.Transaction(ctx, func(tx slotdomain.Repository) error {
		s, err := tx.GetSlotForUpdate(ctx, slotID)
		if err != nil {
			return translate(err)
		}

		held, err := tx.HasActiveAppointment(ctx, s.ID)
		if err != nil {
			return err
		}
		if held {
			return httperr.ErrConflict("slot_in_use")
		}

		deleted = *s
		return translate(tx.DeleteSlot(ctx, s.ID))
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.UserID,
		Action:   "slot_deleted",
		Entity:   "slot",
		EntityID: &slotID,
	})
	slotdomain.Notify(ctx, uc.events, slotdomain.NewEvent(slotdomain.EventDeleted, &deleted))
	return nil
}
