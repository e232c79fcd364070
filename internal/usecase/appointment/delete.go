package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	apdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/identity"
	slotdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

type DeleteAppointment struct {
	repo   apdomain.Repository
	audit  *audit.Dispatcher
	events slotdomain.Publisher
}

func NewDeleteAppointment(
	repo apdomain.Repository,
	audit *audit.Dispatcher,
	events slotdomain.Publisher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:   repo,
		audit:  audit,
		events: events,
	}
}

// Execute hard deletes. An active appointment gives its slot back in the
// same transaction.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID uint,
) error {

	if !actor.IsAdmin() {
		return httperr.ErrForbidden("admin_only")
	}

	var released []uint
	err := uc.repo.Transaction(ctx, func(tx apdomain.Repository) error {
		released = nil

		ap, err := tx.GetAppointmentForUpdate(ctx, appointmentID)
		if err != nil {
			return notFound(err, "appointment_not_found")
		}

		if err := tx.DeleteAppointment(ctx, ap.ID); err != nil {
			return notFound(err, "appointment_not_found")
		}

		if apdomain.IsActive(apdomain.Status(ap.Status)) {
			if err := tx.ReleaseSlot(ctx, ap.SlotID); err != nil {
				return err
			}
			released = append(released, ap.SlotID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.UserID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &appointmentID,
	})
	publishSlots(ctx, uc.repo, uc.events, slotdomain.EventReleased, released...)

	return nil
}
