package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	apdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/identity"
	slotdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CancelAppointment struct {
	repo   apdomain.Repository
	audit  *audit.Dispatcher
	events slotdomain.Publisher
}

func NewCancelAppointment(
	repo apdomain.Repository,
	audit *audit.Dispatcher,
	events slotdomain.Publisher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:   repo,
		audit:  audit,
		events: events,
	}
}

// Execute cancels on behalf of the owner or an admin. The status change
// and the slot release commit together.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	var slotID uint
	err := uc.repo.Transaction(ctx, func(tx apdomain.Repository) error {
		ap, err := tx.GetAppointmentForUpdate(ctx, appointmentID)
		if err != nil {
			return notFound(err, "appointment_not_found")
		}
		if !actor.CanAccess(ap.UserID) {
			return httperr.ErrForbidden("forbidden")
		}

		if err := apdomain.Cancel(ap, time.Now()); err != nil {
			return err
		}
		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		slotID = ap.SlotID
		return tx.ReleaseSlot(ctx, ap.SlotID)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.UserID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &appointmentID,
	})
	publishSlots(ctx, uc.repo, uc.events, slotdomain.EventReleased, slotID)

	return uc.repo.GetAppointment(ctx, appointmentID)
}
