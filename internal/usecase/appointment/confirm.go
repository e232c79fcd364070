package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	apdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ConfirmAppointment struct {
	repo  apdomain.Repository
	audit *audit.Dispatcher
}

func NewConfirmAppointment(
	repo apdomain.Repository,
	audit *audit.Dispatcher,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	if !actor.IsAdmin() {
		return nil, httperr.ErrForbidden("admin_only")
	}

	var ap *models.Appointment
	err := uc.repo.Transaction(ctx, func(tx apdomain.Repository) error {
		var err error
		ap, err = tx.GetAppointmentForUpdate(ctx, appointmentID)
		if err != nil {
			return notFound(err, "appointment_not_found")
		}

		if err := apdomain.Confirm(ap, time.Now()); err != nil {
			return err
		}
		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.UserID,
		Action:   "appointment_confirmed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
