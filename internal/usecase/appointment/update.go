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

// UpdateAppointmentInput carries optional fields; nil leaves the value as is.
type UpdateAppointmentInput struct {
	Status    *string
	Notes     *string
	SlotID    *uint
	ServiceID *uint
}

type UpdateAppointment struct {
	repo   apdomain.Repository
	audit  *audit.Dispatcher
	events slotdomain.Publisher
}

func NewUpdateAppointment(
	repo apdomain.Repository,
	audit *audit.Dispatcher,
	events slotdomain.Publisher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:   repo,
		audit:  audit,
		events: events,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID uint,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	if !actor.IsAdmin() {
		return nil, httperr.ErrForbidden("admin_only")
	}

	var target apdomain.Status
	if in.Status != nil {
		st, err := apdomain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		target = st
	}

	var reserved, released []uint
	err := uc.repo.Transaction(ctx, func(tx apdomain.Repository) error {
		reserved, released = nil, nil

		ap, err := tx.GetAppointmentForUpdate(ctx, appointmentID)
		if err != nil {
			return notFound(err, "appointment_not_found")
		}

		// --------------------------------------------------
		// Service: re-snapshot name and description
		// --------------------------------------------------
		if in.ServiceID != nil && *in.ServiceID != ap.ServiceID {
			svc, err := tx.GetService(ctx, *in.ServiceID)
			if err != nil {
				return notFound(err, "service_not_found")
			}
			apdomain.SnapshotService(ap, svc)
		}

		// --------------------------------------------------
		// Slot: reserve the new one, release the old one
		// --------------------------------------------------
		if in.SlotID != nil && *in.SlotID != ap.SlotID {
			if !apdomain.IsActive(apdomain.Status(ap.Status)) {
				return httperr.ErrBusiness("invalid_state")
			}

			next, err := tx.GetSlot(ctx, *in.SlotID)
			if err != nil {
				return notFound(err, "slot_not_found")
			}
			if next.StylistID != ap.StylistID {
				st, err := tx.GetStylist(ctx, next.StylistID)
				if err != nil {
					return notFound(err, "stylist_not_found")
				}
				apdomain.SnapshotStylist(ap, st)
			}

			if err := tx.ReserveSlot(ctx, next.ID); err != nil {
				return bookingErr(err)
			}
			if err := tx.ReleaseSlot(ctx, ap.SlotID); err != nil {
				return err
			}
			released = append(released, ap.SlotID)
			reserved = append(reserved, next.ID)
			ap.SlotID = next.ID
		}

		if in.Notes != nil {
			ap.Notes = *in.Notes
		}

		// --------------------------------------------------
		// Status through the state machine
		// --------------------------------------------------
		if in.Status != nil {
			if err := apdomain.Transition(ap, target, time.Now()); err != nil {
				return err
			}
			if target == apdomain.StatusCancelled {
				if err := tx.ReleaseSlot(ctx, ap.SlotID); err != nil {
					return err
				}
				released = append(released, ap.SlotID)
			}
		}

		// clear preloaded associations so the new ids win
		ap.Slot, ap.Service, ap.Stylist = nil, nil, nil
		return bookingErr(tx.UpdateAppointment(ctx, ap))
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.UserID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &appointmentID,
		Metadata: map[string]any{"reserved": reserved, "released": released},
	})
	publishSlots(ctx, uc.repo, uc.events, slotdomain.EventReserved, reserved...)
	publishSlots(ctx, uc.repo, uc.events, slotdomain.EventReleased, released...)

	return uc.repo.GetAppointment(ctx, appointmentID)
}
