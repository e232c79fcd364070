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
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ServiceID uint
	StylistID uint

	// Either SlotID or SelectedTime identifies the pre-provisioned slot.
	SlotID       uint
	SelectedTime string

	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   apdomain.Repository
	audit  *audit.Dispatcher
	events slotdomain.Publisher
	loc    *time.Location
}

func NewCreateAppointment(
	repo apdomain.Repository,
	audit *audit.Dispatcher,
	events slotdomain.Publisher,
	loc *time.Location,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		audit:  audit,
		events: events,
		loc:    loc,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if in.ServiceID == 0 || in.StylistID == 0 {
		return nil, httperr.ErrBusiness("missing_fields")
	}
	if in.SlotID == 0 && in.SelectedTime == "" {
		return nil, httperr.ErrBusiness("missing_slot")
	}

	// --------------------------------------------------
	// 1. Service and stylist
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, notFound(err, "service_not_found")
	}

	stylist, err := uc.repo.GetStylist(ctx, in.StylistID)
	if err != nil {
		return nil, notFound(err, "stylist_not_found")
	}

	// --------------------------------------------------
	// 2. Slot (by id or by start time in salon time)
	// --------------------------------------------------
	slot, err := uc.resolveSlot(ctx, in)
	if err != nil {
		return nil, err
	}
	if slot.StylistID != stylist.ID {
		return nil, httperr.ErrBusiness("slot_stylist_mismatch")
	}

	// --------------------------------------------------
	// 3. Reserve + insert as one unit
	// --------------------------------------------------
	ap := &models.Appointment{
		UserID: actor.UserID,
		SlotID: slot.ID,
		Notes:  in.Notes,
		Status: string(apdomain.InitialStatus()),
	}
	apdomain.SnapshotService(ap, service)
	apdomain.SnapshotStylist(ap, stylist)

	err = uc.repo.Transaction(ctx, func(tx apdomain.Repository) error {
		if err := tx.ReserveSlot(ctx, slot.ID); err != nil {
			return bookingErr(err)
		}
		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return bookingErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Audit + realtime
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"slot_id": slot.ID, "service_id": service.ID},
	})
	publishSlots(ctx, uc.repo, uc.events, slotdomain.EventReserved, slot.ID)

	return uc.repo.GetAppointment(ctx, ap.ID)
}

func (uc *CreateAppointment) resolveSlot(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Slot, error) {

	if in.SlotID != 0 {
		s, err := uc.repo.GetSlot(ctx, in.SlotID)
		if err != nil {
			return nil, notFound(err, "slot_not_found")
		}
		return s, nil
	}

	start, err := timezone.ParseLocalTime(in.SelectedTime, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_selected_time")
	}

	s, err := uc.repo.FindSlotByStart(ctx, in.StylistID, start)
	if err != nil {
		return nil, notFound(err, "slot_not_found")
	}
	return s, nil
}
