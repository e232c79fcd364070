package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// Transition applies a status requested through the admin update.
func Transition(ap *models.Appointment, to Status, now time.Time) error {
	from := Status(ap.Status)
	if err := CanTransition(from, to); err != nil {
		return err
	}
	if from == to {
		return nil
	}

	switch to {
	case StatusConfirmed:
		return Confirm(ap, now)
	case StatusCancelled:
		return Cancel(ap, now)
	default:
		return Complete(ap, now)
	}
}

// Snapshot copies the display fields that the appointment keeps as
// history. Later edits to the service or stylist are not propagated.
func SnapshotService(ap *models.Appointment, svc *models.Service) {
	ap.ServiceID = svc.ID
	ap.ServiceName = svc.Name
	ap.ServiceDescription = svc.Description
}

func SnapshotStylist(ap *models.Appointment, st *models.Stylist) {
	ap.StylistID = st.ID
	ap.StylistName = st.Name
}
