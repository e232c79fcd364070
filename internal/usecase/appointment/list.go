package appointment

import (
	"context"

	apdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ListAppointmentsInput struct {
	Status string
	UserID uint
}

type ListAppointments struct {
	repo apdomain.Repository
}

func NewListAppointments(repo apdomain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute returns the newest first. Non admins only ever see their own.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	actor identity.Actor,
	in ListAppointmentsInput,
) ([]models.Appointment, error) {

	filter := apdomain.ListFilter{}

	if in.Status != "" {
		st, err := apdomain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = string(st)
	}

	switch {
	case !actor.IsAdmin():
		uid := actor.UserID
		filter.UserID = &uid
	case in.UserID != 0:
		uid := in.UserID
		filter.UserID = &uid
	}

	return uc.repo.ListAppointments(ctx, filter)
}

type GetAppointment struct {
	repo apdomain.Repository
}

func NewGetAppointment(repo apdomain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, notFound(err, "appointment_not_found")
	}
	if !actor.CanAccess(ap.UserID) {
		return nil, httperr.ErrForbidden("forbidden")
	}
	return ap, nil
}
