package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ListFilter struct {
	UserID *uint
	Status string
}

type Repository interface {
	// Transaction runs fn against a repository bound to one unit of work.
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// -------- Catalog --------
	GetService(ctx context.Context, id uint) (*models.Service, error)
	GetStylist(ctx context.Context, id uint) (*models.Stylist, error)

	// -------- Slot --------
	GetSlot(ctx context.Context, id uint) (*models.Slot, error)

	FindSlotByStart(
		ctx context.Context,
		stylistID uint,
		start time.Time,
	) (*models.Slot, error)

	// ReserveSlot flips available true -> false in a single conditional
	// write. It returns domain.ErrSlotUnavailable when the slot was
	// already taken and domain.ErrNotFound when it does not exist.
	ReserveSlot(ctx context.Context, slotID uint) error

	ReleaseSlot(ctx context.Context, slotID uint) error

	// -------- Appointment --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	// GetAppointment loads the appointment with user, stylist, slot
	// and service attached.
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)

	// GetAppointmentForUpdate is GetAppointment holding the row lock until
	// the surrounding transaction ends. Status transitions read through it.
	GetAppointmentForUpdate(ctx context.Context, id uint) (*models.Appointment, error)

	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	DeleteAppointment(ctx context.Context, id uint) error

	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)
}
