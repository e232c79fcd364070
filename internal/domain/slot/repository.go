package slot

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Filter struct {
	StylistID uint
	From      *time.Time
	To        *time.Time
	Available *bool
}

type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// LockStylist loads the stylist row FOR UPDATE so that slot writes for
	// the same stylist are serialised inside the surrounding transaction.
	LockStylist(ctx context.Context, stylistID uint) (*models.Stylist, error)

	CreateSlot(ctx context.Context, s *models.Slot) error
	GetSlot(ctx context.Context, id uint) (*models.Slot, error)

	// GetSlotForUpdate locks the slot row until the surrounding transaction
	// ends, so a concurrent reserve waits instead of being overwritten.
	GetSlotForUpdate(ctx context.Context, id uint) (*models.Slot, error)
	ListSlots(ctx context.Context, f Filter) ([]models.Slot, error)
	UpdateSlot(ctx context.Context, s *models.Slot) error
	DeleteSlot(ctx context.Context, id uint) error

	// HasOverlap reports whether another slot of the stylist intersects
	// [start, end). excludeID is ignored when zero.
	HasOverlap(
		ctx context.Context,
		stylistID uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) (bool, error)

	HasActiveAppointment(ctx context.Context, slotID uint) (bool, error)
}
