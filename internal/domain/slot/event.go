package slot

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const (
	EventCreated  = "slot_created"
	EventUpdated  = "slot_updated"
	EventDeleted  = "slot_deleted"
	EventReserved = "slot_reserved"
	EventReleased = "slot_released"
)

type Event struct {
	Type      string    `json:"type"`
	SlotID    uint      `json:"slot_id"`
	StylistID uint      `json:"stylist_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Available bool      `json:"available"`
}

func NewEvent(kind string, s *models.Slot) Event {
	return Event{
		Type:      kind,
		SlotID:    s.ID,
		StylistID: s.StylistID,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Available: s.Available,
	}
}

// Publisher fans slot changes out to realtime subscribers.
type Publisher interface {
	PublishSlot(ctx context.Context, ev Event)
}

// Notify is a no-op when p is nil.
func Notify(ctx context.Context, p Publisher, ev Event) {
	if p == nil {
		return
	}
	p.PublishSlot(ctx, ev)
}
