package appointment

import (
	"context"

	apdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	slotdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/slot"
)

// publishSlots is called after commit. A slot that vanished in the
// meantime is skipped.
func publishSlots(
	ctx context.Context,
	repo apdomain.Repository,
	pub slotdomain.Publisher,
	kind string,
	slotIDs ...uint,
) {
	if pub == nil {
		return
	}
	for _, id := range slotIDs {
		s, err := repo.GetSlot(ctx, id)
		if err != nil {
			continue
		}
		slotdomain.Notify(ctx, pub, slotdomain.NewEvent(kind, s))
	}
}
