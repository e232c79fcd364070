package slot

import (
	"errors"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

func translate(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return httperr.ErrNotFound("slot_not_found")
	case errors.Is(err, domain.ErrSlotOverlap):
		return httperr.ErrConflict("slot_overlap")
	case errors.Is(err, domain.ErrInUse):
		return httperr.ErrConflict("slot_in_use")
	}
	return err
}
