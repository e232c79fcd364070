package appointment

import (
	"errors"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

func notFound(err error, code string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrNotFound(code)
	}
	return err
}

// bookingErr translates failures of the slot reserve or of the insert
// guarded by the one-active-appointment-per-slot index.
func bookingErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrSlotUnavailable):
		return httperr.ErrConflict("slot_already_booked")
	case errors.Is(err, domain.ErrNotFound):
		return httperr.ErrNotFound("slot_not_found")
	}
	return err
}
