package slot

import (
	"context"
	"time"

	slotdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type ListSlotsInput struct {
	StylistID uint
	Date      string
	Available *bool
}

// Queries serves the read side of the slot ledger. Dates are calendar days
// in the salon timezone.
type Queries struct {
	repo slotdomain.Repository
	loc  *time.Location
}

func NewQueries(repo slotdomain.Repository, loc *time.Location) *Queries {
	return &Queries{repo: repo, loc: loc}
}

func (q *Queries) List(ctx context.Context, in ListSlotsInput) ([]models.Slot, error) {
	f := slotdomain.Filter{
		StylistID: in.StylistID,
		Available: in.Available,
	}

	if in.Date != "" {
		from, to, err := q.day(in.Date)
		if err != nil {
			return nil, err
		}
		f.From, f.To = &from, &to
	}

	return q.repo.ListSlots(ctx, f)
}

func (q *Queries) Get(ctx context.Context, id uint) (*models.Slot, error) {
	s, err := q.repo.GetSlot(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return s, nil
}

// Available lists the free slots of a stylist on a day.
func (q *Queries) Available(ctx context.Context, stylistID uint, date string) ([]models.Slot, error) {
	return q.byDate(ctx, stylistID, date, true)
}

// Booked lists the slots of a stylist on a day that are no longer free.
func (q *Queries) Booked(ctx context.Context, stylistID uint, date string) ([]models.Slot, error) {
	return q.byDate(ctx, stylistID, date, false)
}

func (q *Queries) byDate(
	ctx context.Context,
	stylistID uint,
	date string,
	available bool,
) ([]models.Slot, error) {

	if stylistID == 0 || date == "" {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	from, to, err := q.day(date)
	if err != nil {
		return nil, err
	}

	return q.repo.ListSlots(ctx, slotdomain.Filter{
		StylistID: stylistID,
		From:      &from,
		To:        &to,
		Available: &available,
	})
}

func (q *Queries) day(date string) (time.Time, time.Time, error) {
	d, err := timezone.ParseDate(date, q.loc)
	if err != nil {
		return time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_date")
	}
	from, to := slotdomain.DayBounds(d, q.loc)
	return from, to, nil
}
