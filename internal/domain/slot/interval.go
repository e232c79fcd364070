package slot

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// ValidateRange requires start strictly before end.
func ValidateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return httperr.ErrBusiness("invalid_time_range")
	}
	return nil
}

// Overlaps treats intervals as half open, so back to back slots do not clash.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// DayBounds returns the salon day containing date as [start, end).
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	d := date.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
