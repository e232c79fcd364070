package report

import (
	"context"
	"math"
	"time"

	apdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type Repository interface {
	ListAppointmentsCreatedBetween(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}

type MonthlyIncome struct {
	Month int `json:"month"`
	Year  int `json:"year"`

	TotalAppointments     int     `json:"total_appointments"`
	PendingAppointments   int     `json:"pending_appointments"`
	ConfirmedAppointments int     `json:"confirmed_appointments"`
	CancelledAppointments int     `json:"cancelled_appointments"`
	CompletedAppointments int     `json:"completed_appointments"`
	TotalIncome           float64 `json:"total_income"`
}

type DailyIncome struct {
	Day          int     `json:"day"`
	TotalIncome  float64 `json:"total_income"`
	Appointments int     `json:"appointments"`
}

// Reports aggregates appointments created within a salon calendar month.
// Income is the sum of the current service price over completed
// appointments.
type Reports struct {
	repo Repository
	loc  *time.Location
}

func NewReports(repo Repository, loc *time.Location) *Reports {
	return &Reports{repo: repo, loc: loc}
}

func ValidatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return httperr.ErrBusiness("invalid_month")
	}
	if year < 2000 || year > 2100 {
		return httperr.ErrBusiness("invalid_year")
	}
	return nil
}

func (r *Reports) MonthlyIncome(ctx context.Context, month, year int) (*MonthlyIncome, error) {
	list, err := r.load(ctx, month, year)
	if err != nil {
		return nil, err
	}

	out := &MonthlyIncome{Month: month, Year: year, TotalAppointments: len(list)}
	for _, ap := range list {
		switch apdomain.Status(ap.Status) {
		case apdomain.StatusPending:
			out.PendingAppointments++
		case apdomain.StatusConfirmed:
			out.ConfirmedAppointments++
		case apdomain.StatusCancelled:
			out.CancelledAppointments++
		case apdomain.StatusCompleted:
			out.CompletedAppointments++
			out.TotalIncome += price(ap)
		}
	}
	out.TotalIncome = roundCents(out.TotalIncome)
	return out, nil
}

func (r *Reports) MonthlyData(ctx context.Context, month, year int) ([]DailyIncome, error) {
	list, err := r.load(ctx, month, year)
	if err != nil {
		return nil, err
	}

	// day 0 of the next month is the last day of this one
	days := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()

	out := make([]DailyIncome, days)
	for i := range out {
		out[i].Day = i + 1
	}

	for _, ap := range list {
		d := ap.CreatedAt.In(r.loc).Day() - 1
		if d < 0 || d >= days {
			continue
		}
		out[d].Appointments++
		if apdomain.Status(ap.Status) == apdomain.StatusCompleted {
			out[d].TotalIncome += price(ap)
		}
	}
	for i := range out {
		out[i].TotalIncome = roundCents(out[i].TotalIncome)
	}
	return out, nil
}

func (r *Reports) load(ctx context.Context, month, year int) ([]models.Appointment, error) {
	if err := ValidatePeriod(month, year); err != nil {
		return nil, err
	}
	start, end := timezone.MonthRange(year, time.Month(month), r.loc)
	return r.repo.ListAppointmentsCreatedBetween(ctx, start, end)
}

func price(ap models.Appointment) float64 {
	if ap.Service == nil {
		return 0
	}
	return ap.Service.Price
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
