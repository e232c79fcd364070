package appointment

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return st, nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

// IsActive is true while the appointment holds its slot.
func IsActive(s Status) bool {
	return s == StatusPending || s == StatusConfirmed
}

func IsTerminal(s Status) bool {
	return s == StatusCancelled || s == StatusCompleted
}

// ===============================
// Validations
// ===============================

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if !IsActive(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if !IsActive(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanTransition checks a move requested through the generic update.
// Staying in the same non-terminal status is a no-op.
func CanTransition(from, to Status) error {
	if from == to && !IsTerminal(from) {
		return nil
	}

	switch to {
	case StatusConfirmed:
		return CanConfirm(from)
	case StatusCancelled:
		return CanCancel(from)
	case StatusCompleted:
		return CanComplete(from)
	}
	return httperr.ErrBusiness("invalid_state")
}

func InitialStatus() Status {
	return StatusPending
}
