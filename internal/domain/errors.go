package domain

import "errors"

// Sentinels returned by repositories. Storage specific errors are
// translated into these before they leave the infra layer.
var (
	ErrNotFound        = errors.New("record not found")
	ErrSlotUnavailable = errors.New("slot unavailable")
	ErrSlotOverlap     = errors.New("slot overlaps another slot")
	ErrDuplicate       = errors.New("duplicate key")
	ErrInUse           = errors.New("record still referenced")
)
