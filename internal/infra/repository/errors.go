package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
)

// Postgres error codes the schema relies on.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgExclusionViolation  = "23P01"
)

// activeSlotIndex is the partial unique index over active appointments.
const activeSlotIndex = "appointments_active_slot_uidx"

// translate maps driver errors to domain sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgExclusionViolation:
			return domain.ErrSlotOverlap
		case pgUniqueViolation:
			if pgErr.ConstraintName == activeSlotIndex {
				return domain.ErrSlotUnavailable
			}
			return domain.ErrDuplicate
		case pgForeignKeyViolation:
			return domain.ErrInUse
		}
	}
	return err
}

func exists(tx *gorm.DB, model any, query string, args ...any) (bool, error) {
	var count int64
	if err := tx.Model(model).Where(query, args...).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
