package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
)

func TestTranslate(t *testing.T) {
	assert.Nil(t, translate(nil))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), domain.ErrNotFound)
	assert.ErrorIs(t, translate(fmt.Errorf("q: %w", gorm.ErrRecordNotFound)), domain.ErrNotFound)

	overlap := &pgconn.PgError{Code: pgExclusionViolation, ConstraintName: "slots_no_overlap"}
	assert.ErrorIs(t, translate(overlap), domain.ErrSlotOverlap)

	booked := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: activeSlotIndex}
	assert.ErrorIs(t, translate(booked), domain.ErrSlotUnavailable)

	dup := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_email_key"}
	assert.ErrorIs(t, translate(dup), domain.ErrDuplicate)

	fk := &pgconn.PgError{Code: pgForeignKeyViolation}
	assert.ErrorIs(t, translate(fk), domain.ErrInUse)

	other := errors.New("connection reset")
	assert.Equal(t, other, translate(other))
}
