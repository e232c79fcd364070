package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	apdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func seedSlot(t *testing.T, s *Store) *models.Slot {
	t.Helper()
	ctx := context.Background()

	st := &models.Stylist{Name: "Lan", Email: "lan@salon.vn"}
	require.NoError(t, s.Catalog().CreateStylist(ctx, st))

	start := time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC)
	sl := &models.Slot{StylistID: st.ID, StartTime: start, EndTime: start.Add(time.Hour), Available: true}
	require.NoError(t, s.Slots().CreateSlot(ctx, sl))
	return sl
}

func TestReserveSlotIsConditional(t *testing.T) {
	s := New()
	sl := seedSlot(t, s)
	repo := s.Appointments()
	ctx := context.Background()

	require.NoError(t, repo.ReserveSlot(ctx, sl.ID))
	assert.ErrorIs(t, repo.ReserveSlot(ctx, sl.ID), domain.ErrSlotUnavailable)
	assert.ErrorIs(t, repo.ReserveSlot(ctx, 999), domain.ErrNotFound)

	require.NoError(t, repo.ReleaseSlot(ctx, sl.ID))
	assert.NoError(t, repo.ReserveSlot(ctx, sl.ID))
}

func TestTransactionRollsBack(t *testing.T) {
	s := New()
	sl := seedSlot(t, s)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Appointments().Transaction(ctx, func(tx apdomain.Repository) error {
		require.NoError(t, tx.ReserveSlot(ctx, sl.ID))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Appointments().GetSlot(ctx, sl.ID)
	require.NoError(t, err)
	assert.True(t, got.Available)
}

func TestRollbackKeepsQueuedTransaction(t *testing.T) {
	s := New()
	sl := seedSlot(t, s)
	repo := s.Appointments()
	ctx := context.Background()
	boom := errors.New("boom")

	queued := make(chan error, 1)
	err := repo.Transaction(ctx, func(tx apdomain.Repository) error {
		go func() {
			queued <- repo.Transaction(ctx, func(tx apdomain.Repository) error {
				return tx.ReserveSlot(ctx, sl.ID)
			})
		}()
		select {
		case err := <-queued:
			t.Errorf("second transaction ran inside the first: %v", err)
			queued <- err
		case <-time.After(50 * time.Millisecond):
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	require.NoError(t, <-queued)

	got, err := repo.GetSlot(ctx, sl.ID)
	require.NoError(t, err)
	assert.False(t, got.Available)
}

func TestCreateSlotRejectsOverlap(t *testing.T) {
	s := New()
	sl := seedSlot(t, s)
	ctx := context.Background()

	clash := &models.Slot{StylistID: sl.StylistID, StartTime: sl.StartTime.Add(30 * time.Minute), EndTime: sl.EndTime.Add(30 * time.Minute)}
	assert.ErrorIs(t, s.Slots().CreateSlot(ctx, clash), domain.ErrSlotOverlap)

	next := &models.Slot{StylistID: sl.StylistID, StartTime: sl.EndTime, EndTime: sl.EndTime.Add(time.Hour)}
	assert.NoError(t, s.Slots().CreateSlot(ctx, next))
}

func TestOneActiveAppointmentPerSlot(t *testing.T) {
	s := New()
	sl := seedSlot(t, s)
	ctx := context.Background()

	first := &models.Appointment{UserID: 1, SlotID: sl.ID, StylistID: sl.StylistID, Status: "pending"}
	require.NoError(t, s.Appointments().CreateAppointment(ctx, first))

	second := &models.Appointment{UserID: 2, SlotID: sl.ID, StylistID: sl.StylistID, Status: "pending"}
	assert.ErrorIs(t, s.Appointments().CreateAppointment(ctx, second), domain.ErrSlotUnavailable)

	first.Status = "cancelled"
	require.NoError(t, s.Appointments().UpdateAppointment(ctx, first))
	assert.NoError(t, s.Appointments().CreateAppointment(ctx, second))
}
