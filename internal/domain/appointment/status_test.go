package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestConfirmOnlyFromPending(t *testing.T) {
	now := time.Now()

	ap := &models.Appointment{Status: string(StatusPending)}
	require.NoError(t, Confirm(ap, now))
	assert.Equal(t, string(StatusConfirmed), ap.Status)
	assert.NotNil(t, ap.ConfirmedAt)

	for _, st := range []Status{StatusConfirmed, StatusCancelled, StatusCompleted} {
		err := Confirm(&models.Appointment{Status: string(st)}, now)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"), st)
	}
}

func TestCancelAndCompleteFromActive(t *testing.T) {
	now := time.Now()

	for _, st := range []Status{StatusPending, StatusConfirmed} {
		ap := &models.Appointment{Status: string(st)}
		require.NoError(t, Cancel(ap, now))
		assert.Equal(t, string(StatusCancelled), ap.Status)
		assert.NotNil(t, ap.CancelledAt)

		ap = &models.Appointment{Status: string(st)}
		require.NoError(t, Complete(ap, now))
		assert.Equal(t, string(StatusCompleted), ap.Status)
	}

	for _, st := range []Status{StatusCancelled, StatusCompleted} {
		assert.Error(t, Cancel(&models.Appointment{Status: string(st)}, now))
		assert.Error(t, Complete(&models.Appointment{Status: string(st)}, now))
	}
}

func TestTransitionTerminalStates(t *testing.T) {
	now := time.Now()

	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusPending, true},
		{StatusPending, StatusConfirmed, true},
		{StatusConfirmed, StatusConfirmed, true},
		{StatusConfirmed, StatusPending, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCompleted, StatusCompleted, false},
	}

	for _, tc := range cases {
		ap := &models.Appointment{Status: string(tc.from)}
		err := Transition(ap, tc.to, now)
		if tc.ok {
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, string(tc.to), ap.Status)
		} else {
			assert.Error(t, err, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, string(tc.from), ap.Status)
		}
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, st)

	_, err = ParseStatus("done")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestSnapshot(t *testing.T) {
	ap := &models.Appointment{}
	SnapshotService(ap, &models.Service{ID: 3, Name: "Cut", Description: "Classic"})
	SnapshotStylist(ap, &models.Stylist{ID: 4, Name: "Lan"})

	assert.Equal(t, uint(3), ap.ServiceID)
	assert.Equal(t, "Cut", ap.ServiceName)
	assert.Equal(t, "Classic", ap.ServiceDescription)
	assert.Equal(t, uint(4), ap.StylistID)
	assert.Equal(t, "Lan", ap.StylistName)
}
