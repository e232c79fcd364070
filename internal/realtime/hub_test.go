package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	slotdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/slot"
)

func receive(t *testing.T, sub *Subscription) slotdomain.Event {
	t.Helper()
	select {
	case raw := <-sub.C:
		var ev slotdomain.Event
		require.NoError(t, json.Unmarshal(raw, &ev))
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
	return slotdomain.Event{}
}

func TestHubRoutesByStylist(t *testing.T) {
	h := NewHub(nil, nil)
	mine := h.Subscribe(1)
	other := h.Subscribe(2)
	all := h.Subscribe(0)

	h.PublishSlot(context.Background(), slotdomain.Event{Type: slotdomain.EventReserved, SlotID: 5, StylistID: 1})

	assert.Equal(t, uint(5), receive(t, mine).SlotID)
	assert.Equal(t, slotdomain.EventReserved, receive(t, all).Type)
	select {
	case <-other.C:
		t.Fatal("stylist 2 should not receive stylist 1 events")
	default:
	}

	h.Unsubscribe(mine)
	h.Unsubscribe(mine)
	assert.Equal(t, 2, h.Subscribers())
}

func TestHubDropsForSlowSubscribers(t *testing.T) {
	h := NewHub(nil, nil)
	sub := h.Subscribe(1)

	for i := 0; i < sendBuffer+5; i++ {
		h.PublishSlot(context.Background(), slotdomain.Event{SlotID: uint(i), StylistID: 1})
	}
	assert.Len(t, sub.C, sendBuffer)
}

func TestServeWSStreamsEvents(t *testing.T) {
	h := NewHub(nil, nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeWS(w, r, 3)
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return h.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	h.PublishSlot(context.Background(), slotdomain.Event{Type: slotdomain.EventReleased, SlotID: 9, StylistID: 3, Available: true})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev slotdomain.Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, uint(9), ev.SlotID)
	assert.True(t, ev.Available)
}
