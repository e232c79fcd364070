package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	slotdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/slot"
)

const (
	channelName = "salon:slot-events"
	sendBuffer  = 16
)

// Relay carries events between instances. *cache.Client satisfies it.
type Relay interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string) *redis.PubSub
}

type Subscription struct {
	stylistID uint
	C         chan []byte
}

// Hub fans slot events out to websocket subscribers. Subscribers register
// for one stylist, or for every stylist with id 0.
type Hub struct {
	mu   sync.Mutex
	subs map[uint]map[*Subscription]struct{}

	relay Relay
	log   *zap.Logger
}

func NewHub(relay Relay, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		subs:  map[uint]map[*Subscription]struct{}{},
		relay: relay,
		log:   log,
	}
}

func (h *Hub) Subscribe(stylistID uint) *Subscription {
	sub := &Subscription{stylistID: stylistID, C: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[stylistID] == nil {
		h.subs[stylistID] = map[*Subscription]struct{}{}
	}
	h.subs[stylistID][sub] = struct{}{}
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set := h.subs[sub.stylistID]
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, sub.stylistID)
	}
	close(sub.C)
}

// PublishSlot implements slot.Publisher. With a relay the event goes
// through Redis so every instance, this one included, delivers it.
func (h *Hub) PublishSlot(ctx context.Context, ev slotdomain.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}

	if h.relay != nil {
		err := h.relay.Publish(ctx, channelName, payload)
		if err == nil {
			return
		}
		h.log.Warn("slot event relay failed, delivering locally", zap.Error(err))
	}
	h.broadcast(ev.StylistID, payload)
}

// Run relays events published by any instance until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	if h.relay == nil {
		return
	}

	ps := h.relay.Subscribe(ctx, channelName)
	defer ps.Close()

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev slotdomain.Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				h.log.Warn("bad slot event on relay", zap.Error(err))
				continue
			}
			h.broadcast(ev.StylistID, []byte(msg.Payload))
		}
	}
}

func (h *Hub) broadcast(stylistID uint, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, key := range []uint{stylistID, 0} {
		for sub := range h.subs[key] {
			select {
			case sub.C <- payload:
			default:
				// slow consumer, drop this event for it
				h.log.Debug("slot subscriber lagging", zap.Uint("stylist_id", key))
			}
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := 0
	for _, set := range h.subs {
		n += len(set)
	}
	return n
}
