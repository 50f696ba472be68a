// Package notify fans storage-change signals out to every open view. Within
// a process the Hub delivers to its subscribers directly; with a Redis client
// it also relays changes between processes sharing the same store.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ustinerary/planner/internal/store"
)

// Channel is the Redis pub/sub channel used for cross-process relay.
const Channel = "ustinerary:changes"

const subscriberBuffer = 64

// Subscriber receives changes on C until it is unsubscribed.
type Subscriber struct {
	C chan store.Change
}

// Hub implements store.Publisher.
type Hub struct {
	id    string
	redis *redis.Client
	log   *slog.Logger

	mu   sync.RWMutex
	subs map[*Subscriber]struct{}

	ready     chan struct{}
	readyOnce sync.Once
}

type envelope struct {
	Origin string `json:"origin"`
	Key    string `json:"key"`
}

var _ store.Publisher = (*Hub)(nil)

// NewHub returns a hub. redisClient may be nil for a single-process deployment.
func NewHub(redisClient *redis.Client, log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		id:    uuid.NewString(),
		redis: redisClient,
		log:   log,
		subs:  map[*Subscriber]struct{}{},
		ready: make(chan struct{}),
	}
}

// Subscribe registers a new buffered subscriber.
func (h *Hub) Subscribe() *Subscriber {
	s := &Subscriber{C: make(chan store.Change, subscriberBuffer)}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Unsubscribe removes s and closes its channel. It is safe to call twice.
func (h *Hub) Unsubscribe(s *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s]; ok {
		delete(h.subs, s)
		close(s.C)
	}
}

// Publish delivers c to local subscribers and, when configured, to other
// processes. Slow subscribers miss changes instead of blocking the writer.
func (h *Hub) Publish(c store.Change) {
	h.deliver(c)

	if h.redis == nil {
		return
	}
	payload, err := json.Marshal(envelope{Origin: h.id, Key: c.Key})
	if err != nil {
		return
	}
	if err := h.redis.Publish(context.Background(), Channel, payload).Err(); err != nil {
		h.log.Warn("change relay publish failed", "key", c.Key, "error", err)
	}
}

func (h *Hub) deliver(c store.Change) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs {
		select {
		case s.C <- c:
		default:
		}
	}
}

// Ready is closed once Run has subscribed to the relay channel.
func (h *Hub) Ready() <-chan struct{} { return h.ready }

// Run relays changes published by other processes until ctx is done.
// Without a Redis client it only waits for ctx.
func (h *Hub) Run(ctx context.Context) error {
	if h.redis == nil {
		h.readyOnce.Do(func() { close(h.ready) })
		<-ctx.Done()
		return nil
	}

	pubsub := h.redis.Subscribe(ctx, Channel)
	defer pubsub.Close()
	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}
	h.readyOnce.Do(func() { close(h.ready) })

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil || env.Key == "" {
				h.log.Warn("ignoring malformed change message", "payload", msg.Payload)
				continue
			}
			if env.Origin == h.id {
				continue
			}
			h.deliver(store.Change{Key: env.Key})
		}
	}
}
