package store

import (
	"context"
	"sync"

	"extras-cli/internal/model"
)

const subscriberBuffer = 32

// Hub fans committed changes out to subscribers. Slow subscribers drop
// changes rather than blocking writers.
type Hub struct {
	mu   sync.Mutex
	subs map[chan model.Change]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: map[chan model.Change]struct{}{}}
}

// Subscribe returns a channel of changes that is closed once ctx is done.
func (h *Hub) Subscribe(ctx context.Context) <-chan model.Change {
	ch := make(chan model.Change, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, ch)
		close(ch)
		h.mu.Unlock()
	}()
	return ch
}

func (h *Hub) Publish(c model.Change) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- c:
		default:
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
