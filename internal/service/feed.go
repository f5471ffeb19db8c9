package service

import (
	"context"
	"sync"
	"time"
)

// Feed event types pushed to connected clients.
const (
	EventTodoCreated   = "todo_created"
	EventTodoUpdated   = "todo_updated"
	EventTodoDeleted   = "todo_deleted"
	EventCommitCreated = "commit_created"
)

// FeedEvent is one record change delivered to the owning user's
// websocket connections.
type FeedEvent struct {
	Type string    `json:"type"`
	Data any       `json:"data"`
	At   time.Time `json:"at"`
}

// Buffer per subscriber; slow consumers drop events rather than block
// the request path.
const subscriberBuffer = 16

// FeedHub fans record events out to per-user subscribers. Events never
// cross user boundaries.
type FeedHub struct {
	mu     sync.Mutex
	subs   map[int64]map[chan FeedEvent]struct{}
	closed bool
}

var _ Feed = (*FeedHub)(nil)

func NewFeedHub() *FeedHub {
	return &FeedHub{subs: make(map[int64]map[chan FeedEvent]struct{})}
}

// Run blocks until ctx is cancelled, then closes every subscription so
// websocket writers unwind during shutdown.
func (h *FeedHub) Run(ctx context.Context) {
	<-ctx.Done()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for _, set := range h.subs {
		for ch := range set {
			close(ch)
		}
	}
	h.subs = make(map[int64]map[chan FeedEvent]struct{})
}

// Subscribe registers a listener for one user's events. The returned
// cancel func is safe to call more than once.
func (h *FeedHub) Subscribe(ownerID int64) (<-chan FeedEvent, func()) {
	ch := make(chan FeedEvent, subscriberBuffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	set, ok := h.subs[ownerID]
	if !ok {
		set = make(map[chan FeedEvent]struct{})
		h.subs[ownerID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if h.closed {
				return
			}
			if set, ok := h.subs[ownerID]; ok {
				delete(set, ch)
				if len(set) == 0 {
					delete(h.subs, ownerID)
				}
				close(ch)
			}
		})
	}
	return ch, cancel
}

// Publish delivers ev to every live subscription of ownerID. Full
// subscriber buffers are skipped.
func (h *FeedHub) Publish(ownerID int64, ev FeedEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for ch := range h.subs[ownerID] {
		select {
		case ch <- ev:
		default:
		}
	}
}
