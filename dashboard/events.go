package dashboard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is a dashboard state change pushed to websocket subscribers.
type Event struct {
	ID   string      `json:"id"`
	Type string      `json:"type"`
	Time time.Time   `json:"time"`
	Data interface{} `json:"data,omitempty"`
}

const (
	EventGesture = "gesture"
	EventScreen  = "screen"
	EventRefresh = "refresh"
	EventOverlay = "overlay"
)

// broker fans events out to subscribers. Slow subscribers drop events
// rather than stalling the dispatch loop.
type broker struct {
	mu   sync.Mutex
	subs map[string]chan Event
}

func newBroker() *broker {
	return &broker{subs: make(map[string]chan Event)}
}

// Subscribe registers a new subscriber and returns its id and channel.
func (b *broker) Subscribe() (string, <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := uuid.NewString()
	ch := make(chan Event, 16)
	b.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *broker) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Publish sends an event to every subscriber that has room for it.
func (b *broker) Publish(eventType string, data interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ev := Event{
		ID:   uuid.NewString(),
		Type: eventType,
		Time: time.Now(),
		Data: data,
	}
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Close drops every subscriber.
func (b *broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
