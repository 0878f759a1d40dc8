// Package live fans change signals out to in-process subscribers.
//
// A signal carries no payload: it only says "the result set behind this topic
// may have changed". Subscribers re-run their query and emit a full snapshot,
// so several signals arriving before a subscriber catches up collapse into one.
package live

import "sync"

// Topic prefixes. A user topic fires when any conversation the user takes part
// in is created or receives a message; a conversation topic fires when the
// conversation receives a message.
const (
	userPrefix         = "user:"
	conversationPrefix = "conversation:"
)

// UserTopic names the topic for changes visible in a user's conversation list.
func UserTopic(userID string) string { return userPrefix + userID }

// ConversationTopic names the topic for changes to a conversation's messages.
func ConversationTopic(conversationID string) string { return conversationPrefix + conversationID }

// Hub maps topics to the signal channels of currently subscribed listeners.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[int64]chan struct{}
	nextID int64
}

// NewHub creates a new hub instance.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int64]chan struct{})}
}

// Subscribe registers a listener on topic. The returned channel receives a
// value whenever the topic is published; it is never closed. The cancel func
// removes the listener and is safe to call more than once.
func (h *Hub) Subscribe(topic string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	if _, ok := h.subs[topic]; !ok {
		h.subs[topic] = make(map[int64]chan struct{})
	}
	h.nextID++
	id := h.nextID
	h.subs[topic][id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() { once.Do(func() { h.unsubscribe(topic, id) }) }
}

func (h *Hub) unsubscribe(topic string, id int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subs, ok := h.subs[topic]; ok {
		delete(subs, id)
		if len(subs) == 0 {
			delete(h.subs, topic)
		}
	}
}

// Publish signals every listener of each topic. It never blocks: a listener
// that already has a pending signal keeps just that one.
func (h *Hub) Publish(topics ...string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, topic := range topics {
		for _, ch := range h.subs[topic] {
			select {
			case ch <- struct{}{}:
			default:
			}
		}
	}
}

// Subscribers reports how many listeners topic currently has.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}
