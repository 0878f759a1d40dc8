package messaging_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/PaulBabatuyi/campusChat-gRPC/internal/data"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/live"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/memstore"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/messaging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// tickClock advances one second per reading so every stored timestamp is distinct.
type tickClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *tickClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type fixture struct {
	store *memstore.Store
	hub   *live.Hub

	conversations messaging.ConversationStore
	messages      messaging.MessageStore
	users         messaging.Directory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := &tickClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	store := memstore.New(memstore.WithClock(clock.Now))
	return &fixture{
		store:         store,
		hub:           live.NewHub(),
		conversations: store,
		messages:      store,
		users:         store,
	}
}

func (f *fixture) service() *messaging.Service {
	return messaging.NewService(messaging.Config{
		Conversations: f.conversations,
		Messages:      f.messages,
		Users:         f.users,
		Changes:       f.hub,
		Logger:        zerolog.Nop(),
		Concurrency:   4,
	})
}

func (f *fixture) user(t *testing.T, name string) string {
	t.Helper()
	u, err := f.store.CreateUser(context.Background(), name+"@example.com", "hash", name)
	require.NoError(t, err)
	return u.ID.Hex()
}

func (f *fixture) conversation(t *testing.T, a, b string) string {
	t.Helper()
	c, _, err := f.store.CreateConversation(context.Background(), a, b)
	require.NoError(t, err)
	return c.ID
}

func (f *fixture) send(t *testing.T, from, conversationID, text string) *data.Message {
	t.Helper()
	m, err := f.store.AppendMessage(context.Background(), conversationID, from, text)
	require.NoError(t, err)
	return m
}

// flakyMessages fails LatestMessage for the listed conversations.
type flakyMessages struct {
	messaging.MessageStore
	failLatest map[string]bool
}

func (f flakyMessages) LatestMessage(ctx context.Context, id string) (*data.Message, error) {
	if f.failLatest[id] {
		return nil, errBoom
	}
	return f.MessageStore.LatestMessage(ctx, id)
}

// flakyUsers fails DisplayName for the listed users.
type flakyUsers struct {
	messaging.Directory
	fail map[string]bool
}

func (f flakyUsers) DisplayName(ctx context.Context, id string) (string, error) {
	if f.fail[id] {
		return "", errBoom
	}
	return f.Directory.DisplayName(ctx, id)
}

// brokenConversations fails every conversation query.
type brokenConversations struct {
	messaging.ConversationStore
}

func (brokenConversations) ConversationsFor(context.Context, string) ([]*data.Conversation, error) {
	return nil, errBoom
}

// gatedConversations holds each ConversationsFor call until the gate opens.
type gatedConversations struct {
	messaging.ConversationStore
	entered chan struct{}
	gate    chan struct{}
}

func (g gatedConversations) ConversationsFor(ctx context.Context, id string) ([]*data.Conversation, error) {
	g.entered <- struct{}{}
	<-g.gate
	return g.ConversationStore.ConversationsFor(ctx, id)
}

func next[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for emission")
		var zero T
		return zero
	}
}
