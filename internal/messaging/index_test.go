package messaging_test

import (
	"context"
	"testing"
	"time"

	"github.com/PaulBabatuyi/campusChat-gRPC/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaries_OnePerConversationOfUser(t *testing.T) {
	f := newFixture(t)
	alice, bob, carol, dave := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol"), f.user(t, "dave")

	ab := f.conversation(t, alice, bob)
	ac := f.conversation(t, alice, carol)
	f.conversation(t, bob, carol)
	f.conversation(t, carol, dave)

	got, err := f.service().Index(messaging.SignedIn(alice)).Summaries(context.Background())
	require.NoError(t, err)

	ids := []string{}
	for _, s := range got {
		ids = append(ids, s.ConversationID)
	}
	assert.ElementsMatch(t, []string{ab, ac}, ids)
}

func TestSummaries_SortedNewestFirstWithEmptyLast(t *testing.T) {
	f := newFixture(t)
	alice, bob, carol, dave := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol"), f.user(t, "dave")

	ab := f.conversation(t, alice, bob)
	ac := f.conversation(t, alice, carol)
	ad := f.conversation(t, alice, dave)

	f.send(t, bob, ab, "first")
	f.send(t, alice, ac, "second")
	f.send(t, alice, ab, "third")

	got, err := f.service().Index(messaging.SignedIn(alice)).Summaries(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, ab, got[0].ConversationID)
	assert.Equal(t, "third", got[0].LastMessage)
	assert.Equal(t, []string{"bob"}, got[0].ParticipantNames)
	assert.Equal(t, []string{bob}, got[0].ParticipantIDs)

	assert.Equal(t, ac, got[1].ConversationID)
	assert.Equal(t, "second", got[1].LastMessage)

	assert.Equal(t, ad, got[2].ConversationID)
	assert.Equal(t, messaging.NoMessagesText, got[2].LastMessage)
	assert.True(t, got[2].LastMessageAt.IsZero())

	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].LastMessageAt.After(got[i-1].LastMessageAt))
	}
}

func TestSummaries_FallbacksDoNotAbort(t *testing.T) {
	f := newFixture(t)
	alice, bob, carol := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol")

	ab := f.conversation(t, alice, bob)
	ac := f.conversation(t, alice, carol)
	ghost := f.conversation(t, alice, "5f0000000000000000000000") // deleted user
	f.send(t, bob, ab, "hi")
	f.send(t, carol, ac, "hey")

	f.messages = flakyMessages{MessageStore: f.store, failLatest: map[string]bool{ab: true}}
	f.users = flakyUsers{Directory: f.store, fail: map[string]bool{carol: true}}

	got, err := f.service().Index(messaging.SignedIn(alice)).Summaries(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	byID := map[string]messaging.Summary{}
	for _, s := range got {
		byID[s.ConversationID] = s
	}
	assert.Equal(t, messaging.NoMessagesText, byID[ab].LastMessage)
	assert.Equal(t, []string{"bob"}, byID[ab].ParticipantNames)
	assert.Equal(t, []string{messaging.UnknownName}, byID[ac].ParticipantNames)
	assert.Equal(t, "hey", byID[ac].LastMessage)
	assert.Equal(t, []string{messaging.UnknownName}, byID[ghost].ParticipantNames)
}

func TestSummaries_QueryFailure(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	f.conversations = brokenConversations{ConversationStore: f.store}

	_, err := f.service().Index(messaging.SignedIn(alice)).Summaries(context.Background())
	assert.ErrorIs(t, err, errBoom)
}

func TestSummaries_NotReady(t *testing.T) {
	f := newFixture(t)
	f.conversations = brokenConversations{ConversationStore: f.store}

	// no query is issued, so the broken store is never reached
	got, err := f.service().Index(messaging.NotReady).Summaries(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, got)

	err = f.service().Index(messaging.SignedIn("  ")).Watch(context.Background(), func([]messaging.Summary) error {
		t.Fatal("not-ready index must not emit")
		return nil
	})
	assert.NoError(t, err)
}

func TestIndexWatch_ReemitsFullListOnChange(t *testing.T) {
	f := newFixture(t)
	alice, bob, carol := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol")
	svc := f.service()
	ab := f.conversation(t, alice, bob)

	ctx, cancel := context.WithCancel(context.Background())
	snaps := make(chan []messaging.Summary, 8)
	done := make(chan error, 1)
	go func() {
		done <- svc.Index(messaging.SignedIn(alice)).Watch(ctx, func(s []messaging.Summary) error {
			snaps <- s
			return nil
		})
	}()

	first := next(t, snaps)
	require.Len(t, first, 1)
	assert.Equal(t, messaging.NoMessagesText, first[0].LastMessage)

	// a message from bob's side reaches alice's list
	_, err := svc.Feed(messaging.SignedIn(bob), ab).Send(ctx, &messaging.Draft{Text: "hello"})
	require.NoError(t, err)
	second := next(t, snaps)
	require.Len(t, second, 1)
	assert.Equal(t, "hello", second[0].LastMessage)

	// a new conversation opened by carol appears as a full replacement
	_, err = svc.Resolver(messaging.SignedIn(carol)).Resolve(ctx, alice, nil)
	require.NoError(t, err)
	third := next(t, snaps)
	assert.Len(t, third, 2)
	assert.Equal(t, ab, third[0].ConversationID)

	cancel()
	require.NoError(t, next(t, done))
	assert.Zero(t, f.hub.Subscribers("user:"+alice))
}

func TestIndexWatch_DropsSnapshotAfterTeardown(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	gated := gatedConversations{ConversationStore: f.store, entered: make(chan struct{}), gate: make(chan struct{})}
	f.conversations = gated

	ctx, cancel := context.WithCancel(context.Background())
	emitted := make(chan []messaging.Summary, 1)
	done := make(chan error, 1)
	go func() {
		done <- f.service().Index(messaging.SignedIn(alice)).Watch(ctx, func(s []messaging.Summary) error {
			emitted <- s
			return nil
		})
	}()

	next(t, gated.entered)
	cancel()
	close(gated.gate)

	require.NoError(t, next(t, done))
	select {
	case s := <-emitted:
		t.Fatalf("snapshot emitted after teardown: %+v", s)
	default:
	}
}

func TestIndexWatch_EmitErrorEndsWatch(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")

	err := f.service().Index(messaging.SignedIn(alice)).Watch(context.Background(), func([]messaging.Summary) error {
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)
}

func TestIndexWatch_SurvivesFailedSnapshot(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	f.conversations = brokenConversations{ConversationStore: f.store}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := f.service().Index(messaging.SignedIn(alice)).Watch(ctx, func([]messaging.Summary) error {
		t.Fatal("failed snapshots must not be emitted")
		return nil
	})
	assert.NoError(t, err)
}
