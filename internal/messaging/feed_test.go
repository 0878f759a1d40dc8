package messaging_test

import (
	"context"
	"testing"

	"github.com/PaulBabatuyi/campusChat-gRPC/internal/data"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedSend_RoundTrip(t *testing.T) {
	f := newFixture(t)
	alice, bob := f.user(t, "alice"), f.user(t, "bob")
	conv := f.conversation(t, alice, bob)
	f.send(t, bob, conv, "earlier")
	f.send(t, alice, conv, "later")

	feed := f.service().Feed(messaging.SignedIn(alice), conv)
	draft := &messaging.Draft{Text: "  Hello \n"}

	sent, err := feed.Send(context.Background(), draft)
	require.NoError(t, err)
	require.NotNil(t, sent)
	assert.Empty(t, draft.Text, "draft is cleared after a successful send")

	msgs, err := feed.Messages(context.Background())
	require.NoError(t, err)
	require.Len(t, msgs, 3)

	last := msgs[len(msgs)-1]
	assert.Equal(t, "Hello", last.Text)
	assert.Equal(t, alice, last.SenderID)
	assert.Equal(t, conv, last.ConversationID)
	for _, m := range msgs[:len(msgs)-1] {
		assert.False(t, last.CreatedAt.Before(m.CreatedAt))
	}
}

func TestFeedSend_NoOps(t *testing.T) {
	f := newFixture(t)
	alice, bob := f.user(t, "alice"), f.user(t, "bob")
	conv := f.conversation(t, alice, bob)
	f.send(t, bob, conv, "hi")
	svc := f.service()

	cases := map[string]struct {
		feed  *messaging.MessageFeed
		draft *messaging.Draft
	}{
		"empty":           {svc.Feed(messaging.SignedIn(alice), conv), &messaging.Draft{Text: ""}},
		"whitespace":      {svc.Feed(messaging.SignedIn(alice), conv), &messaging.Draft{Text: " \t\n "}},
		"no sender":       {svc.Feed(messaging.NotReady, conv), &messaging.Draft{Text: "hello"}},
		"no conversation": {svc.Feed(messaging.SignedIn(alice), ""), &messaging.Draft{Text: "hello"}},
		"nil draft":       {svc.Feed(messaging.SignedIn(alice), conv), nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var before string
			if tc.draft != nil {
				before = tc.draft.Text
			}

			msg, err := tc.feed.Send(context.Background(), tc.draft)
			assert.NoError(t, err)
			assert.Nil(t, msg)
			if tc.draft != nil {
				assert.Equal(t, before, tc.draft.Text, "draft is untouched on a no-op")
			}

			msgs, err := f.store.MessagesIn(context.Background(), conv)
			require.NoError(t, err)
			assert.Len(t, msgs, 1)
		})
	}
}

func TestFeed_Access(t *testing.T) {
	f := newFixture(t)
	alice, bob, mallory := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "mallory")
	conv := f.conversation(t, alice, bob)
	svc := f.service()

	_, err := svc.Feed(messaging.SignedIn(mallory), conv).Send(context.Background(), &messaging.Draft{Text: "psst"})
	assert.ErrorIs(t, err, messaging.ErrNotParticipant)

	_, err = svc.Feed(messaging.SignedIn(mallory), conv).Messages(context.Background())
	assert.ErrorIs(t, err, messaging.ErrNotParticipant)

	err = svc.Feed(messaging.SignedIn(alice), "nope").Watch(context.Background(), func([]*data.Message) error { return nil })
	assert.ErrorIs(t, err, messaging.ErrUnknownConversation)

	draft := &messaging.Draft{Text: "kept"}
	_, err = svc.Feed(messaging.SignedIn(alice), "nope").Send(context.Background(), draft)
	assert.ErrorIs(t, err, messaging.ErrUnknownConversation)
	assert.Equal(t, "kept", draft.Text)
}

func TestFeedWatch_ReadYourWrites(t *testing.T) {
	f := newFixture(t)
	alice, bob := f.user(t, "alice"), f.user(t, "bob")
	conv := f.conversation(t, alice, bob)
	svc := f.service()

	ctx, cancel := context.WithCancel(context.Background())
	aliceSnaps := make(chan []*data.Message, 8)
	bobSnaps := make(chan []*data.Message, 8)
	done := make(chan error, 2)
	go func() {
		done <- svc.Feed(messaging.SignedIn(alice), conv).Watch(ctx, func(m []*data.Message) error {
			aliceSnaps <- m
			return nil
		})
	}()
	go func() {
		done <- svc.Feed(messaging.SignedIn(bob), conv).Watch(ctx, func(m []*data.Message) error {
			bobSnaps <- m
			return nil
		})
	}()

	assert.Empty(t, next(t, aliceSnaps))
	assert.Empty(t, next(t, bobSnaps))

	_, err := svc.Feed(messaging.SignedIn(alice), conv).Send(ctx, &messaging.Draft{Text: "Hello"})
	require.NoError(t, err)

	mine := next(t, aliceSnaps)
	require.Len(t, mine, 1)
	assert.Equal(t, "Hello", mine[0].Text)

	theirs := next(t, bobSnaps)
	require.Len(t, theirs, 1)
	assert.Equal(t, alice, theirs[0].SenderID)

	cancel()
	require.NoError(t, next(t, done))
	require.NoError(t, next(t, done))
}
