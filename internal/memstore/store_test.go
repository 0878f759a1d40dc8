package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/PaulBabatuyi/campusChat-gRPC/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := New()

	u, err := s.CreateUser(ctx, " Ada@Example.com ", "hash", "Ada  Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, "Ada Lovelace", u.DisplayName)

	_, err = s.CreateUser(ctx, "ada@example.com", "hash", "Other")
	assert.ErrorIs(t, err, data.ErrUserExists)

	byEmail, err := s.GetUserByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	name, err := s.DisplayName(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", name)

	_, err = s.DisplayName(ctx, "nope")
	assert.ErrorIs(t, err, data.ErrNotFound)

	ok, err := s.UserExists(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFollowGraph(t *testing.T) {
	ctx := context.Background()
	s := New()
	a, _ := s.CreateUser(ctx, "a@example.com", "h", "A")
	b, _ := s.CreateUser(ctx, "b@example.com", "h", "B")

	require.NoError(t, s.Follow(ctx, a.ID.Hex(), b.ID.Hex()))
	require.NoError(t, s.Follow(ctx, a.ID.Hex(), b.ID.Hex()))

	gotA, _ := s.GetUserByID(ctx, a.ID.Hex())
	gotB, _ := s.GetUserByID(ctx, b.ID.Hex())
	assert.Equal(t, []string{b.ID.Hex()}, gotA.Following)
	assert.Equal(t, []string{a.ID.Hex()}, gotB.Followers)

	// returned users are copies
	gotB.Followers[0] = "tampered"
	again, _ := s.GetUserByID(ctx, b.ID.Hex())
	assert.Equal(t, []string{a.ID.Hex()}, again.Followers)

	require.NoError(t, s.Unfollow(ctx, a.ID.Hex(), b.ID.Hex()))
	gotA, _ = s.GetUserByID(ctx, a.ID.Hex())
	assert.Empty(t, gotA.Following)

	assert.ErrorIs(t, s.Follow(ctx, a.ID.Hex(), "missing"), data.ErrNotFound)

	ghost := bson.NewObjectID().Hex()
	assert.ErrorIs(t, s.Follow(ctx, ghost, b.ID.Hex()), data.ErrNotFound)
	gotB, _ = s.GetUserByID(ctx, b.ID.Hex())
	assert.Empty(t, gotB.Followers)
}

func TestCreateConversation_OnePerPair(t *testing.T) {
	ctx := context.Background()
	s := New()

	var wg sync.WaitGroup
	ids := make([]string, 20)
	for i := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, b := "alice", "bob"
			if i%2 == 1 {
				a, b = b, a
			}
			c, _, err := s.CreateConversation(ctx, a, b)
			if err == nil {
				ids[i] = c.ID
			}
		}()
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, data.PairID("alice", "bob"), id)
	}
	convs, err := s.ConversationsFor(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, convs, 1)
}

func TestAppendMessage_TimestampsNeverGoBack(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := []time.Time{base, base.Add(-time.Hour), base.Add(time.Minute)}
	i := 0
	s := New(WithClock(func() time.Time {
		t := clock[i%len(clock)]
		i++
		return t
	}))

	for _, text := range []string{"one", "two", "three"} {
		_, err := s.AppendMessage(ctx, "c1", "alice", text)
		require.NoError(t, err)
	}

	msgs, err := s.MessagesIn(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, base, msgs[1].CreatedAt)
	for j := 1; j < len(msgs); j++ {
		assert.False(t, msgs[j].CreatedAt.Before(msgs[j-1].CreatedAt))
	}

	latest, err := s.LatestMessage(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "three", latest.Text)

	none, err := s.LatestMessage(ctx, "empty")
	require.NoError(t, err)
	assert.Nil(t, none)
}
