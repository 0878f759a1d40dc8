// Package memstore is an in-memory implementation of the chat stores. It backs
// STORE_BACKEND=memory for local runs and the unit tests of the layers above.
package memstore

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/PaulBabatuyi/campusChat-gRPC/internal/data"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/normalize"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Store holds every collection behind one lock.
type Store struct {
	mu            sync.RWMutex
	now           func() time.Time
	users         map[bson.ObjectID]*data.User
	emails        map[string]bson.ObjectID
	conversations map[string]*data.Conversation
	messages      map[string][]*data.Message // conversation id -> oldest first
	books         []*data.Book               // oldest first
	menu          []*data.MenuItem
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the clock used for server-assigned timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		now:           time.Now,
		users:         make(map[bson.ObjectID]*data.User),
		emails:        make(map[string]bson.ObjectID),
		conversations: make(map[string]*data.Conversation),
		messages:      make(map[string][]*data.Message),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func copyUser(u *data.User) *data.User {
	c := *u
	c.Followers = slices.Clone(u.Followers)
	c.Following = slices.Clone(u.Following)
	return &c
}

func copyConversation(c *data.Conversation) *data.Conversation {
	cp := *c
	cp.Participants = slices.Clone(c.Participants)
	return &cp
}

func copyMessage(m *data.Message) *data.Message {
	cp := *m
	return &cp
}

// CreateUser inserts a user; the email must be unused.
func (s *Store) CreateUser(_ context.Context, email, hashedPassword, displayName string) (*data.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = normalize.Email(email)
	if _, ok := s.emails[email]; ok {
		return nil, data.ErrUserExists
	}

	now := s.now().UTC()
	u := &data.User{
		ID:          bson.NewObjectID(),
		Email:       email,
		Password:    hashedPassword,
		DisplayName: normalize.DisplayName(displayName),
		Followers:   []string{},
		Following:   []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.users[u.ID] = u
	s.emails[email] = u.ID
	return copyUser(u), nil
}

// GetUserByEmail finds a user by email.
func (s *Store) GetUserByEmail(_ context.Context, email string) (*data.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[normalize.Email(email)]
	if !ok {
		return nil, data.ErrNotFound
	}
	return copyUser(s.users[id]), nil
}

func (s *Store) userLocked(id string) (*data.User, bool) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	u, ok := s.users[oid]
	return u, ok
}

// GetUserByID finds a user by hex id.
func (s *Store) GetUserByID(_ context.Context, id string) (*data.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.userLocked(id)
	if !ok {
		return nil, data.ErrNotFound
	}
	return copyUser(u), nil
}

// UserExists reports whether a user with the hex id exists.
func (s *Store) UserExists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.userLocked(id)
	return ok, nil
}

// DisplayName returns a user's display name.
func (s *Store) DisplayName(_ context.Context, id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.userLocked(id)
	if !ok {
		return "", data.ErrNotFound
	}
	return u.DisplayName, nil
}

// Follow adds the follow edge to both users.
func (s *Store) Follow(_ context.Context, follower, followee string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, to, err := s.edgeLocked(follower, followee)
	if err != nil {
		return err
	}
	if !slices.Contains(to.Followers, follower) {
		to.Followers = append(to.Followers, follower)
	}
	if !slices.Contains(from.Following, followee) {
		from.Following = append(from.Following, followee)
	}
	return nil
}

// Unfollow removes the follow edge from both users.
func (s *Store) Unfollow(_ context.Context, follower, followee string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, to, err := s.edgeLocked(follower, followee)
	if err != nil {
		return err
	}
	to.Followers = slices.DeleteFunc(to.Followers, func(id string) bool { return id == follower })
	from.Following = slices.DeleteFunc(from.Following, func(id string) bool { return id == followee })
	return nil
}

func (s *Store) edgeLocked(follower, followee string) (from, to *data.User, err error) {
	from, ok := s.userLocked(follower)
	if !ok {
		return nil, nil, data.ErrNotFound
	}
	to, ok = s.userLocked(followee)
	if !ok {
		return nil, nil, data.ErrNotFound
	}
	now := s.now().UTC()
	from.UpdatedAt, to.UpdatedAt = now, now
	return from, to, nil
}

// ConversationsFor returns the conversations userID takes part in, oldest first.
func (s *Store) ConversationsFor(_ context.Context, userID string) ([]*data.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*data.Conversation
	for _, c := range s.conversations {
		if c.HasParticipant(userID) {
			out = append(out, copyConversation(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// GetConversation finds a conversation by id.
func (s *Store) GetConversation(_ context.Context, id string) (*data.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.conversations[id]
	if !ok {
		return nil, data.ErrNotFound
	}
	return copyConversation(c), nil
}

// CreateConversation returns the conversation for the pair, inserting it when absent.
func (s *Store) CreateConversation(_ context.Context, a, b string) (*data.Conversation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := data.PairID(a, b)
	if c, ok := s.conversations[id]; ok {
		return copyConversation(c), false, nil
	}
	c := &data.Conversation{
		ID:           id,
		Participants: []string{a, b},
		CreatedAt:    s.now().UTC(),
	}
	s.conversations[id] = c
	return copyConversation(c), true, nil
}

// AppendMessage stores a message stamped by the store's clock. Timestamps
// never go backwards within a conversation even if the clock does.
func (s *Store) AppendMessage(_ context.Context, conversationID, senderID, text string) (*data.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := s.now().UTC()
	existing := s.messages[conversationID]
	if n := len(existing); n > 0 && at.Before(existing[n-1].CreatedAt) {
		at = existing[n-1].CreatedAt
	}

	m := &data.Message{
		ID:             bson.NewObjectID(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           text,
		CreatedAt:      at,
	}
	s.messages[conversationID] = append(existing, m)
	return copyMessage(m), nil
}

// MessagesIn returns a conversation's messages, oldest first.
func (s *Store) MessagesIn(_ context.Context, conversationID string) ([]*data.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.messages[conversationID]
	out := make([]*data.Message, len(stored))
	for i, m := range stored {
		out[i] = copyMessage(m)
	}
	return out, nil
}

// LatestMessage returns the newest message or nil when there is none.
func (s *Store) LatestMessage(_ context.Context, conversationID string) (*data.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.messages[conversationID]
	if len(stored) == 0 {
		return nil, nil
	}
	return copyMessage(stored[len(stored)-1]), nil
}
