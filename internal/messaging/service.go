// Package messaging derives conversation lists, message feeds and message
// notifications for the current user from the document store, and keeps them
// live by re-deriving on change signals.
//
// Every live view emits complete snapshots: consumers replace what they hold
// with each emission and never apply it as a delta.
package messaging

import (
	"context"
	"errors"
	"strings"

	"github.com/PaulBabatuyi/campusChat-gRPC/internal/data"
	"github.com/rs/zerolog"
)

var (
	ErrSessionNotReady     = errors.New("session not ready")
	ErrInvalidTarget       = errors.New("target user is required")
	ErrSelfConversation    = errors.New("cannot open a conversation with yourself")
	ErrUnknownUser         = errors.New("unknown user")
	ErrUnknownConversation = errors.New("unknown conversation")
	ErrNotParticipant      = errors.New("not a participant of this conversation")
)

// ConversationStore is the subset of the conversations collection used here.
type ConversationStore interface {
	ConversationsFor(ctx context.Context, userID string) ([]*data.Conversation, error)
	GetConversation(ctx context.Context, id string) (*data.Conversation, error)
	CreateConversation(ctx context.Context, a, b string) (*data.Conversation, bool, error)
}

// MessageStore is the subset of the messages collection used here.
type MessageStore interface {
	AppendMessage(ctx context.Context, conversationID, senderID, text string) (*data.Message, error)
	MessagesIn(ctx context.Context, conversationID string) ([]*data.Message, error)
	LatestMessage(ctx context.Context, conversationID string) (*data.Message, error)
}

// Directory resolves user ids.
type Directory interface {
	DisplayName(ctx context.Context, userID string) (string, error)
	UserExists(ctx context.Context, userID string) (bool, error)
}

// Changes delivers and raises change signals per topic.
type Changes interface {
	Subscribe(topic string) (<-chan struct{}, func())
	Publish(topics ...string)
}

// Session is the current user. The zero value is NotReady.
type Session struct {
	userID string
}

// NotReady is the session before a user id is known. Components given it
// issue no queries and report no errors.
var NotReady = Session{}

// SignedIn returns the session of userID; a blank id yields NotReady.
func SignedIn(userID string) Session {
	return Session{userID: strings.TrimSpace(userID)}
}

// UserID returns the user id and whether the session is ready.
func (s Session) UserID() (string, bool) {
	return s.userID, s.userID != ""
}

// Config wires a Service.
type Config struct {
	Conversations ConversationStore
	Messages      MessageStore
	Users         Directory
	Changes       Changes
	Logger        zerolog.Logger
	// Concurrency bounds the lookups in flight while enriching one list.
	Concurrency int
}

// Service hands out the per-session messaging components.
type Service struct {
	conversations ConversationStore
	messages      MessageStore
	users         Directory
	changes       Changes
	log           zerolog.Logger
	concurrency   int
}

// NewService returns a Service using cfg.
func NewService(cfg Config) *Service {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 8
	}
	return &Service{
		conversations: cfg.Conversations,
		messages:      cfg.Messages,
		users:         cfg.Users,
		changes:       cfg.Changes,
		log:           cfg.Logger.With().Str("component", "messaging").Logger(),
		concurrency:   cfg.Concurrency,
	}
}

// Index returns the conversation list of the session's user.
func (s *Service) Index(sess Session) *ConversationIndex {
	return &ConversationIndex{svc: s, session: sess}
}

// Feed returns the message feed of one conversation as seen by the session's user.
func (s *Service) Feed(sess Session, conversationID string) *MessageFeed {
	return &MessageFeed{svc: s, session: sess, conversationID: strings.TrimSpace(conversationID)}
}

// Resolver returns the conversation resolver for the session's user.
func (s *Service) Resolver(sess Session) *ConversationResolver {
	return &ConversationResolver{svc: s, session: sess}
}

// Notifications returns the notification deriver for the session's user.
func (s *Service) Notifications(sess Session) *NotificationDeriver {
	return &NotificationDeriver{svc: s, session: sess}
}
