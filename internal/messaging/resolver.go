package messaging

import (
	"context"
	"fmt"
	"strings"

	"github.com/PaulBabatuyi/campusChat-gRPC/internal/data"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/live"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/metrics"
)

// Resolution is the outcome of resolving a conversation with another user.
type Resolution struct {
	ConversationID string
	Created        bool
}

// ConversationResolver finds or opens the conversation between the session's
// user and a target user.
type ConversationResolver struct {
	svc     *Service
	session Session
}

// Resolve returns the conversation whose participants are exactly the current
// user and target. loaded is the caller's already-fetched conversation list;
// pass nil to have it fetched. When no match exists the conversation is
// created under the pair's deterministic id, so concurrent resolution of the
// same pair from either side converges on one conversation.
func (r *ConversationResolver) Resolve(ctx context.Context, target string, loaded []*data.Conversation) (Resolution, error) {
	uid, ok := r.session.UserID()
	if !ok {
		return Resolution{}, ErrSessionNotReady
	}
	target = strings.TrimSpace(target)
	switch target {
	case "":
		return Resolution{}, ErrInvalidTarget
	case uid:
		return Resolution{}, ErrSelfConversation
	}

	if loaded == nil {
		var err error
		if loaded, err = r.svc.conversations.ConversationsFor(ctx, uid); err != nil {
			return Resolution{}, fmt.Errorf("list conversations: %w", err)
		}
	}
	for _, c := range loaded {
		if c.HasParticipant(uid) && c.HasParticipant(target) {
			return Resolution{ConversationID: c.ID}, nil
		}
	}

	exists, err := r.svc.users.UserExists(ctx, target)
	if err != nil {
		return Resolution{}, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return Resolution{}, ErrUnknownUser
	}

	conv, created, err := r.svc.conversations.CreateConversation(ctx, uid, target)
	if err != nil {
		return Resolution{}, fmt.Errorf("create conversation: %w", err)
	}
	if created {
		metrics.ConversationsCreated.Inc()
		r.svc.changes.Publish(live.UserTopic(uid), live.UserTopic(target))
		r.svc.log.Info().Str("conversation_id", conv.ID).Msg("conversation created")
	}
	return Resolution{ConversationID: conv.ID, Created: created}, nil
}
