package messaging

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/PaulBabatuyi/campusChat-gRPC/internal/data"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/live"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/metrics"
)

// Summary is one row of a user's conversation list.
type Summary struct {
	ConversationID string
	// ParticipantIDs and ParticipantNames describe the other participants,
	// index-aligned. A name is UnknownName when it could not be resolved.
	ParticipantIDs   []string
	ParticipantNames []string
	LastMessage      string
	// LastMessageAt is the zero time when the conversation has no messages.
	LastMessageAt time.Time
}

// ConversationIndex lists the conversations of the session's user, newest
// activity first.
type ConversationIndex struct {
	svc     *Service
	session Session
}

// Conversations returns the raw conversations of the user, unenriched.
func (x *ConversationIndex) Conversations(ctx context.Context) ([]*data.Conversation, error) {
	uid, ok := x.session.UserID()
	if !ok {
		return nil, nil
	}
	convs, err := x.svc.conversations.ConversationsFor(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return convs, nil
}

// Summaries derives the conversation list once. Only the conversation query
// itself can fail it; name and latest-message lookups fall back to
// placeholders.
func (x *ConversationIndex) Summaries(ctx context.Context) ([]Summary, error) {
	uid, ok := x.session.UserID()
	if !ok {
		return nil, nil
	}
	defer metrics.ObserveSnapshot(metrics.KindConversations, time.Now())

	convs, err := x.Conversations(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(convs))
	for _, e := range x.svc.enrichAll(ctx, uid, convs) {
		s := Summary{
			ConversationID:   e.conv.ID,
			ParticipantIDs:   e.otherIDs,
			ParticipantNames: e.names,
			LastMessage:      NoMessagesText,
		}
		if e.latest != nil {
			s.LastMessage = e.latest.Text
			s.LastMessageAt = e.latest.CreatedAt
		}
		summaries = append(summaries, s)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].LastMessageAt.After(summaries[j].LastMessageAt)
	})
	return summaries, nil
}

// Watch emits the conversation list now and after every change to any of the
// user's conversations, until ctx is done. With a NotReady session it returns
// immediately without emitting. An error from emit ends the watch.
func (x *ConversationIndex) Watch(ctx context.Context, emit func([]Summary) error) error {
	uid, ok := x.session.UserID()
	if !ok {
		return nil
	}
	log := x.svc.log.With().Str("user_id", uid).Logger()
	return watch(ctx, x.svc.changes, live.UserTopic(uid), metrics.KindConversations, log, x.Summaries, emit)
}
