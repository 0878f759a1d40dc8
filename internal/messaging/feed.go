package messaging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PaulBabatuyi/campusChat-gRPC/internal/data"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/live"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/metrics"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/normalize"
)

// Draft is the outgoing text being composed. Send clears it once the message
// is stored.
type Draft struct {
	Text string
}

// MessageFeed is one conversation's messages, oldest first.
type MessageFeed struct {
	svc            *Service
	session        Session
	conversationID string
}

// ConversationID returns the id the feed was opened for.
func (f *MessageFeed) ConversationID() string { return f.conversationID }

// authorize loads the conversation and checks that userID belongs to it.
func (f *MessageFeed) authorize(ctx context.Context, userID string) (*data.Conversation, error) {
	conv, err := f.svc.conversations.GetConversation(ctx, f.conversationID)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return nil, ErrUnknownConversation
		}
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	if !conv.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}
	return conv, nil
}

// Messages returns the conversation's messages, oldest first.
func (f *MessageFeed) Messages(ctx context.Context) ([]*data.Message, error) {
	uid, ok := f.session.UserID()
	if !ok || f.conversationID == "" {
		return nil, nil
	}
	if _, err := f.authorize(ctx, uid); err != nil {
		return nil, err
	}
	return f.list(ctx)
}

func (f *MessageFeed) list(ctx context.Context) ([]*data.Message, error) {
	msgs, err := f.svc.messages.MessagesIn(ctx, f.conversationID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

// Watch emits the full message list now and after every new message, until
// ctx is done. Access is checked once, before subscribing.
func (f *MessageFeed) Watch(ctx context.Context, emit func([]*data.Message) error) error {
	uid, ok := f.session.UserID()
	if !ok || f.conversationID == "" {
		return nil
	}
	if _, err := f.authorize(ctx, uid); err != nil {
		return err
	}

	log := f.svc.log.With().Str("user_id", uid).Str("conversation_id", f.conversationID).Logger()
	build := func(ctx context.Context) ([]*data.Message, error) {
		defer metrics.ObserveSnapshot(metrics.KindMessages, time.Now())
		return f.list(ctx)
	}
	return watch(ctx, f.svc.changes, live.ConversationTopic(f.conversationID), metrics.KindMessages, log, build, emit)
}

// Send appends the draft as a message from the session's user. A blank draft,
// a NotReady session or a feed without a conversation id make it a no-op that
// returns nil, nil and leaves the draft alone. On success the draft is cleared
// and the participants' live views are signalled, so the sender's own
// subscriptions include the message on their next emission.
func (f *MessageFeed) Send(ctx context.Context, draft *Draft) (*data.Message, error) {
	if draft == nil {
		return nil, nil
	}
	text := normalize.Body(draft.Text)
	uid, ok := f.session.UserID()
	if text == "" || !ok || f.conversationID == "" {
		return nil, nil
	}

	conv, err := f.authorize(ctx, uid)
	if err != nil {
		return nil, err
	}

	msg, err := f.svc.messages.AppendMessage(ctx, f.conversationID, uid, text)
	if err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}
	draft.Text = ""
	metrics.MessagesSent.Inc()

	topics := []string{live.ConversationTopic(conv.ID)}
	for _, p := range conv.Participants {
		topics = append(topics, live.UserTopic(p))
	}
	f.svc.changes.Publish(topics...)

	f.svc.log.Debug().
		Str("conversation_id", conv.ID).
		Str("message_id", msg.ID.Hex()).
		Msg("message sent")
	return msg, nil
}
