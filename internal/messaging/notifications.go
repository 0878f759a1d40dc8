package messaging

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/PaulBabatuyi/campusChat-gRPC/internal/metrics"
)

// Notification announces activity in one conversation.
type Notification struct {
	ConversationID string
	SenderName     string
	Text           string
	At             time.Time
}

// NotificationDeriver builds the "X sent you a message" list of the session's user.
type NotificationDeriver struct {
	svc     *Service
	session Session
}

// Notifications returns one entry per conversation that has messages and at
// least one other participant whose name resolves, newest first. The list is
// rebuilt on every call; nothing is remembered as seen.
func (n *NotificationDeriver) Notifications(ctx context.Context) ([]Notification, error) {
	uid, ok := n.session.UserID()
	if !ok {
		return nil, nil
	}
	defer metrics.ObserveSnapshot(metrics.KindNotifications, time.Now())

	convs, err := n.svc.conversations.ConversationsFor(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	var out []Notification
	for _, e := range n.svc.enrichAll(ctx, uid, convs) {
		if e.latest == nil {
			continue
		}
		names := e.resolvedNames()
		if len(names) == 0 {
			continue
		}
		sender := strings.Join(names, ", ")
		out = append(out, Notification{
			ConversationID: e.conv.ID,
			SenderName:     sender,
			Text:           sender + " sent you a message",
			At:             e.latest.CreatedAt,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].At.After(out[j].At)
	})
	return out, nil
}
