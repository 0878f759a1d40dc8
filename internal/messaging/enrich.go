package messaging

import (
	"context"
	"errors"

	"github.com/PaulBabatuyi/campusChat-gRPC/internal/data"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// Placeholders substituted when a lookup yields nothing.
const (
	UnknownName    = "Unknown"
	NoMessagesText = "No messages yet"
)

// enriched is a conversation joined with its other participants' names and
// its newest message.
type enriched struct {
	conv     *data.Conversation
	otherIDs []string
	names    []string // UnknownName where the lookup failed
	found    []bool
	latest   *data.Message // nil when there are no messages or the lookup failed
}

func (e *enriched) resolvedNames() []string {
	var out []string
	for i, name := range e.names {
		if e.found[i] {
			out = append(out, name)
		}
	}
	return out
}

// enrichAll enriches every conversation concurrently, at most s.concurrency
// at a time, and returns once all of them are done. Lookup failures never
// fail the batch.
func (s *Service) enrichAll(ctx context.Context, self string, convs []*data.Conversation) []enriched {
	out := make([]enriched, len(convs))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, c := range convs {
		g.Go(func() error {
			out[i] = s.enrich(ctx, self, c)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (s *Service) enrich(ctx context.Context, self string, c *data.Conversation) enriched {
	others := c.Others(self)
	e := enriched{
		conv:     c,
		otherIDs: others,
		names:    make([]string, len(others)),
		found:    make([]bool, len(others)),
	}

	var g errgroup.Group
	for i, id := range others {
		g.Go(func() error {
			e.names[i], e.found[i] = s.displayName(ctx, c.ID, id)
			return nil
		})
	}
	g.Go(func() error {
		e.latest = s.latestMessage(ctx, c.ID)
		return nil
	})
	_ = g.Wait()
	return e
}

func (s *Service) displayName(ctx context.Context, conversationID, userID string) (string, bool) {
	name, err := s.users.DisplayName(ctx, userID)
	if err != nil {
		metrics.EnrichmentFallbacks.WithLabelValues(metrics.FallbackName).Inc()
		ev := s.log.Warn()
		if errors.Is(err, data.ErrNotFound) {
			ev = s.log.Debug()
		}
		ev.Err(err).
			Str("conversation_id", conversationID).
			Str("user_id", userID).
			Msg("participant name unavailable")
		return UnknownName, false
	}
	if name == "" {
		return UnknownName, true
	}
	return name, true
}

func (s *Service) latestMessage(ctx context.Context, conversationID string) *data.Message {
	msg, err := s.messages.LatestMessage(ctx, conversationID)
	if err != nil {
		metrics.EnrichmentFallbacks.WithLabelValues(metrics.FallbackLatest).Inc()
		s.log.Warn().Err(err).
			Str("conversation_id", conversationID).
			Msg("latest message unavailable")
		return nil
	}
	return msg
}
