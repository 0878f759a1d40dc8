package data

import (
	"context"
	"errors"
	"time"

	"github.com/PaulBabatuyi/campusChat-gRPC/internal/live"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"golang.org/x/sync/errgroup"
)

// Publisher receives the topics affected by a stored change.
type Publisher interface {
	Publish(topics ...string)
}

// Watcher tails the conversations and messages collections with change
// streams and publishes the user and conversation topics each change touches.
// It lets writes made by other processes reach local live subscriptions.
type Watcher struct {
	conversations *mongo.Collection
	messages      *mongo.Collection
	convs         *ConversationsStore
	pub           Publisher
	log           zerolog.Logger
	retryDelay    time.Duration
}

// NewWatcher returns a Watcher over the given collections.
func NewWatcher(conversations, messages *mongo.Collection, pub Publisher, log zerolog.Logger) *Watcher {
	return &Watcher{
		conversations: conversations,
		messages:      messages,
		convs:         NewConversationsStore(conversations),
		pub:           pub,
		log:           log.With().Str("component", "watcher").Logger(),
		retryDelay:    time.Second,
	}
}

// Run blocks until ctx is cancelled, reopening a stream from its last resume
// token whenever it fails.
func (w *Watcher) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.loop(ctx, w.conversations, w.onConversation) })
	g.Go(func() error { return w.loop(ctx, w.messages, w.onMessage) })
	return g.Wait()
}

type changeEvent[T any] struct {
	FullDocument *T `bson:"fullDocument"`
}

func (w *Watcher) loop(ctx context.Context, coll *mongo.Collection, handle func(context.Context, bson.Raw)) error {
	var resume bson.Raw
	delay := w.retryDelay
	for {
		token, err := w.stream(ctx, coll, resume, handle)
		if token != nil {
			resume = token
			delay = w.retryDelay
		}
		if ctx.Err() != nil {
			return nil
		}
		w.log.Warn().Err(err).Str("collection", coll.Name()).Dur("retry_in", delay).Msg("change stream interrupted")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}
		delay = min(delay*2, 30*time.Second)
	}
}

func (w *Watcher) stream(ctx context.Context, coll *mongo.Collection, resume bson.Raw, handle func(context.Context, bson.Raw)) (bson.Raw, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "operationType", Value: bson.D{{Key: "$in", Value: bson.A{"insert", "update", "replace"}}}},
		}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	if resume != nil {
		opts.SetResumeAfter(resume)
	}

	cs, err := coll.Watch(ctx, pipeline, opts)
	if err != nil {
		return nil, err
	}
	defer cs.Close(context.Background())

	// a stream that sees no events still resumes from where it was opened
	last := cs.ResumeToken()
	for cs.Next(ctx) {
		handle(ctx, cs.Current)
		last = cs.ResumeToken()
	}
	if err := cs.Err(); err != nil {
		return last, err
	}
	return last, errors.New("change stream closed")
}

func (w *Watcher) onConversation(_ context.Context, raw bson.Raw) {
	var ev changeEvent[Conversation]
	if err := bson.Unmarshal(raw, &ev); err != nil || ev.FullDocument == nil {
		w.log.Debug().Err(err).Msg("skipping conversation event")
		return
	}

	topics := make([]string, 0, len(ev.FullDocument.Participants))
	for _, p := range ev.FullDocument.Participants {
		topics = append(topics, live.UserTopic(p))
	}
	w.pub.Publish(topics...)
}

func (w *Watcher) onMessage(ctx context.Context, raw bson.Raw) {
	var ev changeEvent[Message]
	if err := bson.Unmarshal(raw, &ev); err != nil || ev.FullDocument == nil {
		w.log.Debug().Err(err).Msg("skipping message event")
		return
	}

	cid := ev.FullDocument.ConversationID
	w.pub.Publish(live.ConversationTopic(cid))

	conv, err := w.convs.GetConversation(ctx, cid)
	if err != nil {
		w.log.Warn().Err(err).Str("conversation_id", cid).Msg("message for unknown conversation")
		return
	}
	topics := make([]string, 0, len(conv.Participants))
	for _, p := range conv.Participants {
		topics = append(topics, live.UserTopic(p))
	}
	w.pub.Publish(topics...)
}
