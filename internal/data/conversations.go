package data

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ConversationsStore provides conversation database operations.
type ConversationsStore struct {
	coll *mongo.Collection
}

// NewConversationsStore returns a ConversationsStore using the given collection.
func NewConversationsStore(coll *mongo.Collection) *ConversationsStore {
	return &ConversationsStore{coll: coll}
}

// ConversationsFor returns every conversation userID participates in.
func (s *ConversationsStore) ConversationsFor(ctx context.Context, userID string) ([]*Conversation, error) {
	// participants is an array; equality on it matches any element
	cursor, err := s.coll.Find(ctx, bson.D{{Key: "participants", Value: userID}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var convs []*Conversation
	if err := cursor.All(ctx, &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

// GetConversation finds a conversation by id.
func (s *ConversationsStore) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	var conv Conversation
	if err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&conv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// CreateConversation returns the conversation between a and b, inserting it
// if it does not exist yet. created reports whether this call inserted it.
//
// The document id is PairID(a, b) and the write is an upsert, so callers on
// both sides racing to open the same pair converge on one document.
func (s *ConversationsStore) CreateConversation(ctx context.Context, a, b string) (conv *Conversation, created bool, err error) {
	id := PairID(a, b)
	update := bson.D{{Key: "$setOnInsert", Value: bson.D{
		{Key: "participants", Value: bson.A{a, b}},
		{Key: "created_at", Value: time.Now().UTC()},
	}}}

	res, err := s.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		// two concurrent upserts on the same _id: the loser reads the winner
		if !mongo.IsDuplicateKeyError(err) {
			return nil, false, err
		}
	} else {
		created = res.UpsertedCount > 0
	}

	conv, err = s.GetConversation(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return conv, created, nil
}
