package data

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MessagesStore provides message database operations.
type MessagesStore struct {
	coll *mongo.Collection
}

// NewMessagesStore returns a MessagesStore using given collection.
func NewMessagesStore(coll *mongo.Collection) *MessagesStore {
	return &MessagesStore{coll: coll}
}

var (
	oldestFirst = bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}
	newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
)

// AppendMessage inserts a message and returns it as stored. created_at is
// set by the server with $currentDate so no client clock takes part in
// ordering.
func (m *MessagesStore) AppendMessage(ctx context.Context, conversationID, senderID, text string) (*Message, error) {
	update := bson.D{
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "conversation_id", Value: conversationID},
			{Key: "sender_id", Value: senderID},
			{Key: "text", Value: text},
		}},
		{Key: "$currentDate", Value: bson.D{{Key: "created_at", Value: true}}},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var msg Message
	err := m.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: bson.NewObjectID()}}, update, opts).Decode(&msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// MessagesIn returns the messages of a conversation, oldest first.
func (m *MessagesStore) MessagesIn(ctx context.Context, conversationID string) ([]*Message, error) {
	opts := options.Find().SetSort(oldestFirst)
	cursor, err := m.coll.Find(ctx, bson.D{{Key: "conversation_id", Value: conversationID}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := []*Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// LatestMessage returns the newest message of a conversation, or nil when the
// conversation has none.
func (m *MessagesStore) LatestMessage(ctx context.Context, conversationID string) (*Message, error) {
	opts := options.FindOne().SetSort(newestFirst)

	var msg Message
	err := m.coll.FindOne(ctx, bson.D{{Key: "conversation_id", Value: conversationID}}, opts).Decode(&msg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}
