package data

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Menu item statuses that take an item off sale. Any other value, including
// none, means available.
const (
	StatusOutOfStock  = "out of stock"
	StatusUnavailable = "unavailable"
)

// MenuItem maps to the cafeteria collection.
type MenuItem struct {
	ID     bson.ObjectID `bson:"_id,omitempty"`
	Name   string        `bson:"name"`
	Price  float64       `bson:"price"`
	Status string        `bson:"status,omitempty"`
	Image  string        `bson:"image,omitempty"`
}

// Available reports whether the item can be ordered.
func (m *MenuItem) Available() bool {
	return m.Status != StatusOutOfStock && m.Status != StatusUnavailable
}

// MenuStore reads the cafeteria menu.
type MenuStore struct {
	coll *mongo.Collection
}

// NewMenuStore returns a MenuStore using the given collection.
func NewMenuStore(coll *mongo.Collection) *MenuStore {
	return &MenuStore{coll: coll}
}

// ListMenu returns every menu item ordered by name.
func (s *MenuStore) ListMenu(ctx context.Context) ([]*MenuItem, error) {
	cursor, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}
	return items, nil
}

// AddMenuItem inserts item and sets its ID.
func (s *MenuStore) AddMenuItem(ctx context.Context, item *MenuItem) error {
	res, err := s.coll.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("insert menu item: %w", err)
	}
	item.ID = res.InsertedID.(bson.ObjectID)
	return nil
}
