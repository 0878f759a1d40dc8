package data

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Book maps to the books collection.
type Book struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	SellerID    string        `bson:"seller_id"`
	Title       string        `bson:"title"`
	Author      string        `bson:"author"`
	Genre       string        `bson:"genre"`
	Condition   string        `bson:"condition"`
	Price       float64       `bson:"price"`
	Description string        `bson:"description,omitempty"`
	CreatedAt   time.Time     `bson:"created_at"`
}

// BookFilter narrows a book search. Text fields match case-insensitive
// substrings; empty fields and a zero MaxPrice match everything.
type BookFilter struct {
	Title     string
	Author    string
	Genre     string
	Condition string
	MaxPrice  float64
}

// Match reports whether b passes the filter.
func (f BookFilter) Match(b *Book) bool {
	contains := func(field, sub string) bool {
		return sub == "" || strings.Contains(strings.ToLower(field), strings.ToLower(sub))
	}
	return contains(b.Title, f.Title) &&
		contains(b.Author, f.Author) &&
		contains(b.Genre, f.Genre) &&
		contains(b.Condition, f.Condition) &&
		(f.MaxPrice <= 0 || b.Price <= f.MaxPrice)
}

func (f BookFilter) query() bson.D {
	q := bson.D{}
	for _, t := range []struct{ key, sub string }{
		{"title", f.Title},
		{"author", f.Author},
		{"genre", f.Genre},
		{"condition", f.Condition},
	} {
		if t.sub != "" {
			q = append(q, bson.E{Key: t.key, Value: bson.Regex{Pattern: regexp.QuoteMeta(t.sub), Options: "i"}})
		}
	}
	if f.MaxPrice > 0 {
		q = append(q, bson.E{Key: "price", Value: bson.D{{Key: "$lte", Value: f.MaxPrice}}})
	}
	return q
}

// BooksStore keeps the book marketplace and the sellers' post counts.
type BooksStore struct {
	books *mongo.Collection
	users *mongo.Collection
}

// NewBooksStore returns a BooksStore over the books and users collections.
func NewBooksStore(books, users *mongo.Collection) *BooksStore {
	return &BooksStore{books: books, users: users}
}

// PostBook stores a listing for book.SellerID and bumps the seller's
// post_count. An unknown seller yields ErrNotFound and no listing.
func (s *BooksStore) PostBook(ctx context.Context, book *Book) error {
	sellerID, err := bson.ObjectIDFromHex(book.SellerID)
	if err != nil {
		return ErrNotFound
	}

	book.CreatedAt = time.Now().UTC()
	res, err := s.books.InsertOne(ctx, book)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	book.ID = res.InsertedID.(bson.ObjectID)

	upd, err := s.users.UpdateOne(ctx, bson.D{{Key: "_id", Value: sellerID}}, bson.D{
		{Key: "$inc", Value: bson.D{{Key: "post_count", Value: 1}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: book.CreatedAt}}},
	})
	if err == nil && upd.MatchedCount == 0 {
		err = ErrNotFound
	}
	if err != nil {
		// the listing must not outlive a failed count update
		if _, derr := s.books.DeleteOne(context.WithoutCancel(ctx), bson.D{{Key: "_id", Value: book.ID}}); derr != nil {
			return fmt.Errorf("remove orphan book %s: %w", book.ID.Hex(), derr)
		}
		return err
	}
	return nil
}

// FindBooks returns the listings matching f, newest first.
func (s *BooksStore) FindBooks(ctx context.Context, f BookFilter) ([]*Book, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.books.Find(ctx, f.query(), opts)
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	defer cursor.Close(ctx)

	var books []*Book
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	return books, nil
}
