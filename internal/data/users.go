// Package data provides DB models and stores.
package data

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/PaulBabatuyi/campusChat-gRPC/internal/normalize"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// UsersStore performs user DB operations.
type UsersStore struct {
	coll *mongo.Collection
}

// NewUsersStore returns a UsersStore using the provided collection.
func NewUsersStore(coll *mongo.Collection) *UsersStore {
	return &UsersStore{coll: coll}
}

// CreateUser inserts a new user document with an already hashed password.
func (u *UsersStore) CreateUser(ctx context.Context, email, hashedPassword, displayName string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Email:       normalize.Email(email),
		Password:    hashedPassword,
		DisplayName: normalize.DisplayName(displayName),
		Followers:   []string{},
		Following:   []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := u.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	user.ID = result.InsertedID.(bson.ObjectID)
	return user, nil
}

// GetUserByEmail finds a user by email.
func (u *UsersStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return u.findOne(ctx, bson.D{{Key: "email", Value: normalize.Email(email)}})
}

// GetUserByID finds a user by the hex form of its ObjectID.
func (u *UsersStore) GetUserByID(ctx context.Context, id string) (*User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		// a malformed id cannot name a stored user
		return nil, ErrNotFound
	}
	return u.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (u *UsersStore) findOne(ctx context.Context, filter bson.D) (*User, error) {
	var user User
	if err := u.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// SearchUsers returns up to limit users whose email starts with prefix,
// ordered by email. Only id, email and display name are loaded.
func (u *UsersStore) SearchUsers(ctx context.Context, prefix string, limit int) ([]*User, error) {
	filter := bson.D{{Key: "email", Value: bson.D{
		{Key: "$regex", Value: "^" + regexp.QuoteMeta(normalize.Email(prefix))},
	}}}
	opts := options.Find().
		SetProjection(bson.D{{Key: "_id", Value: 1}, {Key: "email", Value: 1}, {Key: "display_name", Value: 1}}).
		SetSort(bson.D{{Key: "email", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := u.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	var users []*User
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// UserExists checks if a user with the given id exists.
func (u *UsersStore) UserExists(ctx context.Context, id string) (bool, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	count, err := u.coll.CountDocuments(ctx, bson.D{{Key: "_id", Value: oid}}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DisplayName returns the display name of a user.
func (u *UsersStore) DisplayName(ctx context.Context, id string) (string, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return "", ErrNotFound
	}

	var doc struct {
		DisplayName string `bson:"display_name"`
	}
	opts := options.FindOne().SetProjection(bson.D{{Key: "display_name", Value: 1}})
	if err := u.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrNotFound
		}
		return "", err
	}
	return doc.DisplayName, nil
}

// Follow records that follower follows followee on both user documents.
func (u *UsersStore) Follow(ctx context.Context, follower, followee string) error {
	return u.setFollow(ctx, follower, followee, "$addToSet")
}

// Unfollow removes the follow edge from both user documents.
func (u *UsersStore) Unfollow(ctx context.Context, follower, followee string) error {
	return u.setFollow(ctx, follower, followee, "$pull")
}

func (u *UsersStore) setFollow(ctx context.Context, follower, followee, op string) error {
	followerID, err := bson.ObjectIDFromHex(follower)
	if err != nil {
		return ErrNotFound
	}
	followeeID, err := bson.ObjectIDFromHex(followee)
	if err != nil {
		return ErrNotFound
	}

	// both ends must exist before either document changes
	ok, err := u.UserExists(ctx, follower)
	if err != nil {
		return fmt.Errorf("check follower: %w", err)
	}
	if !ok {
		return ErrNotFound
	}

	now := time.Now().UTC()
	res, err := u.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: followeeID}}, bson.D{
		{Key: op, Value: bson.D{{Key: "followers", Value: follower}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: now}}},
	})
	if err != nil {
		return fmt.Errorf("update followee: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	res, err = u.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: followerID}}, bson.D{
		{Key: op, Value: bson.D{{Key: "following", Value: followee}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: now}}},
	})
	if err != nil {
		return fmt.Errorf("update follower: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
