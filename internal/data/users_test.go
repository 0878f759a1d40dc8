package data

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/PaulBabatuyi/campusChat-gRPC/internal/db"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func setupDB(t *testing.T) *db.Client {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set; skipping integration test")
	}

	ctx := context.Background()
	c, err := db.New(ctx, uri, "chat_db_test")
	if err != nil {
		t.Fatalf("db.New failed: %v", err)
	}

	// ensure clean collections in case previous runs left data
	_ = c.Users().Drop(ctx)
	_ = c.Conversations().Drop(ctx)
	_ = c.Messages().Drop(ctx)
	_ = c.Books().Drop(ctx)
	_ = c.Cafeteria().Drop(ctx)

	if err := c.CreateIndexes(ctx); err != nil {
		t.Fatalf("CreateIndexes failed: %v", err)
	}

	t.Cleanup(func() { _ = c.Close(context.Background()) })
	return c
}

func TestUsersCreateAndGet(t *testing.T) {
	c := setupDB(t)
	users := NewUsersStore(c.Users())

	ctx := context.Background()
	email := time.Now().UTC().Format("20060102-150405") + "-Integration@example.com"

	user, err := users.CreateUser(ctx, email, "hashed-password", "  Ada   Lovelace ")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.DisplayName != "Ada Lovelace" {
		t.Fatalf("expected normalized display name, got %q", user.DisplayName)
	}

	if _, err := users.CreateUser(ctx, email, "other", "Dup"); err != ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	ok, err := users.UserExists(ctx, user.ID.Hex())
	if err != nil || !ok {
		t.Fatalf("UserExists failed: ok=%v err=%v", ok, err)
	}

	u2, err := users.GetUserByEmail(ctx, email)
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if u2.ID != user.ID {
		t.Fatalf("GetUserByEmail returned wrong user: %s", u2.ID.Hex())
	}

	name, err := users.DisplayName(ctx, user.ID.Hex())
	if err != nil || name != "Ada Lovelace" {
		t.Fatalf("DisplayName = %q, %v", name, err)
	}

	if _, err := users.DisplayName(ctx, "not-an-id"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for malformed id, got %v", err)
	}
}

func TestUsersFollowAndUnfollow(t *testing.T) {
	c := setupDB(t)
	users := NewUsersStore(c.Users())
	ctx := context.Background()

	a, err := users.CreateUser(ctx, "a@example.com", "h", "A")
	if err != nil {
		t.Fatalf("CreateUser a: %v", err)
	}
	b, err := users.CreateUser(ctx, "b@example.com", "h", "B")
	if err != nil {
		t.Fatalf("CreateUser b: %v", err)
	}

	if err := users.Follow(ctx, a.ID.Hex(), b.ID.Hex()); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}
	// following twice keeps a single edge
	if err := users.Follow(ctx, a.ID.Hex(), b.ID.Hex()); err != nil {
		t.Fatalf("Follow (repeat) failed: %v", err)
	}

	gotB, _ := users.GetUserByID(ctx, b.ID.Hex())
	if len(gotB.Followers) != 1 || gotB.Followers[0] != a.ID.Hex() {
		t.Fatalf("unexpected followers: %v", gotB.Followers)
	}

	if err := users.Unfollow(ctx, a.ID.Hex(), b.ID.Hex()); err != nil {
		t.Fatalf("Unfollow failed: %v", err)
	}
	gotA, _ := users.GetUserByID(ctx, a.ID.Hex())
	if len(gotA.Following) != 0 {
		t.Fatalf("expected no following after unfollow, got %v", gotA.Following)
	}
}

func TestUsersFollowUnknownFollower(t *testing.T) {
	c := setupDB(t)
	users := NewUsersStore(c.Users())
	ctx := context.Background()

	b, err := users.CreateUser(ctx, "b@example.com", "h", "B")
	if err != nil {
		t.Fatalf("CreateUser b: %v", err)
	}

	ghost := bson.NewObjectID().Hex()
	if err := users.Follow(ctx, ghost, b.ID.Hex()); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown follower, got %v", err)
	}

	gotB, err := users.GetUserByID(ctx, b.ID.Hex())
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if len(gotB.Followers) != 0 {
		t.Fatalf("unknown follower was recorded: %v", gotB.Followers)
	}
}

func TestUsersSearchByEmailPrefix(t *testing.T) {
	c := setupDB(t)
	users := NewUsersStore(c.Users())
	ctx := context.Background()

	for _, email := range []string{"ann@campus.edu", "andy@campus.edu", "bob@campus.edu", "an.y@campus.edu"} {
		if _, err := users.CreateUser(ctx, email, "h", ""); err != nil {
			t.Fatalf("CreateUser %s: %v", email, err)
		}
	}

	got, err := users.SearchUsers(ctx, " AN", 10)
	if err != nil {
		t.Fatalf("SearchUsers: %v", err)
	}
	var emails []string
	for _, u := range got {
		emails = append(emails, u.Email)
		if u.Password != "" {
			t.Fatalf("password hash loaded for %s", u.Email)
		}
	}
	want := []string{"an.y@campus.edu", "andy@campus.edu", "ann@campus.edu"}
	if strings.Join(emails, ",") != strings.Join(want, ",") {
		t.Fatalf("SearchUsers(AN) = %v, want %v", emails, want)
	}

	// regex metacharacters in the prefix are literal
	got, err = users.SearchUsers(ctx, "an.", 10)
	if err != nil {
		t.Fatalf("SearchUsers: %v", err)
	}
	if len(got) != 1 || got[0].Email != "an.y@campus.edu" {
		t.Fatalf("SearchUsers(an.) = %v", got)
	}

	got, err = users.SearchUsers(ctx, "an", 1)
	if err != nil || len(got) != 1 {
		t.Fatalf("SearchUsers limit: %d, %v", len(got), err)
	}
}
