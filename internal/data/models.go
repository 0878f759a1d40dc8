package data

import (
	"errors"
	"slices"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	// ErrNotFound is returned when a referenced document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUserExists is returned when registering an email that is already taken.
	ErrUserExists = errors.New("user already exists")
)

// User maps to the users collection.
type User struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Email       string        `bson:"email"`
	Password    string        `bson:"password"`
	DisplayName string        `bson:"display_name"`
	PhotoURL    string        `bson:"photo_url,omitempty"`
	Followers   []string      `bson:"followers"`
	Following   []string      `bson:"following"`
	PostCount   int           `bson:"post_count"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}

// Conversation maps to the conversations collection. Its ID is the pair key of
// its two participants, so one pair can only ever own one document.
type Conversation struct {
	ID           string    `bson:"_id"`
	Participants []string  `bson:"participants"`
	CreatedAt    time.Time `bson:"created_at"`
}

// HasParticipant reports whether userID takes part in the conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	return slices.Contains(c.Participants, userID)
}

// Others returns the participants other than self, in stored order.
func (c *Conversation) Others(self string) []string {
	others := make([]string, 0, len(c.Participants))
	for _, p := range c.Participants {
		if p != self {
			others = append(others, p)
		}
	}
	return others
}

// PairID returns the conversation id for two users. The order of the
// arguments does not matter.
func PairID(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return strings.Join(pair, "_")
}

// Message maps to the messages collection. CreatedAt is assigned by the
// database on insert and is the only ordering authority within a conversation.
type Message struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	ConversationID string        `bson:"conversation_id"`
	SenderID       string        `bson:"sender_id"`
	Text           string        `bson:"text"`
	CreatedAt      time.Time     `bson:"created_at"`
}
