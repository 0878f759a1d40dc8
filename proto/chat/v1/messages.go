package chatv1

import (
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type RegisterRequest struct {
	Email       string
	Password    string
	DisplayName string
}

func (r *RegisterRequest) GetEmail() string {
	if r == nil {
		return ""
	}
	return r.Email
}

func (*RegisterRequest) protoName() protoreflect.Name { return "RegisterRequest" }

func (r *RegisterRequest) fill(m protoreflect.Message) {
	setString(m, "email", r.Email)
	setString(m, "password", r.Password)
	setString(m, "display_name", r.DisplayName)
}

func (r *RegisterRequest) load(m protoreflect.Message) {
	r.Email = getString(m, "email")
	r.Password = getString(m, "password")
	r.DisplayName = getString(m, "display_name")
}

type RegisterResponse struct {
	Token     string
	UserId    string
	ExpiresAt *timestamppb.Timestamp
}

func (*RegisterResponse) protoName() protoreflect.Name { return "RegisterResponse" }

func (r *RegisterResponse) fill(m protoreflect.Message) {
	setString(m, "token", r.Token)
	setString(m, "user_id", r.UserId)
	setTime(m, "expires_at", r.ExpiresAt)
}

func (r *RegisterResponse) load(m protoreflect.Message) {
	r.Token = getString(m, "token")
	r.UserId = getString(m, "user_id")
	r.ExpiresAt = getTime(m, "expires_at")
}

type LoginRequest struct {
	Email    string
	Password string
}

func (r *LoginRequest) GetEmail() string {
	if r == nil {
		return ""
	}
	return r.Email
}

func (*LoginRequest) protoName() protoreflect.Name { return "LoginRequest" }

func (r *LoginRequest) fill(m protoreflect.Message) {
	setString(m, "email", r.Email)
	setString(m, "password", r.Password)
}

func (r *LoginRequest) load(m protoreflect.Message) {
	r.Email = getString(m, "email")
	r.Password = getString(m, "password")
}

type LoginResponse struct {
	Token     string
	UserId    string
	ExpiresAt *timestamppb.Timestamp
}

func (*LoginResponse) protoName() protoreflect.Name { return "LoginResponse" }

func (r *LoginResponse) fill(m protoreflect.Message) {
	setString(m, "token", r.Token)
	setString(m, "user_id", r.UserId)
	setTime(m, "expires_at", r.ExpiresAt)
}

func (r *LoginResponse) load(m protoreflect.Message) {
	r.Token = getString(m, "token")
	r.UserId = getString(m, "user_id")
	r.ExpiresAt = getTime(m, "expires_at")
}

type WatchConversationsRequest struct{}

func (*WatchConversationsRequest) protoName() protoreflect.Name {
	return "WatchConversationsRequest"
}
func (*WatchConversationsRequest) fill(protoreflect.Message) {}
func (*WatchConversationsRequest) load(protoreflect.Message) {}

// ConversationSummary is one row of the conversation list.
type ConversationSummary struct {
	ConversationId   string
	ParticipantIds   []string
	ParticipantNames []string
	LastMessage      string
	LastMessageAt    *timestamppb.Timestamp
}

func (*ConversationSummary) protoName() protoreflect.Name { return "ConversationSummary" }

func (c *ConversationSummary) fill(m protoreflect.Message) {
	setString(m, "conversation_id", c.ConversationId)
	setStrings(m, "participant_ids", c.ParticipantIds)
	setStrings(m, "participant_names", c.ParticipantNames)
	setString(m, "last_message", c.LastMessage)
	setTime(m, "last_message_at", c.LastMessageAt)
}

func (c *ConversationSummary) load(m protoreflect.Message) {
	c.ConversationId = getString(m, "conversation_id")
	c.ParticipantIds = getStrings(m, "participant_ids")
	c.ParticipantNames = getStrings(m, "participant_names")
	c.LastMessage = getString(m, "last_message")
	c.LastMessageAt = getTime(m, "last_message_at")
}

// ConversationsSnapshot replaces the client's whole conversation list.
type ConversationsSnapshot struct {
	Conversations []*ConversationSummary
}

func (*ConversationsSnapshot) protoName() protoreflect.Name { return "ConversationsSnapshot" }

func (s *ConversationsSnapshot) fill(m protoreflect.Message) {
	setList(m, "conversations", s.Conversations)
}

func (s *ConversationsSnapshot) load(m protoreflect.Message) {
	s.Conversations = getList[ConversationSummary](m, "conversations")
}

type Message struct {
	MsgId          string
	ConversationId string
	SenderId       string
	Content        string
	SentAt         *timestamppb.Timestamp
}

func (*Message) protoName() protoreflect.Name { return "Message" }

func (x *Message) fill(m protoreflect.Message) {
	setString(m, "msg_id", x.MsgId)
	setString(m, "conversation_id", x.ConversationId)
	setString(m, "sender_id", x.SenderId)
	setString(m, "content", x.Content)
	setTime(m, "sent_at", x.SentAt)
}

func (x *Message) load(m protoreflect.Message) {
	x.MsgId = getString(m, "msg_id")
	x.ConversationId = getString(m, "conversation_id")
	x.SenderId = getString(m, "sender_id")
	x.Content = getString(m, "content")
	x.SentAt = getTime(m, "sent_at")
}

type WatchMessagesRequest struct {
	ConversationId string
}

func (*WatchMessagesRequest) protoName() protoreflect.Name { return "WatchMessagesRequest" }

func (r *WatchMessagesRequest) fill(m protoreflect.Message) {
	setString(m, "conversation_id", r.ConversationId)
}

func (r *WatchMessagesRequest) load(m protoreflect.Message) {
	r.ConversationId = getString(m, "conversation_id")
}

// MessagesSnapshot replaces the client's whole message list for a conversation.
type MessagesSnapshot struct {
	ConversationId string
	Messages       []*Message
}

func (*MessagesSnapshot) protoName() protoreflect.Name { return "MessagesSnapshot" }

func (s *MessagesSnapshot) fill(m protoreflect.Message) {
	setString(m, "conversation_id", s.ConversationId)
	setList(m, "messages", s.Messages)
}

func (s *MessagesSnapshot) load(m protoreflect.Message) {
	s.ConversationId = getString(m, "conversation_id")
	s.Messages = getList[Message](m, "messages")
}

type GetHistoryRequest struct {
	ConversationId string
}

func (*GetHistoryRequest) protoName() protoreflect.Name { return "GetHistoryRequest" }

func (r *GetHistoryRequest) fill(m protoreflect.Message) {
	setString(m, "conversation_id", r.ConversationId)
}

func (r *GetHistoryRequest) load(m protoreflect.Message) {
	r.ConversationId = getString(m, "conversation_id")
}

type SendMessageRequest struct {
	ConversationId string
	Content        string
}

func (*SendMessageRequest) protoName() protoreflect.Name { return "SendMessageRequest" }

func (r *SendMessageRequest) fill(m protoreflect.Message) {
	setString(m, "conversation_id", r.ConversationId)
	setString(m, "content", r.Content)
}

func (r *SendMessageRequest) load(m protoreflect.Message) {
	r.ConversationId = getString(m, "conversation_id")
	r.Content = getString(m, "content")
}

// SendMessageResponse carries the stored message; Message is nil when the
// request had nothing to send.
type SendMessageResponse struct {
	Message *Message
}

func (*SendMessageResponse) protoName() protoreflect.Name { return "SendMessageResponse" }

func (r *SendMessageResponse) fill(m protoreflect.Message) {
	setMessage(m, "message", r.Message)
}

func (r *SendMessageResponse) load(m protoreflect.Message) {
	r.Message = getMessage[Message](m, "message")
}

type ResolveConversationRequest struct {
	UserId string
}

func (*ResolveConversationRequest) protoName() protoreflect.Name {
	return "ResolveConversationRequest"
}

func (r *ResolveConversationRequest) fill(m protoreflect.Message) {
	setString(m, "user_id", r.UserId)
}

func (r *ResolveConversationRequest) load(m protoreflect.Message) {
	r.UserId = getString(m, "user_id")
}

type ResolveConversationResponse struct {
	ConversationId string
	Created        bool
}

func (*ResolveConversationResponse) protoName() protoreflect.Name {
	return "ResolveConversationResponse"
}

func (r *ResolveConversationResponse) fill(m protoreflect.Message) {
	setString(m, "conversation_id", r.ConversationId)
	setBool(m, "created", r.Created)
}

func (r *ResolveConversationResponse) load(m protoreflect.Message) {
	r.ConversationId = getString(m, "conversation_id")
	r.Created = getBool(m, "created")
}

type ListNotificationsRequest struct{}

func (*ListNotificationsRequest) protoName() protoreflect.Name { return "ListNotificationsRequest" }
func (*ListNotificationsRequest) fill(protoreflect.Message)    {}
func (*ListNotificationsRequest) load(protoreflect.Message)    {}

type Notification struct {
	ConversationId string
	SenderName     string
	Text           string
	At             *timestamppb.Timestamp
}

func (*Notification) protoName() protoreflect.Name { return "Notification" }

func (n *Notification) fill(m protoreflect.Message) {
	setString(m, "conversation_id", n.ConversationId)
	setString(m, "sender_name", n.SenderName)
	setString(m, "text", n.Text)
	setTime(m, "at", n.At)
}

func (n *Notification) load(m protoreflect.Message) {
	n.ConversationId = getString(m, "conversation_id")
	n.SenderName = getString(m, "sender_name")
	n.Text = getString(m, "text")
	n.At = getTime(m, "at")
}

type GetProfileRequest struct {
	UserId string
}

func (*GetProfileRequest) protoName() protoreflect.Name { return "GetProfileRequest" }

func (r *GetProfileRequest) fill(m protoreflect.Message) { setString(m, "user_id", r.UserId) }
func (r *GetProfileRequest) load(m protoreflect.Message) { r.UserId = getString(m, "user_id") }

type Profile struct {
	UserId         string
	DisplayName    string
	Email          string
	PhotoUrl       string
	FollowerCount  int32
	FollowingCount int32
	PostCount      int32
	FollowedByMe   bool
}

func (*Profile) protoName() protoreflect.Name { return "Profile" }

func (p *Profile) fill(m protoreflect.Message) {
	setString(m, "user_id", p.UserId)
	setString(m, "display_name", p.DisplayName)
	setString(m, "email", p.Email)
	setString(m, "photo_url", p.PhotoUrl)
	setInt32(m, "follower_count", p.FollowerCount)
	setInt32(m, "following_count", p.FollowingCount)
	setInt32(m, "post_count", p.PostCount)
	setBool(m, "followed_by_me", p.FollowedByMe)
}

func (p *Profile) load(m protoreflect.Message) {
	p.UserId = getString(m, "user_id")
	p.DisplayName = getString(m, "display_name")
	p.Email = getString(m, "email")
	p.PhotoUrl = getString(m, "photo_url")
	p.FollowerCount = getInt32(m, "follower_count")
	p.FollowingCount = getInt32(m, "following_count")
	p.PostCount = getInt32(m, "post_count")
	p.FollowedByMe = getBool(m, "followed_by_me")
}

type FollowRequest struct {
	UserId string
}

func (*FollowRequest) protoName() protoreflect.Name { return "FollowRequest" }

func (r *FollowRequest) fill(m protoreflect.Message) { setString(m, "user_id", r.UserId) }
func (r *FollowRequest) load(m protoreflect.Message) { r.UserId = getString(m, "user_id") }

type FollowResponse struct{}

func (*FollowResponse) protoName() protoreflect.Name { return "FollowResponse" }
func (*FollowResponse) fill(protoreflect.Message)    {}
func (*FollowResponse) load(protoreflect.Message)    {}

// SearchUsersRequest matches users whose email starts with Prefix.
type SearchUsersRequest struct {
	Prefix string
	Limit  int32
}

func (*SearchUsersRequest) protoName() protoreflect.Name { return "SearchUsersRequest" }

func (r *SearchUsersRequest) fill(m protoreflect.Message) {
	setString(m, "prefix", r.Prefix)
	setInt32(m, "limit", r.Limit)
}

func (r *SearchUsersRequest) load(m protoreflect.Message) {
	r.Prefix = getString(m, "prefix")
	r.Limit = getInt32(m, "limit")
}

type UserSummary struct {
	UserId      string
	Email       string
	DisplayName string
}

func (*UserSummary) protoName() protoreflect.Name { return "UserSummary" }

func (u *UserSummary) fill(m protoreflect.Message) {
	setString(m, "user_id", u.UserId)
	setString(m, "email", u.Email)
	setString(m, "display_name", u.DisplayName)
}

func (u *UserSummary) load(m protoreflect.Message) {
	u.UserId = getString(m, "user_id")
	u.Email = getString(m, "email")
	u.DisplayName = getString(m, "display_name")
}

type SearchUsersResponse struct {
	Users []*UserSummary
}

func (*SearchUsersResponse) protoName() protoreflect.Name { return "SearchUsersResponse" }

func (r *SearchUsersResponse) fill(m protoreflect.Message) { setList(m, "users", r.Users) }
func (r *SearchUsersResponse) load(m protoreflect.Message) {
	r.Users = getList[UserSummary](m, "users")
}

type ListMenuRequest struct{}

func (*ListMenuRequest) protoName() protoreflect.Name { return "ListMenuRequest" }
func (*ListMenuRequest) fill(protoreflect.Message)    {}
func (*ListMenuRequest) load(protoreflect.Message)    {}

type MenuItem struct {
	ItemId    string
	Name      string
	Price     float64
	Status    string
	ImageUrl  string
	Available bool
}

func (*MenuItem) protoName() protoreflect.Name { return "MenuItem" }

func (i *MenuItem) fill(m protoreflect.Message) {
	setString(m, "item_id", i.ItemId)
	setString(m, "name", i.Name)
	setDouble(m, "price", i.Price)
	setString(m, "status", i.Status)
	setString(m, "image_url", i.ImageUrl)
	setBool(m, "available", i.Available)
}

func (i *MenuItem) load(m protoreflect.Message) {
	i.ItemId = getString(m, "item_id")
	i.Name = getString(m, "name")
	i.Price = getDouble(m, "price")
	i.Status = getString(m, "status")
	i.ImageUrl = getString(m, "image_url")
	i.Available = getBool(m, "available")
}

type ListMenuResponse struct {
	Items []*MenuItem
}

func (*ListMenuResponse) protoName() protoreflect.Name { return "ListMenuResponse" }

func (r *ListMenuResponse) fill(m protoreflect.Message) { setList(m, "items", r.Items) }
func (r *ListMenuResponse) load(m protoreflect.Message) {
	r.Items = getList[MenuItem](m, "items")
}

type PostBookRequest struct {
	Title       string
	Author      string
	Genre       string
	Condition   string
	Price       float64
	Description string
}

func (*PostBookRequest) protoName() protoreflect.Name { return "PostBookRequest" }

func (r *PostBookRequest) fill(m protoreflect.Message) {
	setString(m, "title", r.Title)
	setString(m, "author", r.Author)
	setString(m, "genre", r.Genre)
	setString(m, "condition", r.Condition)
	setDouble(m, "price", r.Price)
	setString(m, "description", r.Description)
}

func (r *PostBookRequest) load(m protoreflect.Message) {
	r.Title = getString(m, "title")
	r.Author = getString(m, "author")
	r.Genre = getString(m, "genre")
	r.Condition = getString(m, "condition")
	r.Price = getDouble(m, "price")
	r.Description = getString(m, "description")
}

// Book is a marketplace listing.
type Book struct {
	BookId      string
	SellerId    string
	Title       string
	Author      string
	Genre       string
	Condition   string
	Price       float64
	Description string
	PostedAt    *timestamppb.Timestamp
}

func (*Book) protoName() protoreflect.Name { return "Book" }

func (b *Book) fill(m protoreflect.Message) {
	setString(m, "book_id", b.BookId)
	setString(m, "seller_id", b.SellerId)
	setString(m, "title", b.Title)
	setString(m, "author", b.Author)
	setString(m, "genre", b.Genre)
	setString(m, "condition", b.Condition)
	setDouble(m, "price", b.Price)
	setString(m, "description", b.Description)
	setTime(m, "posted_at", b.PostedAt)
}

func (b *Book) load(m protoreflect.Message) {
	b.BookId = getString(m, "book_id")
	b.SellerId = getString(m, "seller_id")
	b.Title = getString(m, "title")
	b.Author = getString(m, "author")
	b.Genre = getString(m, "genre")
	b.Condition = getString(m, "condition")
	b.Price = getDouble(m, "price")
	b.Description = getString(m, "description")
	b.PostedAt = getTime(m, "posted_at")
}

// FindBooksRequest filters are optional; a zero MaxPrice means no ceiling.
type FindBooksRequest struct {
	Title     string
	Author    string
	Genre     string
	Condition string
	MaxPrice  float64
}

func (*FindBooksRequest) protoName() protoreflect.Name { return "FindBooksRequest" }

func (r *FindBooksRequest) fill(m protoreflect.Message) {
	setString(m, "title", r.Title)
	setString(m, "author", r.Author)
	setString(m, "genre", r.Genre)
	setString(m, "condition", r.Condition)
	setDouble(m, "max_price", r.MaxPrice)
}

func (r *FindBooksRequest) load(m protoreflect.Message) {
	r.Title = getString(m, "title")
	r.Author = getString(m, "author")
	r.Genre = getString(m, "genre")
	r.Condition = getString(m, "condition")
	r.MaxPrice = getDouble(m, "max_price")
}

type FindBooksResponse struct {
	Books []*Book
}

func (*FindBooksResponse) protoName() protoreflect.Name { return "FindBooksResponse" }

func (r *FindBooksResponse) fill(m protoreflect.Message) { setList(m, "books", r.Books) }
func (r *FindBooksResponse) load(m protoreflect.Message) {
	r.Books = getList[Book](m, "books")
}
