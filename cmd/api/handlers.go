package main

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/PaulBabatuyi/campusChat-gRPC/internal/auth"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/data"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/messaging"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/normalize"
	v1 "github.com/PaulBabatuyi/campusChat-gRPC/proto/chat/v1"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const minPasswordLen = 8

// sessionFrom builds the messaging session from the claims the auth
// interceptor attached to ctx.
func sessionFrom(ctx context.Context) (messaging.Session, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return messaging.NotReady, status.Errorf(codes.Unauthenticated, "missing auth claims")
	}
	return messaging.SignedIn(claims.UserID), nil
}

// statusFrom maps domain errors onto gRPC status errors.
func (s *Server) statusFrom(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, messaging.ErrSessionNotReady):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, messaging.ErrInvalidTarget), errors.Is(err, messaging.ErrSelfConversation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, messaging.ErrUnknownUser), errors.Is(err, messaging.ErrUnknownConversation),
		errors.Is(err, data.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, messaging.ErrNotParticipant):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	s.logFor(ctx).Error().Err(err).Msg("request failed")
	return status.Error(codes.Internal, "internal error")
}

func toMessage(m *data.Message) *v1.Message {
	return &v1.Message{
		MsgId:          m.ID.Hex(),
		ConversationId: m.ConversationID,
		SenderId:       m.SenderID,
		Content:        m.Text,
		SentAt:         timestamppb.New(m.CreatedAt),
	}
}

func toMessages(msgs []*data.Message) []*v1.Message {
	out := make([]*v1.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessage(m))
	}
	return out
}

func toSnapshot(list []messaging.Summary) *v1.ConversationsSnapshot {
	snap := &v1.ConversationsSnapshot{Conversations: make([]*v1.ConversationSummary, 0, len(list))}
	for _, sum := range list {
		row := &v1.ConversationSummary{
			ConversationId:   sum.ConversationID,
			ParticipantIds:   sum.ParticipantIDs,
			ParticipantNames: sum.ParticipantNames,
			LastMessage:      sum.LastMessage,
		}
		if !sum.LastMessageAt.IsZero() {
			row.LastMessageAt = timestamppb.New(sum.LastMessageAt)
		}
		snap.Conversations = append(snap.Conversations, row)
	}
	return snap
}

// Register handles user registration: hashes password, stores user, returns JWT token
func (s *Server) Register(ctx context.Context, req *v1.RegisterRequest) (*v1.RegisterResponse, error) {
	email := normalize.Email(req.GetEmail())
	if email == "" || !strings.Contains(email, "@") {
		return nil, status.Errorf(codes.InvalidArgument, "a valid email is required")
	}
	if len(req.Password) < minPasswordLen {
		return nil, status.Errorf(codes.InvalidArgument, "password must be at least %d characters", minPasswordLen)
	}
	displayName := normalize.DisplayName(req.DisplayName)
	if displayName == "" {
		displayName, _, _ = strings.Cut(email, "@")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to hash password: %v", err)
	}

	user, err := s.users.CreateUser(ctx, email, hashed, displayName)
	if err != nil {
		if errors.Is(err, data.ErrUserExists) {
			return nil, status.Errorf(codes.AlreadyExists, "email already registered")
		}
		s.logFor(ctx).Error().Err(err).Msg("create user failed")
		return nil, status.Errorf(codes.Internal, "failed to create user")
	}

	// Generate JWT token for newly created user
	token, expiresAt, err := s.auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to generate token: %v", err)
	}

	return &v1.RegisterResponse{
		Token:     token,
		UserId:    user.ID.Hex(),
		ExpiresAt: timestamppb.New(expiresAt),
	}, nil
}

// Login authenticates a user and returns a JWT token
func (s *Server) Login(ctx context.Context, req *v1.LoginRequest) (*v1.LoginResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, req.GetEmail())
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return nil, status.Errorf(codes.NotFound, "user not found")
		}
		return nil, s.statusFrom(ctx, err)
	}

	if err := auth.CheckPassword(user.Password, req.Password); err != nil {
		return nil, status.Errorf(codes.PermissionDenied, "invalid credentials")
	}

	token, expiresAt, err := s.auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to generate token: %v", err)
	}

	return &v1.LoginResponse{
		Token:     token,
		UserId:    user.ID.Hex(),
		ExpiresAt: timestamppb.New(expiresAt),
	}, nil
}

// WatchConversations streams the caller's full conversation list on every change.
func (s *Server) WatchConversations(_ *v1.WatchConversationsRequest, stream grpc.ServerStreamingServer[v1.ConversationsSnapshot]) error {
	ctx := stream.Context()
	sess, err := sessionFrom(ctx)
	if err != nil {
		return err
	}
	err = s.chat.Index(sess).Watch(ctx, func(list []messaging.Summary) error {
		return stream.Send(toSnapshot(list))
	})
	return s.statusFrom(ctx, err)
}

// WatchMessages streams the full message list of one conversation on every change.
func (s *Server) WatchMessages(req *v1.WatchMessagesRequest, stream grpc.ServerStreamingServer[v1.MessagesSnapshot]) error {
	ctx := stream.Context()
	sess, err := sessionFrom(ctx)
	if err != nil {
		return err
	}
	if strings.TrimSpace(req.ConversationId) == "" {
		return status.Errorf(codes.InvalidArgument, "conversation_id is required")
	}
	feed := s.chat.Feed(sess, req.ConversationId)
	err = feed.Watch(ctx, func(msgs []*data.Message) error {
		return stream.Send(&v1.MessagesSnapshot{
			ConversationId: feed.ConversationID(),
			Messages:       toMessages(msgs),
		})
	})
	return s.statusFrom(ctx, err)
}

// GetHistory streams a conversation's messages, oldest first, then ends.
func (s *Server) GetHistory(req *v1.GetHistoryRequest, stream grpc.ServerStreamingServer[v1.Message]) error {
	ctx := stream.Context()
	sess, err := sessionFrom(ctx)
	if err != nil {
		return err
	}
	if strings.TrimSpace(req.ConversationId) == "" {
		return status.Errorf(codes.InvalidArgument, "conversation_id is required")
	}

	msgs, err := s.chat.Feed(sess, req.ConversationId).Messages(ctx)
	if err != nil {
		return s.statusFrom(ctx, err)
	}
	for _, m := range msgs {
		if err := stream.Send(toMessage(m)); err != nil {
			return err
		}
	}
	return nil
}

// SendMessage appends a message to a conversation. Blank content is accepted
// and ignored: the response then carries no message.
func (s *Server) SendMessage(ctx context.Context, req *v1.SendMessageRequest) (*v1.SendMessageResponse, error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}
	msg, err := s.chat.Feed(sess, req.ConversationId).Send(ctx, &messaging.Draft{Text: req.Content})
	if err != nil {
		return nil, s.statusFrom(ctx, err)
	}
	if msg == nil {
		return &v1.SendMessageResponse{}, nil
	}
	return &v1.SendMessageResponse{Message: toMessage(msg)}, nil
}

// ResolveConversation finds or opens the caller's conversation with another user.
func (s *Server) ResolveConversation(ctx context.Context, req *v1.ResolveConversationRequest) (*v1.ResolveConversationResponse, error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}
	res, err := s.chat.Resolver(sess).Resolve(ctx, req.UserId, nil)
	if err != nil {
		return nil, s.statusFrom(ctx, err)
	}
	return &v1.ResolveConversationResponse{ConversationId: res.ConversationID, Created: res.Created}, nil
}

// ListNotifications streams the caller's message notifications, newest first.
func (s *Server) ListNotifications(_ *v1.ListNotificationsRequest, stream grpc.ServerStreamingServer[v1.Notification]) error {
	ctx := stream.Context()
	sess, err := sessionFrom(ctx)
	if err != nil {
		return err
	}
	list, err := s.chat.Notifications(sess).Notifications(ctx)
	if err != nil {
		return s.statusFrom(ctx, err)
	}
	for _, n := range list {
		if err := stream.Send(&v1.Notification{
			ConversationId: n.ConversationID,
			SenderName:     n.SenderName,
			Text:           n.Text,
			At:             timestamppb.New(n.At),
		}); err != nil {
			return err
		}
	}
	return nil
}

// GetProfile returns a user's public profile; an empty user_id means the caller.
func (s *Server) GetProfile(ctx context.Context, req *v1.GetProfileRequest) (*v1.Profile, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Errorf(codes.Unauthenticated, "missing auth claims")
	}
	id := strings.TrimSpace(req.UserId)
	if id == "" {
		id = claims.UserID
	}

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, s.statusFrom(ctx, err)
	}
	return &v1.Profile{
		UserId:         user.ID.Hex(),
		DisplayName:    user.DisplayName,
		Email:          user.Email,
		PhotoUrl:       user.PhotoURL,
		FollowerCount:  int32(len(user.Followers)),
		FollowingCount: int32(len(user.Following)),
		PostCount:      int32(user.PostCount),
		FollowedByMe:   slices.Contains(user.Followers, claims.UserID),
	}, nil
}

// Follow makes the caller follow another user.
func (s *Server) Follow(ctx context.Context, req *v1.FollowRequest) (*v1.FollowResponse, error) {
	return s.setFollow(ctx, req, s.users.Follow)
}

// Unfollow removes the caller's follow of another user.
func (s *Server) Unfollow(ctx context.Context, req *v1.FollowRequest) (*v1.FollowResponse, error) {
	return s.setFollow(ctx, req, s.users.Unfollow)
}

func (s *Server) setFollow(ctx context.Context, req *v1.FollowRequest, apply func(ctx context.Context, follower, followee string) error) (*v1.FollowResponse, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Errorf(codes.Unauthenticated, "missing auth claims")
	}
	target := strings.TrimSpace(req.UserId)
	switch target {
	case "":
		return nil, status.Errorf(codes.InvalidArgument, "user_id is required")
	case claims.UserID:
		return nil, status.Errorf(codes.InvalidArgument, "cannot follow yourself")
	}
	if err := apply(ctx, claims.UserID, target); err != nil {
		return nil, s.statusFrom(ctx, err)
	}
	return &v1.FollowResponse{}, nil
}

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 50
)

// SearchUsers finds other users by email prefix, for starting a conversation.
func (s *Server) SearchUsers(ctx context.Context, req *v1.SearchUsersRequest) (*v1.SearchUsersResponse, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Errorf(codes.Unauthenticated, "missing auth claims")
	}
	prefix := normalize.Email(req.Prefix)
	if prefix == "" {
		return nil, status.Errorf(codes.InvalidArgument, "prefix is required")
	}
	limit := int(req.Limit)
	switch {
	case limit <= 0:
		limit = defaultSearchLimit
	case limit > maxSearchLimit:
		limit = maxSearchLimit
	}

	// one extra row covers the caller being among the matches
	users, err := s.users.SearchUsers(ctx, prefix, limit+1)
	if err != nil {
		return nil, s.statusFrom(ctx, err)
	}
	res := &v1.SearchUsersResponse{Users: make([]*v1.UserSummary, 0, len(users))}
	for _, u := range users {
		if u.ID.Hex() == claims.UserID {
			continue
		}
		if len(res.Users) == limit {
			break
		}
		res.Users = append(res.Users, &v1.UserSummary{
			UserId:      u.ID.Hex(),
			Email:       u.Email,
			DisplayName: u.DisplayName,
		})
	}
	return res, nil
}

// ListMenu returns the cafeteria menu.
func (s *Server) ListMenu(ctx context.Context, _ *v1.ListMenuRequest) (*v1.ListMenuResponse, error) {
	items, err := s.catalog.ListMenu(ctx)
	if err != nil {
		return nil, s.statusFrom(ctx, err)
	}
	res := &v1.ListMenuResponse{Items: make([]*v1.MenuItem, 0, len(items))}
	for _, item := range items {
		res.Items = append(res.Items, &v1.MenuItem{
			ItemId:    item.ID.Hex(),
			Name:      item.Name,
			Price:     item.Price,
			Status:    item.Status,
			ImageUrl:  item.Image,
			Available: item.Available(),
		})
	}
	return res, nil
}

func toBook(b *data.Book) *v1.Book {
	return &v1.Book{
		BookId:      b.ID.Hex(),
		SellerId:    b.SellerID,
		Title:       b.Title,
		Author:      b.Author,
		Genre:       b.Genre,
		Condition:   b.Condition,
		Price:       b.Price,
		Description: b.Description,
		PostedAt:    timestamppb.New(b.CreatedAt),
	}
}

// PostBook lists a book for sale under the caller.
func (s *Server) PostBook(ctx context.Context, req *v1.PostBookRequest) (*v1.Book, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Errorf(codes.Unauthenticated, "missing auth claims")
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, status.Errorf(codes.InvalidArgument, "title is required")
	}
	if req.Price < 0 {
		return nil, status.Errorf(codes.InvalidArgument, "price must not be negative")
	}

	book := &data.Book{
		SellerID:    claims.UserID,
		Title:       title,
		Author:      strings.TrimSpace(req.Author),
		Genre:       strings.TrimSpace(req.Genre),
		Condition:   strings.TrimSpace(req.Condition),
		Price:       req.Price,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.catalog.PostBook(ctx, book); err != nil {
		return nil, s.statusFrom(ctx, err)
	}
	return toBook(book), nil
}

// FindBooks searches the marketplace, newest listings first.
func (s *Server) FindBooks(ctx context.Context, req *v1.FindBooksRequest) (*v1.FindBooksResponse, error) {
	books, err := s.catalog.FindBooks(ctx, data.BookFilter{
		Title:     strings.TrimSpace(req.Title),
		Author:    strings.TrimSpace(req.Author),
		Genre:     strings.TrimSpace(req.Genre),
		Condition: strings.TrimSpace(req.Condition),
		MaxPrice:  req.MaxPrice,
	})
	if err != nil {
		return nil, s.statusFrom(ctx, err)
	}
	res := &v1.FindBooksResponse{Books: make([]*v1.Book, 0, len(books))}
	for _, b := range books {
		res.Books = append(res.Books, toBook(b))
	}
	return res, nil
}
