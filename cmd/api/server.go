package main

import (
	"context"

	"github.com/PaulBabatuyi/campusChat-gRPC/internal/auth"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/data"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/messaging"
	v1 "github.com/PaulBabatuyi/campusChat-gRPC/proto/chat/v1"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
)

// userStore is the account side of the users collection.
type userStore interface {
	messaging.Directory
	CreateUser(ctx context.Context, email, hashedPassword, displayName string) (*data.User, error)
	GetUserByEmail(ctx context.Context, email string) (*data.User, error)
	GetUserByID(ctx context.Context, id string) (*data.User, error)
	Follow(ctx context.Context, follower, followee string) error
	Unfollow(ctx context.Context, follower, followee string) error
	SearchUsers(ctx context.Context, prefix string, limit int) ([]*data.User, error)
}

// catalogStore serves the cafeteria menu and the book marketplace.
type catalogStore interface {
	ListMenu(ctx context.Context) ([]*data.MenuItem, error)
	PostBook(ctx context.Context, book *data.Book) error
	FindBooks(ctx context.Context, f data.BookFilter) ([]*data.Book, error)
}

// Server implements the chat service and contains references to stores and auth logic.
type Server struct {
	v1.UnimplementedChatServiceServer

	users   userStore
	catalog catalogStore
	chat    *messaging.Service
	auth    *auth.JWTManager
	log     zerolog.Logger
}

// newServer returns a ready-to-use Server wired with stores and auth manager.
func newServer(users userStore, catalog catalogStore, chat *messaging.Service, authMgr *auth.JWTManager, log zerolog.Logger) *Server {
	return &Server{
		users:   users,
		catalog: catalog,
		chat:    chat,
		auth:    authMgr,
		log:     log.With().Str("component", "api").Logger(),
	}
}

// registerService registers the ChatService on the given gRPC server.
func registerService(s *grpc.Server, srv *Server) {
	v1.RegisterChatServiceServer(s, srv)
}

// logFor returns the request-scoped logger when the logging interceptor set one.
func (s *Server) logFor(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.log
}
