package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PaulBabatuyi/campusChat-gRPC/internal/auth"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/config"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/data"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/db"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/live"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/logger"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/memstore"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/messaging"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/metrics"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/middleware"
	v1 "github.com/PaulBabatuyi/campusChat-gRPC/proto/chat/v1"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/reflection"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.ServiceName, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

// backend is the store selected by STORE_BACKEND.
type backend struct {
	users         userStore
	catalog       catalogStore
	conversations messaging.ConversationStore
	messages      messaging.MessageStore
	watcher       *data.Watcher
	close         func(context.Context) error
}

func openBackend(ctx context.Context, cfg *config.Config, hub *live.Hub, log zerolog.Logger) (*backend, error) {
	if cfg.StoreBackend == config.BackendMemory {
		log.Warn().Msg("using in-memory store; data is lost on exit")
		store := memstore.New()
		return &backend{
			users:         store,
			catalog:       store,
			conversations: store,
			messages:      store,
			close:         func(context.Context) error { return nil },
		}, nil
	}

	dbClient, err := db.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, fmt.Errorf("connect to DB: %w", err)
	}
	if err := dbClient.CreateIndexes(ctx); err != nil {
		_ = dbClient.Close(context.Background())
		return nil, fmt.Errorf("create indexes: %w", err)
	}

	b := &backend{
		users:         data.NewUsersStore(dbClient.Users()),
		catalog: mongoCatalog{
			MenuStore:  data.NewMenuStore(dbClient.Cafeteria()),
			BooksStore: data.NewBooksStore(dbClient.Books(), dbClient.Users()),
		},
		conversations: data.NewConversationsStore(dbClient.Conversations()),
		messages:      data.NewMessagesStore(dbClient.Messages()),
		close:         dbClient.Close,
	}

	if cfg.WatchChanges {
		ok, err := dbClient.SupportsChangeStreams(ctx)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("could not check change stream support; watcher disabled")
		case !ok:
			log.Warn().Msg("MongoDB is not a replica set; only local writes reach live views")
		default:
			b.watcher = data.NewWatcher(dbClient.Conversations(), dbClient.Messages(), hub, log)
		}
	}
	return b, nil
}

// mongoCatalog joins the cafeteria and books collections.
type mongoCatalog struct {
	*data.MenuStore
	*data.BooksStore
}

func jwtManager(cfg *config.Config) *auth.JWTManager {
	// JWT_KEYS enables key rotation; JWT_SECRET remains for single-key setups.
	if len(cfg.JWTKeys) > 0 {
		return auth.NewJWTManagerFromKeys(cfg.JWTKeys, cfg.JWTActiveKid, cfg.TokenTTL)
	}
	return auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	hub := live.NewHub()

	store, err := openBackend(ctx, cfg, hub, log)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.close(context.Background())
	}()

	chat := messaging.NewService(messaging.Config{
		Conversations: store.conversations,
		Messages:      store.messages,
		Users:         store.users,
		Changes:       hub,
		Logger:        log,
		Concurrency:   cfg.EnrichConcurrency,
	})
	jwtMgr := jwtManager(cfg)

	// Register/Login are limited per email (small burst to allow a couple of
	// quick retries); SendMessage per authenticated user.
	authLimiter := middleware.NewLimiterStore(cfg.RateLimitRPM, 3, time.Minute)
	defer authLimiter.Stop()
	sendLimiter := middleware.NewLimiterStore(cfg.SendRatePerMinute, 10, time.Minute)
	defer sendLimiter.Stop()

	grpcServer, err := newGRPCServer(cfg, newServer(store.users, store.catalog, chat, jwtMgr, log), jwtMgr, authLimiter, sendLimiter, log)
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.Addr()).Bool("tls", cfg.TLSEnabled()).Str("store", cfg.StoreBackend).Msg("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("gRPC server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down gRPC server")
		shutdown(grpcServer, cfg.ShutdownTimeout)
		return nil
	})
	if store.watcher != nil {
		g.Go(func() error { return store.watcher.Run(gctx) })
	}
	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			log.Info().Str("addr", cfg.MetricsAddr).Msg("metrics listening")
			return metrics.Serve(gctx, cfg.MetricsAddr)
		})
	}
	return g.Wait()
}

// newGRPCServer assembles the server options and interceptor chain and
// registers srv.
func newGRPCServer(cfg *config.Config, srv *Server, jwtMgr *auth.JWTManager, authLimiter, sendLimiter *middleware.LimiterStore, log zerolog.Logger) (*grpc.Server, error) {
	var serverOpts []grpc.ServerOption
	if cfg.TLSEnabled() {
		creds, err := credentials.NewServerTLSFromFile(cfg.TLSCert, cfg.TLSKey)
		if err != nil {
			return nil, fmt.Errorf("load TLS certs: %w", err)
		}
		serverOpts = append(serverOpts, grpc.Creds(creds))
	}

	// logging -> rate limit (auth endpoints) -> auth -> rate limit (sends)
	serverOpts = append(serverOpts,
		grpc.ChainUnaryInterceptor(
			middleware.LoggingUnaryInterceptor(log),
			middleware.RateLimitUnaryInterceptor(authLimiter, publicMethods),
			authUnaryInterceptor(jwtMgr),
			middleware.RateLimitUnaryInterceptor(sendLimiter, map[string]bool{
				v1.ChatService_SendMessage_FullMethodName: true,
			}),
		),
		grpc.ChainStreamInterceptor(
			middleware.LoggingStreamInterceptor(log),
			authStreamInterceptor(jwtMgr),
		),
	)

	grpcServer := grpc.NewServer(serverOpts...)
	registerService(grpcServer, srv)
	if cfg.Reflection {
		reflection.Register(grpcServer)
	}
	return grpcServer, nil
}

// shutdown stops s gracefully, forcing it closed after timeout. Open watch
// streams only end when their clients leave, so the force is expected.
func shutdown(s *grpc.Server, timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		s.Stop()
	}
}
