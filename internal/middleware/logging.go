package middleware

import (
	"context"
	"time"

	"github.com/PaulBabatuyi/campusChat-gRPC/internal/metrics"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// RequestIDHeader is the metadata key carrying a caller-supplied request id.
const RequestIDHeader = "x-request-id"

func requestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(RequestIDHeader); len(ids) > 0 && ids[0] != "" {
			return ids[0]
		}
	}
	return uuid.NewString()
}

// LoggingUnaryInterceptor logs each unary call and attaches a request-scoped
// logger to the context (retrieve it with zerolog.Ctx).
func LoggingUnaryInterceptor(log zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		reqLog := log.With().Str("request_id", requestID(ctx)).Str("method", info.FullMethod).Logger()

		resp, err := handler(reqLog.WithContext(ctx), req)
		finish(reqLog, info.FullMethod, start, err)
		return resp, err
	}
}

// LoggingStreamInterceptor is the stream equivalent of LoggingUnaryInterceptor.
func LoggingStreamInterceptor(log zerolog.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		reqLog := log.With().Str("request_id", requestID(ss.Context())).Str("method", info.FullMethod).Logger()

		err := handler(srv, &contextStream{ServerStream: ss, ctx: reqLog.WithContext(ss.Context())})
		finish(reqLog, info.FullMethod, start, err)
		return err
	}
}

func finish(log zerolog.Logger, method string, start time.Time, err error) {
	code := status.Code(err)
	metrics.RequestsTotal.WithLabelValues(method, code.String()).Inc()

	ev := log.Info()
	if err != nil {
		ev = log.Warn().Err(err)
	}
	ev.Str("code", code.String()).Dur("duration", time.Since(start)).Msg("rpc finished")
}

// contextStream overrides the context of a grpc.ServerStream.
type contextStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *contextStream) Context() context.Context { return s.ctx }

// WrapStream returns ss with its context replaced by ctx.
func WrapStream(ss grpc.ServerStream, ctx context.Context) grpc.ServerStream {
	return &contextStream{ServerStream: ss, ctx: ctx}
}
