package main

import (
	"context"
	"testing"
	"time"

	"github.com/PaulBabatuyi/campusChat-gRPC/internal/auth"
	v1 "github.com/PaulBabatuyi/campusChat-gRPC/proto/chat/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestAuthenticateScheme(t *testing.T) {
	j := auth.NewJWTManager("test-secret", time.Hour)
	uid := bson.NewObjectID()
	token, _, err := j.GenerateToken(uid, "ada@example.com")
	require.NoError(t, err)

	withHeader := func(v string) context.Context {
		return metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", v))
	}

	for _, header := range []string{"Bearer " + token, "bearer " + token, "BEARER  " + token} {
		claims, err := authenticate(withHeader(header), j)
		require.NoError(t, err, header)
		assert.Equal(t, uid.Hex(), claims.UserID)
	}

	for _, header := range []string{"Bearer" + token, "Bearerxyz", "Basic " + token, "Basic x", "Bearer ", token} {
		_, err := authenticate(withHeader(header), j)
		assert.Equal(t, codes.Unauthenticated, status.Code(err), header)
	}

	_, err = authenticate(context.Background(), j)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestIsPublic(t *testing.T) {
	assert.True(t, isPublic(v1.ChatService_Login_FullMethodName))
	assert.True(t, isPublic("/grpc.reflection.v1.ServerReflection/ServerReflectionInfo"))
	assert.False(t, isPublic(v1.ChatService_SendMessage_FullMethodName))
}
