package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestHashAndCheckPassword(t *testing.T) {
	pwd := "s3cr3t-password"
	hash, err := HashPassword(pwd)
	require.NoError(t, err)

	require.NoError(t, CheckPassword(hash, pwd))
	require.Error(t, CheckPassword(hash, "wrong"))
}

func TestJWTManager_GenerateAndVerify(t *testing.T) {
	m := NewJWTManager("test-secret", 5*time.Minute)

	id := bson.NewObjectID()
	token, expiresAt, err := m.GenerateToken(id, "test@example.com")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, id.Hex(), claims.UserID)
}

func TestJWTManager_NormalizeEmailClaim(t *testing.T) {
	m := NewJWTManager("test-secret", 5*time.Minute)

	token, _, err := m.GenerateToken(bson.NewObjectID(), "User.Case@Example.COM")
	require.NoError(t, err)

	claims, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user.case@example.com", claims.Email)
}

func TestJWTManager_RejectsOtherSecret(t *testing.T) {
	token, _, err := NewJWTManager("one", time.Minute).GenerateToken(bson.NewObjectID(), "a@example.com")
	require.NoError(t, err)

	_, err = NewJWTManager("two", time.Minute).VerifyToken(token)
	assert.Error(t, err)
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)
	token, _, err := m.GenerateToken(bson.NewObjectID(), "late@example.com")
	require.NoError(t, err)

	_, err = m.VerifyToken(token)
	assert.Error(t, err)
}

func TestJWTManager_Rotation(t *testing.T) {
	keys := map[string]string{"k1": "secret-one", "k2": "secret-two"}
	m := NewJWTManagerFromKeys(keys, "k2", 5*time.Minute)
	id := bson.NewObjectID()

	tkn2, _, err := m.GenerateToken(id, "rot@example.com")
	require.NoError(t, err)
	_, err = m.VerifyToken(tkn2)
	require.NoError(t, err)

	// tokens issued while k1 was active stay valid
	mOld := NewJWTManagerFromKeys(keys, "k1", 5*time.Minute)
	tkn1, _, err := mOld.GenerateToken(id, "rot@example.com")
	require.NoError(t, err)
	_, err = m.VerifyToken(tkn1)
	require.NoError(t, err)

	// once k1 is retired they are not
	retired := NewJWTManagerFromKeys(map[string]string{"k2": "secret-two"}, "k2", 5*time.Minute)
	_, err = retired.VerifyToken(tkn1)
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestJWTManager_ActiveKidMissing(t *testing.T) {
	m := NewJWTManagerFromKeys(map[string]string{"k1": "s"}, "k9", time.Minute)
	_, _, err := m.GenerateToken(bson.NewObjectID(), "x@example.com")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestClaimsContext(t *testing.T) {
	_, ok := ClaimsFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithClaims(context.Background(), &Claims{UserID: "u1"})
	c, ok := ClaimsFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", c.UserID)
}
