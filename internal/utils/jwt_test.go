package utils

import (
	"testing"
	"time"

	"github.com/inkwell-app/inkwell/internal/hashid"
	"github.com/inkwell-app/inkwell/internal/httperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIDs(t *testing.T) *hashid.Codec {
	ids, err := hashid.New(hashid.Config{Salt: "jwt-test-salt"})
	require.NoError(t, err)
	return ids
}

func newTestCodec(t *testing.T, sessionTTL, refreshDelay, refreshTTL time.Duration) *TokenCodec {
	codec, err := NewTokenCodec("jwt-test-secret", "inkwell-test", sessionTTL, refreshDelay, refreshTTL, newTestIDs(t))
	require.NoError(t, err)
	return codec
}

func TestNewTokenCodec_RequiresSecretAndIssuer(t *testing.T) {
	ids := newTestIDs(t)

	_, err := NewTokenCodec("", "issuer", time.Minute, time.Minute, time.Minute, ids)
	assert.Error(t, err)

	_, err = NewTokenCodec("secret", "", time.Minute, time.Minute, time.Minute, ids)
	assert.Error(t, err)
}

func TestTokenCodec_SessionRoundtrip(t *testing.T) {
	// Arrange
	codec := newTestCodec(t, 15*time.Minute, 5*time.Minute, 30*time.Minute)

	// Act
	token, err := codec.IssueSession(42)
	require.NoError(t, err)
	userID, tokenType, err := codec.Decode(token)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint64(42), userID)
	assert.Equal(t, TokenTypeSession, tokenType)
}

func TestTokenCodec_ExpiredSessionRejected(t *testing.T) {
	// Arrange: a session TTL in the past.
	codec := newTestCodec(t, -time.Minute, 5*time.Minute, 30*time.Minute)
	token, err := codec.IssueSession(42)
	require.NoError(t, err)

	// Act
	_, _, err = codec.Decode(token)

	// Assert
	require.Error(t, err)
	assert.Equal(t, httperr.Unauthorized, httperr.KindOf(err))
}

func TestTokenCodec_RefreshNotValidBeforeDelay(t *testing.T) {
	// Arrange
	codec := newTestCodec(t, 15*time.Minute, time.Hour, 30*time.Minute)
	token, err := codec.IssueRefresh(42)
	require.NoError(t, err)

	// Act: decoding inside the delay window must fail.
	_, _, err = codec.Decode(token)

	// Assert
	require.Error(t, err)
	assert.Equal(t, httperr.Unauthorized, httperr.KindOf(err))
}

func TestTokenCodec_RefreshValidAfterDelay(t *testing.T) {
	// Arrange: zero delay makes the refresh token immediately usable.
	codec := newTestCodec(t, 15*time.Minute, 0, 30*time.Minute)
	token, err := codec.IssueRefresh(42)
	require.NoError(t, err)

	// Act
	userID, tokenType, err := codec.Decode(token)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint64(42), userID)
	assert.Equal(t, TokenTypeRefresh, tokenType)
}

func TestTokenCodec_WrongSecretRejected(t *testing.T) {
	// Arrange
	issuing := newTestCodec(t, 15*time.Minute, 0, 30*time.Minute)
	verifying, err := NewTokenCodec("another-secret", "inkwell-test", 15*time.Minute, 0, 30*time.Minute, newTestIDs(t))
	require.NoError(t, err)

	token, err := issuing.IssueSession(42)
	require.NoError(t, err)

	// Act
	_, _, err = verifying.Decode(token)

	// Assert
	require.Error(t, err)
	assert.Equal(t, httperr.Unauthorized, httperr.KindOf(err))
}

func TestTokenCodec_WrongIssuerRejected(t *testing.T) {
	// Arrange
	ids := newTestIDs(t)
	issuing, err := NewTokenCodec("jwt-test-secret", "someone-else", 15*time.Minute, 0, 30*time.Minute, ids)
	require.NoError(t, err)
	verifying, err := NewTokenCodec("jwt-test-secret", "inkwell-test", 15*time.Minute, 0, 30*time.Minute, ids)
	require.NoError(t, err)

	token, err := issuing.IssueSession(42)
	require.NoError(t, err)

	// Act
	_, _, err = verifying.Decode(token)

	// Assert
	require.Error(t, err)
	assert.Equal(t, httperr.Unauthorized, httperr.KindOf(err))
}
