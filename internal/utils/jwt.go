package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/inkwell-app/inkwell/internal/entity"
	"github.com/inkwell-app/inkwell/internal/hashid"
	"github.com/inkwell-app/inkwell/internal/httperr"
)

const (
	TokenTypeSession = "session"
	TokenTypeRefresh = "refresh"
)

// TokenClaims is the JWT payload. Subject carries the obfuscated public user
// id, never the raw row id.
type TokenClaims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies the two bearer-token variants: short-lived
// session tokens, and refresh tokens that only become valid after a delay so
// a client can pre-fetch a renewal without immediate reuse.
type TokenCodec struct {
	secret       []byte
	issuer       string
	sessionTTL   time.Duration
	refreshDelay time.Duration
	refreshTTL   time.Duration
	ids          *hashid.Codec
}

func NewTokenCodec(secret, issuer string, sessionTTL, refreshDelay, refreshTTL time.Duration, ids *hashid.Codec) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is not configured")
	}
	if issuer == "" {
		return nil, errors.New("jwt issuer is not configured")
	}
	return &TokenCodec{
		secret:       []byte(secret),
		issuer:       issuer,
		sessionTTL:   sessionTTL,
		refreshDelay: refreshDelay,
		refreshTTL:   refreshTTL,
		ids:          ids,
	}, nil
}

// IssueSession signs a session token for the user, valid immediately.
func (t *TokenCodec) IssueSession(userID uint64) (string, error) {
	now := time.Now()
	return t.sign(userID, TokenTypeSession, now, now.Add(t.sessionTTL))
}

// IssueRefresh signs a refresh token that is valid only after the configured
// delay and expires a further window beyond that.
func (t *TokenCodec) IssueRefresh(userID uint64) (string, error) {
	notBefore := time.Now().Add(t.refreshDelay)
	return t.sign(userID, TokenTypeRefresh, notBefore, notBefore.Add(t.refreshTTL))
}

func (t *TokenCodec) sign(userID uint64, tokenType string, notBefore, expiresAt time.Time) (string, error) {
	public, err := t.ids.Encode(entity.Users, userID)
	if err != nil {
		return "", err
	}

	claims := &TokenClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   public,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(notBefore),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Decode verifies signature, issuer and validity window, then reverses the
// subject obfuscation. Any mismatch surfaces as an Unauthorized error.
func (t *TokenCodec) Decode(tokenString string) (uint64, string, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&TokenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return t.secret, nil
		},
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, "", httperr.Wrap(httperr.Unauthorized, err, "invalid or expired token")
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return 0, "", httperr.New(httperr.Unauthorized, "invalid token")
	}

	userID, err := t.ids.Decode(entity.Users, claims.Subject)
	if err != nil {
		return 0, "", httperr.New(httperr.Unauthorized, "invalid token subject")
	}

	return userID, claims.TokenType, nil
}
