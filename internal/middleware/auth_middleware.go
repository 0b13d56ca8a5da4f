package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-app/inkwell/internal/audit"
	"github.com/inkwell-app/inkwell/internal/authz"
	"github.com/inkwell-app/inkwell/internal/httperr"
	"github.com/inkwell-app/inkwell/internal/repository"
	"github.com/inkwell-app/inkwell/internal/utils"
	"github.com/inkwell-app/inkwell/pkg/logger"
	"go.uber.org/zap"
)

const identityKey = "identity"

// Authenticate resolves the caller's identity on every request.
//
// No credential is a valid state: the request proceeds as anonymous and
// authorization is enforced later. A credential that is present but fails to
// verify is a 401 — absent and invalid are deliberately not the same thing.
func Authenticate(users *repository.UserRepository, tokens *utils.TokenCodec, trail *audit.Trail) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			logger.Log.Debug("request not authenticated",
				zap.String("path", c.Request.URL.Path),
			)
			recordAuth(trail, c, "anonymous", true, "no credential")
			c.Set(identityKey, authz.Anonymous())
			c.Next()
			return
		}

		userID, tokenType, err := tokens.Decode(tokenString)
		if err != nil {
			logger.Log.Warn("token verification failed",
				zap.String("ip", c.ClientIP()),
				zap.Error(err),
			)
			recordAuth(trail, c, "unknown", false, "token verification failed")
			httperr.Render(c, err)
			return
		}

		if tokenType != utils.TokenTypeSession {
			recordAuth(trail, c, "unknown", false, "wrong token type")
			httperr.Render(c, httperr.New(httperr.Unauthorized, "a session token is required"))
			return
		}

		user, err := users.GetByID(userID)
		if err != nil {
			httperr.Render(c, httperr.Wrap(httperr.Internal, err, "failed to load user"))
			return
		}
		if user == nil {
			recordAuth(trail, c, fmt.Sprintf("%d", userID), false, "token references missing user")
			httperr.Render(c, httperr.New(httperr.Unauthorized, "unknown user"))
			return
		}

		permissions, err := users.GetPermissionNames(user.ID)
		if err != nil {
			httperr.Render(c, httperr.Wrap(httperr.Internal, err, "failed to load permissions"))
			return
		}

		logger.Log.Info("request authenticated",
			zap.Uint64("user_id", user.ID),
			zap.Int("permissions", len(permissions)),
			zap.Bool("banned", user.Banned),
			zap.String("path", c.Request.URL.Path),
		)
		recordAuth(trail, c, fmt.Sprintf("%d", user.ID), true, "")

		c.Set(identityKey, authz.NewIdentity(user.ID, permissions, user.Banned, user.Deleted))
		c.Next()
	}
}

// GetIdentity returns the identity attached by Authenticate, anonymous when
// the middleware did not run.
func GetIdentity(c *gin.Context) authz.Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return authz.Anonymous()
	}
	ident, ok := value.(authz.Identity)
	if !ok {
		return authz.Anonymous()
	}
	return ident
}

// RequireAuthenticated aborts with 401 unless the caller carries a valid
// session identity.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetIdentity(c).Authenticated {
			httperr.Render(c, httperr.New(httperr.Unauthorized, "authentication required"))
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		token := strings.TrimPrefix(header, "Bearer ")
		if token != header {
			return token
		}
		return ""
	}

	cookie, err := c.Cookie("token")
	if err != nil {
		return ""
	}
	return cookie
}

func recordAuth(trail *audit.Trail, c *gin.Context, actor string, ok bool, note string) {
	if trail == nil {
		return
	}
	_ = trail.Record(audit.Entry{
		RequestID: RequestID(c),
		Actor:     actor,
		Action:    "authenticate",
		Allowed:   ok,
		Note:      note,
	})
}
