package service

import (
	"regexp"
	"time"

	"github.com/inkwell-app/inkwell/internal/httperr"
	"github.com/inkwell-app/inkwell/internal/models"
	"github.com/inkwell-app/inkwell/internal/repository"
	"github.com/inkwell-app/inkwell/internal/utils"
	"github.com/inkwell-app/inkwell/pkg/logger"
	"go.uber.org/zap"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type AuthService struct {
	users       *repository.UserRepository
	hasher      *utils.Hasher
	tokens      *utils.TokenCodec
	environment string
}

func NewAuthService(users *repository.UserRepository, hasher *utils.Hasher, tokens *utils.TokenCodec, environment string) *AuthService {
	return &AuthService{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		environment: environment,
	}
}

func (s *AuthService) IsProduction() bool {
	return s.environment == "production"
}

// Register creates the user row together with its credential, option and
// detail rows. The write is all-or-nothing: a duplicate email leaves no
// partial sub-table rows behind.
func (s *AuthService) Register(email, username, password string, anonym bool) (*models.User, error) {
	start := time.Now()

	if err := validateRegisterInput(email, username, password); err != nil {
		logger.Log.Warn("registration validation failed",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, err
	}

	existing, err := s.users.GetByEmail(email)
	if err != nil {
		logger.Log.Error("failed to check email existence",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, httperr.Wrap(httperr.Internal, err, "failed to check email")
	}
	if existing != nil {
		return nil, httperr.New(httperr.BadRequest, "Given 'email' is already in use")
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, httperr.Wrap(httperr.Internal, err, "failed to generate salt")
	}

	user := &models.User{
		Email:    email,
		Username: username,
		Anonym:   anonym,
	}
	cred := &models.UserCredential{
		Salt:   salt,
		Digest: s.hasher.Hash(password, salt),
	}

	if err := s.users.CreateWithDependents(user, cred, &models.UserOption{PublicProfile: !anonym}, &models.UserDetail{}); err != nil {
		logger.Log.Error("failed to create user",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, httperr.Wrap(httperr.Internal, err, "failed to create user")
	}

	logger.Log.Info("user registered",
		zap.Uint64("user_id", user.ID),
		zap.String("email", email),
		zap.Duration("duration", time.Since(start)),
	)

	return user, nil
}

// Login verifies the credential and issues a session/refresh token pair.
func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, "", "", httperr.Wrap(httperr.Internal, err, "failed to load user")
	}
	if user == nil || user.Deleted {
		return nil, "", "", httperr.New(httperr.Unauthorized, "invalid credentials")
	}
	if user.Banned {
		return nil, "", "", httperr.New(httperr.Forbidden, "account is banned")
	}

	cred, err := s.users.GetCredential(user.ID)
	if err != nil || cred == nil {
		return nil, "", "", httperr.New(httperr.Unauthorized, "invalid credentials")
	}

	if !s.hasher.Verify(password, cred.Salt, cred.Digest) {
		logger.Log.Warn("login failed: bad password",
			zap.String("email", email),
			zap.Uint64("user_id", user.ID),
		)
		return nil, "", "", httperr.New(httperr.Unauthorized, "invalid credentials")
	}

	session, err := s.tokens.IssueSession(user.ID)
	if err != nil {
		return nil, "", "", httperr.Wrap(httperr.Internal, err, "failed to issue session token")
	}
	refresh, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, "", "", httperr.Wrap(httperr.Internal, err, "failed to issue refresh token")
	}

	logger.Log.Info("user logged in",
		zap.Uint64("user_id", user.ID),
		zap.String("email", email),
	)

	return user, session, refresh, nil
}

// Refresh exchanges a refresh token (valid only inside its delayed window)
// for a fresh session/refresh pair.
func (s *AuthService) Refresh(refreshToken string) (string, string, error) {
	userID, tokenType, err := s.tokens.Decode(refreshToken)
	if err != nil {
		return "", "", err
	}
	if tokenType != utils.TokenTypeRefresh {
		return "", "", httperr.New(httperr.Unauthorized, "a refresh token is required")
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return "", "", httperr.Wrap(httperr.Internal, err, "failed to load user")
	}
	if user == nil || user.Deleted || user.Banned {
		return "", "", httperr.New(httperr.Unauthorized, "invalid credentials")
	}

	session, err := s.tokens.IssueSession(user.ID)
	if err != nil {
		return "", "", httperr.Wrap(httperr.Internal, err, "failed to issue session token")
	}
	refresh, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return "", "", httperr.Wrap(httperr.Internal, err, "failed to issue refresh token")
	}

	return session, refresh, nil
}

func validateRegisterInput(email, username, password string) error {
	if !emailRegex.MatchString(email) || len(email) > 100 {
		return httperr.New(httperr.BadRequest, "invalid email format")
	}
	if len(username) > 50 {
		return httperr.New(httperr.BadRequest, "username must be at most 50 characters")
	}
	if len(password) < 8 {
		return httperr.New(httperr.BadRequest, "password must be at least 8 characters")
	}
	if len(password) > 128 {
		return httperr.New(httperr.BadRequest, "password too long")
	}
	return nil
}
