package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/parthgupta9/splitr/internal/auth"
	apperr "github.com/parthgupta9/splitr/internal/errors"
	"github.com/parthgupta9/splitr/internal/models"
	"github.com/parthgupta9/splitr/internal/storage"
)

// AuthService is the identity resolver: it turns credentials into user
// records and tokens, and resolves an authenticated caller back to a record.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
	}
}

// Register creates a new user account and returns it with a session token.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*models.User, string, error) {
	if email == "" || name == "" {
		return nil, "", apperr.Invalid("email and name are required")
	}

	user, err := s.authenticator.Register(ctx, email, name, password)
	if err != nil {
		slog.Warn("registration failed", "email", email, "error", err)
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			return nil, "", apperr.New(apperr.CodeAlreadyExists, "email already registered")
		case errors.Is(err, auth.ErrWeakPassword):
			return nil, "", apperr.Invalid("%s", err)
		default:
			return nil, "", err
		}
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, "", err
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// Login authenticates a user and returns a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", apperr.Invalid("email and password are required")
	}

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		slog.Warn("login failed", "email", email)
		return nil, "", apperr.New(apperr.CodeUnauthenticated, "invalid email or password")
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, "", err
	}

	slog.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}

// CurrentUser resolves the authenticated caller to a user record.
//
// When the token's user id has no record but its email is known, a record is
// created on the spot: first authenticated contact provisions the user, the
// same way an external identity provider would hand us a caller we have
// never stored.
func (s *AuthService) CurrentUser(ctx context.Context, userID, email string) (*models.User, error) {
	if userID == "" {
		return nil, apperr.New(apperr.CodeUnauthenticated, "no caller identity")
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	if email == "" {
		return nil, apperr.NotFound("user", userID)
	}

	// First contact: provision the record from the claims.
	user = &models.User{
		ID:        userID,
		Email:     email,
		Name:      nameFromEmail(email),
		CreatedAt: 0, // store stamps it
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("user provisioned on first contact", "user_id", user.ID, "email", email)
	return user, nil
}

func nameFromEmail(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
