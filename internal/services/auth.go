package services

import (
	"context"
	"errors"
	"time"

	"portfolio-server/internal/apperrors"
	"portfolio-server/internal/logger"
	"portfolio-server/internal/models"
	"portfolio-server/internal/repository"
	"portfolio-server/internal/utils"
)

const MsgInvalidCredentials = "Identifiants invalides"

// UserStore is the persistence needed by AuthService.
type UserStore interface {
	Get(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	CountAdmins(ctx context.Context) (int64, error)
}

// AuthService signs administrators in.
type AuthService struct {
	users  UserStore
	secret string
	ttl    time.Duration
}

func NewAuthService(users UserStore, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, secret: secret, ttl: ttl}
}

// TTL is the lifetime of issued session tokens.
func (s *AuthService) TTL() time.Duration {
	return s.ttl
}

// Login checks the credentials of an administrator and returns a signed
// session token. Unknown users, wrong passwords and non-admin accounts all
// get the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", apperrors.NewUnauthorized(MsgInvalidCredentials)
		}
		return nil, "", apperrors.NewInternal("user lookup failed", err)
	}
	if !user.IsAdmin || !user.CheckPassword(password) {
		logger.FromContext(ctx).Warn().Str("email", email).Msg("rejected login")
		return nil, "", apperrors.NewUnauthorized(MsgInvalidCredentials)
	}

	token, err := utils.GenerateSessionToken(user, s.secret, s.ttl)
	if err != nil {
		return nil, "", apperrors.NewInternal("session signing failed", err)
	}
	return user, token, nil
}

// Verify parses a session token and checks that its account still exists and
// is still an administrator.
func (s *AuthService) Verify(ctx context.Context, token string) (*utils.SessionClaims, error) {
	claims, err := utils.ValidateSessionToken(token, s.secret)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized(MsgInvalidCredentials)
		}
		return nil, apperrors.NewInternal("user lookup failed", err)
	}
	if !user.IsAdmin {
		logger.FromContext(ctx).Warn().Str("user_id", user.ID).Msg("session of a former admin rejected")
		return nil, apperrors.NewUnauthorized(MsgInvalidCredentials)
	}

	claims.Email = user.Email
	claims.IsAdmin = user.IsAdmin
	return claims, nil
}

// EnsureAdmin creates the bootstrap administrator when no admin exists yet.
// It reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}
	count, err := s.users.CountAdmins(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	user := &models.User{Email: email, Name: "Administrateur", IsAdmin: true}
	if err := user.SetPassword(password); err != nil {
		return false, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return false, err
	}
	logger.FromContext(ctx).Info().Str("email", email).Msg("bootstrap admin created")
	return true, nil
}
