package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"climblog/internal/modules/auth/domain"
	"climblog/internal/modules/auth/dto"
	authout "climblog/internal/modules/auth/port/out"
	"climblog/internal/platform/clock"
	apperrors "climblog/internal/platform/errors"
)

type AuthService struct {
	clock         clock.Clock
	authenticator authout.Authenticator
	store         authout.CredentialStore
	logger        *slog.Logger
}

func NewAuthService(clock clock.Clock, authenticator authout.Authenticator, store authout.CredentialStore, logger *slog.Logger) *AuthService {
	return &AuthService{clock: clock, authenticator: authenticator, store: store, logger: logger}
}

// Login exchanges credentials for a token and persists it. Nothing is stored
// when the backend rejects the attempt.
func (s *AuthService) Login(ctx context.Context, username, password string) (dto.LoginOutput, error) {
	out, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return dto.LoginOutput{}, err
	}
	if err := s.Remember(ctx, out.Token); err != nil {
		return dto.LoginOutput{}, err
	}
	return out, nil
}

// Authenticate exchanges credentials for a token without saving it. Callers
// that can be overtaken by a logout decide when the token is remembered.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (dto.LoginOutput, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dto.LoginOutput{}, fmt.Errorf("%w: username and password are required", apperrors.ErrInvalidInput)
	}
	token, err := s.authenticator.Login(ctx, username, password)
	if err != nil {
		s.logger.Info("login rejected", "username", username, "error", err)
		return dto.LoginOutput{}, err
	}
	name := domain.ParseClaims(token).Username
	if name == "" {
		name = username
	}
	return dto.LoginOutput{Token: token, Username: name}, nil
}

func (s *AuthService) Remember(ctx context.Context, token string) error {
	if (domain.Credential{Token: token}).IsZero() {
		return fmt.Errorf("%w: empty token", apperrors.ErrInvalidInput)
	}
	if err := s.store.Set(ctx, token); err != nil {
		return err
	}
	s.logger.Info("logged in", "username", domain.ParseClaims(token).Username)
	return nil
}

func (s *AuthService) Signup(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", apperrors.ErrInvalidInput)
	}
	if err := s.authenticator.Signup(ctx, username, password); err != nil {
		return err
	}
	s.logger.Info("account created", "username", username)
	return nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.logger.Info("logged out")
	return nil
}

func (s *AuthService) Current(ctx context.Context) (domain.Credential, error) {
	token, err := s.store.Get(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.Credential{}, apperrors.ErrNotAuthenticated
	}
	if err != nil {
		return domain.Credential{}, err
	}
	cred := domain.Credential{Token: token}
	if cred.IsZero() {
		return domain.Credential{}, apperrors.ErrNotAuthenticated
	}
	return cred, nil
}

func (s *AuthService) Whoami(ctx context.Context) (dto.WhoamiOutput, error) {
	cred, err := s.Current(ctx)
	if errors.Is(err, apperrors.ErrNotAuthenticated) {
		return dto.WhoamiOutput{}, nil
	}
	if err != nil {
		return dto.WhoamiOutput{}, err
	}
	savedAt, err := s.store.UpdatedAt(ctx)
	if err != nil {
		return dto.WhoamiOutput{}, err
	}
	claims := domain.ParseClaims(cred.Token)
	return dto.WhoamiOutput{
		Authenticated: true,
		Username:      claims.Username,
		ExpiresAt:     claims.ExpiresAt,
		Expired:       claims.Expired(s.clock.Now()),
		SavedAt:       savedAt,
	}, nil
}
