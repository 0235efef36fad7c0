package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/yourorg/sanctuaryconsole/internal/domain"
	"github.com/yourorg/sanctuaryconsole/internal/observability/metrics"
)

// Store owns the console's session lifecycle: login, register (with
// auto-login), logout, and lookup. Snapshots are persisted through the
// repository so a restarted console trusts them until the first
// authenticated call fails.
type Store struct {
	api    domain.SanctuaryAPI
	repo   domain.SessionRepository
	ttl    time.Duration
	logger *slog.Logger
}

// NewStore creates a session store.
func NewStore(api domain.SanctuaryAPI, repo domain.SessionRepository, ttl time.Duration, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		api:    api,
		repo:   repo,
		ttl:    ttl,
		logger: logger,
	}
}

// Login authenticates against the backend and persists the resulting
// session. On failure any existing session is left untouched.
func (s *Store) Login(ctx context.Context, username, password string) (*domain.Session, string, error) {
	result, err := s.api.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.ObserveLogin("failure")
			s.logger.Info("login rejected", slog.String("username", username))
		}
		return nil, "", err
	}

	session := &domain.Session{
		UserID:   result.UserID,
		Username: result.Username,
		Role:     result.Role,
		Token:    result.Token,
	}

	sid := uuid.NewString()
	if err := s.repo.Save(ctx, sid, session, s.ttl); err != nil {
		return nil, "", fmt.Errorf("persist session: %w", err)
	}

	metrics.ObserveLogin("success")
	metrics.IncrementSessions()
	s.logger.Info("user logged in",
		slog.String("user_id", session.UserID),
		slog.String("username", session.Username),
		slog.String("role", string(session.Role)),
	)
	return session, sid, nil
}

// Register provisions a new identity with the given role and then logs in
// with the same credentials.
func (s *Store) Register(ctx context.Context, username, password, email string, role domain.Role) (*domain.Session, string, error) {
	if _, err := s.api.Register(ctx, domain.RegisterRequest{
		Username: username,
		Password: password,
		Email:    email,
		Role:     role,
	}); err != nil {
		s.logger.Info("registration rejected", slog.String("username", username))
		return nil, "", err
	}

	return s.Login(ctx, username, password)
}

// Logout destroys the persisted session. Idempotent: an unknown or already
// cleared sid is not an error.
func (s *Store) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := s.repo.Delete(ctx, sid); err != nil {
		return err
	}
	metrics.DecrementSessions()
	return nil
}

// Current returns the session for a sid, or ErrNoSession.
func (s *Store) Current(ctx context.Context, sid string) (*domain.Session, error) {
	if sid == "" {
		return nil, domain.ErrNoSession
	}
	return s.repo.Get(ctx, sid)
}
