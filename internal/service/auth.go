// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic for the portal: session-based
// authentication and event logging for audit trails.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/croquetbond/portal/internal/auth"
	"github.com/croquetbond/portal/internal/model"
	"github.com/croquetbond/portal/internal/store"
)

// DefaultSessionTTL is how long a session lives after issuance.
const DefaultSessionTTL = 30 * 24 * time.Hour

// ErrInvalidCredentials is returned for a bad email or password. It is a
// single value on purpose: callers must not be able to tell an unknown
// account from a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrNoSession is returned when a token is empty, unknown, or expired.
var ErrNoSession = errors.New("no active session")

// Principal is the authenticated identity resolved from a session: the
// non-secret user fields only.
type Principal struct {
	ID    int64      `json:"id"`
	Email string     `json:"email"`
	Name  string     `json:"name"`
	Role  model.Role `json:"role"`
}

// Session is a live session with its principal embedded.
type Session struct {
	Token        string
	ExpiresAt    time.Time
	LastActivity time.Time
	Principal    Principal
}

// AuthService orchestrates credential verification, token issuance,
// session lookup, and revocation. It depends only on the store.
type AuthService struct {
	queries *store.Queries
	ttl     time.Duration
	now     func() time.Time
}

// NewAuthService creates an AuthService with the given session TTL.
// A non-positive TTL falls back to DefaultSessionTTL.
func NewAuthService(db *sql.DB, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthService{
		queries: store.New(db),
		ttl:     ttl,
		now:     time.Now,
	}
}

// TTL returns the configured session lifetime.
func (s *AuthService) TTL() time.Duration {
	return s.ttl
}

// Authenticate verifies the credentials and, on success, issues a new
// session token. Unknown accounts and wrong passwords both fail with
// ErrInvalidCredentials. There is no limit on concurrent sessions per
// user; every device gets its own token.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, Principal, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", Principal{}, ErrInvalidCredentials
		}
		return "", Principal{}, fmt.Errorf("looking up user: %w", err)
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		return "", Principal{}, fmt.Errorf("verifying password: %w", err)
	}
	if !valid {
		return "", Principal{}, ErrInvalidCredentials
	}

	// Re-hash if the stored hash uses a weaker cost than the current default.
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, hashErr := auth.HashPassword(password); hashErr == nil {
			if updErr := s.queries.UpdateUserPassword(ctx, store.UpdateUserPasswordParams{
				PasswordHash: newHash,
				UpdatedAt:    s.now().UTC(),
				ID:           user.ID,
			}); updErr != nil {
				slog.Error("failed to re-hash password", "error", updErr, "user_id", user.ID)
			}
		}
	}

	token, err := auth.GenerateToken()
	if err != nil {
		return "", Principal{}, err
	}

	now := s.now().UTC()
	if err := s.queries.CreateSession(ctx, store.CreateSessionParams{
		Token:        token,
		UserID:       user.ID,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
		LastActivity: now,
	}); err != nil {
		return "", Principal{}, fmt.Errorf("creating session: %w", err)
	}

	if err := s.queries.UpdateUserLastLogin(ctx, store.UpdateUserLastLoginParams{
		LastLoginAt: sql.NullTime{Time: now, Valid: true},
		ID:          user.ID,
	}); err != nil {
		// Don't block login on this error
		slog.Error("failed to update last login time", "error", err, "user_id", user.ID)
	}

	return token, principalFromUser(user), nil
}

// GetSession resolves a token to its session and principal. An
// expired-but-present row is deleted before reporting ErrNoSession, so a
// session never outlives its TTL from the caller's perspective even if the
// sweep has not run yet. On success the only side effect is the
// last_activity bump.
func (s *AuthService) GetSession(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	row, err := s.queries.GetSessionWithUser(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("looking up session: %w", err)
	}

	now := s.now().UTC()
	if row.Session.ExpiresAt.Before(now) {
		if delErr := s.queries.DeleteSessionByToken(ctx, token); delErr != nil {
			slog.Error("failed to delete expired session", "error", delErr)
		}
		return nil, ErrNoSession
	}

	if err := s.queries.UpdateSessionActivity(ctx, store.UpdateSessionActivityParams{
		LastActivity: now,
		Token:        token,
	}); err != nil {
		// A failed bump is not worth rejecting an otherwise valid session.
		slog.Error("failed to update session activity", "error", err)
	}

	return &Session{
		Token:        row.Session.Token,
		ExpiresAt:    row.Session.ExpiresAt,
		LastActivity: now,
		Principal:    principalFromUser(row.User),
	}, nil
}

// DeleteSession revokes a session. Deleting an empty or unknown token is a
// no-op, so logout is idempotent.
func (s *AuthService) DeleteSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.queries.DeleteSessionByToken(ctx, token); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// CleanupExpiredSessions bulk-deletes every expired session and returns how
// many were removed. The lazy deletion in GetSession only cleans rows that
// are actually looked up; this catches the rest.
func (s *AuthService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	count, err := s.queries.DeleteExpiredSessions(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("cleaning up expired sessions: %w", err)
	}
	return count, nil
}

// principalFromUser strips a user row down to its non-secret fields.
func principalFromUser(u store.User) Principal {
	return Principal{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  model.Role(u.Role),
	}
}
