// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// CreateSessionParams are the inputs for CreateSession.
type CreateSessionParams struct {
	Token        string
	UserID       int64
	CreatedAt    time.Time
	ExpiresAt    time.Time
	LastActivity time.Time
}

// CreateSession inserts a session row. The token is the primary key, so a
// duplicate insert fails rather than silently overwriting.
func (q *Queries) CreateSession(ctx context.Context, arg CreateSessionParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, created_at, expires_at, last_activity)
		 VALUES (?, ?, ?, ?, ?)`,
		arg.Token, arg.UserID, arg.CreatedAt, arg.ExpiresAt, arg.LastActivity)
	return err
}

// GetSessionByToken returns the bare session row for a token.
func (q *Queries) GetSessionByToken(ctx context.Context, token string) (Session, error) {
	var s Session
	err := q.db.QueryRowContext(ctx,
		`SELECT token, user_id, created_at, expires_at, last_activity
		 FROM sessions WHERE token = ?`, token).
		Scan(&s.Token, &s.UserID, &s.CreatedAt, &s.ExpiresAt, &s.LastActivity)
	return s, err
}

// GetSessionWithUser returns the session row for a token joined with its
// owning user. The join guarantees a returned session always resolves to an
// existing user.
func (q *Queries) GetSessionWithUser(ctx context.Context, token string) (SessionWithUser, error) {
	var s SessionWithUser
	err := q.db.QueryRowContext(ctx,
		`SELECT s.token, s.user_id, s.created_at, s.expires_at, s.last_activity,
		        u.id, u.email, u.password_hash, u.role, u.name, u.created_at, u.updated_at, u.last_login_at
		 FROM sessions s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.token = ?`, token).
		Scan(&s.Session.Token, &s.Session.UserID, &s.Session.CreatedAt,
			&s.Session.ExpiresAt, &s.Session.LastActivity,
			&s.User.ID, &s.User.Email, &s.User.PasswordHash, &s.User.Role,
			&s.User.Name, &s.User.CreatedAt, &s.User.UpdatedAt, &s.User.LastLoginAt)
	return s, err
}

// UpdateSessionActivityParams are the inputs for UpdateSessionActivity.
type UpdateSessionActivityParams struct {
	LastActivity time.Time
	Token        string
}

// UpdateSessionActivity bumps last_activity for a session.
func (q *Queries) UpdateSessionActivity(ctx context.Context, arg UpdateSessionActivityParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE sessions SET last_activity = ? WHERE token = ?`,
		arg.LastActivity, arg.Token)
	return err
}

// DeleteSessionByToken removes a session row. Deleting an absent token is
// not an error.
func (q *Queries) DeleteSessionByToken(ctx context.Context, token string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	return err
}

// DeleteExpiredSessions removes every session that expired before the given
// moment and returns how many rows were deleted.
func (q *Queries) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountSessionsByToken reports how many rows exist for a token (0 or 1).
func (q *Queries) CountSessionsByToken(ctx context.Context, token string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE token = ?`, token).Scan(&count)
	return count, err
}
