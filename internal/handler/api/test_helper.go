// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "modernc.org/sqlite"
	"github.com/stretchr/testify/require"

	"github.com/croquetbond/portal/internal/auth"
	"github.com/croquetbond/portal/internal/middleware"
	"github.com/croquetbond/portal/internal/model"
	"github.com/croquetbond/portal/internal/service"
	"github.com/croquetbond/portal/internal/store"
)

// portalSchema mirrors migrations/00001_init.sql for in-memory tests.
const portalSchema = `
	CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE COLLATE NOCASE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'member',
		name TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		last_login_at DATETIME
	);

	CREATE TABLE sessions (
		token TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		expires_at DATETIME NOT NULL,
		last_activity DATETIME NOT NULL,
		CHECK (expires_at >= created_at),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE clubs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE members (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		full_name TEXT NOT NULL,
		club_id INTEGER,
		membership_number TEXT NOT NULL UNIQUE,
		date_joined DATETIME NOT NULL,
		membership_type TEXT NOT NULL DEFAULT 'full',
		handicap INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		FOREIGN KEY (club_id) REFERENCES clubs(id) ON DELETE SET NULL
	);

	CREATE TABLE tournaments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		date DATETIME NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		host_club_id INTEGER,
		tournament_type TEXT NOT NULL DEFAULT 'association',
		status TEXT NOT NULL DEFAULT 'upcoming',
		max_participants INTEGER NOT NULL DEFAULT 0,
		entry_fee REAL NOT NULL DEFAULT 0,
		handicap_range TEXT NOT NULL DEFAULT '',
		registration_deadline DATETIME,
		description TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		FOREIGN KEY (host_club_id) REFERENCES clubs(id) ON DELETE SET NULL
	);

	CREATE TABLE rules (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		part_order INTEGER NOT NULL DEFAULT 0,
		part_title TEXT NOT NULL DEFAULT '',
		section_order INTEGER NOT NULL DEFAULT 0,
		section_title TEXT NOT NULL DEFAULT '',
		subsection_order INTEGER NOT NULL DEFAULT 0,
		content TEXT NOT NULL DEFAULT '',
		language TEXT NOT NULL DEFAULT 'nl',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE news (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guid TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		content TEXT NOT NULL DEFAULT '',
		author TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		featured BOOLEAN NOT NULL DEFAULT 0,
		publish_date DATETIME NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE rankings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		member_id INTEGER NOT NULL,
		season TEXT NOT NULL,
		points INTEGER NOT NULL DEFAULT 0,
		wins INTEGER NOT NULL DEFAULT 0,
		tournaments_played INTEGER NOT NULL DEFAULT 0,
		current_position INTEGER NOT NULL DEFAULT 0,
		previous_position INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		UNIQUE (member_id, season),
		FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE
	);

	CREATE TABLE events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		level TEXT NOT NULL,
		category TEXT NOT NULL,
		message TEXT NOT NULL,
		user_id INTEGER,
		ip_address TEXT NOT NULL DEFAULT '',
		metadata TEXT NOT NULL DEFAULT '{}',
		created_at DATETIME NOT NULL
	);
`

// testEnv bundles everything a handler test needs.
type testEnv struct {
	db      *sql.DB
	handler *Handler
	router  chi.Router
	auth    *service.AuthService
}

// newTestEnv builds an in-memory portal with routes mounted.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// The pragma below is per-connection and ":memory:" state lives on a
	// single connection, so keep the pool at one connection.
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA foreign_keys=ON")
	require.NoError(t, err)
	_, err = db.Exec(portalSchema)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	authSvc := service.NewAuthService(db, time.Hour)
	h := NewHandler(db, authSvc, service.NewEventService(db), false)

	// Generous throttle so tests never trip it.
	throttle := middleware.NewLoginThrottle(1000, 1000)

	return &testEnv{
		db:      db,
		handler: h,
		router:  h.Routes(throttle),
		auth:    authSvc,
	}
}

// createUser inserts an account directly into the store.
func (e *testEnv) createUser(t *testing.T, email, password string, role model.Role) store.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	now := time.Now().UTC()
	user, err := store.New(e.db).CreateUser(context.Background(), store.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Role:         string(role),
		Name:         "Test Account",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	return user
}

// loginAs creates an account with the given role and returns its
// session cookie.
func (e *testEnv) loginAs(t *testing.T, role model.Role) *http.Cookie {
	t.Helper()

	email := string(role) + "@croquet.nl"
	e.createUser(t, email, "geheim123", role)

	token, _, err := e.auth.Authenticate(context.Background(), email, "geheim123")
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.SessionCookieName, Value: token}
}

// do runs a JSON request through the router.
func (e *testEnv) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the "data" field of a response envelope into out.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}
