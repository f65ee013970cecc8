// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/croquetbond/portal/internal/auth"
	"github.com/croquetbond/portal/internal/model"
	"github.com/croquetbond/portal/internal/service"
	"github.com/croquetbond/portal/internal/store"
)

const sessionSchema = `
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
`

// loginAs seeds a user with the given role and returns a live token.
func loginAs(t *testing.T, role model.Role) (*service.AuthService, string) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	_, err = db.Exec(sessionSchema)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	hash, err := auth.HashPassword("geheim123")
	require.NoError(t, err)

	now := time.Now().UTC()
	_, err = store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Email:        "jan@croquet.nl",
		PasswordHash: hash,
		Role:         string(role),
		Name:         "Jan",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)

	svc := service.NewAuthService(db, time.Hour)
	token, _, err := svc.Authenticate(context.Background(), "jan@croquet.nl", "geheim123")
	require.NoError(t, err)
	return svc, token
}

// echoPrincipal responds 200 and records whether a principal was present.
func echoPrincipal(sawPrincipal *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*sawPrincipal = GetPrincipal(r) != nil
		w.WriteHeader(http.StatusOK)
	})
}

func TestLoadPrincipal_ValidCookie(t *testing.T) {
	svc, token := loginAs(t, model.RoleMember)

	var sawPrincipal bool
	handler := LoadPrincipal(svc, false)(echoPrincipal(&sawPrincipal))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, sawPrincipal)
}

func TestLoadPrincipal_NoCookie(t *testing.T) {
	svc, _ := loginAs(t, model.RoleMember)

	var sawPrincipal bool
	handler := LoadPrincipal(svc, false)(echoPrincipal(&sawPrincipal))

	req := httptest.NewRequest(http.MethodGet, "/api/clubs", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// Anonymous requests pass through without a principal.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, sawPrincipal)
}

func TestLoadPrincipal_DeadTokenClearsCookie(t *testing.T) {
	svc, token := loginAs(t, model.RoleMember)
	require.NoError(t, svc.DeleteSession(context.Background(), token))

	var sawPrincipal bool
	handler := LoadPrincipal(svc, false)(echoPrincipal(&sawPrincipal))

	req := httptest.NewRequest(http.MethodGet, "/api/clubs", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, sawPrincipal)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestRequireAuth(t *testing.T) {
	svc, token := loginAs(t, model.RoleMember)

	handler := LoadPrincipal(svc, false)(RequireAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	// Without a session: 401.
	req := httptest.NewRequest(http.MethodGet, "/api/members", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")

	// With a session: through.
	req = httptest.NewRequest(http.MethodGet, "/api/members", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_Hierarchy(t *testing.T) {
	tests := []struct {
		name     string
		role     model.Role
		minimum  model.Role
		wantCode int
	}{
		{"admin passes admin gate", model.RoleAdmin, model.RoleAdmin, http.StatusOK},
		{"admin passes member gate", model.RoleAdmin, model.RoleMember, http.StatusOK},
		{"rules committee passes member gate", model.RoleRulesCommittee, model.RoleMember, http.StatusOK},
		{"rules committee blocked at admin gate", model.RoleRulesCommittee, model.RoleAdmin, http.StatusForbidden},
		{"member blocked at admin gate", model.RoleMember, model.RoleAdmin, http.StatusForbidden},
		{"guest blocked at member gate", model.RoleGuest, model.RoleMember, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, token := loginAs(t, tt.role)

			handler := LoadPrincipal(svc, false)(RequireRole(tt.minimum)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})))

			req := httptest.NewRequest(http.MethodPost, "/api/admin", nil)
			req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestRequireRole_Unauthenticated(t *testing.T) {
	svc, _ := loginAs(t, model.RoleAdmin)

	handler := LoadPrincipal(svc, false)(RequireRole(model.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/admin", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// Missing identity is 401, not 403.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAnyRole(t *testing.T) {
	gate := RequireAnyRole(model.RoleAdmin, model.RoleRulesCommittee)

	for role, wantCode := range map[model.Role]int{
		model.RoleAdmin:          http.StatusOK,
		model.RoleRulesCommittee: http.StatusOK,
		model.RoleMember:         http.StatusForbidden,
	} {
		svc, token := loginAs(t, role)

		handler := LoadPrincipal(svc, false)(gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))

		req := httptest.NewRequest(http.MethodPut, "/api/rules/1", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, wantCode, rec.Code, "role %s", role)
	}
}

func TestSessionCookieAttributes(t *testing.T) {
	cookie := NewSessionCookie("abc123", 30*24*time.Hour, true)
	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int((30 * 24 * time.Hour).Seconds()), cookie.MaxAge)

	cleared := ClearedSessionCookie(false)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
	assert.False(t, cleared.Secure)
}
