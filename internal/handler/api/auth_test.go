// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/croquetbond/portal/internal/middleware"
	"github.com/croquetbond/portal/internal/model"
)

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "admin@croquet.nl", "admin123", model.RoleAdmin)

	rec := env.do(t, http.MethodPost, "/auth/login",
		LoginRequest{Email: "admin@croquet.nl", Password: "admin123"}, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp SessionResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, "admin@croquet.nl", resp.User.Email)
	assert.Equal(t, model.RoleAdmin, resp.User.Role)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, middleware.SessionCookieName, cookie.Name)
	assert.Len(t, cookie.Value, 64)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestLogin_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		req  LoginRequest
	}{
		{"no email", LoginRequest{Password: "x"}},
		{"no password", LoginRequest{Email: "a@b.nl"}},
		{"empty", LoginRequest{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/auth/login", tt.req, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLogin_BadCredentialsAreUniform(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "jan@croquet.nl", "geheim123", model.RoleMember)

	unknownUser := env.do(t, http.MethodPost, "/auth/login",
		LoginRequest{Email: "nobody@croquet.nl", Password: "geheim123"}, nil)
	wrongPassword := env.do(t, http.MethodPost, "/auth/login",
		LoginRequest{Email: "jan@croquet.nl", Password: "fout"}, nil)

	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	// Identical bodies: the response must not reveal which part failed.
	assert.JSONEq(t, unknownUser.Body.String(), wrongPassword.Body.String())
	assert.Empty(t, unknownUser.Result().Cookies())
}

func TestLogin_MalformedBody(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/auth/login", "not an object", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginAs(t, model.RoleMember)

	rec := env.do(t, http.MethodGet, "/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SessionResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, "member@croquet.nl", resp.User.Email)

	// No session: 401.
	rec = env.do(t, http.MethodGet, "/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginAs(t, model.RoleMember)

	rec := env.do(t, http.MethodPost, "/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)

	// The token is dead afterwards.
	rec = env.do(t, http.MethodGet, "/auth/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Logging out again, or without any session, still succeeds.
	rec = env.do(t, http.MethodPost, "/auth/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodPost, "/auth/logout", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatus(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/status", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatusResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, "ok", resp.Status)
}
