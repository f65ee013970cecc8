// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and request context handling.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/croquetbond/portal/internal/model"
	"github.com/croquetbond/portal/internal/service"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyPrincipal is the context key for the authenticated principal.
const ContextKeyPrincipal ContextKey = "principal"

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session"

// NewSessionCookie builds the session cookie for a freshly issued token.
func NewSessionCookie(token string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearedSessionCookie builds an expired session cookie that instructs
// the browser to drop the token.
func ClearedSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// apiError is the JSON error envelope written by middleware rejections.
// It matches the shape the API handlers use.
type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	var body apiError
	body.Error.Code = code
	body.Error.Message = message
	_ = json.NewEncoder(w).Encode(body)
}

// LoadPrincipal creates middleware that resolves the session cookie into
// a Principal and stores it in the request context. Requests without a
// valid session pass through unauthenticated; a dead token additionally
// gets its cookie cleared so the browser stops sending it.
func LoadPrincipal(svc *service.AuthService, secureCookies bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			session, err := svc.GetSession(r.Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, service.ErrNoSession) {
					http.SetCookie(w, ClearedSessionCookie(secureCookies))
					next.ServeHTTP(w, r)
					return
				}
				slog.Error("failed to resolve session", "error", err)
				writeError(w, http.StatusInternalServerError, "internal_error", "Failed to resolve session")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyPrincipal, session.Principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth creates middleware that rejects unauthenticated requests
// with 401. It must run after LoadPrincipal.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetPrincipal(r) == nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole creates middleware that rejects requests whose principal
// sits below the given role in the hierarchy. Unauthenticated requests
// get 401, insufficient roles get 403. It must run after LoadPrincipal.
func RequireRole(minimum model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := GetPrincipal(r)
			if principal == nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
				return
			}
			if principal.Role.Level() < minimum.Level() {
				writeError(w, http.StatusForbidden, "forbidden", "Insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyRole creates middleware that admits only principals holding
// one of the named roles exactly. Used where the hierarchy does not
// apply, such as rules editing by the rules committee.
func RequireAnyRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := GetPrincipal(r)
			if principal == nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
				return
			}
			for _, role := range roles {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "forbidden", "Insufficient role")
		})
	}
}

// GetPrincipal retrieves the authenticated principal from the request
// context. Returns nil if the request is unauthenticated.
func GetPrincipal(r *http.Request) *service.Principal {
	principal, ok := r.Context().Value(ContextKeyPrincipal).(service.Principal)
	if !ok {
		return nil
	}
	return &principal
}
