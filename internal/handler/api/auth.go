// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/croquetbond/portal/internal/middleware"
	"github.com/croquetbond/portal/internal/model"
	"github.com/croquetbond/portal/internal/service"
)

// LoginRequest is the request body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse wraps the principal for login and me responses.
type SessionResponse struct {
	User service.Principal `json:"user"`
}

// Login handles POST /api/auth/login. On success it sets the session
// cookie and returns the principal. Unknown accounts and wrong
// passwords produce the same 401 response.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		details := map[string]string{}
		if req.Email == "" {
			details["email"] = "Email is required"
		}
		if req.Password == "" {
			details["password"] = "Password is required"
		}
		WriteBadRequest(w, "Email and password are required", details)
		return
	}

	token, principal, err := h.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.logAuthEvent(r, model.EventLevelWarning, "failed login attempt", nil)
			WriteUnauthorized(w, "Invalid email or password")
			return
		}
		slog.Error("login failed", "error", err)
		WriteInternalError(w, "Login failed")
		return
	}

	h.logAuthEvent(r, model.EventLevelInfo, "user logged in", &principal.ID)

	http.SetCookie(w, middleware.NewSessionCookie(token, h.auth.TTL(), h.secureCookies))
	WriteSuccess(w, SessionResponse{User: principal}, nil)
}

// Logout handles POST /api/auth/logout. It revokes the session if one
// exists and clears the cookie either way, so logout is idempotent.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.auth.DeleteSession(r.Context(), cookie.Value); err != nil {
			slog.Error("logout failed", "error", err)
			WriteInternalError(w, "Logout failed")
			return
		}
	}

	if principal := middleware.GetPrincipal(r); principal != nil {
		h.logAuthEvent(r, model.EventLevelInfo, "user logged out", &principal.ID)
	}

	http.SetCookie(w, middleware.ClearedSessionCookie(h.secureCookies))
	WriteSuccess(w, map[string]bool{"ok": true}, nil)
}

// Me handles GET /api/auth/me. Returns the current principal, or 401
// if the request carries no live session.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r)
	if principal == nil {
		WriteUnauthorized(w, "Not authenticated")
		return
	}
	WriteSuccess(w, SessionResponse{User: *principal}, nil)
}

// logAuthEvent records an auth event without failing the request.
func (h *Handler) logAuthEvent(r *http.Request, level, message string, userID *int64) {
	if h.events == nil {
		return
	}
	if err := h.events.LogAuthEvent(r.Context(), level, message, userID, clientIP(r), nil); err != nil {
		slog.Error("failed to record auth event", "error", err)
	}
}

// clientIP extracts the client IP for audit records.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
