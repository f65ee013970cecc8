// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/croquetbond/portal/internal/auth"
	"github.com/croquetbond/portal/internal/middleware"
	"github.com/croquetbond/portal/internal/model"
	"github.com/croquetbond/portal/internal/store"
)

// UserResponse represents a portal account in API responses. The
// password hash never appears here.
type UserResponse struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// CreateUserRequest is the request body for creating an account.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// UpdateUserRoleRequest is the request body for changing an account role.
type UpdateUserRoleRequest struct {
	Role string `json:"role"`
}

func storeUserToResponse(u store.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
	if u.LastLoginAt.Valid {
		t := u.LastLoginAt.Time
		resp.LastLoginAt = &t
	}
	return resp
}

// ListUsers handles GET /api/users. Admin only.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.queries.ListUsers(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list users")
		return
	}

	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, storeUserToResponse(u))
	}
	WriteSuccess(w, responses, &Meta{Total: int64(len(responses))})
}

// CreateUser handles POST /api/users. Admin only.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	details := map[string]string{}
	if req.Email == "" {
		details["email"] = "Email is required"
	}
	if len(req.Password) < 8 {
		details["password"] = "Password must be at least 8 characters"
	}
	role, ok := model.ParseRole(req.Role)
	if !ok {
		details["role"] = "Unknown role"
	}
	if len(details) > 0 {
		WriteBadRequest(w, "Invalid account fields", details)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		WriteInternalError(w, "Failed to create account")
		return
	}

	now := time.Now().UTC()
	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         string(role),
		Name:         strings.TrimSpace(req.Name),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if isUniqueViolation(err) {
			WriteBadRequest(w, "Email already in use", map[string]string{"email": "Must be unique"})
			return
		}
		WriteInternalError(w, "Failed to create account")
		return
	}

	if principal := middleware.GetPrincipal(r); principal != nil {
		h.logUserEvent(r, "user account created", principal.ID, map[string]any{"created_user_id": user.ID})
	}
	WriteCreated(w, storeUserToResponse(user))
}

// UpdateUserRole handles PUT /api/users/{id}/role. Admin only. Admins
// cannot demote themselves, so at least one admin always remains able
// to manage roles.
func (h *Handler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	user, ok := requireEntityByID(w, r, "user", func(id int64) (store.User, error) {
		return h.queries.GetUserByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req UpdateUserRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	role, ok := model.ParseRole(req.Role)
	if !ok {
		WriteBadRequest(w, "Unknown role", map[string]string{"role": "Unknown role"})
		return
	}

	principal := middleware.GetPrincipal(r)
	if principal != nil && principal.ID == user.ID && role != model.RoleAdmin {
		WriteBadRequest(w, "Admins cannot change their own role", nil)
		return
	}

	err := h.queries.UpdateUserRole(r.Context(), store.UpdateUserRoleParams{
		Role:      string(role),
		UpdatedAt: time.Now().UTC(),
		ID:        user.ID,
	})
	if err != nil {
		WriteInternalError(w, "Failed to update role")
		return
	}

	if principal != nil {
		h.logUserEvent(r, "user role changed", principal.ID, map[string]any{
			"target_user_id": user.ID,
			"new_role":       string(role),
		})
	}

	updated, err := h.queries.GetUserByID(r.Context(), user.ID)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve user")
		return
	}
	WriteSuccess(w, storeUserToResponse(updated), nil)
}

func (h *Handler) logUserEvent(r *http.Request, message string, actorID int64, metadata map[string]any) {
	if h.events == nil {
		return
	}
	_ = h.events.LogUserEvent(r.Context(), model.EventLevelInfo, message, &actorID, clientIP(r), metadata)
}
