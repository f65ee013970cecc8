// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/croquetbond/portal/internal/store"
)

// ClubResponse represents a club in API responses.
type ClubResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	MemberCount int64     `json:"member_count,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClubRequest is the request body for creating or updating a club.
type ClubRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

func storeClubToResponse(c store.Club) ClubResponse {
	return ClubResponse{
		ID:        c.ID,
		Name:      c.Name,
		Location:  c.Location,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (req *ClubRequest) validate(w http.ResponseWriter) bool {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		WriteBadRequest(w, "Club name is required", map[string]string{"name": "Name is required"})
		return false
	}
	return true
}

// ListClubs handles GET /api/clubs. Public; includes member counts.
func (h *Handler) ListClubs(w http.ResponseWriter, r *http.Request) {
	clubs, err := h.queries.ListClubsWithMemberCount(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list clubs")
		return
	}

	responses := make([]ClubResponse, 0, len(clubs))
	for _, c := range clubs {
		resp := storeClubToResponse(c.Club)
		resp.MemberCount = c.MemberCount
		responses = append(responses, resp)
	}
	WriteSuccess(w, responses, &Meta{Total: int64(len(responses))})
}

// GetClub handles GET /api/clubs/{id}.
func (h *Handler) GetClub(w http.ResponseWriter, r *http.Request) {
	club, ok := requireEntityByID(w, r, "club", func(id int64) (store.Club, error) {
		return h.queries.GetClubByID(r.Context(), id)
	})
	if !ok {
		return
	}

	resp := storeClubToResponse(club)
	if count, err := h.queries.CountClubMembers(r.Context(), club.ID); err == nil {
		resp.MemberCount = count
	}
	WriteSuccess(w, resp, nil)
}

// CreateClub handles POST /api/clubs. Admin only.
func (h *Handler) CreateClub(w http.ResponseWriter, r *http.Request) {
	var req ClubRequest
	if !decodeJSON(w, r, &req) || !req.validate(w) {
		return
	}

	now := time.Now().UTC()
	club, err := h.queries.CreateClub(r.Context(), store.CreateClubParams{
		Name:      req.Name,
		Location:  strings.TrimSpace(req.Location),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create club")
		return
	}
	WriteCreated(w, storeClubToResponse(club))
}

// UpdateClub handles PUT /api/clubs/{id}. Admin only.
func (h *Handler) UpdateClub(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "club", func(id int64) (store.Club, error) {
		return h.queries.GetClubByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req ClubRequest
	if !decodeJSON(w, r, &req) || !req.validate(w) {
		return
	}

	club, err := h.queries.UpdateClub(r.Context(), store.UpdateClubParams{
		Name:      req.Name,
		Location:  strings.TrimSpace(req.Location),
		UpdatedAt: time.Now().UTC(),
		ID:        existing.ID,
	})
	if err != nil {
		WriteInternalError(w, "Failed to update club")
		return
	}
	WriteSuccess(w, storeClubToResponse(club), nil)
}

// DeleteClub handles DELETE /api/clubs/{id}. Admin only. Members of the
// club keep existing with their club reference cleared.
func (h *Handler) DeleteClub(w http.ResponseWriter, r *http.Request) {
	club, ok := requireEntityByID(w, r, "club", func(id int64) (store.Club, error) {
		return h.queries.GetClubByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteClub(r.Context(), club.ID); err != nil {
		WriteInternalError(w, "Failed to delete club")
		return
	}
	WriteSuccess(w, map[string]bool{"ok": true}, nil)
}
