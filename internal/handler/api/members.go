// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/croquetbond/portal/internal/store"
	"github.com/croquetbond/portal/internal/util"
)

// MemberResponse represents a member in API responses.
type MemberResponse struct {
	ID               int64     `json:"id"`
	FullName         string    `json:"full_name"`
	ClubID           *int64    `json:"club_id,omitempty"`
	ClubName         string    `json:"club_name,omitempty"`
	MembershipNumber string    `json:"membership_number"`
	DateJoined       time.Time `json:"date_joined"`
	MembershipType   string    `json:"membership_type"`
	Handicap         int64     `json:"handicap"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// MemberRequest is the request body for creating or updating a member.
type MemberRequest struct {
	FullName         string `json:"full_name"`
	ClubID           *int64 `json:"club_id,omitempty"`
	MembershipNumber string `json:"membership_number"`
	DateJoined       string `json:"date_joined"`
	MembershipType   string `json:"membership_type"`
	Handicap         int64  `json:"handicap"`
}

func storeMemberToResponse(m store.Member) MemberResponse {
	return MemberResponse{
		ID:               m.ID,
		FullName:         m.FullName,
		ClubID:           util.Int64PtrFromNull(m.ClubID),
		MembershipNumber: m.MembershipNumber,
		DateJoined:       m.DateJoined,
		MembershipType:   m.MembershipType,
		Handicap:         m.Handicap,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// parseMemberRequest validates the body and resolves the joined date.
// Returns false with the response written on any problem.
func (h *Handler) parseMemberRequest(w http.ResponseWriter, req *MemberRequest) (time.Time, bool) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.MembershipNumber = strings.TrimSpace(req.MembershipNumber)

	details := map[string]string{}
	if req.FullName == "" {
		details["full_name"] = "Full name is required"
	}
	if req.MembershipNumber == "" {
		details["membership_number"] = "Membership number is required"
	}
	if len(details) > 0 {
		WriteBadRequest(w, "Missing required member fields", details)
		return time.Time{}, false
	}

	if req.MembershipType == "" {
		req.MembershipType = "full"
	}

	dateJoined := time.Now().UTC()
	if req.DateJoined != "" {
		parsed, err := parseDate(req.DateJoined)
		if err != nil {
			WriteBadRequest(w, "Invalid date_joined", map[string]string{"date_joined": "Use RFC 3339 or YYYY-MM-DD"})
			return time.Time{}, false
		}
		dateJoined = parsed
	}
	return dateJoined, true
}

// parseDate accepts RFC 3339 timestamps or bare dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// ListMembers handles GET /api/members. Requires a member session.
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.queries.ListMembersWithClub(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list members")
		return
	}

	responses := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		resp := storeMemberToResponse(m.Member)
		if m.ClubName.Valid {
			resp.ClubName = m.ClubName.String
		}
		responses = append(responses, resp)
	}
	WriteSuccess(w, responses, &Meta{Total: int64(len(responses))})
}

// GetMember handles GET /api/members/{id}.
func (h *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	member, ok := requireEntityByID(w, r, "member", func(id int64) (store.MemberWithClub, error) {
		return h.queries.GetMemberWithClub(r.Context(), id)
	})
	if !ok {
		return
	}

	resp := storeMemberToResponse(member.Member)
	if member.ClubName.Valid {
		resp.ClubName = member.ClubName.String
	}
	WriteSuccess(w, resp, nil)
}

// CreateMember handles POST /api/members. Admin only.
func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req MemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	dateJoined, ok := h.parseMemberRequest(w, &req)
	if !ok {
		return
	}

	now := time.Now().UTC()
	member, err := h.queries.CreateMember(r.Context(), store.CreateMemberParams{
		FullName:         req.FullName,
		ClubID:           util.NullInt64FromPtr(req.ClubID),
		MembershipNumber: req.MembershipNumber,
		DateJoined:       dateJoined,
		MembershipType:   req.MembershipType,
		Handicap:         req.Handicap,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		if isUniqueViolation(err) {
			WriteBadRequest(w, "Membership number already in use",
				map[string]string{"membership_number": "Must be unique"})
			return
		}
		WriteInternalError(w, "Failed to create member")
		return
	}
	WriteCreated(w, storeMemberToResponse(member))
}

// UpdateMember handles PUT /api/members/{id}. Admin only.
func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "member", func(id int64) (store.Member, error) {
		return h.queries.GetMemberByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req MemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	dateJoined, ok := h.parseMemberRequest(w, &req)
	if !ok {
		return
	}

	member, err := h.queries.UpdateMember(r.Context(), store.UpdateMemberParams{
		FullName:         req.FullName,
		ClubID:           util.NullInt64FromPtr(req.ClubID),
		MembershipNumber: req.MembershipNumber,
		DateJoined:       dateJoined,
		MembershipType:   req.MembershipType,
		Handicap:         req.Handicap,
		UpdatedAt:        time.Now().UTC(),
		ID:               existing.ID,
	})
	if err != nil {
		if isUniqueViolation(err) {
			WriteBadRequest(w, "Membership number already in use",
				map[string]string{"membership_number": "Must be unique"})
			return
		}
		WriteInternalError(w, "Failed to update member")
		return
	}
	WriteSuccess(w, storeMemberToResponse(member), nil)
}

// DeleteMember handles DELETE /api/members/{id}. Admin only. Rankings
// for the member cascade away with the row.
func (h *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	member, ok := requireEntityByID(w, r, "member", func(id int64) (store.Member, error) {
		return h.queries.GetMemberByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteMember(r.Context(), member.ID); err != nil {
		WriteInternalError(w, "Failed to delete member")
		return
	}
	WriteSuccess(w, map[string]bool{"ok": true}, nil)
}
