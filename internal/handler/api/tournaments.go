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

// Tournament statuses.
const (
	TournamentStatusUpcoming  = "upcoming"
	TournamentStatusOpen      = "open"
	TournamentStatusFull      = "full"
	TournamentStatusCompleted = "completed"
	TournamentStatusCancelled = "cancelled"
)

// TournamentResponse represents a tournament in API responses.
type TournamentResponse struct {
	ID                   int64      `json:"id"`
	Name                 string     `json:"name"`
	Date                 time.Time  `json:"date"`
	Location             string     `json:"location"`
	HostClubID           *int64     `json:"host_club_id,omitempty"`
	TournamentType       string     `json:"tournament_type"`
	Status               string     `json:"status"`
	MaxParticipants      int64      `json:"max_participants"`
	EntryFee             float64    `json:"entry_fee"`
	HandicapRange        string     `json:"handicap_range"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
	Description          string     `json:"description"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// TournamentRequest is the request body for creating or updating a tournament.
type TournamentRequest struct {
	Name                 string  `json:"name"`
	Date                 string  `json:"date"`
	Location             string  `json:"location"`
	HostClubID           *int64  `json:"host_club_id,omitempty"`
	TournamentType       string  `json:"tournament_type"`
	Status               string  `json:"status"`
	MaxParticipants      int64   `json:"max_participants"`
	EntryFee             float64 `json:"entry_fee"`
	HandicapRange        string  `json:"handicap_range"`
	RegistrationDeadline *string `json:"registration_deadline,omitempty"`
	Description          string  `json:"description"`
}

func storeTournamentToResponse(t store.Tournament) TournamentResponse {
	return TournamentResponse{
		ID:                   t.ID,
		Name:                 t.Name,
		Date:                 t.Date,
		Location:             t.Location,
		HostClubID:           util.Int64PtrFromNull(t.HostClubID),
		TournamentType:       t.TournamentType,
		Status:               t.Status,
		MaxParticipants:      t.MaxParticipants,
		EntryFee:             t.EntryFee,
		HandicapRange:        t.HandicapRange,
		RegistrationDeadline: util.TimePtrFromNull(t.RegistrationDeadline),
		Description:          t.Description,
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
}

func validTournamentStatus(s string) bool {
	switch s {
	case TournamentStatusUpcoming, TournamentStatusOpen, TournamentStatusFull,
		TournamentStatusCompleted, TournamentStatusCancelled:
		return true
	}
	return false
}

// parseTournamentRequest validates the body and resolves its dates.
func parseTournamentRequest(w http.ResponseWriter, req *TournamentRequest) (date time.Time, deadline *time.Time, ok bool) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		WriteBadRequest(w, "Tournament name is required", map[string]string{"name": "Name is required"})
		return time.Time{}, nil, false
	}
	if req.Date == "" {
		WriteBadRequest(w, "Tournament date is required", map[string]string{"date": "Date is required"})
		return time.Time{}, nil, false
	}

	date, err := parseDate(req.Date)
	if err != nil {
		WriteBadRequest(w, "Invalid date", map[string]string{"date": "Use RFC 3339 or YYYY-MM-DD"})
		return time.Time{}, nil, false
	}

	if req.RegistrationDeadline != nil && *req.RegistrationDeadline != "" {
		parsed, err := parseDate(*req.RegistrationDeadline)
		if err != nil {
			WriteBadRequest(w, "Invalid registration_deadline",
				map[string]string{"registration_deadline": "Use RFC 3339 or YYYY-MM-DD"})
			return time.Time{}, nil, false
		}
		deadline = &parsed
	}

	if req.TournamentType == "" {
		req.TournamentType = "association"
	}
	if req.Status == "" {
		req.Status = TournamentStatusUpcoming
	}
	if !validTournamentStatus(req.Status) {
		WriteBadRequest(w, "Invalid tournament status", map[string]string{"status": "Unknown status"})
		return time.Time{}, nil, false
	}

	return date, deadline, true
}

// ListTournaments handles GET /api/tournaments. Public; ordered by date.
func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.queries.ListTournaments(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list tournaments")
		return
	}

	responses := make([]TournamentResponse, 0, len(tournaments))
	for _, t := range tournaments {
		responses = append(responses, storeTournamentToResponse(t))
	}
	WriteSuccess(w, responses, &Meta{Total: int64(len(responses))})
}

// GetTournament handles GET /api/tournaments/{id}.
func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	tournament, ok := requireEntityByID(w, r, "tournament", func(id int64) (store.Tournament, error) {
		return h.queries.GetTournamentByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, storeTournamentToResponse(tournament), nil)
}

// CreateTournament handles POST /api/tournaments. Admin only.
func (h *Handler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	var req TournamentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	date, deadline, ok := parseTournamentRequest(w, &req)
	if !ok {
		return
	}

	now := time.Now().UTC()
	tournament, err := h.queries.CreateTournament(r.Context(), store.CreateTournamentParams{
		Name:                 req.Name,
		Date:                 date,
		Location:             strings.TrimSpace(req.Location),
		HostClubID:           util.NullInt64FromPtr(req.HostClubID),
		TournamentType:       req.TournamentType,
		Status:               req.Status,
		MaxParticipants:      req.MaxParticipants,
		EntryFee:             req.EntryFee,
		HandicapRange:        req.HandicapRange,
		RegistrationDeadline: util.NullTimeFromPtr(deadline),
		Description:          req.Description,
		CreatedAt:            now,
		UpdatedAt:            now,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create tournament")
		return
	}
	WriteCreated(w, storeTournamentToResponse(tournament))
}

// UpdateTournament handles PUT /api/tournaments/{id}. Admin only.
func (h *Handler) UpdateTournament(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "tournament", func(id int64) (store.Tournament, error) {
		return h.queries.GetTournamentByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req TournamentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	date, deadline, ok := parseTournamentRequest(w, &req)
	if !ok {
		return
	}

	tournament, err := h.queries.UpdateTournament(r.Context(), store.UpdateTournamentParams{
		Name:                 req.Name,
		Date:                 date,
		Location:             strings.TrimSpace(req.Location),
		HostClubID:           util.NullInt64FromPtr(req.HostClubID),
		TournamentType:       req.TournamentType,
		Status:               req.Status,
		MaxParticipants:      req.MaxParticipants,
		EntryFee:             req.EntryFee,
		HandicapRange:        req.HandicapRange,
		RegistrationDeadline: util.NullTimeFromPtr(deadline),
		Description:          req.Description,
		UpdatedAt:            time.Now().UTC(),
		ID:                   existing.ID,
	})
	if err != nil {
		WriteInternalError(w, "Failed to update tournament")
		return
	}
	WriteSuccess(w, storeTournamentToResponse(tournament), nil)
}

// DeleteTournament handles DELETE /api/tournaments/{id}. Admin only.
func (h *Handler) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	tournament, ok := requireEntityByID(w, r, "tournament", func(id int64) (store.Tournament, error) {
		return h.queries.GetTournamentByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteTournament(r.Context(), tournament.ID); err != nil {
		WriteInternalError(w, "Failed to delete tournament")
		return
	}
	WriteSuccess(w, map[string]bool{"ok": true}, nil)
}
