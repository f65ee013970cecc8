// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/croquetbond/portal/internal/store"
)

// RankingResponse represents a member's seasonal standing.
type RankingResponse struct {
	ID                int64     `json:"id"`
	MemberID          int64     `json:"member_id"`
	MemberName        string    `json:"member_name,omitempty"`
	Season            string    `json:"season"`
	Points            int64     `json:"points"`
	Wins              int64     `json:"wins"`
	TournamentsPlayed int64     `json:"tournaments_played"`
	CurrentPosition   int64     `json:"current_position"`
	PreviousPosition  int64     `json:"previous_position"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// RankingRequest is the request body for creating or updating a ranking.
type RankingRequest struct {
	MemberID          int64  `json:"member_id"`
	Season            string `json:"season"`
	Points            int64  `json:"points"`
	Wins              int64  `json:"wins"`
	TournamentsPlayed int64  `json:"tournaments_played"`
	CurrentPosition   int64  `json:"current_position"`
	PreviousPosition  int64  `json:"previous_position"`
}

func storeRankingToResponse(rk store.Ranking) RankingResponse {
	return RankingResponse{
		ID:                rk.ID,
		MemberID:          rk.MemberID,
		Season:            rk.Season,
		Points:            rk.Points,
		Wins:              rk.Wins,
		TournamentsPlayed: rk.TournamentsPlayed,
		CurrentPosition:   rk.CurrentPosition,
		PreviousPosition:  rk.PreviousPosition,
		CreatedAt:         rk.CreatedAt,
		UpdatedAt:         rk.UpdatedAt,
	}
}

// ListRankings handles GET /api/rankings. Public. An optional ?season=
// filter narrows to one season; order is newest season, then position.
func (h *Handler) ListRankings(w http.ResponseWriter, r *http.Request) {
	season := r.URL.Query().Get("season")

	rankings, err := h.queries.ListRankingsBySeason(r.Context(), season)
	if err != nil {
		WriteInternalError(w, "Failed to list rankings")
		return
	}

	responses := make([]RankingResponse, 0, len(rankings))
	for _, rk := range rankings {
		resp := storeRankingToResponse(rk.Ranking)
		resp.MemberName = rk.MemberName
		responses = append(responses, resp)
	}
	WriteSuccess(w, responses, &Meta{Total: int64(len(responses))})
}

// CreateRanking handles POST /api/rankings. Admin only. One ranking per
// member per season.
func (h *Handler) CreateRanking(w http.ResponseWriter, r *http.Request) {
	var req RankingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.MemberID == 0 || req.Season == "" {
		WriteBadRequest(w, "Member and season are required", map[string]string{
			"member_id": "Member is required",
			"season":    "Season is required",
		})
		return
	}

	now := time.Now().UTC()
	ranking, err := h.queries.CreateRanking(r.Context(), store.CreateRankingParams{
		MemberID:          req.MemberID,
		Season:            req.Season,
		Points:            req.Points,
		Wins:              req.Wins,
		TournamentsPlayed: req.TournamentsPlayed,
		CurrentPosition:   req.CurrentPosition,
		PreviousPosition:  req.PreviousPosition,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		if isUniqueViolation(err) {
			WriteBadRequest(w, "Ranking already exists for this member and season",
				map[string]string{"season": "One ranking per member per season"})
			return
		}
		WriteInternalError(w, "Failed to create ranking")
		return
	}
	WriteCreated(w, storeRankingToResponse(ranking))
}

// UpdateRanking handles PUT /api/rankings/{id}. Admin only. The member
// and season binding is fixed; only the standing fields change.
func (h *Handler) UpdateRanking(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "ranking", func(id int64) (store.Ranking, error) {
		return h.queries.GetRankingByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req RankingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ranking, err := h.queries.UpdateRanking(r.Context(), store.UpdateRankingParams{
		Points:            req.Points,
		Wins:              req.Wins,
		TournamentsPlayed: req.TournamentsPlayed,
		CurrentPosition:   req.CurrentPosition,
		PreviousPosition:  req.PreviousPosition,
		UpdatedAt:         time.Now().UTC(),
		ID:                existing.ID,
	})
	if err != nil {
		WriteInternalError(w, "Failed to update ranking")
		return
	}
	WriteSuccess(w, storeRankingToResponse(ranking), nil)
}

// DeleteRanking handles DELETE /api/rankings/{id}. Admin only.
func (h *Handler) DeleteRanking(w http.ResponseWriter, r *http.Request) {
	ranking, ok := requireEntityByID(w, r, "ranking", func(id int64) (store.Ranking, error) {
		return h.queries.GetRankingByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteRanking(r.Context(), ranking.ID); err != nil {
		WriteInternalError(w, "Failed to delete ranking")
		return
	}
	WriteSuccess(w, map[string]bool{"ok": true}, nil)
}
