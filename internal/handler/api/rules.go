// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/croquetbond/portal/internal/store"
)

// RuleResponse represents one subsection of the association laws.
type RuleResponse struct {
	ID              int64     `json:"id"`
	PartOrder       int64     `json:"part_order"`
	PartTitle       string    `json:"part_title"`
	SectionOrder    int64     `json:"section_order"`
	SectionTitle    string    `json:"section_title"`
	SubsectionOrder int64     `json:"subsection_order"`
	Content         string    `json:"content"`
	Language        string    `json:"language"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RuleRequest is the request body for creating or updating a rule.
type RuleRequest struct {
	PartOrder       int64  `json:"part_order"`
	PartTitle       string `json:"part_title"`
	SectionOrder    int64  `json:"section_order"`
	SectionTitle    string `json:"section_title"`
	SubsectionOrder int64  `json:"subsection_order"`
	Content         string `json:"content"`
	Language        string `json:"language"`
}

func storeRuleToResponse(r store.Rule) RuleResponse {
	return RuleResponse{
		ID:              r.ID,
		PartOrder:       r.PartOrder,
		PartTitle:       r.PartTitle,
		SectionOrder:    r.SectionOrder,
		SectionTitle:    r.SectionTitle,
		SubsectionOrder: r.SubsectionOrder,
		Content:         r.Content,
		Language:        r.Language,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func (req *RuleRequest) validate(w http.ResponseWriter) bool {
	if strings.TrimSpace(req.Content) == "" {
		WriteBadRequest(w, "Rule content is required", map[string]string{"content": "Content is required"})
		return false
	}
	if req.Language == "" {
		req.Language = "nl"
	}
	return true
}

// ListRules handles GET /api/rules. Public; returned in reading order.
func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.queries.ListRules(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list rules")
		return
	}

	responses := make([]RuleResponse, 0, len(rules))
	for _, rule := range rules {
		responses = append(responses, storeRuleToResponse(rule))
	}
	WriteSuccess(w, responses, &Meta{Total: int64(len(responses))})
}

// GetRule handles GET /api/rules/{id}.
func (h *Handler) GetRule(w http.ResponseWriter, r *http.Request) {
	rule, ok := requireEntityByID(w, r, "rule", func(id int64) (store.Rule, error) {
		return h.queries.GetRuleByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, storeRuleToResponse(rule), nil)
}

// CreateRule handles POST /api/rules. Admin or rules committee.
func (h *Handler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var req RuleRequest
	if !decodeJSON(w, r, &req) || !req.validate(w) {
		return
	}

	now := time.Now().UTC()
	rule, err := h.queries.CreateRule(r.Context(), store.CreateRuleParams{
		PartOrder:       req.PartOrder,
		PartTitle:       req.PartTitle,
		SectionOrder:    req.SectionOrder,
		SectionTitle:    req.SectionTitle,
		SubsectionOrder: req.SubsectionOrder,
		Content:         req.Content,
		Language:        req.Language,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create rule")
		return
	}
	WriteCreated(w, storeRuleToResponse(rule))
}

// UpdateRule handles PUT /api/rules/{id}. Admin or rules committee.
func (h *Handler) UpdateRule(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "rule", func(id int64) (store.Rule, error) {
		return h.queries.GetRuleByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req RuleRequest
	if !decodeJSON(w, r, &req) || !req.validate(w) {
		return
	}

	rule, err := h.queries.UpdateRule(r.Context(), store.UpdateRuleParams{
		PartOrder:       req.PartOrder,
		PartTitle:       req.PartTitle,
		SectionOrder:    req.SectionOrder,
		SectionTitle:    req.SectionTitle,
		SubsectionOrder: req.SubsectionOrder,
		Content:         req.Content,
		Language:        req.Language,
		UpdatedAt:       time.Now().UTC(),
		ID:              existing.ID,
	})
	if err != nil {
		WriteInternalError(w, "Failed to update rule")
		return
	}
	WriteSuccess(w, storeRuleToResponse(rule), nil)
}

// DeleteRule handles DELETE /api/rules/{id}. Admin or rules committee.
func (h *Handler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	rule, ok := requireEntityByID(w, r, "rule", func(id int64) (store.Rule, error) {
		return h.queries.GetRuleByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteRule(r.Context(), rule.ID); err != nil {
		WriteInternalError(w, "Failed to delete rule")
		return
	}
	WriteSuccess(w, map[string]bool{"ok": true}, nil)
}
