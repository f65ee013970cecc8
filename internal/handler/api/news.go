// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/croquetbond/portal/internal/store"
	"github.com/croquetbond/portal/internal/util"
)

// newsPolicy sanitizes submitted news content. UGC allows basic
// formatting but strips scripts and event handlers.
var newsPolicy = bluemonday.UGCPolicy()

// NewsResponse represents a news item in API responses.
type NewsResponse struct {
	ID          int64     `json:"id"`
	GUID        string    `json:"guid"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	Featured    bool      `json:"featured"`
	PublishDate time.Time `json:"publish_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewsRequest is the request body for creating or updating a news item.
type NewsRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug,omitempty"`
	Content     string `json:"content"`
	Author      string `json:"author"`
	Category    string `json:"category"`
	Featured    bool   `json:"featured"`
	PublishDate string `json:"publish_date,omitempty"`
}

func storeNewsToResponse(n store.NewsItem) NewsResponse {
	return NewsResponse{
		ID:          n.ID,
		GUID:        n.GUID,
		Title:       n.Title,
		Slug:        n.Slug,
		Content:     n.Content,
		Author:      n.Author,
		Category:    n.Category,
		Featured:    n.Featured,
		PublishDate: n.PublishDate,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

// parseNewsRequest validates the body, derives the slug when absent,
// sanitizes the content, and resolves the publish date.
func parseNewsRequest(w http.ResponseWriter, req *NewsRequest) (time.Time, bool) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		WriteBadRequest(w, "News title is required", map[string]string{"title": "Title is required"})
		return time.Time{}, false
	}

	if req.Slug == "" {
		req.Slug = util.Slugify(req.Title)
	} else if !util.IsValidSlug(req.Slug) {
		WriteBadRequest(w, "Invalid slug", map[string]string{"slug": "Lowercase letters, digits, and hyphens only"})
		return time.Time{}, false
	}

	req.Content = newsPolicy.Sanitize(req.Content)

	publishDate := time.Now().UTC()
	if req.PublishDate != "" {
		parsed, err := parseDate(req.PublishDate)
		if err != nil {
			WriteBadRequest(w, "Invalid publish_date", map[string]string{"publish_date": "Use RFC 3339 or YYYY-MM-DD"})
			return time.Time{}, false
		}
		publishDate = parsed
	}
	return publishDate, true
}

// ListNews handles GET /api/news. Public; newest first.
func (h *Handler) ListNews(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.ListNewsItems(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list news")
		return
	}

	responses := make([]NewsResponse, 0, len(items))
	for _, n := range items {
		responses = append(responses, storeNewsToResponse(n))
	}
	WriteSuccess(w, responses, &Meta{Total: int64(len(responses))})
}

// GetNewsItem handles GET /api/news/{id}.
func (h *Handler) GetNewsItem(w http.ResponseWriter, r *http.Request) {
	item, ok := requireEntityByID(w, r, "news item", func(id int64) (store.NewsItem, error) {
		return h.queries.GetNewsItemByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, storeNewsToResponse(item), nil)
}

// CreateNewsItem handles POST /api/news. Admin only. Each item gets a
// stable GUID for feed consumers.
func (h *Handler) CreateNewsItem(w http.ResponseWriter, r *http.Request) {
	var req NewsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	publishDate, ok := parseNewsRequest(w, &req)
	if !ok {
		return
	}

	now := time.Now().UTC()
	item, err := h.queries.CreateNewsItem(r.Context(), store.CreateNewsItemParams{
		GUID:        uuid.NewString(),
		Title:       req.Title,
		Slug:        req.Slug,
		Content:     req.Content,
		Author:      req.Author,
		Category:    req.Category,
		Featured:    req.Featured,
		PublishDate: publishDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		if isUniqueViolation(err) {
			WriteBadRequest(w, "Slug already in use", map[string]string{"slug": "Must be unique"})
			return
		}
		WriteInternalError(w, "Failed to create news item")
		return
	}
	WriteCreated(w, storeNewsToResponse(item))
}

// UpdateNewsItem handles PUT /api/news/{id}. Admin only. The GUID never
// changes after creation.
func (h *Handler) UpdateNewsItem(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "news item", func(id int64) (store.NewsItem, error) {
		return h.queries.GetNewsItemByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req NewsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	publishDate, ok := parseNewsRequest(w, &req)
	if !ok {
		return
	}

	item, err := h.queries.UpdateNewsItem(r.Context(), store.UpdateNewsItemParams{
		Title:       req.Title,
		Slug:        req.Slug,
		Content:     req.Content,
		Author:      req.Author,
		Category:    req.Category,
		Featured:    req.Featured,
		PublishDate: publishDate,
		UpdatedAt:   time.Now().UTC(),
		ID:          existing.ID,
	})
	if err != nil {
		if isUniqueViolation(err) {
			WriteBadRequest(w, "Slug already in use", map[string]string{"slug": "Must be unique"})
			return
		}
		WriteInternalError(w, "Failed to update news item")
		return
	}
	WriteSuccess(w, storeNewsToResponse(item), nil)
}

// DeleteNewsItem handles DELETE /api/news/{id}. Admin only.
func (h *Handler) DeleteNewsItem(w http.ResponseWriter, r *http.Request) {
	item, ok := requireEntityByID(w, r, "news item", func(id int64) (store.NewsItem, error) {
		return h.queries.GetNewsItemByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteNewsItem(r.Context(), item.ID); err != nil {
		WriteInternalError(w, "Failed to delete news item")
		return
	}
	WriteSuccess(w, map[string]bool{"ok": true}, nil)
}
