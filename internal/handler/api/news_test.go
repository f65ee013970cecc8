// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/croquetbond/portal/internal/model"
)

func TestNews_CreateDerivesSlugAndGUID(t *testing.T) {
	env := newTestEnv(t)
	admin := env.loginAs(t, model.RoleAdmin)

	rec := env.do(t, http.MethodPost, "/news", NewsRequest{
		Title:   "Nationale Kampioenschappen 2026",
		Content: "<p>Inschrijving geopend.</p>",
		Author:  "Bestuur",
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)

	var item NewsResponse
	decodeData(t, rec, &item)
	assert.Equal(t, "nationale-kampioenschappen-2026", item.Slug)
	assert.NotEmpty(t, item.GUID)
}

func TestNews_ContentSanitized(t *testing.T) {
	env := newTestEnv(t)
	admin := env.loginAs(t, model.RoleAdmin)

	rec := env.do(t, http.MethodPost, "/news", NewsRequest{
		Title:   "Opgelet",
		Content: `<p>Tekst</p><script>alert("x")</script>`,
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)

	var item NewsResponse
	decodeData(t, rec, &item)
	assert.Contains(t, item.Content, "<p>Tekst</p>")
	assert.NotContains(t, item.Content, "<script>")
}

func TestNews_GUIDImmutableOnUpdate(t *testing.T) {
	env := newTestEnv(t)
	admin := env.loginAs(t, model.RoleAdmin)

	rec := env.do(t, http.MethodPost, "/news", NewsRequest{Title: "Eerste"}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created NewsResponse
	decodeData(t, rec, &created)

	rec = env.do(t, http.MethodPut, fmt.Sprintf("/news/%d", created.ID), NewsRequest{
		Title: "Eerste, herzien",
		Slug:  created.Slug,
	}, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated NewsResponse
	decodeData(t, rec, &updated)
	assert.Equal(t, created.GUID, updated.GUID)
	assert.Equal(t, "Eerste, herzien", updated.Title)
}

func TestNews_DuplicateSlug(t *testing.T) {
	env := newTestEnv(t)
	admin := env.loginAs(t, model.RoleAdmin)

	rec := env.do(t, http.MethodPost, "/news", NewsRequest{Title: "Zelfde Titel"}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/news", NewsRequest{Title: "Zelfde Titel"}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "slug")
}

func TestNews_PublicRead(t *testing.T) {
	env := newTestEnv(t)
	admin := env.loginAs(t, model.RoleAdmin)

	rec := env.do(t, http.MethodPost, "/news", NewsRequest{Title: "Publiek bericht"}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/news", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []NewsResponse
	decodeData(t, rec, &items)
	assert.Len(t, items, 1)

	// Writes stay closed to non-admins.
	member := env.loginAs(t, model.RoleMember)
	rec = env.do(t, http.MethodPost, "/news", NewsRequest{Title: "Nee"}, member)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
