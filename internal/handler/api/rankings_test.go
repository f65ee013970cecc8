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

func createRankedMember(t *testing.T, env *testEnv, admin *http.Cookie, name, number string) int64 {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/members", MemberRequest{
		FullName:         name,
		MembershipNumber: number,
		DateJoined:       "2024-03-01",
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)
	var member MemberResponse
	decodeData(t, rec, &member)
	return member.ID
}

func TestRankings_CreateAndSeasonFilter(t *testing.T) {
	env := newTestEnv(t)
	admin := env.loginAs(t, model.RoleAdmin)

	jan := createRankedMember(t, env, admin, "Jan de Vries", "CB-001")
	els := createRankedMember(t, env, admin, "Els Bakker", "CB-002")

	for _, r := range []RankingRequest{
		{MemberID: jan, Season: "2025", Points: 80, CurrentPosition: 1},
		{MemberID: els, Season: "2025", Points: 64, CurrentPosition: 2},
		{MemberID: jan, Season: "2026", Points: 12, CurrentPosition: 1},
	} {
		rec := env.do(t, http.MethodPost, "/rankings", r, admin)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := env.do(t, http.MethodGet, "/rankings?season=2025", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var standings []RankingResponse
	decodeData(t, rec, &standings)
	require.Len(t, standings, 2)
	assert.Equal(t, "Jan de Vries", standings[0].MemberName)
	assert.Equal(t, int64(1), standings[0].CurrentPosition)

	rec = env.do(t, http.MethodGet, "/rankings", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &standings)
	assert.Len(t, standings, 3)
}

func TestRankings_OnePerMemberPerSeason(t *testing.T) {
	env := newTestEnv(t)
	admin := env.loginAs(t, model.RoleAdmin)
	jan := createRankedMember(t, env, admin, "Jan de Vries", "CB-001")

	req := RankingRequest{MemberID: jan, Season: "2026", Points: 10}
	rec := env.do(t, http.MethodPost, "/rankings", req, admin)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/rankings", req, admin)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "season")
}

func TestRankings_Validation(t *testing.T) {
	env := newTestEnv(t)
	admin := env.loginAs(t, model.RoleAdmin)

	rec := env.do(t, http.MethodPost, "/rankings", RankingRequest{Season: "2026"}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/rankings", RankingRequest{MemberID: 1}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRankings_UpdateKeepsBinding(t *testing.T) {
	env := newTestEnv(t)
	admin := env.loginAs(t, model.RoleAdmin)
	jan := createRankedMember(t, env, admin, "Jan de Vries", "CB-001")

	rec := env.do(t, http.MethodPost, "/rankings",
		RankingRequest{MemberID: jan, Season: "2026", Points: 10, CurrentPosition: 3}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created RankingResponse
	decodeData(t, rec, &created)

	rec = env.do(t, http.MethodPut, fmt.Sprintf("/rankings/%d", created.ID),
		RankingRequest{Points: 24, Wins: 2, CurrentPosition: 1, PreviousPosition: 3}, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated RankingResponse
	decodeData(t, rec, &updated)
	assert.Equal(t, int64(24), updated.Points)
	assert.Equal(t, int64(1), updated.CurrentPosition)
	assert.Equal(t, jan, updated.MemberID)
	assert.Equal(t, "2026", updated.Season)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/rankings/%d", created.ID), nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRankings_WritesNeedAdmin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/rankings", RankingRequest{MemberID: 1, Season: "2026"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	member := env.loginAs(t, model.RoleMember)
	rec = env.do(t, http.MethodPost, "/rankings", RankingRequest{MemberID: 1, Season: "2026"}, member)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/rankings", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
