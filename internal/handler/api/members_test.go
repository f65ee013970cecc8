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

func TestMembers_ReadRequiresMemberRole(t *testing.T) {
	env := newTestEnv(t)

	// Anonymous: 401.
	rec := env.do(t, http.MethodGet, "/members", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Guest accounts sit below member in the hierarchy: 403.
	guest := env.loginAs(t, model.RoleGuest)
	rec = env.do(t, http.MethodGet, "/members", nil, guest)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	member := env.loginAs(t, model.RoleMember)
	rec = env.do(t, http.MethodGet, "/members", nil, member)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMembers_CreateAndDuplicateNumber(t *testing.T) {
	env := newTestEnv(t)
	admin := env.loginAs(t, model.RoleAdmin)

	req := MemberRequest{
		FullName:         "Jan de Vries",
		MembershipNumber: "NL-001",
		DateJoined:       "2024-03-01",
		MembershipType:   "full",
		Handicap:         4,
	}
	rec := env.do(t, http.MethodPost, "/members", req, admin)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created MemberResponse
	decodeData(t, rec, &created)
	assert.Equal(t, "NL-001", created.MembershipNumber)
	assert.Equal(t, int64(4), created.Handicap)

	// Same number again: 400 with a field detail, not a 500.
	req.FullName = "Piet Bakker"
	rec = env.do(t, http.MethodPost, "/members", req, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "membership_number")
}

func TestMembers_ClubNameResolved(t *testing.T) {
	env := newTestEnv(t)
	admin := env.loginAs(t, model.RoleAdmin)

	rec := env.do(t, http.MethodPost, "/clubs", ClubRequest{Name: "Zeist CC"}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)
	var club ClubResponse
	decodeData(t, rec, &club)

	rec = env.do(t, http.MethodPost, "/members", MemberRequest{
		FullName:         "Anna Visser",
		MembershipNumber: "NL-002",
		ClubID:           &club.ID,
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)
	var member MemberResponse
	decodeData(t, rec, &member)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/members/%d", member.ID), nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched MemberResponse
	decodeData(t, rec, &fetched)
	assert.Equal(t, "Zeist CC", fetched.ClubName)

	// Deleting the club detaches the member instead of deleting it.
	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/clubs/%d", club.ID), nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/members/%d", member.ID), nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	// Fresh struct: the omitempty club fields are absent from this response
	// and would otherwise keep their previously decoded values.
	fetched = MemberResponse{}
	decodeData(t, rec, &fetched)
	assert.Nil(t, fetched.ClubID)
	assert.Empty(t, fetched.ClubName)
}

func TestMembers_Validation(t *testing.T) {
	env := newTestEnv(t)
	admin := env.loginAs(t, model.RoleAdmin)

	rec := env.do(t, http.MethodPost, "/members", MemberRequest{FullName: "No Number"}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/members", MemberRequest{
		FullName:         "Bad Date",
		MembershipNumber: "NL-003",
		DateJoined:       "onzin",
	}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "date_joined")
}
