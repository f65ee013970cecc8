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

func TestTournaments_CreateDefaults(t *testing.T) {
	env := newTestEnv(t)
	admin := env.loginAs(t, model.RoleAdmin)

	rec := env.do(t, http.MethodPost, "/tournaments", TournamentRequest{
		Name: "NK Croquet",
		Date: "2026-09-12",
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created TournamentResponse
	decodeData(t, rec, &created)
	assert.Equal(t, "association", created.TournamentType)
	assert.Equal(t, TournamentStatusUpcoming, created.Status)
	assert.Nil(t, created.RegistrationDeadline)
	assert.Equal(t, 2026, created.Date.Year())
}

func TestTournaments_StatusValidation(t *testing.T) {
	env := newTestEnv(t)
	admin := env.loginAs(t, model.RoleAdmin)

	rec := env.do(t, http.MethodPost, "/tournaments", TournamentRequest{
		Name:   "NK Croquet",
		Date:   "2026-09-12",
		Status: "postponed",
	}, admin)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "status")

	for _, status := range []string{
		TournamentStatusUpcoming, TournamentStatusOpen, TournamentStatusFull,
		TournamentStatusCompleted, TournamentStatusCancelled,
	} {
		rec = env.do(t, http.MethodPost, "/tournaments", TournamentRequest{
			Name:   "Toernooi " + status,
			Date:   "2026-09-12",
			Status: status,
		}, admin)
		assert.Equal(t, http.StatusCreated, rec.Code, "status %q", status)
	}
}

func TestTournaments_DateParsing(t *testing.T) {
	env := newTestEnv(t)
	admin := env.loginAs(t, model.RoleAdmin)

	deadline := "2026-08-30"
	rec := env.do(t, http.MethodPost, "/tournaments", TournamentRequest{
		Name:                 "Open Kampioenschap",
		Date:                 "2026-09-12T10:00:00Z",
		RegistrationDeadline: &deadline,
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created TournamentResponse
	decodeData(t, rec, &created)
	require.NotNil(t, created.RegistrationDeadline)
	assert.Equal(t, 30, created.RegistrationDeadline.Day())

	rec = env.do(t, http.MethodPost, "/tournaments", TournamentRequest{
		Name: "Kapot", Date: "12-09-2026",
	}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	bad := "soon"
	rec = env.do(t, http.MethodPost, "/tournaments", TournamentRequest{
		Name: "Kapot", Date: "2026-09-12", RegistrationDeadline: &bad,
	}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "registration_deadline")
}

func TestTournaments_HostClubAndUpdate(t *testing.T) {
	env := newTestEnv(t)
	admin := env.loginAs(t, model.RoleAdmin)

	rec := env.do(t, http.MethodPost, "/clubs", ClubRequest{Name: "Gastheerclub"}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)
	var club ClubResponse
	decodeData(t, rec, &club)

	rec = env.do(t, http.MethodPost, "/tournaments", TournamentRequest{
		Name:       "Clubtoernooi",
		Date:       "2026-06-01",
		HostClubID: &club.ID,
		EntryFee:   12.50,
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created TournamentResponse
	decodeData(t, rec, &created)
	require.NotNil(t, created.HostClubID)
	assert.Equal(t, club.ID, *created.HostClubID)
	assert.Equal(t, 12.50, created.EntryFee)

	rec = env.do(t, http.MethodPut, fmt.Sprintf("/tournaments/%d", created.ID),
		TournamentRequest{
			Name:   "Clubtoernooi",
			Date:   "2026-06-01",
			Status: TournamentStatusCancelled,
		}, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated TournamentResponse
	decodeData(t, rec, &updated)
	assert.Equal(t, TournamentStatusCancelled, updated.Status)
	assert.Nil(t, updated.HostClubID)
}

func TestTournaments_WritesNeedAdmin(t *testing.T) {
	env := newTestEnv(t)
	req := TournamentRequest{Name: "NK", Date: "2026-09-12"}

	rec := env.do(t, http.MethodPost, "/tournaments", req, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	member := env.loginAs(t, model.RoleMember)
	rec = env.do(t, http.MethodPost, "/tournaments", req, member)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Reads are public.
	rec = env.do(t, http.MethodGet, "/tournaments", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
