// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const tournamentColumns = `id, name, date, location, host_club_id, tournament_type,
	status, max_participants, entry_fee, handicap_range, registration_deadline,
	description, created_at, updated_at`

func scanTournament(row *sql.Row) (Tournament, error) {
	var t Tournament
	err := row.Scan(&t.ID, &t.Name, &t.Date, &t.Location, &t.HostClubID,
		&t.TournamentType, &t.Status, &t.MaxParticipants, &t.EntryFee,
		&t.HandicapRange, &t.RegistrationDeadline, &t.Description,
		&t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// GetTournamentByID looks up a tournament by primary key.
func (q *Queries) GetTournamentByID(ctx context.Context, id int64) (Tournament, error) {
	return scanTournament(q.db.QueryRowContext(ctx,
		`SELECT `+tournamentColumns+` FROM tournaments WHERE id = ?`, id))
}

// ListTournaments returns all tournaments ordered by date, soonest first.
func (q *Queries) ListTournaments(ctx context.Context) ([]Tournament, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+tournamentColumns+` FROM tournaments ORDER BY date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tournaments []Tournament
	for rows.Next() {
		var t Tournament
		if err := rows.Scan(&t.ID, &t.Name, &t.Date, &t.Location, &t.HostClubID,
			&t.TournamentType, &t.Status, &t.MaxParticipants, &t.EntryFee,
			&t.HandicapRange, &t.RegistrationDeadline, &t.Description,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

// CreateTournamentParams are the inputs for CreateTournament.
type CreateTournamentParams struct {
	Name                 string
	Date                 time.Time
	Location             string
	HostClubID           sql.NullInt64
	TournamentType       string
	Status               string
	MaxParticipants      int64
	EntryFee             float64
	HandicapRange        string
	RegistrationDeadline sql.NullTime
	Description          string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// CreateTournament inserts a tournament and returns the stored row.
func (q *Queries) CreateTournament(ctx context.Context, arg CreateTournamentParams) (Tournament, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO tournaments (name, date, location, host_club_id, tournament_type,
		        status, max_participants, entry_fee, handicap_range,
		        registration_deadline, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Name, arg.Date, arg.Location, arg.HostClubID, arg.TournamentType,
		arg.Status, arg.MaxParticipants, arg.EntryFee, arg.HandicapRange,
		arg.RegistrationDeadline, arg.Description, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return Tournament{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Tournament{}, err
	}
	return q.GetTournamentByID(ctx, id)
}

// UpdateTournamentParams are the inputs for UpdateTournament.
type UpdateTournamentParams struct {
	Name                 string
	Date                 time.Time
	Location             string
	HostClubID           sql.NullInt64
	TournamentType       string
	Status               string
	MaxParticipants      int64
	EntryFee             float64
	HandicapRange        string
	RegistrationDeadline sql.NullTime
	Description          string
	UpdatedAt            time.Time
	ID                   int64
}

// UpdateTournament updates a tournament and returns the stored row.
func (q *Queries) UpdateTournament(ctx context.Context, arg UpdateTournamentParams) (Tournament, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE tournaments SET name = ?, date = ?, location = ?, host_club_id = ?,
		        tournament_type = ?, status = ?, max_participants = ?, entry_fee = ?,
		        handicap_range = ?, registration_deadline = ?, description = ?,
		        updated_at = ?
		 WHERE id = ?`,
		arg.Name, arg.Date, arg.Location, arg.HostClubID, arg.TournamentType,
		arg.Status, arg.MaxParticipants, arg.EntryFee, arg.HandicapRange,
		arg.RegistrationDeadline, arg.Description, arg.UpdatedAt, arg.ID)
	if err != nil {
		return Tournament{}, err
	}
	return q.GetTournamentByID(ctx, arg.ID)
}

// DeleteTournament removes a tournament.
func (q *Queries) DeleteTournament(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = ?`, id)
	return err
}
