// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// GetRankingByID looks up a ranking by primary key.
func (q *Queries) GetRankingByID(ctx context.Context, id int64) (Ranking, error) {
	var r Ranking
	err := q.db.QueryRowContext(ctx,
		`SELECT id, member_id, season, points, wins, tournaments_played,
		        current_position, previous_position, created_at, updated_at
		 FROM rankings WHERE id = ?`, id).
		Scan(&r.ID, &r.MemberID, &r.Season, &r.Points, &r.Wins,
			&r.TournamentsPlayed, &r.CurrentPosition, &r.PreviousPosition,
			&r.CreatedAt, &r.UpdatedAt)
	return r, err
}

// ListRankingsBySeason returns the standings for one season, best position
// first. An empty season returns all rankings.
func (q *Queries) ListRankingsBySeason(ctx context.Context, season string) ([]RankingWithMember, error) {
	query := `SELECT r.id, r.member_id, r.season, r.points, r.wins,
	                 r.tournaments_played, r.current_position, r.previous_position,
	                 r.created_at, r.updated_at, m.full_name
	          FROM rankings r
	          JOIN members m ON m.id = r.member_id`
	args := []any{}
	if season != "" {
		query += ` WHERE r.season = ?`
		args = append(args, season)
	}
	query += ` ORDER BY r.season DESC, r.current_position ASC`

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rankings []RankingWithMember
	for rows.Next() {
		var r RankingWithMember
		if err := rows.Scan(&r.ID, &r.MemberID, &r.Season, &r.Points, &r.Wins,
			&r.TournamentsPlayed, &r.CurrentPosition, &r.PreviousPosition,
			&r.CreatedAt, &r.UpdatedAt, &r.MemberName); err != nil {
			return nil, err
		}
		rankings = append(rankings, r)
	}
	return rankings, rows.Err()
}

// CreateRankingParams are the inputs for CreateRanking.
type CreateRankingParams struct {
	MemberID          int64
	Season            string
	Points            int64
	Wins              int64
	TournamentsPlayed int64
	CurrentPosition   int64
	PreviousPosition  int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CreateRanking inserts a ranking and returns the stored row. One ranking
// per member per season (unique constraint).
func (q *Queries) CreateRanking(ctx context.Context, arg CreateRankingParams) (Ranking, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO rankings (member_id, season, points, wins, tournaments_played,
		        current_position, previous_position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.MemberID, arg.Season, arg.Points, arg.Wins, arg.TournamentsPlayed,
		arg.CurrentPosition, arg.PreviousPosition, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return Ranking{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Ranking{}, err
	}
	return q.GetRankingByID(ctx, id)
}

// UpdateRankingParams are the inputs for UpdateRanking.
type UpdateRankingParams struct {
	Points            int64
	Wins              int64
	TournamentsPlayed int64
	CurrentPosition   int64
	PreviousPosition  int64
	UpdatedAt         time.Time
	ID                int64
}

// UpdateRanking updates a ranking and returns the stored row.
func (q *Queries) UpdateRanking(ctx context.Context, arg UpdateRankingParams) (Ranking, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE rankings SET points = ?, wins = ?, tournaments_played = ?,
		        current_position = ?, previous_position = ?, updated_at = ?
		 WHERE id = ?`,
		arg.Points, arg.Wins, arg.TournamentsPlayed, arg.CurrentPosition,
		arg.PreviousPosition, arg.UpdatedAt, arg.ID)
	if err != nil {
		return Ranking{}, err
	}
	return q.GetRankingByID(ctx, arg.ID)
}

// DeleteRanking removes a ranking.
func (q *Queries) DeleteRanking(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM rankings WHERE id = ?`, id)
	return err
}
