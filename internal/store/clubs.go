// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// GetClubByID looks up a club by primary key.
func (q *Queries) GetClubByID(ctx context.Context, id int64) (Club, error) {
	var c Club
	err := q.db.QueryRowContext(ctx,
		`SELECT id, name, location, created_at, updated_at FROM clubs WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Location, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// ListClubsWithMemberCount returns all clubs ordered by name, each with its
// current member count.
func (q *Queries) ListClubsWithMemberCount(ctx context.Context) ([]ClubWithMemberCount, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT c.id, c.name, c.location, c.created_at, c.updated_at,
		        (SELECT COUNT(*) FROM members m WHERE m.club_id = c.id) AS member_count
		 FROM clubs c
		 ORDER BY c.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clubs []ClubWithMemberCount
	for rows.Next() {
		var c ClubWithMemberCount
		if err := rows.Scan(&c.ID, &c.Name, &c.Location, &c.CreatedAt, &c.UpdatedAt,
			&c.MemberCount); err != nil {
			return nil, err
		}
		clubs = append(clubs, c)
	}
	return clubs, rows.Err()
}

// CountClubMembers returns the number of members attached to a club.
func (q *Queries) CountClubMembers(ctx context.Context, clubID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM members WHERE club_id = ?`, clubID).Scan(&count)
	return count, err
}

// CreateClubParams are the inputs for CreateClub.
type CreateClubParams struct {
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateClub inserts a club and returns the stored row.
func (q *Queries) CreateClub(ctx context.Context, arg CreateClubParams) (Club, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO clubs (name, location, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		arg.Name, arg.Location, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return Club{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Club{}, err
	}
	return q.GetClubByID(ctx, id)
}

// UpdateClubParams are the inputs for UpdateClub.
type UpdateClubParams struct {
	Name      string
	Location  string
	UpdatedAt time.Time
	ID        int64
}

// UpdateClub updates a club and returns the stored row.
func (q *Queries) UpdateClub(ctx context.Context, arg UpdateClubParams) (Club, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE clubs SET name = ?, location = ?, updated_at = ? WHERE id = ?`,
		arg.Name, arg.Location, arg.UpdatedAt, arg.ID)
	if err != nil {
		return Club{}, err
	}
	return q.GetClubByID(ctx, arg.ID)
}

// DeleteClub removes a club. Member rows keep existing with club_id cleared
// (ON DELETE SET NULL).
func (q *Queries) DeleteClub(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM clubs WHERE id = ?`, id)
	return err
}
