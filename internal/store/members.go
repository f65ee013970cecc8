// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const memberColumns = `id, full_name, club_id, membership_number, date_joined,
	membership_type, handicap, created_at, updated_at`

// GetMemberByID looks up a member by primary key.
func (q *Queries) GetMemberByID(ctx context.Context, id int64) (Member, error) {
	var m Member
	err := q.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id = ?`, id).
		Scan(&m.ID, &m.FullName, &m.ClubID, &m.MembershipNumber, &m.DateJoined,
			&m.MembershipType, &m.Handicap, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// GetMemberWithClub looks up a member with its club name resolved.
func (q *Queries) GetMemberWithClub(ctx context.Context, id int64) (MemberWithClub, error) {
	var m MemberWithClub
	err := q.db.QueryRowContext(ctx,
		`SELECT m.id, m.full_name, m.club_id, m.membership_number, m.date_joined,
		        m.membership_type, m.handicap, m.created_at, m.updated_at, c.name
		 FROM members m
		 LEFT JOIN clubs c ON c.id = m.club_id
		 WHERE m.id = ?`, id).
		Scan(&m.ID, &m.FullName, &m.ClubID, &m.MembershipNumber, &m.DateJoined,
			&m.MembershipType, &m.Handicap, &m.CreatedAt, &m.UpdatedAt, &m.ClubName)
	return m, err
}

// ListMembersWithClub returns all members newest first, each with its club
// name resolved (NULL for members without a club).
func (q *Queries) ListMembersWithClub(ctx context.Context) ([]MemberWithClub, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT m.id, m.full_name, m.club_id, m.membership_number, m.date_joined,
		        m.membership_type, m.handicap, m.created_at, m.updated_at, c.name
		 FROM members m
		 LEFT JOIN clubs c ON c.id = m.club_id
		 ORDER BY m.created_at DESC, m.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []MemberWithClub
	for rows.Next() {
		var m MemberWithClub
		if err := rows.Scan(&m.ID, &m.FullName, &m.ClubID, &m.MembershipNumber,
			&m.DateJoined, &m.MembershipType, &m.Handicap, &m.CreatedAt,
			&m.UpdatedAt, &m.ClubName); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// CreateMemberParams are the inputs for CreateMember.
type CreateMemberParams struct {
	FullName         string
	ClubID           sql.NullInt64
	MembershipNumber string
	DateJoined       time.Time
	MembershipType   string
	Handicap         int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CreateMember inserts a member and returns the stored row. The unique
// constraint on membership_number surfaces as an error here.
func (q *Queries) CreateMember(ctx context.Context, arg CreateMemberParams) (Member, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO members (full_name, club_id, membership_number, date_joined,
		                      membership_type, handicap, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.FullName, arg.ClubID, arg.MembershipNumber, arg.DateJoined,
		arg.MembershipType, arg.Handicap, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return Member{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Member{}, err
	}
	return q.GetMemberByID(ctx, id)
}

// UpdateMemberParams are the inputs for UpdateMember.
type UpdateMemberParams struct {
	FullName         string
	ClubID           sql.NullInt64
	MembershipNumber string
	DateJoined       time.Time
	MembershipType   string
	Handicap         int64
	UpdatedAt        time.Time
	ID               int64
}

// UpdateMember updates a member and returns the stored row.
func (q *Queries) UpdateMember(ctx context.Context, arg UpdateMemberParams) (Member, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE members SET full_name = ?, club_id = ?, membership_number = ?,
		        date_joined = ?, membership_type = ?, handicap = ?, updated_at = ?
		 WHERE id = ?`,
		arg.FullName, arg.ClubID, arg.MembershipNumber, arg.DateJoined,
		arg.MembershipType, arg.Handicap, arg.UpdatedAt, arg.ID)
	if err != nil {
		return Member{}, err
	}
	return q.GetMemberByID(ctx, arg.ID)
}

// DeleteMember removes a member; season rankings cascade.
func (q *Queries) DeleteMember(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id)
	return err
}
