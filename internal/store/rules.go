// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const ruleColumns = `id, part_order, part_title, section_order, section_title,
	subsection_order, content, language, created_at, updated_at`

// GetRuleByID looks up a rule by primary key.
func (q *Queries) GetRuleByID(ctx context.Context, id int64) (Rule, error) {
	var r Rule
	err := q.db.QueryRowContext(ctx,
		`SELECT `+ruleColumns+` FROM rules WHERE id = ?`, id).
		Scan(&r.ID, &r.PartOrder, &r.PartTitle, &r.SectionOrder, &r.SectionTitle,
			&r.SubsectionOrder, &r.Content, &r.Language, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

/// ListRules returns all rules in reading order: part, then section, then
// subsection.
func (q *Queries) ListRules(ctx context.Context) ([]Rule, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+ruleColumns+` FROM rules
		 ORDER BY part_order ASC, section_order ASC, subsection_order ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []Rule
	for rows.Next() {
		var r Rule
		if err := rows.Scan(&r.ID, &r.PartOrder, &r.PartTitle, &r.SectionOrder,
			&r.SectionTitle, &r.SubsectionOrder, &r.Content, &r.Language,
			&r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// CreateRuleParams are the inputs for CreateRule.
type CreateRuleParams struct {
	PartOrder       int64
	PartTitle       string
	SectionOrder    int64
	SectionTitle    string
	SubsectionOrder int64
	Content         string
	Language        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateRule inserts a rule and returns the stored row.
func (q *Queries) CreateRule(ctx context.Context, arg CreateRuleParams) (Rule, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO rules (part_order, part_title, section_order, section_title,
		        subsection_order, content, language, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.PartOrder, arg.PartTitle, arg.SectionOrder, arg.SectionTitle,
		arg.SubsectionOrder, arg.Content, arg.Language, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return Rule{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Rule{}, err
	}
	return q.GetRuleByID(ctx, id)
}

// UpdateRuleParams are the inputs for UpdateRule.
type UpdateRuleParams struct {
	PartOrder       int64
	PartTitle       string
	SectionOrder    int64
	SectionTitle    string
	SubsectionOrder int64
	Content         string
	Language        string
	UpdatedAt       time.Time
	ID              int64
}

// UpdateRule updates a rule and returns the stored row.
func (q *Queries) UpdateRule(ctx context.Context, arg UpdateRuleParams) (Rule, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE rules SET part_order = ?, part_title = ?, section_order = ?,
		        section_title = ?, subsection_order = ?, content = ?, language = ?,
		        updated_at = ?
		 WHERE id = ?`,
		arg.PartOrder, arg.PartTitle, arg.SectionOrder, arg.SectionTitle,
		arg.SubsectionOrder, arg.Content, arg.Language, arg.UpdatedAt, arg.ID)
	if err != nil {
		return Rule{}, err
	}
	return q.GetRuleByID(ctx, arg.ID)
}

// DeleteRule removes a rule.
func (q *Queries) DeleteRule(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM rules WHERE id = ?`, id)
	return err
}
