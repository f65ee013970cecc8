// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const newsColumns = `id, guid, title, slug, content, author, category, featured,
	publish_date, created_at, updated_at`

// GetNewsItemByID looks up a news item by primary key.
func (q *Queries) GetNewsItemByID(ctx context.Context, id int64) (NewsItem, error) {
	var n NewsItem
	err := q.db.QueryRowContext(ctx,
		`SELECT `+newsColumns+` FROM news WHERE id = ?`, id).
		Scan(&n.ID, &n.GUID, &n.Title, &n.Slug, &n.Content, &n.Author,
			&n.Category, &n.Featured, &n.PublishDate, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

// ListNewsItems returns all news items, newest publish date first.
func (q *Queries) ListNewsItems(ctx context.Context) ([]NewsItem, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+newsColumns+` FROM news ORDER BY publish_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []NewsItem
	for rows.Next() {
		var n NewsItem
		if err := rows.Scan(&n.ID, &n.GUID, &n.Title, &n.Slug, &n.Content,
			&n.Author, &n.Category, &n.Featured, &n.PublishDate,
			&n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// CreateNewsItemParams are the inputs for CreateNewsItem.
type CreateNewsItemParams struct {
	GUID        string
	Title       string
	Slug        string
	Content     string
	Author      string
	Category    string
	Featured    bool
	PublishDate time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateNewsItem inserts a news item and returns the stored row.
func (q *Queries) CreateNewsItem(ctx context.Context, arg CreateNewsItemParams) (NewsItem, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO news (guid, title, slug, content, author, category, featured,
		        publish_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.GUID, arg.Title, arg.Slug, arg.Content, arg.Author, arg.Category,
		arg.Featured, arg.PublishDate, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return NewsItem{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return NewsItem{}, err
	}
	return q.GetNewsItemByID(ctx, id)
}

// UpdateNewsItemParams are the inputs for UpdateNewsItem.
type UpdateNewsItemParams struct {
	Title       string
	Slug        string
	Content     string
	Author      string
	Category    string
	Featured    bool
	PublishDate time.Time
	UpdatedAt   time.Time
	ID          int64
}

// UpdateNewsItem updates a news item and returns the stored row. The guid is
// immutable once issued.
func (q *Queries) UpdateNewsItem(ctx context.Context, arg UpdateNewsItemParams) (NewsItem, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE news SET title = ?, slug = ?, content = ?, author = ?, category = ?,
		        featured = ?, publish_date = ?, updated_at = ?
		 WHERE id = ?`,
		arg.Title, arg.Slug, arg.Content, arg.Author, arg.Category,
		arg.Featured, arg.PublishDate, arg.UpdatedAt, arg.ID)
	if err != nil {
		return NewsItem{}, err
	}
	return q.GetNewsItemByID(ctx, arg.ID)
}

// DeleteNewsItem removes a news item.
func (q *Queries) DeleteNewsItem(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM news WHERE id = ?`, id)
	return err
}
