// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	_ "modernc.org/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/croquetbond/portal/internal/model"
	"github.com/croquetbond/portal/internal/store"
)

func newTestLogger(t *testing.T) (*slog.Logger, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	_, err = db.Exec(`
		CREATE TABLE events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level TEXT NOT NULL,
			category TEXT NOT NULL,
			message TEXT NOT NULL,
			user_id INTEGER,
			ip_address TEXT NOT NULL DEFAULT '',
			metadata TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME NOT NULL
		)`)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	inner := slog.NewTextHandler(io.Discard, nil)
	return slog.New(NewEventLogHandler(inner, db)), db
}

func recentEvents(t *testing.T, db *sql.DB) []store.Event {
	t.Helper()
	events, err := store.New(db).ListRecentEvents(context.Background(), 10)
	require.NoError(t, err)
	return events
}

func TestEventLogHandler_ForwardsWarnAndAbove(t *testing.T) {
	logger, db := newTestLogger(t)

	logger.Info("routine startup message")
	logger.Warn("session sweep lagging")
	logger.Error("database write failed")

	events := recentEvents(t, db)
	require.Len(t, events, 2, "info stays out of the event log")

	levels := map[string]bool{}
	for _, e := range events {
		levels[e.Level] = true
	}
	assert.True(t, levels[model.EventLevelWarning])
	assert.True(t, levels[model.EventLevelError])
}

func TestEventLogHandler_ExplicitCategory(t *testing.T) {
	logger, db := newTestLogger(t)

	logger.Warn("throttled", "category", model.EventCategoryAuth, "ip", "10.0.0.1")

	events := recentEvents(t, db)
	require.Len(t, events, 1)
	assert.Equal(t, model.EventCategoryAuth, events[0].Category)
	assert.Contains(t, events[0].Metadata, `"ip":"10.0.0.1"`)
	// The category attribute itself is not duplicated in metadata.
	assert.NotContains(t, events[0].Metadata, "category")
}

func TestEventLogHandler_InferredCategory(t *testing.T) {
	logger, db := newTestLogger(t)

	logger.Warn("failed login attempt")
	logger.Warn("tournament import stalled")
	logger.Error("disk almost full")

	events := recentEvents(t, db)
	require.Len(t, events, 3)

	byMessage := map[string]string{}
	for _, e := range events {
		byMessage[e.Message] = e.Category
	}
	assert.Equal(t, model.EventCategoryAuth, byMessage["failed login attempt"])
	assert.Equal(t, model.EventCategoryTournament, byMessage["tournament import stalled"])
	assert.Equal(t, model.EventCategorySystem, byMessage["disk almost full"])
}
