// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryAuth       = "auth"
	EventCategoryClub       = "club"
	EventCategoryMember     = "member"
	EventCategoryTournament = "tournament"
	EventCategoryRule       = "rule"
	EventCategoryNews       = "news"
	EventCategoryUser       = "user"
	EventCategorySystem     = "system"
)
