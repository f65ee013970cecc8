// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

// User is a portal account. PasswordHash never leaves the store layer
// except into the password verifier.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  sql.NullTime
}

// Session is one authenticated session, keyed by its opaque token.
type Session struct {
	Token        string
	UserID       int64
	CreatedAt    time.Time
	ExpiresAt    time.Time
	LastActivity time.Time
}

// SessionWithUser is a session row joined with its owning user.
type SessionWithUser struct {
	Session
	User User
}

// Club is an association member club.
type Club struct {
	ID        int64
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClubWithMemberCount is a club row with its member count.
type ClubWithMemberCount struct {
	Club
	MemberCount int64
}

// Member is a registered association member.
type Member struct {
	ID               int64
	FullName         string
	ClubID           sql.NullInt64
	MembershipNumber string
	DateJoined       time.Time
	MembershipType   string
	Handicap         int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// MemberWithClub is a member row with its club name resolved.
type MemberWithClub struct {
	Member
	ClubName sql.NullString
}

// Tournament is a scheduled association tournament.
type Tournament struct {
	ID                   int64
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

// Rule is one subsection of the association laws.
type Rule struct {
	ID              int64
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

// NewsItem is one news feed entry.
type NewsItem struct {
	ID          int64
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

// Ranking is one member's standing for a season.
type Ranking struct {
	ID                int64
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

// RankingWithMember is a ranking row with the member name resolved.
type RankingWithMember struct {
	Ranking
	MemberName string
}

// Event is a system event log entry.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	IPAddress string
	Metadata  string // JSON string
	CreatedAt time.Time
}
