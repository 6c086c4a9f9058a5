/*
Package catalog defines the core domain of Gamedex: the game metadata catalog.

It owns the canonical [Game] record, the persisted store behind it, and the
search orchestration that transparently escalates local misses to the external
game-information provider and backfills the results.

Core Responsibility:

  - Canonical Shape: Every game, whatever its source, is normalized into [Game].
  - Discovery: Filtered search, trending and random feeds, point lookups.
  - Backfill: Asynchronous, de-duplicated persistence of provider records.
*/
package catalog

import "time"

// # Domain Enums

// GameMode classifies how a game is played.
type GameMode string

const (
	ModeSinglePlayer GameMode = "single-player"
	ModeMultiplayer  GameMode = "multiplayer"
	ModeBoth         GameMode = "both"
)

// IsValid reports whether m is a recognised [GameMode] value.
func (m GameMode) IsValid() bool {
	switch m {
	case ModeSinglePlayer, ModeMultiplayer, ModeBoth:
		return true
	}
	return false
}

// # Core Entity

// Game is the canonical catalog record.
//
// # Identifier Spaces
//
// ID normally holds the locally assigned identifier. For records returned
// from a provider escalation that have not been persisted yet, ID transiently
// carries the provider's identifier; the store assigns its own on insert and
// the two spaces are never conflated in storage.
//
// # Units & Bounds
//
// PlaytimeEstimate is measured in hours. ReviewRating is bounded to [0, 5].
type Game struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Genre            string     `json:"genre"` // free-form, may hold comma-separated values
	Tags             []string   `json:"tags"`
	Platforms        []string   `json:"platforms"`
	PlaytimeEstimate int        `json:"playtime_estimate"`
	Developer        string     `json:"developer"`
	Publisher        string     `json:"publisher"`
	GameMode         GameMode   `json:"game_mode"`
	ReleaseDate      *time.Time `json:"release_date"`
	ReviewRating     float64    `json:"review_rating"`
	CoverImage       string     `json:"cover_image"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Filter holds the predicates of a catalog search. All fields are optional;
// the zero value matches every record.
type Filter struct {
	// Query is matched as a case-insensitive substring of the title.
	Query string
	// Genres are matched as case-insensitive substrings of the genre column,
	// OR-ed together and AND-ed with the other predicates.
	Genres []string
	// MinRating is an inclusive lower bound on the review rating.
	MinRating float64
	// Mode is an exact match on the game mode.
	Mode GameMode
}

// Update carries a partial mutation. Only non-nil fields are applied; the
// set of updatable fields is fixed here, so unknown inputs can never reach
// the store.
type Update struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	Genre            *string    `json:"genre"`
	Tags             *[]string  `json:"tags"`
	Platforms        *[]string  `json:"platforms"`
	PlaytimeEstimate *int       `json:"playtime_estimate"`
	Developer        *string    `json:"developer"`
	Publisher        *string    `json:"publisher"`
	GameMode         *GameMode  `json:"game_mode"`
	ReleaseDate      *time.Time `json:"release_date"`
	ReviewRating     *float64   `json:"review_rating"`
	CoverImage       *string    `json:"cover_image"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u Update) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Genre == nil &&
		u.Tags == nil && u.Platforms == nil && u.PlaytimeEstimate == nil &&
		u.Developer == nil && u.Publisher == nil && u.GameMode == nil &&
		u.ReleaseDate == nil && u.ReviewRating == nil && u.CoverImage == nil
}

// Global field names for validation
const (
	FieldTitle        = "title"
	FieldGenre        = "genre"
	FieldDeveloper    = "developer"
	FieldGameMode     = "game_mode"
	FieldReviewRating = "review_rating"
	FieldCoverImage   = "cover_image"
	FieldPlaytime     = "playtime_estimate"
)
