// Copyright (c) 2026 Gamedex. All rights reserved.
// Author: minh.nguyenvu.dev@gmail.com

package rawg_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngvu/gamedex/internal/catalog"
	"github.com/minhngvu/gamedex/internal/provider/rawg"
)

func fullProviderGame() rawg.Game {
	return rawg.Game{
		ID:             3498,
		Slug:           "elden-ring",
		Name:           "Elden Ring",
		DescriptionRaw: "A vast world full of excitement.",
		Released:       "2022-02-25",
		BackgroundImg:  "https://media.rawg.io/elden.jpg",
		Rating:         4.43,
		Playtime:       58,
		Genres:         []rawg.NamedRef{{ID: 4, Name: "Action"}, {ID: 5, Name: "RPG"}},
		Tags:           []rawg.NamedRef{{ID: 31, Name: "Singleplayer"}, {ID: 42, Name: "Dark Fantasy"}},
		Platforms: []rawg.PlatformWrap{
			{Platform: rawg.NamedRef{ID: 1, Name: "PC"}},
			{Platform: rawg.NamedRef{ID: 2, Name: "PlayStation 5"}},
		},
		Developers: []rawg.NamedRef{{ID: 7, Name: "FromSoftware"}},
		Publishers: []rawg.NamedRef{{ID: 8, Name: "Bandai Namco"}},
	}
}

/*
TestNormalize_FullRecord verifies the field-by-field mapping of a fully
populated provider record into the canonical shape.
*/
func TestNormalize_FullRecord(t *testing.T) {
	record := rawg.Normalize(fullProviderGame())

	assert.Equal(t, "Elden Ring", record.Title)
	assert.Equal(t, "A vast world full of excitement.", record.Description)
	assert.Equal(t, "Action, RPG", record.Genre)
	assert.Equal(t, []string{"Singleplayer", "Dark Fantasy"}, record.Tags)
	assert.Equal(t, []string{"PC", "PlayStation 5"}, record.Platforms)
	assert.Equal(t, 58, record.PlaytimeEstimate)
	assert.Equal(t, "FromSoftware", record.Developer)
	assert.Equal(t, "Bandai Namco", record.Publisher)
	assert.Equal(t, catalog.ModeSinglePlayer, record.GameMode)
	assert.InDelta(t, 4.43, record.ReviewRating, 1e-9)
	assert.Equal(t, "https://media.rawg.io/elden.jpg", record.CoverImage)

	require.NotNil(t, record.ReleaseDate)
	assert.Equal(t, time.Date(2022, 2, 25, 0, 0, 0, 0, time.UTC), *record.ReleaseDate)

	// No local identity or timestamps; those are assigned downstream.
	assert.Zero(t, record.ID)
	assert.True(t, record.CreatedAt.IsZero())
	assert.True(t, record.UpdatedAt.IsZero())
}

/*
TestNormalize_Deterministic verifies normalization is a pure function:
the same input maps to the same output on every call.
*/
func TestNormalize_Deterministic(t *testing.T) {
	input := fullProviderGame()
	assert.Equal(t, rawg.Normalize(input), rawg.Normalize(input))
}

/*
TestNormalize_GameModeInference covers the tag-based mode derivation,
including case folding and the single-player default.
*/
func TestNormalize_GameModeInference(t *testing.T) {
	cases := []struct {
		name string
		tags []rawg.NamedRef
		want catalog.GameMode
	}{
		{name: "no tags defaults to single-player", tags: nil, want: catalog.ModeSinglePlayer},
		{name: "singleplayer tag", tags: []rawg.NamedRef{{Name: "Singleplayer"}}, want: catalog.ModeSinglePlayer},
		{name: "multiplayer tag", tags: []rawg.NamedRef{{Name: "Multiplayer"}}, want: catalog.ModeMultiplayer},
		{name: "both tags", tags: []rawg.NamedRef{{Name: "Singleplayer"}, {Name: "Multiplayer"}}, want: catalog.ModeBoth},
		{name: "case folded", tags: []rawg.NamedRef{{Name: "MULTIPLAYER"}}, want: catalog.ModeMultiplayer},
		{name: "hyphenated variant", tags: []rawg.NamedRef{{Name: "Single-Player"}}, want: catalog.ModeSinglePlayer},
		{name: "unrelated tags ignored", tags: []rawg.NamedRef{{Name: "Open World"}, {Name: "Co-op"}}, want: catalog.ModeSinglePlayer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			record := rawg.Normalize(rawg.Game{Name: "X", Tags: tc.tags})
			assert.Equal(t, tc.want, record.GameMode)
		})
	}
}

/*
TestNormalize_RatingClamped verifies out-of-policy provider ratings are
clamped into [0, 5] rather than rejected.
*/
func TestNormalize_RatingClamped(t *testing.T) {
	assert.Equal(t, 5.0, rawg.Normalize(rawg.Game{Name: "X", Rating: 9.7}).ReviewRating)
	assert.Equal(t, 0.0, rawg.Normalize(rawg.Game{Name: "X", Rating: -1}).ReviewRating)
	assert.Equal(t, 3.5, rawg.Normalize(rawg.Game{Name: "X", Rating: 3.5}).ReviewRating)
}

/*
TestNormalize_SparseRecord verifies a summary-only provider record (no
description, developers, release date) maps to a usable canonical record
with empty collections rather than nils.
*/
func TestNormalize_SparseRecord(t *testing.T) {
	record := rawg.Normalize(rawg.Game{ID: 4200, Name: "Sekiro", Rating: 4.39})

	assert.Equal(t, "Sekiro", record.Title)
	assert.Empty(t, record.Genre)
	assert.Empty(t, record.Developer)
	assert.NotNil(t, record.Tags)
	assert.NotNil(t, record.Platforms)
	assert.Nil(t, record.ReleaseDate)
	assert.Equal(t, catalog.ModeSinglePlayer, record.GameMode)
}

/*
TestNormalize_BadReleaseDate verifies an unparsable release date is dropped
instead of failing the whole record.
*/
func TestNormalize_BadReleaseDate(t *testing.T) {
	record := rawg.Normalize(rawg.Game{Name: "X", Released: "sometime in 2022"})
	assert.Nil(t, record.ReleaseDate)
}
