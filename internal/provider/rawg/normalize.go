// Copyright (c) 2026 Gamedex. All rights reserved.
// Author: minh.nguyenvu.dev@gmail.com

package rawg

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/minhngvu/gamedex/internal/catalog"
)

// foldCaser performs Unicode-aware case folding for tag comparisons.
// cases.Fold is stateless after construction and safe for concurrent use.
var foldCaser = cases.Fold()

// Normalize maps a provider-native record into the catalog's canonical shape.
//
// It is a pure function: deterministic for the same input, no side effects.
// The result carries neither a local identifier nor timestamps; those belong
// to whoever persists or serves the record.
func Normalize(g Game) catalog.Game {
	record := catalog.Game{
		Title:            g.Name,
		Description:      g.DescriptionRaw,
		Genre:            joinNames(g.Genres),
		Tags:             tagNames(g.Tags),
		Platforms:        platformNames(g.Platforms),
		PlaytimeEstimate: g.Playtime,
		Developer:        joinNames(g.Developers),
		Publisher:        joinNames(g.Publishers),
		GameMode:         inferGameMode(g.Tags),
		ReviewRating:     clampRating(g.Rating),
		CoverImage:       g.BackgroundImg,
	}

	if g.Released != "" {
		if released, err := time.Parse(time.DateOnly, g.Released); err == nil {
			record.ReleaseDate = &released
		}
	}

	return record
}

// Adapter exposes the provider to the catalog in its canonical shape.
//
// It implements [catalog.ExternalProvider]: results come back normalized,
// with the provider identifier standing in for the (not yet assigned) local
// id so the orchestrator can serve them immediately.
type Adapter struct {
	client *Client
}

// NewAdapter wraps a RAWG [Client] into a catalog-facing adapter.
func NewAdapter(client *Client) *Adapter {
	return &Adapter{client: client}
}

// SearchByText searches the provider and normalizes the results.
func (a *Adapter) SearchByText(ctx context.Context, query string, limit int) ([]*catalog.Game, error) {
	games, err := a.client.SearchGames(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return a.normalizeAll(games), nil
}

// MostPopular returns the provider's popularity-ranked listing, normalized.
func (a *Adapter) MostPopular(ctx context.Context, limit int) ([]*catalog.Game, error) {
	games, err := a.client.MostPopular(ctx, limit)
	if err != nil {
		return nil, err
	}
	return a.normalizeAll(games), nil
}

func (a *Adapter) normalizeAll(games []Game) []*catalog.Game {
	records := make([]*catalog.Game, 0, len(games))
	for _, g := range games {
		record := Normalize(g)
		// Transient stand-in: replaced by a store-assigned id on insert.
		record.ID = g.ID
		records = append(records, &record)
	}
	return records
}

// # Mapping Helpers

// joinNames flattens a list of {id, name} references into a comma-separated
// string, the catalog's free-form convention for multi-valued text fields.
func joinNames(refs []NamedRef) string {
	if len(refs) == 0 {
		return ""
	}
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Name)
	}
	return strings.Join(names, ", ")
}

func tagNames(refs []NamedRef) []string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Name)
	}
	return names
}

func platformNames(wraps []PlatformWrap) []string {
	names := make([]string, 0, len(wraps))
	for _, wrap := range wraps {
		names = append(names, wrap.Platform.Name)
	}
	return names
}

// inferGameMode derives the play mode from the provider's tag list.
// RAWG has no dedicated mode field; "Singleplayer"/"Multiplayer" tags are
// the reliable signal.
func inferGameMode(tags []NamedRef) catalog.GameMode {
	var single, multi bool
	for _, tag := range tags {
		switch foldCaser.String(tag.Name) {
		case "singleplayer", "single-player":
			single = true
		case "multiplayer", "multi-player":
			multi = true
		}
	}

	switch {
	case single && multi:
		return catalog.ModeBoth
	case multi:
		return catalog.ModeMultiplayer
	default:
		return catalog.ModeSinglePlayer
	}
}

// clampRating bounds the provider rating to the catalog's [0, 5] policy.
func clampRating(rating float64) float64 {
	if rating < 0 {
		return 0
	}
	if rating > 5 {
		return 5
	}
	return rating
}
