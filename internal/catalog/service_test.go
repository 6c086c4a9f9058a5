// Copyright (c) 2026 Gamedex. All rights reserved.
// Author: minh.nguyenvu.dev@gmail.com

package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngvu/gamedex/internal/platform/apperr"
	"github.com/minhngvu/gamedex/pkg/pointer"
)

// # Test Doubles

// mockRepo is a hand-rolled [Repository] with per-method hooks. Methods
// without a hook return empty results, so each test only wires what it
// exercises.
type mockRepo struct {
	searchFn func(ctx context.Context, filter Filter) ([]*Game, error)
	getFn    func(ctx context.Context, id int64) (*Game, error)
	getAllFn func(ctx context.Context, limit int) ([]*Game, error)
	insertFn func(ctx context.Context, game *Game) error
	updateFn func(ctx context.Context, id int64, update Update) error
	deleteFn func(ctx context.Context, id int64) error
	existsFn func(ctx context.Context, title, developer string) (bool, error)
}

func (m *mockRepo) Search(ctx context.Context, filter Filter) ([]*Game, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, filter)
	}
	return []*Game{}, nil
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*Game, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, apperr.NotFound("Game")
}

func (m *mockRepo) GetAll(ctx context.Context, limit int) ([]*Game, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx, limit)
	}
	return []*Game{}, nil
}

func (m *mockRepo) GetTrending(ctx context.Context, limit int) ([]*Game, error) {
	return []*Game{}, nil
}
func (m *mockRepo) GetRandomSample(ctx context.Context, limit int) ([]*Game, error) {
	return []*Game{}, nil
}

func (m *mockRepo) Insert(ctx context.Context, game *Game) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, game)
	}
	return nil
}

func (m *mockRepo) Update(ctx context.Context, id int64, update Update) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, update)
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockRepo) ExistsByTitleAndDeveloper(ctx context.Context, title, developer string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, title, developer)
	}
	return false, nil
}

// mockProvider records every escalation call.
type mockProvider struct {
	calls   int
	queries []string
	results []*Game
	err     error
}

func (m *mockProvider) SearchByText(ctx context.Context, query string, limit int) ([]*Game, error) {
	m.calls++
	m.queries = append(m.queries, query)
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

// recordingDispatcher captures what the orchestrator hands to the backfill
// path, without persisting anything.
type recordingDispatcher struct {
	calls   int
	batches [][]*Game
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, games []*Game) {
	d.calls++
	d.batches = append(d.batches, games)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(repo Repository, provider ExternalProvider, dispatcher Dispatcher) *Service {
	return NewService(repo, provider, dispatcher, nil, testLogger())
}

func providerGame(id int64, title string) *Game {
	return &Game{
		ID:           id,
		Title:        title,
		Developer:    "FromSoftware",
		GameMode:     ModeSinglePlayer,
		ReviewRating: 4.5,
	}
}

// # Search Orchestration

/*
TestSearchGames_LocalHitSkipsProvider verifies that a non-empty local result
is served as-is, with no provider call and no backfill.
*/
func TestSearchGames_LocalHitSkipsProvider(t *testing.T) {
	local := []*Game{{ID: 1, Title: "Elden Ring"}}
	repo := &mockRepo{
		searchFn: func(ctx context.Context, filter Filter) ([]*Game, error) {
			return local, nil
		},
	}
	provider := &mockProvider{}
	dispatcher := &recordingDispatcher{}
	service := newTestService(repo, provider, dispatcher)

	games, err := service.SearchGames(context.Background(), Filter{Query: "elden"})

	require.NoError(t, err)
	assert.Equal(t, local, games)
	assert.Zero(t, provider.calls)
	assert.Zero(t, dispatcher.calls)
}

/*
TestSearchGames_NoQueryNoEscalation verifies that an empty local result
without a text query returns empty directly: filter-only searches never
escalate.
*/
func TestSearchGames_NoQueryNoEscalation(t *testing.T) {
	provider := &mockProvider{results: []*Game{providerGame(10, "Elden Ring")}}
	dispatcher := &recordingDispatcher{}
	service := newTestService(&mockRepo{}, provider, dispatcher)

	games, err := service.SearchGames(context.Background(), Filter{Genres: []string{"RPG"}})

	require.NoError(t, err)
	assert.Empty(t, games)
	assert.Zero(t, provider.calls)
	assert.Zero(t, dispatcher.calls)
}

/*
TestSearchGames_EscalatesOnLocalMiss verifies the full escalation path:

 1. The provider is called exactly once, with the original query text.
 2. The served records carry provider identifiers and stand-in timestamps.
 3. The same records are handed to the backfill dispatcher.
*/
func TestSearchGames_EscalatesOnLocalMiss(t *testing.T) {
	external := []*Game{providerGame(3498, "Elden Ring"), providerGame(4200, "Elden Ring 2")}
	provider := &mockProvider{results: external}
	dispatcher := &recordingDispatcher{}
	service := newTestService(&mockRepo{}, provider, dispatcher)

	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixed }

	games, err := service.SearchGames(context.Background(), Filter{Query: "elden ring"})

	require.NoError(t, err)
	require.Len(t, games, 2)

	// 1. Exactly one provider call, with the query verbatim.
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, []string{"elden ring"}, provider.queries)

	// 2. Provider ids and stand-in timestamps on the served records.
	assert.Equal(t, int64(3498), games[0].ID)
	assert.Equal(t, int64(4200), games[1].ID)
	for _, game := range games {
		assert.Equal(t, fixed, game.CreatedAt)
		assert.Equal(t, fixed, game.UpdatedAt)
	}

	// 3. The backfill received the same batch.
	require.Equal(t, 1, dispatcher.calls)
	assert.Equal(t, external, dispatcher.batches[0])
}

/*
TestSearchGames_ProviderFailureDegrades verifies that a provider error is
absorbed: the client gets an empty success, not a 5xx.
*/
func TestSearchGames_ProviderFailureDegrades(t *testing.T) {
	provider := &mockProvider{err: errors.New("connection refused")}
	dispatcher := &recordingDispatcher{}
	service := newTestService(&mockRepo{}, provider, dispatcher)

	games, err := service.SearchGames(context.Background(), Filter{Query: "elden"})

	require.NoError(t, err)
	assert.NotNil(t, games)
	assert.Empty(t, games)
	assert.Zero(t, dispatcher.calls)
}

/*
TestSearchGames_ProviderEmptyResult verifies that an empty provider answer is
an empty success and triggers no backfill.
*/
func TestSearchGames_ProviderEmptyResult(t *testing.T) {
	provider := &mockProvider{results: []*Game{}}
	dispatcher := &recordingDispatcher{}
	service := newTestService(&mockRepo{}, provider, dispatcher)

	games, err := service.SearchGames(context.Background(), Filter{Query: "no such game"})

	require.NoError(t, err)
	assert.Empty(t, games)
	assert.Equal(t, 1, provider.calls)
	assert.Zero(t, dispatcher.calls)
}

/*
TestSearchGames_NoProviderConfigured verifies the reduced deployment: with no
provider wired, a local miss is simply an empty result.
*/
func TestSearchGames_NoProviderConfigured(t *testing.T) {
	service := newTestService(&mockRepo{}, nil, nil)

	games, err := service.SearchGames(context.Background(), Filter{Query: "elden"})

	require.NoError(t, err)
	assert.Empty(t, games)
}

/*
TestSearchGames_RepoErrorPropagates verifies that a store failure on the
local search is returned to the caller, never masked by escalation.
*/
func TestSearchGames_RepoErrorPropagates(t *testing.T) {
	repoErr := errors.New("connection reset")
	repo := &mockRepo{
		searchFn: func(ctx context.Context, filter Filter) ([]*Game, error) {
			return nil, repoErr
		},
	}
	provider := &mockProvider{}
	service := newTestService(repo, provider, nil)

	_, err := service.SearchGames(context.Background(), Filter{Query: "elden"})

	require.ErrorIs(t, err, repoErr)
	assert.Zero(t, provider.calls)
}

// # Mutations

/*
TestCreateGame_Valid verifies a well-formed record passes validation,
receives collection defaults and reaches the store.
*/
func TestCreateGame_Valid(t *testing.T) {
	var inserted *Game
	repo := &mockRepo{
		insertFn: func(ctx context.Context, game *Game) error {
			game.ID = 42
			inserted = game
			return nil
		},
	}
	service := newTestService(repo, nil, nil)

	game := &Game{
		Title:        "Hades",
		Developer:    "Supergiant Games",
		ReviewRating: 4.8,
	}
	err := service.CreateGame(context.Background(), game)

	require.NoError(t, err)
	require.NotNil(t, inserted)
	assert.Equal(t, int64(42), game.ID)
	assert.Equal(t, ModeSinglePlayer, game.GameMode)
	assert.NotNil(t, game.Tags)
	assert.NotNil(t, game.Platforms)
}

/*
TestCreateGame_Validation verifies the rejection rules. Each case must fail
with VALIDATION_ERROR before touching the store.
*/
func TestCreateGame_Validation(t *testing.T) {
	cases := []struct {
		name string
		game Game
	}{
		{name: "missing title", game: Game{Developer: "Supergiant Games"}},
		{name: "missing developer", game: Game{Title: "Hades"}},
		{name: "invalid mode", game: Game{Title: "Hades", Developer: "Supergiant Games", GameMode: "co-op"}},
		{name: "rating above bound", game: Game{Title: "Hades", Developer: "Supergiant Games", ReviewRating: 5.1}},
		{name: "rating below bound", game: Game{Title: "Hades", Developer: "Supergiant Games", ReviewRating: -0.1}},
		{name: "negative playtime", game: Game{Title: "Hades", Developer: "Supergiant Games", PlaytimeEstimate: -4}},
		{name: "relative cover url", game: Game{Title: "Hades", Developer: "Supergiant Games", CoverImage: "covers/hades.png"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockRepo{
				insertFn: func(ctx context.Context, game *Game) error {
					t.Fatal("insert must not be reached")
					return nil
				},
			}
			service := newTestService(repo, nil, nil)

			err := service.CreateGame(context.Background(), &tc.game)

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

/*
TestUpdateGame_EmptyRejected verifies that a partial update with no fields is
a validation error, not a silent success.
*/
func TestUpdateGame_EmptyRejected(t *testing.T) {
	service := newTestService(&mockRepo{}, nil, nil)

	err := service.UpdateGame(context.Background(), 1, Update{})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestUpdateGame_NotFoundPropagates verifies that updating a missing id
surfaces the store's NotFound instead of succeeding quietly.
*/
func TestUpdateGame_NotFoundPropagates(t *testing.T) {
	repo := &mockRepo{
		updateFn: func(ctx context.Context, id int64, update Update) error {
			return apperr.NotFound("Game")
		},
	}
	service := newTestService(repo, nil, nil)

	err := service.UpdateGame(context.Background(), 999, Update{Title: pointer.To("Hades II")})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestUpdateGame_FieldValidation verifies per-field rules on supplied values.
*/
func TestUpdateGame_FieldValidation(t *testing.T) {
	cases := []struct {
		name   string
		update Update
	}{
		{name: "rating out of range", update: Update{ReviewRating: pointer.To(7.2)}},
		{name: "invalid mode", update: Update{GameMode: pointer.To(GameMode("battle-royale"))}},
		{name: "blank title", update: Update{Title: pointer.To("")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service := newTestService(&mockRepo{}, nil, nil)

			err := service.UpdateGame(context.Background(), 1, tc.update)

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

/*
TestDeleteGame_MissingIDIsNoOp verifies delete idempotency at the service
level: the repo treating a missing id as a no-op flows through as success.
*/
func TestDeleteGame_MissingIDIsNoOp(t *testing.T) {
	deleted := []int64{}
	repo := &mockRepo{
		deleteFn: func(ctx context.Context, id int64) error {
			deleted = append(deleted, id)
			return nil
		},
	}
	service := newTestService(repo, nil, nil)

	require.NoError(t, service.DeleteGame(context.Background(), 12345))
	assert.Equal(t, []int64{12345}, deleted)
}
