package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/minhngvu/gamedex/internal/platform/constants"
	"github.com/minhngvu/gamedex/internal/platform/validate"
)

// ExternalProvider is the escalation target for local search misses.
//
// Results come back in the canonical shape with the provider identifier
// standing in for the local id. Implemented by the RAWG adapter.
type ExternalProvider interface {
	SearchByText(ctx context.Context, query string, limit int) ([]*Game, error)
}

// Service owns the catalog's business logic, including the search
// orchestration between the local store and the external provider.
type Service struct {
	repo     Repository
	provider ExternalProvider
	backfill Dispatcher
	trending *TrendingCache
	logger   *slog.Logger

	// now is injectable for deterministic stand-in timestamps in tests.
	now func() time.Time
}

// NewService wires the catalog service. provider, backfill and trending may
// be nil in reduced deployments (escalation, backfill and caching are then
// disabled, respectively).
func NewService(repo Repository, provider ExternalProvider, backfill Dispatcher, trending *TrendingCache, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		backfill: backfill,
		trending: trending,
		logger:   logger,
		now:      time.Now,
	}
}

// # Search Orchestration

// SearchGames resolves a filtered search, escalating to the external
// provider when the local store comes up empty for a text query.
//
// The escalated results are served immediately — carrying the provider's
// identifiers and stand-in timestamps — while a bounded prefix of them is
// handed to the backfill writer without waiting for persistence. Provider
// failures degrade to an empty result set; absence of games is not a fault.
func (service *Service) SearchGames(ctx context.Context, filter Filter) ([]*Game, error) {
	games, err := service.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	if len(games) > 0 || filter.Query == "" {
		return games, nil
	}

	if service.provider == nil {
		return games, nil
	}

	external, err := service.provider.SearchByText(ctx, filter.Query, constants.ProviderSearchLimit)
	if err != nil {
		// Degrade gracefully: the provider being down is not the client's problem.
		service.logger.Warn("provider_escalation_failed",
			slog.String("query", filter.Query),
			slog.Any("error", err),
		)
		return []*Game{}, nil
	}

	if len(external) == 0 {
		service.logger.Info("provider_escalation_empty", slog.String("query", filter.Query))
		return []*Game{}, nil
	}

	// Stand-in timestamps for records that are not persisted yet.
	now := service.now()
	for _, game := range external {
		game.CreatedAt = now
		game.UpdatedAt = now
	}

	if service.backfill != nil {
		service.backfill.Dispatch(ctx, external)
	}

	service.logger.Info("provider_escalation_served",
		slog.String("query", filter.Query),
		slog.Int("results", len(external)),
	)

	return external, nil
}

// # Listing & Lookup

// GetGame returns a single record by local id.
func (service *Service) GetGame(ctx context.Context, id int64) (*Game, error) {
	return service.repo.GetByID(ctx, id)
}

// GetAllGames lists stored records. A limit <= 0 means unbounded; handlers
// translate the literal "all" and absent/invalid limits before calling.
func (service *Service) GetAllGames(ctx context.Context, limit int) ([]*Game, error) {
	return service.repo.GetAll(ctx, limit)
}

// Discover serves the discovery feed: recently refreshed games by default,
// or a uniform random sample when sort is "random". Trending responses are
// cached briefly to keep the hot path off PostgreSQL.
func (service *Service) Discover(ctx context.Context, sort string, limit int) ([]*Game, error) {
	if limit <= 0 {
		limit = constants.DefaultDiscoverLimit
	}

	if sort == "random" {
		return service.repo.GetRandomSample(ctx, limit)
	}

	if games, ok := service.trending.Get(ctx, limit); ok {
		return games, nil
	}

	games, err := service.repo.GetTrending(ctx, limit)
	if err != nil {
		return nil, err
	}

	service.trending.Set(ctx, limit, games)
	return games, nil
}

// # Mutations

// CreateGame validates and persists a client-submitted record. The store
// assigns the id and both timestamps.
func (service *Service) CreateGame(ctx context.Context, game *Game) error {
	if game.Tags == nil {
		game.Tags = []string{}
	}
	if game.Platforms == nil {
		game.Platforms = []string{}
	}
	if game.GameMode == "" {
		game.GameMode = ModeSinglePlayer
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, game.Title).MaxLen(FieldTitle, game.Title, 300)
	validator.Required(FieldDeveloper, game.Developer).MaxLen(FieldDeveloper, game.Developer, 200)
	validator.OneOf(FieldGameMode, string(game.GameMode),
		string(ModeSinglePlayer), string(ModeMultiplayer), string(ModeBoth))
	validator.FloatRange(FieldReviewRating, game.ReviewRating, 0, 5)
	validator.Custom(FieldPlaytime, game.PlaytimeEstimate < 0, "Must not be negative")
	if game.CoverImage != "" {
		validator.URL(FieldCoverImage, game.CoverImage)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Insert(ctx, game); err != nil {
		return err
	}

	service.logger.Info("game_created",
		slog.Int64("id", game.ID),
		slog.String("title", game.Title),
	)
	return nil
}

// UpdateGame applies a partial update. Fields not supplied stay unchanged;
// a missing id is an explicit NotFound, never a silent no-op.
func (service *Service) UpdateGame(ctx context.Context, id int64, update Update) error {
	if update.IsEmpty() {
		return validate.RequiredError("body", "At least one updatable field is required")
	}

	validator := &validate.Validator{}
	if update.Title != nil {
		validator.Required(FieldTitle, *update.Title).MaxLen(FieldTitle, *update.Title, 300)
	}
	if update.GameMode != nil {
		validator.OneOf(FieldGameMode, string(*update.GameMode),
			string(ModeSinglePlayer), string(ModeMultiplayer), string(ModeBoth))
	}
	if update.ReviewRating != nil {
		validator.FloatRange(FieldReviewRating, *update.ReviewRating, 0, 5)
	}
	if update.PlaytimeEstimate != nil {
		validator.Custom(FieldPlaytime, *update.PlaytimeEstimate < 0, "Must not be negative")
	}
	if update.CoverImage != nil && *update.CoverImage != "" {
		validator.URL(FieldCoverImage, *update.CoverImage)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Update(ctx, id, update); err != nil {
		return err
	}

	service.logger.Info("game_updated", slog.Int64("id", id))
	return nil
}

// DeleteGame removes a record. Deleting a missing id succeeds.
func (service *Service) DeleteGame(ctx context.Context, id int64) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Info("game_deleted", slog.Int64("id", id))
	return nil
}
