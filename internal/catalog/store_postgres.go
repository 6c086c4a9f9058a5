/*
PostgreSQL implementation of the catalog [Repository].

Relevance ordering for text searches is computed in SQL with a CASE ranking
(exact title match, then prefix, then substring) so the store — not the
service — owns result ordering. Tags and platforms are stored as JSONB arrays
to keep round-trip fidelity without native array columns in the row shape.
*/
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhngvu/gamedex/internal/platform/database/schema"
	"github.com/minhngvu/gamedex/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// gameColumns is the SELECT column list shared by every read query.
func gameColumns() string {
	return strings.Join(schema.CatalogGame.Columns(), ", ")
}

func (repository *PostgresRepository) Search(ctx context.Context, filter Filter) ([]*Game, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s FROM %s WHERE TRUE`,
		gameColumns(), schema.CatalogGame.Table))

	// Title: case-insensitive substring match.
	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s ILIKE '%%' || $%d || '%%'", schema.CatalogGame.Title, argID))
		args = append(args, filter.Query)
		argID++
	}

	// Genres: substring match against any supplied filter (OR across filters).
	if len(filter.Genres) > 0 {
		clauses := make([]string, 0, len(filter.Genres))
		for _, genre := range filter.Genres {
			clauses = append(clauses, fmt.Sprintf("%s ILIKE '%%' || $%d || '%%'", schema.CatalogGame.Genre, argID))
			args = append(args, genre)
			argID++
		}
		queryBuilder.WriteString(" AND (" + strings.Join(clauses, " OR ") + ")")
	}

	// Rating: inclusive lower bound.
	if filter.MinRating > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s >= $%d", schema.CatalogGame.ReviewRating, argID))
		args = append(args, filter.MinRating)
		argID++
	}

	// Mode: exact match.
	if filter.Mode != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.CatalogGame.GameMode, argID))
		args = append(args, string(filter.Mode))
		argID++
	}

	// Relevance tiers only apply when there is a text query to rank against.
	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(`
			ORDER BY CASE
				WHEN lower(%[1]s) = lower($%[2]d) THEN 1
				WHEN %[1]s ILIKE $%[2]d || '%%' THEN 2
				ELSE 3
			END, %[3]s DESC, %[4]s DESC`,
			schema.CatalogGame.Title, argID,
			schema.CatalogGame.ReviewRating, schema.CatalogGame.UpdatedAt))
		args = append(args, filter.Query)
	} else {
		queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC, %s DESC",
			schema.CatalogGame.ReviewRating, schema.CatalogGame.UpdatedAt))
	}

	return repository.queryGames(ctx, queryBuilder.String(), args, "search_games")
}

func (repository *PostgresRepository) GetByID(ctx context.Context, id int64) (*Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		gameColumns(), schema.CatalogGame.Table, schema.CatalogGame.ID)

	game, err := scanGame(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_game_by_id")
	}
	return game, nil
}

func (repository *PostgresRepository) GetAll(ctx context.Context, limit int) ([]*Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, gameColumns(), schema.CatalogGame.Table)

	var args []any
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	return repository.queryGames(ctx, query, args, "get_all_games")
}

func (repository *PostgresRepository) GetTrending(ctx context.Context, limit int) ([]*Game, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		ORDER BY %s DESC, %s DESC, %s DESC
		LIMIT $1`,
		gameColumns(), schema.CatalogGame.Table,
		schema.CatalogGame.UpdatedAt, schema.CatalogGame.CreatedAt, schema.CatalogGame.ReviewRating)

	return repository.queryGames(ctx, query, []any{limit}, "get_trending_games")
}

func (repository *PostgresRepository) GetRandomSample(ctx context.Context, limit int) ([]*Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY random() LIMIT $1`,
		gameColumns(), schema.CatalogGame.Table)

	return repository.queryGames(ctx, query, []any{limit}, "get_random_games")
}

func (repository *PostgresRepository) Insert(ctx context.Context, game *Game) error {
	tagsJSON, err := json.Marshal(orEmpty(game.Tags))
	if err != nil {
		return dberr.Wrap(err, "encode_tags")
	}
	platformsJSON, err := json.Marshal(orEmpty(game.Platforms))
	if err != nil {
		return dberr.Wrap(err, "encode_platforms")
	}

	// NOW() is transaction time, so created_at == updated_at at creation.
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING %s, %s, %s`,
		schema.CatalogGame.Table,
		schema.CatalogGame.Title, schema.CatalogGame.Description, schema.CatalogGame.Genre,
		schema.CatalogGame.Tags, schema.CatalogGame.Platforms, schema.CatalogGame.PlaytimeEstimate,
		schema.CatalogGame.Developer, schema.CatalogGame.Publisher, schema.CatalogGame.GameMode,
		schema.CatalogGame.ReleaseDate, schema.CatalogGame.ReviewRating, schema.CatalogGame.CoverImage,
		schema.CatalogGame.CreatedAt, schema.CatalogGame.UpdatedAt,
		schema.CatalogGame.ID, schema.CatalogGame.CreatedAt, schema.CatalogGame.UpdatedAt,
	)

	err = repository.db.QueryRow(ctx, query,
		game.Title, game.Description, game.Genre, tagsJSON, platformsJSON,
		game.PlaytimeEstimate, game.Developer, game.Publisher, string(game.GameMode),
		game.ReleaseDate, game.ReviewRating, game.CoverImage,
	).Scan(&game.ID, &game.CreatedAt, &game.UpdatedAt)

	return dberr.Wrap(err, "insert_game")
}

func (repository *PostgresRepository) Update(ctx context.Context, id int64, update Update) error {
	setClauses := []string{}
	args := []any{id}
	argID := 2

	set := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	// Explicit field-by-field mapping: only the fields enumerated here can
	// ever reach the store.
	if update.Title != nil {
		set(schema.CatalogGame.Title, *update.Title)
	}
	if update.Description != nil {
		set(schema.CatalogGame.Description, *update.Description)
	}
	if update.Genre != nil {
		set(schema.CatalogGame.Genre, *update.Genre)
	}
	if update.Tags != nil {
		tagsJSON, err := json.Marshal(orEmpty(*update.Tags))
		if err != nil {
			return dberr.Wrap(err, "encode_tags")
		}
		set(schema.CatalogGame.Tags, tagsJSON)
	}
	if update.Platforms != nil {
		platformsJSON, err := json.Marshal(orEmpty(*update.Platforms))
		if err != nil {
			return dberr.Wrap(err, "encode_platforms")
		}
		set(schema.CatalogGame.Platforms, platformsJSON)
	}
	if update.PlaytimeEstimate != nil {
		set(schema.CatalogGame.PlaytimeEstimate, *update.PlaytimeEstimate)
	}
	if update.Developer != nil {
		set(schema.CatalogGame.Developer, *update.Developer)
	}
	if update.Publisher != nil {
		set(schema.CatalogGame.Publisher, *update.Publisher)
	}
	if update.GameMode != nil {
		set(schema.CatalogGame.GameMode, string(*update.GameMode))
	}
	if update.ReleaseDate != nil {
		set(schema.CatalogGame.ReleaseDate, *update.ReleaseDate)
	}
	if update.ReviewRating != nil {
		set(schema.CatalogGame.ReviewRating, *update.ReviewRating)
	}
	if update.CoverImage != nil {
		set(schema.CatalogGame.CoverImage, *update.CoverImage)
	}

	// Every mutation refreshes updated_at, even a field-free touch.
	setClauses = append(setClauses, fmt.Sprintf("%s = NOW()", schema.CatalogGame.UpdatedAt))

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1 RETURNING %s`,
		schema.CatalogGame.Table, strings.Join(setClauses, ", "),
		schema.CatalogGame.ID, schema.CatalogGame.UpdatedAt)

	var updatedAt any
	err := repository.db.QueryRow(ctx, query, args...).Scan(&updatedAt)
	return dberr.Wrap(err, "update_game")
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogGame.Table, schema.CatalogGame.ID)

	// Idempotent: deleting a missing id is not an error.
	_, err := repository.db.Exec(ctx, query, id)
	return dberr.Wrap(err, "delete_game")
}

func (repository *PostgresRepository) ExistsByTitleAndDeveloper(ctx context.Context, title, developer string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE lower(%s) = lower($1) AND lower(%s) = lower($2)
		)`,
		schema.CatalogGame.Table, schema.CatalogGame.Title, schema.CatalogGame.Developer)

	var exists bool
	if err := repository.db.QueryRow(ctx, query, title, developer).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "exists_game")
	}
	return exists, nil
}

// # Scan Helpers

func (repository *PostgresRepository) queryGames(ctx context.Context, query string, args []any, action string) ([]*Game, error) {
	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	games := make([]*Game, 0)
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_game")
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, action)
	}

	return games, nil
}

// scanGame hydrates a [Game] from a row following the gameColumns order.
func scanGame(row pgx.Row) (*Game, error) {
	game := &Game{}
	var tagsJSON, platformsJSON []byte
	var mode string

	err := row.Scan(
		&game.ID, &game.Title, &game.Description, &game.Genre,
		&tagsJSON, &platformsJSON, &game.PlaytimeEstimate,
		&game.Developer, &game.Publisher, &mode,
		&game.ReleaseDate, &game.ReviewRating, &game.CoverImage,
		&game.CreatedAt, &game.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	game.GameMode = GameMode(mode)
	if err := json.Unmarshal(tagsJSON, &game.Tags); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(platformsJSON, &game.Platforms); err != nil {
		return nil, err
	}

	return game, nil
}

// orEmpty substitutes an empty slice for nil so JSONB columns always hold
// an array, never null.
func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
