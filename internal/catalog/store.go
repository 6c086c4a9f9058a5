package catalog

import "context"

// Repository is the persisted store behind the catalog.
//
// Implementations must be safe for concurrent use; correctness under
// concurrent writers relies on store-level constraints (uniqueness, atomic
// single-row writes), never on in-process locking.
type Repository interface {
	// Search returns records matching the filter, ordered by relevance when
	// the filter carries a text query (exact title, then prefix, then other
	// matches; rating and recency break ties) and by rating/recency otherwise.
	Search(ctx context.Context, filter Filter) ([]*Game, error)

	// GetByID returns the record with the given local id, or NotFound.
	GetByID(ctx context.Context, id int64) (*Game, error)

	// GetAll returns stored records in no guaranteed order.
	// A limit <= 0 means unbounded.
	GetAll(ctx context.Context, limit int) ([]*Game, error)

	// GetTrending returns the most recently refreshed records: updated_at
	// first, then created_at, then rating.
	GetTrending(ctx context.Context, limit int) ([]*Game, error)

	// GetRandomSample returns up to limit records sampled uniformly without
	// replacement.
	GetRandomSample(ctx context.Context, limit int) ([]*Game, error)

	// Insert persists a new record, assigning the local id and both
	// timestamps server-side. The input's ID and timestamps are ignored.
	Insert(ctx context.Context, game *Game) error

	// Update applies the non-nil fields of the partial update and refreshes
	// updated_at. Returns NotFound when the id does not exist.
	Update(ctx context.Context, id int64, update Update) error

	// Delete removes the record physically. Deleting a missing id is a no-op.
	Delete(ctx context.Context, id int64) error

	// ExistsByTitleAndDeveloper reports whether a record with the same
	// case-insensitive title and developer is already stored. Used as the
	// backfill de-duplication pre-check; the store's uniqueness constraint
	// remains the authoritative guard.
	ExistsByTitleAndDeveloper(ctx context.Context, title, developer string) (bool, error)
}
