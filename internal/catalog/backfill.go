package catalog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/minhngvu/gamedex/internal/platform/constants"
	"github.com/minhngvu/gamedex/internal/platform/dberr"
	"github.com/minhngvu/gamedex/internal/platform/validate"
)

// Dispatcher hands externally-sourced records to the backfill path without
// the caller waiting for persistence. The search orchestrator only depends
// on this; tests substitute a synchronous or recording implementation.
type Dispatcher interface {
	Dispatch(ctx context.Context, games []*Game)
}

// ItemFailure records one record that could not be persisted.
type ItemFailure struct {
	Title string
	Err   error
}

// Report summarizes one backfill batch. Failures never propagate into the
// request that triggered the batch; they live here, for logs and tests.
type Report struct {
	Attempted int
	Inserted  int
	Skipped   int
	Failures  []ItemFailure
}

// Backfill persists provider-sourced records into the catalog store,
// detached from the request path.
//
// # De-duplication
//
// Before inserting, each record is checked against the store by normalized
// title+developer. The check is an optimization only: two concurrent
// backfills of the same record may both pass it, and the store's uniqueness
// constraint on (lower(title), lower(developer)) is the authoritative guard.
// A unique-violation insert is therefore counted as a skip, not a failure.
type Backfill struct {
	repo     Repository
	logger   *slog.Logger
	maxBatch int

	// observer receives the final report of every dispatched batch.
	// Production wires logReport; tests wire a channel send.
	observer func(Report)
}

// NewBackfill constructs the backfill writer with the default batch bound.
func NewBackfill(repo Repository, logger *slog.Logger) *Backfill {
	b := &Backfill{
		repo:     repo,
		logger:   logger,
		maxBatch: constants.BackfillMaxBatch,
	}
	b.observer = b.logReport
	return b
}

// SetObserver replaces the batch-completion observer. Intended for tests
// that need a deterministic completion signal.
func (b *Backfill) SetObserver(fn func(Report)) {
	b.observer = fn
}

// Dispatch runs the batch on its own goroutine and returns immediately.
//
// The work continues on a detached context: a client disconnecting after its
// search response must not cancel the persistence it triggered. The batch
// outcome is delivered to the observer, never to the caller.
func (b *Backfill) Dispatch(ctx context.Context, games []*Game) {
	detached := context.WithoutCancel(ctx)
	go func() {
		b.observer(b.PersistBatch(detached, games))
	}()
}

// PersistBatch writes at most maxBatch records, skipping duplicates and
// collecting per-item failures. One bad record never aborts the rest.
func (b *Backfill) PersistBatch(ctx context.Context, games []*Game) Report {
	if len(games) > b.maxBatch {
		games = games[:b.maxBatch]
	}

	report := Report{Attempted: len(games)}

	for _, game := range games {
		if strings.TrimSpace(game.Title) == "" {
			report.Failures = append(report.Failures, ItemFailure{
				Title: game.Title,
				Err:   validate.RequiredError(FieldTitle, "This field is required"),
			})
			continue
		}

		exists, err := b.repo.ExistsByTitleAndDeveloper(ctx, game.Title, game.Developer)
		if err != nil {
			report.Failures = append(report.Failures, ItemFailure{Title: game.Title, Err: err})
			continue
		}
		if exists {
			report.Skipped++
			continue
		}

		// Copy so the transient provider id and stand-in timestamps on the
		// response record are never mistaken for persisted state.
		record := *game
		record.ID = 0

		if err := b.repo.Insert(ctx, &record); err != nil {
			// Lost the race to a concurrent backfill; the constraint did its job.
			if dberr.IsDuplicate(err) {
				report.Skipped++
				continue
			}
			report.Failures = append(report.Failures, ItemFailure{Title: game.Title, Err: err})
			continue
		}

		report.Inserted++
	}

	return report
}

// logReport is the production observer.
func (b *Backfill) logReport(report Report) {
	attrs := []any{
		slog.Int("attempted", report.Attempted),
		slog.Int("inserted", report.Inserted),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", len(report.Failures)),
	}
	if len(report.Failures) == 0 {
		b.logger.Info("backfill_finished", attrs...)
		return
	}

	for _, failure := range report.Failures {
		b.logger.Error("backfill_item_failed",
			slog.String("title", failure.Title),
			slog.Any("error", failure.Err),
		)
	}
	b.logger.Warn("backfill_finished_with_failures", attrs...)
}
