// Package services orchestrates a confirmed transaction across the journal,
// the xlsx ledger and the async mirror queue.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"finanzas/internal/core"
	"finanzas/internal/ledger"
)

type (
	// Journal is the SQLite-backed row accounting for the ledger.
	Journal interface {
		Append(ctx context.Context, t core.Transaction) (int64, error)
		Delete(ctx context.Context, id int64) error
		CountForDay(ctx context.Context, day time.Time, kind core.Kind) (int, error)
	}

	// Publisher hands a journal entry to the mirror worker. May be nil when
	// mirroring is disabled.
	Publisher interface {
		PublishTransactionSync(ctx context.Context, id int64) error
	}
)

// RecorderService persists confirmed transactions. Journal and ledger are
// written synchronously within the cycle; the mirror publish is best-effort.
type RecorderService struct {
	journal   Journal
	ledger    ledger.Writer
	publisher Publisher
}

func NewRecorderService(journal Journal, ledgerWriter ledger.Writer, publisher Publisher) *RecorderService {
	return &RecorderService{
		journal:   journal,
		ledger:    ledgerWriter,
		publisher: publisher,
	}
}

// CreateTransaction appends the transaction to the journal and the ledger
// and returns the ledger cell reference. A ledger failure rolls the journal
// row back so the two stay aligned; the error is fatal for the cycle.
func (s *RecorderService) CreateTransaction(ctx context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	prior, err := s.dayCounts(ctx, t.Timestamp)
	if err != nil {
		return "", err
	}

	id, err := s.journal.Append(ctx, t)
	if err != nil {
		return "", fmt.Errorf("journal transaction: %w", err)
	}

	ref, err := s.ledger.Append(ctx, t, prior)
	if err != nil {
		if delErr := s.journal.Delete(ctx, id); delErr != nil {
			slog.ErrorContext(ctx, "Failed to roll back journal entry after ledger error",
				"id", id, "error", delErr)
		}
		return "", fmt.Errorf("write ledger: %w", err)
	}

	if err := s.publishSyncMessage(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", id, "error", err)
		// Don't fail the cycle - the periodic resync will pick it up
	}

	return ref, nil
}

func (s *RecorderService) dayCounts(ctx context.Context, day time.Time) (ledger.Counts, error) {
	purchases, err := s.journal.CountForDay(ctx, day, core.Purchase)
	if err != nil {
		return ledger.Counts{}, fmt.Errorf("count purchases: %w", err)
	}
	sales, err := s.journal.CountForDay(ctx, day, core.Sale)
	if err != nil {
		return ledger.Counts{}, fmt.Errorf("count sales: %w", err)
	}
	return ledger.Counts{Purchases: purchases, Sales: sales}, nil
}

func (s *RecorderService) publishSyncMessage(ctx context.Context, id int64) error {
	if s.publisher == nil {
		slog.DebugContext(ctx, "Mirror publisher not available, skipping sync message")
		return nil
	}
	return s.publisher.PublishTransactionSync(ctx, id)
}
