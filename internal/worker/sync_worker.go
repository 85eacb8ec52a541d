// Package worker mirrors journal entries into the Google Sheets spreadsheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"finanzas/internal/amqp"
	"finanzas/internal/sheets"
	"finanzas/internal/storage"
)

// Journal is the subset of the SQLite repository the worker needs.
type Journal interface {
	GetTransaction(ctx context.Context, id int64) (storage.JournalEntry, error)
	GetPendingSync(ctx context.Context, limit int) ([]storage.JournalEntry, error)
	MarkSynced(ctx context.Context, id int64) error
	MarkSyncError(ctx context.Context, id int64) error
}

// SyncWorker consumes sync messages and pushes the referenced transactions
// to the mirror spreadsheet.
type SyncWorker struct {
	journal   Journal
	mirror    sheets.TransactionAppender
	batchSize int
}

func NewSyncWorker(journal Journal, mirror sheets.TransactionAppender, batchSize int) *SyncWorker {
	return &SyncWorker{
		journal:   journal,
		mirror:    mirror,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "id", msg.ID)

	entry, err := w.journal.GetTransaction(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get transaction from journal: %w", err)
	}
	if entry.Synced {
		slog.InfoContext(ctx, "Transaction already mirrored, skipping", "id", msg.ID)
		return nil
	}

	if err := w.mirrorEntry(ctx, entry); err != nil {
		return fmt.Errorf("mirror transaction: %w", err)
	}
	return nil
}

// ProcessPending mirrors entries whose AMQP message was lost. This is the
// periodic backup path; entries already marked with a sync error are left
// for manual inspection.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.journal.GetPendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending transactions: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending transactions", "count", len(pending))

	for _, entry := range pending {
		if err := w.mirrorEntry(ctx, entry); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror transaction", "id", entry.ID, "error", err)
			continue
		}
	}
	return nil
}

func (w *SyncWorker) mirrorEntry(ctx context.Context, entry storage.JournalEntry) error {
	ref, err := w.mirror.Append(ctx, entry.Transaction)
	if err != nil {
		if markErr := w.journal.MarkSyncError(ctx, entry.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", entry.ID, "error", markErr)
		}
		return fmt.Errorf("append to mirror: %w", err)
	}

	if err := w.journal.MarkSynced(ctx, entry.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", entry.ID, "error", err)
		// Don't return an error - the mirror write itself succeeded
	}

	slog.InfoContext(ctx, "Transaction mirrored",
		"id", entry.ID,
		"sheets_ref", ref,
		"kind", entry.Transaction.Kind,
		"amount_pesos", entry.Transaction.Amount.Pesos)

	return nil
}
