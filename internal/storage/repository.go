// Package storage keeps the transaction journal in SQLite. The journal is
// the out-of-band row accounting for the xlsx ledger (the counts decide the
// next free data row) and the source for the async mirror worker.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"finanzas/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

// JournalEntry is one journal row with its database identity and sync state.
type JournalEntry struct {
	ID          int64
	Transaction core.Transaction
	Synced      bool
	SyncError   bool
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append records a transaction and returns its journal ID.
func (r *SQLiteRepository) Append(ctx context.Context, t core.Transaction) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (recorded_at, day, month, year, kind, amount_pesos)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.Timestamp.Format(time.RFC3339),
		t.Timestamp.Day(), int(t.Timestamp.Month()), t.Timestamp.Year(),
		string(t.Kind), t.Amount.Pesos)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to journal",
		"id", id,
		"kind", t.Kind,
		"amount_pesos", t.Amount.Pesos)

	return id, nil
}

// Delete removes a journal row. Used to compensate when the ledger write
// that follows an append fails, keeping journal counts aligned with the
// workbook.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// CountForDay reports how many transactions of a kind were recorded on the
// given calendar day. This count is the ledger's next-row source of truth.
func (r *SQLiteRepository) CountForDay(ctx context.Context, day time.Time, kind core.Kind) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE year = ? AND month = ? AND day = ? AND kind = ?`,
		day.Year(), int(day.Month()), day.Day(), string(kind)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count transactions for day: %w", err)
	}
	return n, nil
}

// ListForDay returns the day's journal entries in insertion order.
func (r *SQLiteRepository) ListForDay(ctx context.Context, day time.Time) ([]JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, recorded_at, kind, amount_pesos, synced, sync_error
		 FROM transactions WHERE year = ? AND month = ? AND day = ? ORDER BY id`,
		day.Year(), int(day.Month()), day.Day())
	if err != nil {
		return nil, fmt.Errorf("list transactions for day: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// GetTransaction retrieves a single journal entry by ID.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (JournalEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, recorded_at, kind, amount_pesos, synced, sync_error
		 FROM transactions WHERE id = ?`, id)

	entry, err := scanEntry(row)
	if err != nil {
		return JournalEntry{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return entry, nil
}

// GetPendingSync returns entries not yet mirrored, oldest first.
func (r *SQLiteRepository) GetPendingSync(ctx context.Context, limit int) ([]JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, recorded_at, kind, amount_pesos, synced, sync_error
		 FROM transactions WHERE synced = 0 AND sync_error = 0 ORDER BY id LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync transactions: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// MarkSynced marks a transaction as successfully mirrored.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET synced = 1, sync_error = 0 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}
	slog.InfoContext(ctx, "Transaction marked as synced", "id", id)
	return nil
}

// MarkSyncError marks a transaction as having failed to mirror.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_error = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark transaction sync error: %w", err)
	}
	slog.WarnContext(ctx, "Transaction marked with sync error", "id", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (JournalEntry, error) {
	var (
		entry    JournalEntry
		recorded string
		kind     string
	)
	if err := row.Scan(&entry.ID, &recorded, &kind, &entry.Transaction.Amount.Pesos,
		&entry.Synced, &entry.SyncError); err != nil {
		return JournalEntry{}, err
	}

	ts, err := time.Parse(time.RFC3339, recorded)
	if err != nil {
		return JournalEntry{}, fmt.Errorf("parse recorded_at %q: %w", recorded, err)
	}
	entry.Transaction.Timestamp = ts
	entry.Transaction.Kind = core.Kind(kind)
	return entry, nil
}

func scanEntries(rows *sql.Rows) ([]JournalEntry, error) {
	var out []JournalEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}
