package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"finanzas/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testTx(kind core.Kind, pesos int64, hour int) core.Transaction {
	return core.Transaction{
		Timestamp: time.Date(2025, 3, 14, hour, 0, 0, 0, time.Local),
		Kind:      kind,
		Amount:    core.Money{Pesos: pesos},
	}
}

func TestAppendAndCountForDay(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)

	for _, tx := range []core.Transaction{
		testTx(core.Purchase, 5000, 9),
		testTx(core.Purchase, 7000, 10),
		testTx(core.Sale, 10000, 11),
	} {
		if _, err := repo.Append(ctx, tx); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	purchases, err := repo.CountForDay(ctx, day, core.Purchase)
	if err != nil || purchases != 2 {
		t.Fatalf("purchases = %d (err=%v), want 2", purchases, err)
	}
	sales, err := repo.CountForDay(ctx, day, core.Sale)
	if err != nil || sales != 1 {
		t.Fatalf("sales = %d (err=%v), want 1", sales, err)
	}

	other, err := repo.CountForDay(ctx, day.AddDate(0, 0, 1), core.Purchase)
	if err != nil || other != 0 {
		t.Fatalf("next day purchases = %d (err=%v), want 0", other, err)
	}
}

func TestAppendRejectsInvalid(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.Append(context.Background(), core.Transaction{}); err == nil {
		t.Fatal("invalid transaction accepted")
	}
}

func TestListForDayAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)

	id, err := repo.Append(ctx, testTx(core.Sale, 10000, 9))
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	entries, err := repo.ListForDay(ctx, day)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != id {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	got := entries[0].Transaction
	if got.Kind != core.Sale || got.Amount.Pesos != 10000 {
		t.Fatalf("round trip lost data: {%s %d}", got.Kind, got.Amount.Pesos)
	}

	entry, err := repo.GetTransaction(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if entry.Transaction.Amount.Pesos != 10000 || entry.Synced {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestDeleteCompensation(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)

	id, err := repo.Append(ctx, testTx(core.Purchase, 5000, 9))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	n, err := repo.CountForDay(ctx, day, core.Purchase)
	if err != nil || n != 0 {
		t.Fatalf("count after delete = %d (err=%v), want 0", n, err)
	}
}

func TestSyncStateTransitions(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.Append(ctx, testTx(core.Sale, 100, 9))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	second, err := repo.Append(ctx, testTx(core.Sale, 200, 10))
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	pending, err := repo.GetPendingSync(ctx, 10)
	if err != nil || len(pending) != 2 {
		t.Fatalf("pending = %d (err=%v), want 2", len(pending), err)
	}

	if err := repo.MarkSynced(ctx, first); err != nil {
		t.Fatalf("mark synced: %v", err)
	}
	if err := repo.MarkSyncError(ctx, second); err != nil {
		t.Fatalf("mark sync error: %v", err)
	}

	pending, err = repo.GetPendingSync(ctx, 10)
	if err != nil || len(pending) != 0 {
		t.Fatalf("pending after marks = %d (err=%v), want 0", len(pending), err)
	}

	entry, err := repo.GetTransaction(ctx, second)
	if err != nil || !entry.SyncError {
		t.Fatalf("second entry should carry sync error: %+v (err=%v)", entry, err)
	}
}
