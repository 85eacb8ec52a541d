package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"finanzas/internal/amqp"
	"finanzas/internal/core"
	"finanzas/internal/storage"
)

type fakeJournal struct {
	entries   map[int64]*storage.JournalEntry
	markedErr []int64
}

func newFakeJournal(entries ...storage.JournalEntry) *fakeJournal {
	j := &fakeJournal{entries: map[int64]*storage.JournalEntry{}}
	for i := range entries {
		e := entries[i]
		j.entries[e.ID] = &e
	}
	return j
}

func (j *fakeJournal) GetTransaction(_ context.Context, id int64) (storage.JournalEntry, error) {
	e, ok := j.entries[id]
	if !ok {
		return storage.JournalEntry{}, fmt.Errorf("no entry %d", id)
	}
	return *e, nil
}

func (j *fakeJournal) GetPendingSync(_ context.Context, limit int) ([]storage.JournalEntry, error) {
	var out []storage.JournalEntry
	for _, e := range j.entries {
		if !e.Synced && !e.SyncError && len(out) < limit {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (j *fakeJournal) MarkSynced(_ context.Context, id int64) error {
	j.entries[id].Synced = true
	return nil
}

func (j *fakeJournal) MarkSyncError(_ context.Context, id int64) error {
	j.entries[id].SyncError = true
	j.markedErr = append(j.markedErr, id)
	return nil
}

type fakeMirror struct {
	appended []core.Transaction
	err      error
}

func (m *fakeMirror) Append(_ context.Context, t core.Transaction) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.appended = append(m.appended, t)
	return fmt.Sprintf("Transacciones!A%d:C%d", len(m.appended), len(m.appended)), nil
}

func entry(id int64, kind core.Kind, pesos int64) storage.JournalEntry {
	return storage.JournalEntry{
		ID: id,
		Transaction: core.Transaction{
			Timestamp: time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local),
			Kind:      kind,
			Amount:    core.Money{Pesos: pesos},
		},
	}
}

func TestHandleSyncMessage(t *testing.T) {
	journal := newFakeJournal(entry(1, core.Sale, 10000))
	mirror := &fakeMirror{}
	w := NewSyncWorker(journal, mirror, 10)

	msg := amqp.NewTransactionSyncMessage(1)
	if err := w.HandleSyncMessage(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(mirror.appended) != 1 || mirror.appended[0].Amount.Pesos != 10000 {
		t.Fatalf("unexpected mirror state: %+v", mirror.appended)
	}
	if !journal.entries[1].Synced {
		t.Fatal("entry not marked synced")
	}
}

func TestHandleSyncMessageAlreadySynced(t *testing.T) {
	e := entry(1, core.Sale, 100)
	e.Synced = true
	journal := newFakeJournal(e)
	mirror := &fakeMirror{}
	w := NewSyncWorker(journal, mirror, 10)

	if err := w.HandleSyncMessage(context.Background(), amqp.NewTransactionSyncMessage(1)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(mirror.appended) != 0 {
		t.Fatal("synced entry mirrored again")
	}
}

func TestHandleSyncMessageMirrorFailure(t *testing.T) {
	journal := newFakeJournal(entry(1, core.Purchase, 100))
	mirror := &fakeMirror{err: errors.New("api down")}
	w := NewSyncWorker(journal, mirror, 10)

	if err := w.HandleSyncMessage(context.Background(), amqp.NewTransactionSyncMessage(1)); err == nil {
		t.Fatal("expected error")
	}
	if !journal.entries[1].SyncError {
		t.Fatal("entry not marked with sync error")
	}
}

func TestProcessPending(t *testing.T) {
	journal := newFakeJournal(
		entry(1, core.Sale, 100),
		entry(2, core.Purchase, 200),
	)
	mirror := &fakeMirror{}
	w := NewSyncWorker(journal, mirror, 10)

	if err := w.ProcessPending(context.Background()); err != nil {
		t.Fatalf("process pending: %v", err)
	}
	if len(mirror.appended) != 2 {
		t.Fatalf("mirrored %d entries, want 2", len(mirror.appended))
	}
	for id := int64(1); id <= 2; id++ {
		if !journal.entries[id].Synced {
			t.Fatalf("entry %d not marked synced", id)
		}
	}
}
