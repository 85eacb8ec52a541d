package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"finanzas/internal/core"
	"finanzas/internal/ledger"
	"finanzas/internal/ledger/memory"
)

type fakeJournal struct {
	entries map[int64]core.Transaction
	nextID  int64
	failOn  string
}

func newFakeJournal() *fakeJournal {
	return &fakeJournal{entries: map[int64]core.Transaction{}, nextID: 1}
}

func (j *fakeJournal) Append(_ context.Context, t core.Transaction) (int64, error) {
	if j.failOn == "append" {
		return 0, errors.New("journal down")
	}
	id := j.nextID
	j.nextID++
	j.entries[id] = t
	return id, nil
}

func (j *fakeJournal) Delete(_ context.Context, id int64) error {
	delete(j.entries, id)
	return nil
}

func (j *fakeJournal) CountForDay(_ context.Context, day time.Time, kind core.Kind) (int, error) {
	n := 0
	for _, t := range j.entries {
		sameDay := t.Timestamp.Year() == day.Year() &&
			t.Timestamp.Month() == day.Month() && t.Timestamp.Day() == day.Day()
		if sameDay && t.Kind == kind {
			n++
		}
	}
	return n, nil
}

type fakePublisher struct {
	published []int64
	err       error
}

func (p *fakePublisher) PublishTransactionSync(_ context.Context, id int64) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, id)
	return nil
}

type failingLedger struct{}

func (failingLedger) Append(context.Context, core.Transaction, ledger.Counts) (string, error) {
	return "", errors.New("disk full")
}

func testTx(kind core.Kind, pesos int64, hour int) core.Transaction {
	return core.Transaction{
		Timestamp: time.Date(2025, 3, 14, hour, 0, 0, 0, time.Local),
		Kind:      kind,
		Amount:    core.Money{Pesos: pesos},
	}
}

func TestCreateTransaction(t *testing.T) {
	journal := newFakeJournal()
	store := memory.New()
	publisher := &fakePublisher{}
	svc := NewRecorderService(journal, store, publisher)
	ctx := context.Background()

	refs := []string{}
	for _, tx := range []core.Transaction{
		testTx(core.Purchase, 5000, 9),
		testTx(core.Purchase, 7000, 10),
		testTx(core.Sale, 10000, 11),
	} {
		ref, err := svc.CreateTransaction(ctx, tx)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		refs = append(refs, ref)
	}

	// Row accounting comes from the journal counts, so the second purchase
	// lands one row below the first and the sale starts its own section.
	want := []string{"14-03-2025!B3", "14-03-2025!B4", "14-03-2025!D3"}
	for n := range want {
		if refs[n] != want[n] {
			t.Fatalf("ref %d = %q, want %q", n, refs[n], want[n])
		}
	}

	if len(publisher.published) != 3 {
		t.Fatalf("published %d messages, want 3", len(publisher.published))
	}
}

func TestCreateTransactionInvalid(t *testing.T) {
	svc := NewRecorderService(newFakeJournal(), memory.New(), nil)
	if _, err := svc.CreateTransaction(context.Background(), core.Transaction{}); err == nil {
		t.Fatal("invalid transaction accepted")
	}
}

func TestCreateTransactionLedgerFailureRollsBack(t *testing.T) {
	journal := newFakeJournal()
	svc := NewRecorderService(journal, failingLedger{}, nil)
	ctx := context.Background()

	if _, err := svc.CreateTransaction(ctx, testTx(core.Sale, 100, 9)); err == nil {
		t.Fatal("expected ledger error")
	}

	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)
	n, _ := journal.CountForDay(ctx, day, core.Sale)
	if n != 0 {
		t.Fatalf("journal row not rolled back: count = %d", n)
	}
}

func TestCreateTransactionPublishFailureIsNotFatal(t *testing.T) {
	journal := newFakeJournal()
	publisher := &fakePublisher{err: errors.New("broker down")}
	svc := NewRecorderService(journal, memory.New(), publisher)

	if _, err := svc.CreateTransaction(context.Background(), testTx(core.Sale, 100, 9)); err != nil {
		t.Fatalf("publish failure leaked: %v", err)
	}
}

func TestCreateTransactionWithoutPublisher(t *testing.T) {
	svc := NewRecorderService(newFakeJournal(), memory.New(), nil)
	if _, err := svc.CreateTransaction(context.Background(), testTx(core.Purchase, 100, 9)); err != nil {
		t.Fatalf("nil publisher should be allowed: %v", err)
	}
}
