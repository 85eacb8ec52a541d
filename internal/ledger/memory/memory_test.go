package memory

import (
	"context"
	"testing"
	"time"

	"finanzas/internal/core"
	"finanzas/internal/ledger"
)

func TestAppendAndReadDay(t *testing.T) {
	s := New()
	ctx := context.Background()
	stamp := time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local)

	ref, err := s.Append(ctx, core.Transaction{
		Timestamp: stamp, Kind: core.Purchase, Amount: core.Money{Pesos: 5000},
	}, ledger.Counts{})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if ref != "14-03-2025!B3" {
		t.Fatalf("ref = %q", ref)
	}

	ref, err = s.Append(ctx, core.Transaction{
		Timestamp: stamp, Kind: core.Sale, Amount: core.Money{Pesos: 10000},
	}, ledger.Counts{Purchases: 1})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if ref != "14-03-2025!D3" {
		t.Fatalf("ref = %q", ref)
	}

	got, err := s.ReadDay(ctx, stamp)
	if err != nil {
		t.Fatalf("read day: %v", err)
	}
	if len(got) != 2 || got[0].Kind != core.Purchase || got[1].Kind != core.Sale {
		t.Fatalf("unexpected transactions: %+v", got)
	}

	other, err := s.ReadDay(ctx, stamp.AddDate(0, 0, 1))
	if err != nil || other != nil {
		t.Fatalf("next day should be empty: %v, %v", other, err)
	}
}

func TestAppendRejectsInvalid(t *testing.T) {
	s := New()
	_, err := s.Append(context.Background(), core.Transaction{}, ledger.Counts{})
	if err == nil {
		t.Fatal("invalid transaction accepted")
	}
}
