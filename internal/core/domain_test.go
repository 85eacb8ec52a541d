package core

import (
	"testing"
	"time"
)

func TestTransactionValidate(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 30, 0, 0, time.Local)

	valid := Transaction{Timestamp: now, Kind: Sale, Amount: Money{Pesos: 10000}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	cases := []struct {
		name string
		tx   Transaction
	}{
		{"zero timestamp", Transaction{Kind: Purchase, Amount: Money{Pesos: 1}}},
		{"unknown kind", Transaction{Timestamp: now, Kind: "trueque", Amount: Money{Pesos: 1}}},
		{"negative amount", Transaction{Timestamp: now, Kind: Sale, Amount: Money{Pesos: -5}}},
	}
	for _, tc := range cases {
		if err := tc.tx.Validate(); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestKindValidate(t *testing.T) {
	if err := Purchase.Validate(); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if err := Sale.Validate(); err != nil {
		t.Fatalf("sale: %v", err)
	}
	if err := Kind("").Validate(); err == nil {
		t.Fatal("empty kind accepted")
	}
}
