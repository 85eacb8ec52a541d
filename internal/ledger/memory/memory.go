// Package memory is an in-memory ledger used by tests and as a fallback
// backend. It mirrors the xlsx adapter's row accounting without touching disk.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"finanzas/internal/core"
	"finanzas/internal/ledger"
)

type daySheet struct {
	purchases []core.Transaction
	sales     []core.Transaction
}

type Store struct {
	mu   sync.Mutex
	days map[string]*daySheet
}

var (
	_ ledger.Writer = (*Store)(nil)
	_ ledger.Reader = (*Store)(nil)
)

func New() *Store {
	return &Store{days: make(map[string]*daySheet)}
}

// Append stores the transaction and returns a reference in the same
// sheet!cell shape the xlsx adapter produces.
func (s *Store) Append(_ context.Context, t core.Transaction, prior ledger.Counts) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sheet := ledger.SheetName(t.Timestamp)
	day, ok := s.days[sheet]
	if !ok {
		day = &daySheet{}
		s.days[sheet] = day
	}

	col := "B"
	row := 3 + prior.Purchases
	if t.Kind == core.Sale {
		col = "D"
		row = 3 + prior.Sales
		day.sales = append(day.sales, t)
	} else {
		day.purchases = append(day.purchases, t)
	}
	return fmt.Sprintf("%s!%s%d", sheet, col, row), nil
}

// ReadDay returns the day's transactions, purchases before sales.
func (s *Store) ReadDay(_ context.Context, dayTime time.Time) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day, ok := s.days[ledger.SheetName(dayTime)]
	if !ok {
		return nil, nil
	}
	out := make([]core.Transaction, 0, len(day.purchases)+len(day.sales))
	out = append(out, day.purchases...)
	out = append(out, day.sales...)
	return out, nil
}
