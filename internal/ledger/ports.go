// Package ledger defines the monthly-workbook ports and naming scheme.
package ledger

import (
	"context"
	"fmt"
	"time"

	"finanzas/internal/core"
)

// Counts reports how many data rows each section of a day sheet already
// holds. The journal is the source of truth for these numbers; deriving the
// next row from them (instead of rescanning cells) keeps stale totals labels
// from ever being mistaken for data.
type Counts struct {
	Purchases int
	Sales     int
}

type (
	// Writer appends one transaction to the day sheet of its month's
	// workbook. prior holds the section row counts before this append.
	Writer interface {
		Append(ctx context.Context, t core.Transaction, prior Counts) (ref string, err error)
	}

	// Reader re-reads all transactions recorded on a given day.
	Reader interface {
		ReadDay(ctx context.Context, day time.Time) ([]core.Transaction, error)
	}
)

// Timestamp layout used in ledger cells.
const TimestampLayout = "02-01-2006 15:04:05"

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// WorkbookName returns the monthly workbook file name for a moment in time,
// e.g. "finanzas_marzo_2025.xlsx".
func WorkbookName(t time.Time) string {
	return fmt.Sprintf("finanzas_%s_%d.xlsx", monthNames[t.Month()-1], t.Year())
}

// SheetName returns the day sheet name for a moment in time, e.g. "14-03-2025".
func SheetName(t time.Time) string {
	return t.Format("02-01-2006")
}
