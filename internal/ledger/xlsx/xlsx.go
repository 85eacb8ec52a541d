// Package xlsx persists the ledger as one Excel workbook per month with one
// sheet per day. Purchases occupy columns A/B, sales C/D; two header rows
// precede the data and a totals row with SUM formulas trails it.
package xlsx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"finanzas/internal/core"
	"finanzas/internal/ledger"
)

type Ledger struct {
	dir string
}

var (
	_ ledger.Writer = (*Ledger)(nil)
	_ ledger.Reader = (*Ledger)(nil)
)

// New returns a ledger rooted at dir. The directory is created on first append.
func New(dir string) *Ledger {
	return &Ledger{dir: dir}
}

// Append writes the transaction into its day sheet. The target row comes
// from the journal-derived section counts, not from scanning cells, so a
// totals label left by a previous append can never shadow a data row. The
// previous totals row is cleared before the new one is written; every sheet
// carries exactly one totals row.
func (l *Ledger) Append(_ context.Context, t core.Transaction, prior ledger.Counts) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	path := filepath.Join(l.dir, ledger.WorkbookName(t.Timestamp))
	f, created, err := l.openWorkbook(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sheet := ledger.SheetName(t.Timestamp)
	if err := ensureSheet(f, sheet, created); err != nil {
		return "", err
	}

	dateCol, valCol := "A", "B"
	row := 3 + prior.Purchases
	if t.Kind == core.Sale {
		dateCol, valCol = "C", "D"
		row = 3 + prior.Sales
	}

	// Drop the totals row left by the previous append, if the sheet has one.
	if oldLast := lastDataRow(prior); oldLast >= 3 {
		for _, col := range []string{"A", "B", "C", "D"} {
			ref := cell(col, oldLast+2)
			if err := f.SetCellFormula(sheet, ref, ""); err != nil {
				return "", fmt.Errorf("clear totals formula: %w", err)
			}
			if err := f.SetCellValue(sheet, ref, nil); err != nil {
				return "", fmt.Errorf("clear totals row: %w", err)
			}
		}
	}

	if err := f.SetCellValue(sheet, cell(dateCol, row), t.Timestamp.Format(ledger.TimestampLayout)); err != nil {
		return "", fmt.Errorf("write timestamp: %w", err)
	}
	if err := f.SetCellValue(sheet, cell(valCol, row), t.Amount.Pesos); err != nil {
		return "", fmt.Errorf("write amount: %w", err)
	}

	updated := prior
	if t.Kind == core.Purchase {
		updated.Purchases++
	} else {
		updated.Sales++
	}
	if err := writeTotals(f, sheet, updated); err != nil {
		return "", err
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook %s: %w", path, err)
	}
	return fmt.Sprintf("%s!%s%d", sheet, valCol, row), nil
}

// ReadDay returns every transaction recorded on the given day, in row order.
// A missing workbook or sheet yields an empty result, not an error.
func (l *Ledger) ReadDay(_ context.Context, day time.Time) ([]core.Transaction, error) {
	path := filepath.Join(l.dir, ledger.WorkbookName(day))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet := ledger.SheetName(day)
	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx == -1 {
		return nil, nil
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	var out []core.Transaction
	for ri := 2; ri < len(rows); ri++ {
		if t, ok := parsePair(rows[ri], 0, 1, core.Purchase); ok {
			out = append(out, t)
		}
		if t, ok := parsePair(rows[ri], 2, 3, core.Sale); ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (l *Ledger) openWorkbook(path string) (f *excelize.File, created bool, err error) {
	if _, statErr := os.Stat(path); statErr == nil {
		f, err = excelize.OpenFile(path)
		if err != nil {
			return nil, false, fmt.Errorf("open workbook %s: %w", path, err)
		}
		return f, false, nil
	}
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return nil, false, fmt.Errorf("create ledger directory: %w", err)
	}
	return excelize.NewFile(), true, nil
}

func ensureSheet(f *excelize.File, sheet string, created bool) error {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return fmt.Errorf("lookup sheet %s: %w", sheet, err)
	}
	if idx != -1 {
		return nil
	}

	if created {
		// Reuse the default sheet of a fresh workbook instead of leaving
		// an empty stray sheet behind.
		if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
			return fmt.Errorf("rename default sheet: %w", err)
		}
	} else if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	headers := []struct {
		cell  string
		value string
	}{
		{"A1", "Compras"}, {"C1", "Ventas"},
		{"A2", "Fecha y hora"}, {"B2", "Valor (COP)"},
		{"C2", "Fecha y hora"}, {"D2", "Valor (COP)"},
	}
	for _, h := range headers {
		if err := f.SetCellValue(sheet, h.cell, h.value); err != nil {
			return fmt.Errorf("write header %s: %w", h.cell, err)
		}
	}
	return nil
}

func writeTotals(f *excelize.File, sheet string, counts ledger.Counts) error {
	totalsRow := lastDataRow(counts) + 2

	if err := f.SetCellValue(sheet, cell("A", totalsRow), "Total Compras:"); err != nil {
		return fmt.Errorf("write totals label: %w", err)
	}
	if err := f.SetCellFormula(sheet, cell("B", totalsRow), sumFormula("B", counts.Purchases)); err != nil {
		return fmt.Errorf("write purchases formula: %w", err)
	}
	if err := f.SetCellValue(sheet, cell("C", totalsRow), "Total Ventas:"); err != nil {
		return fmt.Errorf("write totals label: %w", err)
	}
	if err := f.SetCellFormula(sheet, cell("D", totalsRow), sumFormula("D", counts.Sales)); err != nil {
		return fmt.Errorf("write sales formula: %w", err)
	}
	return nil
}

// lastDataRow is the highest occupied data row across both sections, or 2
// when the sheet only has headers.
func lastDataRow(counts ledger.Counts) int {
	last := 2 + counts.Purchases
	if s := 2 + counts.Sales; s > last {
		last = s
	}
	return last
}

func sumFormula(col string, count int) string {
	last := 2 + count
	if last < 3 {
		last = 3 // empty section sums a blank cell to zero
	}
	return fmt.Sprintf("SUM(%s3:%s%d)", col, col, last)
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func parsePair(row []string, dateIdx, valIdx int, kind core.Kind) (core.Transaction, bool) {
	if len(row) <= valIdx {
		return core.Transaction{}, false
	}
	ts, err := time.ParseInLocation(ledger.TimestampLayout, row[dateIdx], time.Local)
	if err != nil {
		// Headers, blanks and totals labels all land here.
		return core.Transaction{}, false
	}
	pesos, err := strconv.ParseInt(row[valIdx], 10, 64)
	if err != nil {
		return core.Transaction{}, false
	}
	return core.Transaction{Timestamp: ts, Kind: kind, Amount: core.Money{Pesos: pesos}}, true
}
