// Package sheets defines the outbound port for the async ledger mirror.
package sheets

import (
	"context"

	"finanzas/internal/core"
)

// TransactionAppender appends one transaction row to the mirror spreadsheet.
type TransactionAppender interface {
	Append(ctx context.Context, t core.Transaction) (rowRef string, err error)
}
