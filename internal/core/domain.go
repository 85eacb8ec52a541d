package core

import (
	"errors"
	"time"
)

const (
	Purchase Kind = "compra"
	Sale     Kind = "venta"
)

type (
	Kind string

	// Money is a whole-peso amount (COP has no sub-unit in practice).
	Money struct {
		Pesos int64
	}

	// Transaction is one confirmed operation extracted from an utterance.
	// It is created by the interpreter, written to the ledger, and never
	// mutated afterwards.
	Transaction struct {
		Timestamp time.Time
		Kind      Kind
		Amount    Money
	}
)

var (
	ErrInvalidKind   = errors.New("invalid transaction kind")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrZeroTimestamp = errors.New("timestamp cannot be zero")
)

func (k Kind) Validate() error {
	switch k {
	case Purchase, Sale:
		return nil
	default:
		return ErrInvalidKind
	}
}

func (m Money) Validate() error {
	if m.Pesos < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if t.Timestamp.IsZero() {
		return ErrZeroTimestamp
	}
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	return t.Amount.Validate()
}
