// Package interpret turns a transcribed Spanish utterance into a transaction.
//
// The pipeline is: correct known mis-transcriptions, rewrite spelled-out
// numbers into digits, then match the action verb and value with a single
// regular expression.
package interpret

import (
	"time"

	"finanzas/internal/core"
)

// Config carries the interpreter's tables. All fields are optional; zero
// values fall back to the built-in Colombian Spanish defaults.
type Config struct {
	// Corrections maps mis-transcribed tokens to their canonical form.
	Corrections map[string]string
	// ParseNumber converts a single spelled-out token into a numeric value.
	ParseNumber NumberParser
	// Now stamps extracted transactions. Defaults to time.Now.
	Now func() time.Time
}

// NumberParser reports the numeric value of a single Spanish token, or
// ok=false when the token is not a number.
type NumberParser func(token string) (int64, bool)

type Interpreter struct {
	corrections map[string]string
	parseNumber NumberParser
	now         func() time.Time
}

func New(cfg Config) *Interpreter {
	i := &Interpreter{
		corrections: cfg.Corrections,
		parseNumber: cfg.ParseNumber,
		now:         cfg.Now,
	}
	if i.corrections == nil {
		i.corrections = defaultCorrections
	}
	if i.parseNumber == nil {
		i.parseNumber = ParseSpanishNumber
	}
	if i.now == nil {
		i.now = time.Now
	}
	return i
}

// Interpret runs the full pipeline over a lowercase utterance and returns
// the extracted transaction stamped with the current time.
func (i *Interpreter) Interpret(text string) (core.Transaction, error) {
	text = i.Normalize(text)
	text = i.ConvertNumbers(text)
	return i.Extract(text)
}
