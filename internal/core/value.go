// Package core holds the transaction domain types and monetary value parsing.
//
// This file normalizes raw value substrings captured from speech ("$10.000",
// "10,500.00") into whole pesos.
package core

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseValue converts a raw monetary substring into whole pesos.
//
// The input may contain digits, dots, commas, a currency symbol and spaces.
// When both separators appear, the last-occurring one is the decimal mark
// and the other groups thousands; the fraction is truncated:
//
//	ParseValue("$10,500.00") -> 10500 (comma thousands, dot decimal)
//	ParseValue("10.500,75")  -> 10500 (dot thousands, comma decimal)
//	ParseValue("10,000")     -> 10000 (comma alone is thousands)
//	ParseValue("10.000")     -> 10000 (dot alone is thousands)
//	ParseValue("10000")      -> 10000
//
// A lone comma or dot is always a thousands separator: single-separator
// inputs around here are almost always thousands groupings.
func ParseValue(raw string) (int64, error) {
	s := strings.ReplaceAll(raw, "$", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(s, ".") > strings.LastIndex(s, ",") {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
		}
		if f < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
		}
		return int64(f), nil
	case hasComma:
		s = strings.ReplaceAll(s, ",", "")
	case hasDot:
		s = strings.ReplaceAll(s, ".", "")
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return v, nil
}
