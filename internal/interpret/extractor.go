package interpret

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"finanzas/internal/core"
)

var (
	// ErrNoMatch means no action verb followed by a value was found.
	ErrNoMatch = errors.New("uninterpretable command")
	// ErrUnknownOperation means the matched verb is in neither vocabulary.
	ErrUnknownOperation = errors.New("unrecognized operation")
)

// commandPattern matches an action verb, an optional filler phrase, an
// optional currency symbol and the value. First match wins; one utterance
// yields at most one transaction.
var commandPattern = regexp.MustCompile(
	`(compr[ée]?|compramos|se compr[oó]|adquir[ií]|adquirimos|obtuve|obtuvimos|` +
		`vend[íi]|vendimos|se vendi[oó]|ofrec[íi]|ofrecimos|despach[ée]|despachamos)` +
		` (?:por el valor de|por)? ?\$?([\d.,]+)`)

var purchaseVerbs = verbSet(
	"compré", "compramos", "se compró", "adquirí", "adquirimos", "obtuve", "obtuvimos")

var saleVerbs = verbSet(
	"vendí", "vendimos", "se vendió", "ofrecí", "ofrecimos", "despaché", "despachamos")

func verbSet(verbs ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(verbs))
	for _, v := range verbs {
		set[v] = struct{}{}
	}
	return set
}

// Extract finds the first action-verb/value pair in the text and builds a
// transaction from it. The text is expected to be normalized and
// digit-converted already.
func (i *Interpreter) Extract(text string) (core.Transaction, error) {
	m := commandPattern.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return core.Transaction{}, ErrNoMatch
	}

	kind, err := classifyVerb(m[1])
	if err != nil {
		return core.Transaction{}, err
	}

	pesos, err := core.ParseValue(m[2])
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse value %q: %w", m[2], err)
	}

	return core.Transaction{
		Timestamp: i.now(),
		Kind:      kind,
		Amount:    core.Money{Pesos: pesos},
	}, nil
}

// classifyVerb maps the matched verb into a transaction kind. The pattern
// admits a few unaccented spellings the vocabularies do not, so the miss
// case is reachable even though the normalizer usually corrects them first.
func classifyVerb(verb string) (core.Kind, error) {
	if _, ok := purchaseVerbs[verb]; ok {
		return core.Purchase, nil
	}
	if _, ok := saleVerbs[verb]; ok {
		return core.Sale, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperation, verb)
}
