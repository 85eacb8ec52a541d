package interpret

import "strings"

// defaultCorrections maps transcription mistakes the recognizer makes on
// Colombian Spanish action verbs to their canonical forms.
var defaultCorrections = map[string]string{
	"bendy":   "vendí",
	"bendi":   "vendí",
	"bendice": "vendí",
	"vendi":   "vendí",
	"vende":   "vendí",
	"compre":  "compré",
	"compres": "compré",
	"ofresi":  "ofrecí",
}

// Normalize replaces each whitespace-delimited token found in the correction
// table with its canonical form. Unknown tokens pass through unchanged, so
// the operation is idempotent.
func (i *Interpreter) Normalize(text string) string {
	words := strings.Fields(text)
	for n, w := range words {
		if fixed, ok := i.corrections[w]; ok {
			words[n] = fixed
		}
	}
	return strings.Join(words, " ")
}
