package interpret

import (
	"strconv"
	"strings"
)

// Single-token Spanish number words. Compound quantities spoken as several
// words ("diez mil") arrive as separate tokens and are converted one by one.
var numberWords = map[string]int64{
	"cero": 0, "uno": 1, "una": 1, "un": 1, "dos": 2, "tres": 3,
	"cuatro": 4, "cinco": 5, "seis": 6, "siete": 7, "ocho": 8, "nueve": 9,
	"diez": 10, "once": 11, "doce": 12, "trece": 13, "catorce": 14,
	"quince": 15, "dieciseis": 16, "diecisiete": 17, "dieciocho": 18,
	"diecinueve": 19, "veinte": 20, "veintiuno": 21, "veintidos": 22,
	"veintitres": 23, "veinticuatro": 24, "veinticinco": 25, "veintiseis": 26,
	"veintisiete": 27, "veintiocho": 28, "veintinueve": 29,
	"treinta": 30, "cuarenta": 40, "cincuenta": 50, "sesenta": 60,
	"setenta": 70, "ochenta": 80, "noventa": 90,
	"cien": 100, "ciento": 100, "doscientos": 200, "trescientos": 300,
	"cuatrocientos": 400, "quinientos": 500, "seiscientos": 600,
	"setecientos": 700, "ochocientos": 800, "novecientos": 900,
	"mil": 1000, "millon": 1000000, "millones": 1000000,
}

var accentFolder = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u",
)

// ParseSpanishNumber converts one spelled-out Spanish token into its value.
// Accented and unaccented spellings are both accepted ("dieciséis",
// "dieciseis"). Returns ok=false for anything that is not a number word.
func ParseSpanishNumber(token string) (int64, bool) {
	v, ok := numberWords[accentFolder.Replace(strings.ToLower(token))]
	return v, ok
}

// ConvertNumbers rewrites every token that parses as a spelled-out number
// into its decimal-digit form. Tokens that fail to parse are kept verbatim;
// the conversion never fails.
func (i *Interpreter) ConvertNumbers(text string) string {
	words := strings.Fields(text)
	out := make([]string, len(words))
	for n, w := range words {
		if v, ok := i.parseNumber(w); ok {
			out[n] = strconv.FormatInt(v, 10)
			continue
		}
		out[n] = w
	}
	return strings.Join(out, " ")
}
