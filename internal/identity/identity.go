// Package identity canonicalizes engineer names and matches the
// inconsistently formatted variants that show up across attendance
// exports ("Jose Dela Cruz" vs "DELA CRUZ, JOSE").
package identity

import (
	"strings"
	"unicode"
)

// accentFolds maps the accented letters the source exports actually
// produce to their ASCII equivalents. This is a fixed table, not full
// Unicode normalization. U+FFFD shows up when a Windows-1252 export was
// decoded badly upstream; the only letter that corrupts in practice is Ñ.
var accentFolds = strings.NewReplacer(
	"ñ", "n",
	"Ñ", "N",
	"�", "N",
	"á", "a",
	"Á", "A",
	"é", "e",
	"É", "E",
	"í", "i",
	"Í", "I",
	"ó", "o",
	"Ó", "O",
	"ú", "u",
	"Ú", "U",
)

// Normalize folds accents, uppercases, and trims a free-text name.
// Every engineer lookup and schedule lookup goes through this first.
func Normalize(name string) string {
	if name == "" {
		return ""
	}
	return strings.TrimSpace(strings.ToUpper(accentFolds.Replace(name)))
}

// Match reports whether two names refer to the same engineer. Exact
// equality after Normalize wins immediately; otherwise both names are
// tokenized and compared as sets, so token order (and comma placement)
// does not matter. The token sets must have equal cardinality: a name
// with an extra middle name or suffix does not match.
func Match(a, b string) bool {
	if a == "" || b == "" {
		return false
	}

	na := Normalize(a)
	nb := Normalize(b)
	if na == nb {
		return true
	}

	ta := Tokens(na)
	tb := Tokens(nb)
	if len(ta) != len(tb) {
		return false
	}

	set := make(map[string]bool, len(tb))
	for _, tok := range tb {
		set[tok] = true
	}
	for _, tok := range ta {
		if !set[tok] {
			return false
		}
	}
	return true
}

// Tokens splits an already-normalized name into its meaningful word
// tokens. Commas and other punctuation act as separators and tokens of
// a single character (initials, stray punctuation survivors) are dropped.
func Tokens(normalized string) []string {
	fields := strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	tokens := fields[:0]
	for _, f := range fields {
		if len(f) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
