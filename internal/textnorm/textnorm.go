// Package textnorm folds Arabic spelling variants so searches match regardless
// of Alef form, Teh Marbuta, Alef Maksura or diacritics.
package textnorm

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var (
	stripHarakat = runes.Remove(runes.Predicate(func(r rune) bool {
		return r >= '\u064B' && r <= '\u065F'
	}))

	foldLetters = runes.Map(func(r rune) rune {
		switch r {
		case 'أ', 'إ', 'آ':
			return 'ا'
		case 'ة':
			return 'ه'
		case 'ى':
			return 'ي'
		}
		return r
	})
)

// Normalize is applied to both the stored column and the search term.
// It is idempotent.
func Normalize(s string) string {
	out, _, err := transform.String(transform.Chain(stripHarakat, foldLetters), s)
	if err != nil {
		return s
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern builds a LIKE operand for a contains-match on normalized text.
// Wildcards in q are escaped with a backslash, so the query must say
// ESCAPE '\'.
func LikePattern(q string) string {
	return "%" + likeEscaper.Replace(Normalize(q)) + "%"
}
