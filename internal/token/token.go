// Package token implements the tokenizer: a pure, deterministic function
// from raw text to a filtered, stemmed sequence of index terms.
//
// Grounded on eutils/xplore.go's use of golang.org/x/text/cases for
// Unicode-aware case folding and eutils/phrase.go's wiring of
// github.com/surgebase/porter2 as the stemmer; the stopword/length filter
// predicate mirrors the ASCII/digit/letter helpers in eutils/misc.go
// (IsAllDigits, IsStopWord) generalized into config.IsStopword.
package token

import (
	"strings"
	"unicode"

	"github.com/surgebase/porter2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/reichan1998/wikindex/internal/config"
)

var foldCase = cases.Lower(language.Und)

// Tokenize is a pure, total function: case-fold, ASCII-reduce, replace
// entities/punctuation with spaces, split, stem, and filter. It never fails.
func Tokenize(text string) []string {
	folded := foldCase.String(text)
	ascii := toASCII(folded)
	collapsed := collapseNonWord(ascii)

	fields := strings.Fields(collapsed)
	terms := make([]string, 0, len(fields))

	for _, word := range fields {
		stemmed := porter2.Stem(word)
		if keep(stemmed) {
			terms = append(terms, stemmed)
		}
	}

	return terms
}

// toASCII drops every byte above 0x7F, the "reduce to ASCII" step.
func toASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] < 0x80 {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// collapseNonWord replaces the fixed HTML entity set and the fixed
// punctuation/symbol set with a single space each.
func collapseNonWord(s string) string {
	for entity, repl := range config.HTMLEntities {
		s = strings.ReplaceAll(s, entity, repl)
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(config.PunctuationRunes, r) {
			b.WriteByte(' ')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// keep applies the retention predicate: alphabetic terms with
// 3 < len < 15 that are not stopwords, or purely numeric terms of
// length <= 7.
func keep(t string) bool {
	if t == "" {
		return false
	}
	if isAlpha(t) {
		return len(t) > 3 && len(t) < 15 && !config.IsStopword(t)
	}
	if isNumeric(t) {
		return len(t) <= 7
	}
	return false
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
