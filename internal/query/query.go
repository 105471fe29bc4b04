// Package query implements the Query Normalizer: classifying a raw query
// line as generic or field-prefixed, then tokenizing it with the same
// tokenizer the indexer used.
//
// Grounded on eutils/xtract.go's own small argument-classification
// grammars (e.g. its "-element" pattern dispatch), generalized here to the
// spec's FIELD:text marker chain. Go's RE2-backed regexp package has no
// lookahead, so the classification prefix check stays a regexp but the
// repeated (field, text) extraction is done by hand over whitespace-split
// tokens, which is exactly what the spec's non-greedy-lookahead pattern
// reduces to once a marker can only capture up to the next whitespace.
package query

import (
	"regexp"
	"strings"

	"github.com/reichan1998/wikindex/internal/config"
	"github.com/reichan1998/wikindex/internal/token"
)

var fieldQueryPrefix = regexp.MustCompile(`^[tbicrl]:`)

// FieldPart is one field's tokenized query text within a field query.
type FieldPart struct {
	Field config.Field
	Terms []string
}

// Query is the normalized result: either GenericTerms is set (a plain
// query, scored against every field) or FieldParts is set (an explicit
// FIELD:text chain, scored per named field only).
type Query struct {
	GenericTerms []string
	FieldParts   []FieldPart
}

// IsFieldQuery reports whether raw begins with a FIELD: marker.
func (q Query) IsFieldQuery() bool {
	return q.FieldParts != nil
}

// Parse classifies and tokenizes raw. A query that classifies as a field
// query but whose markers carry no indexable text (e.g. a bare "t:") yields
// a field query with no parts, which the scorer contributes nothing for.
func Parse(raw string) Query {
	raw = strings.TrimSpace(raw)
	if !fieldQueryPrefix.MatchString(raw) {
		return Query{GenericTerms: token.Tokenize(raw)}
	}

	order := make([]config.Field, 0, config.NumFields)
	terms := make(map[config.Field][]string, config.NumFields)

	for _, tok := range strings.Fields(raw) {
		field, text, ok := splitFieldMarker(tok)
		if !ok {
			continue
		}
		tokenized := token.Tokenize(text)
		if len(tokenized) == 0 {
			continue
		}
		if _, seen := terms[field]; !seen {
			order = append(order, field)
		}
		terms[field] = append(terms[field], tokenized...)
	}

	parts := make([]FieldPart, 0, len(order))
	for _, f := range order {
		parts = append(parts, FieldPart{Field: f, Terms: terms[f]})
	}
	return Query{FieldParts: parts}
}

// splitFieldMarker reports whether tok is exactly "X:text" for a valid
// field tag X, returning the field and the text after the colon.
func splitFieldMarker(tok string) (config.Field, string, bool) {
	if len(tok) < 2 || tok[1] != ':' {
		return 0, "", false
	}
	field, ok := config.ParseField(tok[0])
	if !ok {
		return 0, "", false
	}
	return field, tok[2:], true
}
