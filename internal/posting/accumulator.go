// Package posting implements the in-memory posting accumulator and the run
// writer that spills it to disk.
//
// Grounded on eutils/poster.go's CreatePromoters, which buffers postings by
// field before writing them out; the spill/flush-and-clear policy mirrors
// eutils/cache.go's CreateStashers, which periodically flushes buffered
// records to numbered archive files.
package posting

import (
	"sort"

	"github.com/reichan1998/wikindex/internal/config"
	"github.com/reichan1998/wikindex/internal/document"
	"github.com/reichan1998/wikindex/internal/encid"
	"github.com/reichan1998/wikindex/internal/segment"
)

// Accumulator holds the six per-field term->postings maps and the combined
// document-frequency map, in memory, between spills.
type Accumulator struct {
	postings [config.NumFields]map[string][]string
	docFreq  map[string]int
	docCount int
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	a := &Accumulator{docFreq: make(map[string]int)}
	for i := range a.postings {
		a.postings[i] = make(map[string][]string)
	}
	return a
}

// AddDocument folds one article's segmented fields into the accumulator:
// per field, every term with tf >= 1 gets an "encID:encTF" posting appended;
// every term appearing in ANY field increments the combined document
// frequency exactly once.
func (a *Accumulator) AddDocument(doc document.Document, fields segment.Fields) {
	seenAnyField := make(map[string]struct{})

	for fi, terms := range fields {
		if len(terms) == 0 {
			continue
		}
		tf := termFrequencies(terms)

		field := config.AllFields[fi]
		bucket := a.postings[field.Index()]
		for term, count := range tf {
			posting := doc.EncodedID + ":" + encid.Encode(uint64(count))
			bucket[term] = append(bucket[term], posting)
			seenAnyField[term] = struct{}{}
		}
	}

	for term := range seenAnyField {
		a.docFreq[term]++
	}

	a.docCount++
}

// DocCount reports how many documents have accumulated since the last reset.
func (a *Accumulator) DocCount() int {
	return a.docCount
}

// Reset clears all seven maps and the document counter, ready for the next spill window.
func (a *Accumulator) Reset() {
	for i := range a.postings {
		a.postings[i] = make(map[string][]string)
	}
	a.docFreq = make(map[string]int)
	a.docCount = 0
}

// SortedTerms returns a field's terms in byte-lexicographic order, the run
// file's required sort order.
func (a *Accumulator) SortedTerms(field config.Field) []string {
	bucket := a.postings[field.Index()]
	terms := make([]string, 0, len(bucket))
	for t := range bucket {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

// Postings returns the accumulated "encID:encTF" entries for (field, term).
func (a *Accumulator) Postings(field config.Field, term string) []string {
	return a.postings[field.Index()][term]
}

// SortedDocFreqTerms returns every term with a recorded document frequency,
// sorted lexicographically.
func (a *Accumulator) SortedDocFreqTerms() []string {
	terms := make([]string, 0, len(a.docFreq))
	for t := range a.docFreq {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

// DocFreq returns the recorded document frequency for term.
func (a *Accumulator) DocFreq(term string) int {
	return a.docFreq[term]
}

func termFrequencies(terms []string) map[string]int {
	tf := make(map[string]int, len(terms))
	for _, t := range terms {
		tf[t]++
	}
	return tf
}
