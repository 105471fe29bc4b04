// Package scorer implements the Scorer: TF-IDF score accumulation across
// tokens and fields, followed by top-k selection via a max-heap.
//
// Grounded on eutils/merge.go's PlexHeap shape (a container/heap.Interface
// wrapping a typed slice) reused here for score ranking instead of term
// merging, and on the two-table weighting scheme in internal/config, which
// this package is the sole consumer of.
package scorer

import (
	"container/heap"
	"strings"

	"github.com/reichan1998/wikindex/internal/config"
	"github.com/reichan1998/wikindex/internal/encid"
	"github.com/reichan1998/wikindex/internal/query"
	"github.com/reichan1998/wikindex/internal/searchindex"
)

// Result is one ranked hit: an encoded docID, its accumulated score, and
// (once resolved) its title.
type Result struct {
	EncID string
	Score float64
	Title string
}

// Score runs q against ix and returns up to maxResults ranked hits, with
// titles beginning with any of config.ResultTitleExclusionPrefixes skipped.
// Unknown terms contribute nothing; they are not an error.
func Score(ix *searchindex.Index, q query.Query, maxResults int) ([]Result, error) {
	scores := make(map[string]float64)

	if q.IsFieldQuery() {
		for _, part := range q.FieldParts {
			if err := accumulate(ix, scores, part.Field, part.Terms, config.FieldWeightsField); err != nil {
				return nil, err
			}
		}
	} else {
		for _, field := range config.AllFields {
			if err := accumulate(ix, scores, field, q.GenericTerms, config.FieldWeightsNormal); err != nil {
				return nil, err
			}
		}
	}

	return topK(ix, scores, maxResults)
}

func accumulate(ix *searchindex.Index, scores map[string]float64, field config.Field, terms []string, weights config.FieldWeights) error {
	weight := weights.WeightFor(field)
	for _, term := range terms {
		line, ok, err := ix.PostingLine(field, term)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		idf, ok, err := ix.IDF(term)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		for _, posting := range postingsOf(line) {
			encID, tf, ok := splitPosting(posting)
			if !ok {
				continue
			}
			scores[encID] += weight * float64(tf) * idf
		}
	}
	return nil
}

func postingsOf(line string) []string {
	idx := strings.IndexByte(line, ' ')
	if idx < 0 {
		return nil
	}
	return strings.Fields(line[idx+1:])
}

func splitPosting(p string) (id string, tf int, ok bool) {
	idx := strings.IndexByte(p, ':')
	if idx < 0 {
		return "", 0, false
	}
	n, err := encid.Decode(p[idx+1:])
	if err != nil {
		return "", 0, false
	}
	return p[:idx], int(n), true
}

// scored is a (encID, score) pair ordered for a max-heap.
type scored struct {
	encID string
	score float64
}

type scoreHeap []scored

func (h scoreHeap) Len() int            { return len(h) }
func (h scoreHeap) Less(i, j int) bool  { return h[i].score > h[j].score }
func (h scoreHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *scoreHeap) Push(x interface{}) { *h = append(*h, x.(scored)) }
func (h *scoreHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

func topK(ix *searchindex.Index, scores map[string]float64, k int) ([]Result, error) {
	h := make(scoreHeap, 0, len(scores))
	for encID, score := range scores {
		h = append(h, scored{encID: encID, score: score})
	}
	heap.Init(&h)

	results := make([]Result, 0, k)
	for h.Len() > 0 && len(results) < k {
		top := heap.Pop(&h).(scored)

		title, ok, err := ix.Title(top.encID)
		if err != nil {
			return nil, err
		}
		if !ok || isExcludedTitle(title) {
			continue
		}

		results = append(results, Result{EncID: top.encID, Score: top.score, Title: title})
	}
	return results, nil
}

func isExcludedTitle(title string) bool {
	for _, prefix := range config.ResultTitleExclusionPrefixes {
		if strings.HasPrefix(title, prefix) {
			return true
		}
	}
	return false
}
