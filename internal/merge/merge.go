// Package merge implements the k-way merge of per-field and per-document-frequency
// run files into the final block-partitioned index.
//
// Grounded on eutils/merge.go's PlexHeap: a container/heap.Interface ordering
// entries by identifier, used there to restore alphabetical order across
// channel-fed presenters. This package keeps the same heap-of-sources shape
// but pulls directly and synchronously from one bufio.Scanner per run file
// instead of eutils' goroutine-per-file presenter/manifold pipeline, per the
// single-threaded execution model this index builder follows.
package merge

import (
	"bufio"
	"container/heap"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/reichan1998/wikindex/internal/blockstore"
	"github.com/reichan1998/wikindex/internal/config"
	"github.com/reichan1998/wikindex/internal/posting"
)

// source pulls term-sorted lines, one at a time, from a single run file.
type source struct {
	path    string
	runIdx  int
	file    *os.File
	scanner *bufio.Scanner

	term string
	rest string
	done bool
}

func openSource(path string, runIdx int) (*source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("merge: open run file %s: %w", path, err)
	}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	s := &source{path: path, runIdx: runIdx, file: f, scanner: sc}
	if err := s.advance(); err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

// advance loads the next line's term and remainder. When the run file is
// exhausted it closes and deletes the file eagerly, per the resource policy
// that only O(R) run files may be open at once and each is reclaimed as soon
// as it's drained.
func (s *source) advance() error {
	if s.scanner.Scan() {
		line := s.scanner.Text()
		idx := strings.IndexByte(line, ' ')
		if idx < 0 {
			s.term, s.rest = line, ""
		} else {
			s.term, s.rest = line[:idx], line[idx+1:]
		}
		return nil
	}
	if err := s.scanner.Err(); err != nil {
		return fmt.Errorf("merge: scan %s: %w", s.path, err)
	}
	s.done = true
	s.file.Close()
	os.Remove(s.path)
	return nil
}

// sourceHeap orders open sources by (term, runIndex), matching the run
// writer's (term, runIndex) stability guarantee for the merged output.
type sourceHeap []*source

func (h sourceHeap) Len() int { return len(h) }
func (h sourceHeap) Less(i, j int) bool {
	if h[i].term != h[j].term {
		return h[i].term < h[j].term
	}
	return h[i].runIdx < h[j].runIdx
}
func (h sourceHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *sourceHeap) Push(x interface{}) {
	*h = append(*h, x.(*source))
}
func (h *sourceHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

func openSources(paths []string) (*sourceHeap, error) {
	h := &sourceHeap{}
	heap.Init(h)
	for i, p := range paths {
		s, err := openSource(p, i)
		if err != nil {
			return nil, err
		}
		if !s.done {
			heap.Push(h, s)
		}
	}
	return h, nil
}

// requeue advances s and, if it still has data, pushes it back onto h.
// Exhausted sources were already closed and removed by advance.
func requeue(h *sourceHeap, s *source) error {
	if err := s.advance(); err != nil {
		return err
	}
	if !s.done {
		heap.Push(h, s)
	}
	return nil
}

// Field merges every run file for field in runDir into final block files
// under dir, grouping postings by term and concatenating postings across
// runs (each run's docIDs are disjoint, so no further dedup is needed).
func Field(dir, runDir string, field config.Field, capacity int) error {
	paths, err := posting.ListFieldRuns(runDir, field)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return nil
	}

	h, err := openSources(paths)
	if err != nil {
		return err
	}

	w, err := blockstore.NewFieldBlockWriter(dir, byte(field), capacity)
	if err != nil {
		return err
	}

	for h.Len() > 0 {
		first := heap.Pop(h).(*source)
		term := first.term
		var postings []string
		if first.rest != "" {
			postings = append(postings, strings.Fields(first.rest)...)
		}
		if err := requeue(h, first); err != nil {
			return err
		}

		for h.Len() > 0 && (*h)[0].term == term {
			next := heap.Pop(h).(*source)
			if next.rest != "" {
				postings = append(postings, strings.Fields(next.rest)...)
			}
			if err := requeue(h, next); err != nil {
				return err
			}
		}

		line := term + " " + strings.Join(postings, " ")
		if err := w.WriteLine(term, line); err != nil {
			return err
		}
	}

	return w.Close()
}

// IDF merges the per-run document-frequency files into final IDF blocks,
// summing the per-run counts for each term (run windows hold disjoint
// documents, so summation recovers the true corpus-wide document frequency)
// and storing idf(term) = totalDocs / df as a decimal.
func IDF(dir, runDir string, totalDocs uint64, capacity int) error {
	paths, err := posting.ListDocFreqRuns(runDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return nil
	}

	h, err := openSources(paths)
	if err != nil {
		return err
	}

	w, err := blockstore.NewIDFBlockWriter(dir, capacity)
	if err != nil {
		return err
	}

	for h.Len() > 0 {
		first := heap.Pop(h).(*source)
		term := first.term
		sum, err := strconv.Atoi(strings.TrimSpace(first.rest))
		if err != nil {
			return fmt.Errorf("merge: parse df count %q: %w", first.rest, err)
		}
		if err := requeue(h, first); err != nil {
			return err
		}

		for h.Len() > 0 && (*h)[0].term == term {
			next := heap.Pop(h).(*source)
			n, err := strconv.Atoi(strings.TrimSpace(next.rest))
			if err != nil {
				return fmt.Errorf("merge: parse df count %q: %w", next.rest, err)
			}
			sum += n
			if err := requeue(h, next); err != nil {
				return err
			}
		}

		idf := float64(totalDocs) / float64(sum)
		line := term + " " + strconv.FormatFloat(idf, 'f', -1, 64)
		if err := w.WriteLine(term, line); err != nil {
			return err
		}
	}

	return w.Close()
}

// All merges every field plus the IDF run files, in field order.
func All(dir, runDir string, totalDocs uint64, tun config.Tunables) error {
	for _, field := range config.AllFields {
		if err := Field(dir, runDir, field, tun.TokensPerBlock); err != nil {
			return fmt.Errorf("merge: field %s: %w", field, err)
		}
	}
	return IDF(dir, runDir, totalDocs, tun.TokensPerBlock)
}
