package posting

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/reichan1998/wikindex/internal/config"
)

// RunWriter spills an Accumulator to numbered, per-field sorted run files
// (plus one document-frequency run file) and deletes the in-memory maps
// afterward. Run numbers increase monotonically across the life of one
// indexing pass.
type RunWriter struct {
	dir     string
	nextRun int
}

// NewRunWriter prepares a run writer under dir, which must already exist.
func NewRunWriter(dir string) *RunWriter {
	return &RunWriter{dir: dir}
}

// RunFieldFile names the run file holding field f's postings for run number n.
func RunFieldFile(dir string, f config.Field, n int) string {
	return filepath.Join(dir, fmt.Sprintf("run_%c_%05d.txt", byte(f), n))
}

// RunDocFreqFile names the document-frequency run file for run number n.
func RunDocFreqFile(dir string, n int) string {
	return filepath.Join(dir, fmt.Sprintf("run_df_%05d.txt", n))
}

// Spill writes all six field run files plus the df run file for the
// accumulator's current contents, in term-sorted order, then clears it.
// It is a no-op (returns false) if the accumulator is empty, so the final
// trailing spill at end of stream doesn't create seven empty files.
func (w *RunWriter) Spill(acc *Accumulator) (spilled bool, err error) {
	if acc.DocCount() == 0 {
		return false, nil
	}

	run := w.nextRun
	for _, field := range config.AllFields {
		if err := writeFieldRun(RunFieldFile(w.dir, field, run), acc, field); err != nil {
			return false, err
		}
	}
	if err := writeDocFreqRun(RunDocFreqFile(w.dir, run), acc); err != nil {
		return false, err
	}

	acc.Reset()
	w.nextRun++
	return true, nil
}

func writeFieldRun(path string, acc *Accumulator, field config.Field) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("posting: open run file %s: %w", path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	for _, term := range acc.SortedTerms(field) {
		postings := acc.Postings(field, term)
		if _, err := fmt.Fprintf(bw, "%s %s\n", term, strings.Join(postings, " ")); err != nil {
			return fmt.Errorf("posting: write run line: %w", err)
		}
	}
	return bw.Flush()
}

func writeDocFreqRun(path string, acc *Accumulator) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("posting: open df run file %s: %w", path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	for _, term := range acc.SortedDocFreqTerms() {
		if _, err := fmt.Fprintf(bw, "%s %d\n", term, acc.DocFreq(term)); err != nil {
			return fmt.Errorf("posting: write df run line: %w", err)
		}
	}
	return bw.Flush()
}

// ListFieldRuns returns every run file for field, sorted by run number ascending.
func ListFieldRuns(dir string, field config.Field) ([]string, error) {
	return listRuns(dir, fmt.Sprintf("run_%c_", byte(field)))
}

// ListDocFreqRuns returns every df run file, sorted by run number ascending.
func ListDocFreqRuns(dir string) ([]string, error) {
	return listRuns(dir, "run_df_")
}

func listRuns(dir, prefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("posting: read run dir %s: %w", dir, err)
	}

	type numbered struct {
		path string
		n    int
	}
	var runs []numbered
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		numStr := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".txt")
		n, err := strconv.Atoi(numStr)
		if err != nil {
			continue
		}
		runs = append(runs, numbered{filepath.Join(dir, name), n})
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].n < runs[j].n })

	paths := make([]string, len(runs))
	for i, r := range runs {
		paths[i] = r.path
	}
	return paths, nil
}
