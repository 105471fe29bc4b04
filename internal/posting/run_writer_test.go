package posting

import (
	"bufio"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reichan1998/wikindex/internal/config"
	"github.com/reichan1998/wikindex/internal/document"
	"github.com/reichan1998/wikindex/internal/encid"
)

func readAllLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	require.NoError(t, sc.Err())
	return lines
}

func TestSpillIsNoOpOnEmptyAccumulator(t *testing.T) {
	dir := t.TempDir()
	w := NewRunWriter(dir)
	acc := NewAccumulator()

	spilled, err := w.Spill(acc)
	require.NoError(t, err)
	require.False(t, spilled)

	runs, err := ListFieldRuns(dir, config.FieldBody)
	require.NoError(t, err)
	require.Empty(t, runs)
}

func TestSpillWritesSortedTermLinesAndClearsAccumulator(t *testing.T) {
	dir := t.TempDir()
	w := NewRunWriter(dir)
	acc := NewAccumulator()

	acc.AddDocument(document.New(3, "Zoo"), fieldsWith(nil, []string{"zebra", "apple"}))

	spilled, err := w.Spill(acc)
	require.NoError(t, err)
	require.True(t, spilled)
	require.Equal(t, 0, acc.DocCount())

	path := RunFieldFile(dir, config.FieldBody, 0)
	lines := readAllLines(t, path)
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "apple "))
	require.True(t, strings.HasPrefix(lines[1], "zebra "))

	dfLines := readAllLines(t, RunDocFreqFile(dir, 0))
	require.Equal(t, []string{"apple 1", "zebra 1"}, dfLines)
}

func TestSpillRunNumbersIncreaseMonotonically(t *testing.T) {
	dir := t.TempDir()
	w := NewRunWriter(dir)
	acc := NewAccumulator()

	acc.AddDocument(document.New(1, "A"), fieldsWith(nil, []string{"apple"}))
	_, err := w.Spill(acc)
	require.NoError(t, err)

	acc.AddDocument(document.New(2, "B"), fieldsWith(nil, []string{"mango"}))
	_, err = w.Spill(acc)
	require.NoError(t, err)

	runs, err := ListFieldRuns(dir, config.FieldBody)
	require.NoError(t, err)
	require.Equal(t, []string{
		RunFieldFile(dir, config.FieldBody, 0),
		RunFieldFile(dir, config.FieldBody, 1),
	}, runs)
}

// TestFinalTrailingSpillCoversPartialBuffer verifies that a spill triggered
// at end of stream, with fewer documents than a full PagesPerSpill window,
// still produces a run whose postings recombine with the earlier runs into
// exactly the (term, docID, tf) set the documents were fed in.
func TestFinalTrailingSpillCoversPartialBuffer(t *testing.T) {
	dir := t.TempDir()
	w := NewRunWriter(dir)
	acc := NewAccumulator()

	docs := []struct {
		id    uint64
		terms []string
	}{
		{1, []string{"banana", "banana"}},
		{2, []string{"banana"}},
		{3, []string{"cherry"}},
	}

	for i, d := range docs {
		acc.AddDocument(document.New(d.id, "doc"), fieldsWith(nil, d.terms))
		if i == 1 {
			spilled, err := w.Spill(acc)
			require.NoError(t, err)
			require.True(t, spilled)
		}
	}
	spilled, err := w.Spill(acc)
	require.NoError(t, err)
	require.True(t, spilled)

	runs, err := ListFieldRuns(dir, config.FieldBody)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	want := map[string]map[uint64]int{
		"banana": {1: 2, 2: 1},
		"cherry": {3: 1},
	}
	got := map[string]map[uint64]int{}

	for _, runPath := range runs {
		for _, line := range readAllLines(t, runPath) {
			fields := strings.Fields(line)
			term := fields[0]
			if got[term] == nil {
				got[term] = map[uint64]int{}
			}
			for _, posting := range fields[1:] {
				parts := strings.SplitN(posting, ":", 2)
				require.Len(t, parts, 2)
				docID, err := encid.Decode(parts[0])
				require.NoError(t, err)
				tf, err := encid.Decode(parts[1])
				require.NoError(t, err)
				got[term][docID] = int(tf)
			}
		}
	}

	require.Equal(t, want, got)
}

func TestListDocFreqRunsOrdersByRunNumber(t *testing.T) {
	dir := t.TempDir()
	w := NewRunWriter(dir)
	acc := NewAccumulator()

	for i := 0; i < 3; i++ {
		acc.AddDocument(document.New(uint64(i), "doc"), fieldsWith(nil, []string{"term"}))
		_, err := w.Spill(acc)
		require.NoError(t, err)
	}

	runs, err := ListDocFreqRuns(dir)
	require.NoError(t, err)
	require.Equal(t, []string{
		RunDocFreqFile(dir, 0),
		RunDocFreqFile(dir, 1),
		RunDocFreqFile(dir, 2),
	}, runs)
}
