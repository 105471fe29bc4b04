package xmldrv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reichan1998/wikindex/internal/blockstore"
	"github.com/reichan1998/wikindex/internal/config"
	"github.com/reichan1998/wikindex/internal/document"
	"github.com/reichan1998/wikindex/internal/posting"
)

type recordingProgress struct {
	spills []uint64
}

func (r *recordingProgress) Spilled(runNumber int, docsSoFar uint64) {
	r.spills = append(r.spills, docsSoFar)
}

func TestIngesterFiltersNamespacesAndAssignsSequentialDocIDs(t *testing.T) {
	dir := t.TempDir()
	assigner := &document.Assigner{}
	acc := posting.NewAccumulator()
	titles, err := blockstore.NewTitlesWriter(dir, config.Default().TitlesPerFile)
	require.NoError(t, err)
	runs := posting.NewRunWriter(dir)

	ing := NewIngester(assigner, acc, titles, runs, config.Default().PagesPerSpill, nil)

	n, tokens, err := ing.Run(strings.NewReader(sampleDump))
	require.NoError(t, err)
	require.Equal(t, uint64(2), n) // Wikipedia: page is filtered out
	require.Greater(t, tokens, uint64(0))

	require.NoError(t, titles.Close())
	lines, err := blockstore.ReadLines(blockstore.TitlesBlockFile(dir, 0))
	require.NoError(t, err)
	require.Len(t, lines, 2)
}

func TestIngesterSpillsAtThresholdAndReportsProgress(t *testing.T) {
	dir := t.TempDir()
	assigner := &document.Assigner{}
	acc := posting.NewAccumulator()
	titles, err := blockstore.NewTitlesWriter(dir, 1000)
	require.NoError(t, err)
	runs := posting.NewRunWriter(dir)
	progress := &recordingProgress{}

	ing := NewIngester(assigner, acc, titles, runs, 2, progress)

	n, _, err := ing.Run(strings.NewReader(sampleDump))
	require.NoError(t, err)
	require.Equal(t, uint64(2), n)
	require.NoError(t, titles.Close())

	// two surviving pages, spill threshold 2: one spill fires mid-stream.
	require.Equal(t, []uint64{2}, progress.spills)

	runFiles, err := posting.ListFieldRuns(dir, config.FieldBody)
	require.NoError(t, err)
	require.Len(t, runFiles, 1)
}

func TestIngesterFinalTrailingSpillCoversPartialBuffer(t *testing.T) {
	dir := t.TempDir()
	assigner := &document.Assigner{}
	acc := posting.NewAccumulator()
	titles, err := blockstore.NewTitlesWriter(dir, 1000)
	require.NoError(t, err)
	runs := posting.NewRunWriter(dir)

	ing := NewIngester(assigner, acc, titles, runs, 1000, nil)

	_, _, err = ing.Run(strings.NewReader(sampleDump))
	require.NoError(t, err)
	require.NoError(t, titles.Close())

	runFiles, err := posting.ListFieldRuns(dir, config.FieldBody)
	require.NoError(t, err)
	require.Len(t, runFiles, 1)
}
