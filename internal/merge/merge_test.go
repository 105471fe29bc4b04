package merge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reichan1998/wikindex/internal/blockstore"
	"github.com/reichan1998/wikindex/internal/config"
	"github.com/reichan1998/wikindex/internal/posting"
)

func writeRunFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFieldMergesAndConcatenatesPostingsAcrossRuns(t *testing.T) {
	runDir := t.TempDir()
	outDir := t.TempDir()

	writeRunFile(t, filepath.Join(runDir, "run_b_00000.txt"),
		"apple #+:#+\nbanana #+:#+\n")
	writeRunFile(t, filepath.Join(runDir, "run_b_00001.txt"),
		"apple ++:#+\ncherry ++:#+\n")

	err := Field(outDir, runDir, config.FieldBody, 50000)
	require.NoError(t, err)

	lines, err := blockstore.ReadLines(blockstore.FieldIndexFile(outDir, byte(config.FieldBody), 0))
	require.NoError(t, err)
	require.Len(t, lines, 3)

	byTerm := map[string]string{}
	for _, l := range lines {
		fields := strings.SplitN(l, " ", 2)
		byTerm[fields[0]] = fields[1]
	}
	require.Equal(t, "#+:#+ ++:#+", byTerm["apple"])
	require.Equal(t, "#+:#+", byTerm["banana"])
	require.Equal(t, "++:#+", byTerm["cherry"])

	// run files consumed eagerly during merge.
	_, err = os.Stat(filepath.Join(runDir, "run_b_00000.txt"))
	require.True(t, os.IsNotExist(err))
}

func TestFieldWritesOffsetsParallelToIndexLines(t *testing.T) {
	runDir := t.TempDir()
	outDir := t.TempDir()
	writeRunFile(t, filepath.Join(runDir, "run_t_00000.txt"), "alpha #+:#+\nbeta #+:#+\n")

	require.NoError(t, Field(outDir, runDir, config.FieldTitle, 50000))

	offsets, err := blockstore.ReadOffsets(blockstore.FieldOffsetFile(outDir, byte(config.FieldTitle), 0))
	require.NoError(t, err)
	require.Equal(t, []int64{0}, offsets[:1])

	line, err := blockstore.ReadLineAt(blockstore.FieldIndexFile(outDir, byte(config.FieldTitle), 0), offsets[1])
	require.NoError(t, err)
	require.Equal(t, "beta #+:#+", line)
}

func TestFieldRotatesBlocksAtCapacity(t *testing.T) {
	runDir := t.TempDir()
	outDir := t.TempDir()
	writeRunFile(t, filepath.Join(runDir, "run_c_00000.txt"), "alpha x\nbeta x\ngamma x\n")

	require.NoError(t, Field(outDir, runDir, config.FieldCategories, 2))

	block0, err := blockstore.ReadLines(blockstore.FieldIndexFile(outDir, byte(config.FieldCategories), 0))
	require.NoError(t, err)
	require.Len(t, block0, 2)

	block1, err := blockstore.ReadLines(blockstore.FieldIndexFile(outDir, byte(config.FieldCategories), 1))
	require.NoError(t, err)
	require.Len(t, block1, 1)

	preIndex, err := blockstore.ReadLines(blockstore.FieldPreIndexFile(outDir, byte(config.FieldCategories)))
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "gamma"}, preIndex)
}

func TestFieldIsNoOpWhenNoRunFilesExist(t *testing.T) {
	runDir := t.TempDir()
	outDir := t.TempDir()

	require.NoError(t, Field(outDir, runDir, config.FieldBody, 50000))

	_, err := os.Stat(blockstore.FieldIndexFile(outDir, byte(config.FieldBody), 0))
	require.True(t, os.IsNotExist(err))
}

func TestIDFSumsDocumentFrequencyAcrossRunsAndComputesRatio(t *testing.T) {
	runDir := t.TempDir()
	outDir := t.TempDir()

	writeRunFile(t, filepath.Join(runDir, "run_df_00000.txt"), "apple 2\nbanana 1\n")
	writeRunFile(t, filepath.Join(runDir, "run_df_00001.txt"), "apple 3\n")

	require.NoError(t, IDF(outDir, runDir, 10, 50000))

	lines, err := blockstore.ReadLines(blockstore.IDFBlockFile(outDir, 0))
	require.NoError(t, err)

	byTerm := map[string]string{}
	for _, l := range lines {
		fields := strings.SplitN(l, " ", 2)
		byTerm[fields[0]] = fields[1]
	}
	require.Equal(t, "2", byTerm["apple"]) // 10 / (2+3) == 2
	require.Equal(t, "10", byTerm["banana"])
}

func TestAllMergesEveryFieldAndIDF(t *testing.T) {
	runDir := t.TempDir()
	outDir := t.TempDir()

	for _, f := range config.AllFields {
		writeRunFile(t, posting.RunFieldFile(runDir, f, 0), "word #+:#+\n")
	}
	writeRunFile(t, posting.RunDocFreqFile(runDir, 0), "word 1\n")

	require.NoError(t, All(outDir, runDir, 1, config.Default()))

	for _, f := range config.AllFields {
		_, err := blockstore.ReadLines(blockstore.FieldIndexFile(outDir, byte(f), 0))
		require.NoError(t, err)
	}
	_, err := blockstore.ReadLines(blockstore.IDFBlockFile(outDir, 0))
	require.NoError(t, err)
}
