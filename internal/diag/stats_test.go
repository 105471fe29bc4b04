package diag

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reichan1998/wikindex/internal/config"
)

func TestWriteFileEmitsKeyValueLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stats.txt")

	s := Stats{
		TotalDocs:      42,
		TotalTokens:    1000,
		FileCount:      13,
		TotalDiskBytes: 2048,
		Elapsed:        1500 * time.Millisecond,
		Host:           HostInfo{LogicalCores: 4, ThreadsPerCore: 2, TotalMemoryMiB: 8192},
	}
	s.BlockCounts[config.FieldTitle.Index()] = 3

	require.NoError(t, s.WriteFile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	require.Contains(t, text, "total_documents: 42\n")
	require.Contains(t, text, "total_tokens: 1000\n")
	require.Contains(t, text, "blocks_title: 3\n")
	require.Contains(t, text, "file_count: 13\n")
	require.Contains(t, text, "index_size_bytes: 2048\n")
	require.Contains(t, text, "elapsed_seconds: 1.500\n")
	require.Contains(t, text, "host_logical_cores: 4\n")
}

func TestFileCountCountsRegularFilesOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("hi"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	n, err := FileCount(dir)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestDirSizeSumsRegularFilesOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("hi"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	size, err := DirSize(dir)
	require.NoError(t, err)
	require.Equal(t, int64(7), size)
}
