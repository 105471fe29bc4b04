package diag

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/reichan1998/wikindex/internal/config"
)

// Stats collects the figures the indexer reports to its stats file: total
// index size on disk, total tokens indexed, per-field block counts, wall
// time, and the host's RAM/core count.
type Stats struct {
	TotalDocs      uint64
	TotalTokens    uint64
	BlockCounts    [config.NumFields]int
	FileCount      int
	TotalDiskBytes int64
	Elapsed        time.Duration
	Host           HostInfo
}

// WriteFile writes stats as flat "key: value" lines to path, overwriting
// any existing content.
func (s Stats) WriteFile(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("diag: open stats file %s: %w", path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	fmt.Fprintf(bw, "total_documents: %d\n", s.TotalDocs)
	fmt.Fprintf(bw, "total_tokens: %d\n", s.TotalTokens)
	for _, field := range config.AllFields {
		fmt.Fprintf(bw, "blocks_%s: %d\n", field, s.BlockCounts[field.Index()])
	}
	fmt.Fprintf(bw, "file_count: %d\n", s.FileCount)
	fmt.Fprintf(bw, "index_size_bytes: %d\n", s.TotalDiskBytes)
	fmt.Fprintf(bw, "elapsed_seconds: %.3f\n", s.Elapsed.Seconds())
	fmt.Fprintf(bw, "host_logical_cores: %d\n", s.Host.LogicalCores)
	fmt.Fprintf(bw, "host_threads_per_core: %d\n", s.Host.ThreadsPerCore)
	fmt.Fprintf(bw, "host_total_memory_mib: %d\n", s.Host.TotalMemoryMiB)
	return bw.Flush()
}

// DirSize sums the byte size of every regular file directly under dir, used
// to populate Stats.TotalDiskBytes after a merge completes.
func DirSize(dir string) (int64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("diag: read dir %s: %w", dir, err)
	}
	var total int64
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return 0, fmt.Errorf("diag: stat %s: %w", e.Name(), err)
		}
		total += info.Size()
	}
	return total, nil
}

// FileCount counts the regular files directly under dir: the block, offset,
// titles, and IDF files that together make up the on-disk index.
func FileCount(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("diag: read dir %s: %w", dir, err)
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() {
			n++
		}
	}
	return n, nil
}
