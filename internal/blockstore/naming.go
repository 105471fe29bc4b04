// Package blockstore implements the on-disk layout shared by the indexer
// (writing) and the searcher (reading): fixed-capacity block files with
// parallel byte-offset files and the in-memory sparse pre-indexes that point
// into them.
//
// Grounded on eutils/poster.go's on-disk posting layout (a master index of
// term/posting offsets, a flat term list, and binary search over both,
// opened fresh per lookup via commonOpenFile) and on eutils/merge.go's k-way
// merge, which is where that layout is produced. The spec's plain-text line
// format (vs. poster.go's packed binary int32 arrays) is honored exactly as
// specified.
package blockstore

import (
	"fmt"
	"path/filepath"
)

// FieldIndexFile names the k-th block file for field f.
func FieldIndexFile(dir string, f byte, k int) string {
	return filepath.Join(dir, fmt.Sprintf("index_%c_%d.txt", f, k))
}

// FieldOffsetFile names the offsets file parallel to FieldIndexFile.
func FieldOffsetFile(dir string, f byte, k int) string {
	return filepath.Join(dir, fmt.Sprintf("offsets_%c_%d.txt", f, k))
}

// FieldPreIndexFile names the sparse pre-index file for field f.
func FieldPreIndexFile(dir string, f byte) string {
	return filepath.Join(dir, fmt.Sprintf("pre_index_%c.txt", f))
}

// IDFBlockFile names the k-th IDF block file.
func IDFBlockFile(dir string, k int) string {
	return filepath.Join(dir, fmt.Sprintf("idf_%d.txt", k))
}

// IDFPreIndexFile names the sparse pre-index file for IDF blocks.
func IDFPreIndexFile(dir string) string {
	return filepath.Join(dir, "pre_index_idf.txt")
}

// TitlesBlockFile names the k-th titles block file.
func TitlesBlockFile(dir string, k int) string {
	return filepath.Join(dir, fmt.Sprintf("article_titles_%d.txt", k))
}

// TitlesPreIndexFile names the sparse pre-index file for titles blocks.
func TitlesPreIndexFile(dir string) string {
	return filepath.Join(dir, "pre_index_titles.txt")
}
