// Package searchindex implements the search-side Pre-Index Loader, Block
// Locator, IDF Resolver, and Titles Resolver: the two-level lookup path of
// sparse in-RAM pre-index followed by on-disk binary search.
//
// Grounded on eutils/poster.go's lookup path (binary search over a loaded
// term offset table, then a seek-and-read against the posting file), adapted
// here to the plain-text block/offset/pre-index layout internal/blockstore
// writes rather than poster.go's packed binary records.
package searchindex

import (
	"errors"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/reichan1998/wikindex/internal/blockstore"
	"github.com/reichan1998/wikindex/internal/config"
)

// Index holds the loaded sparse pre-indexes plus on-demand block caches for
// one finished index directory. It never writes to the directory, so
// concurrent Searcher processes can share one index, per the concurrency
// contract. IDF and Title fill the block caches lazily; the caches are plain
// maps with no locking, so one Index is not safe for concurrent goroutines.
type Index struct {
	dir string

	fieldPreIndex  [config.NumFields][]string
	idfPreIndex    []string
	titlesPreIndex []string

	idfBlocks    map[int]map[string]string
	titlesBlocks map[int][]string
}

// Load reads every pre-index file under dir into memory. A field, IDF, or
// titles pre-index file that doesn't exist (the corpus never produced any
// postings for it) is treated as empty rather than an error.
func Load(dir string) (*Index, error) {
	ix := &Index{
		dir:          dir,
		idfBlocks:    make(map[int]map[string]string),
		titlesBlocks: make(map[int][]string),
	}

	for _, field := range config.AllFields {
		lines, err := readLinesOrEmpty(blockstore.FieldPreIndexFile(dir, byte(field)))
		if err != nil {
			return nil, err
		}
		ix.fieldPreIndex[field.Index()] = lines
	}

	idfLines, err := readLinesOrEmpty(blockstore.IDFPreIndexFile(dir))
	if err != nil {
		return nil, err
	}
	ix.idfPreIndex = idfLines

	titleLines, err := readLinesOrEmpty(blockstore.TitlesPreIndexFile(dir))
	if err != nil {
		return nil, err
	}
	ix.titlesPreIndex = titleLines

	return ix, nil
}

func readLinesOrEmpty(path string) ([]string, error) {
	lines, err := blockstore.ReadLines(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return lines, nil
}

// locateBlock returns the greatest index k with preIndex[k] <= term, the
// block a term would live in given its first-term-of-block sparse index.
func locateBlock(preIndex []string, term string) (int, bool) {
	if len(preIndex) == 0 {
		return 0, false
	}
	i := sort.Search(len(preIndex), func(i int) bool { return preIndex[i] > term })
	if i == 0 {
		return 0, false
	}
	return i - 1, true
}

func splitFirstToken(line string) (string, string) {
	idx := strings.IndexByte(line, ' ')
	if idx < 0 {
		return line, ""
	}
	return line[:idx], line[idx+1:]
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
