package searchindex

import (
	"fmt"

	"github.com/reichan1998/wikindex/internal/blockstore"
	"github.com/reichan1998/wikindex/internal/config"
	"github.com/reichan1998/wikindex/internal/encid"
)

// PostingLine locates and returns the full "term SP posting ..." line for
// (field, term), or ok=false if the term has no postings in that field.
func (ix *Index) PostingLine(field config.Field, term string) (line string, ok bool, err error) {
	preIndex := ix.fieldPreIndex[field.Index()]
	k, found := locateBlock(preIndex, term)
	if !found {
		return "", false, nil
	}

	offsets, err := blockstore.ReadOffsets(blockstore.FieldOffsetFile(ix.dir, byte(field), k))
	if err != nil {
		return "", false, fmt.Errorf("searchindex: load offsets for field %s block %d: %w", field, k, err)
	}

	indexPath := blockstore.FieldIndexFile(ix.dir, byte(field), k)
	lo, hi := 0, len(offsets)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		probe, err := blockstore.ReadLineAt(indexPath, offsets[mid])
		if err != nil {
			return "", false, fmt.Errorf("searchindex: read posting line: %w", err)
		}
		token, _ := splitFirstToken(probe)
		switch {
		case token == term:
			return probe, true, nil
		case token < term:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return "", false, nil
}

// IDF returns idf(term), memoizing the whole IDF block it falls in.
func (ix *Index) IDF(term string) (idf float64, ok bool, err error) {
	k, found := locateBlock(ix.idfPreIndex, term)
	if !found {
		return 0, false, nil
	}

	block, err := ix.idfBlock(k)
	if err != nil {
		return 0, false, err
	}
	raw, present := block[term]
	if !present {
		return 0, false, nil
	}
	v, err := parseFloat(raw)
	if err != nil {
		return 0, false, fmt.Errorf("searchindex: parse idf value %q: %w", raw, err)
	}
	return v, true, nil
}

func (ix *Index) idfBlock(k int) (map[string]string, error) {
	if cached, ok := ix.idfBlocks[k]; ok {
		return cached, nil
	}
	lines, err := blockstore.ReadLines(blockstore.IDFBlockFile(ix.dir, k))
	if err != nil {
		return nil, fmt.Errorf("searchindex: load idf block %d: %w", k, err)
	}
	m := make(map[string]string, len(lines))
	for _, l := range lines {
		term, rest := splitFirstToken(l)
		m[term] = rest
	}
	ix.idfBlocks[k] = m
	return m, nil
}

// Title resolves an encoded docID to its stored title, memoizing the whole
// titles block it falls in.
func (ix *Index) Title(encID string) (title string, ok bool, err error) {
	padded := encid.Pad(encID)
	k, found := locateBlock(ix.titlesPreIndex, padded)
	if !found {
		return "", false, nil
	}

	firstID, err := encid.Decode(ix.titlesPreIndex[k])
	if err != nil {
		return "", false, fmt.Errorf("searchindex: decode titles pre-index entry: %w", err)
	}
	targetID, err := encid.Decode(padded)
	if err != nil {
		return "", false, fmt.Errorf("searchindex: decode encoded id %q: %w", encID, err)
	}
	lineNo := int(targetID - firstID)

	lines, err := ix.titlesBlock(k)
	if err != nil {
		return "", false, err
	}
	if lineNo < 0 || lineNo >= len(lines) {
		return "", false, fmt.Errorf("searchindex: titles block %d has no line %d for %s", k, lineNo, encID)
	}

	_, title = splitFirstToken(lines[lineNo])
	return title, true, nil
}

func (ix *Index) titlesBlock(k int) ([]string, error) {
	if cached, ok := ix.titlesBlocks[k]; ok {
		return cached, nil
	}
	lines, err := blockstore.ReadLines(blockstore.TitlesBlockFile(ix.dir, k))
	if err != nil {
		return nil, fmt.Errorf("searchindex: load titles block %d: %w", k, err)
	}
	ix.titlesBlocks[k] = lines
	return lines, nil
}
