package blockstore

import (
	"bufio"
	"fmt"
	"os"

	"github.com/reichan1998/wikindex/internal/encid"
)

// FieldBlockWriter accumulates lines for one field's final posting blocks,
// bounded to capacity distinct terms per block, and writes the parallel
// offsets file plus the in-memory pre-index list as it goes.
//
// Opening files O_TRUNC|O_CREATE and flushing the final accumulator exactly
// once resolves the spec's §9 open question about append-mode contamination
// and double emission.
type FieldBlockWriter struct {
	dir      string
	field    byte
	capacity int

	blockNum   int
	count      int
	offset     int64
	indexFile  *os.File
	indexBuf   *bufio.Writer
	offsetFile *os.File
	offsetBuf  *bufio.Writer

	preIndex []string
}

// NewFieldBlockWriter opens the first block for field under dir.
func NewFieldBlockWriter(dir string, field byte, capacity int) (*FieldBlockWriter, error) {
	w := &FieldBlockWriter{dir: dir, field: field, capacity: capacity}
	if err := w.openBlock(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *FieldBlockWriter) openBlock() error {
	idxF, err := os.OpenFile(FieldIndexFile(w.dir, w.field, w.blockNum), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("blockstore: open index block: %w", err)
	}
	offF, err := os.OpenFile(FieldOffsetFile(w.dir, w.field, w.blockNum), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		idxF.Close()
		return fmt.Errorf("blockstore: open offset block: %w", err)
	}
	w.indexFile = idxF
	w.indexBuf = bufio.NewWriter(idxF)
	w.offsetFile = offF
	w.offsetBuf = bufio.NewWriter(offF)
	w.offset = 0
	w.count = 0
	return nil
}

// WriteLine appends one "term SP posting SP posting ..." line. term is the
// first whitespace-delimited token and is recorded as the block's first term
// if this is the block's opening line.
func (w *FieldBlockWriter) WriteLine(term, line string) error {
	if w.count == 0 {
		w.preIndex = append(w.preIndex, term)
	}

	if _, err := fmt.Fprintf(w.offsetBuf, "%d\n", w.offset); err != nil {
		return fmt.Errorf("blockstore: write offset: %w", err)
	}

	n, err := fmt.Fprintf(w.indexBuf, "%s\n", line)
	if err != nil {
		return fmt.Errorf("blockstore: write line: %w", err)
	}
	w.offset += int64(n)
	w.count++

	if w.count >= w.capacity {
		return w.rotate()
	}
	return nil
}

func (w *FieldBlockWriter) rotate() error {
	if err := w.closeBlock(); err != nil {
		return err
	}
	w.blockNum++
	return w.openBlock()
}

func (w *FieldBlockWriter) closeBlock() error {
	if err := w.indexBuf.Flush(); err != nil {
		return err
	}
	if err := w.offsetBuf.Flush(); err != nil {
		return err
	}
	if err := w.indexFile.Close(); err != nil {
		return err
	}
	return w.offsetFile.Close()
}

// Close flushes any partial final block and writes the field's pre-index file.
func (w *FieldBlockWriter) Close() error {
	if w.count == 0 && w.blockNum > 0 {
		// the final rotate already opened an empty trailing block; remove it
		// rather than leave a zero-line block file behind.
		w.indexBuf.Flush()
		w.offsetBuf.Flush()
		w.indexFile.Close()
		w.offsetFile.Close()
		os.Remove(FieldIndexFile(w.dir, w.field, w.blockNum))
		os.Remove(FieldOffsetFile(w.dir, w.field, w.blockNum))
	} else {
		if err := w.closeBlock(); err != nil {
			return err
		}
	}
	return writePreIndex(FieldPreIndexFile(w.dir, w.field), w.preIndex)
}

func writePreIndex(path string, terms []string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("blockstore: open pre-index: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	for _, t := range terms {
		if _, err := fmt.Fprintf(bw, "%s\n", t); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// IDFBlockWriter accumulates "term SP value" lines for fixed-capacity IDF
// blocks. IDF blocks carry no offsets file — lookup loads the whole block
// and scans it, per the spec's §4.5 "block-local linear or binary search".
type IDFBlockWriter struct {
	dir      string
	capacity int

	blockNum int
	count    int
	file     *os.File
	buf      *bufio.Writer

	preIndex []string
}

// NewIDFBlockWriter opens the first IDF block under dir.
func NewIDFBlockWriter(dir string, capacity int) (*IDFBlockWriter, error) {
	w := &IDFBlockWriter{dir: dir, capacity: capacity}
	if err := w.openBlock(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *IDFBlockWriter) openBlock() error {
	f, err := os.OpenFile(IDFBlockFile(w.dir, w.blockNum), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("blockstore: open idf block: %w", err)
	}
	w.file = f
	w.buf = bufio.NewWriter(f)
	w.count = 0
	return nil
}

// WriteLine appends one "term SP N/df" line.
func (w *IDFBlockWriter) WriteLine(term, line string) error {
	if w.count == 0 {
		w.preIndex = append(w.preIndex, term)
	}
	if _, err := fmt.Fprintf(w.buf, "%s\n", line); err != nil {
		return err
	}
	w.count++
	if w.count >= w.capacity {
		return w.rotate()
	}
	return nil
}

func (w *IDFBlockWriter) rotate() error {
	if err := w.closeBlock(); err != nil {
		return err
	}
	w.blockNum++
	return w.openBlock()
}

func (w *IDFBlockWriter) closeBlock() error {
	if err := w.buf.Flush(); err != nil {
		return err
	}
	return w.file.Close()
}

// Close flushes any partial final block and writes the IDF pre-index file.
func (w *IDFBlockWriter) Close() error {
	if w.count == 0 && w.blockNum > 0 {
		w.buf.Flush()
		w.file.Close()
		os.Remove(IDFBlockFile(w.dir, w.blockNum))
	} else {
		if err := w.closeBlock(); err != nil {
			return err
		}
	}
	return writePreIndex(IDFPreIndexFile(w.dir), w.preIndex)
}

// TitlesWriter buffers (encID, title) pairs in docID-ascending order and
// flushes fixed-size titles blocks with contiguous docIDs.
type TitlesWriter struct {
	dir      string
	capacity int

	blockNum    int
	count       int
	file        *os.File
	buf         *bufio.Writer
	firstEncIDs []string
}

// NewTitlesWriter opens the first titles block under dir.
func NewTitlesWriter(dir string, capacity int) (*TitlesWriter, error) {
	w := &TitlesWriter{dir: dir, capacity: capacity}
	if err := w.openBlock(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *TitlesWriter) openBlock() error {
	f, err := os.OpenFile(TitlesBlockFile(w.dir, w.blockNum), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("blockstore: open titles block: %w", err)
	}
	w.file = f
	w.buf = bufio.NewWriter(f)
	w.count = 0
	return nil
}

// Add appends one title line for the given encoded docID. The pre-index
// records this block's first docID left-padded to encid.Width, so that
// string comparison over the pre-index matches numeric docID order even
// though the block line itself keeps the compact encoding.
func (w *TitlesWriter) Add(encID, title string) error {
	if w.count == 0 {
		w.firstEncIDs = append(w.firstEncIDs, encid.Pad(encID))
	}
	if _, err := fmt.Fprintf(w.buf, "%s %s\n", encID, title); err != nil {
		return err
	}
	w.count++
	if w.count >= w.capacity {
		return w.rotate()
	}
	return nil
}

func (w *TitlesWriter) rotate() error {
	if err := w.closeBlock(); err != nil {
		return err
	}
	w.blockNum++
	return w.openBlock()
}

func (w *TitlesWriter) closeBlock() error {
	if err := w.buf.Flush(); err != nil {
		return err
	}
	return w.file.Close()
}

// Close flushes any partial final block and writes the titles pre-index,
// with each entry normalized to Width per the spec's ordering invariant.
func (w *TitlesWriter) Close() error {
	if w.count == 0 && w.blockNum > 0 {
		w.buf.Flush()
		w.file.Close()
		os.Remove(TitlesBlockFile(w.dir, w.blockNum))
	} else {
		if err := w.closeBlock(); err != nil {
			return err
		}
	}
	return writePreIndex(TitlesPreIndexFile(w.dir), w.firstEncIDs)
}
