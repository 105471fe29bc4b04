package blockstore

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
)

// ReadLines reads every line of path into a slice, in order. Used for small
// files that are loaded wholesale: pre-index files, IDF blocks, titles blocks.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("blockstore: open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("blockstore: scan %s: %w", path, err)
	}
	return lines, nil
}

// ReadOffsets parses an offsets file (one integer per line) into an int64 array.
func ReadOffsets(path string) ([]int64, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	offsets := make([]int64, len(lines))
	for i, l := range lines {
		n, err := strconv.ParseInt(l, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("blockstore: parse offset %q: %w", l, err)
		}
		offsets[i] = n
	}
	return offsets, nil
}

// ReadLineAt seeks to offset in the file at path and reads exactly one line
// (without its trailing newline).
func ReadLineAt(path string, offset int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("blockstore: open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Seek(offset, os.SEEK_SET); err != nil {
		return "", fmt.Errorf("blockstore: seek %s: %w", path, err)
	}

	r := bufio.NewReader(f)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("blockstore: read at offset %d in %s: %w", offset, path, err)
	}
	return trimNewline(line), nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
