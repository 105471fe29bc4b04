// Command searcher answers ranked queries against a wikindex index
// directory: searcher <queries_file> <index_dir> <output_file>.
//
// Grounded on cmd/xtract.go's main(): plain os.Args[1:] slicing, a single
// "\nERROR: ...\n" message on stderr followed by os.Exit(1) for any fatal
// condition.
package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/reichan1998/wikindex/internal/config"
	"github.com/reichan1998/wikindex/internal/query"
	"github.com/reichan1998/wikindex/internal/scorer"
	"github.com/reichan1998/wikindex/internal/searchindex"
)

func main() {
	args := os.Args[1:]
	if len(args) != 3 {
		fmt.Fprintf(os.Stderr, "\nERROR: Usage: searcher <queries_file> <index_dir> <output_file>\n")
		os.Exit(1)
	}
	queriesFile, indexDir, outputFile := args[0], args[1], args[2]

	if _, err := os.Stat(queriesFile); err != nil {
		fmt.Fprintf(os.Stderr, "\nERROR: queries file %s not found\n", queriesFile)
		os.Exit(1)
	}
	if _, err := os.Stat(indexDir); err != nil {
		fmt.Fprintf(os.Stderr, "\nERROR: index directory %s not found\n", indexDir)
		os.Exit(1)
	}

	if err := run(queriesFile, indexDir, outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "\nERROR: %s\n", err)
		os.Exit(1)
	}
}

func run(queriesFile, indexDir, outputFile string) error {
	if _, err := os.Stat(indexDir); err != nil {
		return fmt.Errorf("index directory %s not found: %w", indexDir, err)
	}

	ix, err := searchindex.Load(indexDir)
	if err != nil {
		return fmt.Errorf("load index: %w", err)
	}

	in, err := os.Open(queriesFile)
	if err != nil {
		return fmt.Errorf("open queries file: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(outputFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer out.Close()
	bw := bufio.NewWriter(out)
	defer bw.Flush()

	tun := config.Default()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		raw := scanner.Text()
		if isBlank(raw) {
			continue
		}
		if err := answerQuery(bw, ix, raw, tun.NumResultsPerQuery); err != nil {
			return fmt.Errorf("query %q: %w", raw, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read queries file: %w", err)
	}
	return bw.Flush()
}

func answerQuery(bw *bufio.Writer, ix *searchindex.Index, raw string, maxResults int) error {
	started := time.Now()

	q := query.Parse(raw)
	results, err := scorer.Score(ix, q, maxResults)
	if err != nil {
		return err
	}

	for _, r := range results {
		if _, err := fmt.Fprintf(bw, "%s %s %g\n", r.EncID, r.Title, r.Score); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(bw, "elapsed: %.6fs\n\n", time.Since(started).Seconds()); err != nil {
		return err
	}
	return nil
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\r' {
			return false
		}
	}
	return true
}
