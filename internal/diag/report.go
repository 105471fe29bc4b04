package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter prints colored milestone lines to stderr during indexing.
// Grounded on eutils/xplore.go's "-color" customization, which wraps
// fmt.Fprintf output in a *color.Color; here the coloring is fixed rather
// than user-configurable since there is no CLI surface for it.
type Reporter struct {
	out     io.Writer
	accent  *color.Color
	ordinal int
}

// NewReporter builds a reporter that writes to out (typically os.Stderr).
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out, accent: color.New(color.FgCyan)}
}

// Spilled reports that run number n has been written, with the running
// document count. Implements xmldrv.Progress.
func (r *Reporter) Spilled(n int, docsSoFar uint64) {
	if r == nil {
		return
	}
	r.accent.Fprintf(r.out, "spilled run %d", n)
	fmt.Fprintf(r.out, " (%d docs)\n", docsSoFar)
}

// Merged reports that a field's blocks have all been written.
func (r *Reporter) Merged(field string, blockCount int) {
	if r == nil {
		return
	}
	r.accent.Fprintf(r.out, "merged field %s", field)
	fmt.Fprintf(r.out, ": %d blocks\n", blockCount)
}

// Done reports overall completion.
func (r *Reporter) Done(totalDocs uint64) {
	if r == nil {
		return
	}
	green := color.New(color.FgGreen, color.Bold)
	green.Fprintf(r.out, "indexed %d documents\n", totalDocs)
}
