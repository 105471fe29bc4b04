package xmldrv

import (
	"io"

	"github.com/reichan1998/wikindex/internal/blockstore"
	"github.com/reichan1998/wikindex/internal/document"
	"github.com/reichan1998/wikindex/internal/posting"
)

// Progress receives milestone callbacks during ingest. cmd/indexer wires
// internal/diag.Reporter in; tests pass nil or a recording fake.
type Progress interface {
	Spilled(runNumber int, docsSoFar uint64)
}

// Ingester owns the full ingest loop: drive the XML stream, fold every
// surviving page into the accumulator and titles writer, and spill every
// PagesPerSpill documents, with a final trailing spill at end of stream.
type Ingester struct {
	pipeline *Pipeline
	acc      *posting.Accumulator
	runs     *posting.RunWriter
	perSpill int
	progress Progress

	docsSinceSpill int
	runNumber      int
	totalTokens    uint64
}

// NewIngester wires the pipeline stages together.
func NewIngester(assigner *document.Assigner, acc *posting.Accumulator, titles *blockstore.TitlesWriter, runs *posting.RunWriter, perSpill int, progress Progress) *Ingester {
	return &Ingester{
		pipeline: NewPipeline(assigner, acc, titles),
		acc:      acc,
		runs:     runs,
		perSpill: perSpill,
		progress: progress,
	}
}

// Run drives r to completion, returning the total number of documents
// ingested (filtered-namespace pages excluded) and the total token count
// across all fields of all ingested documents.
func (in *Ingester) Run(r io.Reader) (docs uint64, tokens uint64, err error) {
	err = Drive(r, func(rawTitle, rawText string) error {
		processed, n, err := in.pipeline.HandlePage(rawTitle, rawText)
		if err != nil {
			return err
		}
		if !processed {
			return nil
		}
		in.totalTokens += uint64(n)

		in.docsSinceSpill++
		if in.docsSinceSpill >= in.perSpill {
			if err := in.spill(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	if err := in.spill(); err != nil {
		return 0, 0, err
	}
	return in.pipeline.assigner.Count(), in.totalTokens, nil
}

func (in *Ingester) spill() error {
	spilled, err := in.runs.Spill(in.acc)
	if err != nil {
		return err
	}
	in.docsSinceSpill = 0
	if spilled {
		if in.progress != nil {
			in.progress.Spilled(in.runNumber, in.pipeline.assigner.Count())
		}
		in.runNumber++
	}
	return nil
}
