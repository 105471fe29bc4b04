// Package xmldrv implements the XML Driver: the three-state automaton that
// pulls page/title/text events from a SAX-style decoder, filters pages by
// namespace prefix, and feeds the field segmenter, tokenizer, and posting
// accumulator for every surviving page.
//
// The SAX-style pull itself is an out-of-scope external collaborator; this
// package consumes the standard library's encoding/xml.Decoder for that role
// (see DESIGN.md) rather than the byte-level scanner eutils/xml.go hand-rolls
// for NCBI's own wire format. The per-page state machine and the wiring to
// the segmenter/tokenizer/accumulator are grounded on eutils/xplore.go's
// PartitionPattern + ProcessSearch pipeline, which likewise pulls XML
// elements from a stream and dispatches to per-record processing.
package xmldrv

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/reichan1998/wikindex/internal/blockstore"
	"github.com/reichan1998/wikindex/internal/document"
	"github.com/reichan1998/wikindex/internal/segment"
)

type state int

const (
	stateOutside state = iota
	stateInTitle
	stateInText
)

// PageHandler receives one fully-assembled page's raw title and text content.
// Returning an error aborts the drive.
type PageHandler func(rawTitle, rawText string) error

// Drive reads page/title/text elements from r and invokes handle once per
// page element, in document order. Elements other than page/title/text are
// ignored; character data is accumulated into whichever of title/text is
// currently open.
func Drive(r io.Reader, handle PageHandler) error {
	dec := xml.NewDecoder(r)
	dec.Strict = false

	st := stateOutside
	var title, text strings.Builder

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("xmldrv: malformed xml: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "page":
				title.Reset()
				text.Reset()
				st = stateOutside
			case "title":
				st = stateInTitle
			case "text":
				st = stateInText
			}
		case xml.CharData:
			switch st {
			case stateInTitle:
				title.Write(el)
			case stateInText:
				text.Write(el)
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "title":
				st = stateOutside
			case "text":
				st = stateOutside
			case "page":
				if err := handle(title.String(), text.String()); err != nil {
					return err
				}
				st = stateOutside
			}
		}
	}
}

// Pipeline drives pages through the namespace filter, the field segmenter,
// and the tokenizer, folding each surviving page's terms into sink and
// recording its title for display at query time.
type Pipeline struct {
	assigner *document.Assigner
	sink     Sink
	titles   *blockstore.TitlesWriter
}

// Sink receives one ingested document's encoded fields. Implemented by
// internal/posting.Accumulator.
type Sink interface {
	AddDocument(doc document.Document, fields segment.Fields)
}

// NewPipeline builds a pipeline that assigns docIDs via assigner, folds
// segmented, tokenized pages into sink, and records titles into titles.
func NewPipeline(assigner *document.Assigner, sink Sink, titles *blockstore.TitlesWriter) *Pipeline {
	return &Pipeline{assigner: assigner, sink: sink, titles: titles}
}

// HandlePage is a PageHandler: it applies the namespace filter, segments and
// tokenizes the page, assigns a docID, and folds the result into the sink and
// the titles writer. Pages in a filtered namespace are dropped without
// consuming a docID; processed is false for such a page. tokens counts
// every token occurrence across all six fields, for the indexer's stats file.
func (p *Pipeline) HandlePage(rawTitle, rawText string) (processed bool, tokens int, err error) {
	if segment.IsFilteredNamespace(rawTitle) {
		return false, 0, nil
	}

	fields := segment.Segment(rawTitle, rawText)
	id := p.assigner.Next()
	doc := document.New(id, rawTitle)
	p.sink.AddDocument(doc, fields)
	if err := p.titles.Add(doc.EncodedID, doc.Title); err != nil {
		return false, 0, fmt.Errorf("xmldrv: record title: %w", err)
	}

	for _, terms := range fields {
		tokens += len(terms)
	}
	return true, tokens, nil
}
