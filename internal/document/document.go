// Package document defines the Document record and monotone docID
// assignment used by the XML driver as it ingests articles.
package document

import "github.com/reichan1998/wikindex/internal/encid"

// Document is the immutable record created at each page boundary: a
// monotone docID, its encoded form, and the original title as it appeared
// in the source (used only for display at query time).
type Document struct {
	ID        uint64
	EncodedID string
	Title     string
}

// New assigns id to title and pre-computes its encoded form.
func New(id uint64, title string) Document {
	return Document{
		ID:        id,
		EncodedID: encid.Encode(id),
		Title:     title,
	}
}

// Assigner hands out strictly increasing docIDs starting at 0, in ingest
// order. It is the only place docIDs are minted — nothing else may assign one.
type Assigner struct {
	next uint64
}

// Next returns the next docID and advances the counter.
func (a *Assigner) Next() uint64 {
	id := a.next
	a.next++
	return id
}

// Count reports how many IDs have been handed out so far.
func (a *Assigner) Count() uint64 {
	return a.next
}
