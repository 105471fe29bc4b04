package posting

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reichan1998/wikindex/internal/config"
	"github.com/reichan1998/wikindex/internal/document"
	"github.com/reichan1998/wikindex/internal/encid"
	"github.com/reichan1998/wikindex/internal/segment"
)

func fieldsWith(title, body []string) segment.Fields {
	var f segment.Fields
	f[config.FieldTitle.Index()] = title
	f[config.FieldBody.Index()] = body
	return f
}

func TestAddDocumentRecordsEncodedTermFrequencyPostings(t *testing.T) {
	a := NewAccumulator()
	doc := document.New(7, "Banana")

	a.AddDocument(doc, fieldsWith([]string{"banana"}, []string{"banana", "banana", "fruit"}))

	bodyPostings := a.Postings(config.FieldBody, "banana")
	require.Len(t, bodyPostings, 1)
	require.Equal(t, doc.EncodedID+":"+encid.Encode(2), bodyPostings[0])

	fruitPostings := a.Postings(config.FieldBody, "fruit")
	require.Equal(t, []string{doc.EncodedID + ":" + encid.Encode(1)}, fruitPostings)

	titlePostings := a.Postings(config.FieldTitle, "banana")
	require.Equal(t, []string{doc.EncodedID + ":" + encid.Encode(1)}, titlePostings)
}

func TestAddDocumentIncrementsDocFreqOncePerDocumentAcrossFields(t *testing.T) {
	a := NewAccumulator()

	a.AddDocument(document.New(1, "A"), fieldsWith([]string{"banana"}, []string{"banana", "banana"}))
	require.Equal(t, 1, a.DocFreq("banana"))

	a.AddDocument(document.New(2, "B"), fieldsWith(nil, []string{"banana"}))
	require.Equal(t, 2, a.DocFreq("banana"))
	require.Equal(t, 2, a.DocCount())
}

func TestResetClearsAllState(t *testing.T) {
	a := NewAccumulator()
	a.AddDocument(document.New(1, "A"), fieldsWith([]string{"banana"}, nil))
	require.Equal(t, 1, a.DocCount())

	a.Reset()

	require.Equal(t, 0, a.DocCount())
	require.Empty(t, a.SortedTerms(config.FieldTitle))
	require.Empty(t, a.SortedDocFreqTerms())
	require.Equal(t, 0, a.DocFreq("banana"))
}

func TestSortedTermsAreLexicographic(t *testing.T) {
	a := NewAccumulator()
	a.AddDocument(document.New(1, "A"), fieldsWith(nil, []string{"zebra", "apple", "mango"}))

	require.Equal(t, []string{"apple", "mango", "zebra"}, a.SortedTerms(config.FieldBody))
}
