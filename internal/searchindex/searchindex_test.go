package searchindex

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reichan1998/wikindex/internal/blockstore"
	"github.com/reichan1998/wikindex/internal/config"
	"github.com/reichan1998/wikindex/internal/encid"
)

func buildTestIndex(t *testing.T, dir string) {
	t.Helper()

	fw, err := blockstore.NewFieldBlockWriter(dir, byte(config.FieldBody), 2)
	require.NoError(t, err)
	require.NoError(t, fw.WriteLine("apple", "apple "+encid.Encode(1)+":"+encid.Encode(3)))
	require.NoError(t, fw.WriteLine("banana", "banana "+encid.Encode(1)+":"+encid.Encode(1)))
	require.NoError(t, fw.WriteLine("cherry", "cherry "+encid.Encode(2)+":"+encid.Encode(2)))
	require.NoError(t, fw.Close())

	iw, err := blockstore.NewIDFBlockWriter(dir, 50)
	require.NoError(t, err)
	require.NoError(t, iw.WriteLine("apple", "apple 2.5"))
	require.NoError(t, iw.WriteLine("banana", "banana 1.25"))
	require.NoError(t, iw.Close())

	tw, err := blockstore.NewTitlesWriter(dir, 50)
	require.NoError(t, err)
	require.NoError(t, tw.Add(encid.Encode(1), "Apple Pie"))
	require.NoError(t, tw.Add(encid.Encode(2), "Banana Bread"))
	require.NoError(t, tw.Close())
}

func TestPostingLineFindsExactTermAcrossBlocks(t *testing.T) {
	dir := t.TempDir()
	buildTestIndex(t, dir)

	ix, err := Load(dir)
	require.NoError(t, err)

	line, ok, err := ix.PostingLine(config.FieldBody, "cherry")
	require.NoError(t, err)
	require.True(t, ok)
	require.Contains(t, line, "cherry")

	_, ok, err = ix.PostingLine(config.FieldBody, "durian")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPostingLineReturnsFalseForFieldWithNoPostings(t *testing.T) {
	dir := t.TempDir()
	buildTestIndex(t, dir)

	ix, err := Load(dir)
	require.NoError(t, err)

	_, ok, err := ix.PostingLine(config.FieldTitle, "apple")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestIDFResolvesKnownTermAndMissesUnknown(t *testing.T) {
	dir := t.TempDir()
	buildTestIndex(t, dir)

	ix, err := Load(dir)
	require.NoError(t, err)

	v, ok, err := ix.IDF("banana")
	require.NoError(t, err)
	require.True(t, ok)
	require.InDelta(t, 1.25, v, 1e-9)

	_, ok, err = ix.IDF("missing")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTitleResolvesByArithmeticLineNumber(t *testing.T) {
	dir := t.TempDir()
	buildTestIndex(t, dir)

	ix, err := Load(dir)
	require.NoError(t, err)

	title, ok, err := ix.Title(encid.Encode(2))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Banana Bread", title)
}

func TestLoadToleratesMissingFieldWithNoPostings(t *testing.T) {
	dir := t.TempDir()
	// only write the body field's files; title/infobox/etc. never got any terms.
	fw, err := blockstore.NewFieldBlockWriter(dir, byte(config.FieldBody), 50)
	require.NoError(t, err)
	require.NoError(t, fw.WriteLine("apple", "apple "+encid.Encode(1)+":"+encid.Encode(1)))
	require.NoError(t, fw.Close())

	ix, err := Load(dir)
	require.NoError(t, err)

	_, ok, err := ix.PostingLine(config.FieldTitle, "apple")
	require.NoError(t, err)
	require.False(t, ok)
}
