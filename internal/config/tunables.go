package config

// Tunables holds every numeric default referenced by more than one package.
// Both cmd/indexer and cmd/searcher build a Tunables with Default() and
// override fields only when the process has a reason to (diag.RecommendSpillSize
// adjusts PagesPerSpill from available memory).
type Tunables struct {
	// PagesPerSpill is how many ingested documents the accumulator holds in
	// RAM before flushing all seven maps to run files (spec: PAGES_PER_PREINDEX).
	PagesPerSpill int

	// TitlesPerFile is how many (encID, title) pairs accumulate before a
	// titles block is flushed.
	TitlesPerFile int

	// TokensPerBlock bounds how many distinct terms a final block file may hold.
	TokensPerBlock int

	// NumResultsPerQuery bounds how many ranked hits a query returns.
	NumResultsPerQuery int
}

// Default returns the spec's stated defaults.
func Default() Tunables {
	return Tunables{
		PagesPerSpill:      15000,
		TitlesPerFile:      50000,
		TokensPerBlock:     50000,
		NumResultsPerQuery: 10,
	}
}

// FieldWeights maps each Field to its scoring weight for one query mode.
type FieldWeights [NumFields]float64

// WeightFor looks up f's weight.
func (w FieldWeights) WeightFor(f Field) float64 {
	return w[f.Index()]
}

// FieldWeightsNormal scores a generic (non field-prefixed) query: titles and
// infoboxes dominate, body carries meaningfully more weight than in a field
// query since it is the only way body text surfaces a hit.
var FieldWeightsNormal = buildWeights(map[Field]float64{
	FieldTitle:         2500,
	FieldInfobox:       2100,
	FieldCategories:    2000,
	FieldBody:          300,
	FieldReferences:    1500,
	FieldExternalLinks: 1500,
})

// FieldWeightsField scores an explicit FIELD:query — body is weighted far
// lower here because a field query naming "b:" already isolates body text,
// so there is no need to additionally inflate its contribution relative to
// the other fields the way the generic table does.
var FieldWeightsField = buildWeights(map[Field]float64{
	FieldTitle:         2500,
	FieldInfobox:       2100,
	FieldCategories:    2000,
	FieldBody:          50,
	FieldReferences:    25,
	FieldExternalLinks: 10,
})

func buildWeights(m map[Field]float64) FieldWeights {
	var w FieldWeights
	for f, v := range m {
		w[f.Index()] = v
	}
	return w
}

// TitleNamespacePrefixes are the article title prefixes filtered out before
// segmentation — these are meta-namespace pages, not encyclopedia articles.
var TitleNamespacePrefixes = []string{"Wikipedia:", "File:", "Template:"}

// ResultTitleExclusionPrefixes hides meta/help pages from query results even
// though, unlike TitleNamespacePrefixes, they were indexed.
var ResultTitleExclusionPrefixes = []string{"Help:", "Module:"}
