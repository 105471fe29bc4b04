package config

// Stopwords is the closed, immutable set of already-stemmed English function
// words (plus a few stemming artifacts) filtered out of every posting list.
// Membership is checked AFTER stemming, so an entry only ever matches when it
// is the form the stemmer produces. Most entries are words a Porter-family
// stemmer leaves untouched (true of nearly all short function words) or the
// reduced form the stemmer produces; a few unstemmed forms (e.g. "yourselves",
// "does") are also listed and never match.
//
// Seeded from the stopword table eutils/misc.go carries for its own indexing
// pipeline (isStopWord) and extended with the stemming artifacts the spec
// calls out by name.
var Stopwords = buildStopwordSet([]string{
	"a", "about", "above", "across", "after", "again", "against", "all",
	"almost", "alone", "along", "already", "also", "although", "always",
	"am", "among", "amongst", "an", "and", "another", "any", "anyhow",
	"anyone", "anything", "anywhere", "applic", "apply", "are", "arise",
	"around", "as", "assum", "at", "be", "becaus", "becom", "been",
	"befor", "behind", "below", "besid", "between", "beyond", "both",
	"but", "by", "came", "can", "cannot", "come", "could", "de", "depend",
	"did", "do", "does", "done", "due", "dure", "each", "eg", "either",
	"els", "elsewher", "enough", "especi", "etc", "ever", "everi",
	"everyon", "everyth", "everywher", "except", "find", "for", "found",
	"from", "further", "gave", "get", "give", "go", "gone", "got", "had",
	"has", "have", "hav", "he", "hence", "her", "here", "hereaft",
	"herebi", "herein", "hereupon", "hers", "herself", "him", "himself",
	"his", "how", "howev", "ie", "if", "immedi", "import", "in", "inc",
	"inde", "into", "investig", "is", "it", "its", "itself", "just",
	"keep", "kept", "last", "latter", "letter", "like", "ltd", "made",
	"mainli", "make", "mani", "may", "me", "meanwhil", "might", "more",
	"moreov", "most", "mostli", "much", "must", "my", "myself", "namely",
	"nearli", "necessarili", "neither", "never", "nevertheless", "next",
	"no", "nobodi", "noon", "nor", "normal", "not", "note", "noth",
	"now", "nowher", "obtain", "of", "off", "often", "on", "onli",
	"onto", "or", "other", "otherwis", "ought", "our", "ours",
	"ourselv", "out", "over", "owe", "own", "particularli", "per",
	"perhap", "precede", "predomin", "present", "presently", "previous",
	"primarili", "promptli", "quickli", "quit", "rather", "readili",
	"realli", "recent", "refs", "regard", "relate", "said", "same",
	"seem", "seen", "serious", "sever", "shall", "she", "should", "show",
	"signific", "sinc", "slight", "so", "some", "somehow", "someon",
	"someth", "sometim", "somewhat", "somewher", "soon", "specif",
	"still", "strongli", "studi", "sub", "substanti", "such", "suffici",
	"take", "tell", "than", "that", "the", "their", "theirs", "them",
	"themselv", "then", "thenc", "there", "thereaft", "therebi",
	"therefor", "therein", "thereupon", "these", "they", "thi",
	"thorough", "those", "though", "through", "throughout", "thru",
	"thus", "to", "togeth", "too", "toward", "towards", "tri", "type",
	"under", "unless", "until", "up", "upon", "us", "use", "usual",
	"various", "veri", "via", "wa", "we", "were", "what", "whatev",
	"when", "whenev", "where", "whereaft", "wherea", "wherebi",
	"wherein", "whereupon", "wherev", "whether", "which", "while",
	"whither", "who", "whoever", "whom", "whose", "why", "will",
	"with", "within", "without", "would", "yet", "you", "your", "yours",
	"yourself", "yourselves",
})

func buildStopwordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// IsStopword reports whether term (already stemmed) is in the stopword set.
func IsStopword(term string) bool {
	_, ok := Stopwords[term]
	return ok
}
