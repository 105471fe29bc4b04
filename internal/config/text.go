package config

// HTMLEntities is the fixed set of entities the tokenizer replaces with a
// single space before splitting on whitespace.
var HTMLEntities = map[string]string{
	"&nbsp;": " ",
	"&lt;":   " ",
	"&gt;":   " ",
	"&amp;":  " ",
	"&quot;": " ",
	"&apos;": " ",
}

// PunctuationRunes is the fixed set of punctuation/symbol characters folded
// to a single space, producing a generalized non-word-boundary split.
const PunctuationRunes = "%$'~|.*[]:;,{}()=+-_#!`\"?/><&\\—"
