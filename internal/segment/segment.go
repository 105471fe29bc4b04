// Package segment splits a raw article (title + wikitext) into the six
// fields the rest of the pipeline indexes independently.
//
// There is no direct teacher analogue for wikitext field extraction — eutils
// segments PubMed XML by element name (TITL/TIAB/MESH/...), which is a
// structured-markup problem, not a regex-over-freeform-wikitext one. This
// package is grounded on the teacher's general approach to "cut a blob of
// text into named sections with regexp" (eutils/citref.go uses exactly this
// style — precompiled package-level *regexp.Regexp values applied with
// FindAllStringSubmatch/ReplaceAllString — to pull citation fields out of
// loosely structured reference text) rather than on any single teacher
// function.
package segment

import (
	"regexp"
	"strings"

	"github.com/reichan1998/wikindex/internal/config"
	"github.com/reichan1998/wikindex/internal/token"
)

var (
	headingReferences     = regexp.MustCompile(`(?i)==\s*references\s*==`)
	headingExternalLinks  = regexp.MustCompile(`(?i)==\s*external links\s*==`)
	infoboxBlock          = regexp.MustCompile(`(?is){{\s*infobox(.*?)\n}}`)
	anyTemplateBlock      = regexp.MustCompile(`(?s){{.*?}}`)
	categoryLink          = regexp.MustCompile(`(?i)\[\[category:([^\]]*)\]\]`)
	reflistTemplate       = regexp.MustCompile(`(?i){{\s*reflist[^}]*}}`)
)

// Fields holds the six tokenized term sequences produced for one article,
// indexed the same way config.Field.Index() indexes any other per-field array.
type Fields [config.NumFields][]string

// Segment extracts and tokenizes all six fields from an article's title and
// raw wikitext body.
func Segment(title, text string) Fields {
	normalized := normalizeHeadings(text)

	pre, post, hasReferences := splitOnReferences(normalized)

	var f Fields
	f[config.FieldTitle.Index()] = token.Tokenize(title)
	f[config.FieldBody.Index()] = token.Tokenize(stripTemplates(pre))
	f[config.FieldInfobox.Index()] = token.Tokenize(extractInfoboxes(pre))
	f[config.FieldCategories.Index()] = token.Tokenize(extractCategories(normalized))

	if hasReferences {
		f[config.FieldReferences.Index()] = token.Tokenize(extractReferences(post))
		f[config.FieldExternalLinks.Index()] = token.Tokenize(extractExternalLinks(post))
	}

	return f
}

// IsFilteredNamespace reports whether an article's raw (pre-trim) title
// belongs to a non-article namespace that must never be indexed.
func IsFilteredNamespace(rawTitle string) bool {
	for _, prefix := range config.TitleNamespacePrefixes {
		if strings.HasPrefix(rawTitle, prefix) {
			return true
		}
	}
	return false
}

// normalizeHeadings collapses "== references ==", "==References==", and any
// other spacing variant into the canonical "==references==" marker (and the
// external-links analogue) so a single literal split can find it.
func normalizeHeadings(text string) string {
	text = headingReferences.ReplaceAllString(text, "==references==")
	text = headingExternalLinks.ReplaceAllString(text, "==external links==")
	return text
}

// splitOnReferences performs the single split on "==references==" the spec
// calls for: everything before is pre-references, everything after (if the
// marker exists at all) is post-references.
func splitOnReferences(text string) (pre, post string, hasReferences bool) {
	idx := strings.Index(text, "==references==")
	if idx < 0 {
		return text, "", false
	}
	return text[:idx], text[idx+len("==references=="):], true
}

// extractInfoboxes concatenates the body of every {{infobox ...}} block in
// pre-references text, each block terminated by a line that is exactly "}}".
// Only the text after the "{{infobox" opener is kept, so the literal word
// "infobox" never reaches the tokenizer.
func extractInfoboxes(pre string) string {
	matches := infoboxBlock.FindAllStringSubmatch(pre, -1)
	bodies := make([]string, len(matches))
	for i, m := range matches {
		bodies[i] = m[1]
	}
	return strings.Join(bodies, " ")
}

// stripTemplates removes every infobox block, then every remaining
// double-brace template occurrence, leaving body prose behind.
func stripTemplates(pre string) string {
	withoutInfoboxes := infoboxBlock.ReplaceAllString(pre, " ")
	return anyTemplateBlock.ReplaceAllString(withoutInfoboxes, " ")
}

// extractCategories tokenizes every [[category:x]] link over the full
// (un-split) article text, since categories conventionally trail the
// references section in real wikitext.
func extractCategories(fullText string) string {
	matches := categoryLink.FindAllString(fullText, -1)
	return strings.Join(matches, " ")
}

// extractReferences returns the first paragraph of the post-references half,
// with any "reflist" noise stripped from that paragraph afterward. The
// paragraph boundary is found before stripping, not after, so a reflist
// template sitting near a blank line can't shift or merge what would
// otherwise be the first paragraph.
func extractReferences(post string) string {
	para := firstParagraph(post)
	return reflistTemplate.ReplaceAllString(para, " ")
}

// extractExternalLinks returns the first paragraph following the
// "==external links==" marker, or empty if that marker is absent.
func extractExternalLinks(post string) string {
	idx := strings.Index(post, "==external links==")
	if idx < 0 {
		return ""
	}
	after := post[idx+len("==external links=="):]
	return firstParagraph(after)
}

// firstParagraph returns the text up to the first blank line, or the whole
// trimmed string if there is no blank line.
func firstParagraph(s string) string {
	s = strings.TrimLeft(s, "\n\r \t")
	if idx := strings.Index(s, "\n\n"); idx >= 0 {
		return s[:idx]
	}
	return s
}
