// Package retrieval selects the most relevant risk entries for a free-text
// query or a fixed cycle-phase selector. Scoring is plain lexical overlap:
// query terms against entry text, weighted by which field they hit.
package retrieval

import "strings"

// commonWords are query terms too generic to discriminate between entries.
// Deliberately smaller than a full stopword list: short domain terms like
// "ai" and "ux" must survive extraction.
var commonWords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "do": true, "does": true,
	"did": true, "will": true, "would": true, "could": true, "should": true,
	"may": true, "might": true, "must": true, "shall": true,
	"to": true, "of": true, "in": true, "for": true, "on": true,
	"with": true, "at": true, "by": true, "from": true, "as": true,
	"into": true, "through": true, "during": true, "before": true, "after": true,
	"and": true, "but": true, "or": true, "nor": true, "so": true, "yet": true,
	"if": true, "then": true, "else": true, "when": true, "where": true,
	"why": true, "how": true, "what": true, "which": true, "who": true,
	"this": true, "that": true, "these": true, "those": true,
	"it": true, "its": true, "i": true, "you": true, "we": true, "they": true,
	"my": true, "your": true, "our": true, "their": true,
	"can": true, "just": true, "not": true, "no": true, "any": true,
	"all": true, "some": true, "such": true, "about": true,
	"want": true, "need": true, "using": true, "use": true, "used": true,
	"doing": true, "make": true, "making": true, "help": true,
}

// ExtractTerms turns a raw query into the list of terms worth matching:
// lowercased, hyphens split, punctuation dropped, common words removed,
// duplicates removed with first occurrence winning.
func ExtractTerms(query string) []string {
	query = strings.ToLower(query)

	var b strings.Builder
	b.Grow(len(query))
	for _, r := range query {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	var terms []string
	for _, t := range strings.Fields(b.String()) {
		if isCommonWord(t) {
			continue
		}
		terms = append(terms, t)
	}
	if len(terms) == 0 {
		return nil
	}
	return uniqueStrings(terms)
}

// isCommonWord reports whether the term is too common to be useful.
func isCommonWord(word string) bool {
	if len(word) <= 1 {
		return true
	}
	return commonWords[word]
}

// uniqueStrings removes duplicates from a string slice.
func uniqueStrings(ss []string) []string {
	seen := make(map[string]bool, len(ss))
	result := make([]string, 0, len(ss))
	for _, s := range ss {
		if !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	return result
}
