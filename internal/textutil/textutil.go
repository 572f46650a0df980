package textutil

import (
	"regexp"
	"sort"
	"strings"
)

// listSeparatorRegex splits free-text attribute lists on comma or semicolon.
var listSeparatorRegex = regexp.MustCompile(`[,;]`)

// nonAlphanumericRegex matches sequences of non-alphanumeric characters.
var nonAlphanumericRegex = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Common English stop words, excluded from similarity corpus terms.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "he": true,
	"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
	"that": true, "the": true, "to": true, "was": true, "were": true, "will": true,
	"with": true, "this": true, "but": true, "they": true, "have": true,
	"had": true, "what": true, "when": true, "where": true, "who": true, "which": true,
	"why": true, "how": true, "all": true, "any": true, "both": true, "each": true,
	"few": true, "more": true, "most": true, "other": true, "some": true, "such": true,
	"no": true, "nor": true, "not": true, "only": true, "own": true, "same": true,
	"so": true, "than": true, "too": true, "very": true, "can": true, "did": true,
	"do": true, "does": true, "doing": true, "done": true, "down": true, "up": true,
}

// Normalize returns a lower-cased, trimmed copy of s for substring-style
// comparisons. Empty or absent input stays empty.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TokenSet splits a free-text list on commas and semicolons into a set of
// lower-cased, trimmed tokens. Empty items are discarded, so empty input
// yields an empty (never nil) set.
func TokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	if strings.TrimSpace(s) == "" {
		return set
	}
	for _, item := range listSeparatorRegex.Split(s, -1) {
		token := Normalize(item)
		if token != "" {
			set[token] = struct{}{}
		}
	}
	return set
}

// Intersect returns the tokens present in both sets, sorted ascending.
// The sorted order keeps matched-token lists deterministic.
func Intersect(a, b map[string]struct{}) []string {
	matched := make([]string, 0)
	for token := range a {
		if _, ok := b[token]; ok {
			matched = append(matched, token)
		}
	}
	sort.Strings(matched)
	return matched
}

// Union returns a new set containing the tokens of both sets.
func Union(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(a)+len(b))
	for token := range a {
		out[token] = struct{}{}
	}
	for token := range b {
		out[token] = struct{}{}
	}
	return out
}

// Words tokenizes text for the similarity model: lowercase, split on
// non-alphanumeric runs, then drop single-character tokens and stop words.
func Words(text string) []string {
	split := nonAlphanumericRegex.Split(strings.ToLower(text), -1)

	words := make([]string, 0, len(split))
	for _, w := range split {
		if len(w) < 2 || stopWords[w] {
			continue
		}
		words = append(words, w)
	}
	return words
}
