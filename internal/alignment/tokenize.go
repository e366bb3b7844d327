// Package alignment scores resume text against job description terms and
// aggregates the per-term results into coverage ratios.
//
// Everything in this package is a pure function of its inputs: no I/O, no
// shared mutable state, and no error paths. Malformed input degrades to zero
// scores.
package alignment

import (
	"regexp"
	"strings"
)

// tokenPattern keeps '+', '.', '#' and '-' so terms like "c++", "node.js"
// and "c#" survive tokenization.
var tokenPattern = regexp.MustCompile(`[a-z0-9+.#-]+`)

// Tokenize lower-cases text and returns its maximal runs of [a-z0-9+.#-].
// Tokens are not deduplicated, stemmed or filtered.
func Tokenize(text string) []string {
	if text == "" {
		return []string{}
	}
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if tokens == nil {
		return []string{}
	}
	return tokens
}
