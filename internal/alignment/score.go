package alignment

import (
	"fmt"
	"math"
	"strings"
)

const (
	// minDenominator keeps a single hit in a short resume from maxing out the score.
	minDenominator = 3.0
	// tokensPerUnit scales the denominator with document length.
	tokensPerUnit = 50.0
)

// MatchStrategy decides whether a single token counts as a hit for a term.
// The term is passed already lower-cased.
type MatchStrategy interface {
	Match(term, token string) bool
}

// MatchFunc adapts a plain function to MatchStrategy
type MatchFunc func(term, token string) bool

// Match calls f(term, token)
func (f MatchFunc) Match(term, token string) bool {
	return f(term, token)
}

// Built-in strategies
var (
	// SubstringMatch counts a token when it contains the term ("python" hits "python3").
	SubstringMatch MatchStrategy = MatchFunc(func(term, token string) bool {
		return strings.Contains(token, term)
	})
	// ExactMatch counts a token only when it equals the term.
	ExactMatch MatchStrategy = MatchFunc(func(term, token string) bool {
		return token == term
	})
	// PrefixMatch counts a token when it starts with the term ("java" hits "javascript").
	PrefixMatch MatchStrategy = MatchFunc(func(term, token string) bool {
		return strings.HasPrefix(token, term)
	})
)

// Strategy names accepted by StrategyByName
const (
	StrategySubstring = "substring"
	StrategyExact     = "exact"
	StrategyPrefix    = "prefix"
)

// StrategyByName resolves a configured strategy name. An empty name selects substring matching.
func StrategyByName(name string) (MatchStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategySubstring:
		return SubstringMatch, nil
	case StrategyExact:
		return ExactMatch, nil
	case StrategyPrefix:
		return PrefixMatch, nil
	default:
		return nil, fmt.Errorf("unknown match strategy %q (want %s, %s or %s)",
			name, StrategySubstring, StrategyExact, StrategyPrefix)
	}
}

// Score returns the lexical relevance of term in text using substring matching.
// The result is always in [0, 1]; it is 0 for an empty term or for text with no tokens.
func Score(term, text string) float64 {
	return ScoreWith(SubstringMatch, term, text)
}

// ScoreWith is Score with an explicit match strategy. A nil strategy means substring matching.
func ScoreWith(strategy MatchStrategy, term, text string) float64 {
	if term == "" {
		return 0.0
	}
	return scoreTokens(strategy, strings.ToLower(term), Tokenize(text))
}

// scoreTokens counts hits of an already lower-cased term and normalizes them by
// max(3, len(tokens)/50), clamped to 1.
func scoreTokens(strategy MatchStrategy, term string, tokens []string) float64 {
	if term == "" || len(tokens) == 0 {
		return 0.0
	}
	if strategy == nil {
		strategy = SubstringMatch
	}

	hits := 0
	for _, token := range tokens {
		if strategy.Match(term, token) {
			hits++
		}
	}

	denominator := math.Max(minDenominator, float64(len(tokens))/tokensPerUnit)
	return math.Min(1.0, float64(hits)/denominator)
}
