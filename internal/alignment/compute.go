package alignment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-aligner/internal/types"
)

// DefaultResponsibilityCap is how many responsibilities are scored by default
const DefaultResponsibilityCap = 10

// Gap fields emitted for every skill that scores below the weak threshold
const (
	GapReasonNotFound             = "not found"
	GapSuggestionApprovalRequired = "ApprovalRequired"
)

// Config holds the scoring policy. The zero value is not usable; start from DefaultConfig.
type Config struct {
	Thresholds        Thresholds
	ResponsibilityCap int
	Strategy          MatchStrategy
	// Workers > 1 scores terms concurrently. Output order never depends on it.
	Workers int
}

// DefaultConfig returns the fixed ladder, a cap of 10, substring matching and sequential scoring.
func DefaultConfig() Config {
	return Config{
		Thresholds:        DefaultThresholds(),
		ResponsibilityCap: DefaultResponsibilityCap,
		Strategy:          SubstringMatch,
		Workers:           1,
	}
}

// Engine computes alignments under a fixed Config. It is safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine validates cfg and fills zero-valued fields with defaults.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Thresholds.Validate(); err != nil {
		return nil, err
	}
	if cfg.ResponsibilityCap < 0 {
		return nil, fmt.Errorf("responsibility cap must not be negative, got %d", cfg.ResponsibilityCap)
	}
	if cfg.ResponsibilityCap == 0 {
		cfg.ResponsibilityCap = DefaultResponsibilityCap
	}
	if cfg.Strategy == nil {
		cfg.Strategy = SubstringMatch
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Engine{cfg: cfg}, nil
}

// Default returns an engine built from DefaultConfig
func Default() *Engine {
	return &Engine{cfg: DefaultConfig()}
}

// Config returns the engine's effective configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// Score scores a term against text with the engine's match strategy
func (e *Engine) Score(term, text string) float64 {
	return ScoreWith(e.cfg.Strategy, term, text)
}

// Classify bands a score with the engine's thresholds
func (e *Engine) Classify(score float64) types.Band {
	return e.cfg.Thresholds.Classify(score)
}

// IsGap reports whether a skill score is low enough to be listed as a gap
func (e *Engine) IsGap(score float64) bool {
	return score < e.cfg.Thresholds.Weak
}

// ComputeAlignment scores terms against resumeText with the default configuration.
func ComputeAlignment(resumeText string, terms types.TermSets) *types.Alignment {
	// Default engine is sequential and ctx is never cancelled, so there is no error path.
	a, _ := Default().Compute(context.Background(), resumeText, terms)
	return a
}

// Compute builds the full alignment for one resume and one set of job terms.
//
// Skills are the deduplicated concatenation of required and preferred terms,
// tools are deduplicated on their own, and only the first ResponsibilityCap
// responsibilities are scored. Every list keeps input order. The only error
// is ctx cancellation while scoring concurrently.
func (e *Engine) Compute(ctx context.Context, resumeText string, terms types.TermSets) (*types.Alignment, error) {
	tokens := Tokenize(resumeText)

	skills := Dedupe(terms.Required, terms.Preferred)
	tools := Dedupe(terms.Tools)
	responsibilities := capTerms(terms.Responsibilities, e.cfg.ResponsibilityCap)

	skillScores, err := e.scoreAll(ctx, skills, tokens)
	if err != nil {
		return nil, err
	}
	toolScores, err := e.scoreAll(ctx, tools, tokens)
	if err != nil {
		return nil, err
	}
	respScores, err := e.scoreAll(ctx, responsibilities, tokens)
	if err != nil {
		return nil, err
	}

	result := &types.Alignment{
		Skills:           make([]types.AlignmentItem, 0, len(skills)),
		Tools:            make([]types.AlignmentItem, 0, len(tools)),
		Responsibilities: make([]types.ResponsibilityCoverage, 0, len(responsibilities)),
		Gaps:             []types.Gap{},
	}

	for i, term := range skills {
		result.Skills = append(result.Skills, e.item(term, skillScores[i]))
	}
	for i, term := range tools {
		result.Tools = append(result.Tools, e.item(term, toolScores[i]))
	}
	for i, item := range responsibilities {
		result.Responsibilities = append(result.Responsibilities, types.ResponsibilityCoverage{
			JDItem:      item,
			EvidenceIDs: []string{},
			Coverage:    round2(respScores[i]),
		})
	}
	for i, term := range skills {
		if e.IsGap(skillScores[i]) {
			result.Gaps = append(result.Gaps, types.Gap{
				Term:       term,
				Reason:     GapReasonNotFound,
				Suggestion: GapSuggestionApprovalRequired,
			})
		}
	}

	return result, nil
}

func (e *Engine) item(term string, score float64) types.AlignmentItem {
	return types.AlignmentItem{
		Term:       term,
		Evidence:   []string{},
		Strength:   e.Classify(score),
		Confidence: round2(score),
	}
}

// scoreAll scores every term against the shared token slice. Results are
// written by index so concurrent scoring cannot reorder them.
func (e *Engine) scoreAll(ctx context.Context, terms []string, tokens []string) ([]float64, error) {
	scores := make([]float64, len(terms))
	if e.cfg.Workers <= 1 || len(terms) < 2 {
		for i, term := range terms {
			scores[i] = scoreTokens(e.cfg.Strategy, strings.ToLower(term), tokens)
		}
		return scores, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i, term := range terms {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scores[i] = scoreTokens(e.cfg.Strategy, strings.ToLower(term), tokens)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scoring terms: %w", err)
	}
	return scores, nil
}

// Dedupe concatenates the lists and drops exact-duplicate strings, keeping
// the first occurrence. Comparison is case-sensitive.
func Dedupe(lists ...[]string) []string {
	total := 0
	for _, l := range lists {
		total += len(l)
	}
	seen := make(map[string]struct{}, total)
	out := make([]string, 0, total)
	for _, l := range lists {
		for _, term := range l {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			out = append(out, term)
		}
	}
	return out
}

func capTerms(terms []string, limit int) []string {
	if len(terms) <= limit {
		return terms
	}
	return terms[:limit]
}

// round2 rounds to two decimals with round-half-even on the exact binary
// value, the same result "%.2f" formatting gives.
func round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}
