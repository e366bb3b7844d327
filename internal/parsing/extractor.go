package parsing

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"unicode"

	"github.com/jonathan/resume-aligner/internal/llm"
	"github.com/jonathan/resume-aligner/internal/types"
)

// Extraction is what an Extractor recovers from job description text
type Extraction struct {
	Title    string
	Company  string
	Entities types.JobEntities
}

// Extractor pulls scoring terms out of job description text
type Extractor interface {
	Extract(ctx context.Context, text string) (*Extraction, error)
}

const heuristicTokenLimit = 500

// knownSkills are promoted to required skills by the heuristic extractor
var knownSkills = map[string]bool{
	"python":     true,
	"sql":        true,
	"node.js":    true,
	"nodejs":     true,
	"aws":        true,
	"gcp":        true,
	"azure":      true,
	"docker":     true,
	"kubernetes": true,
	"snowflake":  true,
}

// HeuristicExtractor scans the first 500 whitespace-separated tokens.
// Tokens containing a digit become keywords (with ",.;:" trimmed) and
// tokens that are a known skill, compared case-insensitively, become
// required skills as written. Each distinct token is considered once, in
// first-seen order.
type HeuristicExtractor struct{}

// Extract never fails
func (HeuristicExtractor) Extract(_ context.Context, text string) (*Extraction, error) {
	entities := types.NewJobEntities()

	tokens := strings.Fields(text)
	if len(tokens) > heuristicTokenLimit {
		tokens = tokens[:heuristicTokenLimit]
	}

	seenToken := make(map[string]bool, len(tokens))
	seenKeyword := make(map[string]bool)
	for _, token := range tokens {
		if seenToken[token] {
			continue
		}
		seenToken[token] = true

		if strings.IndexFunc(token, unicode.IsDigit) >= 0 {
			kw := strings.Trim(token, ",.;:")
			if kw != "" && !seenKeyword[kw] {
				seenKeyword[kw] = true
				entities.Keywords = append(entities.Keywords, kw)
			}
		}
		if knownSkills[strings.ToLower(token)] {
			entities.RequiredSkills = append(entities.RequiredSkills, token)
		}
	}

	return &Extraction{Entities: entities}, nil
}

// llmEntities mirrors the JSON the model is asked to return
type llmEntities struct {
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	Responsibility  []string `json:"responsibilities"`
	Tools           []string `json:"tools"`
	Certifications  []string `json:"certifications"`
	Domains         []string `json:"domains"`
	Keywords        []string `json:"keywords"`
}

// LLMExtractor asks a model for JobEntities and falls back to Fallback
// (the heuristic by default) when the call or its output fails.
type LLMExtractor struct {
	Client   llm.Client
	Tier     llm.ModelTier
	Fallback Extractor
	Logger   *slog.Logger
}

// NewLLMExtractor wires client with the lite tier and heuristic fallback
func NewLLMExtractor(client llm.Client, logger *slog.Logger) *LLMExtractor {
	return &LLMExtractor{
		Client:   client,
		Tier:     llm.TierLite,
		Fallback: HeuristicExtractor{},
		Logger:   logger,
	}
}

// Extract calls the model; on any failure it logs and returns the fallback result
func (e *LLMExtractor) Extract(ctx context.Context, text string) (*Extraction, error) {
	out, err := e.extract(ctx, text)
	if err == nil {
		return out, nil
	}
	if e.Fallback == nil {
		return nil, err
	}
	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("LLM extraction failed, using fallback", "error", err)
	return e.Fallback.Extract(ctx, text)
}

func (e *LLMExtractor) extract(ctx context.Context, text string) (*Extraction, error) {
	if e.Client == nil {
		return nil, &ExtractionError{Stage: StageCall, Cause: errors.New("no LLM client configured")}
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	tier := e.Tier
	if tier == "" {
		tier = llm.TierLite
	}
	prompt := llm.BuildExtractionPrompt(llm.JobEntitiesSchema(), text)
	resp, err := e.Client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return nil, &ExtractionError{Stage: StageCall, Model: string(tier), Cause: err}
	}

	var raw llmEntities
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(resp)), &raw); err != nil {
		return nil, &ExtractionError{Stage: StageDecode, Model: string(tier), Cause: err}
	}

	entities := types.JobEntities{
		RequiredSkills:   NormalizeTerms(raw.RequiredSkills),
		PreferredSkills:  NormalizeTerms(raw.PreferredSkills),
		Responsibilities: NormalizeTerms(raw.Responsibility),
		Tools:            NormalizeTerms(raw.Tools),
		Certifications:   NormalizeTerms(raw.Certifications),
		Domains:          NormalizeTerms(raw.Domains),
		Keywords:         NormalizeTerms(raw.Keywords),
	}
	return &Extraction{
		Title:    strings.TrimSpace(raw.Title),
		Company:  strings.TrimSpace(raw.Company),
		Entities: entities,
	}, nil
}
