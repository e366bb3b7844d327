package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-aligner/internal/config"
	"github.com/jonathan/resume-aligner/internal/fetch"
	"github.com/jonathan/resume-aligner/internal/ingestion"
	"github.com/jonathan/resume-aligner/internal/llm"
	"github.com/jonathan/resume-aligner/internal/observability"
	"github.com/jonathan/resume-aligner/internal/parsing"
	"github.com/jonathan/resume-aligner/internal/schemas"
	"github.com/jonathan/resume-aligner/internal/types"
	schemafiles "github.com/jonathan/resume-aligner/schemas"
)

// rootOptions carries the persistent flags shared by every subcommand
type rootOptions struct {
	configPath string
	verbose    bool
}

// load resolves configuration and builds a logger writing to stderr.
// Verbose mode lowers the level to debug.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	level := cfg.LogLevel
	if o.verbose {
		level = "debug"
	}
	return cfg, observability.NewLogger(cmd.ErrOrStderr(), level, cfg.LogFormat), nil
}

// printer returns the verbose summary printer, or nil when not verbose
func (o *rootOptions) printer(cmd *cobra.Command) *observability.Printer {
	if !o.verbose {
		return nil
	}
	return observability.NewPrinter(cmd.ErrOrStderr())
}

// readResume loads a resume. JSON files are validated against the resume
// schema; any other extension is parsed as a document.
func readResume(path string) (*types.Resume, error) {
	if !isJSON(path) {
		return parsing.ParseResumeFile(path)
	}
	if err := schemas.ValidateFile(schemafiles.Resume, path); err != nil {
		return nil, documentError("resume", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}
	resume := types.NewResume()
	if err := json.Unmarshal(data, resume); err != nil {
		return nil, fmt.Errorf("failed to decode resume: %w", err)
	}
	return resume, nil
}

// readJobDescription loads a job description. JSON files are validated
// against the job description schema; other files are parsed with parser.
func readJobDescription(ctx context.Context, path string, parser *parsing.JobParser) (*types.JobDescription, error) {
	if !isJSON(path) {
		return parser.Parse(ctx, parsing.JobSource{Path: path})
	}
	if err := schemas.ValidateFile(schemafiles.JobDescription, path); err != nil {
		return nil, documentError("job description", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job description: %w", err)
	}
	jd := types.NewJobDescription()
	if err := json.Unmarshal(data, jd); err != nil {
		return nil, fmt.Errorf("failed to decode job description: %w", err)
	}
	jd.Entities = jd.Entities.WithEmptyLists()
	return jd, nil
}

// documentError separates schema violations from read failures
func documentError(kind, path string, err error) error {
	var verr *schemas.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("invalid %s %s: %w", kind, path, err)
	}
	return fmt.Errorf("failed to read %s: %w", kind, err)
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// newJobParser wires the URL cache and, when an API key is configured, the
// Gemini extractor. The returned close func releases the model client.
func newJobParser(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*parsing.JobParser, func(), error) {
	ttl, err := cfg.Fetch.TTL()
	if err != nil {
		return nil, nil, err
	}
	urlOpts := &ingestion.URLOptions{UseBrowser: cfg.Fetch.UseBrowser, Logger: logger}
	if ttl > 0 {
		urlOpts.Cache = fetch.NewCache(ttl, fetch.DefaultOptions())
	} else {
		urlOpts.Fetch = fetch.DefaultOptions()
	}

	parser := &parsing.JobParser{URL: urlOpts, Logger: logger}
	if cfg.APIKey == "" {
		return parser, func() {}, nil
	}
	client, err := llm.NewGeminiClient(ctx, llmConfig(cfg), cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	parser.Extractor = parsing.NewLLMExtractor(client, logger)
	return parser, func() { _ = client.Close() }, nil
}

// llmConfig returns the Gemini model ladder with the configured model, if
// any, serving the extraction tier
func llmConfig(cfg *config.Config) *llm.Config {
	base := llm.DefaultConfig()
	if cfg.GeminiModel == "" {
		return base
	}
	return base.WithModel(llm.TierLite, cfg.GeminiModel)
}

// writeJSON writes v as indented JSON to out, or to w when out is empty
func writeJSON(w io.Writer, out string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')
	if out == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
