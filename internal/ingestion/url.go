package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonathan/resume-aligner/internal/fetch"
)

var (
	// ErrHTTPRequestFailed wraps fetch failures
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed wraps HTML parsing failures
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// URLOptions configures IngestFromURL
type URLOptions struct {
	// Cache, when set, serves repeated fetches of the same posting.
	Cache *fetch.Cache
	// Fetch is used when Cache is nil.
	Fetch *fetch.Options
	// UseBrowser enables a headless Chrome pass for client-rendered pages.
	UseBrowser bool
	Logger     *slog.Logger
}

// IngestFromURL fetches a job posting, extracts its main text with
// platform-specific selectors and returns it normalized.
func IngestFromURL(ctx context.Context, urlStr string, opts *URLOptions) (string, *Metadata, error) {
	if opts == nil {
		opts = &URLOptions{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	platform := fetch.DetectPlatform(urlStr)
	logger.Debug("ingesting job posting", "url", urlStr, "platform", platform)

	var (
		result *fetch.Result
		err    error
	)
	if opts.Cache != nil {
		var hit bool
		result, hit, err = opts.Cache.Fetch(ctx, urlStr)
		logger.Debug("page cache", "url", urlStr, "hit", hit)
	} else {
		result, err = fetch.URL(ctx, urlStr, opts.Fetch)
	}
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	contentSelectors := fetch.ContentSelectors(platform)
	noiseSelectors := fetch.NoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		logger.Info("content too short, rendering with browser", "url", urlStr, "chars", len(text))
		rendered, berr := fetch.RenderWithBrowser(ctx, urlStr, fetch.DefaultBrowserTimeout, logger)
		if berr != nil {
			logger.Warn("browser rendering failed, keeping HTTP content", "url", urlStr, "error", berr)
		} else if btext, xerr := fetch.ExtractMainText(rendered, contentSelectors, noiseSelectors...); xerr == nil {
			text = btext
		}
	}

	normalized := NormalizeText(text)
	meta := NewMetadata(normalized)
	meta.URL = urlStr
	meta.Platform = string(platform)
	meta.Format = "html"
	return normalized, meta, nil
}
