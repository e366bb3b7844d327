package parsing

import (
	"context"
	"log/slog"

	"github.com/jonathan/resume-aligner/internal/ingestion"
	"github.com/jonathan/resume-aligner/internal/types"
)

// JobSource is where a job description comes from. URL wins over a file
// on disk, then an uploaded file, then pasted text.
type JobSource struct {
	URL      string
	Path     string
	Filename string
	Content  []byte
	Text     string
}

// DefaultJobFilename names pasted or uploaded descriptions without a filename
const DefaultJobFilename = "jd.txt"

// JobParser turns a JobSource into a JobDescription
type JobParser struct {
	Extractor Extractor
	URL       *ingestion.URLOptions
	Logger    *slog.Logger
}

// ParseJobDescription parses src with extractor (the heuristic when nil)
func ParseJobDescription(ctx context.Context, src JobSource, extractor Extractor) (*types.JobDescription, error) {
	p := &JobParser{Extractor: extractor}
	return p.Parse(ctx, src)
}

// Parse resolves the source text and extracts its terms. A URL that cannot
// be fetched yields an empty description rather than an error; an upload
// that cannot be decoded is an error.
func (p *JobParser) Parse(ctx context.Context, src JobSource) (*types.JobDescription, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		raw  string
		meta *ingestion.Metadata
	)
	filename := src.Filename
	if filename == "" {
		filename = DefaultJobFilename
	}

	switch {
	case src.URL != "":
		text, m, err := ingestion.IngestFromURL(ctx, src.URL, p.URL)
		if err != nil {
			logger.Warn("job description fetch failed", "url", src.URL, "error", err)
			m = ingestion.NewMetadata("")
			m.URL = src.URL
		}
		raw, meta = text, m
	case src.Path != "":
		text, m, err := ingestion.IngestFromFile(src.Path)
		if err != nil {
			return nil, err
		}
		raw, meta = text, m
	case len(src.Content) > 0:
		text, err := ingestion.ParseDocument(filename, src.Content)
		if err != nil {
			return nil, err
		}
		raw = text
		meta = ingestion.NewMetadata(text)
		meta.Filename = filename
		meta.Format = string(ingestion.DetectFormat(filename))
	default:
		raw = ingestion.NormalizeText(src.Text)
		meta = ingestion.NewMetadata(raw)
		meta.Filename = filename
	}

	extractor := p.Extractor
	if extractor == nil {
		extractor = HeuristicExtractor{}
	}
	extraction, err := extractor.Extract(ctx, raw)
	if err != nil {
		return nil, err
	}

	jd := types.NewJobDescription()
	jd.Title = extraction.Title
	jd.Company = extraction.Company
	jd.Entities = extraction.Entities.WithEmptyLists()
	jd.RawText = raw
	jd.SourceMeta = meta.SourceMeta()
	return jd, nil
}
