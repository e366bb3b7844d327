package rendering

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jonathan/resume-aligner/internal/storage"
	"github.com/jonathan/resume-aligner/internal/types"
)

// compileLogTailLines is how much pdflatex output a failed export logs
const compileLogTailLines = 20

// ExportResult holds the URLs of the stored export artifacts
type ExportResult struct {
	DocxURL string `json:"docx_url"`
	PDFURL  string `json:"pdf_url,omitempty"`
	TexURL  string `json:"tex_url"`
	TextURL string `json:"txt_url"`
}

// Exporter renders a resume in every format and stores the results
type Exporter struct {
	Store  storage.Store
	PDF    bool // compile a PDF when pdflatex is installed
	Logger *slog.Logger
	// Template is a LaTeX template file used instead of the embedded one
	Template string

	newID func() string
}

// NewExporter returns an exporter writing to store
func NewExporter(store storage.Store, pdf bool, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{Store: store, PDF: pdf, Logger: logger, newID: uuid.NewString}
}

// Export stores resume_<id>.{docx,tex,txt} and, when enabled and possible,
// resume_<id>.pdf. A PDF compilation failure is logged and leaves PDFURL empty.
func (e *Exporter) Export(ctx context.Context, resume *types.Resume) (*ExportResult, error) {
	newID := e.newID
	if newID == nil {
		newID = uuid.NewString
	}
	base := "resume_" + newID()

	tex, err := e.renderLaTeX(resume)
	if err != nil {
		return nil, err
	}
	docxData, err := RenderDOCX(resume)
	if err != nil {
		return nil, err
	}

	result := &ExportResult{}
	artifacts := []struct {
		name string
		data []byte
		url  *string
	}{
		{base + ".docx", docxData, &result.DocxURL},
		{base + ".tex", []byte(tex), &result.TexURL},
		{base + ".txt", []byte(RenderText(resume)), &result.TextURL},
	}
	for _, a := range artifacts {
		url, err := e.Store.Put(ctx, a.name, storage.ContentType(a.name), a.data)
		if err != nil {
			return nil, fmt.Errorf("failed to store %s: %w", a.name, err)
		}
		*a.url = url
	}

	if e.PDF && PDFLaTeXAvailable() {
		pdf, err := CompileLaTeX(ctx, tex)
		if err != nil {
			attrs := []any{"error", err}
			var compErr *CompilationError
			if errors.As(err, &compErr) && compErr.LogOutput != "" {
				attrs = append(attrs, "log_tail", compErr.LogTail(compileLogTailLines))
			}
			e.logger().Warn("pdf export skipped", attrs...)
			return result, nil
		}
		url, err := e.Store.Put(ctx, base+".pdf", storage.ContentType(".pdf"), pdf)
		if err != nil {
			return nil, fmt.Errorf("failed to store %s.pdf: %w", base, err)
		}
		result.PDFURL = url
	}
	return result, nil
}

func (e *Exporter) renderLaTeX(resume *types.Resume) (string, error) {
	if e.Template != "" {
		return RenderLaTeXWithTemplate(resume, e.Template)
	}
	return RenderLaTeX(resume)
}

func (e *Exporter) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}
