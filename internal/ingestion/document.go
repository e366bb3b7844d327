package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format is a supported upload format
type Format string

// Supported formats; anything unrecognised is read as text
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "txt"
)

// ErrEmptyDocument is returned for a zero-length upload
var ErrEmptyDocument = errors.New("empty document")

// ParseError reports a document that could not be decoded
type ParseError struct {
	Filename string
	Format   Format
	Cause    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s document %q: %v", e.Format, e.Filename, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// DetectFormat picks a format from the filename extension, case-insensitively
func DetectFormat(filename string) Format {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".pdf"):
		return FormatPDF
	case strings.HasSuffix(name, ".docx"):
		return FormatDOCX
	default:
		return FormatText
	}
}

// ParseDocument extracts the text of an uploaded document and normalizes it.
// Text uploads never fail: invalid UTF-8 bytes are dropped.
func ParseDocument(filename string, content []byte) (string, error) {
	format := DetectFormat(filename)

	var (
		raw string
		err error
	)
	switch format {
	case FormatPDF:
		raw, err = extractPDFText(content)
	case FormatDOCX:
		raw, err = extractDOCXText(content)
	default:
		raw = strings.ToValidUTF8(string(content), "")
	}
	if err != nil {
		return "", &ParseError{Filename: filename, Format: format, Cause: err}
	}
	return NormalizeText(raw), nil
}

func extractPDFText(content []byte) (string, error) {
	if len(content) == 0 {
		return "", ErrEmptyDocument
	}
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br/>|<w:tab/>`)
	xmlTag           = regexp.MustCompile(`<[^>]*>`)
)

// extractDOCXText returns the visible text of word/document.xml, one line per paragraph
func extractDOCXText(content []byte) (string, error) {
	if len(content) == 0 {
		return "", ErrEmptyDocument
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	xml := doc.Editable().GetContent()
	xml = docxParagraphEnd.ReplaceAllString(xml, "\n")
	return html.UnescapeString(xmlTag.ReplaceAllString(xml, "")), nil
}
