package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	innerSpaceRe  = regexp.MustCompile(`[ \t]+`)
	blankLinesRe  = regexp.MustCompile(`\n{3,}`)
	bulletPrefixs = []string{"- ", "* ", "• ", "· "}
)

// CleanText tidies text while keeping its line structure: line endings
// become LF, markdown headings and bullets keep their markers, runs of
// spaces inside a line collapse, and at most one blank line separates
// paragraphs. Use it for display copies; scoring uses NormalizeText.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLinesRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}
	indent := ""
	if isBulletLine(trimmed) {
		indent = strings.Repeat(" ", len(line)-len(trimmed))
	}
	return indent + innerSpaceRe.ReplaceAllString(trimmed, " ")
}

func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	for _, p := range bulletPrefixs {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

// IngestFromFile reads a document from disk and returns its normalized text
// with metadata describing the source.
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	name := filepath.Base(path)
	text, err := ParseDocument(name, content)
	if err != nil {
		return "", nil, err
	}

	meta := NewMetadata(text)
	meta.Filename = name
	meta.Format = string(DetectFormat(name))
	return text, meta, nil
}
