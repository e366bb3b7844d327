// Package rendering exports resumes as LaTeX, DOCX, plain text and,
// when pdflatex is installed, PDF.
package rendering

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTemplateNotFound is wrapped when a LaTeX template file does not exist
var ErrTemplateNotFound = errors.New("template file not found")

// FormatError reports a failure producing one export format. Op names the
// step, such as "parse template" or "write document".
type FormatError struct {
	Format string
	Op     string
	Cause  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s export: %s: %v", e.Format, e.Op, e.Cause)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}

// CompilationError reports a pdflatex failure. LogOutput holds the
// combined compiler output when the compiler ran.
type CompilationError struct {
	Message   string
	LogOutput string
	Cause     error
}

func (e *CompilationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("LaTeX compilation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("LaTeX compilation error: %s", e.Message)
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}

// LogTail returns the last n lines of the compiler output
func (e *CompilationError) LogTail(n int) string {
	lines := strings.Split(strings.TrimRight(e.LogOutput, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
