package rendering

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// CompilationTimeout is the maximum time to wait for pdflatex
const CompilationTimeout = 30 * time.Second

// PDFLaTeXAvailable reports whether pdflatex is on PATH
func PDFLaTeXAvailable() bool {
	_, err := exec.LookPath("pdflatex")
	return err == nil
}

// CompileLaTeX runs pdflatex over source in a temporary directory and
// returns the resulting PDF.
func CompileLaTeX(ctx context.Context, source string) ([]byte, error) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		return nil, &CompilationError{Message: "pdflatex not found in PATH", Cause: err}
	}

	workDir, err := os.MkdirTemp("", "latex-compile-*")
	if err != nil {
		return nil, &CompilationError{Message: "failed to create working directory", Cause: err}
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	texPath := filepath.Join(workDir, "resume.tex")
	if err := os.WriteFile(texPath, []byte(source), 0644); err != nil {
		return nil, &CompilationError{Message: "failed to write LaTeX source", Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, CompilationTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "pdflatex", "-interaction=nonstopmode", "-halt-on-error", "-output-directory", workDir, texPath)
	var output strings.Builder
	cmd.Stdout = &output
	cmd.Stderr = &output
	runErr := cmd.Run()

	pdf, err := os.ReadFile(filepath.Join(workDir, "resume.pdf"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, &CompilationError{Message: "PDF was not generated", LogOutput: output.String(), Cause: runErr}
	}
	if err != nil {
		return nil, &CompilationError{Message: "failed to read PDF", LogOutput: output.String(), Cause: err}
	}
	if runErr != nil {
		return nil, &CompilationError{Message: "compilation completed with errors", LogOutput: output.String(), Cause: runErr}
	}
	return pdf, nil
}
