package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-aligner/internal/ats"
	"github.com/jonathan/resume-aligner/internal/optimizer"
	"github.com/jonathan/resume-aligner/internal/rendering"
	"github.com/jonathan/resume-aligner/internal/report"
	"github.com/jonathan/resume-aligner/internal/server"
	"github.com/jonathan/resume-aligner/internal/storage"
)

func newReportCmd(root *rootOptions) *cobra.Command {
	in := &pairInput{}
	var htmlPath, markdownPath string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build an alignment report with ATS checks and proposed edits",
		Long:  "Build the report JSON, and optionally render it as HTML (--html) or Markdown (--markdown).",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pair, err := in.load(cmd.Context(), cmd, root)
			if err != nil {
				return err
			}
			rep := report.Build(report.Input{
				Resume:    pair.resume,
				Alignment: pair.alignment,
				Coverage:  pair.coverage,
				ATS:       ats.Check(pair.resume),
				Edits:     optimizer.RewriteBullets(pair.resume),
			})
			doc := report.Document{Report: rep, Alignment: pair.alignment, GeneratedAt: time.Now().UTC()}

			if htmlPath != "" {
				html, err := report.RenderHTML(doc)
				if err != nil {
					return err
				}
				if err := os.WriteFile(htmlPath, []byte(html), 0644); err != nil {
					return fmt.Errorf("failed to write HTML report: %w", err)
				}
			}
			if markdownPath != "" {
				if err := os.WriteFile(markdownPath, []byte(report.RenderMarkdown(doc)), 0644); err != nil {
					return fmt.Errorf("failed to write Markdown report: %w", err)
				}
			}
			if p := root.printer(cmd); p != nil {
				p.PrintAlignment(pair.alignment, pair.coverage)
				p.PrintATSChecklist(rep.ATSChecklist)
			}
			return writeJSON(cmd.OutOrStdout(), in.out, rep)
		},
	}
	in.register(cmd)
	cmd.Flags().StringVar(&htmlPath, "html", "", "Path to write the HTML report")
	cmd.Flags().StringVar(&markdownPath, "markdown", "", "Path to write the Markdown report")
	return cmd
}

func newExportCmd(root *rootOptions) *cobra.Command {
	var resumePath, outDir, jdPath, templatePath string
	var pdf bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a resume as DOCX, LaTeX and plain text",
		Long: "Export a resume into --out-dir as resume_<id>.docx, .tex and .txt, plus .pdf with --pdf " +
			"when pdflatex is installed. With --cover-letter-jd a cover letter is written alongside.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := root.load(cmd)
			if err != nil {
				return err
			}
			resume, err := readResume(resumePath)
			if err != nil {
				return err
			}
			store, err := storage.NewLocalStore(outDir)
			if err != nil {
				return err
			}

			exporter := rendering.NewExporter(store, pdf || cfg.Server.ExportPDF, logger)
			exporter.Template = templatePath
			result, err := exporter.Export(cmd.Context(), resume)
			if err != nil {
				return err
			}
			out := map[string]any{"export": result}

			if jdPath != "" {
				parser, closeParser, err := newJobParser(cmd.Context(), cfg, logger)
				if err != nil {
					return err
				}
				defer closeParser()
				jd, err := readJobDescription(cmd.Context(), jdPath, parser)
				if err != nil {
					return err
				}
				letter, err := optimizer.CoverLetter(resume, jd)
				if err != nil {
					return err
				}
				url, err := store.Put(cmd.Context(), server.CoverLetterFile, storage.ContentType(server.CoverLetterFile), []byte(letter))
				if err != nil {
					return err
				}
				out["cover_letter_url"] = url
			}
			logger.Info("resume exported", "dir", store.Dir())
			return writeJSON(cmd.OutOrStdout(), "", out)
		},
	}
	cmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Path to resume JSON or document (required)")
	cmd.Flags().StringVarP(&outDir, "out-dir", "d", storage.DefaultDir, "Directory to write artifacts to")
	cmd.Flags().BoolVar(&pdf, "pdf", false, "Also compile a PDF with pdflatex")
	cmd.Flags().StringVar(&templatePath, "template", "", "LaTeX template file to use instead of the built-in one")
	cmd.Flags().StringVar(&jdPath, "cover-letter-jd", "", "Job description to draft a cover letter for")
	_ = cmd.MarkFlagRequired("resume")
	return cmd
}
