package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-aligner/internal/parsing"
)

func newParseResumeCmd(root *rootOptions) *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "parse-resume",
		Short: "Parse a PDF, DOCX or text resume into resume JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, _, err := root.load(cmd); err != nil {
				return err
			}
			resume, err := parsing.ParseResumeFile(in)
			if err != nil {
				return err
			}
			if p := root.printer(cmd); p != nil {
				p.PrintResume(resume)
			}
			return writeJSON(cmd.OutOrStdout(), out, resume)
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "Path to the resume file (required)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Path to output JSON file (default stdout)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newParseJDCmd(root *rootOptions) *cobra.Command {
	var in, text, url, out string
	cmd := &cobra.Command{
		Use:   "parse-jd",
		Short: "Parse a job description from a file, pasted text or a posting URL",
		Long: "Parse a job description into job description JSON. The source is --url, then --in, then --text. " +
			"A URL that cannot be fetched yields an empty description.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in == "" && text == "" && url == "" {
				return fmt.Errorf("one of --in, --text or --url is required")
			}
			cfg, logger, err := root.load(cmd)
			if err != nil {
				return err
			}
			parser, closeParser, err := newJobParser(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeParser()

			jd, err := parser.Parse(cmd.Context(), parsing.JobSource{URL: url, Path: in, Text: text})
			if err != nil {
				return err
			}
			if p := root.printer(cmd); p != nil {
				p.PrintJobDescription(jd)
			}
			return writeJSON(cmd.OutOrStdout(), out, jd)
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "Path to a job description file")
	cmd.Flags().StringVar(&text, "text", "", "Job description text")
	cmd.Flags().StringVar(&url, "url", "", "Job posting URL")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Path to output JSON file (default stdout)")
	return cmd
}
