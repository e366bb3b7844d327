package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-aligner/internal/alignment"
	"github.com/jonathan/resume-aligner/internal/ats"
	"github.com/jonathan/resume-aligner/internal/config"
	"github.com/jonathan/resume-aligner/internal/optimizer"
	"github.com/jonathan/resume-aligner/internal/types"
)

// pairInput holds the --resume and --jd flags of commands that score a pair
type pairInput struct {
	resumePath string
	jdPath     string
	out        string
}

func (p *pairInput) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&p.resumePath, "resume", "r", "", "Path to resume JSON or document (required)")
	cmd.Flags().StringVarP(&p.jdPath, "jd", "j", "", "Path to job description JSON or document (required)")
	cmd.Flags().StringVarP(&p.out, "out", "o", "", "Path to output JSON file (default stdout)")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("jd")
}

// scoredPair is a loaded resume and job description with their alignment
type scoredPair struct {
	cfg       *config.Config
	resume    *types.Resume
	jd        *types.JobDescription
	alignment *types.Alignment
	coverage  types.Coverage
}

// load reads both documents and scores them with the configured engine
func (p *pairInput) load(ctx context.Context, cmd *cobra.Command, root *rootOptions) (*scoredPair, error) {
	cfg, logger, err := root.load(cmd)
	if err != nil {
		return nil, err
	}
	engine, err := cfg.Engine()
	if err != nil {
		return nil, err
	}

	resume, err := readResume(p.resumePath)
	if err != nil {
		return nil, err
	}
	parser, closeParser, err := newJobParser(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	defer closeParser()
	jd, err := readJobDescription(ctx, p.jdPath, parser)
	if err != nil {
		return nil, err
	}

	a, err := engine.Compute(ctx, resume.RawText, jd.TermSets())
	if err != nil {
		return nil, err
	}
	logger.Debug("alignment computed", "skills", len(a.Skills), "gaps", len(a.Gaps))
	return &scoredPair{
		cfg:       cfg,
		resume:    resume,
		jd:        jd,
		alignment: a,
		coverage:  alignment.CoverageScores(a, jd.Entities.RequiredSkills, jd.Entities.PreferredSkills),
	}, nil
}

func newAlignCmd(root *rootOptions) *cobra.Command {
	in := &pairInput{}
	cmd := &cobra.Command{
		Use:   "align",
		Short: "Score a resume against a job description",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pair, err := in.load(cmd.Context(), cmd, root)
			if err != nil {
				return err
			}
			if p := root.printer(cmd); p != nil {
				p.PrintAlignment(pair.alignment, pair.coverage)
			}
			return writeJSON(cmd.OutOrStdout(), in.out, map[string]any{
				"alignment": pair.alignment,
				"coverage":  pair.coverage,
			})
		},
	}
	in.register(cmd)
	return cmd
}

func newATSCheckCmd(root *rootOptions) *cobra.Command {
	var resumePath, out string
	cmd := &cobra.Command{
		Use:   "ats-check",
		Short: "Run the ATS readiness checklist over a resume",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, _, err := root.load(cmd); err != nil {
				return err
			}
			resume, err := readResume(resumePath)
			if err != nil {
				return err
			}
			checks := ats.Check(resume)
			if p := root.printer(cmd); p != nil {
				p.PrintATSChecklist(checks)
			}
			return writeJSON(cmd.OutOrStdout(), out, map[string]any{"ats_checklist": checks})
		},
	}
	cmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Path to resume JSON or document (required)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Path to output JSON file (default stdout)")
	_ = cmd.MarkFlagRequired("resume")
	return cmd
}

func newOptimizeCmd(root *rootOptions) *cobra.Command {
	in := &pairInput{}
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Propose bullet rewrites and a tailored resume",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pair, err := in.load(cmd.Context(), cmd, root)
			if err != nil {
				return err
			}
			edits := optimizer.RewriteBullets(pair.resume)
			if p := root.printer(cmd); p != nil {
				p.PrintEdits(edits)
			}
			return writeJSON(cmd.OutOrStdout(), in.out, map[string]any{
				"edits":           edits,
				"tailored_resume": optimizer.BuildTailoredResume(pair.resume, pair.jd),
				"alignment":       pair.alignment,
				"coverage":        pair.coverage,
			})
		},
	}
	in.register(cmd)
	return cmd
}
