// Package main implements the resume_aligner CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// newRootCmd assembles the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "resume_aligner",
		Short: "Resume alignment and coverage scoring",
		Long: "resume_aligner scores how well a resume covers the skills, tools and responsibilities " +
			"of a job description, and produces ATS checks, tailored rewrites, reports and exports.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a JSON or YAML config file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print human-readable summaries to stderr")

	cmd.AddCommand(
		newServeCmd(opts),
		newWorkerCmd(opts),
		newParseResumeCmd(opts),
		newParseJDCmd(opts),
		newAlignCmd(opts),
		newATSCheckCmd(opts),
		newOptimizeCmd(opts),
		newReportCmd(opts),
		newExportCmd(opts),
		newIssueTokenCmd(opts),
		newHashSecretCmd(opts),
	)
	return cmd
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
