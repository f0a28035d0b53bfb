package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/citation-mailer/internal/config"
	"github.com/jonathan/citation-mailer/internal/mail"
	"github.com/jonathan/citation-mailer/internal/observability"
	"github.com/jonathan/citation-mailer/internal/pipeline"
	"github.com/jonathan/citation-mailer/internal/schemas"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Merge and rank the exports without writing any e-mail",
	Long:  "Loads the publication and Citation Report exports, joins them and writes the ranked records, with per-year citation totals, as a RankedPublications JSON file.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRank(cmd, &rankFlags)
	},
}

type rankOptions struct {
	configFlags

	output string
	top    int
}

var rankFlags rankOptions

func init() {
	rankFlags.configFlags.register(rankCmd)
	rankCmd.Flags().StringVarP(&rankFlags.output, "out", "o", "", "Path to output RankedPublications JSON file (required)")
	rankCmd.Flags().IntVar(&rankFlags.top, "top", 0, "Only write the first N records (default: all)")

	if err := rankCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

// loadForRanking resolves a config for commands that never send mail.
// Fields named in except are not required.
func loadForRanking(cmd *cobra.Command, flags *configFlags, except ...string) (config.Config, error) {
	cfg, err := flags.load(cmd)
	if err != nil {
		return cfg, err
	}
	cfg.AutoSend = false
	return finish(cfg, except...)
}

func runRank(cmd *cobra.Command, opts *rankOptions) error {
	cfg, err := loadForRanking(cmd, &opts.configFlags, "From", "Template")
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	orch := pipeline.New(cfg, mail.NewMemorySender(), logger)
	ranked, err := orch.Prepare(commandContext(cmd))
	if err != nil {
		return err
	}
	artifact, err := orch.BuildArtifact(ranked, opts.top)
	if err != nil {
		return fmt.Errorf("failed to build ranked publications: %w", err)
	}

	jsonOutput, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ranked publications to JSON: %w", err)
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(opts.output)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}
	if err := os.WriteFile(opts.output, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write ranked publications to %s: %w", opts.output, err)
	}

	// Output validation is a safety check, not a requirement
	if schemaPath := schemas.ResolveSchemaPath(schemas.RankedPublicationsSchema); schemaPath != "" {
		if err := schemas.ValidateJSON(schemaPath, opts.output); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Output validation failed: %v\n", err)
		}
	}

	out := cmd.OutOrStdout()
	if cfg.Verbose {
		p := observability.NewPrinter(out)
		p.PrintRankedPublications(artifact)
		p.PrintCitationsByYear(artifact.CitationsByYear)
	}
	_, _ = fmt.Fprintf(out, "Successfully ranked %d records to %s\n", artifact.TotalRecords, opts.output)
	return nil
}
