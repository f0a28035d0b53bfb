package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/citation-mailer/internal/mail"
	"github.com/jonathan/citation-mailer/internal/observability"
	"github.com/jonathan/citation-mailer/internal/pipeline"
	"github.com/jonathan/citation-mailer/internal/rendering"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the e-mail for one ranked record",
	Long:  "Ranks the exports and prints the filled template for the record at --index (1-based) as plain text. No draft is created and nothing is sent.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPreview(cmd, &previewFlags)
	},
}

type previewOptions struct {
	configFlags

	index int
}

var previewFlags previewOptions

func init() {
	previewFlags.configFlags.register(previewCmd)
	previewCmd.Flags().IntVarP(&previewFlags.index, "index", "i", 1, "Rank of the record to preview (1-based)")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, opts *previewOptions) error {
	cfg, err := loadForRanking(cmd, &opts.configFlags, "From")
	if err != nil {
		return err
	}
	cfg.SaveIntermediateHTML = false

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
	if opts.index < 1 || opts.index > ranked.Table.Len() {
		return fmt.Errorf("--index %d is out of range: %d records ranked", opts.index, ranked.Table.Len())
	}

	body, err := orch.LoadTemplate()
	if err != nil {
		return err
	}
	composed, err := orch.Compose(ranked.Table, body, opts.index-1)
	if err != nil {
		return err
	}
	text, err := rendering.PlainText(composed.Message.HTMLBody)
	if err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintPreview(composed, text)
	return nil
}
