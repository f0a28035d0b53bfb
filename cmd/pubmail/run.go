package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/citation-mailer/internal/config"
	"github.com/jonathan/citation-mailer/internal/mail"
	"github.com/jonathan/citation-mailer/internal/observability"
	"github.com/jonathan/citation-mailer/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Rank cited publications and write one e-mail per top record",
	Long: `Runs the whole batch: load exports -> join -> rank -> fill template -> save and/or send.

Configuration can be loaded from a YAML or JSON file using --config. Command-line arguments override config file values.
The SMTP password is read from the SMTP_PASSWORD environment variable (or .env) when the config file does not set one.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMailer(cmd, &runFlags)
	},
}

type runOptions struct {
	configFlags

	autoSend             bool
	saveAsFile           bool
	saveIntermediateHTML bool
	outputDir            string
	filenamePattern      string
	smtpHost             string
	smtpPort             int
	smtpUser             string
	smtpInsecure         bool
}

var runFlags runOptions

func (o *runOptions) register(cmd *cobra.Command) {
	o.configFlags.register(cmd)

	cmd.Flags().BoolVar(&o.autoSend, "autosend", false, "Send every e-mail over SMTP after creating it")
	cmd.Flags().BoolVar(&o.saveAsFile, "save", true, "Save every e-mail to the output directory")
	cmd.Flags().BoolVar(&o.saveIntermediateHTML, "save-html", false, "Keep the HTML form of the template in the output directory")
	cmd.Flags().StringVarP(&o.outputDir, "out", "o", "", "Output directory for saved e-mails")
	cmd.Flags().StringVar(&o.filenamePattern, "filename-pattern", "", "Saved e-mail name; {index}, {authors} and {year} are expanded, extension picks eml, html or pdf")
	cmd.Flags().StringVar(&o.smtpHost, "smtp-host", "", "SMTP server host")
	cmd.Flags().IntVar(&o.smtpPort, "smtp-port", 0, "SMTP server port")
	cmd.Flags().StringVar(&o.smtpUser, "smtp-user", "", "SMTP user name")
	cmd.Flags().BoolVar(&o.smtpInsecure, "smtp-insecure", false, "Allow SMTP without TLS")
}

func init() {
	runFlags.register(runCommand)
	rootCmd.AddCommand(runCommand)
}

func (o *runOptions) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := o.configFlags.load(cmd)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("autosend") {
		cfg.AutoSend = o.autoSend
	}
	if flags.Changed("save") {
		save := o.saveAsFile
		cfg.SaveAsFile = &save
	}
	if flags.Changed("save-html") {
		cfg.SaveIntermediateHTML = o.saveIntermediateHTML
	}
	if flags.Changed("out") {
		cfg.OutputDir = o.outputDir
	}
	if flags.Changed("filename-pattern") {
		cfg.FilenamePattern = o.filenamePattern
	}
	if flags.Changed("smtp-host") {
		cfg.SMTP.Host = o.smtpHost
	}
	if flags.Changed("smtp-port") {
		cfg.SMTP.Port = o.smtpPort
	}
	if flags.Changed("smtp-user") {
		cfg.SMTP.Username = o.smtpUser
	}
	if flags.Changed("smtp-insecure") {
		cfg.SMTP.Insecure = o.smtpInsecure
	}
	return finish(cfg)
}

// newSender picks the mail collaborator for cfg: SMTP when sending, drafts only otherwise
func newSender(cfg config.Config) mail.Sender {
	renderPDF := mail.ChromePDF(mail.DefaultPDFTimeout)
	if !cfg.AutoSend {
		return mail.NewDraftOnlySender(renderPDF)
	}
	return mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		Insecure: cfg.SMTP.Insecure,
	}, renderPDF)
}

func runMailer(cmd *cobra.Command, opts *runOptions) error {
	cfg, err := opts.load(cmd)
	if err != nil {
		return err
	}
	return executeRun(cmd, cfg, newSender(cfg))
}

func executeRun(cmd *cobra.Command, cfg config.Config, sender mail.Sender) error {
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	out := cmd.OutOrStdout()
	orch := pipeline.New(cfg, sender, logger)
	if cfg.Verbose {
		total := int(pipeline.StageDone)
		orch.OnProgress(func(e pipeline.ProgressEvent) {
			if e.Index < 0 {
				_, _ = fmt.Fprintf(out, "Step %d/%d: %s\n", int(e.Stage), total, e.Message)
			}
		})
	}

	result, err := orch.Run(commandContext(cmd))
	if cfg.Verbose && result != nil {
		observability.NewPrinter(out).PrintEmitted(result.Emitted)
	}
	if err != nil {
		return err
	}

	sent := 0
	for _, e := range result.Emitted {
		if e.Sent {
			sent++
		}
	}
	_, _ = fmt.Fprintf(out, "Successfully emitted %d e-mails (%d sent) out of %d ranked records\n",
		len(result.Emitted), sent, result.Ranked)
	return nil
}
