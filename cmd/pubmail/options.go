package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/citation-mailer/internal/config"
	"github.com/jonathan/citation-mailer/internal/logging"
)

// smtpPasswordEnv is read when neither the config file nor a flag sets a password
const smtpPasswordEnv = "SMTP_PASSWORD"

// configFlags are the flags shared by every subcommand that reads the exports
type configFlags struct {
	configPath      string
	publications    []string
	citationReports []string
	skipRows        int
	template        string
	from            string
	subject         string
	authorDelimiter string
	joinKey         string
	rankBy          string
	ascending       bool
	maxEmails       int
	logLevel        string
	logFormat       string
	verbose         bool
}

func (f *configFlags) register(cmd *cobra.Command) {
	// Config file flag (processed first)
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to a YAML or JSON config file (values can be overridden by other flags)")

	cmd.Flags().StringSliceVarP(&f.publications, "publications", "p", nil, "Publication export files (xlsx, csv or tab-delimited), in order")
	cmd.Flags().StringSliceVarP(&f.citationReports, "citation-reports", "c", nil, "Citation Report export files, in order")
	cmd.Flags().IntVar(&f.skipRows, "skip-rows", config.DefaultCitationSkipRows, "Preamble rows above the Citation Report header")
	cmd.Flags().StringVarP(&f.template, "template", "t", "", "E-mail template (html, docx or txt)")
	cmd.Flags().StringVar(&f.from, "from", "", "Sender address")
	cmd.Flags().StringVar(&f.subject, "subject", "", "E-mail subject")
	cmd.Flags().StringVar(&f.authorDelimiter, "author-delimiter", "", "Separator between authors in the Authors column")
	cmd.Flags().StringVar(&f.joinKey, "join-key", "", "Column used to match citation records with publications")
	cmd.Flags().StringVar(&f.rankBy, "rank-by", "", "Citation Report column to rank by")
	cmd.Flags().BoolVar(&f.ascending, "ascending", false, "Rank smallest values first")
	cmd.Flags().IntVarP(&f.maxEmails, "max-emails", "n", 0, "Number of top records to e-mail")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&f.logFormat, "log-format", "", "Log format (console, json)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print detailed summaries")
}

// load reads the config file, if any, and applies the flags the user set explicitly
func (f *configFlags) load(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if f.configPath != "" {
		loaded, err := config.LoadConfig(f.configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("publications") {
		cfg.Publications = f.publications
	}
	if flags.Changed("citation-reports") {
		cfg.CitationReports = f.citationReports
	}
	if flags.Changed("skip-rows") {
		skip := f.skipRows
		cfg.CitationSkipRows = &skip
	}
	if flags.Changed("template") {
		cfg.Template = f.template
	}
	if flags.Changed("from") {
		cfg.From = f.from
	}
	if flags.Changed("subject") {
		cfg.Subject = f.subject
	}
	if flags.Changed("author-delimiter") {
		cfg.AuthorDelimiter = f.authorDelimiter
	}
	if flags.Changed("join-key") {
		cfg.JoinKey = f.joinKey
	}
	if flags.Changed("rank-by") {
		cfg.RankBy = f.rankBy
	}
	if flags.Changed("ascending") {
		cfg.Ascending = f.ascending
	}
	if flags.Changed("max-emails") {
		cfg.MaxEmails = f.maxEmails
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
	if flags.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	return cfg, nil
}

// finish applies defaults and environment fallbacks, then validates every field
// not named in except
func finish(cfg config.Config, except ...string) (config.Config, error) {
	cfg = cfg.MergeWithDefaults(config.Config{})
	if cfg.SMTP.Password == "" {
		cfg.SMTP.Password = os.Getenv(smtpPasswordEnv)
	}
	if err := cfg.ValidateExcept(except...); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	level := cfg.LogLevel
	if cfg.Verbose && level == config.DefaultLogLevel {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{Level: level, Encoding: cfg.LogFormat})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// commandContext returns the command's context, or Background when it was run without Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
