// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default values applied by MergeWithDefaults
const (
	DefaultCitationSkipRows     = 10 // Citation Report preamble above the header row
	DefaultMaxEmails            = 50
	DefaultJoinKey              = "DOI"
	DefaultRankBy               = "Average per Year"
	DefaultAuthorDelimiter      = ";"
	DefaultFilenamePattern      = "EMAIL_{index}_{authors}_{year}.eml"
	DefaultIntermediateHTMLPath = "mail_in_HTML.txt"
	DefaultSubject              = "End of year message to our esteemed authors"
	DefaultLogLevel             = "info"
	DefaultLogFormat            = "console"
	DefaultSMTPPort             = 587
)

// Placeholders holds the template tokens, in the order they are substituted.
type Placeholders struct {
	AuthorNames  string `json:"author_names,omitempty" yaml:"author_names,omitempty"`
	PaperYear    string `json:"paper_year,omitempty" yaml:"paper_year,omitempty"`
	PaperTitle   string `json:"paper_title,omitempty" yaml:"paper_title,omitempty"`
	CitesPerYear string `json:"cites_per_year,omitempty" yaml:"cites_per_year,omitempty"`
	TotalCites   string `json:"total_cites,omitempty" yaml:"total_cites,omitempty"`
}

// DefaultPlaceholders returns the tokens used by the stock e-mail template
func DefaultPlaceholders() Placeholders {
	return Placeholders{
		AuthorNames:  "!AUTHOR_NAMES!",
		PaperYear:    "!PAPER_YEAR!",
		PaperTitle:   "!PAPER_TITLE!",
		CitesPerYear: "!CITPERYEAR!",
		TotalCites:   "!TOTCIT!",
	}
}

// Tokens returns the placeholders in substitution order
func (p Placeholders) Tokens() []string {
	return []string{p.AuthorNames, p.PaperYear, p.PaperTitle, p.CitesPerYear, p.TotalCites}
}

// SMTP describes the outgoing mail server. Host may be empty when no mail is sent.
type SMTP struct {
	Host     string `json:"host,omitempty" yaml:"host,omitempty" validate:"omitempty,hostname_rfc1123|ip"`
	Port     int    `json:"port,omitempty" yaml:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	Insecure bool   `json:"insecure,omitempty" yaml:"insecure,omitempty"`
}

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional in the file; missing values use defaults or come from CLI flags.
type Config struct {
	// Inputs
	Publications     []string `json:"publications,omitempty" yaml:"publications,omitempty" validate:"required,min=1,dive,required"`
	CitationReports  []string `json:"citation_reports,omitempty" yaml:"citation_reports,omitempty" validate:"required,min=1,dive,required"`
	CitationSkipRows *int     `json:"citation_skip_rows,omitempty" yaml:"citation_skip_rows,omitempty" validate:"omitempty,min=0"`
	Template         string   `json:"template,omitempty" yaml:"template,omitempty" validate:"required"`

	// Message
	From            string       `json:"from,omitempty" yaml:"from,omitempty" validate:"required,email"`
	Subject         string       `json:"subject,omitempty" yaml:"subject,omitempty" validate:"required"`
	Placeholders    Placeholders `json:"placeholders,omitempty" yaml:"placeholders,omitempty"`
	AuthorDelimiter string       `json:"author_delimiter,omitempty" yaml:"author_delimiter,omitempty" validate:"required"`

	// Ranking
	JoinKey   string `json:"join_key,omitempty" yaml:"join_key,omitempty" validate:"required"`
	RankBy    string `json:"rank_by,omitempty" yaml:"rank_by,omitempty" validate:"required"`
	Ascending bool   `json:"ascending,omitempty" yaml:"ascending,omitempty"`
	MaxEmails int    `json:"max_emails,omitempty" yaml:"max_emails,omitempty" validate:"min=1"`

	// Output
	AutoSend             bool   `json:"autosend,omitempty" yaml:"autosend,omitempty"`
	SaveAsFile           *bool  `json:"save_as_file,omitempty" yaml:"save_as_file,omitempty"`
	SaveIntermediateHTML bool   `json:"save_intermediate_html,omitempty" yaml:"save_intermediate_html,omitempty"`
	IntermediateHTMLPath string `json:"intermediate_html_path,omitempty" yaml:"intermediate_html_path,omitempty"`
	OutputDir            string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	FilenamePattern      string `json:"filename_pattern,omitempty" yaml:"filename_pattern,omitempty" validate:"required"`

	SMTP SMTP `json:"smtp,omitempty" yaml:"smtp,omitempty"`

	// Behavior
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,oneof=console json"`
	Verbose   bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// SkipRows returns the number of preamble rows in Citation Report exports
func (c *Config) SkipRows() int {
	if c.CitationSkipRows == nil {
		return DefaultCitationSkipRows
	}
	return *c.CitationSkipRows
}

// SaveFiles reports whether drafts are written to disk. Unset means true.
func (c *Config) SaveFiles() bool {
	return c.SaveAsFile == nil || *c.SaveAsFile
}

// LoadConfig loads configuration from a file.
// Files ending in .yaml or .yml are parsed as YAML, anything else as JSON.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// It is meant to run after MergeWithDefaults and CLI overrides.
func (c *Config) Validate() error {
	return c.ValidateExcept()
}

// ValidateExcept validates like Validate but skips the struct rules of the named
// top-level fields, for commands that never read them.
func (c *Config) ValidateExcept(fields ...string) error {
	validate := validator.New()
	var err error
	if len(fields) == 0 {
		err = validate.Struct(c)
	} else {
		err = validate.StructExcept(c, fields...)
	}
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.AutoSend && c.SMTP.Host == "" {
		return fmt.Errorf("config error: 'autosend' requires 'smtp.host'")
	}

	tokens := c.Placeholders.Tokens()
	seen := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			return fmt.Errorf("config error: placeholder tokens must not be empty")
		}
		if seen[tok] {
			return fmt.Errorf("config error: duplicate placeholder token %q", tok)
		}
		seen[tok] = true
	}

	// Validate file paths exist
	files := append([]string{c.Template}, c.Publications...)
	files = append(files, c.CitationReports...)
	for _, f := range files {
		if f == "" {
			continue
		}
		if _, err := os.Stat(f); os.IsNotExist(err) {
			return fmt.Errorf("config error: file not found: %s", f)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults,
// falling back to the package defaults for anything defaults leaves unset too.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if len(result.Publications) == 0 {
		result.Publications = defaults.Publications
	}
	if len(result.CitationReports) == 0 {
		result.CitationReports = defaults.CitationReports
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.From == "" {
		result.From = defaults.From
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.SaveAsFile == nil {
		result.SaveAsFile = defaults.SaveAsFile
	}
	if result.CitationSkipRows == nil {
		result.CitationSkipRows = defaults.CitationSkipRows
	}

	result.Subject = firstNonEmpty(result.Subject, defaults.Subject, DefaultSubject)
	result.AuthorDelimiter = firstNonEmpty(result.AuthorDelimiter, defaults.AuthorDelimiter, DefaultAuthorDelimiter)
	result.JoinKey = firstNonEmpty(result.JoinKey, defaults.JoinKey, DefaultJoinKey)
	result.RankBy = firstNonEmpty(result.RankBy, defaults.RankBy, DefaultRankBy)
	result.FilenamePattern = firstNonEmpty(result.FilenamePattern, defaults.FilenamePattern, DefaultFilenamePattern)
	result.IntermediateHTMLPath = firstNonEmpty(result.IntermediateHTMLPath, defaults.IntermediateHTMLPath, DefaultIntermediateHTMLPath)
	result.LogLevel = firstNonEmpty(result.LogLevel, defaults.LogLevel, DefaultLogLevel)
	result.LogFormat = firstNonEmpty(result.LogFormat, defaults.LogFormat, DefaultLogFormat)
	result.SMTP.Host = firstNonEmpty(result.SMTP.Host, defaults.SMTP.Host)
	result.SMTP.Username = firstNonEmpty(result.SMTP.Username, defaults.SMTP.Username)
	result.SMTP.Password = firstNonEmpty(result.SMTP.Password, defaults.SMTP.Password)

	stock := DefaultPlaceholders()
	result.Placeholders.AuthorNames = firstNonEmpty(result.Placeholders.AuthorNames, defaults.Placeholders.AuthorNames, stock.AuthorNames)
	result.Placeholders.PaperYear = firstNonEmpty(result.Placeholders.PaperYear, defaults.Placeholders.PaperYear, stock.PaperYear)
	result.Placeholders.PaperTitle = firstNonEmpty(result.Placeholders.PaperTitle, defaults.Placeholders.PaperTitle, stock.PaperTitle)
	result.Placeholders.CitesPerYear = firstNonEmpty(result.Placeholders.CitesPerYear, defaults.Placeholders.CitesPerYear, stock.CitesPerYear)
	result.Placeholders.TotalCites = firstNonEmpty(result.Placeholders.TotalCites, defaults.Placeholders.TotalCites, stock.TotalCites)

	// Int fields: use default if zero
	if result.MaxEmails == 0 {
		result.MaxEmails = firstPositive(defaults.MaxEmails, DefaultMaxEmails)
	}
	if result.SMTP.Port == 0 {
		result.SMTP.Port = firstPositive(defaults.SMTP.Port, DefaultSMTPPort)
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
