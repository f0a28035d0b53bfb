// Package pipeline drives a batch run: load exports, join, rank and emit one e-mail per top record.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/citation-mailer/internal/config"
	"github.com/jonathan/citation-mailer/internal/ingestion"
	"github.com/jonathan/citation-mailer/internal/logging"
	"github.com/jonathan/citation-mailer/internal/mail"
	"github.com/jonathan/citation-mailer/internal/ranking"
	"github.com/jonathan/citation-mailer/internal/rendering"
	"github.com/jonathan/citation-mailer/internal/table"
)

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	Stage   Stage
	Message string
	Index   int // record index for per-email events, -1 otherwise
}

// ProgressCallback is called when run progress occurs
type ProgressCallback func(event ProgressEvent)

// Ranked is the merged citation report after ranking
type Ranked struct {
	Table *table.ColumnTable
	Years ingestion.YearSeries
}

// Emitted describes one e-mail produced by a run
type Emitted struct {
	Index int
	Key   string
	To    []string
	Path  string // empty when drafts are not saved
	Sent  bool
}

// Result summarises a run. On failure it holds whatever was emitted before the error.
type Result struct {
	RunID   string
	Ranked  int
	Emitted []Emitted
}

// Orchestrator runs the batch pipeline for one configuration
type Orchestrator struct {
	cfg        config.Config
	sender     mail.Sender
	logger     *zap.Logger
	onProgress ProgressCallback

	runID string
	stage Stage
}

// New creates an Orchestrator. cfg is expected to be merged with defaults and validated.
// A nil logger discards log output.
func New(cfg config.Config, sender mail.Sender, logger *zap.Logger) *Orchestrator {
	runID := uuid.NewString()
	return &Orchestrator{
		cfg:    cfg,
		sender: sender,
		logger: logging.OrNop(logger).With(zap.String("run_id", runID)),
		runID:  runID,
		stage:  StageInit,
	}
}

// OnProgress registers a callback for stage and per-email progress
func (o *Orchestrator) OnProgress(cb ProgressCallback) {
	o.onProgress = cb
}

// RunID returns the identifier attached to every log line of this run
func (o *Orchestrator) RunID() string {
	return o.runID
}

// Stage returns the stage the run has reached
func (o *Orchestrator) Stage() Stage {
	return o.stage
}

func (o *Orchestrator) advance(to Stage, message string) error {
	if err := checkTransition(o.stage, to); err != nil {
		return err
	}
	o.logger.Info("stage changed", zap.Stringer("from", o.stage), zap.Stringer("to", to), zap.String("detail", message))
	o.stage = to
	o.emit(ProgressEvent{Stage: to, Message: message, Index: -1})
	return nil
}

func (o *Orchestrator) emit(event ProgressEvent) {
	if o.onProgress != nil {
		o.onProgress(event)
	}
}

// publicationColumns are read from the publication exports; all but the key are joined on
func (o *Orchestrator) publicationColumns() []string {
	return []string{ColumnAuthors, ColumnTitle, ColumnEmails, ColumnYear}
}

func (o *Orchestrator) citationColumns() []string {
	cols := []string{o.cfg.JoinKey, ColumnTotalCitations, ColumnAveragePerYear}
	for _, c := range cols {
		if c == o.cfg.RankBy {
			return cols
		}
	}
	return append(cols, o.cfg.RankBy)
}

// Prepare loads both export sets, joins publication metadata onto the citation report and
// ranks the result. It leaves the run in StageRanked.
func (o *Orchestrator) Prepare(_ context.Context) (*Ranked, error) {
	publications, err := ingestion.LoadTable(o.cfg.Publications,
		append([]string{o.cfg.JoinKey}, o.publicationColumns()...), ingestion.LoadOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to load publication exports: %w", err)
	}

	reportOpts := ingestion.LoadOptions{SkipRows: o.cfg.SkipRows()}
	reports, err := ingestion.ReadExports(o.cfg.CitationReports, reportOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to read citation reports: %w", err)
	}
	citations, err := ingestion.BuildTable(reports, o.citationColumns())
	if err != nil {
		return nil, fmt.Errorf("failed to load citation reports: %w", err)
	}
	years, err := ingestion.BuildYearSeries(reports)
	if err != nil {
		return nil, fmt.Errorf("failed to read per-year citations: %w", err)
	}
	if err := o.advance(StageLoaded, fmt.Sprintf("%d publications, %d cited records, %d year columns",
		publications.Len(), citations.Len(), len(years))); err != nil {
		return nil, err
	}

	joined, err := table.Join(citations, publications, o.cfg.JoinKey, o.publicationColumns())
	if err != nil {
		return nil, fmt.Errorf("failed to join publications on %s: %w", o.cfg.JoinKey, err)
	}
	if err := o.advance(StageJoined, fmt.Sprintf("joined on %s", o.cfg.JoinKey)); err != nil {
		return nil, err
	}

	ranked, err := ranking.Sort(joined, o.cfg.RankBy, !o.cfg.Ascending)
	if err != nil {
		return nil, fmt.Errorf("failed to rank by %s: %w", o.cfg.RankBy, err)
	}
	if ref, _ := joined.Column(o.cfg.RankBy); !ranking.Numeric(ref) {
		o.logger.Warn("rank column is not numeric; records are sorted as text", zap.String("column", o.cfg.RankBy))
	}
	if err := o.advance(StageRanked, fmt.Sprintf("ranked %d records by %s", ranked.Len(), o.cfg.RankBy)); err != nil {
		return nil, err
	}

	return &Ranked{Table: ranked, Years: years}, nil
}

// Run executes the whole batch: Prepare, then compose and emit the top MaxEmails records.
// Drafts already written when an error occurs are left in place.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	result := &Result{RunID: o.runID}

	ranked, err := o.Prepare(ctx)
	if err != nil {
		return result, err
	}
	result.Ranked = ranked.Table.Len()

	top, err := ranking.Top(ranked.Table, o.cfg.MaxEmails)
	if err != nil {
		return result, err
	}

	body, err := o.LoadTemplate()
	if err != nil {
		return result, err
	}

	if err := o.advance(StageEmitting, fmt.Sprintf("emitting %d e-mails", top.Len())); err != nil {
		return result, err
	}

	for i := 0; i < top.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		emitted, err := o.emitRecord(ctx, top, body, i)
		if err != nil {
			return result, err
		}
		result.Emitted = append(result.Emitted, *emitted)
	}

	if err := o.advance(StageDone, fmt.Sprintf("%d e-mails emitted", len(result.Emitted))); err != nil {
		return result, err
	}
	return result, nil
}

// LoadTemplate reads the configured template and, if asked to, keeps a copy of its HTML form
func (o *Orchestrator) LoadTemplate() (string, error) {
	body, err := rendering.LoadTemplate(o.cfg.Template)
	if err != nil {
		return "", err
	}
	if o.cfg.SaveIntermediateHTML {
		path := o.outputPath(o.cfg.IntermediateHTMLPath)
		if err := writeFile(path, []byte(body)); err != nil {
			return "", fmt.Errorf("failed to save intermediate HTML: %w", err)
		}
		o.logger.Debug("saved intermediate HTML", zap.String("path", path))
	}
	return body, nil
}

func (o *Orchestrator) emitRecord(ctx context.Context, top *table.ColumnTable, body string, i int) (*Emitted, error) {
	c, err := o.Compose(top, body, i)
	if err != nil {
		return nil, err
	}
	log := o.logger.With(zap.Int("index", i+1), zap.String("key", c.Key))

	for _, col := range c.Collisions {
		log.Warn("placeholder value contains a later placeholder and will be substituted again",
			zap.Int("value", col.Value), zap.String("token", col.Token))
	}
	if len(c.Residual) > 0 {
		log.Warn("placeholders left in body after filling", zap.Strings("tokens", c.Residual))
	}
	if len(c.Message.To) == 0 {
		if o.cfg.AutoSend {
			return nil, &MissingRecipientError{Index: i, Key: c.Key}
		}
		log.Warn("record has no e-mail address; draft created without recipients")
	}

	draft, err := o.sender.CreateDraft(ctx, c.Message)
	if err != nil {
		return nil, &RecordError{Index: i, Key: c.Key, Cause: err}
	}
	emitted := &Emitted{Index: i, Key: c.Key, To: c.Message.To}

	if o.cfg.SaveFiles() {
		path := o.outputPath(c.Filename)
		if err := o.sender.SaveAs(ctx, draft, path); err != nil {
			return nil, &RecordError{Index: i, Key: c.Key, Cause: err}
		}
		emitted.Path = path
	}
	if o.cfg.AutoSend {
		if err := o.sender.Send(ctx, draft); err != nil {
			return nil, &RecordError{Index: i, Key: c.Key, Cause: err}
		}
		emitted.Sent = true
	}

	log.Info("e-mail emitted", zap.Strings("to", c.Message.To), zap.String("path", emitted.Path), zap.Bool("sent", emitted.Sent))
	o.emit(ProgressEvent{Stage: StageEmitting, Message: c.Salutation, Index: i})
	return emitted, nil
}

func (o *Orchestrator) outputPath(name string) string {
	if o.cfg.OutputDir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(o.cfg.OutputDir, name)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
