// Package pipeline provides the batch orchestration of the cleaning stages: one raw scrape
// of a market goes in, the clean table for that market comes out.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/dates"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/extract"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/ingestion"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/pipeline/steps"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/schemas"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/splitter"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/storage"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/titles"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/translate"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Stage    string `json:"stage"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Rows     int    `json:"rows"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	Market types.Market
	// SourcePath is a raw CSV file. Ignored when Records is set.
	SourcePath string
	Records    []types.RawRecord

	ReferenceDate time.Time
	NumDays       int
	Seed          uint64
	Jitter        int

	// Translator translates titles when non-nil.
	Translator *translate.BestEffort
	// TranslateRows limits translation to the first rows of the descending title order.
	TranslateRows        int
	TranslateConcurrency int

	// Titles overrides the market's embedded rule table.
	Titles    *titles.Engine
	Extractor *extract.Extractor

	// Store persists the clean table and the run log when non-nil.
	Store storage.Store
	// ValidateOutput checks the clean records against the clean record schema before
	// they are persisted.
	ValidateOutput bool

	Logger     *zap.Logger
	OnProgress ProgressCallback
}

// Result summarizes a completed run.
type Result struct {
	RunID    uuid.UUID         `json:"run_id"`
	Market   types.Market      `json:"market"`
	Source   string            `json:"source"`
	RowsIn   int               `json:"rows_in"`
	Excluded int               `json:"excluded"`
	Dropped  int               `json:"dropped"`
	Records  []types.JobRecord `json:"-"`
	// Unmatched lists the preprocessed titles no rule changed.
	Unmatched []string      `json:"unmatched"`
	Duration  time.Duration `json:"duration"`
}

type runner struct {
	opts      *RunOptions
	runID     uuid.UUID
	logger    *zap.Logger
	completed map[string]bool
}

// begin checks the stage's dependencies before it runs.
func (r *runner) begin(stage string) error {
	return steps.ValidateDependencies(r.completed, stage)
}

// done marks stage complete, logs it and emits a progress event.
func (r *runner) done(stage, message string, rows int) {
	r.completed[stage] = true
	def := steps.StageRegistry[stage]
	r.logger.Debug("stage completed",
		zap.String("stage", stage),
		zap.Int("step", steps.Index(stage)),
		zap.Int("rows", rows))
	if r.opts.OnProgress != nil {
		r.opts.OnProgress(ProgressEvent{
			Stage:    stage,
			Category: def.Category,
			Message:  message,
			RunID:    r.runID.String(),
			Rows:     rows,
		})
	}
}

// Run executes every cleaning stage in order over one market's raw records.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	start := time.Now()
	if err := steps.ValidateOrder(steps.Order); err != nil {
		return nil, fmt.Errorf("invalid stage order: %w", err)
	}
	if opts.Market == "" {
		return nil, fmt.Errorf("market is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	runID := uuid.New()
	logger = logger.With(zap.String("run_id", runID.String()), zap.String("market", opts.Market.String()))

	records := opts.Records
	source := opts.SourcePath
	if records == nil {
		if source == "" {
			return nil, fmt.Errorf("either records or a source path is required")
		}
		var err error
		records, _, err = ingestion.ReadRawCSV(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read raw records: %w", err)
		}
	}
	if source == "" {
		source = "(in-memory)"
	}

	engine := opts.Titles
	if engine == nil {
		var err error
		engine, err = titles.New(opts.Market, titles.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("failed to load title rules: %w", err)
		}
	}
	ex := opts.Extractor
	if ex == nil {
		ex = extract.New()
	}

	res := &Result{RunID: runID, Market: opts.Market, Source: source, RowsIn: len(records)}
	run := storage.Run{
		ID:        runID,
		Market:    opts.Market.String(),
		Source:    source,
		Status:    storage.RunStatusRunning,
		RowsIn:    len(records),
		StartedAt: start.UTC(),
	}
	if opts.Store != nil {
		if err := opts.Store.SaveRun(ctx, run); err != nil {
			logger.Warn("failed to record run start", zap.Error(err))
		}
	}

	r := &runner{opts: &opts, runID: runID, logger: logger, completed: make(map[string]bool)}
	logger.Info("pipeline started", zap.Int("rows", len(records)), zap.String("source", source))

	rows, err := r.clean(ctx, records, engine, ex, res)
	if err == nil {
		res.Records = collect(rows)
		err = r.persist(ctx, res.Records)
	}

	res.Duration = time.Since(start)
	if opts.Store != nil {
		completed := time.Now().UTC()
		run.CompletedAt = &completed
		run.RowsOut = len(res.Records)
		run.Dropped = res.Dropped + res.Excluded
		run.Status = storage.RunStatusCompleted
		if err != nil {
			run.Status = storage.RunStatusFailed
		}
		if serr := opts.Store.SaveRun(ctx, run); serr != nil {
			logger.Warn("failed to record run completion", zap.Error(serr))
		}
	}
	if err != nil {
		return nil, err
	}

	logger.Info("pipeline finished",
		zap.Int("rows_in", res.RowsIn),
		zap.Int("rows_out", len(res.Records)),
		zap.Int("excluded", res.Excluded),
		zap.Int("dropped", res.Dropped),
		zap.Int("unmatched_titles", len(res.Unmatched)),
		zap.Duration("duration", res.Duration))
	return res, nil
}

func (r *runner) clean(ctx context.Context, records []types.RawRecord, engine *titles.Engine, ex *extract.Extractor, res *Result) ([]*row, error) {
	opts := r.opts
	rows := newRows(records)

	stages := []struct {
		name string
		fn   func() string
	}{
		{steps.SplitLocation, func() string { splitLocation(rows); return "split location into city" }},
		{steps.SplitCareerLevel, func() string {
			splitCareerLevel(rows, splitter.DefaultCareerLevelOptions())
			return "split career level into type and experience"
		}},
		{steps.MergeExperience, func() string { mergeExperience(rows); return "merged experience fields" }},
		{steps.SplitIndustry, func() string { splitIndustry(rows); return "split industry and company size" }},
		{steps.ParseVacancies, func() string { parseVacancies(rows); return "parsed vacancies" }},
		{steps.FillMissing, func() string { fillMissing(rows); return "filled missing values" }},
		{steps.ExcludeTitles, func() string {
			rows, res.Excluded = excludeTitles(rows, opts.Market.ExcludedTitleTerms())
			return fmt.Sprintf("excluded %d postings for another market", res.Excluded)
		}},
		{steps.ReconstructDates, func() string {
			rc := &dates.Reconstructor{
				ReferenceDate: opts.ReferenceDate,
				NumDays:       opts.NumDays,
				Seed:          opts.Seed,
				Jitter:        opts.Jitter,
				Logger:        r.logger,
			}
			var dr dates.Result
			rows, dr = reconstructDates(rows, rc)
			res.Dropped = len(dr.Dropped)
			return fmt.Sprintf("reconstructed dates, dropped %d unparseable", res.Dropped)
		}},
		{steps.MarkTraining, func() string { markTraining(rows); return "marked training positions" }},
		{steps.TranslateCategories, func() string { translateCategories(rows); return "translated categorical fields" }},
		{steps.ExtractAttributes, func() string { extractAttributes(rows, ex); return "extracted grade, gender and remote mode" }},
		{steps.ParseExperienceYears, func() string { parseExperienceYears(rows); return "parsed experience years" }},
		{steps.TranslateTitles, func() string {
			if opts.Translator == nil {
				return "title translation disabled"
			}
			translateTitles(ctx, rows, opts.Translator, opts.TranslateRows, opts.TranslateConcurrency)
			return "translated titles"
		}},
		{steps.PreprocessTitles, func() string { preprocessTitles(rows); return "preprocessed titles" }},
		{steps.NormalizeTitles, func() string {
			res.Unmatched = normalizeTitles(rows, engine)
			return fmt.Sprintf("normalized titles with %d rules", engine.Len())
		}},
	}

	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.begin(s.name); err != nil {
			return nil, err
		}
		msg := s.fn()
		r.done(s.name, msg, len(rows))
	}
	return rows, nil
}

func (r *runner) persist(ctx context.Context, records []types.JobRecord) error {
	if err := r.begin(steps.Persist); err != nil {
		return err
	}
	if r.opts.ValidateOutput {
		if err := schemas.ValidateRecords(records); err != nil {
			return fmt.Errorf("clean records failed validation: %w", err)
		}
	}
	if r.opts.Store == nil {
		r.done(steps.Persist, "no store configured, skipped", len(records))
		return nil
	}
	if err := r.opts.Store.Replace(ctx, r.opts.Market, records); err != nil {
		return fmt.Errorf("failed to persist %s: %w", r.opts.Market.Table(), err)
	}
	r.done(steps.Persist, "persisted table "+r.opts.Market.Table(), len(records))
	return nil
}
