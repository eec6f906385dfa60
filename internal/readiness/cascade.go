package readiness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

type Tier string

const (
	TierPipeline    Tier = "pipeline"
	TierSingleShot  Tier = "single_shot"
	TierSynthesized Tier = "synthesized"
	TierMinimal     Tier = "minimal"
)

// FallbackIDPrefix marks identifiers issued when durable storage was unavailable.
const FallbackIDPrefix = "local-"

// TierResult is the explicit outcome of one tier.
type TierResult struct {
	Tier   Tier
	Report *Report
	Err    error
}

func (r TierResult) OK() bool { return r.Err == nil && r.Report != nil }

type TierFunc func(ctx context.Context) TierResult

type TierStrategy struct {
	Tier Tier
	Run  TierFunc
}

// FirstSuccess runs the strategies in order and returns the first usable
// result along with a record of every attempt.
func FirstSuccess(ctx context.Context, strategies []TierStrategy, now func() time.Time) (TierResult, []GenerationAttempt) {
	if now == nil {
		now = time.Now
	}
	var attempts []GenerationAttempt
	var last TierResult
	for _, s := range strategies {
		started := now()
		res := s.Run(ctx)
		res.Tier = s.Tier
		if res.Err == nil && res.Report != nil {
			if err := res.Report.Validate(); err != nil {
				res.Err = err
			}
		} else if res.Err == nil {
			res.Err = errors.New("tier returned no report")
		}
		attempt := GenerationAttempt{Tier: s.Tier, Success: res.Err == nil, Elapsed: now().Sub(started)}
		if res.Err != nil {
			attempt.Error = res.Err.Error()
		}
		attempts = append(attempts, attempt)
		if res.Err == nil {
			return res, attempts
		}
		last = res
	}
	return last, attempts
}

// StoredReport is the durable record of one generation.
type StoredReport struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Email     string          `json:"email"`
	Company   string          `json:"company"`
	Role      string          `json:"role"`
	Language  string          `json:"language"`
	Score     int             `json:"score"`
	Report    Report          `json:"report"`
	Metrics   *DerivedMetrics `json:"metrics,omitempty"`
}

type ReportStore interface {
	Save(ctx context.Context, rec StoredReport) error
	Get(ctx context.Context, id string) (StoredReport, error)
}

// TextCache is a short-lived keyed store; entries expire on their own.
type TextCache interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, bool, error)
}

func ReportCacheKey(id string) string { return "readiness:report:" + id }

// Recorder receives cascade measurements.
type Recorder interface {
	ObserveTier(tier Tier, success bool, elapsed time.Duration)
	ObserveStageFallback(stage string)
	ObservePersistAttempt(success bool)
	ObserveGeneration(tier Tier, persisted bool, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveTier(Tier, bool, time.Duration)       {}
func (nopRecorder) ObserveStageFallback(string)                 {}
func (nopRecorder) ObservePersistAttempt(bool)                  {}
func (nopRecorder) ObserveGeneration(Tier, bool, time.Duration) {}

type CascadeResult struct {
	Success         bool                `json:"success"`
	ID              string              `json:"id"`
	Tier            Tier                `json:"tier"`
	Report          Report              `json:"report"`
	Metrics         DerivedMetrics      `json:"metrics"`
	Persisted       bool                `json:"persisted"`
	PersistAttempts int                 `json:"persist_attempts"`
	PersistError    string              `json:"persist_error,omitempty"`
	Attempts        []GenerationAttempt `json:"attempts"`
	Elapsed         time.Duration       `json:"elapsed"`
}

type CascadeConfig struct {
	Generator       TextGenerator
	Store           ReportStore
	Caches          []TextCache
	Recorder        Recorder
	Logger          *zap.Logger
	PersistAttempts int
	PersistDelay    time.Duration
}

// Cascade owns the tier policy and the persistence retries.
type Cascade struct {
	gen      TextGenerator
	pipeline *Orchestrator
	synth    *Synthesizer
	store    ReportStore
	caches   []TextCache
	recorder Recorder
	logger   *zap.Logger

	attempts int
	delay    time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
	now      func() time.Time
	newID    func() string
}

func NewCascade(cfg CascadeConfig) *Cascade {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rec := cfg.Recorder
	if rec == nil {
		rec = nopRecorder{}
	}
	attempts := cfg.PersistAttempts
	if attempts <= 0 {
		attempts = 3
	}
	delay := cfg.PersistDelay
	if delay < 0 {
		delay = 0
	}
	c := &Cascade{
		gen:      cfg.Generator,
		synth:    NewSynthesizer(WithPlaybook(), WithSynthesizerLogger(logger)),
		store:    cfg.Store,
		caches:   cfg.Caches,
		recorder: rec,
		logger:   logger,
		attempts: attempts,
		delay:    delay,
		sleep:    sleepContext,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	if cfg.Generator != nil {
		c.pipeline = NewTextPipeline(cfg.Generator, logger)
	}
	return c
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Generate always yields a report for a valid request. The only error is a
// *RequestError for a submission missing identity fields.
func (c *Cascade) Generate(ctx context.Context, uc UserContext) (CascadeResult, error) {
	if err := uc.Validate(); err != nil {
		return CascadeResult{}, err
	}
	started := c.now()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "readiness.cascade")
	defer span.End()

	m := DeriveMetrics(uc)
	win, attempts := FirstSuccess(ctx, c.strategies(uc, m), c.now)
	for _, a := range attempts {
		c.recorder.ObserveTier(a.Tier, a.Success, a.Elapsed)
		c.logger.Info("generation tier attempted",
			zap.String("tier", string(a.Tier)),
			zap.Bool("success", a.Success),
			zap.Duration("elapsed", a.Elapsed),
			zap.String("error", a.Error),
		)
	}

	report := MinimalReport(uc)
	tier := TierMinimal
	if win.OK() {
		report, tier = *win.Report, win.Tier
	}
	c.logger.Info("generation tier won", zap.String("tier", string(tier)), zap.String("email", uc.Email))
	span.SetAttributes(attribute.String("readiness.tier", string(tier)))

	res := CascadeResult{
		Success:  true,
		Tier:     tier,
		Report:   report,
		Metrics:  m,
		Attempts: attempts,
	}

	id := c.newID()
	rec := StoredReport{
		ID:        id,
		CreatedAt: c.now().UTC(),
		Email:     uc.Email,
		Company:   uc.Company,
		Role:      uc.RoleTitle(),
		Language:  ResolveLanguage(uc.Language),
		Score:     uc.Score,
		Report:    report,
		Metrics:   &m,
	}
	n, err := c.persist(ctx, rec)
	res.PersistAttempts = n
	if err != nil {
		res.ID = FallbackIDPrefix + c.newID()
		res.PersistError = err.Error()
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence exhausted")
		c.logger.Error("report not persisted, returning in-memory copy",
			zap.String("fallback_id", res.ID), zap.Error(err))
	} else {
		res.ID = id
		res.Persisted = true
	}
	c.writeCaches(ctx, res.ID, report)

	res.Elapsed = c.now().Sub(started)
	c.recorder.ObserveGeneration(tier, res.Persisted, res.Elapsed)
	return res, nil
}

func (c *Cascade) strategies(uc UserContext, m DerivedMetrics) []TierStrategy {
	return []TierStrategy{
		{Tier: TierPipeline, Run: func(ctx context.Context) TierResult { return c.runPipeline(ctx, uc) }},
		{Tier: TierSingleShot, Run: func(ctx context.Context) TierResult { return c.runSingleShot(ctx, uc, m) }},
		{Tier: TierSynthesized, Run: func(context.Context) TierResult {
			r := c.synth.Generate(uc, m)
			return TierResult{Report: &r}
		}},
		{Tier: TierMinimal, Run: func(context.Context) TierResult {
			r := MinimalReport(uc)
			return TierResult{Report: &r}
		}},
	}
}

func (c *Cascade) runPipeline(ctx context.Context, uc UserContext) TierResult {
	if c.pipeline == nil {
		return TierResult{Err: ErrNoGenerator}
	}
	res := c.pipeline.GenerateReport(ctx, uc)
	for _, stage := range res.DefaultedStages {
		c.recorder.ObserveStageFallback(stage)
	}
	if !res.Success {
		c.logger.Warn("pipeline tier failed",
			zap.String("failed_stage", stageNameFromError(res.Err)),
			zap.Strings("stages_used", res.StagesUsed),
			zap.Error(res.Err),
		)
		return TierResult{Err: res.Err}
	}
	// A report compiled purely from static defaults is worse than the
	// profile-driven synthesis further down.
	if len(res.DefaultedStages) == len(res.StagesUsed) {
		return TierResult{Err: fmt.Errorf("all %d stages fell back to defaults", len(res.StagesUsed))}
	}
	return TierResult{Report: res.Report}
}

func (c *Cascade) runSingleShot(ctx context.Context, uc UserContext, m DerivedMetrics) TierResult {
	if c.gen == nil {
		return TierResult{Err: ErrNoGenerator}
	}
	ctx, span := otel.Tracer(tracerName).Start(ctx, "readiness.single_shot")
	defer span.End()

	cat := catalogFor(uc.Language)
	prompt := fmt.Sprintf("Write a complete AI readiness report for %s at %s.\n\n%s\n%s\n\n%s",
		uc.DisplayName(), uc.Company, profileBlock(uc, m, cat), canonicalSchemaPrompt, languageInstruction(cat))
	raw, err := generate(ctx, c.gen, string(TierSingleShot), prompt)
	if err != nil {
		return TierResult{Err: err}
	}
	parsed, err := ParseCanonicalReport(raw, uc.Language)
	if err != nil {
		return TierResult{Err: err}
	}
	if parsed.Repaired {
		c.logger.Info("single-shot report repaired",
			zap.String("strategy", parsed.Strategy),
			zap.Strings("defaulted", parsed.DefaultedFields),
		)
	}
	return TierResult{Report: &parsed.Report}
}

func (c *Cascade) persist(ctx context.Context, rec StoredReport) (int, error) {
	if c.store == nil {
		return 0, &PersistenceError{Attempts: 0, Err: errors.New("no durable store configured")}
	}
	ctx, span := otel.Tracer(tracerName).Start(ctx, "readiness.persist")
	defer span.End()

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		err := c.store.Save(ctx, rec)
		c.recorder.ObservePersistAttempt(err == nil)
		if err == nil {
			span.SetAttributes(attribute.Int("readiness.persist_attempts", attempt))
			return attempt, nil
		}
		lastErr = err
		c.logger.Warn("persist attempt failed", zap.Int("attempt", attempt), zap.String("id", rec.ID), zap.Error(err))
		if attempt < c.attempts {
			if serr := c.sleep(ctx, c.delay); serr != nil {
				return attempt, &PersistenceError{Attempts: attempt, Err: serr}
			}
		}
	}
	return c.attempts, &PersistenceError{Attempts: c.attempts, Err: lastErr}
}

func (c *Cascade) writeCaches(ctx context.Context, id string, report Report) {
	blob, err := json.Marshal(report)
	if err != nil {
		c.logger.Warn("cache write skipped", zap.String("id", id), zap.Error(err))
		return
	}
	for i, cache := range c.caches {
		if cache == nil {
			continue
		}
		if err := cache.Set(ctx, ReportCacheKey(id), string(blob)); err != nil {
			c.logger.Warn("cache write failed", zap.Int("cache", i), zap.String("id", id), zap.Error(err))
		}
	}
}
