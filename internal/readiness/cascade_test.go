package readiness

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

type countingRecorder struct {
	tiers     map[Tier][]bool
	fallbacks []string
	persists  []bool
	generated []Tier
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{tiers: map[Tier][]bool{}}
}

func (r *countingRecorder) ObserveTier(tier Tier, success bool, _ time.Duration) {
	r.tiers[tier] = append(r.tiers[tier], success)
}
func (r *countingRecorder) ObserveStageFallback(stage string)  { r.fallbacks = append(r.fallbacks, stage) }
func (r *countingRecorder) ObservePersistAttempt(success bool) { r.persists = append(r.persists, success) }
func (r *countingRecorder) ObserveGeneration(tier Tier, _ bool, _ time.Duration) {
	r.generated = append(r.generated, tier)
}

func newTestCascade(t *testing.T, cfg CascadeConfig) (*Cascade, *[]time.Duration) {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = zaptest.NewLogger(t)
	}
	c := NewCascade(cfg)
	var slept []time.Duration
	c.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	c.now = func() time.Time { return fixedNow }
	n := 0
	c.newID = func() string {
		n++
		return "id-" + string(rune('0'+n))
	}
	return c, &slept
}

func TestCascadePipelineWinsAndPersists(t *testing.T) {
	store := newMemoryStore()
	cache := newMapCache()
	rec := newCountingRecorder()
	c, _ := newTestCascade(t, CascadeConfig{
		Generator: newQueue(diagnosticJSON, planningJSON, canonicalJSON),
		Store:     store,
		Caches:    []TextCache{cache},
		Recorder:  rec,
	})

	res, err := c.Generate(context.Background(), sampleUser(LanguageEnglish))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, TierPipeline, res.Tier)
	assert.True(t, res.Persisted)
	assert.Equal(t, 1, res.PersistAttempts)
	assert.Equal(t, "id-1", res.ID)
	require.Len(t, res.Attempts, 1)
	assert.True(t, res.Attempts[0].Success)

	saved, ok := store.records["id-1"]
	require.True(t, ok)
	assert.Equal(t, "dana@example.com", saved.Email)
	assert.Equal(t, fixedNow, saved.CreatedAt)
	require.NotNil(t, saved.Metrics)
	assert.Equal(t, 7650.0, saved.Metrics.MonthlySavings)

	raw, ok, _ := cache.Get(context.Background(), ReportCacheKey("id-1"))
	require.True(t, ok)
	var cached Report
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	assert.Equal(t, res.Report, cached)

	assert.Equal(t, []bool{true}, rec.tiers[TierPipeline])
	assert.Equal(t, []Tier{TierPipeline}, rec.generated)
}

func TestCascadeSingleShotWhenEveryStageDefaults(t *testing.T) {
	down := errors.New("upstream 503")
	rec := newCountingRecorder()
	c, _ := newTestCascade(t, CascadeConfig{
		Generator: newQueue(down, down, down, canonicalJSON),
		Store:     newMemoryStore(),
		Recorder:  rec,
	})

	res, err := c.Generate(context.Background(), sampleUser(LanguageEnglish))
	require.NoError(t, err)
	assert.Equal(t, TierSingleShot, res.Tier)
	require.Len(t, res.Attempts, 2)
	assert.False(t, res.Attempts[0].Success)
	assert.Contains(t, res.Attempts[0].Error, "fell back to defaults")
	assert.Equal(t, []string{StageDiagnostic, StagePlanning, StageNarrative}, rec.fallbacks)
}

func TestCascadeSynthesizesWithoutGenerator(t *testing.T) {
	c, _ := newTestCascade(t, CascadeConfig{Store: newMemoryStore()})

	res, err := c.Generate(context.Background(), sampleUser(LanguageSpanish))
	require.NoError(t, err)
	assert.Equal(t, TierSynthesized, res.Tier)
	assert.True(t, res.Persisted)
	require.Len(t, res.Attempts, 3)
	assert.Contains(t, res.Attempts[0].Error, ErrNoGenerator.Error())
	assert.NoError(t, res.Report.Validate())
}

func TestCascadeUnparseableSingleShotFallsThrough(t *testing.T) {
	down := errors.New("timeout")
	c, _ := newTestCascade(t, CascadeConfig{
		Generator: newQueue(down, down, down, "I cannot help with that."),
		Store:     newMemoryStore(),
	})
	res, err := c.Generate(context.Background(), sampleUser(LanguageEnglish))
	require.NoError(t, err)
	assert.Equal(t, TierSynthesized, res.Tier)
	assert.False(t, res.Attempts[1].Success)
}

func TestCascadeSurvivesStorageFailures(t *testing.T) {
	store := newMemoryStore()
	store.failures = 3
	cache := newMapCache()
	rec := newCountingRecorder()
	c, slept := newTestCascade(t, CascadeConfig{
		Store:        store,
		Caches:       []TextCache{cache},
		Recorder:     rec,
		PersistDelay: time.Second,
	})

	res, err := c.Generate(context.Background(), sampleUser(LanguageEnglish))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.NoError(t, res.Report.Validate())
	assert.False(t, res.Persisted)
	assert.Equal(t, 3, res.PersistAttempts)
	assert.Equal(t, 3, store.saves)
	assert.True(t, strings.HasPrefix(res.ID, FallbackIDPrefix), res.ID)
	assert.Contains(t, res.PersistError, "database is locked")
	assert.Equal(t, []time.Duration{time.Second, time.Second}, *slept)
	assert.Equal(t, []bool{false, false, false}, rec.persists)

	_, ok, _ := cache.Get(context.Background(), ReportCacheKey(res.ID))
	assert.True(t, ok, "fallback identifier is still cached")
}

func TestCascadeRecoversAfterTransientStorageFailure(t *testing.T) {
	store := newMemoryStore()
	store.failures = 2
	c, slept := newTestCascade(t, CascadeConfig{Store: store})

	res, err := c.Generate(context.Background(), sampleUser(LanguageEnglish))
	require.NoError(t, err)
	assert.True(t, res.Persisted)
	assert.Equal(t, 3, res.PersistAttempts)
	assert.Equal(t, "id-1", res.ID)
	assert.Len(t, *slept, 2)
}

func TestCascadeWithoutStoreUsesFallbackID(t *testing.T) {
	c, _ := newTestCascade(t, CascadeConfig{})
	res, err := c.Generate(context.Background(), sampleUser(LanguageEnglish))
	require.NoError(t, err)
	assert.False(t, res.Persisted)
	assert.Equal(t, 0, res.PersistAttempts)
	assert.True(t, strings.HasPrefix(res.ID, FallbackIDPrefix))
}

func TestCascadeCacheWriteFailureIsNotFatal(t *testing.T) {
	cache := newMapCache()
	cache.setErr = errors.New("redis: connection refused")
	c, _ := newTestCascade(t, CascadeConfig{Store: newMemoryStore(), Caches: []TextCache{cache, nil}})
	res, err := c.Generate(context.Background(), sampleUser(LanguageEnglish))
	require.NoError(t, err)
	assert.True(t, res.Persisted)
}

func TestCascadeRejectsMissingIdentity(t *testing.T) {
	c, _ := newTestCascade(t, CascadeConfig{})
	uc := sampleUser(LanguageEnglish)
	uc.Email = ""
	uc.Company = " "

	_, err := c.Generate(context.Background(), uc)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, []string{"email", "company"}, reqErr.Missing)
}

func TestFirstSuccess(t *testing.T) {
	valid := MinimalReport(UserContext{})
	calls := []Tier{}
	strategy := func(tier Tier, res TierResult) TierStrategy {
		return TierStrategy{Tier: tier, Run: func(context.Context) TierResult {
			calls = append(calls, tier)
			return res
		}}
	}

	win, attempts := FirstSuccess(context.Background(), []TierStrategy{
		strategy(TierPipeline, TierResult{Err: errors.New("no")}),
		strategy(TierSingleShot, TierResult{Report: &Report{ExecutiveSummary: "partial"}}),
		strategy(TierSynthesized, TierResult{}),
		strategy(TierMinimal, TierResult{Report: &valid}),
	}, nil)

	assert.True(t, win.OK())
	assert.Equal(t, TierMinimal, win.Tier)
	assert.Equal(t, []Tier{TierPipeline, TierSingleShot, TierSynthesized, TierMinimal}, calls)
	require.Len(t, attempts, 4)
	assert.Contains(t, attempts[1].Error, "missing")
	assert.Equal(t, "tier returned no report", attempts[2].Error)

	calls = nil
	win, attempts = FirstSuccess(context.Background(), []TierStrategy{
		strategy(TierSynthesized, TierResult{Report: &valid}),
		strategy(TierMinimal, TierResult{Report: &valid}),
	}, nil)
	assert.Equal(t, TierSynthesized, win.Tier)
	assert.Len(t, attempts, 1)
	assert.Equal(t, []Tier{TierSynthesized}, calls)
}

func TestCascadeLogsFailedPipelineStage(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	c, _ := newTestCascade(t, CascadeConfig{
		Generator: newQueue(canonicalJSON),
		Store:     newMemoryStore(),
		Logger:    zap.New(core),
	})
	c.pipeline = NewOrchestrator(failingDiagnoser{}, NewActionPlanningStage(nil, nil), NewNarrativeStage(nil, nil), nil)

	res, err := c.Generate(context.Background(), sampleUser(LanguageEnglish))
	require.NoError(t, err)
	assert.Equal(t, TierSingleShot, res.Tier)

	failed := logs.FilterMessage("pipeline tier failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, StageDiagnostic, failed[0].ContextMap()["failed_stage"])
}
