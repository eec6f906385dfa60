package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/joelkehle/aireadiness/internal/cache"
	"github.com/joelkehle/aireadiness/internal/config"
	"github.com/joelkehle/aireadiness/internal/readiness"
	"github.com/joelkehle/aireadiness/internal/store"
	"github.com/joelkehle/aireadiness/internal/telemetry"
)

// app holds the wired components shared by the subcommands.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	registry  *prometheus.Registry
	store     *store.SQLStore
	redis     *cache.RedisCache
	caches    []readiness.TextCache
	cascade   *readiness.Cascade
	reports   *readiness.ReportService
	questions []readiness.QuestionSpec
	closers   []func() error
}

type appOptions struct {
	offline   bool
	skipStore bool
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts appOptions) (*app, error) {
	a := &app{cfg: cfg, logger: logger, registry: prometheus.NewRegistry()}
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	questions, err := loadQuestions(cfg)
	if err != nil {
		return nil, err
	}
	a.questions = questions

	if !opts.skipStore {
		st, err := store.Open(cfg.Store.Driver, cfg.Store.DSN)
		if err != nil {
			// Generation still works without durable storage; reports get
			// fallback identifiers and live in the caches.
			logger.Error("durable store unavailable", zap.String("driver", cfg.Store.Driver), zap.Error(err))
		} else {
			a.store = st
			a.closers = append(a.closers, st.Close)
		}
	}

	if cfg.Redis.Address != "" {
		rc := cache.NewRedis(cache.RedisConfig{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Cache.TTL,
		})
		if err := rc.Ping(ctx); err != nil {
			logger.Warn("redis cache unreachable at startup", zap.String("address", cfg.Redis.Address), zap.Error(err))
		}
		a.redis = rc
		a.caches = append(a.caches, rc)
		a.closers = append(a.closers, rc.Close)
	}
	// Reports are always written to two independent caches. Without Redis a
	// second LRU, with its own capacity, stands in for it.
	if a.redis == nil {
		standby, err := cache.NewMemoryCache(cfg.Cache.MemorySize, cfg.Cache.TTL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("standby memory cache: %w", err)
		}
		a.caches = append(a.caches, standby)
	}
	mem, err := cache.NewMemoryCache(cfg.Cache.MemorySize, cfg.Cache.TTL)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("memory cache: %w", err)
	}
	a.caches = append(a.caches, mem)

	var gen readiness.TextGenerator
	if !opts.offline {
		g, err := readiness.NewAnthropicGenerator(readiness.AnthropicConfig{
			APIKey:    cfg.LLM.APIKey,
			Model:     cfg.LLM.Model,
			MaxTokens: cfg.LLM.MaxTokens,
			Timeout:   cfg.LLM.Timeout,
		})
		switch {
		case err == nil:
			gen = g
		case errors.Is(err, readiness.ErrNoGenerator):
			logger.Warn("no text service key configured, generating reports offline")
		default:
			a.Close()
			return nil, err
		}
	}

	var reportStore readiness.ReportStore
	if a.store != nil {
		reportStore = a.store
	}
	a.cascade = readiness.NewCascade(readiness.CascadeConfig{
		Generator:       gen,
		Store:           reportStore,
		Caches:          a.caches,
		Recorder:        telemetry.NewMetrics(a.registry),
		Logger:          logger,
		PersistAttempts: cfg.Persistence.Attempts,
		PersistDelay:    cfg.Persistence.Delay,
	})
	a.reports = readiness.NewReportService(reportStore, logger, a.caches...)
	return a, nil
}

func loadQuestions(cfg *config.Config) ([]readiness.QuestionSpec, error) {
	if cfg.Questions.File == "" {
		return readiness.DefaultQuestionBank(), nil
	}
	return readiness.LoadQuestionBank(cfg.Questions.File)
}

// health checks the durable store and the Redis cache when configured.
func (a *app) health(ctx context.Context) error {
	var errs []error
	if a.store != nil {
		if err := a.store.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", zap.Error(err))
		}
	}
	a.closers = nil
}
