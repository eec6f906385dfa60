package readiness

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// ReportService is the read path: durable store first, then the caches in
// order. A stored report that fails validation, for example because the store
// dropped a field, is replaced by a cached copy when one exists.
type ReportService struct {
	store  ReportStore
	caches []TextCache
	logger *zap.Logger
}

func NewReportService(store ReportStore, logger *zap.Logger, caches ...TextCache) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{store: store, caches: caches, logger: logger}
}

func (s *ReportService) Get(ctx context.Context, id string) (Report, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Report{}, ErrReportNotFound
	}

	var stored *Report
	if s.store != nil && !strings.HasPrefix(id, FallbackIDPrefix) {
		rec, err := s.store.Get(ctx, id)
		switch {
		case err == nil:
			verr := rec.Report.Validate()
			if verr == nil {
				return rec.Report, nil
			}
			s.logger.Warn("stored report incomplete, checking caches", zap.String("id", id), zap.Error(verr))
			stored = &rec.Report
		case errors.Is(err, ErrReportNotFound):
		default:
			s.logger.Warn("store read failed, checking caches", zap.String("id", id), zap.Error(err))
		}
	}

	for i, cache := range s.caches {
		if cache == nil {
			continue
		}
		raw, ok, err := cache.Get(ctx, ReportCacheKey(id))
		if err != nil {
			s.logger.Warn("cache read failed", zap.Int("cache", i), zap.String("id", id), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		var r Report
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			s.logger.Warn("cached report undecodable", zap.Int("cache", i), zap.String("id", id), zap.Error(err))
			continue
		}
		if r.Validate() == nil {
			return r, nil
		}
	}

	if stored != nil {
		return *stored, nil
	}
	return Report{}, ErrReportNotFound
}
