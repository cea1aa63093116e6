package core

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"townhub-backend/internal/db"
	"townhub-backend/pkg/cache"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 60 * time.Second
)

// statsService implements StatsService. The counters are cheap aggregation
// queries, but the dashboard polls them, so results sit behind a short
// cache when one is configured.
type statsService struct {
	statsRepo    db.StatsRepository
	donationRepo db.DonationRepository
	cache        cache.Cache
	logger       *zap.Logger
}

// NewStatsService creates a new StatsService instance. cache may be nil, in
// which case every call hits Firestore.
func NewStatsService(statsRepo db.StatsRepository, donationRepo db.DonationRepository, c cache.Cache, logger *zap.Logger) StatsService {
	return &statsService{
		statsRepo:    statsRepo,
		donationRepo: donationRepo,
		cache:        c,
		logger:       logger,
	}
}

func (s *statsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, statsCacheKey); err != nil {
			s.logger.Warn("stats cache read failed", zap.Error(err))
		} else if raw != "" {
			var stats DashboardStats
			if err := json.Unmarshal([]byte(raw), &stats); err == nil {
				return &stats, nil
			}
			s.logger.Warn("discarding malformed cached stats")
		}
	}

	stats := &DashboardStats{}
	counts := []struct {
		collection string
		dest       *int64
	}{
		{"users", &stats.Users},
		{"submissions", &stats.Submissions},
		{"listings", &stats.Listings},
		{"polls", &stats.Polls},
		{"jobs", &stats.Jobs},
	}
	for _, c := range counts {
		n, err := s.statsRepo.Count(ctx, c.collection)
		if err != nil {
			return nil, err
		}
		*c.dest = n
	}

	total, err := s.donationRepo.Total(ctx)
	if err != nil {
		return nil, err
	}
	stats.Donations = total

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, string(raw), statsCacheTTL); err != nil {
				s.logger.Warn("stats cache write failed", zap.Error(err))
			}
		}
	}

	return stats, nil
}
