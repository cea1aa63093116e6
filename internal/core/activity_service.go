package core

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"townhub-backend/internal/db"
	"townhub-backend/internal/models"
)

// Feed bounds. Each source keeps a small window so the merge cost stays
// proportional to sources*window, not collection size.
const (
	DefaultSourceWindow = 5
	DefaultFeedLimit    = 10
)

// DefaultActivitySources is the set of collections the admin dashboard
// watches, with the field carrying each one's creation timestamp and the
// field surfaced as the item title.
func DefaultActivitySources() map[string]models.SourceConfig {
	return map[string]models.SourceConfig{
		"users": {
			Label: "New registration", Category: "registration",
			SortField: "createdAt", TitleField: "displayName",
		},
		"submissions": {
			Label: "New submission", Category: "submission",
			SortField: "createdAt", TitleField: "description",
		},
		"applications": {
			Label: "Job application", Category: "application",
			SortField: "appliedAt", TitleField: "fullName",
		},
		"listings": {
			Label: "Marketplace listing", Category: "listing",
			SortField: "createdAt", TitleField: "title",
		},
		"donations": {
			Label: "Donation", Category: "donation",
			SortField: "createdAt", TitleField: "donorName",
		},
	}
}

// activityService implements ActivityService.
type activityService struct {
	feedRepo db.FeedRepository
	sources  map[string]models.SourceConfig
	window   int
	limit    int
	logger   *zap.Logger
}

// NewActivityService creates the activity feed aggregator. window and limit
// fall back to the defaults when non-positive.
func NewActivityService(feedRepo db.FeedRepository, sources map[string]models.SourceConfig, window, limit int, logger *zap.Logger) ActivityService {
	if window <= 0 {
		window = DefaultSourceWindow
	}
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return &activityService{
		feedRepo: feedRepo,
		sources:  sources,
		window:   window,
		limit:    limit,
		logger:   logger,
	}
}

// Subscribe opens one listener per configured source and re-merges on every
// source update. A source that errors degrades to an empty buffer and the
// merge continues with the remaining sources.
func (s *activityService) Subscribe(ctx context.Context, fn func([]models.ActivityItem)) StopFunc {
	agg := &feedMerge{
		buffers: make(map[string][]models.ActivityItem, len(s.sources)),
		limit:   s.limit,
		deliver: fn,
	}

	stops := make([]db.Unsubscribe, 0, len(s.sources))
	for name, cfg := range s.sources {
		name := name
		stop := s.feedRepo.WatchSource(ctx, name, cfg, s.window, func(items []models.ActivityItem, err error) {
			if err != nil {
				s.logger.Warn("activity source failed, continuing without it",
					zap.String("source", name), zap.Error(err))
				items = nil
			}
			agg.update(name, items)
		})
		stops = append(stops, stop)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for _, stop := range stops {
				stop()
			}
		})
	}
}

// feedMerge holds the per-source buffers and recomputes the merged feed on
// every update. Deliveries run under the lock, so a subscriber never sees
// two merges interleave or arrive out of recompute order.
type feedMerge struct {
	mu      sync.Mutex
	buffers map[string][]models.ActivityItem
	limit   int
	deliver func([]models.ActivityItem)
}

func (m *feedMerge) update(source string, items []models.ActivityItem) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.buffers[source] = items

	merged := make([]models.ActivityItem, 0, len(m.buffers)*m.limit)
	for _, buf := range m.buffers {
		for _, item := range buf {
			if item.Timestamp.IsZero() {
				continue
			}
			merged = append(merged, item)
		}
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})
	if len(merged) > m.limit {
		merged = merged[:m.limit]
	}

	m.deliver(merged)
}
