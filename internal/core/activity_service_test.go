package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"townhub-backend/internal/models"
)

func testSources() map[string]models.SourceConfig {
	return map[string]models.SourceConfig{
		"users":       {Label: "New registration", Category: "registration", SortField: "createdAt", TitleField: "displayName"},
		"submissions": {Label: "New submission", Category: "submission", SortField: "createdAt", TitleField: "description"},
	}
}

func item(source, id string, ts time.Time) models.ActivityItem {
	return models.ActivityItem{Source: source, ID: id, Timestamp: ts}
}

func TestActivityFeedMergesSortedNewestFirst(t *testing.T) {
	repo := newFakeFeedRepo()
	svc := NewActivityService(repo, testSources(), 5, 10, zap.NewNop())

	var last []models.ActivityItem
	stop := svc.Subscribe(context.Background(), func(items []models.ActivityItem) {
		last = items
	})
	defer stop()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.emit("users", []models.ActivityItem{
		item("users", "u1", base.Add(1*time.Minute)),
		item("users", "u2", base.Add(3*time.Minute)),
	}, nil)
	repo.emit("submissions", []models.ActivityItem{
		item("submissions", "s1", base.Add(2*time.Minute)),
		item("submissions", "s2", base.Add(4*time.Minute)),
	}, nil)

	require.Len(t, last, 4)
	assert.Equal(t, "s2", last[0].ID)
	assert.Equal(t, "u2", last[1].ID)
	assert.Equal(t, "s1", last[2].ID)
	assert.Equal(t, "u1", last[3].ID)
	for i := 1; i < len(last); i++ {
		assert.False(t, last[i].Timestamp.After(last[i-1].Timestamp),
			"feed must be non-increasing by timestamp")
	}
}

func TestActivityFeedTruncatesToLimit(t *testing.T) {
	repo := newFakeFeedRepo()
	svc := NewActivityService(repo, testSources(), 5, 3, zap.NewNop())

	var last []models.ActivityItem
	stop := svc.Subscribe(context.Background(), func(items []models.ActivityItem) {
		last = items
	})
	defer stop()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.emit("users", []models.ActivityItem{
		item("users", "u1", base.Add(1*time.Minute)),
		item("users", "u2", base.Add(2*time.Minute)),
		item("users", "u3", base.Add(3*time.Minute)),
	}, nil)
	repo.emit("submissions", []models.ActivityItem{
		item("submissions", "s1", base.Add(4*time.Minute)),
		item("submissions", "s2", base.Add(5*time.Minute)),
	}, nil)

	require.Len(t, last, 3)
	assert.Equal(t, "s2", last[0].ID)
	assert.Equal(t, "s1", last[1].ID)
	assert.Equal(t, "u3", last[2].ID)
}

func TestActivityFeedDropsItemsWithoutTimestamp(t *testing.T) {
	repo := newFakeFeedRepo()
	svc := NewActivityService(repo, testSources(), 5, 10, zap.NewNop())

	var last []models.ActivityItem
	stop := svc.Subscribe(context.Background(), func(items []models.ActivityItem) {
		last = items
	})
	defer stop()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.emit("users", []models.ActivityItem{
		item("users", "good", base),
		item("users", "no-ts", time.Time{}),
	}, nil)

	require.Len(t, last, 1)
	assert.Equal(t, "good", last[0].ID)
}

func TestActivityFeedSurvivesSourceFailure(t *testing.T) {
	repo := newFakeFeedRepo()
	svc := NewActivityService(repo, testSources(), 5, 10, zap.NewNop())

	var last []models.ActivityItem
	stop := svc.Subscribe(context.Background(), func(items []models.ActivityItem) {
		last = items
	})
	defer stop()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.emit("users", []models.ActivityItem{item("users", "u1", base)}, nil)
	repo.emit("submissions", nil, assert.AnError)

	// The failed source contributes nothing; the healthy one stays.
	require.Len(t, last, 1)
	assert.Equal(t, "u1", last[0].ID)
}

func TestActivityFeedFailedSourceBufferCleared(t *testing.T) {
	repo := newFakeFeedRepo()
	svc := NewActivityService(repo, testSources(), 5, 10, zap.NewNop())

	var last []models.ActivityItem
	stop := svc.Subscribe(context.Background(), func(items []models.ActivityItem) {
		last = items
	})
	defer stop()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.emit("submissions", []models.ActivityItem{item("submissions", "s1", base)}, nil)
	require.Len(t, last, 1)

	// An error after a good delivery empties that source's buffer.
	repo.emit("submissions", nil, assert.AnError)
	assert.Empty(t, last)
}

func TestActivityFeedStopIsIdempotent(t *testing.T) {
	repo := newFakeFeedRepo()
	svc := NewActivityService(repo, testSources(), 5, 10, zap.NewNop())

	stop := svc.Subscribe(context.Background(), func([]models.ActivityItem) {})
	stop()
	stop()

	for source, n := range repo.stops {
		assert.Equal(t, 1, n, "source %s unsubscribed more than once", source)
	}
	assert.Len(t, repo.stops, 2)
}
