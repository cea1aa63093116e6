package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"townhub-backend/internal/models"
)

func TestDashboardCountsAndDonationTotal(t *testing.T) {
	statsRepo := &fakeStatsRepo{counts: map[string]int64{
		"users": 12, "submissions": 3, "listings": 7, "polls": 2, "jobs": 1,
	}}
	donationRepo := &fakeDonationRepo{}
	_, err := donationRepo.Create(context.Background(), &models.Donation{DonorName: "Ada", Amount: 40})
	require.NoError(t, err)

	svc := NewStatsService(statsRepo, donationRepo, nil, zap.NewNop())

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.Users)
	assert.Equal(t, int64(3), stats.Submissions)
	assert.Equal(t, int64(7), stats.Listings)
	assert.Equal(t, int64(2), stats.Polls)
	assert.Equal(t, int64(1), stats.Jobs)
	assert.Equal(t, 40.0, stats.Donations)
}

func TestDashboardServedFromCacheOnSecondCall(t *testing.T) {
	statsRepo := &fakeStatsRepo{counts: map[string]int64{"users": 5}}
	svc := NewStatsService(statsRepo, &fakeDonationRepo{}, newFakeCache(), zap.NewNop())
	ctx := context.Background()

	first, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	callsAfterFirst := statsRepo.calls

	second, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, callsAfterFirst, statsRepo.calls, "second call must not hit the store")
}

func TestDashboardWithoutCacheAlwaysCounts(t *testing.T) {
	statsRepo := &fakeStatsRepo{counts: map[string]int64{"users": 5}}
	svc := NewStatsService(statsRepo, &fakeDonationRepo{}, nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	_, err = svc.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, 10, statsRepo.calls, "five collections counted per call")
}
