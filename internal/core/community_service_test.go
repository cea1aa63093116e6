package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"townhub-backend/internal/models"
)

func communityFixture(t *testing.T) (CommunityService, *fakeListingRepo, *fakeDonationRepo, *fakeNotificationRepo) {
	t.Helper()
	listingRepo := newFakeListingRepo()
	donationRepo := &fakeDonationRepo{}
	notifRepo := &fakeNotificationRepo{}
	notifications := NewNotificationService(notifRepo, nil, "", 10, zap.NewNop())
	svc := NewCommunityService(newFakeSubmissionRepo(), listingRepo, donationRepo, notifications)
	return svc, listingRepo, donationRepo, notifRepo
}

func TestCreateSubmissionNotifiesByVariant(t *testing.T) {
	svc, _, _, notifRepo := communityFixture(t)
	ctx := context.Background()

	_, err := svc.CreateSubmission(ctx, &models.Submission{
		Type:        models.SubmissionReport,
		UserID:      "alice",
		UserName:    "Alice",
		Description: "pothole on main street",
		Location:    "Main St 12",
	})
	require.NoError(t, err)

	_, err = svc.CreateSubmission(ctx, &models.Submission{
		Type:        models.SubmissionSuggestion,
		UserID:      "bob",
		UserName:    "Bob",
		Subject:     "More benches",
		Description: "the park needs benches",
	})
	require.NoError(t, err)

	require.Len(t, notifRepo.created, 2)
	assert.Equal(t, models.NotificationReport, notifRepo.created[0].Type)
	assert.Equal(t, models.NotificationSuggestion, notifRepo.created[1].Type)
}

func TestCreateSubmissionRejectsInvalidVariant(t *testing.T) {
	svc, _, _, notifRepo := communityFixture(t)

	// A report without a location fails at the store boundary.
	_, err := svc.CreateSubmission(context.Background(), &models.Submission{
		Type:        models.SubmissionReport,
		UserID:      "alice",
		Description: "something broke",
	})
	assert.ErrorIs(t, err, models.ErrMissingLocation)
	assert.Empty(t, notifRepo.created)
}

func TestSubmissionStartsOpenAndCanBeResolved(t *testing.T) {
	svc, _, _, _ := communityFixture(t)
	ctx := context.Background()

	sub, err := svc.CreateSubmission(ctx, &models.Submission{
		Type:        models.SubmissionSuggestion,
		UserID:      "bob",
		Subject:     "s",
		Description: "d",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionOpen, sub.Status)

	require.NoError(t, svc.ResolveSubmission(ctx, sub.ID))
	assert.ErrorIs(t, svc.ResolveSubmission(ctx, "ghost"), ErrSubmissionNotFound)
}

func TestListingOwnershipChecks(t *testing.T) {
	svc, _, _, _ := communityFixture(t)
	ctx := context.Background()

	listing, err := svc.CreateListing(ctx, &models.Listing{
		OwnerID:     "alice",
		Title:       "Bike",
		Description: "barely used",
		Price:       120,
	})
	require.NoError(t, err)

	// A stranger cannot touch it.
	err = svc.DeleteListing(ctx, "mallory", false, listing.ID)
	assert.ErrorIs(t, err, ErrNotListingOwner)

	update := &models.Listing{ID: listing.ID, Title: "Bike", Description: "price drop", Price: 100}
	err = svc.UpdateListing(ctx, "mallory", false, update)
	assert.ErrorIs(t, err, ErrNotListingOwner)

	// The owner can, and an admin can regardless of ownership.
	require.NoError(t, svc.UpdateListing(ctx, "alice", false, update))
	assert.Equal(t, "alice", update.OwnerID, "owner must survive an update")
	require.NoError(t, svc.DeleteListing(ctx, "admin", true, listing.ID))
}

func TestCreateListingValidation(t *testing.T) {
	svc, _, _, _ := communityFixture(t)

	_, err := svc.CreateListing(context.Background(), &models.Listing{Title: "x", Price: -1})
	assert.ErrorIs(t, err, ErrInvalidListing)
}

func TestDonationTotal(t *testing.T) {
	svc, _, _, _ := communityFixture(t)
	ctx := context.Background()

	_, err := svc.CreateDonation(ctx, &models.Donation{DonorName: "Ada", Amount: 50})
	require.NoError(t, err)
	_, err = svc.CreateDonation(ctx, &models.Donation{DonorName: "Bob", Amount: 25})
	require.NoError(t, err)

	_, err = svc.CreateDonation(ctx, &models.Donation{DonorName: "Eve", Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidDonation)

	total, err := svc.DonationTotal(ctx)
	require.NoError(t, err)
	assert.Equal(t, 75.0, total)
}
