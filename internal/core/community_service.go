package core

import (
	"context"
	"errors"
	"fmt"

	"townhub-backend/internal/db"
	"townhub-backend/internal/models"
)

// Custom errors for the CommunityService.
var (
	ErrListingNotFound    = errors.New("listing not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrNotListingOwner    = errors.New("user does not own this listing")
	ErrInvalidListing     = errors.New("listing requires a title, a description and a non-negative price")
	ErrInvalidDonation    = errors.New("donation requires a donor name and a positive amount")
)

// communityService implements CommunityService.
type communityService struct {
	submissionRepo db.SubmissionRepository
	listingRepo    db.ListingRepository
	donationRepo   db.DonationRepository
	notifications  NotificationService
}

// NewCommunityService creates a new CommunityService instance.
func NewCommunityService(
	submissionRepo db.SubmissionRepository,
	listingRepo db.ListingRepository,
	donationRepo db.DonationRepository,
	notifications NotificationService,
) CommunityService {
	return &communityService{
		submissionRepo: submissionRepo,
		listingRepo:    listingRepo,
		donationRepo:   donationRepo,
		notifications:  notifications,
	}
}

// CreateSubmission validates the variant shape, stores the submission and
// fans out an admin notification typed after the submission variant.
func (s *communityService) CreateSubmission(ctx context.Context, sub *models.Submission) (*models.Submission, error) {
	sub.Status = models.SubmissionOpen
	id, err := s.submissionRepo.Create(ctx, sub)
	if err != nil {
		return nil, err
	}
	sub.ID = id

	notifType := models.NotificationSuggestion
	if sub.Type == models.SubmissionReport {
		notifType = models.NotificationReport
	}
	s.notifications.Notify(ctx, notifType,
		fmt.Sprintf("New %s from a resident", sub.Type), sub.UserName)

	return sub, nil
}

func (s *communityService) ListSubmissions(ctx context.Context) ([]*models.Submission, error) {
	return s.submissionRepo.List(ctx)
}

func (s *communityService) ListUserSubmissions(ctx context.Context, userID string) ([]*models.Submission, error) {
	return s.submissionRepo.ListByUser(ctx, userID)
}

func (s *communityService) ResolveSubmission(ctx context.Context, id string) error {
	if err := s.submissionRepo.SetStatus(ctx, id, models.SubmissionResolved); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrSubmissionNotFound, id)
		}
		return err
	}
	return nil
}

func (s *communityService) CreateListing(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	if listing.Title == "" || listing.Description == "" || listing.Price < 0 {
		return nil, ErrInvalidListing
	}
	id, err := s.listingRepo.Create(ctx, listing)
	if err != nil {
		return nil, err
	}
	listing.ID = id
	return listing, nil
}

func (s *communityService) ListListings(ctx context.Context, limit int) ([]*models.Listing, error) {
	return s.listingRepo.List(ctx, limit)
}

// UpdateListing lets the owner (or an admin) modify a listing.
func (s *communityService) UpdateListing(ctx context.Context, userID string, isAdmin bool, listing *models.Listing) error {
	existing, err := s.listingRepo.GetByID(ctx, listing.ID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrListingNotFound, listing.ID)
		}
		return err
	}
	if existing.OwnerID != userID && !isAdmin {
		return fmt.Errorf("%w: %s", ErrNotListingOwner, listing.ID)
	}
	listing.OwnerID = existing.OwnerID
	return s.listingRepo.Update(ctx, listing)
}

// DeleteListing lets the owner (or an admin) remove a listing.
func (s *communityService) DeleteListing(ctx context.Context, userID string, isAdmin bool, id string) error {
	existing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrListingNotFound, id)
		}
		return err
	}
	if existing.OwnerID != userID && !isAdmin {
		return fmt.Errorf("%w: %s", ErrNotListingOwner, id)
	}
	return s.listingRepo.Delete(ctx, id)
}

func (s *communityService) CreateDonation(ctx context.Context, donation *models.Donation) (*models.Donation, error) {
	if donation.DonorName == "" || donation.Amount <= 0 {
		return nil, ErrInvalidDonation
	}
	id, err := s.donationRepo.Create(ctx, donation)
	if err != nil {
		return nil, err
	}
	donation.ID = id
	return donation, nil
}

func (s *communityService) ListDonations(ctx context.Context, limit int) ([]*models.Donation, error) {
	return s.donationRepo.List(ctx, limit)
}

func (s *communityService) DonationTotal(ctx context.Context) (float64, error) {
	return s.donationRepo.Total(ctx)
}
