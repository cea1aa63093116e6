package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"townhub-backend/internal/models"
)

const donationsCollection = "donations"

// firestoreDonationRepository implements DonationRepository using Firestore.
type firestoreDonationRepository struct {
	client *firestore.Client
}

// NewFirestoreDonationRepository creates a new donation repository.
func NewFirestoreDonationRepository(client *firestore.Client) DonationRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for DonationRepository.")
	}
	return &firestoreDonationRepository{client: client}
}

func (r *firestoreDonationRepository) Create(ctx context.Context, donation *models.Donation) (string, error) {
	docRef := r.client.Collection(donationsCollection).NewDoc()
	donation.ID = docRef.ID
	if _, err := docRef.Create(ctx, donation); err != nil {
		return "", fmt.Errorf("failed to create donation: %w", err)
	}
	return docRef.ID, nil
}

func (r *firestoreDonationRepository) List(ctx context.Context, limit int) ([]*models.Donation, error) {
	query := r.client.Collection(donationsCollection).OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	iter := query.Documents(ctx)
	defer iter.Stop()

	var donations []*models.Donation
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate donations: %w", err)
		}
		var donation models.Donation
		if err := doc.DataTo(&donation); err != nil {
			log.Printf("Error decoding donation (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		donation.ID = doc.Ref.ID
		donations = append(donations, &donation)
	}
	return donations, nil
}

// Total sums every recorded donation. Iterating is acceptable at this
// scale; the dashboard caches the result anyway.
func (r *firestoreDonationRepository) Total(ctx context.Context) (float64, error) {
	iter := r.client.Collection(donationsCollection).Documents(ctx)
	defer iter.Stop()

	var total float64
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to iterate donations for total: %w", err)
		}
		var donation models.Donation
		if err := doc.DataTo(&donation); err != nil {
			log.Printf("Error decoding donation (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		total += donation.Amount
	}
	return total, nil
}
