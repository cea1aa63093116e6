package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"townhub-backend/internal/models"
)

const listingsCollection = "listings"

// firestoreListingRepository implements ListingRepository using Firestore.
type firestoreListingRepository struct {
	client *firestore.Client
}

// NewFirestoreListingRepository creates a new listing repository.
func NewFirestoreListingRepository(client *firestore.Client) ListingRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ListingRepository.")
	}
	return &firestoreListingRepository{client: client}
}

func (r *firestoreListingRepository) Create(ctx context.Context, listing *models.Listing) (string, error) {
	docRef := r.client.Collection(listingsCollection).NewDoc()
	listing.ID = docRef.ID
	if _, err := docRef.Create(ctx, listing); err != nil {
		return "", fmt.Errorf("failed to create listing: %w", err)
	}
	return docRef.ID, nil
}

func (r *firestoreListingRepository) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	if id == "" {
		return nil, errors.New("listing ID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(listingsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("listing '%s': %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get listing '%s': %w", id, err)
	}
	var listing models.Listing
	if err := docSnap.DataTo(&listing); err != nil {
		return nil, fmt.Errorf("failed to decode listing '%s': %w", id, err)
	}
	listing.ID = docSnap.Ref.ID
	return &listing, nil
}

func (r *firestoreListingRepository) List(ctx context.Context, limit int) ([]*models.Listing, error) {
	query := r.client.Collection(listingsCollection).OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	return r.collect(ctx, query)
}

func (r *firestoreListingRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Listing, error) {
	if ownerID == "" {
		return nil, errors.New("ownerID cannot be empty for ListByOwner operation")
	}
	query := r.client.Collection(listingsCollection).
		Where("ownerId", "==", ownerID).
		OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, query)
}

func (r *firestoreListingRepository) collect(ctx context.Context, query firestore.Query) ([]*models.Listing, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var listings []*models.Listing
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate listings: %w", err)
		}
		var listing models.Listing
		if err := doc.DataTo(&listing); err != nil {
			log.Printf("Error decoding listing (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		listing.ID = doc.Ref.ID
		listings = append(listings, &listing)
	}
	return listings, nil
}

func (r *firestoreListingRepository) Update(ctx context.Context, listing *models.Listing) error {
	if listing.ID == "" {
		return errors.New("listing ID cannot be empty for Update operation")
	}
	_, err := r.client.Collection(listingsCollection).Doc(listing.ID).Set(ctx, listing, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update listing '%s': %w", listing.ID, err)
	}
	return nil
}

func (r *firestoreListingRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("listing ID cannot be empty for Delete operation")
	}
	if _, err := r.client.Collection(listingsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete listing '%s': %w", id, err)
	}
	return nil
}
