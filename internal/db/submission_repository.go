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

const submissionsCollection = "submissions"

// firestoreSubmissionRepository implements SubmissionRepository using
// Firestore. The variant shape is validated before any write; a document
// that fails Validate never reaches the store.
type firestoreSubmissionRepository struct {
	client *firestore.Client
}

// NewFirestoreSubmissionRepository creates a new submission repository.
func NewFirestoreSubmissionRepository(client *firestore.Client) SubmissionRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for SubmissionRepository.")
	}
	return &firestoreSubmissionRepository{client: client}
}

func (r *firestoreSubmissionRepository) Create(ctx context.Context, sub *models.Submission) (string, error) {
	if err := sub.Validate(); err != nil {
		return "", err
	}
	docRef := r.client.Collection(submissionsCollection).NewDoc()
	sub.ID = docRef.ID
	if _, err := docRef.Create(ctx, sub); err != nil {
		return "", fmt.Errorf("failed to create submission: %w", err)
	}
	return docRef.ID, nil
}

func (r *firestoreSubmissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	if id == "" {
		return nil, errors.New("submission ID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(submissionsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("submission '%s': %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get submission '%s': %w", id, err)
	}
	var sub models.Submission
	if err := docSnap.DataTo(&sub); err != nil {
		return nil, fmt.Errorf("failed to decode submission '%s': %w", id, err)
	}
	sub.ID = docSnap.Ref.ID
	return &sub, nil
}

func (r *firestoreSubmissionRepository) List(ctx context.Context) ([]*models.Submission, error) {
	query := r.client.Collection(submissionsCollection).OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, query)
}

func (r *firestoreSubmissionRepository) ListByUser(ctx context.Context, userID string) ([]*models.Submission, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for ListByUser operation")
	}
	query := r.client.Collection(submissionsCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, query)
}

func (r *firestoreSubmissionRepository) collect(ctx context.Context, query firestore.Query) ([]*models.Submission, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var subs []*models.Submission
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate submissions: %w", err)
		}
		var sub models.Submission
		if err := doc.DataTo(&sub); err != nil {
			log.Printf("Error decoding submission (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		sub.ID = doc.Ref.ID
		subs = append(subs, &sub)
	}
	return subs, nil
}

func (r *firestoreSubmissionRepository) SetStatus(ctx context.Context, id, subStatus string) error {
	if id == "" {
		return errors.New("submission ID cannot be empty for SetStatus operation")
	}
	_, err := r.client.Collection(submissionsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: subStatus},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("submission '%s': %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to set status for submission '%s': %w", id, err)
	}
	return nil
}
