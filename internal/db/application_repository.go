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

const applicationsCollection = "applications"

// firestoreApplicationRepository implements ApplicationRepository using
// Firestore. The document ID is the deterministic composite key
// "{jobID}_{userID}", which makes the create operation the uniqueness
// enforcer: two submissions for the same pair race on the same key and the
// loser gets AlreadyExists from the store.
type firestoreApplicationRepository struct {
	client *firestore.Client
}

// NewFirestoreApplicationRepository creates a new application repository.
func NewFirestoreApplicationRepository(client *firestore.Client) ApplicationRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ApplicationRepository.")
	}
	return &firestoreApplicationRepository{client: client}
}

// Create stores the application at its composite key. Returns
// ErrAlreadyExists when the user has already applied for the job.
func (r *firestoreApplicationRepository) Create(ctx context.Context, app *models.JobApplication) error {
	if app == nil || app.JobID == "" || app.UserID == "" {
		return errors.New("jobID and userID are required for Create operation")
	}
	key := models.ApplicationKey(app.JobID, app.UserID)
	app.ID = key
	_, err := r.client.Collection(applicationsCollection).Doc(key).Create(ctx, app)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("application '%s': %w", key, ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create application '%s': %w", key, err)
	}
	return nil
}

// Get retrieves the application for one (job, user) pair, or ErrNotFound.
func (r *firestoreApplicationRepository) Get(ctx context.Context, jobID, userID string) (*models.JobApplication, error) {
	if jobID == "" || userID == "" {
		return nil, errors.New("jobID and userID are required for Get operation")
	}
	key := models.ApplicationKey(jobID, userID)
	docSnap, err := r.client.Collection(applicationsCollection).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("application '%s': %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get application '%s': %w", key, err)
	}

	var app models.JobApplication
	if err := docSnap.DataTo(&app); err != nil {
		return nil, fmt.Errorf("failed to decode application data for '%s': %w", key, err)
	}
	app.ID = docSnap.Ref.ID
	return &app, nil
}

// ListByJob returns all applications for one job, newest first.
func (r *firestoreApplicationRepository) ListByJob(ctx context.Context, jobID string) ([]models.JobApplication, error) {
	if jobID == "" {
		return nil, errors.New("jobID cannot be empty for ListByJob operation")
	}

	iter := r.client.Collection(applicationsCollection).
		Where("jobId", "==", jobID).
		OrderBy("appliedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var apps []models.JobApplication
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate applications for job '%s': %w", jobID, err)
		}

		var app models.JobApplication
		if err := doc.DataTo(&app); err != nil {
			log.Printf("Error decoding application data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		app.ID = doc.Ref.ID
		apps = append(apps, app)
	}
	return apps, nil
}

// SetStatus updates the review status of one application.
func (r *firestoreApplicationRepository) SetStatus(ctx context.Context, jobID, userID, appStatus string) error {
	if jobID == "" || userID == "" {
		return errors.New("jobID and userID are required for SetStatus operation")
	}
	key := models.ApplicationKey(jobID, userID)
	_, err := r.client.Collection(applicationsCollection).Doc(key).Update(ctx, []firestore.Update{
		{Path: "status", Value: appStatus},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("application '%s': %w", key, ErrNotFound)
		}
		return fmt.Errorf("failed to set status for application '%s': %w", key, err)
	}
	return nil
}
