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

const jobsCollection = "jobs"

// firestoreJobRepository implements JobRepository using Firestore.
type firestoreJobRepository struct {
	client *firestore.Client
}

// NewFirestoreJobRepository creates a new job repository.
func NewFirestoreJobRepository(client *firestore.Client) JobRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for JobRepository.")
	}
	return &firestoreJobRepository{client: client}
}

// Create adds a new job posting with an auto-generated ID.
func (r *firestoreJobRepository) Create(ctx context.Context, job *models.Job) (string, error) {
	docRef := r.client.Collection(jobsCollection).NewDoc()
	job.ID = docRef.ID
	if _, err := docRef.Create(ctx, job); err != nil {
		return "", fmt.Errorf("failed to create job: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a job posting by ID.
func (r *firestoreJobRepository) GetByID(ctx context.Context, jobID string) (*models.Job, error) {
	if jobID == "" {
		return nil, errors.New("jobID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(jobsCollection).Doc(jobID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("job '%s': %w", jobID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get job '%s': %w", jobID, err)
	}

	var job models.Job
	if err := docSnap.DataTo(&job); err != nil {
		return nil, fmt.Errorf("failed to decode job data for '%s': %w", jobID, err)
	}
	job.ID = docSnap.Ref.ID
	return &job, nil
}

// List returns all job postings, newest first.
func (r *firestoreJobRepository) List(ctx context.Context) ([]*models.Job, error) {
	iter := r.client.Collection(jobsCollection).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var jobs []*models.Job
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate jobs: %w", err)
		}

		var job models.Job
		if err := doc.DataTo(&job); err != nil {
			log.Printf("Error decoding job data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		job.ID = doc.Ref.ID
		jobs = append(jobs, &job)
	}
	return jobs, nil
}

// SetOpen flips the job's open flag.
func (r *firestoreJobRepository) SetOpen(ctx context.Context, jobID string, open bool) error {
	if jobID == "" {
		return errors.New("jobID cannot be empty for SetOpen operation")
	}
	_, err := r.client.Collection(jobsCollection).Doc(jobID).Update(ctx, []firestore.Update{
		{Path: "open", Value: open},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("job '%s': %w", jobID, ErrNotFound)
		}
		return fmt.Errorf("failed to set open flag for job '%s': %w", jobID, err)
	}
	return nil
}
