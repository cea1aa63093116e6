package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"townhub-backend/internal/models"
)

const alertsCollection = "alerts"

// firestoreAlertRepository implements AlertRepository using Firestore.
type firestoreAlertRepository struct {
	client *firestore.Client
}

// NewFirestoreAlertRepository creates a new alert repository.
func NewFirestoreAlertRepository(client *firestore.Client) AlertRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for AlertRepository.")
	}
	return &firestoreAlertRepository{client: client}
}

func (r *firestoreAlertRepository) Create(ctx context.Context, alert *models.Alert) (string, error) {
	docRef := r.client.Collection(alertsCollection).NewDoc()
	alert.ID = docRef.ID
	if _, err := docRef.Create(ctx, alert); err != nil {
		return "", fmt.Errorf("failed to create alert: %w", err)
	}
	return docRef.ID, nil
}

// ListPublic returns alerts of the publicly served types only, newest
// first. Other types stay admin-only.
func (r *firestoreAlertRepository) ListPublic(ctx context.Context) ([]*models.Alert, error) {
	query := r.client.Collection(alertsCollection).
		Where("type", "in", models.PublicAlertTypes).
		OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, query)
}

// ListAll returns every alert regardless of type, newest first.
func (r *firestoreAlertRepository) ListAll(ctx context.Context) ([]*models.Alert, error) {
	query := r.client.Collection(alertsCollection).OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, query)
}

func (r *firestoreAlertRepository) collect(ctx context.Context, query firestore.Query) ([]*models.Alert, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var alerts []*models.Alert
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate alerts: %w", err)
		}
		var alert models.Alert
		if err := doc.DataTo(&alert); err != nil {
			log.Printf("Error decoding alert (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		alert.ID = doc.Ref.ID
		alerts = append(alerts, &alert)
	}
	return alerts, nil
}

func (r *firestoreAlertRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("alert ID cannot be empty for Delete operation")
	}
	if _, err := r.client.Collection(alertsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete alert '%s': %w", id, err)
	}
	return nil
}
