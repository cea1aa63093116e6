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

const notificationsCollection = "notifications"

// firestoreNotificationRepository implements NotificationRepository using
// Firestore.
type firestoreNotificationRepository struct {
	client *firestore.Client
}

// NewFirestoreNotificationRepository creates a new notification repository.
func NewFirestoreNotificationRepository(client *firestore.Client) NotificationRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for NotificationRepository.")
	}
	return &firestoreNotificationRepository{client: client}
}

// Create adds a new notification with an auto-generated ID.
func (r *firestoreNotificationRepository) Create(ctx context.Context, n *models.Notification) (string, error) {
	docRef := r.client.Collection(notificationsCollection).NewDoc()
	n.ID = docRef.ID
	if _, err := docRef.Create(ctx, n); err != nil {
		return "", fmt.Errorf("failed to create notification: %w", err)
	}
	return docRef.ID, nil
}

func (r *firestoreNotificationRepository) inboxQuery(limit int) firestore.Query {
	return r.client.Collection(notificationsCollection).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit)
}

// List returns the most recent notifications, newest first.
func (r *firestoreNotificationRepository) List(ctx context.Context, limit int) ([]models.Notification, error) {
	iter := r.inboxQuery(limit).Documents(ctx)
	defer iter.Stop()

	var items []models.Notification
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate notifications: %w", err)
		}
		items = append(items, decodeNotification(doc))
	}
	return items, nil
}

// Watch delivers the current inbox window on every change. A terminal
// listener error degrades to an empty delivery and is logged.
func (r *firestoreNotificationRepository) Watch(ctx context.Context, limit int, fn func([]models.Notification)) Unsubscribe {
	return watchQuery(ctx, r.inboxQuery(limit), func(docs []*firestore.DocumentSnapshot, err error) {
		if err != nil {
			log.Printf("notification watch error: %v", err)
			fn(nil)
			return
		}
		items := make([]models.Notification, 0, len(docs))
		for _, doc := range docs {
			items = append(items, decodeNotification(doc))
		}
		fn(items)
	})
}

func decodeNotification(doc *firestore.DocumentSnapshot) models.Notification {
	var n models.Notification
	if err := doc.DataTo(&n); err != nil {
		log.Printf("Error decoding notification data (ID: %s): %v.", doc.Ref.ID, err)
	}
	n.ID = doc.Ref.ID
	return n
}

// MarkRead sets read=true on a single notification. Marking an already-read
// notification is a no-op as far as the caller can observe.
func (r *firestoreNotificationRepository) MarkRead(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("notification ID cannot be empty for MarkRead operation")
	}
	_, err := r.client.Collection(notificationsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "read", Value: true},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("notification '%s': %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to mark notification '%s' read: %w", id, err)
	}
	return nil
}

// MarkAllRead sets read=true on every given ID in one atomic write batch.
// The IDs come from a point-in-time snapshot held by the caller; items
// created after that snapshot are deliberately untouched.
func (r *firestoreNotificationRepository) MarkAllRead(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	batch := r.client.Batch()
	for _, id := range ids {
		ref := r.client.Collection(notificationsCollection).Doc(id)
		batch.Update(ref, []firestore.Update{{Path: "read", Value: true}})
	}
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to mark %d notifications read: %w", len(ids), err)
	}
	return nil
}
