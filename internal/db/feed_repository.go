package db

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"

	"townhub-backend/internal/models"
)

// firestoreFeedRepository implements FeedRepository using Firestore.
type firestoreFeedRepository struct {
	client *firestore.Client
}

// NewFirestoreFeedRepository creates a new feed repository.
func NewFirestoreFeedRepository(client *firestore.Client) FeedRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for FeedRepository.")
	}
	return &firestoreFeedRepository{client: client}
}

// WatchSource watches one collection's most recent `window` documents and
// translates each snapshot into ActivityItems. Documents without a valid
// creation timestamp in the configured sort field are dropped here, so the
// merge never sees an item it cannot order.
func (r *firestoreFeedRepository) WatchSource(ctx context.Context, collection string, cfg models.SourceConfig, window int, fn func([]models.ActivityItem, error)) Unsubscribe {
	query := r.client.Collection(collection).
		OrderBy(cfg.SortField, firestore.Desc).
		Limit(window)

	return watchQuery(ctx, query, func(docs []*firestore.DocumentSnapshot, err error) {
		if err != nil {
			fn(nil, err)
			return
		}
		items := make([]models.ActivityItem, 0, len(docs))
		for _, doc := range docs {
			data := doc.Data()
			ts, ok := data[cfg.SortField].(time.Time)
			if !ok || ts.IsZero() {
				continue
			}
			title, _ := data[cfg.TitleField].(string)
			items = append(items, models.ActivityItem{
				Source:    collection,
				ID:        doc.Ref.ID,
				Timestamp: ts,
				Category:  cfg.Category,
				Label:     cfg.Label,
				Title:     title,
			})
		}
		fn(items, nil)
	})
}
