package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
)

// firestoreStatsRepository implements StatsRepository using Firestore's
// server-side count aggregation, so dashboard counts do not stream whole
// collections to the backend.
type firestoreStatsRepository struct {
	client *firestore.Client
}

// NewFirestoreStatsRepository creates a new stats repository.
func NewFirestoreStatsRepository(client *firestore.Client) StatsRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for StatsRepository.")
	}
	return &firestoreStatsRepository{client: client}
}

// Count returns the number of documents in one collection.
func (r *firestoreStatsRepository) Count(ctx context.Context, collection string) (int64, error) {
	if collection == "" {
		return 0, errors.New("collection cannot be empty for Count operation")
	}

	aggQuery := r.client.Collection(collection).Query.NewAggregationQuery().WithCount("all")
	results, err := aggQuery.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count collection '%s': %w", collection, err)
	}

	value, ok := results["all"]
	if !ok {
		return 0, fmt.Errorf("count aggregation missing for collection '%s'", collection)
	}
	countValue, ok := value.(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("unexpected count aggregation type for collection '%s'", collection)
	}
	return countValue.GetIntegerValue(), nil
}
