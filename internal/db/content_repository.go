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

const (
	newsCollection   = "news"
	eventsCollection = "events"
)

// firestoreNewsRepository implements NewsRepository using Firestore.
type firestoreNewsRepository struct {
	client *firestore.Client
}

// NewFirestoreNewsRepository creates a new news repository.
func NewFirestoreNewsRepository(client *firestore.Client) NewsRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for NewsRepository.")
	}
	return &firestoreNewsRepository{client: client}
}

func (r *firestoreNewsRepository) Create(ctx context.Context, article *models.NewsArticle) (string, error) {
	docRef := r.client.Collection(newsCollection).NewDoc()
	article.ID = docRef.ID
	if _, err := docRef.Create(ctx, article); err != nil {
		return "", fmt.Errorf("failed to create news article: %w", err)
	}
	return docRef.ID, nil
}

func (r *firestoreNewsRepository) GetByID(ctx context.Context, id string) (*models.NewsArticle, error) {
	if id == "" {
		return nil, errors.New("article ID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(newsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("news article '%s': %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get news article '%s': %w", id, err)
	}
	var article models.NewsArticle
	if err := docSnap.DataTo(&article); err != nil {
		return nil, fmt.Errorf("failed to decode news article '%s': %w", id, err)
	}
	article.ID = docSnap.Ref.ID
	return &article, nil
}

func (r *firestoreNewsRepository) List(ctx context.Context, limit int) ([]*models.NewsArticle, error) {
	query := r.client.Collection(newsCollection).OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	iter := query.Documents(ctx)
	defer iter.Stop()

	var articles []*models.NewsArticle
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate news articles: %w", err)
		}
		var article models.NewsArticle
		if err := doc.DataTo(&article); err != nil {
			log.Printf("Error decoding news article (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		article.ID = doc.Ref.ID
		articles = append(articles, &article)
	}
	return articles, nil
}

func (r *firestoreNewsRepository) Update(ctx context.Context, article *models.NewsArticle) error {
	if article.ID == "" {
		return errors.New("article ID cannot be empty for Update operation")
	}
	_, err := r.client.Collection(newsCollection).Doc(article.ID).Set(ctx, article, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update news article '%s': %w", article.ID, err)
	}
	return nil
}

func (r *firestoreNewsRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("article ID cannot be empty for Delete operation")
	}
	if _, err := r.client.Collection(newsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete news article '%s': %w", id, err)
	}
	return nil
}

// firestoreEventRepository implements EventRepository using Firestore.
type firestoreEventRepository struct {
	client *firestore.Client
}

// NewFirestoreEventRepository creates a new event repository.
func NewFirestoreEventRepository(client *firestore.Client) EventRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for EventRepository.")
	}
	return &firestoreEventRepository{client: client}
}

func (r *firestoreEventRepository) Create(ctx context.Context, event *models.Event) (string, error) {
	docRef := r.client.Collection(eventsCollection).NewDoc()
	event.ID = docRef.ID
	if _, err := docRef.Create(ctx, event); err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}
	return docRef.ID, nil
}

func (r *firestoreEventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	if id == "" {
		return nil, errors.New("event ID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(eventsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("event '%s': %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get event '%s': %w", id, err)
	}
	var event models.Event
	if err := docSnap.DataTo(&event); err != nil {
		return nil, fmt.Errorf("failed to decode event '%s': %w", id, err)
	}
	event.ID = docSnap.Ref.ID
	return &event, nil
}

// List returns upcoming events ordered by start time.
func (r *firestoreEventRepository) List(ctx context.Context, limit int) ([]*models.Event, error) {
	query := r.client.Collection(eventsCollection).OrderBy("startsAt", firestore.Asc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	iter := query.Documents(ctx)
	defer iter.Stop()

	var events []*models.Event
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate events: %w", err)
		}
		var event models.Event
		if err := doc.DataTo(&event); err != nil {
			log.Printf("Error decoding event (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		event.ID = doc.Ref.ID
		events = append(events, &event)
	}
	return events, nil
}

func (r *firestoreEventRepository) Update(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		return errors.New("event ID cannot be empty for Update operation")
	}
	_, err := r.client.Collection(eventsCollection).Doc(event.ID).Set(ctx, event, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update event '%s': %w", event.ID, err)
	}
	return nil
}

func (r *firestoreEventRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("event ID cannot be empty for Delete operation")
	}
	if _, err := r.client.Collection(eventsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete event '%s': %w", id, err)
	}
	return nil
}
