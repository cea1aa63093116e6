package core

import (
	"context"
	"errors"
	"fmt"

	"townhub-backend/internal/db"
	"townhub-backend/internal/models"
)

// Custom errors for the ContentService.
var (
	ErrContentNotFound = errors.New("content not found")
	ErrInvalidContent  = errors.New("content requires a title and a body")
	ErrInvalidAlert    = errors.New("alert requires a type, a title and a body")
)

// contentService implements ContentService as a thin validation layer over
// the content repositories.
type contentService struct {
	newsRepo  db.NewsRepository
	eventRepo db.EventRepository
	alertRepo db.AlertRepository
}

// NewContentService creates a new ContentService instance.
func NewContentService(newsRepo db.NewsRepository, eventRepo db.EventRepository, alertRepo db.AlertRepository) ContentService {
	return &contentService{
		newsRepo:  newsRepo,
		eventRepo: eventRepo,
		alertRepo: alertRepo,
	}
}

func (s *contentService) CreateNews(ctx context.Context, article *models.NewsArticle) (*models.NewsArticle, error) {
	if article.Title == "" || article.Body == "" {
		return nil, ErrInvalidContent
	}
	id, err := s.newsRepo.Create(ctx, article)
	if err != nil {
		return nil, err
	}
	article.ID = id
	return article, nil
}

func (s *contentService) GetNews(ctx context.Context, id string) (*models.NewsArticle, error) {
	article, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: news %s", ErrContentNotFound, id)
		}
		return nil, err
	}
	return article, nil
}

func (s *contentService) ListNews(ctx context.Context, limit int) ([]*models.NewsArticle, error) {
	return s.newsRepo.List(ctx, limit)
}

func (s *contentService) UpdateNews(ctx context.Context, article *models.NewsArticle) error {
	if article.Title == "" || article.Body == "" {
		return ErrInvalidContent
	}
	return s.newsRepo.Update(ctx, article)
}

func (s *contentService) DeleteNews(ctx context.Context, id string) error {
	return s.newsRepo.Delete(ctx, id)
}

func (s *contentService) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	if event.Title == "" || event.Description == "" || event.StartsAt.IsZero() {
		return nil, errors.New("event requires a title, a description and a start time")
	}
	id, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, err
	}
	event.ID = id
	return event, nil
}

func (s *contentService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: event %s", ErrContentNotFound, id)
		}
		return nil, err
	}
	return event, nil
}

func (s *contentService) ListEvents(ctx context.Context, limit int) ([]*models.Event, error) {
	return s.eventRepo.List(ctx, limit)
}

func (s *contentService) UpdateEvent(ctx context.Context, event *models.Event) error {
	if event.Title == "" || event.Description == "" {
		return ErrInvalidContent
	}
	return s.eventRepo.Update(ctx, event)
}

func (s *contentService) DeleteEvent(ctx context.Context, id string) error {
	return s.eventRepo.Delete(ctx, id)
}

func (s *contentService) CreateAlert(ctx context.Context, alert *models.Alert) (*models.Alert, error) {
	if alert.Type == "" || alert.Title == "" || alert.Body == "" {
		return nil, ErrInvalidAlert
	}
	id, err := s.alertRepo.Create(ctx, alert)
	if err != nil {
		return nil, err
	}
	alert.ID = id
	return alert, nil
}

// ListPublicAlerts returns only alerts of the publicly served types;
// anything else stays visible to admins via ListAllAlerts only.
func (s *contentService) ListPublicAlerts(ctx context.Context) ([]*models.Alert, error) {
	return s.alertRepo.ListPublic(ctx)
}

func (s *contentService) ListAllAlerts(ctx context.Context) ([]*models.Alert, error) {
	return s.alertRepo.ListAll(ctx)
}

func (s *contentService) DeleteAlert(ctx context.Context, id string) error {
	return s.alertRepo.Delete(ctx, id)
}
