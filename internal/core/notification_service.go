package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"townhub-backend/internal/db"
	"townhub-backend/internal/models"
	"townhub-backend/pkg/messagequeue"
)

// DefaultInboxLimit is the number of notifications the inbox window holds.
const DefaultInboxLimit = 10

var ErrNotificationNotFound = errors.New("notification not found")

// portalEvent is the payload published to the event queue on Notify.
type portalEvent struct {
	Type            string    `json:"type"`
	Message         string    `json:"message"`
	RelatedUserName string    `json:"relatedUserName,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// notificationService implements NotificationService.
type notificationService struct {
	repo       db.NotificationRepository
	queue      messagequeue.MessageQueue
	queueName  string
	inboxLimit int
	logger     *zap.Logger
}

// NewNotificationService creates the admin inbox service. queue may be nil
// when no broker is configured; Notify then only writes the notification
// document.
func NewNotificationService(repo db.NotificationRepository, queue messagequeue.MessageQueue, queueName string, inboxLimit int, logger *zap.Logger) NotificationService {
	if inboxLimit <= 0 {
		inboxLimit = DefaultInboxLimit
	}
	return &notificationService{
		repo:       repo,
		queue:      queue,
		queueName:  queueName,
		inboxLimit: inboxLimit,
		logger:     logger,
	}
}

// Subscribe delivers the inbox window plus unread count on every change.
func (s *notificationService) Subscribe(ctx context.Context, fn func(models.NotificationFeed)) StopFunc {
	stop := s.repo.Watch(ctx, s.inboxLimit, func(items []models.Notification) {
		fn(buildFeed(items))
	})
	return StopFunc(stop)
}

// List is the one-shot counterpart of Subscribe.
func (s *notificationService) List(ctx context.Context) (models.NotificationFeed, error) {
	items, err := s.repo.List(ctx, s.inboxLimit)
	if err != nil {
		return models.NotificationFeed{}, fmt.Errorf("failed to list notifications: %w", err)
	}
	return buildFeed(items), nil
}

func buildFeed(items []models.Notification) models.NotificationFeed {
	feed := models.NotificationFeed{Items: items}
	for _, n := range items {
		if !n.Read {
			feed.UnreadCount++
		}
	}
	return feed
}

// MarkRead acknowledges one notification. Idempotent.
func (s *notificationService) MarkRead(ctx context.Context, id string) error {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNotificationNotFound, id)
		}
		return err
	}
	return nil
}

// MarkAllRead acknowledges the caller's point-in-time snapshot of IDs in
// one atomic batch. Items created between the snapshot and the commit stay
// unread until the next explicit acknowledge; that window is deliberate.
func (s *notificationService) MarkAllRead(ctx context.Context, ids []string) error {
	return s.repo.MarkAllRead(ctx, ids)
}

// Notify writes the notification document and publishes the event to the
// queue. The two writes are independent and non-atomic; either failure is
// logged and never propagates to the caller's request.
func (s *notificationService) Notify(ctx context.Context, notifType, message, relatedUserName string) {
	n := &models.Notification{
		Type:            notifType,
		Message:         message,
		RelatedUserName: relatedUserName,
	}
	if _, err := s.repo.Create(ctx, n); err != nil {
		s.logger.Warn("failed to record admin notification",
			zap.String("type", notifType), zap.Error(err))
	}

	if s.queue == nil {
		return
	}
	body, err := json.Marshal(portalEvent{
		Type:            notifType,
		Message:         message,
		RelatedUserName: relatedUserName,
		OccurredAt:      time.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn("failed to encode portal event", zap.Error(err))
		return
	}
	if err := s.queue.Publish(s.queueName, body); err != nil {
		s.logger.Warn("failed to publish portal event",
			zap.String("queue", s.queueName), zap.Error(err))
	}
}
