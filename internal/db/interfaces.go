package db

import (
	"context"

	"townhub-backend/internal/models"
)

// Unsubscribe releases one live snapshot listener. Implementations must be
// idempotent: calling the returned function more than once is harmless.
type Unsubscribe func()

// UserRepository defines user profile storage. The document ID is the
// Firebase Auth UID.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	SetApproval(ctx context.Context, userID, status string) error
	ListByApproval(ctx context.Context, status string) ([]*models.User, error)
}

// NotificationRepository defines the admin inbox storage.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) (string, error)
	List(ctx context.Context, limit int) ([]models.Notification, error)
	// Watch delivers the most recent `limit` notifications, newest first,
	// on every change until the context is cancelled or the returned
	// Unsubscribe is called.
	Watch(ctx context.Context, limit int, fn func([]models.Notification)) Unsubscribe
	MarkRead(ctx context.Context, id string) error
	// MarkAllRead sets read=true on every given ID in one atomic batch.
	MarkAllRead(ctx context.Context, ids []string) error
}

// FeedRepository watches one source collection for the activity feed,
// translating raw documents into ActivityItems per the source config.
type FeedRepository interface {
	WatchSource(ctx context.Context, collection string, cfg models.SourceConfig, window int, fn func([]models.ActivityItem, error)) Unsubscribe
}

// PollRepository defines poll and vote storage. Votes live in a
// subcollection keyed by user ID.
type PollRepository interface {
	Create(ctx context.Context, poll *models.Poll) (string, error)
	GetByID(ctx context.Context, pollID string) (*models.Poll, error)
	List(ctx context.Context) ([]*models.Poll, error)
	SetActive(ctx context.Context, pollID string, active bool) error
	// SetVote writes polls/{pollID}/votes/{vote.UserID}, overwriting any
	// prior record at that key.
	SetVote(ctx context.Context, pollID string, vote *models.VoteRecord) error
	GetVote(ctx context.Context, pollID, userID string) (*models.VoteRecord, error)
	// WatchVote delivers the caller's current vote record (nil while none
	// exists) on every change.
	WatchVote(ctx context.Context, pollID, userID string, fn func(*models.VoteRecord)) Unsubscribe
	Tally(ctx context.Context, pollID string) (*models.PollTally, error)
}

// JobRepository defines job posting storage.
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) (string, error)
	GetByID(ctx context.Context, jobID string) (*models.Job, error)
	List(ctx context.Context) ([]*models.Job, error)
	SetOpen(ctx context.Context, jobID string, open bool) error
}

// ApplicationRepository defines job application storage. The document ID is
// the composite key from models.ApplicationKey; Create fails with
// ErrAlreadyExists when a record is already present at that key.
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.JobApplication) error
	Get(ctx context.Context, jobID, userID string) (*models.JobApplication, error)
	ListByJob(ctx context.Context, jobID string) ([]models.JobApplication, error)
	SetStatus(ctx context.Context, jobID, userID, status string) error
}

// MessageRepository defines the flat append-only chat collection.
type MessageRepository interface {
	Append(ctx context.Context, msg *models.Message) (string, error)
	// WatchAll delivers every message, newest first.
	WatchAll(ctx context.Context, fn func([]models.Message)) Unsubscribe
	// WatchByUser delivers one user's messages, oldest first.
	WatchByUser(ctx context.Context, userID string, fn func([]models.Message)) Unsubscribe
	MarkRead(ctx context.Context, ids []string) error
}

// NewsRepository defines news article storage.
type NewsRepository interface {
	Create(ctx context.Context, article *models.NewsArticle) (string, error)
	GetByID(ctx context.Context, id string) (*models.NewsArticle, error)
	List(ctx context.Context, limit int) ([]*models.NewsArticle, error)
	Update(ctx context.Context, article *models.NewsArticle) error
	Delete(ctx context.Context, id string) error
}

// EventRepository defines calendar event storage.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) (string, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context, limit int) ([]*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error
}

// AlertRepository defines alert storage. ListPublic applies the public type
// filter; ListAll is the admin view.
type AlertRepository interface {
	Create(ctx context.Context, alert *models.Alert) (string, error)
	ListPublic(ctx context.Context) ([]*models.Alert, error)
	ListAll(ctx context.Context) ([]*models.Alert, error)
	Delete(ctx context.Context, id string) error
}

// SubmissionRepository defines report/suggestion storage.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *models.Submission) (string, error)
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	List(ctx context.Context) ([]*models.Submission, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Submission, error)
	SetStatus(ctx context.Context, id, status string) error
}

// ListingRepository defines marketplace listing storage.
type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) (string, error)
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	List(ctx context.Context, limit int) ([]*models.Listing, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Listing, error)
	Update(ctx context.Context, listing *models.Listing) error
	Delete(ctx context.Context, id string) error
}

// DonationRepository defines donation pledge storage.
type DonationRepository interface {
	Create(ctx context.Context, donation *models.Donation) (string, error)
	List(ctx context.Context, limit int) ([]*models.Donation, error)
	Total(ctx context.Context) (float64, error)
}

// StatsRepository counts documents per collection for the admin dashboard.
type StatsRepository interface {
	Count(ctx context.Context, collection string) (int64, error)
}
