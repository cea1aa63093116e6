package core

import (
	"context"
	"io"
	"time"

	"townhub-backend/internal/models"
)

// StopFunc releases a live subscription. Calling it more than once is
// harmless.
type StopFunc func()

// ActivityService merges several watched collections into one bounded,
// reverse-chronological feed for the admin dashboard.
type ActivityService interface {
	// Subscribe delivers the merged feed on every update from any source
	// until ctx is cancelled or the returned StopFunc is called. Every
	// delivery is a fully merged, consistently sorted list.
	Subscribe(ctx context.Context, fn func([]models.ActivityItem)) StopFunc
}

// NotificationService is the admin inbox: live feed with unread count,
// acknowledge operations, and the write side used by the other services.
type NotificationService interface {
	Subscribe(ctx context.Context, fn func(models.NotificationFeed)) StopFunc
	List(ctx context.Context) (models.NotificationFeed, error)
	MarkRead(ctx context.Context, id string) error
	// MarkAllRead acknowledges exactly the given snapshot of IDs; unread
	// items that arrive afterwards are untouched.
	MarkAllRead(ctx context.Context, ids []string) error
	// Notify records an admin notification and fans the event out to the
	// message queue. The two writes are independent; a queue failure never
	// fails the notification.
	Notify(ctx context.Context, notifType, message, relatedUserName string)
}

// PollService owns poll lifecycle and the one-vote-per-user ledger.
type PollService interface {
	CreatePoll(ctx context.Context, question string, options []string, deadline time.Time) (*models.Poll, error)
	ListPolls(ctx context.Context) ([]*models.Poll, error)
	// ClosePoll deactivates a poll ahead of its deadline. Closed polls
	// never reopen.
	ClosePoll(ctx context.Context, pollID string) error
	CastVote(ctx context.Context, pollID, userID, choice string) error
	HasVoted(ctx context.Context, pollID, userID string) (bool, string, error)
	WatchVote(ctx context.Context, pollID, userID string, fn func(*models.VoteRecord)) StopFunc
	Tally(ctx context.Context, pollID string) (*models.PollTally, error)
}

// ApplicationService owns job postings and the one-application-per-user
// ledger.
type ApplicationService interface {
	CreateJob(ctx context.Context, job *models.Job) (*models.Job, error)
	ListJobs(ctx context.Context) ([]*models.Job, error)
	CloseJob(ctx context.Context, jobID string) error
	SubmitApplication(ctx context.Context, app *models.JobApplication) error
	HasApplied(ctx context.Context, jobID, userID string) (bool, error)
	ListApplications(ctx context.Context, jobID string) ([]models.JobApplication, error)
	SetApplicationStatus(ctx context.Context, jobID, userID, status string) error
}

// ChatService derives per-user conversation threads from the flat message
// collection.
type ChatService interface {
	WatchThreads(ctx context.Context, fn func([]models.ChatThread)) StopFunc
	WatchThread(ctx context.Context, userID string, fn func([]models.Message)) StopFunc
	SendMessage(ctx context.Context, userID, userName, body, sender string) (*models.Message, error)
	// MarkThreadRead acknowledges the given message IDs, taken from the
	// caller's current snapshot of the thread.
	MarkThreadRead(ctx context.Context, ids []string) error
}

// UserService owns resident profiles and the approval workflow.
type UserService interface {
	InitializeProfile(ctx context.Context, uid, email, displayName string) (*models.User, error)
	GetProfile(ctx context.Context, uid string) (*models.User, error)
	SetApproval(ctx context.Context, uid, status string) error
	ListPending(ctx context.Context) ([]*models.User, error)
}

// ContentService owns the public content surface: news, events, alerts.
type ContentService interface {
	CreateNews(ctx context.Context, article *models.NewsArticle) (*models.NewsArticle, error)
	GetNews(ctx context.Context, id string) (*models.NewsArticle, error)
	ListNews(ctx context.Context, limit int) ([]*models.NewsArticle, error)
	UpdateNews(ctx context.Context, article *models.NewsArticle) error
	DeleteNews(ctx context.Context, id string) error

	CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	ListEvents(ctx context.Context, limit int) ([]*models.Event, error)
	UpdateEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, id string) error

	CreateAlert(ctx context.Context, alert *models.Alert) (*models.Alert, error)
	ListPublicAlerts(ctx context.Context) ([]*models.Alert, error)
	ListAllAlerts(ctx context.Context) ([]*models.Alert, error)
	DeleteAlert(ctx context.Context, id string) error
}

// CommunityService owns resident-generated content: submissions,
// marketplace listings and donations.
type CommunityService interface {
	CreateSubmission(ctx context.Context, sub *models.Submission) (*models.Submission, error)
	ListSubmissions(ctx context.Context) ([]*models.Submission, error)
	ListUserSubmissions(ctx context.Context, userID string) ([]*models.Submission, error)
	ResolveSubmission(ctx context.Context, id string) error

	CreateListing(ctx context.Context, listing *models.Listing) (*models.Listing, error)
	ListListings(ctx context.Context, limit int) ([]*models.Listing, error)
	UpdateListing(ctx context.Context, userID string, isAdmin bool, listing *models.Listing) error
	DeleteListing(ctx context.Context, userID string, isAdmin bool, id string) error

	CreateDonation(ctx context.Context, donation *models.Donation) (*models.Donation, error)
	ListDonations(ctx context.Context, limit int) ([]*models.Donation, error)
	DonationTotal(ctx context.Context) (float64, error)
}

// StatsService produces the admin dashboard counters.
type StatsService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

// DashboardStats is the cached set of counters shown on the admin landing
// page.
type DashboardStats struct {
	Users       int64   `json:"users"`
	Submissions int64   `json:"submissions"`
	Listings    int64   `json:"listings"`
	Polls       int64   `json:"polls"`
	Jobs        int64   `json:"jobs"`
	Donations   float64 `json:"donationTotal"`
}

// StorageService uploads attachments and returns their public URL.
type StorageService interface {
	Upload(ctx context.Context, folder, filename, contentType string, r io.Reader) (string, error)
}
