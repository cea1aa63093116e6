package models

import "time"

// CreatePollRequest represents the request body for creating a new poll.
type CreatePollRequest struct {
	Question string    `json:"question" binding:"required"`
	Options  []string  `json:"options" binding:"required,min=2"`
	Deadline time.Time `json:"deadline" binding:"required,futuredate"`
}

// CastVoteRequest represents the request body for casting a vote.
type CastVoteRequest struct {
	Choice string `json:"choice" binding:"required"`
}

// CreateJobRequest represents the request body for creating a job posting.
type CreateJobRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Department  string `json:"department,omitempty"`
}

// ApplyRequest represents the request body for a job application.
type ApplyRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Phone    string `json:"phone,omitempty"`
	Profile  string `json:"profile,omitempty"`
}

// SetApplicationStatusRequest updates one application's review status.
type SetApplicationStatusRequest struct {
	UserID string `json:"userId" binding:"required"`
	Status string `json:"status" binding:"required,oneof=submitted reviewed accepted rejected"`
}

// SendMessageRequest represents the request body for a chat message.
type SendMessageRequest struct {
	Message string `json:"message" binding:"required"`
	// UserID and UserName are only honored for admin senders replying into
	// a resident's thread; resident sends take both from the token.
	UserID   string `json:"userId,omitempty"`
	UserName string `json:"userName,omitempty"`
}

// MarkReadRequest carries the snapshot of IDs to acknowledge.
type MarkReadRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// SetApprovalRequest represents the request body for an approval decision.
type SetApprovalRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected"`
}

// CreateNewsRequest represents the request body for a news article.
type CreateNewsRequest struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
	ImageURL string `json:"imageURL,omitempty"`
}

// CreateEventRequest represents the request body for a calendar event.
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Location    string    `json:"location,omitempty"`
	StartsAt    time.Time `json:"startsAt" binding:"required"`
	ImageURL    string    `json:"imageURL,omitempty"`
}

// CreateAlertRequest represents the request body for a town-wide alert.
type CreateAlertRequest struct {
	Type  string `json:"type" binding:"required"`
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

// CreateSubmissionRequest represents the request body for a report or
// suggestion. Variant fields are checked by Submission.Validate.
type CreateSubmissionRequest struct {
	Type        string `json:"type" binding:"required,oneof=report suggestion"`
	Subject     string `json:"subject,omitempty"`
	Description string `json:"description" binding:"required"`
	Location    string `json:"location,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

// CreateListingRequest represents the request body for a marketplace listing.
type CreateListingRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price" binding:"gte=0"`
	Phone       string  `json:"phone,omitempty"`
	ImageURL    string  `json:"imageURL,omitempty"`
}

// CreateDonationRequest represents the request body for a donation pledge.
type CreateDonationRequest struct {
	DonorName string  `json:"donorName" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Message   string  `json:"message,omitempty"`
}
