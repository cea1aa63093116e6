package models

import (
	"errors"
	"time"
)

// Submission types. The type field is the discriminant selecting which
// variant shape the rest of the document must satisfy.
const (
	SubmissionReport     = "report"
	SubmissionSuggestion = "suggestion"
)

// Submission statuses.
const (
	SubmissionOpen     = "open"
	SubmissionResolved = "resolved"
)

var (
	ErrUnknownSubmissionType = errors.New("unknown submission type")
	ErrMissingLocation       = errors.New("report submissions require a location")
	ErrMissingSubject        = errors.New("suggestion submissions require a subject")
	ErrMissingDescription    = errors.New("submissions require a description")
)

// Submission is a resident report or suggestion. Both variants share one
// collection; Validate checks the variant shape at the store boundary
// instead of trusting every field to be present.
type Submission struct {
	ID          string    `json:"id" firestore:"-"`
	Type        string    `json:"type" firestore:"type"`
	UserID      string    `json:"userId" firestore:"userId"`
	UserName    string    `json:"userName" firestore:"userName"`
	Subject     string    `json:"subject,omitempty" firestore:"subject,omitempty"`
	Description string    `json:"description" firestore:"description"`
	Location    string    `json:"location,omitempty" firestore:"location,omitempty"`
	PhotoURL    string    `json:"photoURL,omitempty" firestore:"photoURL,omitempty"`
	Status      string    `json:"status" firestore:"status"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// Validate checks the fields required by the submission's variant.
func (s *Submission) Validate() error {
	if s.Description == "" {
		return ErrMissingDescription
	}
	switch s.Type {
	case SubmissionReport:
		if s.Location == "" {
			return ErrMissingLocation
		}
	case SubmissionSuggestion:
		if s.Subject == "" {
			return ErrMissingSubject
		}
	default:
		return ErrUnknownSubmissionType
	}
	return nil
}
