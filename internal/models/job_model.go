package models

import "time"

// Job is a municipal job posting. Applications are only accepted while Open.
type Job struct {
	ID          string    `json:"id" firestore:"-"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description" firestore:"description"`
	Department  string    `json:"department,omitempty" firestore:"department,omitempty"`
	Open        bool      `json:"open" firestore:"open"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// Application statuses.
const (
	ApplicationSubmitted = "submitted"
	ApplicationReviewed  = "reviewed"
	ApplicationAccepted  = "accepted"
	ApplicationRejected  = "rejected"
)

// JobApplication records one application per (job, user). The document ID is
// the deterministic composite key "{jobID}_{userID}", so a second submission
// by the same user fails at the store with an already-exists error instead
// of creating a duplicate.
type JobApplication struct {
	ID        string    `json:"id" firestore:"-"`
	JobID     string    `json:"jobId" firestore:"jobId"`
	UserID    string    `json:"userId" firestore:"userId"`
	FullName  string    `json:"fullName" firestore:"fullName"`
	Phone     string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	Profile   string    `json:"profile,omitempty" firestore:"profile,omitempty"`
	Status    string    `json:"status" firestore:"status"`
	AppliedAt time.Time `json:"appliedAt" firestore:"appliedAt,serverTimestamp"`
}

// ApplicationKey builds the composite document ID for one (job, user) pair.
func ApplicationKey(jobID, userID string) string {
	return jobID + "_" + userID
}
