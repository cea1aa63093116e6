package models

import "time"

// Poll is a resident poll. A poll accepts votes while Active is set and the
// deadline has not passed; once closed it never reopens.
type Poll struct {
	ID        string    `json:"id" firestore:"-"`
	Question  string    `json:"question" firestore:"question"`
	Options   []string  `json:"options" firestore:"options"`
	Active    bool      `json:"active" firestore:"active"`
	Deadline  time.Time `json:"deadline" firestore:"deadline"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// AcceptsVotes reports whether the poll can take a vote at the given time.
func (p *Poll) AcceptsVotes(now time.Time) bool {
	return p.Active && now.Before(p.Deadline)
}

// VoteRecord lives at polls/{pollID}/votes/{userID}. The user ID being the
// document ID is what enforces one vote per (poll, user): a repeated cast is
// an overwrite of the same document, never a second record.
type VoteRecord struct {
	UserID string    `json:"userId" firestore:"-"`
	Choice string    `json:"choice" firestore:"choice"`
	CastAt time.Time `json:"castAt" firestore:"castAt,serverTimestamp"`
}

// PollTally is the per-option vote count for one poll.
type PollTally struct {
	PollID string         `json:"pollId"`
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}
