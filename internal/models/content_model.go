package models

import "time"

// NewsArticle is an admin-authored news post on the public site.
type NewsArticle struct {
	ID        string    `json:"id" firestore:"-"`
	Title     string    `json:"title" firestore:"title"`
	Body      string    `json:"body" firestore:"body"`
	ImageURL  string    `json:"imageURL,omitempty" firestore:"imageURL,omitempty"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// Event is a public calendar entry (festival program, town meetings).
type Event struct {
	ID          string    `json:"id" firestore:"-"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description" firestore:"description"`
	Location    string    `json:"location,omitempty" firestore:"location,omitempty"`
	StartsAt    time.Time `json:"startsAt" firestore:"startsAt"`
	ImageURL    string    `json:"imageURL,omitempty" firestore:"imageURL,omitempty"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}
