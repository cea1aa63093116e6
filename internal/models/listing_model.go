package models

import "time"

// Listing is a resident marketplace entry.
type Listing struct {
	ID          string    `json:"id" firestore:"-"`
	OwnerID     string    `json:"ownerId" firestore:"ownerId"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description" firestore:"description"`
	Category    string    `json:"category,omitempty" firestore:"category,omitempty"`
	Price       float64   `json:"price" firestore:"price"`
	Phone       string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	ImageURL    string    `json:"imageURL,omitempty" firestore:"imageURL,omitempty"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}
