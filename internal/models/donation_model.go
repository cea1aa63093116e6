package models

import "time"

// Donation is one recorded pledge toward a community cause. Amounts are
// whole currency units; actual payment handling happens outside the portal.
type Donation struct {
	ID        string    `json:"id" firestore:"-"`
	UserID    string    `json:"userId,omitempty" firestore:"userId,omitempty"`
	DonorName string    `json:"donorName" firestore:"donorName"`
	Amount    float64   `json:"amount" firestore:"amount"`
	Message   string    `json:"message,omitempty" firestore:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}
