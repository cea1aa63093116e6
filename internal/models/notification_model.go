package models

import "time"

// Notification types. Anything the write side produces outside this set is
// stored as-is but rendered under the generic "other" label by clients.
const (
	NotificationRegistration = "registration"
	NotificationSuggestion   = "suggestion"
	NotificationApplication  = "application"
	NotificationPermit       = "permit"
	NotificationReport       = "report"
	NotificationOther        = "other"
)

// Notification is one entry in the admin inbox. Created by the write side
// when a triggering event occurs; only the read flag is ever mutated.
type Notification struct {
	ID              string    `json:"id" firestore:"-"`
	Type            string    `json:"type" firestore:"type"`
	Message         string    `json:"message" firestore:"message"`
	Read            bool      `json:"read" firestore:"read"`
	RelatedUserName string    `json:"relatedUserName,omitempty" firestore:"relatedUserName,omitempty"`
	CreatedAt       time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// NotificationFeed is the payload delivered to inbox subscribers on every
// snapshot: the most recent items plus the unread count across them.
type NotificationFeed struct {
	Items       []Notification `json:"items"`
	UnreadCount int            `json:"unreadCount"`
}
