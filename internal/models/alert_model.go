package models

import "time"

// Alert types served to the public feed. Alerts of any other type are kept
// in the collection but filtered out of public queries; the admin console
// still sees them.
const (
	AlertEmergency    = "emergency"
	AlertAnnouncement = "announcement"
)

// PublicAlertTypes is the filter applied to public alert queries.
var PublicAlertTypes = []string{AlertEmergency, AlertAnnouncement}

// Alert is a town-wide notice shown at the top of the public site.
type Alert struct {
	ID        string    `json:"id" firestore:"-"`
	Type      string    `json:"type" firestore:"type"`
	Title     string    `json:"title" firestore:"title"`
	Body      string    `json:"body" firestore:"body"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}
