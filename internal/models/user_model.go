package models

import "time"

// Role values carried on a user profile. The role claim on the Firebase
// token is the source of truth for route gating; the profile copy is what
// the admin console lists and edits.
const (
	RoleResident = "resident"
	RoleAdmin    = "admin"
)

// Approval states for the resident portal.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// User represents a portal user. The document ID is the Firebase Auth UID.
type User struct {
	ID             string    `json:"id" firestore:"-"`
	Email          string    `json:"email" firestore:"email"`
	DisplayName    string    `json:"displayName,omitempty" firestore:"displayName,omitempty"`
	PhotoURL       string    `json:"photoURL,omitempty" firestore:"photoURL,omitempty"`
	Phone          string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	Role           string    `json:"role" firestore:"role"`
	ApprovalStatus string    `json:"approvalStatus" firestore:"approvalStatus"`
	CreatedAt      time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt      time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
