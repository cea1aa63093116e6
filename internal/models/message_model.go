package models

import "time"

// Message senders.
const (
	SenderUser  = "user"
	SenderAdmin = "admin"
)

// Message is one entry in the flat, append-only chat collection. Threads are
// derived by grouping on UserID; there is no edit or delete operation.
type Message struct {
	ID        string    `json:"id" firestore:"-"`
	UserID    string    `json:"userId" firestore:"userId"`
	UserName  string    `json:"userName" firestore:"userName"`
	Sender    string    `json:"sender" firestore:"sender"`
	Body      string    `json:"message" firestore:"message"`
	Read      bool      `json:"read" firestore:"read"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// ChatThread is a derived per-user conversation summary. The preview fields
// come from that user's chronologically latest message; Unread is set when
// the latest message is unread and was sent by the resident.
type ChatThread struct {
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName"`
	LastMessage string    `json:"lastMessage"`
	LastDate    time.Time `json:"lastDate"`
	Unread      bool      `json:"unread"`
}
