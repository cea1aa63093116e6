package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"

	"townhub-backend/internal/models"
)

const messagesCollection = "messages"

// firestoreMessageRepository implements MessageRepository using Firestore.
// Messages are one flat append-only collection; conversation structure is
// derived by the chat service, never stored.
type firestoreMessageRepository struct {
	client *firestore.Client
}

// NewFirestoreMessageRepository creates a new message repository.
func NewFirestoreMessageRepository(client *firestore.Client) MessageRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for MessageRepository.")
	}
	return &firestoreMessageRepository{client: client}
}

// Append adds one message with an auto-generated ID. There is no edit or
// delete counterpart.
func (r *firestoreMessageRepository) Append(ctx context.Context, msg *models.Message) (string, error) {
	docRef := r.client.Collection(messagesCollection).NewDoc()
	msg.ID = docRef.ID
	if _, err := docRef.Create(ctx, msg); err != nil {
		return "", fmt.Errorf("failed to append message: %w", err)
	}
	return docRef.ID, nil
}

// WatchAll delivers every message, newest first, on every change.
func (r *firestoreMessageRepository) WatchAll(ctx context.Context, fn func([]models.Message)) Unsubscribe {
	query := r.client.Collection(messagesCollection).OrderBy("createdAt", firestore.Desc)
	return watchQuery(ctx, query, func(docs []*firestore.DocumentSnapshot, err error) {
		if err != nil {
			log.Printf("message watch error: %v", err)
			fn(nil)
			return
		}
		fn(decodeMessages(docs))
	})
}

// WatchByUser delivers one user's conversation, oldest first, for full
// replay.
func (r *firestoreMessageRepository) WatchByUser(ctx context.Context, userID string, fn func([]models.Message)) Unsubscribe {
	query := r.client.Collection(messagesCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Asc)
	return watchQuery(ctx, query, func(docs []*firestore.DocumentSnapshot, err error) {
		if err != nil {
			log.Printf("message watch error (user %s): %v", userID, err)
			fn(nil)
			return
		}
		fn(decodeMessages(docs))
	})
}

func decodeMessages(docs []*firestore.DocumentSnapshot) []models.Message {
	msgs := make([]models.Message, 0, len(docs))
	for _, doc := range docs {
		var msg models.Message
		if err := doc.DataTo(&msg); err != nil {
			log.Printf("Error decoding message data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		msg.ID = doc.Ref.ID
		msgs = append(msgs, msg)
	}
	return msgs
}

// MarkRead sets read=true on the given messages in one atomic batch. Used
// when the admin opens a thread.
func (r *firestoreMessageRepository) MarkRead(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	for _, id := range ids {
		if id == "" {
			return errors.New("message ID cannot be empty for MarkRead operation")
		}
	}
	batch := r.client.Batch()
	for _, id := range ids {
		ref := r.client.Collection(messagesCollection).Doc(id)
		batch.Update(ref, []firestore.Update{{Path: "read", Value: true}})
	}
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to mark %d messages read: %w", len(ids), err)
	}
	return nil
}
