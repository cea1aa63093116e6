package core

import (
	"context"
	"errors"
	"fmt"

	"townhub-backend/internal/db"
	"townhub-backend/internal/models"
)

// Custom errors for the ChatService.
var (
	ErrEmptyMessage  = errors.New("message body cannot be empty")
	ErrInvalidSender = errors.New("sender must be 'user' or 'admin'")
)

// chatService implements ChatService over the flat message collection.
type chatService struct {
	messageRepo db.MessageRepository
}

// NewChatService creates a new ChatService instance.
func NewChatService(messageRepo db.MessageRepository) ChatService {
	return &chatService{messageRepo: messageRepo}
}

// WatchThreads delivers per-user conversation summaries on every message
// update. Threads are recomputed in full from the flat collection each
// time, which is fine at municipal scale; thread order reflects each
// thread's single most recent message.
func (s *chatService) WatchThreads(ctx context.Context, fn func([]models.ChatThread)) StopFunc {
	stop := s.messageRepo.WatchAll(ctx, func(msgs []models.Message) {
		fn(groupThreads(msgs))
	})
	return StopFunc(stop)
}

// groupThreads folds newest-first messages into one thread per user. The
// first message seen for a user is their latest, so it becomes the preview.
func groupThreads(msgs []models.Message) []models.ChatThread {
	seen := make(map[string]bool, len(msgs))
	threads := make([]models.ChatThread, 0)
	for _, msg := range msgs {
		if seen[msg.UserID] {
			continue
		}
		seen[msg.UserID] = true
		threads = append(threads, models.ChatThread{
			UserID:      msg.UserID,
			UserName:    msg.UserName,
			LastMessage: msg.Body,
			LastDate:    msg.CreatedAt,
			Unread:      !msg.Read && msg.Sender == models.SenderUser,
		})
	}
	return threads
}

// WatchThread delivers one user's full conversation, oldest first.
func (s *chatService) WatchThread(ctx context.Context, userID string, fn func([]models.Message)) StopFunc {
	return StopFunc(s.messageRepo.WatchByUser(ctx, userID, fn))
}

// SendMessage appends one message to the conversation. Messages are never
// edited or deleted.
func (s *chatService) SendMessage(ctx context.Context, userID, userName, body, sender string) (*models.Message, error) {
	if body == "" {
		return nil, ErrEmptyMessage
	}
	if sender != models.SenderUser && sender != models.SenderAdmin {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidSender, sender)
	}

	msg := &models.Message{
		UserID:   userID,
		UserName: userName,
		Sender:   sender,
		Body:     body,
	}
	msgID, err := s.messageRepo.Append(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	msg.ID = msgID
	return msg, nil
}

// MarkThreadRead acknowledges the given message IDs from the caller's
// current thread snapshot.
func (s *chatService) MarkThreadRead(ctx context.Context, ids []string) error {
	return s.messageRepo.MarkRead(ctx, ids)
}
