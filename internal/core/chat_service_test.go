package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"townhub-backend/internal/models"
)

func msg(id, userID, userName, sender, body string, read bool, ts time.Time) models.Message {
	return models.Message{
		ID: id, UserID: userID, UserName: userName,
		Sender: sender, Body: body, Read: read, CreatedAt: ts,
	}
}

func TestThreadsGroupByUserWithLatestPreview(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := NewChatService(repo)

	var threads []models.ChatThread
	stop := svc.WatchThreads(context.Background(), func(ts []models.ChatThread) {
		threads = ts
	})
	defer stop()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	// Newest first, as WatchAll delivers.
	repo.watchFn([]models.Message{
		msg("m4", "bob", "Bob", models.SenderUser, "thanks!", false, base.Add(4*time.Minute)),
		msg("m3", "alice", "Alice", models.SenderAdmin, "we are on it", true, base.Add(3*time.Minute)),
		msg("m2", "bob", "Bob", models.SenderUser, "hello?", false, base.Add(2*time.Minute)),
		msg("m1", "alice", "Alice", models.SenderUser, "street light is out", false, base.Add(1*time.Minute)),
	})

	require.Len(t, threads, 2)

	assert.Equal(t, "bob", threads[0].UserID)
	assert.Equal(t, "thanks!", threads[0].LastMessage)
	assert.True(t, threads[0].Unread, "latest message is an unread resident message")

	assert.Equal(t, "alice", threads[1].UserID)
	assert.Equal(t, "we are on it", threads[1].LastMessage)
	assert.False(t, threads[1].Unread, "latest message is an admin reply")
}

func TestThreadUnreadIgnoresOlderUnreadWhenAdminRepliedLast(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := NewChatService(repo)

	var threads []models.ChatThread
	stop := svc.WatchThreads(context.Background(), func(ts []models.ChatThread) {
		threads = ts
	})
	defer stop()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	repo.watchFn([]models.Message{
		msg("m2", "alice", "Alice", models.SenderAdmin, "done", false, base.Add(time.Minute)),
		msg("m1", "alice", "Alice", models.SenderUser, "please fix", false, base),
	})

	require.Len(t, threads, 1)
	// The badge reflects only the thread's latest message.
	assert.False(t, threads[0].Unread)
}

func TestSendMessageValidation(t *testing.T) {
	svc := NewChatService(&fakeMessageRepo{})
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, "alice", "Alice", "", models.SenderUser)
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = svc.SendMessage(ctx, "alice", "Alice", "hi", "bot")
	assert.ErrorIs(t, err, ErrInvalidSender)
}

func TestSendMessageAppends(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := NewChatService(repo)

	sent, err := svc.SendMessage(context.Background(), "alice", "Alice", "hello", models.SenderUser)
	require.NoError(t, err)
	assert.NotEmpty(t, sent.ID)
	assert.False(t, sent.Read)
	require.Len(t, repo.msgs, 1)
	assert.Equal(t, "hello", repo.msgs[0].Body)
}

func TestMarkThreadReadForwardsSnapshotIDs(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := NewChatService(repo)

	require.NoError(t, svc.MarkThreadRead(context.Background(), []string{"m1", "m2"}))
	assert.Equal(t, []string{"m1", "m2"}, repo.marked)
}
