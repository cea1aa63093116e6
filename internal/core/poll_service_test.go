package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"townhub-backend/internal/models"
)

func openPoll(t *testing.T, repo *fakePollRepo) string {
	t.Helper()
	id, err := repo.Create(context.Background(), &models.Poll{
		Question: "Renovate the town square?",
		Options:  []string{"yes", "no"},
		Active:   true,
		Deadline: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	return id
}

func TestCastVoteRecordsChoice(t *testing.T) {
	repo := newFakePollRepo()
	svc := NewPollService(repo)
	pollID := openPoll(t, repo)

	require.NoError(t, svc.CastVote(context.Background(), pollID, "alice", "yes"))

	voted, choice, err := svc.HasVoted(context.Background(), pollID, "alice")
	require.NoError(t, err)
	assert.True(t, voted)
	assert.Equal(t, "yes", choice)
}

func TestRepeatedCastConvergesToSingleRecord(t *testing.T) {
	repo := newFakePollRepo()
	svc := NewPollService(repo)
	pollID := openPoll(t, repo)
	ctx := context.Background()

	require.NoError(t, svc.CastVote(ctx, pollID, "alice", "yes"))
	require.NoError(t, svc.CastVote(ctx, pollID, "alice", "no"))

	// One record, carrying the latest choice.
	assert.Len(t, repo.votes[pollID], 1)
	_, choice, err := svc.HasVoted(ctx, pollID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "no", choice)

	tally, err := svc.Tally(ctx, pollID)
	require.NoError(t, err)
	assert.Equal(t, 1, tally.Total)
	assert.Equal(t, 1, tally.Counts["no"])
	assert.Zero(t, tally.Counts["yes"])
}

func TestCastVoteRejectsClosedPoll(t *testing.T) {
	repo := newFakePollRepo()
	svc := NewPollService(repo)
	pollID := openPoll(t, repo)
	ctx := context.Background()

	require.NoError(t, svc.ClosePoll(ctx, pollID))

	err := svc.CastVote(ctx, pollID, "alice", "yes")
	assert.ErrorIs(t, err, ErrPollClosed)
}

func TestCastVoteRejectsExpiredDeadline(t *testing.T) {
	repo := newFakePollRepo()
	svc := NewPollService(repo)
	pollID, err := repo.Create(context.Background(), &models.Poll{
		Question: "Old poll",
		Options:  []string{"yes", "no"},
		Active:   true,
		Deadline: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	// Still flagged active, but past its deadline.
	err = svc.CastVote(context.Background(), pollID, "alice", "yes")
	assert.ErrorIs(t, err, ErrPollClosed)
}

func TestCastVoteRejectsUnknownChoice(t *testing.T) {
	repo := newFakePollRepo()
	svc := NewPollService(repo)
	pollID := openPoll(t, repo)

	err := svc.CastVote(context.Background(), pollID, "alice", "maybe")
	assert.ErrorIs(t, err, ErrInvalidPollChoice)
}

func TestCastVoteRejectsMissingPoll(t *testing.T) {
	svc := NewPollService(newFakePollRepo())

	err := svc.CastVote(context.Background(), "nope", "alice", "yes")
	assert.ErrorIs(t, err, ErrPollNotFound)
}

func TestHasVotedFalseBeforeFirstCast(t *testing.T) {
	repo := newFakePollRepo()
	svc := NewPollService(repo)
	pollID := openPoll(t, repo)

	voted, choice, err := svc.HasVoted(context.Background(), pollID, "alice")
	require.NoError(t, err)
	assert.False(t, voted)
	assert.Empty(t, choice)
}

func TestWatchVoteDeliversNilThenRecord(t *testing.T) {
	repo := newFakePollRepo()
	svc := NewPollService(repo)
	pollID := openPoll(t, repo)

	var seen []*models.VoteRecord
	stop := svc.WatchVote(context.Background(), pollID, "alice", func(vote *models.VoteRecord) {
		seen = append(seen, vote)
	})
	require.NotNil(t, repo.watchFn)

	// No vote yet, then the first cast arrives.
	repo.watchFn(nil)
	repo.watchFn(&models.VoteRecord{UserID: "alice", Choice: "yes"})

	require.Len(t, seen, 2)
	assert.Nil(t, seen[0])
	assert.Equal(t, "yes", seen[1].Choice)

	stop()
	assert.Equal(t, 1, repo.stops)
}

func TestCreatePollValidation(t *testing.T) {
	svc := NewPollService(newFakePollRepo())
	ctx := context.Background()
	future := time.Now().Add(time.Hour)

	_, err := svc.CreatePoll(ctx, "", []string{"a", "b"}, future)
	assert.ErrorIs(t, err, ErrInvalidPoll)

	_, err = svc.CreatePoll(ctx, "q", []string{"only"}, future)
	assert.ErrorIs(t, err, ErrInvalidPoll)

	_, err = svc.CreatePoll(ctx, "q", []string{"a", "b"}, time.Now().Add(-time.Hour))
	assert.ErrorIs(t, err, ErrInvalidPoll)

	poll, err := svc.CreatePoll(ctx, "q", []string{"a", "b"}, future)
	require.NoError(t, err)
	assert.True(t, poll.Active)
	assert.NotEmpty(t, poll.ID)
}
