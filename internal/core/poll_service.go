package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"townhub-backend/internal/db"
	"townhub-backend/internal/models"
)

// Custom errors for the PollService.
var (
	ErrPollNotFound      = errors.New("poll not found")
	ErrPollClosed        = errors.New("poll is closed and no longer accepts votes")
	ErrInvalidPollChoice = errors.New("choice is not one of the poll's options")
	ErrInvalidPoll       = errors.New("poll requires a question, at least two options and a future deadline")
)

// pollService implements PollService.
type pollService struct {
	pollRepo db.PollRepository
}

// NewPollService creates a new PollService instance.
func NewPollService(pollRepo db.PollRepository) PollService {
	return &pollService{pollRepo: pollRepo}
}

// CreatePoll creates an active poll with the given deadline.
func (s *pollService) CreatePoll(ctx context.Context, question string, options []string, deadline time.Time) (*models.Poll, error) {
	if question == "" || len(options) < 2 || !deadline.After(time.Now()) {
		return nil, ErrInvalidPoll
	}

	poll := &models.Poll{
		Question: question,
		Options:  options,
		Active:   true,
		Deadline: deadline.UTC(),
	}
	pollID, err := s.pollRepo.Create(ctx, poll)
	if err != nil {
		return nil, fmt.Errorf("failed to create poll: %w", err)
	}
	poll.ID = pollID
	return poll, nil
}

// ListPolls returns all polls, newest first.
func (s *pollService) ListPolls(ctx context.Context) ([]*models.Poll, error) {
	return s.pollRepo.List(ctx)
}

// ClosePoll deactivates a poll. There is no reopen operation; once closed a
// poll stays read-only.
func (s *pollService) ClosePoll(ctx context.Context, pollID string) error {
	if err := s.pollRepo.SetActive(ctx, pollID, false); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrPollNotFound, pollID)
		}
		return err
	}
	return nil
}

// CastVote records the caller's vote. The vote record's key is the user ID,
// so casting twice converges to a single record with the latest choice;
// there is no path to a duplicate even under concurrent submission.
func (s *pollService) CastVote(ctx context.Context, pollID, userID, choice string) error {
	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrPollNotFound, pollID)
		}
		return fmt.Errorf("failed to load poll '%s' for voting: %w", pollID, err)
	}

	if !poll.AcceptsVotes(time.Now()) {
		return fmt.Errorf("%w: %s", ErrPollClosed, pollID)
	}

	valid := false
	for _, option := range poll.Options {
		if option == choice {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: '%s'", ErrInvalidPollChoice, choice)
	}

	vote := &models.VoteRecord{UserID: userID, Choice: choice}
	if err := s.pollRepo.SetVote(ctx, pollID, vote); err != nil {
		return fmt.Errorf("failed to record vote for poll '%s': %w", pollID, err)
	}
	return nil
}

// HasVoted reports whether the user has voted and with what choice.
func (s *pollService) HasVoted(ctx context.Context, pollID, userID string) (bool, string, error) {
	vote, err := s.pollRepo.GetVote(ctx, pollID, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return false, "", nil
		}
		return false, "", fmt.Errorf("failed to check vote for poll '%s': %w", pollID, err)
	}
	return true, vote.Choice, nil
}

// WatchVote delivers the caller's vote record live; nil while none exists.
func (s *pollService) WatchVote(ctx context.Context, pollID, userID string, fn func(*models.VoteRecord)) StopFunc {
	return StopFunc(s.pollRepo.WatchVote(ctx, pollID, userID, fn))
}

// Tally returns the per-option counts for a poll.
func (s *pollService) Tally(ctx context.Context, pollID string) (*models.PollTally, error) {
	tally, err := s.pollRepo.Tally(ctx, pollID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPollNotFound, pollID)
		}
		return nil, err
	}
	return tally, nil
}
