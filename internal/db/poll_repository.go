package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"townhub-backend/internal/models"
)

const (
	pollsCollection = "polls"
	votesCollection = "votes"
)

// firestorePollRepository implements PollRepository using Firestore. Votes
// live in a subcollection under each poll, keyed by voter UID.
type firestorePollRepository struct {
	client *firestore.Client
}

// NewFirestorePollRepository creates a new poll repository.
func NewFirestorePollRepository(client *firestore.Client) PollRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for PollRepository.")
	}
	return &firestorePollRepository{client: client}
}

// Create adds a new poll with an auto-generated ID.
func (r *firestorePollRepository) Create(ctx context.Context, poll *models.Poll) (string, error) {
	docRef := r.client.Collection(pollsCollection).NewDoc()
	poll.ID = docRef.ID
	if _, err := docRef.Create(ctx, poll); err != nil {
		return "", fmt.Errorf("failed to create poll: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a poll by ID.
func (r *firestorePollRepository) GetByID(ctx context.Context, pollID string) (*models.Poll, error) {
	if pollID == "" {
		return nil, errors.New("pollID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(pollsCollection).Doc(pollID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("poll '%s': %w", pollID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get poll '%s': %w", pollID, err)
	}

	var poll models.Poll
	if err := docSnap.DataTo(&poll); err != nil {
		return nil, fmt.Errorf("failed to decode poll data for '%s': %w", pollID, err)
	}
	poll.ID = docSnap.Ref.ID
	return &poll, nil
}

// List returns all polls, newest first.
func (r *firestorePollRepository) List(ctx context.Context) ([]*models.Poll, error) {
	iter := r.client.Collection(pollsCollection).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var polls []*models.Poll
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate polls: %w", err)
		}

		var poll models.Poll
		if err := doc.DataTo(&poll); err != nil {
			log.Printf("Error decoding poll data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		poll.ID = doc.Ref.ID
		polls = append(polls, &poll)
	}
	return polls, nil
}

// SetActive flips the poll's active flag. Deactivation is how a poll is
// closed ahead of its deadline; there is no path back to active once the
// deadline has passed.
func (r *firestorePollRepository) SetActive(ctx context.Context, pollID string, active bool) error {
	if pollID == "" {
		return errors.New("pollID cannot be empty for SetActive operation")
	}
	_, err := r.client.Collection(pollsCollection).Doc(pollID).Update(ctx, []firestore.Update{
		{Path: "active", Value: active},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("poll '%s': %w", pollID, ErrNotFound)
		}
		return fmt.Errorf("failed to set active flag for poll '%s': %w", pollID, err)
	}
	return nil
}

func (r *firestorePollRepository) voteRef(pollID, userID string) *firestore.DocumentRef {
	return r.client.Collection(pollsCollection).Doc(pollID).Collection(votesCollection).Doc(userID)
}

// SetVote writes the caller's vote record at the key derived from their UID.
// A second cast by the same user overwrites the same document, so at most
// one record per (poll, user) can ever exist.
func (r *firestorePollRepository) SetVote(ctx context.Context, pollID string, vote *models.VoteRecord) error {
	if pollID == "" || vote == nil || vote.UserID == "" {
		return errors.New("pollID and vote.UserID are required for SetVote operation")
	}
	if _, err := r.voteRef(pollID, vote.UserID).Set(ctx, vote); err != nil {
		return fmt.Errorf("failed to set vote for poll '%s' user '%s': %w", pollID, vote.UserID, err)
	}
	return nil
}

// GetVote retrieves the caller's vote record, or ErrNotFound when the user
// has not voted.
func (r *firestorePollRepository) GetVote(ctx context.Context, pollID, userID string) (*models.VoteRecord, error) {
	if pollID == "" || userID == "" {
		return nil, errors.New("pollID and userID are required for GetVote operation")
	}
	docSnap, err := r.voteRef(pollID, userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("vote for poll '%s' user '%s': %w", pollID, userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get vote for poll '%s' user '%s': %w", pollID, userID, err)
	}

	var vote models.VoteRecord
	if err := docSnap.DataTo(&vote); err != nil {
		return nil, fmt.Errorf("failed to decode vote data for poll '%s' user '%s': %w", pollID, userID, err)
	}
	vote.UserID = docSnap.Ref.ID
	return &vote, nil
}

// WatchVote delivers the caller's vote record on every change, nil while no
// record exists. Listener errors are logged and delivered as nil.
func (r *firestorePollRepository) WatchVote(ctx context.Context, pollID, userID string, fn func(*models.VoteRecord)) Unsubscribe {
	return watchDoc(ctx, r.voteRef(pollID, userID), func(doc *firestore.DocumentSnapshot, err error) {
		if err != nil {
			log.Printf("vote watch error (poll %s, user %s): %v", pollID, userID, err)
			fn(nil)
			return
		}
		if doc == nil {
			fn(nil)
			return
		}
		var vote models.VoteRecord
		if err := doc.DataTo(&vote); err != nil {
			log.Printf("Error decoding vote data (poll %s, user %s): %v.", pollID, userID, err)
			fn(nil)
			return
		}
		vote.UserID = doc.Ref.ID
		fn(&vote)
	})
}

// Tally counts votes per option by iterating the subcollection. Fine at
// municipal-poll scale; a poll here has hundreds of votes, not millions.
func (r *firestorePollRepository) Tally(ctx context.Context, pollID string) (*models.PollTally, error) {
	if pollID == "" {
		return nil, errors.New("pollID cannot be empty for Tally operation")
	}

	iter := r.client.Collection(pollsCollection).Doc(pollID).Collection(votesCollection).Documents(ctx)
	defer iter.Stop()

	tally := &models.PollTally{PollID: pollID, Counts: make(map[string]int)}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate votes for poll '%s': %w", pollID, err)
		}

		var vote models.VoteRecord
		if err := doc.DataTo(&vote); err != nil {
			log.Printf("Error decoding vote data (poll %s, doc %s): %v. Skipping.", pollID, doc.Ref.ID, err)
			continue
		}
		tally.Counts[vote.Choice]++
		tally.Total++
	}
	return tally, nil
}
