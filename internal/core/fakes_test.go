package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"townhub-backend/internal/db"
	"townhub-backend/internal/models"
	"townhub-backend/pkg/messagequeue"
)

// In-memory fakes for the db interfaces. Watch-style methods hand the
// registered callback back to the test, which drives deliveries directly.

type fakeFeedRepo struct {
	mu        sync.Mutex
	callbacks map[string]func([]models.ActivityItem, error)
	stops     map[string]int
}

func newFakeFeedRepo() *fakeFeedRepo {
	return &fakeFeedRepo{
		callbacks: make(map[string]func([]models.ActivityItem, error)),
		stops:     make(map[string]int),
	}
}

func (f *fakeFeedRepo) WatchSource(ctx context.Context, collection string, cfg models.SourceConfig, window int, fn func([]models.ActivityItem, error)) db.Unsubscribe {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callbacks[collection] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.stops[collection]++
	}
}

func (f *fakeFeedRepo) emit(source string, items []models.ActivityItem, err error) {
	f.mu.Lock()
	fn := f.callbacks[source]
	f.mu.Unlock()
	fn(items, err)
}

type fakeNotificationRepo struct {
	created   []*models.Notification
	marked    []string
	batchIDs  []string
	watchFn   func([]models.Notification)
	createErr error
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *models.Notification) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, n)
	return fmt.Sprintf("n%d", len(f.created)), nil
}

func (f *fakeNotificationRepo) List(ctx context.Context, limit int) ([]models.Notification, error) {
	items := make([]models.Notification, 0, len(f.created))
	for i := len(f.created) - 1; i >= 0 && len(items) < limit; i-- {
		items = append(items, *f.created[i])
	}
	return items, nil
}

func (f *fakeNotificationRepo) Watch(ctx context.Context, limit int, fn func([]models.Notification)) db.Unsubscribe {
	f.watchFn = fn
	return func() {}
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id string) error {
	f.marked = append(f.marked, id)
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, ids []string) error {
	f.batchIDs = append([]string{}, ids...)
	return nil
}

type fakeQueue struct {
	published  map[string][][]byte
	publishErr error
}

var _ messagequeue.MessageQueue = (*fakeQueue)(nil)

func newFakeQueue() *fakeQueue {
	return &fakeQueue{published: make(map[string][][]byte)}
}

func (f *fakeQueue) Publish(queueName string, body []byte) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published[queueName] = append(f.published[queueName], body)
	return nil
}

func (f *fakeQueue) Consume(queueName string, handler func(body []byte)) error { return nil }
func (f *fakeQueue) Close() error                                              { return nil }

type fakePollRepo struct {
	polls   map[string]*models.Poll
	votes   map[string]map[string]*models.VoteRecord
	watchFn func(*models.VoteRecord)
	stops   int
}

func newFakePollRepo() *fakePollRepo {
	return &fakePollRepo{
		polls: make(map[string]*models.Poll),
		votes: make(map[string]map[string]*models.VoteRecord),
	}
}

func (f *fakePollRepo) Create(ctx context.Context, poll *models.Poll) (string, error) {
	id := fmt.Sprintf("poll%d", len(f.polls)+1)
	cp := *poll
	cp.ID = id
	f.polls[id] = &cp
	return id, nil
}

func (f *fakePollRepo) GetByID(ctx context.Context, pollID string) (*models.Poll, error) {
	poll, ok := f.polls[pollID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return poll, nil
}

func (f *fakePollRepo) List(ctx context.Context) ([]*models.Poll, error) {
	out := make([]*models.Poll, 0, len(f.polls))
	for _, p := range f.polls {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePollRepo) SetActive(ctx context.Context, pollID string, active bool) error {
	poll, ok := f.polls[pollID]
	if !ok {
		return db.ErrNotFound
	}
	poll.Active = active
	return nil
}

func (f *fakePollRepo) SetVote(ctx context.Context, pollID string, vote *models.VoteRecord) error {
	if f.votes[pollID] == nil {
		f.votes[pollID] = make(map[string]*models.VoteRecord)
	}
	cp := *vote
	f.votes[pollID][vote.UserID] = &cp
	return nil
}

func (f *fakePollRepo) GetVote(ctx context.Context, pollID, userID string) (*models.VoteRecord, error) {
	vote, ok := f.votes[pollID][userID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return vote, nil
}

func (f *fakePollRepo) WatchVote(ctx context.Context, pollID, userID string, fn func(*models.VoteRecord)) db.Unsubscribe {
	f.watchFn = fn
	return func() { f.stops++ }
}

func (f *fakePollRepo) Tally(ctx context.Context, pollID string) (*models.PollTally, error) {
	if _, ok := f.polls[pollID]; !ok {
		return nil, db.ErrNotFound
	}
	tally := &models.PollTally{PollID: pollID, Counts: make(map[string]int)}
	for _, vote := range f.votes[pollID] {
		tally.Counts[vote.Choice]++
		tally.Total++
	}
	return tally, nil
}

type fakeJobRepo struct {
	jobs map[string]*models.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*models.Job)}
}

func (f *fakeJobRepo) Create(ctx context.Context, job *models.Job) (string, error) {
	id := fmt.Sprintf("job%d", len(f.jobs)+1)
	cp := *job
	cp.ID = id
	f.jobs[id] = &cp
	return id, nil
}

func (f *fakeJobRepo) GetByID(ctx context.Context, jobID string) (*models.Job, error) {
	job, ok := f.jobs[jobID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return job, nil
}

func (f *fakeJobRepo) List(ctx context.Context) ([]*models.Job, error) {
	out := make([]*models.Job, 0, len(f.jobs))
	for _, j := range f.jobs {
		out = append(out, j)
	}
	return out, nil
}

func (f *fakeJobRepo) SetOpen(ctx context.Context, jobID string, open bool) error {
	job, ok := f.jobs[jobID]
	if !ok {
		return db.ErrNotFound
	}
	job.Open = open
	return nil
}

// fakeApplicationRepo mirrors the composite-key store: one document per
// (job, user), second create fails with ErrAlreadyExists.
type fakeApplicationRepo struct {
	apps map[string]*models.JobApplication
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[string]*models.JobApplication)}
}

func (f *fakeApplicationRepo) Create(ctx context.Context, app *models.JobApplication) error {
	key := models.ApplicationKey(app.JobID, app.UserID)
	if _, ok := f.apps[key]; ok {
		return db.ErrAlreadyExists
	}
	cp := *app
	cp.ID = key
	f.apps[key] = &cp
	return nil
}

func (f *fakeApplicationRepo) Get(ctx context.Context, jobID, userID string) (*models.JobApplication, error) {
	app, ok := f.apps[models.ApplicationKey(jobID, userID)]
	if !ok {
		return nil, db.ErrNotFound
	}
	return app, nil
}

func (f *fakeApplicationRepo) ListByJob(ctx context.Context, jobID string) ([]models.JobApplication, error) {
	out := make([]models.JobApplication, 0)
	for _, app := range f.apps {
		if app.JobID == jobID {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) SetStatus(ctx context.Context, jobID, userID, status string) error {
	app, ok := f.apps[models.ApplicationKey(jobID, userID)]
	if !ok {
		return db.ErrNotFound
	}
	app.Status = status
	return nil
}

type fakeMessageRepo struct {
	msgs    []*models.Message
	marked  []string
	watchFn func([]models.Message)
}

func (f *fakeMessageRepo) Append(ctx context.Context, msg *models.Message) (string, error) {
	cp := *msg
	cp.ID = fmt.Sprintf("m%d", len(f.msgs)+1)
	f.msgs = append(f.msgs, &cp)
	return cp.ID, nil
}

func (f *fakeMessageRepo) WatchAll(ctx context.Context, fn func([]models.Message)) db.Unsubscribe {
	f.watchFn = fn
	return func() {}
}

func (f *fakeMessageRepo) WatchByUser(ctx context.Context, userID string, fn func([]models.Message)) db.Unsubscribe {
	return func() {}
}

func (f *fakeMessageRepo) MarkRead(ctx context.Context, ids []string) error {
	f.marked = append(f.marked, ids...)
	return nil
}

type fakeUserRepo struct {
	users   map[string]*models.User
	creates int
	// missNextGet makes the next GetByID report NotFound even when the
	// profile exists, simulating a concurrent first sign-in that has not
	// become visible to the reader yet.
	missNextGet bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.creates++
	if _, ok := f.users[user.ID]; ok {
		return db.ErrAlreadyExists
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, userID string) (*models.User, error) {
	if f.missNextGet {
		f.missNextGet = false
		return nil, db.ErrNotFound
	}
	user, ok := f.users[userID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) SetApproval(ctx context.Context, userID, status string) error {
	user, ok := f.users[userID]
	if !ok {
		return db.ErrNotFound
	}
	user.ApprovalStatus = status
	return nil
}

func (f *fakeUserRepo) ListByApproval(ctx context.Context, status string) ([]*models.User, error) {
	out := make([]*models.User, 0)
	for _, u := range f.users {
		if u.ApprovalStatus == status {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeSubmissionRepo struct {
	subs map[string]*models.Submission
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{subs: make(map[string]*models.Submission)}
}

func (f *fakeSubmissionRepo) Create(ctx context.Context, sub *models.Submission) (string, error) {
	if err := sub.Validate(); err != nil {
		return "", err
	}
	id := fmt.Sprintf("sub%d", len(f.subs)+1)
	cp := *sub
	cp.ID = id
	f.subs[id] = &cp
	return id, nil
}

func (f *fakeSubmissionRepo) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	sub, ok := f.subs[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return sub, nil
}

func (f *fakeSubmissionRepo) List(ctx context.Context) ([]*models.Submission, error) {
	out := make([]*models.Submission, 0, len(f.subs))
	for _, s := range f.subs {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSubmissionRepo) ListByUser(ctx context.Context, userID string) ([]*models.Submission, error) {
	out := make([]*models.Submission, 0)
	for _, s := range f.subs {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubmissionRepo) SetStatus(ctx context.Context, id, status string) error {
	sub, ok := f.subs[id]
	if !ok {
		return db.ErrNotFound
	}
	sub.Status = status
	return nil
}

type fakeListingRepo struct {
	listings map[string]*models.Listing
	deleted  []string
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[string]*models.Listing)}
}

func (f *fakeListingRepo) Create(ctx context.Context, listing *models.Listing) (string, error) {
	id := fmt.Sprintf("listing%d", len(f.listings)+1)
	cp := *listing
	cp.ID = id
	f.listings[id] = &cp
	return id, nil
}

func (f *fakeListingRepo) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	listing, ok := f.listings[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return listing, nil
}

func (f *fakeListingRepo) List(ctx context.Context, limit int) ([]*models.Listing, error) {
	out := make([]*models.Listing, 0, len(f.listings))
	for _, l := range f.listings {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeListingRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.Listing, error) {
	out := make([]*models.Listing, 0)
	for _, l := range f.listings {
		if l.OwnerID == ownerID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeListingRepo) Update(ctx context.Context, listing *models.Listing) error {
	if _, ok := f.listings[listing.ID]; !ok {
		return db.ErrNotFound
	}
	f.listings[listing.ID] = listing
	return nil
}

func (f *fakeListingRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.listings[id]; !ok {
		return db.ErrNotFound
	}
	delete(f.listings, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeDonationRepo struct {
	donations []*models.Donation
}

func (f *fakeDonationRepo) Create(ctx context.Context, donation *models.Donation) (string, error) {
	cp := *donation
	cp.ID = fmt.Sprintf("don%d", len(f.donations)+1)
	f.donations = append(f.donations, &cp)
	return cp.ID, nil
}

func (f *fakeDonationRepo) List(ctx context.Context, limit int) ([]*models.Donation, error) {
	out := make([]*models.Donation, 0, len(f.donations))
	for _, d := range f.donations {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDonationRepo) Total(ctx context.Context) (float64, error) {
	var total float64
	for _, d := range f.donations {
		total += d.Amount
	}
	return total, nil
}

type fakeStatsRepo struct {
	counts map[string]int64
	calls  int
}

func (f *fakeStatsRepo) Count(ctx context.Context, collection string) (int64, error) {
	f.calls++
	return f.counts[collection], nil
}

// fakeCache is a plain map cache with no expiry.
type fakeCache struct {
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	return f.data[key], nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if s, ok := value.(string); ok {
		f.data[key] = s
	}
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}
