package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"townhub-backend/internal/models"
)

func applicationFixture(t *testing.T) (ApplicationService, *fakeJobRepo, *fakeApplicationRepo, *fakeNotificationRepo) {
	t.Helper()
	jobRepo := newFakeJobRepo()
	appRepo := newFakeApplicationRepo()
	notifRepo := &fakeNotificationRepo{}
	notifications := NewNotificationService(notifRepo, nil, "", 10, zap.NewNop())
	return NewApplicationService(jobRepo, appRepo, notifications), jobRepo, appRepo, notifRepo
}

func openJob(t *testing.T, repo *fakeJobRepo) string {
	t.Helper()
	id, err := repo.Create(context.Background(), &models.Job{
		Title:       "Park caretaker",
		Description: "Seasonal position",
		Open:        true,
	})
	require.NoError(t, err)
	return id
}

func TestSubmitApplicationOncePerUser(t *testing.T) {
	svc, jobRepo, appRepo, notifRepo := applicationFixture(t)
	jobID := openJob(t, jobRepo)
	ctx := context.Background()

	first := &models.JobApplication{JobID: jobID, UserID: "alice", FullName: "Alice A"}
	require.NoError(t, svc.SubmitApplication(ctx, first))
	assert.Equal(t, models.ApplicationSubmitted, first.Status)

	second := &models.JobApplication{JobID: jobID, UserID: "alice", FullName: "Alice A"}
	err := svc.SubmitApplication(ctx, second)
	assert.ErrorIs(t, err, ErrAlreadyApplied)

	// The ledger holds exactly one record and only one admin notification
	// went out.
	assert.Len(t, appRepo.apps, 1)
	assert.Len(t, notifRepo.created, 1)
	assert.Equal(t, models.NotificationApplication, notifRepo.created[0].Type)
}

func TestSubmitApplicationDifferentJobsAllowed(t *testing.T) {
	svc, jobRepo, appRepo, _ := applicationFixture(t)
	jobA := openJob(t, jobRepo)
	jobB := openJob(t, jobRepo)
	ctx := context.Background()

	require.NoError(t, svc.SubmitApplication(ctx, &models.JobApplication{JobID: jobA, UserID: "alice", FullName: "Alice A"}))
	require.NoError(t, svc.SubmitApplication(ctx, &models.JobApplication{JobID: jobB, UserID: "alice", FullName: "Alice A"}))

	assert.Len(t, appRepo.apps, 2)
}

func TestSubmitApplicationRejectsClosedJob(t *testing.T) {
	svc, jobRepo, _, notifRepo := applicationFixture(t)
	jobID := openJob(t, jobRepo)
	ctx := context.Background()

	require.NoError(t, svc.CloseJob(ctx, jobID))

	err := svc.SubmitApplication(ctx, &models.JobApplication{JobID: jobID, UserID: "alice", FullName: "Alice A"})
	assert.ErrorIs(t, err, ErrJobClosed)
	assert.Empty(t, notifRepo.created)
}

func TestSubmitApplicationRejectsMissingJob(t *testing.T) {
	svc, _, _, _ := applicationFixture(t)

	err := svc.SubmitApplication(context.Background(), &models.JobApplication{JobID: "nope", UserID: "alice", FullName: "Alice A"})
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestSubmitApplicationValidation(t *testing.T) {
	svc, jobRepo, _, _ := applicationFixture(t)
	jobID := openJob(t, jobRepo)
	ctx := context.Background()

	assert.ErrorIs(t, svc.SubmitApplication(ctx, nil), ErrInvalidApplication)
	assert.ErrorIs(t, svc.SubmitApplication(ctx, &models.JobApplication{JobID: jobID, UserID: "alice"}), ErrInvalidApplication)
	assert.ErrorIs(t, svc.SubmitApplication(ctx, &models.JobApplication{JobID: jobID, FullName: "Alice A"}), ErrInvalidApplication)
}

func TestHasApplied(t *testing.T) {
	svc, jobRepo, _, _ := applicationFixture(t)
	jobID := openJob(t, jobRepo)
	ctx := context.Background()

	applied, err := svc.HasApplied(ctx, jobID, "alice")
	require.NoError(t, err)
	assert.False(t, applied)

	require.NoError(t, svc.SubmitApplication(ctx, &models.JobApplication{JobID: jobID, UserID: "alice", FullName: "Alice A"}))

	applied, err = svc.HasApplied(ctx, jobID, "alice")
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestSetApplicationStatus(t *testing.T) {
	svc, jobRepo, appRepo, _ := applicationFixture(t)
	jobID := openJob(t, jobRepo)
	ctx := context.Background()

	require.NoError(t, svc.SubmitApplication(ctx, &models.JobApplication{JobID: jobID, UserID: "alice", FullName: "Alice A"}))

	require.NoError(t, svc.SetApplicationStatus(ctx, jobID, "alice", models.ApplicationAccepted))
	app, err := appRepo.Get(ctx, jobID, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationAccepted, app.Status)

	assert.Error(t, svc.SetApplicationStatus(ctx, jobID, "alice", "bogus"))
}
