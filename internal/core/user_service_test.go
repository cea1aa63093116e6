package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"townhub-backend/internal/models"
)

func userFixture(t *testing.T) (UserService, *fakeUserRepo, *fakeNotificationRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	notifRepo := &fakeNotificationRepo{}
	notifications := NewNotificationService(notifRepo, nil, "", 10, zap.NewNop())
	return NewUserService(userRepo, notifications, nil, "", zap.NewNop()), userRepo, notifRepo
}

func TestInitializeProfileCreatesPendingResident(t *testing.T) {
	svc, userRepo, notifRepo := userFixture(t)

	user, err := svc.InitializeProfile(context.Background(), "uid1", "ada@example.com", "Ada")
	require.NoError(t, err)

	assert.Equal(t, models.RoleResident, user.Role)
	assert.Equal(t, models.ApprovalPending, user.ApprovalStatus)
	assert.Equal(t, 1, userRepo.creates)

	require.Len(t, notifRepo.created, 1)
	assert.Equal(t, models.NotificationRegistration, notifRepo.created[0].Type)
	assert.Equal(t, "Ada", notifRepo.created[0].RelatedUserName)
}

func TestInitializeProfileIsIdempotent(t *testing.T) {
	svc, userRepo, notifRepo := userFixture(t)
	ctx := context.Background()

	first, err := svc.InitializeProfile(ctx, "uid1", "ada@example.com", "Ada")
	require.NoError(t, err)

	second, err := svc.InitializeProfile(ctx, "uid1", "ada@example.com", "Ada Lovelace")
	require.NoError(t, err)

	// The second sign-in returns the stored profile unchanged and does not
	// fire a second registration event.
	assert.Equal(t, first.DisplayName, second.DisplayName)
	assert.Equal(t, 1, userRepo.creates)
	assert.Len(t, notifRepo.created, 1)
}

func TestInitializeProfileConcurrentFirstSignIn(t *testing.T) {
	svc, userRepo, notifRepo := userFixture(t)
	ctx := context.Background()

	first, err := svc.InitializeProfile(ctx, "uid1", "ada@example.com", "Ada")
	require.NoError(t, err)

	// A racing sign-in read before the first write landed: its lookup missed
	// and its create-only write loses. It must get the stored profile back
	// and must not fan out a second registration event.
	userRepo.missNextGet = true
	second, err := svc.InitializeProfile(ctx, "uid1", "ada@example.com", "Ada")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, userRepo.creates)
	assert.Len(t, notifRepo.created, 1)
}

func TestInitializeProfileRequiresIdentity(t *testing.T) {
	svc, _, _ := userFixture(t)

	_, err := svc.InitializeProfile(context.Background(), "", "ada@example.com", "Ada")
	assert.ErrorIs(t, err, ErrMissingIdentity)

	_, err = svc.InitializeProfile(context.Background(), "uid1", "", "Ada")
	assert.ErrorIs(t, err, ErrMissingIdentity)
}

func TestSetApproval(t *testing.T) {
	svc, userRepo, _ := userFixture(t)
	ctx := context.Background()

	_, err := svc.InitializeProfile(ctx, "uid1", "ada@example.com", "Ada")
	require.NoError(t, err)

	require.NoError(t, svc.SetApproval(ctx, "uid1", models.ApprovalApproved))
	assert.Equal(t, models.ApprovalApproved, userRepo.users["uid1"].ApprovalStatus)

	assert.ErrorIs(t, svc.SetApproval(ctx, "uid1", "maybe"), ErrInvalidApproval)
	assert.ErrorIs(t, svc.SetApproval(ctx, "ghost", models.ApprovalRejected), ErrUserNotFound)
}

func TestListPendingFiltersByStatus(t *testing.T) {
	svc, _, _ := userFixture(t)
	ctx := context.Background()

	_, err := svc.InitializeProfile(ctx, "uid1", "a@example.com", "A")
	require.NoError(t, err)
	_, err = svc.InitializeProfile(ctx, "uid2", "b@example.com", "B")
	require.NoError(t, err)
	require.NoError(t, svc.SetApproval(ctx, "uid2", models.ApprovalApproved))

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "uid1", pending[0].ID)
}
