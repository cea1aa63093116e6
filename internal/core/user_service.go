package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"townhub-backend/internal/db"
	"townhub-backend/internal/models"
	"townhub-backend/pkg/mailer"
)

// Custom errors for the UserService.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidApproval = errors.New("approval status must be pending, approved or rejected")
	ErrMissingIdentity = errors.New("uid and email are required")
)

// userService implements UserService.
type userService struct {
	userRepo      db.UserRepository
	notifications NotificationService
	mail          *mailer.Mailer
	adminEmail    string
	logger        *zap.Logger
}

// NewUserService creates a new UserService instance. mail may be nil when
// SMTP is not configured; registration mail is then skipped.
func NewUserService(userRepo db.UserRepository, notifications NotificationService, mail *mailer.Mailer, adminEmail string, logger *zap.Logger) UserService {
	return &userService{
		userRepo:      userRepo,
		notifications: notifications,
		mail:          mail,
		adminEmail:    adminEmail,
		logger:        logger,
	}
}

// InitializeProfile ensures a backend profile exists for a freshly
// signed-in Firebase user. The first call creates a pending resident
// profile and fans out the registration event; later calls return the
// existing profile untouched.
func (s *userService) InitializeProfile(ctx context.Context, uid, email, displayName string) (*models.User, error) {
	if uid == "" || email == "" {
		return nil, ErrMissingIdentity
	}

	existing, err := s.userRepo.GetByID(ctx, uid)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user '%s': %w", uid, err)
	}

	user := &models.User{
		ID:             uid,
		Email:          email,
		DisplayName:    displayName,
		Role:           models.RoleResident,
		ApprovalStatus: models.ApprovalPending,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent first sign-in won the create-only write; return its
		// profile and skip the registration fan-out, which it already did.
		if errors.Is(err, db.ErrAlreadyExists) {
			return s.userRepo.GetByID(ctx, uid)
		}
		return nil, fmt.Errorf("failed to create user profile '%s': %w", uid, err)
	}

	s.notifications.Notify(ctx, models.NotificationRegistration,
		"New resident registration awaiting approval", displayName)

	if s.mail != nil && s.adminEmail != "" {
		body := fmt.Sprintf("A new resident registered on the portal:\n\n%s <%s>\n\nReview the registration in the admin console.", displayName, email)
		if err := s.mail.Send(s.adminEmail, "New resident registration", body); err != nil {
			s.logger.Warn("failed to send registration mail", zap.Error(err))
		}
	}

	return user, nil
}

// GetProfile returns one user profile.
func (s *userService) GetProfile(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, uid)
		}
		return nil, err
	}
	return user, nil
}

// SetApproval moves a resident through the approval workflow.
func (s *userService) SetApproval(ctx context.Context, uid, status string) error {
	switch status {
	case models.ApprovalPending, models.ApprovalApproved, models.ApprovalRejected:
	default:
		return fmt.Errorf("%w: '%s'", ErrInvalidApproval, status)
	}
	if err := s.userRepo.SetApproval(ctx, uid, status); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrUserNotFound, uid)
		}
		return err
	}
	return nil
}

// ListPending returns residents awaiting approval, newest first.
func (s *userService) ListPending(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.ListByApproval(ctx, models.ApprovalPending)
}
