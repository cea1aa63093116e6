package core

import (
	"context"
	"errors"
	"fmt"

	"townhub-backend/internal/db"
	"townhub-backend/internal/models"
)

// Custom errors for the ApplicationService.
var (
	ErrJobNotFound        = errors.New("job not found")
	ErrJobClosed          = errors.New("job is closed and no longer accepts applications")
	ErrAlreadyApplied     = errors.New("an application for this job already exists for the user")
	ErrInvalidApplication = errors.New("application requires a job, a user and a full name")
	ErrInvalidJob         = errors.New("job requires a title and a description")
)

// applicationService implements ApplicationService.
type applicationService struct {
	jobRepo       db.JobRepository
	appRepo       db.ApplicationRepository
	notifications NotificationService
}

// NewApplicationService creates a new ApplicationService instance.
func NewApplicationService(jobRepo db.JobRepository, appRepo db.ApplicationRepository, notifications NotificationService) ApplicationService {
	return &applicationService{
		jobRepo:       jobRepo,
		appRepo:       appRepo,
		notifications: notifications,
	}
}

// CreateJob publishes a new open job posting.
func (s *applicationService) CreateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	if job.Title == "" || job.Description == "" {
		return nil, ErrInvalidJob
	}
	job.Open = true
	jobID, err := s.jobRepo.Create(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	job.ID = jobID
	return job, nil
}

// ListJobs returns all job postings, newest first.
func (s *applicationService) ListJobs(ctx context.Context) ([]*models.Job, error) {
	return s.jobRepo.List(ctx)
}

// CloseJob stops a job from accepting applications.
func (s *applicationService) CloseJob(ctx context.Context, jobID string) error {
	if err := s.jobRepo.SetOpen(ctx, jobID, false); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
		}
		return err
	}
	return nil
}

// SubmitApplication records one application per (job, user). Uniqueness is
// enforced by the store: the application document lives at a key derived
// from the pair, and a second create at that key fails with AlreadyExists.
// Two near-simultaneous submissions therefore cannot both succeed.
func (s *applicationService) SubmitApplication(ctx context.Context, app *models.JobApplication) error {
	if app == nil || app.JobID == "" || app.UserID == "" || app.FullName == "" {
		return ErrInvalidApplication
	}

	job, err := s.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrJobNotFound, app.JobID)
		}
		return fmt.Errorf("failed to load job '%s' for application: %w", app.JobID, err)
	}
	if !job.Open {
		return fmt.Errorf("%w: %s", ErrJobClosed, app.JobID)
	}

	app.Status = models.ApplicationSubmitted
	if err := s.appRepo.Create(ctx, app); err != nil {
		if errors.Is(err, db.ErrAlreadyExists) {
			return fmt.Errorf("%w: job %s", ErrAlreadyApplied, app.JobID)
		}
		return fmt.Errorf("failed to submit application for job '%s': %w", app.JobID, err)
	}

	s.notifications.Notify(ctx, models.NotificationApplication,
		fmt.Sprintf("New application for %q", job.Title), app.FullName)
	return nil
}

// HasApplied reports whether the user already has an application for the
// job.
func (s *applicationService) HasApplied(ctx context.Context, jobID, userID string) (bool, error) {
	_, err := s.appRepo.Get(ctx, jobID, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check application for job '%s': %w", jobID, err)
	}
	return true, nil
}

// ListApplications returns all applications for one job, newest first.
func (s *applicationService) ListApplications(ctx context.Context, jobID string) ([]models.JobApplication, error) {
	return s.appRepo.ListByJob(ctx, jobID)
}

// SetApplicationStatus moves one application through the review states.
func (s *applicationService) SetApplicationStatus(ctx context.Context, jobID, userID, status string) error {
	switch status {
	case models.ApplicationSubmitted, models.ApplicationReviewed,
		models.ApplicationAccepted, models.ApplicationRejected:
	default:
		return fmt.Errorf("invalid application status '%s'", status)
	}
	if err := s.appRepo.SetStatus(ctx, jobID, userID, status); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: job %s", ErrJobNotFound, jobID)
		}
		return err
	}
	return nil
}
