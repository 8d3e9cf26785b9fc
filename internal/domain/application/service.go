package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	repository "github.com/mlevin/applytrack/internal/repository/errs"
)

// Service handles application business logic. Ordering concerns are
// delegated to the board.
type Service struct {
	apps   Repository
	board  Board
	logger *slog.Logger
}

// NewService creates a new application service.
func NewService(apps Repository, board Board, logger *slog.Logger) *Service {
	return &Service{apps: apps, board: board, logger: logger}
}

// CreateRequest describes a new application. Status defaults to Applied and
// DateApplied to today when absent, matching what the board UI sends.
type CreateRequest struct {
	CompanyName   string
	JobTitle      string
	Status        Status
	DateApplied   *time.Time
	JobPostingURL *string
	SalaryNotes   *string
	PrivateNotes  *string
	ContactName   *string
	ContactEmail  *string
	ReminderDate  *time.Time
}

// Create validates the request and appends the application at the end of its
// column.
func (s *Service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Application, error) {
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.JobTitle = strings.TrimSpace(req.JobTitle)
	if req.CompanyName == "" || req.JobTitle == "" {
		return nil, ErrInvalidInput
	}
	if req.Status == "" {
		req.Status = StatusApplied
	}
	if !req.Status.Valid() {
		return nil, ErrUnknownStatus
	}

	now := time.Now()
	applied := now
	if req.DateApplied != nil {
		applied = *req.DateApplied
	}

	app := &Application{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		CompanyName:   req.CompanyName,
		JobTitle:      req.JobTitle,
		Status:        req.Status,
		DateApplied:   applied,
		JobPostingURL: req.JobPostingURL,
		SalaryNotes:   req.SalaryNotes,
		PrivateNotes:  req.PrivateNotes,
		ContactName:   req.ContactName,
		ContactEmail:  req.ContactEmail,
		ReminderDate:  req.ReminderDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.board.Insert(ctx, ownerID, app); err != nil {
		return nil, fmt.Errorf("placing application: %w", err)
	}

	s.logger.Info("application created", "application", app.ID, "status", app.Status)
	return app, nil
}

// Get returns one application by id.
func (s *Service) Get(ctx context.Context, ownerID, id string) (*Application, error) {
	app, err := s.apps.Get(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting application: %w", err)
	}
	return app, nil
}

// List returns the user's whole board ordered by (status, position).
func (s *Service) List(ctx context.Context, ownerID string) ([]Application, error) {
	apps, err := s.apps.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}
	return apps, nil
}

// Update patches descriptive fields. Status and position are not touched
// here; moves go through the board's reposition operation.
func (s *Service) Update(ctx context.Context, ownerID, id string, patch FieldPatch) (*Application, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	app, err := s.apps.UpdateFields(ctx, ownerID, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("updating application: %w", err)
	}
	return app, nil
}

// Delete removes an application and closes the gap it leaves in its column.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.board.Remove(ctx, ownerID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("removing application: %w", err)
	}
	s.logger.Info("application deleted", "application", id)
	return nil
}
