package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/casetrackhq/casetrack/internal/models"
)

// CaseRepository defines the persistence operations needed by the CaseService.
type CaseRepository interface {
	// ListCases retrieves all cases ordered by expiry date ascending.
	ListCases(ctx context.Context) ([]models.Case, error)
	// GetCaseByID fetches a single case, returning sql.ErrNoRows when unknown.
	GetCaseByID(ctx context.Context, id string) (*models.Case, error)
	// UpdateCase overwrites the editable fields of an existing case.
	UpdateCase(ctx context.Context, c models.Case) (*models.Case, error)
	// DeleteCase removes a case, returning sql.ErrNoRows when unknown.
	DeleteCase(ctx context.Context, id string) error
}

// CaseService implements dashboard case operations.
type CaseService struct {
	// repo is the underlying persistence repository.
	repo CaseRepository
}

// NewCaseService constructs a CaseService with the provided CaseRepository.
func NewCaseService(repo CaseRepository) *CaseService {
	return &CaseService{repo: repo}
}

// List returns every tracked case, soonest expiry first.
func (s *CaseService) List(ctx context.Context) ([]models.Case, error) {
	return s.repo.ListCases(ctx)
}

// GetByID returns one case or ErrNotFound.
func (s *CaseService) GetByID(ctx context.Context, id string) (*models.Case, error) {
	c, err := s.repo.GetCaseByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

// Update validates and stores edited case fields, stamping last_updated_at.
// The required fields must be present and the expiry date canonical, keeping
// the no-null-expiry invariant intact on the edit path as well.
func (s *CaseService) Update(ctx context.Context, id string, c models.Case) (*models.Case, error) {
	if c.EmployeeName == "" || c.VisaType == "" || c.ExpiryDate == "" {
		return nil, fmt.Errorf("%w: employee_name, visa_type and expiry_date are required", ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", c.ExpiryDate); err != nil {
		return nil, fmt.Errorf("%w: expiry_date must be YYYY-MM-DD", ErrValidation)
	}

	c.ID = id
	c.LastUpdatedAt = time.Now().UTC().Format(time.RFC3339)

	updated, err := s.repo.UpdateCase(ctx, c)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return updated, err
}

// Delete removes a case or returns ErrNotFound.
func (s *CaseService) Delete(ctx context.Context, id string) error {
	err := s.repo.DeleteCase(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
