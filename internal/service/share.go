package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/casetrackhq/casetrack/internal/models"
	"github.com/google/uuid"
)

// ShareRepository defines the persistence operations needed by the ShareService.
type ShareRepository interface {
	// InsertLink persists a token-to-case mapping.
	InsertLink(ctx context.Context, link models.SharedLink) error
	// ResolveToken fetches the case a token points at, sql.ErrNoRows when unknown.
	ResolveToken(ctx context.Context, token string) (*models.Case, error)
}

// Notifier delivers a viewer link to a recipient.
type Notifier interface {
	SendCaseLink(ctx context.Context, email, link string) error
}

// ShareService mints viewer tokens and resolves them back to cases.
type ShareService struct {
	repo        ShareRepository
	notifier    Notifier
	frontendURL string
}

// NewShareService constructs a ShareService. frontendURL is the dashboard
// base URL the viewer links are built on.
func NewShareService(repo ShareRepository, notifier Notifier, frontendURL string) *ShareService {
	return &ShareService{repo: repo, notifier: notifier, frontendURL: frontendURL}
}

// Issue mints an opaque token for the case, persists the mapping, and emails
// the viewer URL to the recipient. The mapping is persisted before the
// notification is attempted: if delivery fails the link is already durable
// and still resolves, and the caller gets ErrNotifyFailed to report it.
func (s *ShareService) Issue(ctx context.Context, caseID, email string) (string, string, error) {
	if caseID == "" || email == "" {
		return "", "", fmt.Errorf("%w: case_id and email are required", ErrValidation)
	}

	// UUIDv4: 122 bits from crypto/rand, rendered as an opaque string.
	token := uuid.NewString()
	viewerURL := strings.TrimRight(s.frontendURL, "/") + "/view/" + token

	link := models.SharedLink{
		CaseID:    caseID,
		Email:     email,
		LinkToken: token,
	}
	if err := s.repo.InsertLink(ctx, link); err != nil {
		return "", "", fmt.Errorf("store share link: %w", err)
	}

	if err := s.notifier.SendCaseLink(ctx, email, viewerURL); err != nil {
		return token, viewerURL, fmt.Errorf("%w: %v", ErrNotifyFailed, err)
	}

	return token, viewerURL, nil
}

// Resolve returns the case behind a viewer token, or ErrNotFound. Unknown
// tokens and tokens whose case no longer exists are indistinguishable.
func (s *ShareService) Resolve(ctx context.Context, token string) (*models.Case, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	c, err := s.repo.ResolveToken(ctx, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}
