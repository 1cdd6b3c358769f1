// Package http provides HTTP handlers for share-link issuance and the
// public viewer endpoint.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/casetrackhq/casetrack/internal/models"
	"github.com/casetrackhq/casetrack/internal/service"
	"github.com/go-chi/chi/v5"
)

// ShareService defines the interface for share operations required by the ShareHandler.
type ShareService interface {
	// Issue mints a token for the case, persists it, and notifies the recipient.
	Issue(ctx context.Context, caseID, email string) (token, viewerURL string, err error)
	// Resolve returns the case behind a viewer token, or service.ErrNotFound.
	Resolve(ctx context.Context, token string) (*models.Case, error)
}

// ShareHandler handles HTTP requests for sharing cases.
type ShareHandler struct {
	// ShareService performs the underlying share operations.
	ShareService ShareService
}

// ShareRequest represents the JSON payload for creating a share link.
type ShareRequest struct {
	CaseID string `json:"case_id"`
	Email  string `json:"email"`
}

// Create handles POST /api/share requests.
// It expects a JSON body with non-empty "case_id" and "email" fields.
// The link is persisted before the email is attempted: a delivery failure
// returns 502 but the link already resolves.
func (h *ShareHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	_, _, err := h.ShareService.Issue(r.Context(), req.CaseID, req.Email)
	if errors.Is(err, service.ErrValidation) {
		http.Error(w, "missing case_id or email", http.StatusBadRequest)
		return
	}
	if errors.Is(err, service.ErrNotifyFailed) {
		http.Error(w, "link stored but email delivery failed", http.StatusBadGateway)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// Resolve handles GET /api/share/{token} requests.
// It is the public, unauthenticated viewer endpoint: a valid token returns
// the full case record, anything else a uniform 404.
func (h *ShareHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	c, err := h.ShareService.Resolve(r.Context(), token)
	if errors.Is(err, service.ErrNotFound) {
		http.Error(w, "invalid or expired link", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}
