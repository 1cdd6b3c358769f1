// Package http provides HTTP handlers for the case dashboard CRUD endpoints.
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

// CaseService defines the interface for case operations required by the HTTP handlers.
type CaseService interface {
	// List returns every tracked case, soonest expiry first.
	List(ctx context.Context) ([]models.Case, error)
	// GetByID returns one case or service.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Case, error)
	// Update stores edited case fields and returns the stored record.
	Update(ctx context.Context, id string, c models.Case) (*models.Case, error)
	// Delete removes a case or returns service.ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// CaseHandler handles HTTP requests for the dashboard case endpoints.
type CaseHandler struct {
	// CaseService performs the underlying case operations.
	CaseService CaseService
}

// List handles GET /api/cases requests.
func (h *CaseHandler) List(w http.ResponseWriter, r *http.Request) {
	cases, err := h.CaseService.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if cases == nil {
		cases = []models.Case{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(cases)
}

// GetByID handles GET /api/cases/{id} requests.
func (h *CaseHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := h.CaseService.GetByID(r.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		http.Error(w, "case not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// Update handles PUT /api/cases/{id} requests.
// It expects a JSON body with the full set of editable case fields and
// responds with the stored record.
func (h *CaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.Case
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	updated, err := h.CaseService.Update(r.Context(), id, req)
	if errors.Is(err, service.ErrValidation) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errors.Is(err, service.ErrNotFound) {
		http.Error(w, "case not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(updated)
}

// Delete handles DELETE /api/cases/{id} requests, responding 204 on success.
func (h *CaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.CaseService.Delete(r.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		http.Error(w, "case not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
