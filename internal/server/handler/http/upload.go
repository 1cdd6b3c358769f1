// Package http provides the HTTP handler for replace-all spreadsheet uploads.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/casetrackhq/casetrack/internal/middleware"
	"github.com/casetrackhq/casetrack/internal/service"
)

// ImportService defines the interface for import operations required by the UploadHandler.
type ImportService interface {
	// Import normalizes the file content and replaces the case collection.
	// Returns the accepted and rejected row counts.
	Import(ctx context.Context, data []byte, filename, uploadedBy string) (int, int, error)
}

// UploadHandler handles multipart spreadsheet uploads.
type UploadHandler struct {
	// ImportService performs the underlying import orchestration.
	ImportService ImportService
}

// UploadResponse is the JSON payload returned on a successful import.
type UploadResponse struct {
	Success bool `json:"success"`
	// Count is the number of rows imported.
	Count int `json:"count"`
	// Rejected is the number of rows dropped by validation.
	Rejected int `json:"rejected"`
}

// Upload handles POST /api/upload requests.
// It expects a multipart form with a "file" part containing a workbook or
// CSV. The entire case collection is replaced with the parsed rows. An
// unreadable file fails the whole upload with 422 and nothing is imported.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "no file uploaded", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()
	// Large parts spill to disk; release the temp files on every exit path.
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read file", http.StatusInternalServerError)
		return
	}

	uploadedBy := middleware.GetUserIDFromContext(ctx)
	count, rejected, err := h.ImportService.Import(ctx, data, header.Filename, uploadedBy)
	if errors.Is(err, service.ErrParse) {
		http.Error(w, "unreadable spreadsheet", http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		http.Error(w, "import failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(UploadResponse{
		Success:  true,
		Count:    count,
		Rejected: rejected,
	})
}
