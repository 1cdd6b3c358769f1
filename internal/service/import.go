package service

import (
	"context"
	"fmt"
	"time"

	"github.com/casetrackhq/casetrack/internal/importer"
	"github.com/casetrackhq/casetrack/internal/models"
	"go.uber.org/zap"
)

// replaceTimeout bounds the storage side of a replace-all import so a stuck
// database surfaces as a failure instead of hanging the upload.
const replaceTimeout = 30 * time.Second

// CaseReplacer defines the persistence operation needed by the ImportService.
type CaseReplacer interface {
	// ReplaceAll atomically swaps the full case collection and records the
	// upload provenance.
	ReplaceAll(ctx context.Context, cases []models.Case, upload models.Upload) error
}

// ImportService orchestrates replace-all spreadsheet imports.
type ImportService struct {
	repo CaseReplacer
	log  *zap.Logger
}

// NewImportService constructs an ImportService with the provided repository and logger.
func NewImportService(repo CaseReplacer, log *zap.Logger) *ImportService {
	return &ImportService{repo: repo, log: log}
}

// Import normalizes the uploaded file and replaces the entire case collection
// with the surviving rows. It returns the accepted and rejected row counts.
// An unreadable file fails with ErrParse and nothing is imported; row-level
// validation failures only drop the offending rows.
func (s *ImportService) Import(ctx context.Context, data []byte, filename, uploadedBy string) (int, int, error) {
	cases, report, err := importer.Normalize(data, filename, time.Now())
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrParse, err)
	}

	for _, rowErr := range report.Errors {
		s.log.Debug("dropped import row",
			zap.String("filename", filename),
			zap.Int("row", rowErr.Row),
			zap.String("reason", rowErr.Reason),
		)
	}

	ctx, cancel := context.WithTimeout(ctx, replaceTimeout)
	defer cancel()

	upload := models.Upload{
		Filename:   filename,
		UploadedBy: uploadedBy,
		RowCount:   report.Accepted,
	}
	if err := s.repo.ReplaceAll(ctx, cases, upload); err != nil {
		s.log.Error("replace-all import failed",
			zap.String("filename", filename),
			zap.Int("rows", report.Accepted),
			zap.Error(err),
		)
		return 0, 0, fmt.Errorf("replace cases: %w", err)
	}

	s.log.Info("imported cases",
		zap.String("filename", filename),
		zap.Int("accepted", report.Accepted),
		zap.Int("rejected", report.Rejected),
	)
	return report.Accepted, report.Rejected, nil
}
