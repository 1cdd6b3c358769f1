// Package repository provides persistence implementations for case and
// share-link storage using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/casetrackhq/casetrack/internal/models"
	"github.com/google/uuid"
)

// replaceAllLockID keys the advisory lock that serializes replace-all
// imports. Two imports racing under delete-then-insert could otherwise leave
// the collection empty or interleaved.
const replaceAllLockID = int64(894711001)

// PostgresCaseRepository implements case storage operations against a PostgreSQL database.
type PostgresCaseRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresCaseRepository creates a new PostgresCaseRepository using the provided *sql.DB.
// db must be a valid connection to a PostgreSQL instance.
func NewPostgresCaseRepository(db *sql.DB) *PostgresCaseRepository {
	return &PostgresCaseRepository{DB: db}
}

// ListCases fetches all cases ordered by expiry date ascending, soonest
// expiries first, which is the order the dashboard renders.
func (s *PostgresCaseRepository) ListCases(ctx context.Context) ([]models.Case, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, employee_name, visa_type, expiry_date, current_stage, uscis_case_id, notes, last_updated_at
		  FROM cases ORDER BY expiry_date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("ListCases: %w", err)
	}
	defer rows.Close()

	var cases []models.Case
	for rows.Next() {
		var c models.Case
		if err := rows.Scan(&c.ID, &c.EmployeeName, &c.VisaType, &c.ExpiryDate, &c.CurrentStage, &c.USCISCaseID, &c.Notes, &c.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

// GetCaseByID retrieves a single case by its ID.
// Returns sql.ErrNoRows when no such case exists.
func (s *PostgresCaseRepository) GetCaseByID(ctx context.Context, id string) (*models.Case, error) {
	var c models.Case
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, employee_name, visa_type, expiry_date, current_stage, uscis_case_id, notes, last_updated_at
		  FROM cases WHERE id = $1
	`, id).Scan(&c.ID, &c.EmployeeName, &c.VisaType, &c.ExpiryDate, &c.CurrentStage, &c.USCISCaseID, &c.Notes, &c.LastUpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCase overwrites the editable fields of the case with the given ID and
// returns the stored record. Returns sql.ErrNoRows when the case is unknown.
func (s *PostgresCaseRepository) UpdateCase(ctx context.Context, c models.Case) (*models.Case, error) {
	var updated models.Case
	err := s.DB.QueryRowContext(ctx, `
		UPDATE cases
		   SET employee_name = $2,
		       visa_type = $3,
		       expiry_date = $4,
		       current_stage = $5,
		       uscis_case_id = $6,
		       notes = $7,
		       last_updated_at = $8
		 WHERE id = $1
		RETURNING id, employee_name, visa_type, expiry_date, current_stage, uscis_case_id, notes, last_updated_at
	`, c.ID, c.EmployeeName, c.VisaType, c.ExpiryDate, c.CurrentStage, c.USCISCaseID, c.Notes, c.LastUpdatedAt).
		Scan(&updated.ID, &updated.EmployeeName, &updated.VisaType, &updated.ExpiryDate, &updated.CurrentStage, &updated.USCISCaseID, &updated.Notes, &updated.LastUpdatedAt)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCase removes the case with the given ID.
// Returns sql.ErrNoRows when no row was deleted.
func (s *PostgresCaseRepository) DeleteCase(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM cases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("DeleteCase: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ReplaceAll swaps the entire case collection for the given records inside a
// single transaction and records the upload provenance alongside. A
// transaction-scoped advisory lock serializes concurrent replace-alls, and a
// failed insert rolls back to the previous dataset instead of leaving the
// collection empty.
func (s *PostgresCaseRepository) ReplaceAll(ctx context.Context, cases []models.Case, upload models.Upload) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, replaceAllLockID); err != nil {
		return fmt.Errorf("acquire import lock: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cases`); err != nil {
		return fmt.Errorf("delete cases: %w", err)
	}

	for _, c := range cases {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO cases (id, employee_name, visa_type, expiry_date, current_stage, uscis_case_id, notes, last_updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, uuid.NewString(), c.EmployeeName, c.VisaType, c.ExpiryDate, c.CurrentStage, c.USCISCaseID, c.Notes, c.LastUpdatedAt)
		if err != nil {
			return fmt.Errorf("insert case: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO uploads (filename, uploaded_by, row_count) VALUES ($1, $2, $3)
	`, upload.Filename, upload.UploadedBy, upload.RowCount); err != nil {
		return fmt.Errorf("record upload: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
