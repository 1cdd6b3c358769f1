// Package repository provides persistence implementations for share links.
package repository

import (
	"context"
	"database/sql"

	"github.com/casetrackhq/casetrack/internal/models"
)

// PostgresShareRepository implements share-link operations using a PostgreSQL database.
type PostgresShareRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresShareRepository creates a new PostgresShareRepository with the given database connection.
// db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresShareRepository(db *sql.DB) *PostgresShareRepository {
	return &PostgresShareRepository{DB: db}
}

// InsertLink persists a token-to-case mapping. The primary key on link_token
// is the defense against the (astronomically unlikely) token collision.
func (s *PostgresShareRepository) InsertLink(ctx context.Context, link models.SharedLink) error {
	_, err := s.DB.ExecContext(
		ctx,
		`INSERT INTO shared_links (link_token, case_id, email) VALUES ($1, $2, $3)`,
		link.LinkToken, link.CaseID, link.Email,
	)
	return err
}

// ResolveToken looks up the case a token points at. An unknown token and a
// token whose case was replaced away both return sql.ErrNoRows.
func (s *PostgresShareRepository) ResolveToken(ctx context.Context, token string) (*models.Case, error) {
	var c models.Case
	err := s.DB.QueryRowContext(ctx, `
		SELECT c.id, c.employee_name, c.visa_type, c.expiry_date, c.current_stage, c.uscis_case_id, c.notes, c.last_updated_at
		  FROM shared_links l
		  JOIN cases c ON c.id = l.case_id
		 WHERE l.link_token = $1
	`, token).Scan(&c.ID, &c.EmployeeName, &c.VisaType, &c.ExpiryDate, &c.CurrentStage, &c.USCISCaseID, &c.Notes, &c.LastUpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
