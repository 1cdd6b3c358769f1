package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/casetrackhq/casetrack/internal/models"
)

func setupShareMock(t *testing.T) (*PostgresShareRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresShareRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestInsertLink_Success(t *testing.T) {
	repo, mock, cleanup := setupShareMock(t)
	defer cleanup()

	link := models.SharedLink{CaseID: "case1", Email: "ada@example.com", LinkToken: "tok-1"}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO shared_links (link_token, case_id, email) VALUES ($1, $2, $3)`)).
		WithArgs(link.LinkToken, link.CaseID, link.Email).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.InsertLink(context.Background(), link); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestInsertLink_Error(t *testing.T) {
	repo, mock, cleanup := setupShareMock(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO shared_links").
		WillReturnError(errors.New("duplicate key value violates unique constraint"))

	err := repo.InsertLink(context.Background(), models.SharedLink{CaseID: "case1", Email: "a@b.c", LinkToken: "tok"})
	if err == nil {
		t.Error("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestResolveToken_Success(t *testing.T) {
	repo, mock, cleanup := setupShareMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM shared_links l").
		WithArgs("tok-1").
		WillReturnRows(sqlmock.NewRows(caseColumns).
			AddRow("case1", "Ada Lovelace", "H-1B", "2024-01-15", "", "", "", "2024-03-01T12:00:00Z"))

	c, err := repo.ResolveToken(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID != "case1" || c.EmployeeName != "Ada Lovelace" {
		t.Errorf("unexpected case: %+v", c)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestResolveToken_Unknown(t *testing.T) {
	repo, mock, cleanup := setupShareMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM shared_links l").
		WithArgs("never-issued").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.ResolveToken(context.Background(), "never-issued")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v; want sql.ErrNoRows", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
