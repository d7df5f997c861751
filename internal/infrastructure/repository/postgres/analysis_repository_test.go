package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kirillkom/policy-insight/internal/core/domain"
)

func newAnalysisRepoWithMock(t *testing.T) (*AnalysisRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &AnalysisRepository{db: db}, mock, func() { _ = db.Close() }
}

func TestSaveUpsertsAnalysis(t *testing.T) {
	repo, mock, done := newAnalysisRepoWithMock(t)
	defer done()

	mock.ExpectExec("INSERT INTO document_analyses").
		WithArgs("doc-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Save(context.Background(), "doc-1", domain.DocumentAnalysis{
		ComplianceStatus: domain.ComplianceStatus{Overall: domain.VerdictCompliant, Score: 85},
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetByDocumentIDReturnsAnalysisNotFound(t *testing.T) {
	repo, mock, done := newAnalysisRepoWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT result").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByDocumentID(context.Background(), "missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrAnalysisNotFound) {
		t.Fatalf("expected ErrAnalysisNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetByDocumentIDRoundTripsResult(t *testing.T) {
	repo, mock, done := newAnalysisRepoWithMock(t)
	defer done()

	stored := domain.DocumentAnalysis{
		Risks: []domain.Risk{{ID: "1", Title: "Coverage Exclusion Risk", Severity: domain.SeverityHigh}},
		ComplianceStatus: domain.ComplianceStatus{
			Overall: domain.VerdictPartial,
			Score:   70,
		},
	}
	payload, err := json.Marshal(stored)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}

	mock.ExpectQuery("SELECT result").
		WithArgs("doc-1").
		WillReturnRows(sqlmock.NewRows([]string{"result"}).AddRow(payload))

	result, err := repo.GetByDocumentID(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("GetByDocumentID() error = %v", err)
	}
	if result.ComplianceStatus.Overall != domain.VerdictPartial {
		t.Fatalf("overall = %s, want partial", result.ComplianceStatus.Overall)
	}
	if len(result.Risks) != 1 || result.Risks[0].Title != "Coverage Exclusion Risk" {
		t.Fatalf("unexpected risks: %+v", result.Risks)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
