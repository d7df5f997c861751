package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kirillkom/policy-insight/internal/core/domain"
)

// AnalysisRepository stores the full pipeline result as one JSONB row per
// document. The result is immutable once produced, so saves upsert the
// whole document rather than patching fields.
type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

func (r *AnalysisRepository) Save(ctx context.Context, documentID string, result domain.DocumentAnalysis) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO document_analyses (document_id, result, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (document_id) DO UPDATE SET result = EXCLUDED.result, created_at = EXCLUDED.created_at
`, documentID, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

func (r *AnalysisRepository) GetByDocumentID(ctx context.Context, documentID string) (*domain.DocumentAnalysis, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT result
FROM document_analyses
WHERE document_id = $1
`, documentID)

	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrAnalysisNotFound, "get analysis", err)
		}
		return nil, fmt.Errorf("scan analysis: %w", err)
	}

	var result domain.DocumentAnalysis
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("unmarshal analysis: %w", err)
	}
	return &result, nil
}
