package ports

import (
	"context"
	"io"

	"github.com/kirillkom/policy-insight/internal/core/domain"
)

// DocumentRepository persists and reads document state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
}

// AnalysisRepository persists the pipeline result for a document.
type AnalysisRepository interface {
	Save(ctx context.Context, documentID string, result domain.DocumentAnalysis) error
	GetByDocumentID(ctx context.Context, documentID string) (*domain.DocumentAnalysis, error)
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes upload events.
type MessageQueue interface {
	PublishDocumentUploaded(ctx context.Context, documentID string) error
	SubscribeDocumentUploaded(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor extracts plain text from a stored document.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}

// DocumentAnalyzer runs the classification and risk-scoring pipeline over
// extracted text. The report callback is optional and receives coarse
// stage updates for display only.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, text string, report func(stage string, percent int)) (domain.DocumentAnalysis, error)
}

// ProgressTracker records coarse stage updates of a running analysis.
type ProgressTracker interface {
	Update(documentID, stage string, percent int)
	Fail(documentID, message string)
	Clear(documentID string)
}
