package ports

import (
	"context"
	"io"

	"github.com/kirillkom/policy-insight/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, size int64, body io.Reader) (*domain.Document, error)
}

// DocumentProcessor is the inbound contract for asynchronous document analysis.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}

// DocumentReader is the inbound read model for document metadata/state.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
}

// AnalysisReader exposes a finished analysis for a document.
type AnalysisReader interface {
	GetByDocumentID(ctx context.Context, documentID string) (*domain.DocumentAnalysis, error)
}

// TextAnalyzer is the inbound contract for synchronous analysis of raw text.
type TextAnalyzer interface {
	AnalyzeText(ctx context.Context, text string) (domain.DocumentAnalysis, error)
	RegulatorySummary(ctx context.Context, text string) (string, error)
}

// ProgressReader reports the coarse named stage of a running analysis for
// UI polling.
type ProgressReader interface {
	Progress(documentID string) (domain.AnalysisProgress, bool)
}
