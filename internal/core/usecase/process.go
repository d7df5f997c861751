package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/kirillkom/policy-insight/internal/core/analysis"
	"github.com/kirillkom/policy-insight/internal/core/domain"
	"github.com/kirillkom/policy-insight/internal/core/ports"
)

type ProcessDocumentUseCase struct {
	repo      ports.DocumentRepository
	analyses  ports.AnalysisRepository
	extractor ports.TextExtractor
	analyzer  ports.DocumentAnalyzer
	progress  ports.ProgressTracker
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	analyses ports.AnalysisRepository,
	extractor ports.TextExtractor,
	analyzer ports.DocumentAnalyzer,
	progress ports.ProgressTracker,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		repo:      repo,
		analyses:  analyses,
		extractor: extractor,
		analyzer:  analyzer,
		progress:  progress,
	}
}

// ProcessByID loads a stored document, extracts its text, runs the analysis
// pipeline and persists the result. Faults after successful analysis mark
// the document failed; a domain-validation rejection is recorded the same
// way so the uploader can see why.
func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) error {
	if err := uc.markStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	result, err := uc.runPipeline(ctx, documentID)
	if err != nil {
		uc.progress.Fail(documentID, err.Error())
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.analyses.Save(ctx, documentID, result); err != nil {
		err = fmt.Errorf("save analysis: %w", err)
		uc.progress.Fail(documentID, err.Error())
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.markStatus(ctx, documentID, domain.StatusReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}
	uc.progress.Clear(documentID)

	return nil
}

func (uc *ProcessDocumentUseCase) runPipeline(ctx context.Context, documentID string) (domain.DocumentAnalysis, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return domain.DocumentAnalysis{}, fmt.Errorf("fetch document by id: %w", err)
	}

	uc.progress.Update(documentID, analysis.StageExtracting, 5)
	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return domain.DocumentAnalysis{}, fmt.Errorf("extract text: %w", err)
	}
	if text == "" {
		return domain.DocumentAnalysis{}, domain.WrapError(domain.ErrInvalidInput, "extract text", errors.New("empty extracted text"))
	}

	result, err := uc.analyzer.Analyze(ctx, text, func(stage string, percent int) {
		uc.progress.Update(documentID, stage, percent)
	})
	if err != nil {
		return domain.DocumentAnalysis{}, fmt.Errorf("analyze document: %w", err)
	}
	return result, nil
}

func (uc *ProcessDocumentUseCase) markStatus(ctx context.Context, documentID string, status domain.DocumentStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, documentID, status, errMessage)
}

func (uc *ProcessDocumentUseCase) markFailed(ctx context.Context, documentID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.markStatus(ctx, documentID, domain.StatusFailed, processErr.Error())
}
