package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kirillkom/policy-insight/internal/core/analysis"
	"github.com/kirillkom/policy-insight/internal/core/domain"
	"github.com/kirillkom/policy-insight/internal/core/ports"
)

// AnalyzeTextUseCase runs the pipeline synchronously over caller-supplied
// text without touching storage. The pipeline is pure computation, so this
// path needs no queueing.
type AnalyzeTextUseCase struct {
	analyzer ports.DocumentAnalyzer
}

func NewAnalyzeTextUseCase(analyzer ports.DocumentAnalyzer) *AnalyzeTextUseCase {
	return &AnalyzeTextUseCase{analyzer: analyzer}
}

func (uc *AnalyzeTextUseCase) AnalyzeText(ctx context.Context, text string) (domain.DocumentAnalysis, error) {
	if strings.TrimSpace(text) == "" {
		return domain.DocumentAnalysis{}, domain.WrapError(domain.ErrInvalidInput, "analyze text", errors.New("empty text"))
	}

	result, err := uc.analyzer.Analyze(ctx, text, nil)
	if err != nil {
		return domain.DocumentAnalysis{}, fmt.Errorf("analyze text: %w", err)
	}
	return result, nil
}

// RegulatorySummary runs the full pipeline and renders the executive
// summary as a plain-text report.
func (uc *AnalyzeTextUseCase) RegulatorySummary(ctx context.Context, text string) (string, error) {
	result, err := uc.AnalyzeText(ctx, text)
	if err != nil {
		return "", err
	}
	return analysis.RenderRegulatorySummary(result), nil
}
