package analysis

import (
	"context"
	"log/slog"
	"sync"

	"github.com/kirillkom/policy-insight/internal/core/domain"
)

// Coarse named stages surfaced to UI progress polling. Display only, never
// a control interface into the pipeline.
const (
	StageExtracting = "Extracting text"
	StageValidating = "Validating document"
	StageClauses    = "Analyzing clauses"
	StageRisks      = "Identifying risks"
	StageCompliance = "Checking compliance"
	StageComplete   = "Analysis complete"
)

// ProgressFunc receives coarse stage updates during an analysis run. It may
// be called from concurrent goroutines.
type ProgressFunc = func(stage string, percent int)

// Pipeline sequences the analysis stages for one document: validation is
// fail-fast, the three producers run concurrently on read-only input, and
// the summary folds their outputs last. Once validation has passed a fault
// in any producer degrades to that producer's fallback output instead of
// failing the run, so a validated document always yields a structurally
// complete analysis.
type Pipeline struct {
	validator  *Validator
	segmenter  *Segmenter
	classifier *ClauseClassifier
	assessor   *RiskAssessor
	checker    *ComplianceChecker
}

func NewPipeline(tax *Taxonomy, rng VarianceSource) *Pipeline {
	return &Pipeline{
		validator:  NewValidator(tax),
		segmenter:  NewSegmenter(),
		classifier: NewClauseClassifier(tax),
		assessor:   NewRiskAssessor(tax, rng),
		checker:    NewComplianceChecker(tax),
	}
}

func (p *Pipeline) Analyze(_ context.Context, text string, report ProgressFunc) (domain.DocumentAnalysis, error) {
	emit := func(stage string, percent int) {
		if report != nil {
			report(stage, percent)
		}
	}

	emit(StageValidating, 10)
	if err := p.validator.Validate(text); err != nil {
		return domain.DocumentAnalysis{}, err
	}

	sentences := p.segmenter.Split(text)

	var (
		clauses    []domain.Clause
		risks      []domain.Risk
		compliance domain.ComplianceStatus
	)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Warn("clause_extraction_degraded", "reason", r)
				clauses = fallbackClauses()
			}
		}()
		emit(StageClauses, 35)
		clauses = p.classifier.ExtractClauses(text, sentences)
	}()

	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Warn("risk_assessment_degraded", "reason", r)
				risks = p.assessor.contextualRisks(text)
			}
		}()
		emit(StageRisks, 55)
		risks = p.assessor.Assess(text, sentences)
	}()

	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Warn("compliance_check_degraded", "reason", r)
				compliance = defaultComplianceStatus()
			}
		}()
		emit(StageCompliance, 75)
		compliance = p.checker.Check(text)
	}()

	wg.Wait()

	summary := Summarize(clauses, risks, compliance)
	emit(StageComplete, 100)

	return domain.DocumentAnalysis{
		Clauses:          clauses,
		Risks:            risks,
		ComplianceStatus: compliance,
		Summary:          summary,
	}, nil
}
