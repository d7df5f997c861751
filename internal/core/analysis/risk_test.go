package analysis

import (
	"fmt"
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"

	"github.com/kirillkom/policy-insight/internal/core/domain"
)

// fixedVariance pins the exposure spread for exact assertions.
type fixedVariance struct{ v float64 }

func (f fixedVariance) Float64() float64 { return f.v }

func TestAssessSeverityPrecedence(t *testing.T) {
	assessor := NewRiskAssessor(DefaultTaxonomy(), fixedVariance{})

	// Matches a high keyword (exclusion), a medium keyword (must) and a low
	// keyword (may); the high bucket wins.
	sentence := "Claims may be denied and the exclusion must be read as a limitation of liability"
	risks := assessor.Assess(sentence, []string{sentence})
	if len(risks) != 1 {
		t.Fatalf("expected 1 risk, got %d", len(risks))
	}
	if risks[0].Severity != domain.SeverityHigh {
		t.Fatalf("expected high severity, got %s", risks[0].Severity)
	}
}

func TestAssessRequiresRiskIndicator(t *testing.T) {
	assessor := NewRiskAssessor(DefaultTaxonomy(), fixedVariance{})

	sentences := []string{
		// Medium severity keyword but no generic risk indicator.
		"The insured must submit documentation within thirty days of the claim date",
		// Severity keyword and indicator together.
		"Failure to comply is a breach exposing the insured to liability for losses",
	}
	risks := assessor.Assess(strings.Join(sentences, ". "), sentences)
	if len(risks) != 1 {
		t.Fatalf("expected only the indicator-bearing sentence to emit, got %d", len(risks))
	}
	if risks[0].ID != "1" {
		t.Fatalf("expected risk ids to count emissions, got %q", risks[0].ID)
	}
}

func TestAssessLiteralCurrencyAmountWins(t *testing.T) {
	assessor := NewRiskAssessor(DefaultTaxonomy(), fixedVariance{v: 0.5})

	sentence := "Violation of this clause carries a penalty of $250,000 payable immediately"
	risks := assessor.Assess(sentence, []string{sentence})
	if len(risks) != 1 {
		t.Fatalf("expected 1 risk, got %d", len(risks))
	}
	if risks[0].FinancialExposure != 250_000 {
		t.Fatalf("expected literal amount 250000, got %d", risks[0].FinancialExposure)
	}
}

func TestAssessEstimatedExposureUsesSeverityBase(t *testing.T) {
	assessor := NewRiskAssessor(DefaultTaxonomy(), fixedVariance{})

	sentence := "Fraud in the application voids coverage and creates liability exposure"
	risks := assessor.Assess(sentence, []string{sentence})
	if len(risks) != 1 {
		t.Fatalf("expected 1 risk, got %d", len(risks))
	}
	// High severity base with zero variance.
	if risks[0].FinancialExposure != 1_000_000 {
		t.Fatalf("expected base exposure 1000000, got %d", risks[0].FinancialExposure)
	}
}

func TestAssessCapsAtTenRisks(t *testing.T) {
	assessor := NewRiskAssessor(DefaultTaxonomy(), fixedVariance{})

	sentences := make([]string, 0, 14)
	for i := 0; i < 14; i++ {
		sentences = append(sentences, fmt.Sprintf("Exclusion number %d creates a liability exposure for the policyholder", i))
	}
	risks := assessor.Assess(strings.Join(sentences, ". "), sentences)
	if len(risks) != 10 {
		t.Fatalf("expected cap of 10 risks, got %d", len(risks))
	}
	if risks[0].ID != "1" || risks[9].ID != "10" {
		t.Fatalf("expected first ten risks in encounter order, got ids %q..%q", risks[0].ID, risks[9].ID)
	}
}

func TestAssessTitleAndRegulations(t *testing.T) {
	assessor := NewRiskAssessor(DefaultTaxonomy(), fixedVariance{})

	sentence := "HIPAA non-compliance in claims handling is a violation and a liability risk"
	risks := assessor.Assess(sentence, []string{sentence})
	if len(risks) != 1 {
		t.Fatalf("expected 1 risk, got %d", len(risks))
	}
	if risks[0].Title != "Claims Processing Risk" {
		t.Fatalf("expected first title rule match, got %q", risks[0].Title)
	}
	found := false
	for _, regulation := range risks[0].Regulations {
		if regulation == "HIPAA" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected HIPAA in regulations, got %v", risks[0].Regulations)
	}
	if risks[0].RegulatoryImpact != domain.ImpactHigh {
		t.Fatalf("expected high regulatory impact, got %s", risks[0].RegulatoryImpact)
	}
}

func TestAssessAlignmentStatus(t *testing.T) {
	assessor := NewRiskAssessor(DefaultTaxonomy(), fixedVariance{})

	gapSentence := "Flood damage is not covered and the resulting loss falls on the insured"
	risks := assessor.Assess(gapSentence, []string{gapSentence})
	if len(risks) != 1 || risks[0].Status != domain.AlignmentGap {
		t.Fatalf("expected gap status, got %+v", risks)
	}

	partialSentence := "A limitation applies to the liability coverage provided under this part"
	risks = assessor.Assess(partialSentence, []string{partialSentence})
	if len(risks) != 1 || risks[0].Status != domain.AlignmentPartial {
		t.Fatalf("expected partial status, got %+v", risks)
	}
}

func TestContextualFallbackForHealthDocuments(t *testing.T) {
	assessor := NewRiskAssessor(DefaultTaxonomy(), fixedVariance{})

	text := "This health insurance policy describes plan benefits for members"
	risks := assessor.Assess(text, nil)
	if len(risks) != 1 {
		t.Fatalf("expected 1 contextual risk, got %d", len(risks))
	}
	risk := risks[0]
	if risk.Title != "HIPAA Compliance Risk" || risk.Severity != domain.SeverityHigh {
		t.Fatalf("unexpected contextual risk: %+v", risk)
	}
	if risk.FinancialExposure != 1_500_000 || risk.Status != domain.AlignmentGap {
		t.Fatalf("unexpected contextual risk details: %+v", risk)
	}
}

func TestContextualFallbackForAutoDocuments(t *testing.T) {
	assessor := NewRiskAssessor(DefaultTaxonomy(), fixedVariance{})

	text := "Auto insurance declarations for the listed vehicle"
	risks := assessor.Assess(text, nil)
	if len(risks) != 1 {
		t.Fatalf("expected 1 contextual risk, got %d", len(risks))
	}
	if risks[0].Title != "State Compliance Risk" || risks[0].Severity != domain.SeverityMedium {
		t.Fatalf("unexpected contextual risk: %+v", risks[0])
	}
}

func TestContextualFallbackNeverEmpty(t *testing.T) {
	assessor := NewRiskAssessor(DefaultTaxonomy(), fixedVariance{})

	text := "General insurance terms for the named insured"
	risks := assessor.Assess(text, nil)
	if len(risks) != 1 {
		t.Fatalf("expected a generic fallback risk, got %d", len(risks))
	}
	if risks[0].Title != "Policy Review Risk" || risks[0].Severity != domain.SeverityLow {
		t.Fatalf("unexpected fallback risk: %+v", risks[0])
	}
}

func TestAssessDeterministicWithSeededSource(t *testing.T) {
	sentences := []string{
		"The exclusion creates a liability exposure for the named insured party",
		"Mandatory audit requirements create penalty exposure for late filings",
	}
	text := strings.Join(sentences, ". ")

	first := NewRiskAssessor(DefaultTaxonomy(), rand.New(rand.NewPCG(42, 42))).Assess(text, sentences)
	second := NewRiskAssessor(DefaultTaxonomy(), rand.New(rand.NewPCG(42, 42))).Assess(text, sentences)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output for identical seeds")
	}
}
