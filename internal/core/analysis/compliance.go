package analysis

import (
	"strings"

	"github.com/kirillkom/policy-insight/internal/core/domain"
)

const (
	complianceBaseScore   = 85
	hipaaPenalty          = 15
	statePenalty          = 10
	partialScoreThreshold = 80
	gapScoreThreshold     = 60
)

// ComplianceChecker produces the document-level regulatory verdict from the
// raw text. The score starts at a base and loses flat penalties per missing
// control, floored at zero.
type ComplianceChecker struct {
	tax *Taxonomy
}

func NewComplianceChecker(tax *Taxonomy) *ComplianceChecker {
	return &ComplianceChecker{tax: tax}
}

func (c *ComplianceChecker) Check(text string) domain.ComplianceStatus {
	lower := strings.ToLower(text)
	regulations := make([]domain.RegulationCheck, 0, 2)
	score := complianceBaseScore

	if strings.Contains(lower, "health") || strings.Contains(lower, "medical") {
		issues := []string{}
		if !strings.Contains(lower, "privacy") {
			issues = append(issues, "Privacy protection measures not clearly defined")
		}
		if !strings.Contains(lower, "consent") {
			issues = append(issues, "Patient consent procedures missing")
		}

		status := domain.AlignmentAligned
		switch len(issues) {
		case 1:
			status = domain.AlignmentPartial
		case 2:
			status = domain.AlignmentGap
		}
		regulations = append(regulations, domain.RegulationCheck{
			Name:   "HIPAA",
			Status: status,
			Issues: issues,
		})
		if len(issues) > 0 {
			score -= hipaaPenalty
		}
	}

	stateIssues := []string{}
	stateStatus := domain.AlignmentAligned
	if !strings.Contains(lower, "regulation") && !strings.Contains(lower, "compliance") {
		stateIssues = append(stateIssues, "Regulatory compliance statement missing")
		stateStatus = domain.AlignmentPartial
		score -= statePenalty
	}
	regulations = append(regulations, domain.RegulationCheck{
		Name:   "State Insurance Regulations",
		Status: stateStatus,
		Issues: stateIssues,
	})

	score = max(score, 0)
	return domain.ComplianceStatus{
		Overall:     verdictForScore(score),
		Regulations: regulations,
		Score:       score,
	}
}

func verdictForScore(score int) domain.ComplianceVerdict {
	switch {
	case score < gapScoreThreshold:
		return domain.VerdictNonCompliant
	case score < partialScoreThreshold:
		return domain.VerdictPartial
	default:
		return domain.VerdictCompliant
	}
}

// defaultComplianceStatus is the degraded output when the checker faults;
// it matches the base score with a single aligned generic check.
func defaultComplianceStatus() domain.ComplianceStatus {
	return domain.ComplianceStatus{
		Overall: domain.VerdictCompliant,
		Regulations: []domain.RegulationCheck{
			{Name: "State Insurance Regulations", Status: domain.AlignmentAligned, Issues: []string{}},
		},
		Score: complianceBaseScore,
	}
}
