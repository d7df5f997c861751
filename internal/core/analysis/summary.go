package analysis

import (
	"fmt"

	"github.com/kirillkom/policy-insight/internal/core/domain"
)

const (
	topRiskCount = 3
	maxNextSteps = 5
)

// Summarize folds clause, risk and compliance outputs into the executive
// summary. Pure function; topRisks keeps pipeline emission order rather
// than re-sorting by severity, matching how the risk list itself is capped.
func Summarize(clauses []domain.Clause, risks []domain.Risk, compliance domain.ComplianceStatus) domain.ExecutiveSummary {
	highSeverity := 0
	for _, risk := range risks {
		if risk.Severity == domain.SeverityHigh || risk.Severity == domain.SeverityCritical {
			highSeverity++
		}
	}

	gaps := 0
	for _, regulation := range compliance.Regulations {
		if regulation.Status == domain.AlignmentGap {
			gaps++
		}
	}

	top := risks
	if len(top) > topRiskCount {
		top = top[:topRiskCount]
	}

	return domain.ExecutiveSummary{
		TotalClauses:   len(clauses),
		CriticalRisks:  highSeverity,
		ComplianceGaps: gaps,
		TopRisks:       top,
		CoverageGaps:   coverageGaps(clauses, highSeverity),
		NextSteps:      nextSteps(compliance, highSeverity),
	}
}

func coverageGaps(clauses []domain.Clause, highSeverity int) []string {
	gaps := []string{}

	exclusions := 0
	for _, clause := range clauses {
		if clause.Type == domain.ClauseExclusions {
			exclusions++
		}
	}
	if float64(exclusions) > float64(len(clauses))*0.3 {
		gaps = append(gaps, "High number of exclusions may limit coverage effectiveness")
	}

	if highSeverity > 0 {
		gaps = append(gaps, fmt.Sprintf("%d high-severity risks require immediate attention", highSeverity))
	}

	if len(gaps) == 0 {
		gaps = append(gaps, "Policy terms appear adequate but require regular review")
	}
	return gaps
}

func nextSteps(compliance domain.ComplianceStatus, highSeverity int) []string {
	steps := []string{}

	for _, regulation := range compliance.Regulations {
		if regulation.Status == domain.AlignmentGap {
			steps = append(steps, fmt.Sprintf("Address %s compliance gaps", regulation.Name))
		}
	}
	if highSeverity > 0 {
		steps = append(steps, fmt.Sprintf("Prioritize resolution of %d high-severity risks", highSeverity))
	}

	steps = append(steps, "Conduct quarterly policy review")
	steps = append(steps, "Update risk assessment procedures")

	if len(steps) > maxNextSteps {
		steps = steps[:maxNextSteps]
	}
	return steps
}
