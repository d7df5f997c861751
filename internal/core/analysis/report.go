package analysis

import (
	"fmt"
	"strings"

	"github.com/kirillkom/policy-insight/internal/core/domain"
)

const regulatorySummaryPrefix = "Regulatory compliance summary for the analyzed policy document."

// RenderRegulatorySummary renders the executive summary of an analysis as a
// plain-text report with a fixed narrative prefix. Convenience only; no
// behavior beyond the pipeline's own output.
func RenderRegulatorySummary(result domain.DocumentAnalysis) string {
	var b strings.Builder

	b.WriteString(regulatorySummaryPrefix)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Overall compliance: %s (score %d/100)\n", result.ComplianceStatus.Overall, result.ComplianceStatus.Score)
	fmt.Fprintf(&b, "Clauses identified: %d\n", result.Summary.TotalClauses)
	fmt.Fprintf(&b, "High-severity risks: %d\n", result.Summary.CriticalRisks)
	fmt.Fprintf(&b, "Compliance gaps: %d\n", result.Summary.ComplianceGaps)

	if len(result.Summary.TopRisks) > 0 {
		b.WriteString("\nTop risks:\n")
		for _, risk := range result.Summary.TopRisks {
			fmt.Fprintf(&b, "- [%s] %s (estimated exposure $%d)\n", risk.Severity, risk.Title, risk.FinancialExposure)
		}
	}

	if len(result.Summary.NextSteps) > 0 {
		b.WriteString("\nRecommended next steps:\n")
		for _, step := range result.Summary.NextSteps {
			fmt.Fprintf(&b, "- %s\n", step)
		}
	}

	return b.String()
}
