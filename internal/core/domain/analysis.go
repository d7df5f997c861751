package domain

type ClauseType string

const (
	ClauseCoverageTerms      ClauseType = "coverage_terms"
	ClauseExclusions         ClauseType = "exclusions"
	ClauseClaimsObligations  ClauseType = "claims_obligations"
	ClausePremiumAdjustments ClauseType = "premium_adjustments"
	ClauseRegulatory         ClauseType = "regulatory"
	ClauseOther              ClauseType = "other"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type ImpactLevel string

const (
	ImpactLow    ImpactLevel = "low"
	ImpactMedium ImpactLevel = "medium"
	ImpactHigh   ImpactLevel = "high"
)

// AlignmentStatus describes how a clause, risk or regulation relates to the
// expected regulatory posture.
type AlignmentStatus string

const (
	AlignmentAligned AlignmentStatus = "aligned"
	AlignmentPartial AlignmentStatus = "partial"
	AlignmentGap     AlignmentStatus = "gap"
)

type ComplianceVerdict string

const (
	VerdictCompliant    ComplianceVerdict = "compliant"
	VerdictPartial      ComplianceVerdict = "partial"
	VerdictNonCompliant ComplianceVerdict = "non_compliant"
)

type ClauseMetadata struct {
	Section        string  `json:"section"`
	LegalRationale string  `json:"legal_rationale"`
	Confidence     float64 `json:"confidence"`
}

// Clause is a single classified sentence of document text. IDs are the
// 1-based index of the sentence within the segmented document, so the
// sequence may have holes where sentences did not qualify.
type Clause struct {
	ID       string         `json:"id"`
	Type     ClauseType     `json:"type"`
	Content  string         `json:"content"`
	Snippet  string         `json:"snippet"`
	Category string         `json:"category"`
	Metadata ClauseMetadata `json:"metadata"`
}

type Risk struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Severity          Severity        `json:"severity"`
	FinancialExposure int64           `json:"financial_exposure"`
	RegulatoryImpact  ImpactLevel     `json:"regulatory_impact"`
	Urgency           ImpactLevel     `json:"urgency"`
	RelatedClauses    []string        `json:"related_clauses"`
	Regulations       []string        `json:"regulations"`
	Status            AlignmentStatus `json:"status"`
}

type RegulationCheck struct {
	Name   string          `json:"name"`
	Status AlignmentStatus `json:"status"`
	Issues []string        `json:"issues"`
}

type ComplianceStatus struct {
	Overall     ComplianceVerdict `json:"overall"`
	Regulations []RegulationCheck `json:"regulations"`
	Score       int               `json:"score"`
}

type ExecutiveSummary struct {
	TotalClauses   int      `json:"total_clauses"`
	CriticalRisks  int      `json:"critical_risks"`
	ComplianceGaps int      `json:"compliance_gaps"`
	TopRisks       []Risk   `json:"top_risks"`
	CoverageGaps   []string `json:"coverage_gaps"`
	NextSteps      []string `json:"next_steps"`
}

// DocumentAnalysis is the pipeline's sole output. It is immutable once
// produced and owned by the document it was computed for.
type DocumentAnalysis struct {
	Clauses          []Clause         `json:"clauses"`
	Risks            []Risk           `json:"risks"`
	ComplianceStatus ComplianceStatus `json:"compliance_status"`
	Summary          ExecutiveSummary `json:"summary"`
}
