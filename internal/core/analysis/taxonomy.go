package analysis

import (
	"strings"

	"github.com/kirillkom/policy-insight/internal/core/domain"
)

// ClauseTypeBucket pairs a clause type with the keywords that select it.
// Buckets are checked in slice order and the first match wins.
type ClauseTypeBucket struct {
	Type     domain.ClauseType
	Keywords []string
}

// CategoryRule maps a keyword to a fine-grained category label. Rules are
// checked in slice order and override the type-derived default category.
type CategoryRule struct {
	Keyword  string
	Category string
}

// SectionCue maps a keyword found in the text preceding a sentence to the
// section label for that sentence.
type SectionCue struct {
	Keyword string
	Section string
}

// RegulationTrigger collects the terms that tie a sentence to a named
// regulatory regime.
type RegulationTrigger struct {
	Name     string
	Keywords []string
}

// TitleRule maps a keyword to a risk title. Rules are checked in slice
// order and the first match wins.
type TitleRule struct {
	Keyword string
	Title   string
}

// Taxonomy is the full keyword configuration driving the analysis pipeline.
// It is an immutable value injected into each component at construction
// time; tests and alternate locales substitute their own instance.
type Taxonomy struct {
	// DomainVocabulary gates whether a document belongs to the supported
	// subject domain at all.
	DomainVocabulary []string

	// RiskKeywords maps a severity bucket to its trigger keywords.
	// Severity lookup order is high, medium, low.
	RiskKeywords map[domain.Severity][]string

	// RiskIndicators is the generic indicator list a sentence must also
	// match before a risk is emitted.
	RiskIndicators []string

	ClauseTypeBuckets []ClauseTypeBucket
	CategoryRules     []CategoryRule
	TypeCategories    map[domain.ClauseType]string
	LegalRationales   map[domain.ClauseType]string
	SectionCues       []SectionCue
	RegulationRules   []RegulationTrigger
	RiskTitleRules    []TitleRule

	RegulatoryHighImpact   []string
	RegulatoryMediumImpact []string

	// ExposureBases holds the per-severity base amounts used when a
	// sentence carries no literal currency figure.
	ExposureBases       map[domain.Severity]int64
	DefaultExposureBase int64
}

// DefaultTaxonomy returns the built-in insurance taxonomy.
func DefaultTaxonomy() *Taxonomy {
	return &Taxonomy{
		DomainVocabulary: []string{
			"insurance", "policy", "coverage", "premium", "claim", "insured", "insurer",
			"liability", "deductible", "beneficiary", "underwriter", "actuarial",
			"health", "medical", "healthcare", "hospital", "treatment", "diagnosis",
			"life insurance", "auto insurance", "property insurance", "casualty",
			"workers compensation", "disability", "medicare", "medicaid", "hmo", "ppo",
			"copay", "coinsurance", "out-of-pocket", "network", "provider", "formulary",
		},
		RiskKeywords: map[domain.Severity][]string{
			domain.SeverityHigh: {
				"exclusion", "exclude", "not covered", "limitation", "restrict", "penalty",
				"breach", "violation", "non-compliance", "fraud", "criminal", "illegal",
				"terminate", "cancel", "void", "forfeit", "punitive", "maximum liability",
			},
			domain.SeverityMedium: {
				"condition", "requirement", "obligation", "must", "shall", "mandatory",
				"deadline", "time limit", "notice", "notification", "approval", "consent",
				"documentation", "evidence", "proof", "verification", "audit", "review",
			},
			domain.SeverityLow: {
				"may", "might", "option", "discretionary", "voluntary", "preferred",
				"recommended", "suggested", "encouraged", "best practice", "guideline",
			},
		},
		RiskIndicators: []string{
			"risk", "danger", "threat", "exposure", "liability", "loss", "damage",
			"exclusion", "limitation", "penalty", "fine", "breach", "violation",
		},
		ClauseTypeBuckets: []ClauseTypeBucket{
			{Type: domain.ClauseCoverageTerms, Keywords: []string{"coverage", "covered", "benefits", "protection", "insured amount", "policy limit"}},
			{Type: domain.ClauseExclusions, Keywords: []string{"exclusion", "exclude", "not covered", "except", "limitation", "restrict"}},
			{Type: domain.ClauseClaimsObligations, Keywords: []string{"claim", "notification", "report", "notify", "filing", "submission"}},
			{Type: domain.ClausePremiumAdjustments, Keywords: []string{"premium", "rate", "cost", "fee", "adjustment", "increase", "decrease"}},
			{Type: domain.ClauseRegulatory, Keywords: []string{"regulation", "compliance", "law", "statute", "code", "requirement", "mandate"}},
			{Type: domain.ClauseOther, Keywords: []string{"general", "miscellaneous", "additional", "supplementary"}},
		},
		CategoryRules: []CategoryRule{
			{Keyword: "property", Category: "Property Coverage"},
			{Keyword: "medical", Category: "Medical Coverage"},
			{Keyword: "health", Category: "Medical Coverage"},
			{Keyword: "liability", Category: "Liability Coverage"},
			{Keyword: "premium", Category: "Premium Terms"},
			{Keyword: "claim", Category: "Claims Process"},
			{Keyword: "exclusion", Category: "Exclusions"},
			{Keyword: "deductible", Category: "Deductibles"},
		},
		TypeCategories: map[domain.ClauseType]string{
			domain.ClauseCoverageTerms:      "Coverage Terms",
			domain.ClauseExclusions:         "Policy Exclusions",
			domain.ClauseClaimsObligations:  "Claims Procedures",
			domain.ClausePremiumAdjustments: "Premium Structure",
			domain.ClauseRegulatory:         "Regulatory Compliance",
			domain.ClauseOther:              "General Terms",
		},
		LegalRationales: map[domain.ClauseType]string{
			domain.ClauseCoverageTerms:      "Defines the scope and limits of insurance coverage provided",
			domain.ClauseExclusions:         "Specifies circumstances or conditions not covered by the policy",
			domain.ClauseClaimsObligations:  "Establishes procedures and requirements for filing claims",
			domain.ClausePremiumAdjustments: "Outlines conditions under which premiums may be modified",
			domain.ClauseRegulatory:         "Ensures compliance with applicable insurance regulations",
			domain.ClauseOther:              "Contains general terms and conditions of the insurance contract",
		},
		SectionCues: []SectionCue{
			{Keyword: "coverage", Section: "Coverage Provisions"},
			{Keyword: "benefit", Section: "Coverage Provisions"},
			{Keyword: "exclusion", Section: "Exclusions"},
			{Keyword: "claim", Section: "Claims Procedures"},
			{Keyword: "premium", Section: "Premium Terms"},
			{Keyword: "definition", Section: "Definitions"},
		},
		RegulationRules: []RegulationTrigger{
			{Name: "HIPAA", Keywords: []string{"hipaa", "health"}},
			{Name: "GDPR", Keywords: []string{"gdpr", "privacy"}},
			{Name: "ADA", Keywords: []string{"ada", "disability"}},
			{Name: "State Insurance Regulations", Keywords: []string{"state", "insurance code"}},
		},
		RiskTitleRules: []TitleRule{
			{Keyword: "exclusion", Title: "Coverage Exclusion Risk"},
			{Keyword: "premium", Title: "Premium Adjustment Risk"},
			{Keyword: "claim", Title: "Claims Processing Risk"},
			{Keyword: "compliance", Title: "Regulatory Compliance Risk"},
			{Keyword: "liability", Title: "Liability Exposure Risk"},
			{Keyword: "medical", Title: "Medical Coverage Risk"},
		},
		RegulatoryHighImpact:   []string{"hipaa", "gdpr", "regulation", "compliance", "law", "statute"},
		RegulatoryMediumImpact: []string{"requirement", "mandate", "standard", "guideline"},
		ExposureBases: map[domain.Severity]int64{
			domain.SeverityLow:      50_000,
			domain.SeverityMedium:   250_000,
			domain.SeverityHigh:     1_000_000,
			domain.SeverityCritical: 5_000_000,
		},
		DefaultExposureBase: 100_000,
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
