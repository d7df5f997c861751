package analysis

import (
	"strconv"
	"strings"

	"github.com/kirillkom/policy-insight/internal/core/domain"
)

const (
	clauseConfidenceBase      = 0.5
	clauseConfidenceStep      = 0.1
	clauseConfidenceCeiling   = 0.99
	clauseConfidenceThreshold = 0.3
	clauseMinContentLen       = 20
	snippetMaxLen             = 80
	sectionLookbehind         = 200
)

// ClauseClassifier assigns a clause type, category, confidence and section
// to each qualifying sentence of a document.
type ClauseClassifier struct {
	tax *Taxonomy
}

func NewClauseClassifier(tax *Taxonomy) *ClauseClassifier {
	return &ClauseClassifier{tax: tax}
}

// ExtractClauses classifies every sentence and keeps the ones that clear
// the confidence and length thresholds. Clause ids are the 1-based index
// of the sentence in the segmented sequence, so ids stay stable and may be
// non-contiguous when sentences are skipped.
func (c *ClauseClassifier) ExtractClauses(text string, sentences []string) []domain.Clause {
	clauses := make([]domain.Clause, 0, len(sentences))
	for i, sentence := range sentences {
		clause, ok := c.Classify(text, sentence, i)
		if ok {
			clauses = append(clauses, clause)
		}
	}
	return clauses
}

// Classify builds the clause for one sentence. The boolean reports whether
// the sentence qualified for emission.
func (c *ClauseClassifier) Classify(text, sentence string, index int) (domain.Clause, bool) {
	clauseType := c.clauseType(sentence)
	confidence := c.confidence(sentence, clauseType)

	if confidence <= clauseConfidenceThreshold || len(sentence) <= clauseMinContentLen {
		return domain.Clause{}, false
	}

	return domain.Clause{
		ID:       strconv.Itoa(index + 1),
		Type:     clauseType,
		Content:  sentence,
		Snippet:  snippet(sentence),
		Category: c.category(sentence, clauseType),
		Metadata: domain.ClauseMetadata{
			Section:        c.sectionFromContext(text, sentence),
			LegalRationale: c.tax.LegalRationales[clauseType],
			Confidence:     confidence,
		},
	}, true
}

// clauseType tests the type buckets in priority order; the first bucket
// with a keyword match wins.
func (c *ClauseClassifier) clauseType(sentence string) domain.ClauseType {
	lower := strings.ToLower(sentence)
	for _, bucket := range c.tax.ClauseTypeBuckets {
		if containsAny(lower, bucket.Keywords) {
			return bucket.Type
		}
	}
	return domain.ClauseOther
}

// category runs the finer-grained keyword pass that overrides the generic
// type-derived label, then falls back to the type default table.
func (c *ClauseClassifier) category(sentence string, clauseType domain.ClauseType) string {
	lower := strings.ToLower(sentence)
	for _, rule := range c.tax.CategoryRules {
		if strings.Contains(lower, rule.Keyword) {
			return rule.Category
		}
	}
	return c.tax.TypeCategories[clauseType]
}

func (c *ClauseClassifier) confidence(sentence string, clauseType domain.ClauseType) float64 {
	confidence := clauseConfidenceBase
	lower := strings.ToLower(sentence)

	for _, bucket := range c.tax.ClauseTypeBuckets {
		if bucket.Type != clauseType {
			continue
		}
		for _, keyword := range bucket.Keywords {
			if strings.Contains(lower, keyword) {
				confidence += clauseConfidenceStep
			}
		}
		break
	}

	if strings.Contains(lower, "shall") || strings.Contains(lower, "must") {
		confidence += clauseConfidenceStep
	}
	if strings.ContainsAny(sentence, "$0123456789") {
		confidence += clauseConfidenceStep
	}
	if len(sentence) > 50 && len(sentence) < 200 {
		confidence += clauseConfidenceStep
	}

	return min(confidence, clauseConfidenceCeiling)
}

// sectionFromContext locates the sentence in the source text and scans up
// to 200 characters before it for section cues.
func (c *ClauseClassifier) sectionFromContext(text, sentence string) string {
	index := strings.Index(text, sentence)
	if index == -1 {
		return "Unknown Section"
	}

	start := max(0, index-sectionLookbehind)
	before := strings.ToLower(text[start:index])
	for _, cue := range c.tax.SectionCues {
		if strings.Contains(before, cue.Keyword) {
			return cue.Section
		}
	}
	return "Policy Terms"
}

func snippet(sentence string) string {
	if len(sentence) > snippetMaxLen {
		return sentence[:77] + "..."
	}
	return sentence
}

// fallbackClauses is the degraded output when clause extraction fails
// outright; the pipeline prefers a minimal placeholder over no result.
func fallbackClauses() []domain.Clause {
	return []domain.Clause{
		{
			ID:       "1",
			Type:     domain.ClauseCoverageTerms,
			Content:  "Coverage terms extracted from uploaded document",
			Snippet:  "Standard coverage provisions apply",
			Category: "General Coverage",
			Metadata: domain.ClauseMetadata{
				Section:        "Policy Terms",
				LegalRationale: "Standard insurance clause",
				Confidence:     0.7,
			},
		},
	}
}
