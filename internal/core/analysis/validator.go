package analysis

import (
	"strings"

	"github.com/kirillkom/policy-insight/internal/core/domain"
)

// Validator gates the pipeline on the document belonging to the supported
// domain at all. It is a pure predicate over the extracted text.
type Validator struct {
	vocabulary []string
}

func NewValidator(tax *Taxonomy) *Validator {
	return &Validator{vocabulary: tax.DomainVocabulary}
}

// Validate succeeds when any domain vocabulary term occurs in the text,
// case-insensitively. Zero matches yield domain.ErrNotPolicyDocument.
func (v *Validator) Validate(text string) error {
	lower := strings.ToLower(text)
	for _, keyword := range v.vocabulary {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return nil
		}
	}
	return domain.ErrNotPolicyDocument
}
