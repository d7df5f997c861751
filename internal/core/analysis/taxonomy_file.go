package analysis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kirillkom/policy-insight/internal/core/domain"
)

type taxonomyFile struct {
	DomainVocabulary []string            `yaml:"domain_vocabulary"`
	RiskKeywords     map[string][]string `yaml:"risk_keywords"`
	RiskIndicators   []string            `yaml:"risk_indicators"`
	ClauseTypes      []struct {
		Type     string   `yaml:"type"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"clause_types"`
	Categories []struct {
		Keyword  string `yaml:"keyword"`
		Category string `yaml:"category"`
	} `yaml:"categories"`
}

// LoadTaxonomy reads a yaml taxonomy override and applies it on top of the
// built-in defaults. Only sections present in the file are replaced, so a
// locale file can swap the vocabulary without restating every table.
func LoadTaxonomy(path string) (*Taxonomy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy file: %w", err)
	}

	var file taxonomyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse taxonomy yaml: %w", err)
	}

	tax := DefaultTaxonomy()
	if len(file.DomainVocabulary) > 0 {
		tax.DomainVocabulary = file.DomainVocabulary
	}
	if len(file.RiskKeywords) > 0 {
		for severity, keywords := range file.RiskKeywords {
			sev := domain.Severity(severity)
			switch sev {
			case domain.SeverityLow, domain.SeverityMedium, domain.SeverityHigh, domain.SeverityCritical:
				tax.RiskKeywords[sev] = keywords
			default:
				return nil, fmt.Errorf("unknown risk severity %q in taxonomy file", severity)
			}
		}
	}
	if len(file.RiskIndicators) > 0 {
		tax.RiskIndicators = file.RiskIndicators
	}
	if len(file.ClauseTypes) > 0 {
		buckets := make([]ClauseTypeBucket, 0, len(file.ClauseTypes))
		for _, entry := range file.ClauseTypes {
			buckets = append(buckets, ClauseTypeBucket{
				Type:     domain.ClauseType(entry.Type),
				Keywords: entry.Keywords,
			})
		}
		tax.ClauseTypeBuckets = buckets
	}
	if len(file.Categories) > 0 {
		rules := make([]CategoryRule, 0, len(file.Categories))
		for _, entry := range file.Categories {
			rules = append(rules, CategoryRule{Keyword: entry.Keyword, Category: entry.Category})
		}
		tax.CategoryRules = rules
	}
	return tax, nil
}
