package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrTemporary        = errors.New("temporary failure")

	// ErrNotPolicyDocument is the only error that stops the analysis
	// pipeline before producing output. The message names the expected
	// domain so callers can show actionable feedback.
	ErrNotPolicyDocument = errors.New("document does not appear to be insurance-related; upload insurance policies, health insurance documents, or related contracts")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
