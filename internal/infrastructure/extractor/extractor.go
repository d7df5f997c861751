// Package extractor selects the text extraction strategy for a stored
// document based on its declared mime type.
package extractor

import (
	"context"

	"github.com/kirillkom/policy-insight/internal/core/domain"
	"github.com/kirillkom/policy-insight/internal/core/ports"
)

type Dispatcher struct {
	pdf   ports.TextExtractor
	plain ports.TextExtractor
}

func NewDispatcher(pdf, plain ports.TextExtractor) *Dispatcher {
	return &Dispatcher{pdf: pdf, plain: plain}
}

func (d *Dispatcher) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	if doc.MimeType == "application/pdf" {
		return d.pdf.Extract(ctx, doc)
	}
	return d.plain.Extract(ctx, doc)
}
