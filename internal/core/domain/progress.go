package domain

import "time"

// AnalysisProgress is the coarse, display-only view of a running analysis.
type AnalysisProgress struct {
	DocumentID string    `json:"document_id"`
	Stage      string    `json:"stage"`
	Percent    int       `json:"percent"`
	Failed     bool      `json:"failed"`
	Error      string    `json:"error,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}
