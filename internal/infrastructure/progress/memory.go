// Package progress keeps the display-only stage of running analyses in
// memory for UI polling. Entries are per-document and cleared when the
// worker finishes; a restart loses them, which is acceptable for a
// progress bar.
package progress

import (
	"sync"
	"time"

	"github.com/kirillkom/policy-insight/internal/core/domain"
)

type Tracker struct {
	mu      sync.RWMutex
	entries map[string]domain.AnalysisProgress
}

func NewTracker() *Tracker {
	return &Tracker{entries: make(map[string]domain.AnalysisProgress)}
}

func (t *Tracker) Update(documentID, stage string, percent int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	current, ok := t.entries[documentID]
	// Concurrent pipeline stages may report out of order; keep the
	// furthest stage reached.
	if ok && !current.Failed && current.Percent > percent {
		return
	}
	t.entries[documentID] = domain.AnalysisProgress{
		DocumentID: documentID,
		Stage:      stage,
		Percent:    percent,
		UpdatedAt:  time.Now().UTC(),
	}
}

func (t *Tracker) Fail(documentID, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[documentID] = domain.AnalysisProgress{
		DocumentID: documentID,
		Stage:      "failed",
		Failed:     true,
		Error:      message,
		UpdatedAt:  time.Now().UTC(),
	}
}

func (t *Tracker) Clear(documentID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, documentID)
}

func (t *Tracker) Progress(documentID string) (domain.AnalysisProgress, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	entry, ok := t.entries[documentID]
	return entry, ok
}
