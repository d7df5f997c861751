package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/policy-insight/internal/config"
	"github.com/kirillkom/policy-insight/internal/core/domain"
	"github.com/kirillkom/policy-insight/internal/core/ports"
	"github.com/kirillkom/policy-insight/internal/observability/metrics"
)

const backpressureAcquireTimeout = 2 * time.Second

type Router struct {
	cfg      config.Config
	ingest   ports.DocumentIngestor
	docs     ports.DocumentReader
	analyses ports.AnalysisReader
	analyzer ports.TextAnalyzer
	progress ports.ProgressReader
	metrics  *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg config.Config,
	ingest ports.DocumentIngestor,
	docs ports.DocumentReader,
	analyses ports.AnalysisReader,
	analyzer ports.TextAnalyzer,
	progress ports.ProgressReader,
	httpMetrics *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		cfg:      cfg,
		ingest:   ingest,
		docs:     docs,
		analyses: analyses,
		analyzer: analyzer,
		progress: progress,
		metrics:  httpMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.uploadDocument)
	mux.HandleFunc("/v1/documents/", rt.documentSubresource)
	mux.HandleFunc("/v1/analyze", rt.analyzeText)
	mux.HandleFunc("/v1/regulatory-summary", rt.regulatorySummary)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxConcurrent, backpressureAcquireTimeout)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware("api", handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxUploadBytes)
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	doc, err := rt.ingest.Upload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, doc)
}

func (rt *Router) documentSubresource(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	segments := strings.Split(strings.Trim(rest, "/"), "/")
	switch {
	case len(segments) == 1 && segments[0] != "":
		rt.getDocument(w, r, segments[0])
	case len(segments) == 2 && segments[1] == "analysis":
		rt.getAnalysis(w, r, segments[0])
	case len(segments) == 2 && segments[1] == "progress":
		rt.getProgress(w, r, segments[0])
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	}
}

func (rt *Router) getDocument(w http.ResponseWriter, r *http.Request, id string) {
	doc, err := rt.docs.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) getAnalysis(w http.ResponseWriter, r *http.Request, id string) {
	analysis, err := rt.analyses.GetByDocumentID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// getProgress serves live pipeline progress when the worker is mid-analysis,
// and otherwise derives a terminal snapshot from the stored document status.
func (rt *Router) getProgress(w http.ResponseWriter, r *http.Request, id string) {
	if snapshot, ok := rt.progress.Progress(id); ok {
		writeJSON(w, http.StatusOK, snapshot)
		return
	}

	doc, err := rt.docs.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	snapshot := domain.AnalysisProgress{DocumentID: doc.ID, UpdatedAt: doc.UpdatedAt}
	switch doc.Status {
	case domain.StatusReady:
		snapshot.Stage = "Analysis complete"
		snapshot.Percent = 100
	case domain.StatusFailed:
		snapshot.Stage = "Analysis failed"
		snapshot.Failed = true
		snapshot.Error = doc.Error
	default:
		snapshot.Stage = "Queued"
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (rt *Router) analyzeText(w http.ResponseWriter, r *http.Request) {
	text, ok := decodeTextRequest(w, r)
	if !ok {
		return
	}

	start := time.Now()
	analysis, err := rt.analyzer.AnalyzeText(r.Context(), text)
	if err != nil {
		if rt.metrics != nil && domain.IsKind(err, domain.ErrNotPolicyDocument) {
			rt.metrics.RecordValidationRejection("api")
		}
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordAnalysis("api", len(analysis.Clauses), len(analysis.Risks), analysis.ComplianceStatus.Score, time.Since(start))
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (rt *Router) regulatorySummary(w http.ResponseWriter, r *http.Request) {
	text, ok := decodeTextRequest(w, r)
	if !ok {
		return
	}

	summary, err := rt.analyzer.RegulatorySummary(r.Context(), text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func decodeTextRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return "", false
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return "", false
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return "", false
	}
	return req.Text, true
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
