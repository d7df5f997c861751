package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kirillkom/policy-insight/internal/config"
	"github.com/kirillkom/policy-insight/internal/core/domain"
)

type fakeIngestor struct {
	doc *domain.Document
	err error
}

func (f *fakeIngestor) Upload(_ context.Context, filename, mimeType string, size int64, _ io.Reader) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	doc := *f.doc
	doc.Filename = filename
	doc.MimeType = mimeType
	doc.SizeBytes = size
	return &doc, nil
}

type fakeDocumentReader struct {
	docs map[string]*domain.Document
}

func (f *fakeDocumentReader) GetByID(_ context.Context, id string) (*domain.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return doc, nil
}

type fakeAnalysisReader struct {
	analyses map[string]*domain.DocumentAnalysis
}

func (f *fakeAnalysisReader) GetByDocumentID(_ context.Context, documentID string) (*domain.DocumentAnalysis, error) {
	analysis, ok := f.analyses[documentID]
	if !ok {
		return nil, domain.ErrAnalysisNotFound
	}
	return analysis, nil
}

type fakeTextAnalyzer struct {
	analysis domain.DocumentAnalysis
	summary  string
	err      error
}

func (f *fakeTextAnalyzer) AnalyzeText(_ context.Context, _ string) (domain.DocumentAnalysis, error) {
	if f.err != nil {
		return domain.DocumentAnalysis{}, f.err
	}
	return f.analysis, nil
}

func (f *fakeTextAnalyzer) RegulatorySummary(_ context.Context, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.summary, nil
}

type fakeProgressReader struct {
	snapshots map[string]domain.AnalysisProgress
}

func (f *fakeProgressReader) Progress(documentID string) (domain.AnalysisProgress, bool) {
	snapshot, ok := f.snapshots[documentID]
	return snapshot, ok
}

type testRouterDeps struct {
	ingest   *fakeIngestor
	docs     *fakeDocumentReader
	analyses *fakeAnalysisReader
	analyzer *fakeTextAnalyzer
	progress *fakeProgressReader
}

func newTestHandler(cfg config.Config) (http.Handler, *testRouterDeps) {
	deps := &testRouterDeps{
		ingest: &fakeIngestor{doc: &domain.Document{
			ID:     "doc-1",
			Status: domain.StatusUploaded,
		}},
		docs:     &fakeDocumentReader{docs: map[string]*domain.Document{}},
		analyses: &fakeAnalysisReader{analyses: map[string]*domain.DocumentAnalysis{}},
		analyzer: &fakeTextAnalyzer{summary: "Regulatory compliance summary for the analyzed policy document."},
		progress: &fakeProgressReader{snapshots: map[string]domain.AnalysisProgress{}},
	}
	router := NewRouter(cfg, deps.ingest, deps.docs, deps.analyses, deps.analyzer, deps.progress, nil)
	return router.Handler(), deps
}

func defaultTestConfig() config.Config {
	return config.Config{
		MaxUploadBytes:    1 << 20,
		APIRateLimitRPS:   100,
		APIRateLimitBurst: 100,
		APIMaxConcurrent:  8,
	}
}

func TestUploadDocumentAccepted(t *testing.T) {
	handler, _ := newTestHandler(defaultTestConfig())

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "policy.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("This insurance policy covers liability claims.")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", res.Code, res.Body.String())
	}

	var doc domain.Document
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if doc.Filename != "policy.txt" {
		t.Fatalf("expected filename to round-trip, got %q", doc.Filename)
	}
}

func TestUploadDocumentRequiresFileField(t *testing.T) {
	handler, _ := newTestHandler(defaultTestConfig())

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", strings.NewReader("not multipart"))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestGetDocumentNotFoundMapsTo404(t *testing.T) {
	handler, _ := newTestHandler(defaultTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/missing", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestGetAnalysisReturnsStoredResult(t *testing.T) {
	handler, deps := newTestHandler(defaultTestConfig())
	deps.analyses.analyses["doc-1"] = &domain.DocumentAnalysis{
		ComplianceStatus: domain.ComplianceStatus{Overall: domain.VerdictCompliant, Score: 85},
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/doc-1/analysis", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	var analysis domain.DocumentAnalysis
	if err := json.NewDecoder(res.Body).Decode(&analysis); err != nil {
		t.Fatalf("decode analysis: %v", err)
	}
	if analysis.ComplianceStatus.Score != 85 {
		t.Fatalf("expected compliance score 85, got %d", analysis.ComplianceStatus.Score)
	}
}

func TestGetProgressPrefersLiveSnapshot(t *testing.T) {
	handler, deps := newTestHandler(defaultTestConfig())
	deps.progress.snapshots["doc-1"] = domain.AnalysisProgress{
		DocumentID: "doc-1",
		Stage:      "Identifying risks",
		Percent:    55,
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/doc-1/progress", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var snapshot domain.AnalysisProgress
	if err := json.NewDecoder(res.Body).Decode(&snapshot); err != nil {
		t.Fatalf("decode progress: %v", err)
	}
	if snapshot.Stage != "Identifying risks" || snapshot.Percent != 55 {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}
}

func TestGetProgressDerivesTerminalStateFromDocument(t *testing.T) {
	handler, deps := newTestHandler(defaultTestConfig())
	deps.docs.docs["doc-2"] = &domain.Document{
		ID:        "doc-2",
		Status:    domain.StatusReady,
		UpdatedAt: time.Now(),
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/doc-2/progress", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var snapshot domain.AnalysisProgress
	if err := json.NewDecoder(res.Body).Decode(&snapshot); err != nil {
		t.Fatalf("decode progress: %v", err)
	}
	if snapshot.Percent != 100 {
		t.Fatalf("expected completed percent 100, got %d", snapshot.Percent)
	}
}

func TestAnalyzeTextRejectsEmptyBody(t *testing.T) {
	handler, _ := newTestHandler(defaultTestConfig())

	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", strings.NewReader(`{"text":"   "}`))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestAnalyzeTextMapsValidationRejectionTo422(t *testing.T) {
	handler, deps := newTestHandler(defaultTestConfig())
	deps.analyzer.err = domain.ErrNotPolicyDocument

	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", strings.NewReader(`{"text":"grocery list: apples, bread"}`))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", res.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if !strings.Contains(resp["error"], "insurance") {
		t.Fatalf("expected actionable validation message, got %q", resp["error"])
	}
}

func TestRegulatorySummaryEndpoint(t *testing.T) {
	handler, _ := newTestHandler(defaultTestConfig())

	req := httptest.NewRequest(http.MethodPost, "/v1/regulatory-summary", strings.NewReader(`{"text":"This insurance policy includes coverage terms."}`))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode summary response: %v", err)
	}
	if !strings.Contains(resp["summary"], "Regulatory compliance summary") {
		t.Fatalf("unexpected summary: %q", resp["summary"])
	}
}

func TestRequestIDHeaderIsEchoed(t *testing.T) {
	handler, _ := newTestHandler(defaultTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "req-test-1")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if got := res.Header().Get(requestIDHeader); got != "req-test-1" {
		t.Fatalf("expected request id to round-trip, got %q", got)
	}
}
