package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, oracleStub *stubOracle) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := NewService(NewMemoryStore(), oracleStub, nil)
	r := gin.New()
	api := r.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return r, svc
}

func multipartUpload(t *testing.T, fileName string, data []byte, assumptions string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if assumptions != "" {
		if err := w.WriteField("assumptions", assumptions); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestCreateAnalysisEndpoint(t *testing.T) {
	stub := &stubOracle{response: `{
		"isContract": true,
		"detectedCompany": {"name": "Bobtail", "confidence": 0.8},
		"feeItems": [
			{"name": "Factoring fee", "type": "percent", "amount": {"percent": 3}, "evidence": {"snippet": "3% of face value"}}
		]
	}`}
	r, _ := newTestRouter(t, stub)

	body, contentType := multipartUpload(t, "contract.pdf", pdfBytes, `{"invoice_amount": 2000}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var result AnalysisResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.AnalysisID == "" {
		t.Fatalf("expected analysisId in response")
	}
	if result.EstimatedTrueRatePercent != 3 {
		t.Fatalf("expected 3%%, got %v", result.EstimatedTrueRatePercent)
	}
	if result.AssumptionsUsed.InvoiceAmount != 2000 {
		t.Fatalf("expected caller assumptions applied, got %+v", result.AssumptionsUsed)
	}
	if result.AdvertisedRateText != "As low as 1%" {
		t.Fatalf("expected Bobtail advertised rate, got %q", result.AdvertisedRateText)
	}
}

func TestCreateAnalysisMissingFile(t *testing.T) {
	r, _ := newTestRouter(t, &stubOracle{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), CodeInvalidInput) {
		t.Fatalf("expected %s error code, got %s", CodeInvalidInput, rec.Body.String())
	}
}

func TestCreateAnalysisUnsupportedContent(t *testing.T) {
	stub := &stubOracle{}
	r, _ := newTestRouter(t, stub)

	body, contentType := multipartUpload(t, "notes.txt", []byte("just some text"), "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.calls != 0 {
		t.Fatalf("expected no oracle call for rejected input")
	}
}

func TestCreateAnalysisMalformedExtraction(t *testing.T) {
	stub := &stubOracle{response: "no json here"}
	r, _ := newTestRouter(t, stub)

	body, contentType := multipartUpload(t, "contract.pdf", pdfBytes, "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), CodeMalformedExtraction) {
		t.Fatalf("expected %s error code, got %s", CodeMalformedExtraction, rec.Body.String())
	}
}

func TestGetReportEndpoint(t *testing.T) {
	r, svc := newTestRouter(t, &stubOracle{})
	if err := svc.Store.Save(context.Background(), "report-1", AnalysisResult{IsContract: true, Summary: "stored"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/report-1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestShareFlowEndToEnd(t *testing.T) {
	r, svc := newTestRouter(t, &stubOracle{})
	if err := svc.Store.Save(context.Background(), "report-1", AnalysisResult{IsContract: true}); err != nil {
		t.Fatalf("save: %v", err)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reports/report-1/share", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var share struct {
		ShareToken string `json:"shareToken"`
		ShareURL   string `json:"shareUrl"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &share); err != nil {
		t.Fatalf("decode share response: %v", err)
	}
	if share.ShareToken == "" || !strings.Contains(share.ShareURL, share.ShareToken) {
		t.Fatalf("unexpected share payload: %+v", share)
	}

	// the token-gated read works for the shared id only
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/report-1?token="+share.ShareToken, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 via token, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reports/missing/share", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", rec.Code)
	}
}
