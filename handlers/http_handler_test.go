package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/medwatch/disease-insights-api/extractor"
	"github.com/medwatch/disease-insights-api/extractor/entities"
	"github.com/medwatch/disease-insights-api/health"
	"github.com/medwatch/disease-insights-api/validation"
)

// fakeExtractor returns a canned record or error.
type fakeExtractor struct {
	record *entities.DiseaseRecord
	err    error
}

func (f *fakeExtractor) Extract(ctx context.Context, diseaseName string) (*entities.DiseaseRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

func testRecord() *entities.DiseaseRecord {
	return &entities.DiseaseRecord{
		Name: "Influenza",
		Statistics: entities.Statistics{
			TotalCases:    "1000000",
			RecoveryRate:  "70%",
			MortalityRate: "5%",
		},
		RecoveryOptions: entities.RecoveryOptions{
			{Label: "Rest", Description: "Stay home."},
		},
		Medication: []entities.Medication{
			{Name: "Oseltamivir", SideEffects: []string{"nausea"}, Dosage: "75mg"},
		},
	}
}

func newTestRouter(ext *fakeExtractor) chi.Router {
	handler := NewHTTPHandler(
		ext,
		validation.NewDiseaseValidator(),
		health.NewHealthChecker("test-model", true),
		5*time.Second,
	)

	router := chi.NewRouter()
	router.Get("/disease/{name}", handler.GetDisease)
	router.Get("/disease/{name}/document", handler.GetDiseaseDocument)
	router.Get("/health", handler.HealthCheck)
	return router
}

func TestGetDisease(t *testing.T) {
	router := newTestRouter(&fakeExtractor{record: testRecord()})

	req := httptest.NewRequest(http.MethodGet, "/disease/Influenza", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}

	var resp DiseaseResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.Record.Name != "Influenza" {
		t.Errorf("record name = %q", resp.Record.Name)
	}
	if resp.View.Chart == nil || resp.View.Chart.Recovery != 70.0 {
		t.Errorf("view chart = %+v", resp.View.Chart)
	}
}

func TestGetDiseaseInvalidNames(t *testing.T) {
	router := newTestRouter(&fakeExtractor{record: testRecord()})

	tests := []struct {
		name string
		path string
	}{
		{"whitespace only", "/disease/%20%20"},
		{"script injection", "/disease/%3Cscript%3Ealert(1)%3C%2Fscript%3E"},
		{"path traversal", "/disease/..%2F..%2Fetc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rr.Code)
			}
		})
	}
}

func TestGetDiseaseErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"malformed response", extractor.ErrMalformedResponse, http.StatusUnprocessableEntity},
		{"upstream failure", extractor.ErrGenerationFailed, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeExtractor{err: tt.err})

			req := httptest.NewRequest(http.MethodGet, "/disease/Influenza", nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}

			var body map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("error body is not JSON: %v", err)
			}
			if body["error"] == "" {
				t.Error("error body missing message")
			}
		})
	}
}

func TestGetDiseaseDocument(t *testing.T) {
	router := newTestRouter(&fakeExtractor{record: testRecord()})

	req := httptest.NewRequest(http.MethodGet, "/disease/Influenza/document", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, `filename="Influenza.pdf"`) {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF-")) {
		t.Error("body does not start with the PDF magic header")
	}
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(&fakeExtractor{record: testRecord()})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("health body is not JSON: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}
	if body["model"] != "test-model" {
		t.Errorf("model = %v", body["model"])
	}
}
