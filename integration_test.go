package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/medwatch/disease-insights-api/config"
	"github.com/medwatch/disease-insights-api/extractor"
	"github.com/medwatch/disease-insights-api/handlers"
	"github.com/medwatch/disease-insights-api/health"
	"github.com/medwatch/disease-insights-api/logging"
	"github.com/medwatch/disease-insights-api/server"
	"github.com/medwatch/disease-insights-api/validation"
)

// scriptedGenerator plays a canned model response through the real extractor.
type scriptedGenerator struct {
	response string
	err      error
}

func (s *scriptedGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

const modelResponse = "Sure! Here is the information:\n```json\n" +
	`{
  "name": "Dengue",
  "statistics": {"total_cases": 390000000, "recovery_rate": "98%", "mortality_rate": "0.5%"},
  "recovery_options": {
    "Hydration": "Drink plenty of fluids.",
    "Monitoring": "Watch for warning signs after defervescence."
  },
  "medication": [
    {"name": "Paracetamol", "side_effects": ["liver strain at high doses"], "dosage": "500mg up to 4x daily"},
    {"name": "ORS", "side_effects": [], "dosage": "as needed"}
  ]
}` + "\n```"

func newTestServer(t *testing.T, gen *scriptedGenerator) *server.Server {
	t.Helper()

	logging.InitLogger(t.TempDir(), "error", 1024*1024)

	cfg := &config.Config{
		Port:           "8000",
		Address:        "127.0.0.1",
		Env:            "test",
		MaxRequestBody: 1048576,
		MaxHeaderSize:  1048576,
		LLMTimeout:     5 * time.Second,
	}

	handler := handlers.NewHTTPHandler(
		extractor.New(gen),
		validation.NewDiseaseValidator(),
		health.NewHealthChecker("scripted", true),
		cfg.LLMTimeout,
	)

	return server.NewServer(cfg, handler)
}

func TestFullExtractionFlow(t *testing.T) {
	srv := newTestServer(t, &scriptedGenerator{response: modelResponse})

	req := httptest.NewRequest(http.MethodGet, "/disease/Dengue", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.50")
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rr.Code, rr.Body.String())
	}

	var resp handlers.DiseaseResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}

	if resp.Record.Name != "Dengue" {
		t.Errorf("record name = %q", resp.Record.Name)
	}
	if resp.View.Chart == nil || resp.View.Chart.Recovery != 98.0 || resp.View.Chart.Mortality != 0.5 {
		t.Errorf("chart = %+v", resp.View.Chart)
	}
	if len(resp.Record.RecoveryOptions) != 2 || resp.Record.RecoveryOptions[0].Label != "Hydration" {
		t.Errorf("recovery options = %+v", resp.Record.RecoveryOptions)
	}
	if len(resp.View.Medication) != 2 || resp.View.Medication[1].Index != 2 {
		t.Errorf("medication = %+v", resp.View.Medication)
	}

	// The raw record JSON must keep the mapping's insertion order.
	body := rr.Body.String()
	if strings.Index(body, "Hydration") > strings.Index(body, "Monitoring") {
		t.Error("recovery options serialized out of order")
	}
}

func TestFullDocumentFlow(t *testing.T) {
	srv := newTestServer(t, &scriptedGenerator{response: modelResponse})

	req := httptest.NewRequest(http.MethodGet, "/disease/Dengue/document", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.51")
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rr.Code, rr.Body.String())
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF-")) {
		t.Error("document is not a PDF")
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "Dengue.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}
}

func TestFullFlowMalformedModelResponse(t *testing.T) {
	srv := newTestServer(t, &scriptedGenerator{
		response: "I'm sorry, I can only describe this disease in prose.",
	})

	req := httptest.NewRequest(http.MethodGet, "/disease/Dengue", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.52")
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "error") {
		t.Errorf("body = %s", rr.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, &scriptedGenerator{response: modelResponse})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "healthy") {
		t.Errorf("body = %s", rr.Body.String())
	}
}
