// Package handlers provides HTTP request handlers for the disease insights
// API endpoints: disease extraction with its interactive view model, PDF
// document download, health checks, and JSON response formatting with input
// validation and error mapping.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/medwatch/disease-insights-api/extractor"
	"github.com/medwatch/disease-insights-api/extractor/entities"
	"github.com/medwatch/disease-insights-api/interfaces"
	"github.com/medwatch/disease-insights-api/logging"
	"github.com/medwatch/disease-insights-api/metrics"
	"github.com/medwatch/disease-insights-api/presenter"
	"github.com/medwatch/disease-insights-api/validation"
)

// DiseaseResponse is the body of a successful extraction: the normalized
// record plus the view model the dashboard renders from.
type DiseaseResponse struct {
	Record *entities.DiseaseRecord `json:"record"`
	View   presenter.View          `json:"view"`
}

// HTTPHandler bundles the handler dependencies behind interfaces so tests can
// swap the extractor for a fake.
type HTTPHandler struct {
	extractor  interfaces.RecordExtractor
	validator  interfaces.InputValidator
	checker    interfaces.HealthChecker
	llmTimeout time.Duration
}

// NewHTTPHandler creates the handler set.
func NewHTTPHandler(ext interfaces.RecordExtractor, val interfaces.InputValidator,
	checker interfaces.HealthChecker, llmTimeout time.Duration) *HTTPHandler {
	return &HTTPHandler{
		extractor:  ext,
		validator:  val,
		checker:    checker,
		llmTimeout: llmTimeout,
	}
}

// RespondWithJSON writes a JSON response
func (h *HTTPHandler) RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err, "payload_type", fmt.Sprintf("%T", payload))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error body
func (h *HTTPHandler) RespondWithError(w http.ResponseWriter, code int, msg string) {
	h.RespondWithJSON(w, code, map[string]string{"error": msg})
}

// diseaseName pulls and validates the {name} route parameter. An empty or
// hostile name never reaches the extractor.
func (h *HTTPHandler) diseaseName(r *http.Request) (string, error) {
	name := chi.URLParam(r, "name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	if err := h.validator.ValidateDiseaseName(name); err != nil {
		return "", err
	}
	return name, nil
}

// extract performs the single synchronous round trip to the text-generation
// service, bounded by the configured deadline.
func (h *HTTPHandler) extract(r *http.Request, name string) (*entities.DiseaseRecord, error) {
	ctx, cancel := context.WithTimeout(r.Context(), h.llmTimeout)
	defer cancel()
	return h.extractor.Extract(ctx, name)
}

// writeExtractionError maps extraction failures to HTTP codes: a malformed
// model response is the model's fault (422), everything else is upstream
// (502). Neither is retried.
func (h *HTTPHandler) writeExtractionError(w http.ResponseWriter, err error) {
	if errors.Is(err, extractor.ErrMalformedResponse) {
		h.RespondWithError(w, http.StatusUnprocessableEntity,
			"Error decoding JSON. Please check API response.")
		return
	}
	h.RespondWithError(w, http.StatusBadGateway,
		"Failed to get disease information from the model")
}

// GetDisease handles GET /disease/{name}: one extraction, one view model.
func (h *HTTPHandler) GetDisease(w http.ResponseWriter, r *http.Request) {
	name, err := h.diseaseName(r)
	if err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.extract(r, name)
	if err != nil {
		h.writeExtractionError(w, err)
		return
	}

	if report := validation.ReportRecordQuality(record); report.HasIssues() {
		logging.Warn("Record has quality gaps",
			"disease", name,
			"missing_name", report.MissingName,
			"invalid_recovery_rate", report.InvalidRecoveryRate,
			"invalid_mortality_rate", report.InvalidMortalityRate,
			"empty_recovery_options", report.EmptyRecoveryOptions,
			"empty_medication", report.EmptyMedication)
	}

	view := presenter.BuildView(record)
	for _, notice := range view.Notices {
		if notice.Code == presenter.NoticeInvalidPercentage {
			metrics.InvalidPercentageNotices.Inc()
		}
	}

	h.RespondWithJSON(w, http.StatusOK, DiseaseResponse{Record: record, View: view})
}

// GetDiseaseDocument handles GET /disease/{name}/document: its own extraction
// round trip (the service is stateless, nothing is cached between requests)
// followed by the PDF rendering of the same record shape.
func (h *HTTPHandler) GetDiseaseDocument(w http.ResponseWriter, r *http.Request) {
	name, err := h.diseaseName(r)
	if err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.extract(r, name)
	if err != nil {
		h.writeExtractionError(w, err)
		return
	}

	document, err := presenter.RenderDocument(record)
	if err != nil {
		logging.Error("Failed to render document", "disease", name, "error", err)
		h.RespondWithError(w, http.StatusInternalServerError, "Failed to render document")
		return
	}

	metrics.DocumentsGenerated.Inc()

	filename := presenter.DocumentFilename(record)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(document)))
	w.WriteHeader(http.StatusOK)
	w.Write(document)
}

// HealthCheck handles GET /health.
func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, details, httpStatus := h.checker.HealthCheck()
	details["status"] = status
	h.RespondWithJSON(w, httpStatus, details)
}
