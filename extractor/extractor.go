// Package extractor turns a disease name into a normalized DiseaseRecord by
// querying a generative text service and parsing its untrusted free-text
// reply. Parsing is a two-stage pipeline: fence-span extraction (plain string
// search, not a grammar) followed by a strict JSON decode into the tolerant
// entities types. Parse failure means JSON syntax only; schema incompleteness
// is absorbed by normalization and never fails an extraction.
package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/medwatch/disease-insights-api/extractor/entities"
	"github.com/medwatch/disease-insights-api/interfaces"
	"github.com/medwatch/disease-insights-api/logging"
	"github.com/medwatch/disease-insights-api/metrics"
)

// systemInstruction fixes the JSON shape the model is asked for. The fenced
// wrapping is part of the contract: the fence span is what gets parsed.
const systemInstruction = `Provide disease info in JSON format with these fields: ` +
	`'name', 'statistics' {'total_cases': int, 'recovery_rate': str (%), 'mortality_rate': str (%)}, ` +
	`'recovery_options': dict of option name to description, ` +
	`'medication': list of {"name": "", "side_effects": ["", "", ""], "dosage": ""}. ` +
	`Wrap the JSON in triple backticks.`

// ErrMalformedResponse reports that the service's text could not be parsed as
// a JSON object even after fence stripping. It is user-visible and never
// retried automatically.
var ErrMalformedResponse = errors.New("model response is not valid JSON")

// ErrGenerationFailed reports that the upstream text-generation call itself
// failed (network, quota, empty completion).
var ErrGenerationFailed = errors.New("text generation failed")

// Extractor drives one synchronous extraction round trip per call. It holds
// no per-request state; each call is independent.
type Extractor struct {
	gen interfaces.TextGenerator
}

// Compile-time check to ensure Extractor implements RecordExtractor
var _ interfaces.RecordExtractor = (*Extractor)(nil)

// New creates an extractor backed by the given text generator.
func New(gen interfaces.TextGenerator) *Extractor {
	return &Extractor{gen: gen}
}

// Extract sends the disease name to the text generator and parses the reply.
// The caller bounds the round trip through ctx; the extractor imposes no
// timeout of its own.
func (e *Extractor) Extract(ctx context.Context, diseaseName string) (*entities.DiseaseRecord, error) {
	start := time.Now()
	text, err := e.gen.Generate(ctx, systemInstruction, diseaseName)
	metrics.LLMRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ExtractionsTotal.WithLabelValues("upstream_error").Inc()
		logging.Error("Text generation failed", "disease", diseaseName, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	payload := fencePayload(text)

	var record entities.DiseaseRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		metrics.ExtractionsTotal.WithLabelValues("malformed").Inc()
		logging.Warn("Model response could not be decoded",
			"disease", diseaseName,
			"error", err,
			"payload_size", len(payload))
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	metrics.ExtractionsTotal.WithLabelValues("ok").Inc()
	logging.Debug("Extraction completed",
		"disease", diseaseName,
		"recovery_options", len(record.RecoveryOptions),
		"medications", len(record.Medication))

	return &record, nil
}
