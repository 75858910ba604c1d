// Package interfaces defines core abstractions for the disease insights API
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"context"

	"github.com/medwatch/disease-insights-api/extractor/entities"
)

// TextGenerator is the outbound service boundary: one chat-style completion
// taking a system instruction and a user message, returning free text. The
// calling convention (authentication, transport) stays behind the
// implementation.
type TextGenerator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// RecordExtractor turns a disease name into a normalized record or an
// explicit extraction failure.
type RecordExtractor interface {
	Extract(ctx context.Context, diseaseName string) (*entities.DiseaseRecord, error)
}

// InputValidator validates user input strings before they reach the
// extractor.
type InputValidator interface {
	ValidateDiseaseName(input string) error
}

// HealthChecker provides system health monitoring and reporting.
type HealthChecker interface {
	HealthCheck() (status string, details map[string]any, httpStatus int)
}

// Scheduler manages background maintenance jobs.
type Scheduler interface {
	Start() error
	Stop()
}
