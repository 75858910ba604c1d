// Package validation provides input validation and record quality reporting
// for the disease insights API.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/medwatch/disease-insights-api/extractor/entities"
	"github.com/medwatch/disease-insights-api/interfaces"
)

// Disease names: letters (with common accents), digits, spaces and the
// punctuation that appears in real names ("Crohn's disease", "COVID-19").
var diseaseNameRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-\.\+'’àâäéèêëïîôöùûüÿç()]+$`)

// Substring screen for obviously hostile input. strings.Contains is cheaper
// than regex and these never occur in legitimate disease names.
var dangerousPatterns = []string{
	"<script", "</script>", "javascript:", "onerror=", "onload=",
	"../", "..\\", "file://",
	"${", "$(", "`",
}

const maxDiseaseNameLength = 120

// DiseaseValidatorImpl implements the interfaces.InputValidator interface.
type DiseaseValidatorImpl struct{}

// NewDiseaseValidator creates a new input validator.
func NewDiseaseValidator() interfaces.InputValidator {
	return &DiseaseValidatorImpl{}
}

// ValidateDiseaseName rejects empty, oversized or hostile input before it
// reaches the extractor. The extractor itself never sees empty input.
func (v *DiseaseValidatorImpl) ValidateDiseaseName(input string) error {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return fmt.Errorf("disease name cannot be empty")
	}
	if len(trimmed) > maxDiseaseNameLength {
		return fmt.Errorf("disease name too long: %d characters (max %d)", len(trimmed), maxDiseaseNameLength)
	}

	lower := strings.ToLower(trimmed)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lower, pattern) {
			return fmt.Errorf("disease name contains invalid sequence")
		}
	}

	if !diseaseNameRegex.MatchString(trimmed) {
		return fmt.Errorf("disease name contains invalid characters")
	}

	return nil
}

// RecordQualityReport summarizes the gaps in a normalized record. Gaps are
// never errors (the renderers degrade per section); the report exists so
// they show up in the logs.
type RecordQualityReport struct {
	MissingName          bool
	MissingTotalCases    bool
	InvalidRecoveryRate  bool
	InvalidMortalityRate bool
	EmptyRecoveryOptions bool
	EmptyMedication      bool
	MedicationsUnnamed   int
}

// HasIssues reports whether anything in the record is missing or invalid.
func (r *RecordQualityReport) HasIssues() bool {
	return r.MissingName || r.MissingTotalCases ||
		r.InvalidRecoveryRate || r.InvalidMortalityRate ||
		r.EmptyRecoveryOptions || r.EmptyMedication ||
		r.MedicationsUnnamed > 0
}

// ReportRecordQuality inspects a record for missing sections and unusable
// rate values. Rates must parse to a number in [0, 100] once the trailing
// percent sign is stripped; anything else is flagged, not clamped.
func ReportRecordQuality(record *entities.DiseaseRecord) *RecordQualityReport {
	report := &RecordQualityReport{
		MissingName:          strings.TrimSpace(record.Name) == "",
		MissingTotalCases:    strings.TrimSpace(record.Statistics.TotalCases.String()) == "",
		InvalidRecoveryRate:  !validRate(record.Statistics.RecoveryRate),
		InvalidMortalityRate: !validRate(record.Statistics.MortalityRate),
		EmptyRecoveryOptions: len(record.RecoveryOptions) == 0,
		EmptyMedication:      len(record.Medication) == 0,
	}

	for _, med := range record.Medication {
		if strings.TrimSpace(med.Name) == "" {
			report.MedicationsUnnamed++
		}
	}

	return report
}

func validRate(s string) bool {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return false
	}
	v, err := strconv.ParseFloat(s, 64)
	return err == nil && v >= 0 && v <= 100
}
