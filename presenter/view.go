// Package presenter renders a DiseaseRecord into its two output forms: the
// interactive view model consumed by the dashboard and the downloadable PDF
// document. Both renderers are pure functions of the record and share the
// same placeholder policy, so their content stays equivalent by construction.
package presenter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/medwatch/disease-insights-api/extractor/entities"
)

// Placeholder literals shared by both renderers.
const (
	placeholderValue   = "N/A"
	placeholderName    = "Unknown"
	placeholderDisease = "Unknown Disease"
)

// NoticeInvalidPercentage identifies the section-scoped warning emitted when
// the rate fields cannot be charted.
const NoticeInvalidPercentage = "invalid_percentage"

// RateChart is the two-series bar comparison over a single labeled category.
type RateChart struct {
	Category  string  `json:"category"`
	Recovery  float64 `json:"recovery_rate"`
	Mortality float64 `json:"mortality_rate"`
}

// Notice is a visible, section-scoped degradation message. Notices never
// block the remaining sections.
type Notice struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OptionSection is one recovery-option panel, in stored order.
type OptionSection struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// MedicationItem is one 1-indexed medication panel.
type MedicationItem struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Dosage      string `json:"dosage"`
	SideEffects string `json:"side_effects"`
}

// View is the interactive rendering of a record.
type View struct {
	Title            string           `json:"title"`
	Chart            *RateChart       `json:"chart,omitempty"`
	Notices          []Notice         `json:"notices,omitempty"`
	RecoveryOptions  []OptionSection  `json:"recovery_options"`
	Medication       []MedicationItem `json:"medication"`
	DownloadFilename string           `json:"download_filename"`
}

// BuildView produces the interactive view model. It is total: any record that
// decoded at all renders, section by section, with placeholders for whatever
// is missing.
func BuildView(record *entities.DiseaseRecord) View {
	view := View{
		Title:            displayName(record),
		RecoveryOptions:  []OptionSection{},
		Medication:       []MedicationItem{},
		DownloadFilename: DocumentFilename(record),
	}

	recovery, errRec := parsePercent(record.Statistics.RecoveryRate)
	mortality, errMort := parsePercent(record.Statistics.MortalityRate)
	if errRec != nil || errMort != nil {
		view.Notices = append(view.Notices, Notice{
			Code:    NoticeInvalidPercentage,
			Message: "Invalid percentage values in statistics.",
		})
	} else {
		view.Chart = &RateChart{Category: "Rate", Recovery: recovery, Mortality: mortality}
	}

	for _, opt := range record.RecoveryOptions {
		view.RecoveryOptions = append(view.RecoveryOptions, OptionSection{
			Label:       opt.Label,
			Description: opt.Description,
		})
	}

	for i, med := range record.Medication {
		view.Medication = append(view.Medication, MedicationItem{
			Index:       i + 1,
			Name:        orPlaceholder(med.Name, placeholderName),
			Dosage:      orPlaceholder(med.Dosage, placeholderValue),
			SideEffects: strings.Join(med.SideEffects, ", "),
		})
	}

	return view
}

// parsePercent converts a percentage string ("62%") to its numeric form.
// Values outside [0, 100] are reported as invalid, not clamped. An absent
// rate defaults to zero rather than failing the chart.
func parsePercent(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		s = "0%"
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("percentage is not numeric: %q", s)
	}
	if v < 0 || v > 100 {
		return 0, fmt.Errorf("percentage out of range [0, 100]: %v", v)
	}
	return v, nil
}

func displayName(record *entities.DiseaseRecord) string {
	return orPlaceholder(record.Name, placeholderDisease)
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
