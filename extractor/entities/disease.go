// Package entities defines the normalized record types produced by the
// disease extractor. Decoding is deliberately tolerant: a record either fails
// to decode entirely (the payload is not a JSON object) or decodes with every
// missing or wrong-typed sub-field replaced by its zero value. Renderers can
// therefore access any field without further nil or type checks.
package entities

import (
	"encoding/json"
)

// DiseaseRecord is the sole entity of the system: one record per user query,
// built once by the extractor and consumed immutably by the presenters.
type DiseaseRecord struct {
	Name            string          `json:"name"`
	Statistics      Statistics      `json:"statistics"`
	RecoveryOptions RecoveryOptions `json:"recovery_options"`
	Medication      []Medication    `json:"medication"`
}

// Statistics holds the headline figures for a disease. The rates are kept as
// the raw percentage strings the model produced ("62%"); numeric parsing and
// range checking happen at render time.
type Statistics struct {
	TotalCases    CaseCount `json:"total_cases"`
	RecoveryRate  string    `json:"recovery_rate"`
	MortalityRate string    `json:"mortality_rate"`
}

// CaseCount accepts either a JSON number or a string ("unknown", "1.2M").
// It is stored as the string form for display.
type CaseCount string

func (c CaseCount) String() string { return string(c) }

// UnmarshalJSON never fails: unusable values decode to the empty string.
func (c *CaseCount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = CaseCount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*c = CaseCount(n.String())
		return nil
	}
	*c = ""
	return nil
}

// UnmarshalJSON implements the field-by-field defaulting boundary. The only
// hard failure is a payload whose top level is not a JSON object; everything
// below that level degrades to zero values.
func (d *DiseaseRecord) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	d.Name = coerceString(fields["name"])

	if raw, ok := fields["statistics"]; ok {
		// Statistics has its own tolerant decoder; errors cannot surface.
		_ = json.Unmarshal(raw, &d.Statistics)
	}
	if raw, ok := fields["recovery_options"]; ok {
		_ = d.RecoveryOptions.UnmarshalJSON(raw)
	}
	if raw, ok := fields["medication"]; ok {
		var meds []Medication
		if err := json.Unmarshal(raw, &meds); err == nil {
			d.Medication = meds
		}
	}

	return nil
}

func (s *Statistics) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// Not an object: keep zero values rather than failing the record.
		return nil
	}

	if raw, ok := fields["total_cases"]; ok {
		_ = s.TotalCases.UnmarshalJSON(raw)
	}
	s.RecoveryRate = coerceString(fields["recovery_rate"])
	s.MortalityRate = coerceString(fields["mortality_rate"])

	return nil
}

// coerceString turns a raw JSON value into a display string. Strings pass
// through, numbers keep their literal form, anything else becomes "".
func coerceString(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// coerceStringSlice decodes a raw JSON array into strings, coercing each
// element independently so one odd entry does not drop the rest.
func coerceStringSlice(raw json.RawMessage) []string {
	if raw == nil {
		return nil
	}
	var direct []string
	if err := json.Unmarshal(raw, &direct); err == nil {
		return direct
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, coerceString(item))
	}
	return out
}
