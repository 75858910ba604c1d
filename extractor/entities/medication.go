package entities

import "encoding/json"

// Medication is one entry of the ordered medication list.
type Medication struct {
	Name        string   `json:"name"`
	SideEffects []string `json:"side_effects"`
	Dosage      string   `json:"dosage"`
}

// UnmarshalJSON coerces each field independently. A list element that is not
// an object decodes to an all-empty entry so the list keeps its length and
// order.
func (m *Medication) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	m.Name = coerceString(fields["name"])
	m.Dosage = coerceString(fields["dosage"])
	m.SideEffects = coerceStringSlice(fields["side_effects"])
	return nil
}
