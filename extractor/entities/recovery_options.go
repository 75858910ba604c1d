package entities

import (
	"bytes"
	"encoding/json"
)

// RecoveryOption is one entry of the open-ended recovery mapping.
type RecoveryOption struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// RecoveryOptions preserves the key order of the JSON object it was decoded
// from. A plain map would lose the order the model chose, which is the
// display order.
type RecoveryOptions []RecoveryOption

// UnmarshalJSON walks the object token stream so insertion order survives.
// A value that is not a JSON object decodes to an empty list, never an error.
func (o *RecoveryOptions) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		*o = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		*o = nil
		return nil
	}

	opts := RecoveryOptions{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			break
		}
		key, ok := keyTok.(string)
		if !ok {
			break
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			break
		}
		opts = append(opts, RecoveryOption{Label: key, Description: coerceString(raw)})
	}

	*o = opts
	return nil
}

// MarshalJSON writes the options back as a JSON object in stored order.
func (o RecoveryOptions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, opt := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(opt.Label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(opt.Description)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
