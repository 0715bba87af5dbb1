package model

import "encoding/json"

// The comparison matrix arrives as flat objects with one "feature" key
// and one key per ASIN, so it cannot round-trip through struct tags.

// UnmarshalJSON splits the "feature" key from the dynamic ASIN columns.
func (r *ComparisonRow) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	r.Values = make(map[string]string, len(flat))
	for key, raw := range flat {
		var val string
		if err := json.Unmarshal(raw, &val); err != nil {
			// Non-string cell (the model occasionally emits numbers);
			// keep the raw token as text rather than dropping the cell.
			val = string(raw)
		}
		if key == "feature" {
			r.Feature = val
			continue
		}
		r.Values[key] = val
	}
	return nil
}

// MarshalJSON flattens the row back to the wire shape.
func (r ComparisonRow) MarshalJSON() ([]byte, error) {
	flat := make(map[string]string, len(r.Values)+1)
	flat["feature"] = r.Feature
	for asin, val := range r.Values {
		flat[asin] = val
	}
	return json.Marshal(flat)
}
