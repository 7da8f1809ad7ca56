package schema

import (
	"encoding/json"
	"fmt"
	"io"
)

// FromJSON decodes the api/schema/ wire shape from r and resolves field
// names on every relationship before returning.
func FromJSON(r io.Reader) (*Schema, error) {
	var s Schema
	dec := json.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("schema: decode json: %w", err)
	}
	if s.Apps == nil {
		s.Apps = map[string]App{}
	}
	s.ResolveFieldNames()
	return &s, nil
}

// ToJSON encodes the schema back into the api/schema/ wire shape.
func ToJSON(w io.Writer, s *Schema) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("schema: encode json: %w", err)
	}
	return nil
}
