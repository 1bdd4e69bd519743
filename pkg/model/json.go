package model

import (
	"bytes"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

// MarshalJSON encodes a single field as an object and a row group as an array
// of field objects, matching the wire shape persisted by the editor.
func (fg FieldOrGroup) MarshalJSON() ([]byte, error) {
	if fg.IsGroup() {
		return json.Marshal(fg.Group)
	}
	if fg.Field == nil {
		return nil, errors.New("model: empty field-or-group entry")
	}
	return json.Marshal(fg.Field)
}

// UnmarshalJSON accepts either a field object or an array of field objects.
func (fg *FieldOrGroup) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return errors.New("model: empty field-or-group payload")
	}

	if trimmed[0] == '[' {
		var group []*Field
		if err := json.Unmarshal(trimmed, &group); err != nil {
			return fmt.Errorf("model: decode field group: %w", err)
		}
		fg.Field = nil
		fg.Group = group
		return nil
	}

	field := &Field{}
	if err := json.Unmarshal(trimmed, field); err != nil {
		return fmt.Errorf("model: decode field: %w", err)
	}
	fg.Field = field
	fg.Group = nil
	return nil
}

// DecodeComposition parses a persisted composition payload. It accepts the
// combined `{formFields, themeVars}` object and, for backward compatibility,
// a bare field array which is interpreted as formFields with an empty theme.
func DecodeComposition(data []byte) (Composition, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Composition{}, errors.New("model: empty composition payload")
	}

	if trimmed[0] == '[' {
		var fields []FieldOrGroup
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return Composition{}, fmt.Errorf("model: decode legacy field list: %w", err)
		}
		return Composition{Fields: fields, Theme: map[string]string{}}, nil
	}

	var comp Composition
	if err := json.Unmarshal(trimmed, &comp); err != nil {
		return Composition{}, fmt.Errorf("model: decode composition: %w", err)
	}
	if comp.Theme == nil {
		comp.Theme = map[string]string{}
	}
	return comp, nil
}
