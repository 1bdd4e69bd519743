package schema

import (
	"time"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ValueKind is the simplified enum of runtime value shapes a rule checks.
type ValueKind string

const (
	KindString      ValueKind = "string"
	KindBoolean     ValueKind = "boolean"
	KindDate        ValueKind = "date"
	KindStringArray ValueKind = "array"
	KindObject      ValueKind = "object"
)

// SubField describes one member of a structured payment value.
type SubField struct {
	Name     string
	Required bool
	// Pattern names a built-in format check (see validate.go); free regexps
	// are deliberately not supported so schemas stay serialisable and cheap
	// to regenerate on every edit.
	Pattern string
}

// ObjectRule validates a structured payment value. When Discriminator is set
// the object carries a mode selector and only the active mode's nested object
// is validated.
type ObjectRule struct {
	Fields        []SubField
	Discriminator string
	Modes         map[string]*ObjectRule
}

// Rule is the validation constraint derived from one field definition.
type Rule struct {
	Field    string
	Variant  model.Variant
	Kind     ValueKind
	Required bool
	Format   string
	// ExactLength constrains string length when > 0 (OTP accumulation).
	ExactLength int
	Object      *ObjectRule
}

// Schema maps field names to validation rules, preserving document order so
// validation output and serialisation stay deterministic.
type Schema struct {
	rules map[string]Rule
	order []string
}

// Rules returns the rules in document order.
func (s Schema) Rules() []Rule {
	out := make([]Rule, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.rules[name])
	}
	return out
}

// Rule returns the rule for a field name.
func (s Schema) Rule(name string) (Rule, bool) {
	rule, ok := s.rules[name]
	return rule, ok
}

// Len reports how many fields the schema validates.
func (s Schema) Len() int {
	return len(s.order)
}

// Generate derives the validation schema and the default-value map from an
// ordered field list. Groups are flattened first. Disabled fields are inert:
// they contribute neither rules nor defaults. Generate is a pure function of
// its input; the editor calls it after every field mutation and discards the
// previous result.
func Generate(fields []model.FieldOrGroup) (Schema, map[string]any) {
	flat := model.Flatten(fields)

	schema := Schema{
		rules: make(map[string]Rule, len(flat)),
		order: make([]string, 0, len(flat)),
	}
	defaults := make(map[string]any, len(flat))

	for _, field := range flat {
		if field == nil || field.Disabled {
			continue
		}
		if _, dup := schema.rules[field.Name]; dup {
			// Duplicate names are an upstream invariant violation; first
			// definition wins, mirroring path resolution.
			continue
		}

		rule := ruleFor(field)
		schema.rules[field.Name] = rule
		schema.order = append(schema.order, field.Name)
		defaults[field.Name] = defaultFor(field, rule)
	}

	return schema, defaults
}

// defaultFor mirrors the field's persisted value when it matches the rule's
// kind. Values arriving through JSON decode as []any and RFC 3339 strings, so
// arrays and dates accept the same shapes the validators do.
func defaultFor(field *model.Field, rule Rule) any {
	if value := field.Value; value != nil {
		switch rule.Kind {
		case KindString:
			if s, ok := value.(string); ok && s != "" {
				return s
			}
		case KindBoolean:
			if b, ok := value.(bool); ok {
				return b
			}
		case KindDate:
			if t, ok := asDate(value); ok {
				return t
			}
		case KindStringArray:
			if arr, ok := asStringSlice(value); ok {
				return arr
			}
		case KindObject:
			if obj, ok := value.(map[string]any); ok {
				return obj
			}
		}
	}
	return emptyValue(rule.Kind)
}

func asDate(value any) (time.Time, bool) {
	switch typed := value.(type) {
	case time.Time:
		return typed, true
	case string:
		if t, err := time.Parse(time.RFC3339, typed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func asStringSlice(value any) ([]string, bool) {
	switch typed := value.(type) {
	case []string:
		return append([]string(nil), typed...), true
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func emptyValue(kind ValueKind) any {
	switch kind {
	case KindBoolean:
		return false
	case KindDate:
		// Unset dates stay at the zero time sentinel; they are never coerced
		// to the current time on clear.
		return time.Time{}
	case KindStringArray:
		return []string{}
	case KindObject:
		return map[string]any{}
	default:
		return ""
	}
}
