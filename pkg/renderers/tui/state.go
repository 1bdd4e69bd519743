package tui

import (
	"fmt"
	"strings"
	"time"
)

// State tracks collected values and caller-provided errors keyed by field
// name. Structured payment values are stored as whole objects; their
// sub-fields never appear as separate entries.
type State struct {
	values map[string]any
	errors map[string][]string
}

// NewState seeds the state with default values and errors.
func NewState(defaults map[string]any, errs map[string][]string) *State {
	values := make(map[string]any, len(defaults))
	for name, value := range defaults {
		values[name] = value
	}
	return &State{values: values, errors: errs}
}

// Set commits a field value.
func (s *State) Set(name string, value any) {
	if s.values == nil {
		s.values = make(map[string]any)
	}
	s.values[name] = value
}

// Get returns the current value for a field.
func (s *State) Get(name string) (any, bool) {
	value, ok := s.values[name]
	return value, ok
}

// Values returns the collected value map.
func (s *State) Values() map[string]any {
	return s.values
}

// ErrorsFor returns the errors attached to a field name.
func (s *State) ErrorsFor(name string) []string {
	if s == nil || len(s.errors) == 0 {
		return nil
	}
	return s.errors[name]
}

func dateValidator(value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if _, err := parseDate(value); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD")
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(value))
}

func digitsValidator(value string) error {
	for _, r := range value {
		if r < '0' || r > '9' {
			return fmt.Errorf("digits only")
		}
	}
	return nil
}
