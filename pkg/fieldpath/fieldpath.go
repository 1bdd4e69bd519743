package fieldpath

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ErrNotFound is returned when no field with the requested name exists.
var ErrNotFound = errors.New("fieldpath: field not found")

// InvalidPathError reports a path that does not address a field in the given
// list. It signals a programming-contract violation in the caller; the
// resolver never mutates anything when it is returned.
type InvalidPathError struct {
	Path   Path
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("fieldpath: invalid path %v: %s", []int(e.Path), e.Reason)
}

// Path addresses a field inside the two-level field-or-group structure: one
// index for a top-level field, two indices (entry, member) for a field inside
// a row group.
type Path []int

// Find locates a field by name with a depth-first search in document order.
// Duplicate names are an invariant violation upstream, but Find stays total
// and simply returns the first match.
func Find(fields []model.FieldOrGroup, name string) (Path, error) {
	for i, entry := range fields {
		if entry.IsGroup() {
			for j, member := range entry.Group {
				if member != nil && member.Name == name {
					return Path{i, j}, nil
				}
			}
			continue
		}
		if entry.Field != nil && entry.Field.Name == name {
			return Path{i}, nil
		}
	}
	return nil, ErrNotFound
}

// Patch carries the mutable subset of a field definition applied by Apply.
// Nil members leave the current value untouched.
type Patch struct {
	Label       *string
	Description *string
	Placeholder *string
	Required    *bool
	Disabled    *bool
	Checked     *bool
	Value       any
	HasValue    bool
	RowIndex    *int
}

// WithValue marks the patch as carrying a value, distinguishing "set to nil"
// from "leave alone".
func (p Patch) WithValue(value any) Patch {
	p.Value = value
	p.HasValue = true
	return p
}

func (p Patch) merge(field model.Field) model.Field {
	if p.Label != nil {
		field.Label = *p.Label
	}
	if p.Description != nil {
		field.Description = *p.Description
	}
	if p.Placeholder != nil {
		field.Placeholder = *p.Placeholder
	}
	if p.Required != nil {
		field.Required = *p.Required
	}
	if p.Disabled != nil {
		field.Disabled = *p.Disabled
	}
	if p.Checked != nil {
		field.Checked = *p.Checked
	}
	if p.HasValue {
		field.Value = p.Value
	}
	if p.RowIndex != nil {
		field.RowIndex = *p.RowIndex
	}
	return field
}

// Apply returns a new top-level list in which only the addressed field is
// replaced by a shallow merge of its current state and the patch. Every entry
// and field outside the path keeps its identity, so consumers can detect
// change with pointer comparisons.
func Apply(fields []model.FieldOrGroup, path Path, patch Patch) ([]model.FieldOrGroup, error) {
	if err := check(fields, path); err != nil {
		return nil, err
	}

	out := make([]model.FieldOrGroup, len(fields))
	copy(out, fields)

	entry := out[path[0]]
	if len(path) == 1 {
		updated := patch.merge(*entry.Field)
		out[path[0]] = model.FieldOrGroup{Field: &updated}
		return out, nil
	}

	group := make([]*model.Field, len(entry.Group))
	copy(group, entry.Group)
	updated := patch.merge(*group[path[1]])
	group[path[1]] = &updated
	out[path[0]] = model.FieldOrGroup{Group: group}
	return out, nil
}

// Get resolves the field a path addresses without mutating anything.
func Get(fields []model.FieldOrGroup, path Path) (*model.Field, error) {
	if err := check(fields, path); err != nil {
		return nil, err
	}
	entry := fields[path[0]]
	if len(path) == 1 {
		return entry.Field, nil
	}
	return entry.Group[path[1]], nil
}

func check(fields []model.FieldOrGroup, path Path) error {
	switch len(path) {
	case 0:
		return &InvalidPathError{Path: path, Reason: "empty path"}
	case 1, 2:
	default:
		return &InvalidPathError{Path: path, Reason: "groups do not nest beyond one level"}
	}

	if path[0] < 0 || path[0] >= len(fields) {
		return &InvalidPathError{Path: path, Reason: "entry index out of range"}
	}
	entry := fields[path[0]]

	if len(path) == 1 {
		if entry.Field == nil {
			return &InvalidPathError{Path: path, Reason: "path addresses a group as a field"}
		}
		return nil
	}

	if !entry.IsGroup() {
		return &InvalidPathError{Path: path, Reason: "path descends into a non-group entry"}
	}
	if path[1] < 0 || path[1] >= len(entry.Group) {
		return &InvalidPathError{Path: path, Reason: "group index out of range"}
	}
	return nil
}
