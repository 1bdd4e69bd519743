package fieldpath

import "github.com/goliatone/go-formbuilder/pkg/model"

// Remove returns a new list without the addressed field. Removing a group
// member shrinks the group; a group left with a single member is collapsed
// back into a single field.
func Remove(fields []model.FieldOrGroup, path Path) ([]model.FieldOrGroup, error) {
	if err := check(fields, path); err != nil {
		return nil, err
	}

	if len(path) == 1 {
		out := make([]model.FieldOrGroup, 0, len(fields)-1)
		out = append(out, fields[:path[0]]...)
		out = append(out, fields[path[0]+1:]...)
		return out, nil
	}

	out := make([]model.FieldOrGroup, len(fields))
	copy(out, fields)

	entry := out[path[0]]
	group := make([]*model.Field, 0, len(entry.Group)-1)
	group = append(group, entry.Group[:path[1]]...)
	group = append(group, entry.Group[path[1]+1:]...)

	if len(group) == 1 {
		out[path[0]] = model.FieldOrGroup{Field: group[0]}
	} else {
		out[path[0]] = model.FieldOrGroup{Group: group}
	}
	return out, nil
}

// Move reorders the top-level entries, shifting the entry at from before the
// entry currently at to. Both indices address top-level positions.
func Move(fields []model.FieldOrGroup, from, to int) ([]model.FieldOrGroup, error) {
	if from < 0 || from >= len(fields) {
		return nil, &InvalidPathError{Path: Path{from}, Reason: "entry index out of range"}
	}
	if to < 0 || to >= len(fields) {
		return nil, &InvalidPathError{Path: Path{to}, Reason: "entry index out of range"}
	}

	out := make([]model.FieldOrGroup, 0, len(fields))
	out = append(out, fields...)
	entry := out[from]
	out = append(out[:from], out[from+1:]...)

	rest := make([]model.FieldOrGroup, 0, len(fields))
	rest = append(rest, out[:to]...)
	rest = append(rest, entry)
	rest = append(rest, out[to:]...)
	return rest, nil
}

// Group merges the single field at target and the single field at source into
// one row group at the target position. Grouping an entry into an existing
// group appends to it; groups never nest.
func Group(fields []model.FieldOrGroup, target, source int) ([]model.FieldOrGroup, error) {
	if target < 0 || target >= len(fields) {
		return nil, &InvalidPathError{Path: Path{target}, Reason: "entry index out of range"}
	}
	if source < 0 || source >= len(fields) {
		return nil, &InvalidPathError{Path: Path{source}, Reason: "entry index out of range"}
	}
	if target == source {
		return nil, &InvalidPathError{Path: Path{source}, Reason: "cannot group an entry with itself"}
	}

	members := make([]*model.Field, 0, 2)
	targetEntry := fields[target]
	if targetEntry.IsGroup() {
		members = append(members, targetEntry.Group...)
	} else {
		members = append(members, targetEntry.Field)
	}

	sourceEntry := fields[source]
	if sourceEntry.IsGroup() {
		members = append(members, sourceEntry.Group...)
	} else {
		members = append(members, sourceEntry.Field)
	}

	for i, member := range members {
		// Row index hints drive column layout; regroup assigns them densely.
		if member.RowIndex != i {
			clone := *member
			clone.RowIndex = i
			members[i] = &clone
		}
	}

	out := make([]model.FieldOrGroup, 0, len(fields)-1)
	for i, entry := range fields {
		switch i {
		case target:
			out = append(out, model.FieldOrGroup{Group: members})
		case source:
		default:
			out = append(out, entry)
		}
	}
	return out, nil
}

// Ungroup expands the group at index back into consecutive single fields.
func Ungroup(fields []model.FieldOrGroup, index int) ([]model.FieldOrGroup, error) {
	if index < 0 || index >= len(fields) {
		return nil, &InvalidPathError{Path: Path{index}, Reason: "entry index out of range"}
	}
	entry := fields[index]
	if !entry.IsGroup() {
		return nil, &InvalidPathError{Path: Path{index}, Reason: "entry is not a group"}
	}

	out := make([]model.FieldOrGroup, 0, len(fields)+len(entry.Group)-1)
	out = append(out, fields[:index]...)
	for _, member := range entry.Group {
		out = append(out, model.FieldOrGroup{Field: member})
	}
	out = append(out, fields[index+1:]...)
	return out, nil
}
