package fieldpath

import (
	"errors"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

func sampleFields() ([]model.FieldOrGroup, *model.Field, *model.Field, *model.Field) {
	email := model.New(model.VariantEmail, 0)
	first := model.New(model.VariantInput, 0)
	last := model.New(model.VariantInput, 1)

	fields := []model.FieldOrGroup{
		model.Single(email),
		model.Row(first, last),
	}
	return fields, email, first, last
}

func TestFind_DocumentOrder(t *testing.T) {
	fields, email, _, last := sampleFields()

	path, err := Find(fields, email.Name)
	if err != nil {
		t.Fatalf("find top-level: %v", err)
	}
	if len(path) != 1 || path[0] != 0 {
		t.Fatalf("unexpected path for top-level field: %v", path)
	}

	path, err = Find(fields, last.Name)
	if err != nil {
		t.Fatalf("find group member: %v", err)
	}
	if len(path) != 2 || path[0] != 1 || path[1] != 1 {
		t.Fatalf("unexpected path for group member: %v", path)
	}

	if _, err := Find(fields, "name_missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFind_DuplicateNamesReturnFirstMatch(t *testing.T) {
	a := model.New(model.VariantInput, 0)
	dup := *a
	fields := []model.FieldOrGroup{model.Single(a), model.Single(&dup)}

	path, err := Find(fields, a.Name)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if path[0] != 0 {
		t.Fatalf("expected first match by document order, got %v", path)
	}
}

func TestApply_OnlyAddressedFieldChanges(t *testing.T) {
	fields, email, first, last := sampleFields()

	label := "Given Name"
	path, err := Find(fields, first.Name)
	if err != nil {
		t.Fatalf("find: %v", err)
	}

	updated, err := Apply(fields, path, Patch{Label: &label}.WithValue("Ada"))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	// Untouched entries keep identity.
	if updated[0].Field != email {
		t.Fatal("untouched top-level field lost identity")
	}
	if updated[1].Group[1] != last {
		t.Fatal("untouched group sibling lost identity")
	}

	// Original list is unchanged.
	if fields[1].Group[0] != first || first.Label == label {
		t.Fatal("apply mutated the input list")
	}

	got, err := Get(updated, path)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Label != label || got.Value != "Ada" {
		t.Fatalf("patch not merged: %+v", got)
	}
	if got.Variant != first.Variant || got.Name != first.Name {
		t.Fatalf("unpatched members not preserved: %+v", got)
	}

	// Find after apply resolves to the merged result.
	again, err := Find(updated, first.Name)
	if err != nil {
		t.Fatalf("find after apply: %v", err)
	}
	if again[0] != path[0] || again[1] != path[1] {
		t.Fatalf("path changed after apply: %v", again)
	}
}

func TestApply_InvalidPaths(t *testing.T) {
	fields, _, _, _ := sampleFields()

	cases := []struct {
		name string
		path Path
	}{
		{"empty", Path{}},
		{"out of range", Path{9}},
		{"negative", Path{-1}},
		{"descend into single", Path{0, 0}},
		{"group index out of range", Path{1, 5}},
		{"too deep", Path{1, 0, 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Apply(fields, tc.path, Patch{})
			var invalid *InvalidPathError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidPathError, got %v", err)
			}
		})
	}
}

func TestRemove_CollapsesSingletonGroup(t *testing.T) {
	fields, _, first, last := sampleFields()

	path, err := Find(fields, first.Name)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	updated, err := Remove(fields, path)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}

	if len(updated) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(updated))
	}
	if updated[1].IsGroup() {
		t.Fatal("group with one member left should collapse to a single field")
	}
	if updated[1].Field != last {
		t.Fatal("surviving member should keep identity")
	}
}

func TestMoveAndGroup(t *testing.T) {
	fields, email, first, last := sampleFields()

	moved, err := Move(fields, 1, 0)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if !moved[0].IsGroup() || moved[1].Field != email {
		t.Fatalf("unexpected order after move: %+v", moved)
	}

	ungrouped, err := Ungroup(moved, 0)
	if err != nil {
		t.Fatalf("ungroup: %v", err)
	}
	if len(ungrouped) != 3 || ungrouped[0].Field != first || ungrouped[1].Field != last {
		t.Fatalf("unexpected ungrouped layout: %+v", ungrouped)
	}

	regrouped, err := Group(ungrouped, 0, 1)
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	if len(regrouped) != 2 || !regrouped[0].IsGroup() {
		t.Fatalf("unexpected grouped layout: %+v", regrouped)
	}
	if got := regrouped[0].Group[1].RowIndex; got != 1 {
		t.Fatalf("row index hint not reassigned, got %d", got)
	}
}
