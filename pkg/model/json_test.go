package model

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func TestFieldOrGroup_RoundTrip(t *testing.T) {
	email := New(VariantEmail, 0)
	first := New(VariantInput, 0)
	last := New(VariantInput, 1)

	comp := Composition{
		Fields: []FieldOrGroup{
			Row(first, last),
			Single(email),
		},
		Theme: map[string]string{"--primary": "#7C3AED"},
	}

	payload, err := json.Marshal(comp)
	if err != nil {
		t.Fatalf("marshal composition: %v", err)
	}

	decoded, err := DecodeComposition(payload)
	if err != nil {
		t.Fatalf("decode composition: %v", err)
	}

	if diff := cmp.Diff(comp, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeComposition_LegacyBareArray(t *testing.T) {
	payload := []byte(`[
		{"name":"name_a","variant":"Input","required":true,"disabled":false,"checked":true,"value":"","rowIndex":0},
		[
			{"name":"name_b","variant":"Email","required":true,"disabled":false,"checked":true,"value":"","rowIndex":0},
			{"name":"name_c","variant":"Phone","required":true,"disabled":false,"checked":true,"value":"","rowIndex":1}
		]
	]`)

	comp, err := DecodeComposition(payload)
	if err != nil {
		t.Fatalf("decode legacy payload: %v", err)
	}

	if len(comp.Fields) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(comp.Fields))
	}
	if comp.Fields[0].IsGroup() {
		t.Fatal("first entry should be a single field")
	}
	if !comp.Fields[1].IsGroup() || len(comp.Fields[1].Group) != 2 {
		t.Fatalf("second entry should be a two-field group, got %+v", comp.Fields[1])
	}
	if comp.Theme == nil || len(comp.Theme) != 0 {
		t.Fatalf("legacy payload should produce an empty theme, got %v", comp.Theme)
	}
	if got := Names(comp.Fields); !cmp.Equal(got, []string{"name_a", "name_b", "name_c"}) {
		t.Fatalf("unexpected flattened names: %v", got)
	}
}

func TestDecodeComposition_RejectsEmptyPayload(t *testing.T) {
	if _, err := DecodeComposition([]byte("  ")); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestNormalizeGroups(t *testing.T) {
	a := New(VariantInput, 0)
	b := New(VariantEmail, 0)

	fields := []FieldOrGroup{
		{Group: []*Field{a}},
		Row(a, b),
		{},
	}

	normalized := NormalizeGroups(fields)
	if len(normalized) != 2 {
		t.Fatalf("expected empty entry dropped, got %d entries", len(normalized))
	}
	if normalized[0].IsGroup() {
		t.Fatal("singleton group should collapse to a single field")
	}
	if normalized[0].Field != a {
		t.Fatal("collapsed entry should keep the original field pointer")
	}
	if !normalized[1].IsGroup() {
		t.Fatal("real group should survive normalization")
	}
}

func TestDuplicateNames(t *testing.T) {
	a := New(VariantInput, 0)
	clone := *a

	dupes := DuplicateNames([]FieldOrGroup{Single(a), Single(&clone)})
	if len(dupes) != 1 || dupes[0] != a.Name {
		t.Fatalf("expected %q reported once, got %v", a.Name, dupes)
	}
}
