package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/schema"
)

func TestErrorsFromResult(t *testing.T) {
	result := schema.Result{
		Issues: []schema.Issue{
			{Field: "email_1", Message: "must be a valid email"},
			{Field: "payment_1", Path: "payment_1.cvv", Message: "must be 3 or 4 digits"},
			{Field: "email_1", Message: "must be a valid email"},
		},
	}

	got := ErrorsFromResult(result)
	want := map[string][]string{
		"email_1":   {"must be a valid email"},
		"payment_1": {"payment_1.cvv: must be 3 or 4 digits"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mapping mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorsFromResultValid(t *testing.T) {
	if got := ErrorsFromResult(schema.Result{Valid: true}); got != nil {
		t.Fatalf("expected nil map, got %v", got)
	}
}

func TestMergeErrors(t *testing.T) {
	server := map[string][]string{
		"email_1": {"already registered", " already registered "},
	}
	local := map[string][]string{
		"email_1": {"must be a valid email"},
		"name_1":  {"  "},
	}

	got := MergeErrors(server, local)
	want := map[string][]string{
		"email_1": {"already registered", "must be a valid email"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}

	if got := MergeErrors(nil, nil); got != nil {
		t.Fatalf("expected nil for empty inputs, got %v", got)
	}
}
