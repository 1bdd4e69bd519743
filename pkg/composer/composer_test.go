package composer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/components/styleapi"
	"github.com/goliatone/go-formbuilder/pkg/fieldpath"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/storage"
	"github.com/goliatone/go-formbuilder/pkg/theme"
)

func newThemeStore(t *testing.T) *theme.Store {
	t.Helper()
	return theme.NewStore(theme.WithDir(t.TempDir()))
}

type captureRenderer struct {
	name        string
	composition model.Composition
	options     render.RenderOptions
	output      []byte
	err         error
}

func (r *captureRenderer) Name() string        { return r.name }
func (r *captureRenderer) ContentType() string { return "text/plain" }

func (r *captureRenderer) Render(_ context.Context, composition model.Composition, options render.RenderOptions) ([]byte, error) {
	r.composition = composition
	r.options = options
	return r.output, r.err
}

func newTestSession(t *testing.T, opts ...Option) (*Session, *captureRenderer) {
	t.Helper()
	capture := &captureRenderer{name: "capture", output: []byte("ok")}
	registry := render.NewRegistry()
	registry.MustRegister(capture)
	opts = append([]Option{WithRegistry(registry), WithDefaultRenderer("capture")}, opts...)
	return New(opts...), capture
}

func TestAddFieldRegeneratesSchema(t *testing.T) {
	session, _ := newTestSession(t)

	field := session.AddField(model.VariantEmail)
	if field.Name == "" || field.Variant != model.VariantEmail {
		t.Fatalf("unexpected field: %+v", field)
	}

	defaults := session.Defaults()
	if _, ok := defaults[field.Name]; !ok {
		t.Fatalf("defaults missing %q: %v", field.Name, defaults)
	}

	result := session.Submit(map[string]any{field.Name: "not-an-email"})
	if result.Valid {
		t.Fatal("schema should reject a malformed email immediately after the edit")
	}
	result = session.Submit(map[string]any{field.Name: "shopper@example.com"})
	if !result.Valid {
		t.Fatalf("unexpected issues: %v", result.Issues)
	}
}

func TestUpdateFieldPatchesInPlace(t *testing.T) {
	session, _ := newTestSession(t)
	field := session.AddField(model.VariantInput)

	label := "Full name"
	required := false
	err := session.UpdateField(field.Name, fieldpath.Patch{Label: &label, Required: &required})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	got := model.Flatten(session.Fields())[0]
	if got.Label != "Full name" || got.Required {
		t.Fatalf("patch not applied: %+v", got)
	}

	// Optional string fields accept empty submissions once required is off.
	if result := session.Submit(map[string]any{field.Name: ""}); !result.Valid {
		t.Fatalf("unexpected issues: %v", result.Issues)
	}

	if err := session.UpdateField("missing", fieldpath.Patch{Label: &label}); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestRemoveFieldDropsRule(t *testing.T) {
	session, _ := newTestSession(t)
	keep := session.AddField(model.VariantInput)
	drop := session.AddField(model.VariantEmail)

	if err := session.RemoveField(drop.Name); err != nil {
		t.Fatalf("remove: %v", err)
	}

	names := model.Names(session.Fields())
	if len(names) != 1 || names[0] != keep.Name {
		t.Fatalf("names = %v", names)
	}
	// A stale rule for the removed field would reject this submission.
	if result := session.Submit(map[string]any{keep.Name: "hello"}); !result.Valid {
		t.Fatalf("unexpected issues: %v", result.Issues)
	}
}

func TestMoveGroupUngroup(t *testing.T) {
	session, _ := newTestSession(t)
	first := session.AddField(model.VariantInput)
	second := session.AddField(model.VariantEmail)
	third := session.AddField(model.VariantPhone)

	if err := session.MoveField(2, 0); err != nil {
		t.Fatalf("move: %v", err)
	}
	want := []string{third.Name, first.Name, second.Name}
	if diff := cmp.Diff(want, model.Names(session.Fields())); diff != "" {
		t.Fatalf("order after move (-want +got):\n%s", diff)
	}

	if err := session.GroupFields(0, 1); err != nil {
		t.Fatalf("group: %v", err)
	}
	entries := session.Fields()
	if !entries[0].IsGroup() || len(entries[0].Group) != 2 {
		t.Fatalf("expected a two-member group, got %+v", entries[0])
	}

	if err := session.UngroupFields(0); err != nil {
		t.Fatalf("ungroup: %v", err)
	}
	entries = session.Fields()
	if entries[0].IsGroup() {
		t.Fatal("group should be split back into singles")
	}
	if diff := cmp.Diff(want, model.Names(session.Fields())); diff != "" {
		t.Fatalf("order after ungroup (-want +got):\n%s", diff)
	}
}

func TestPreviewUsesDefaultRenderer(t *testing.T) {
	session, capture := newTestSession(t)
	field := session.AddField(model.VariantInput)
	session.SetThemeVar("--primary", "#ff0000")

	out, err := session.Preview(context.Background(), "", render.RenderOptions{
		Values: map[string]any{field.Name: "hello"},
	})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if string(out) != "ok" {
		t.Fatalf("output = %q", out)
	}
	if capture.composition.Theme["--primary"] != "#ff0000" {
		t.Fatalf("theme not propagated: %v", capture.composition.Theme)
	}
	if capture.options.Values[field.Name] != "hello" {
		t.Fatalf("options not propagated: %+v", capture.options)
	}

	if _, err := session.Preview(context.Background(), "missing", render.RenderOptions{}); err == nil {
		t.Fatal("expected error for unknown renderer")
	}
}

func TestSaveAndLoadRemoteRoundTrip(t *testing.T) {
	server := httptest.NewServer(styleapi.Handler())
	defer server.Close()

	client, err := storage.NewClient(server.URL + "/api/form-config")
	if err != nil {
		t.Fatalf("client: %v", err)
	}

	session, _ := newTestSession(t, WithClient(client))
	field := session.AddField(model.VariantEmail)
	session.SetThemeVar("--primary", "#123456")

	if err := session.Save(context.Background()); err != nil {
		t.Fatalf("save: %v", err)
	}

	restored, _ := newTestSession(t, WithClient(client))
	if err := restored.LoadRemote(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	if diff := cmp.Diff(session.Composition(), restored.Composition()); diff != "" {
		t.Fatalf("round trip mismatch (-saved +loaded):\n%s", diff)
	}
	if restored.Composition().Theme["--primary"] != "#123456" {
		t.Fatal("theme vars lost in round trip")
	}
	if result := restored.Submit(map[string]any{field.Name: "shopper@example.com"}); !result.Valid {
		t.Fatalf("restored schema rejects valid value: %v", result.Issues)
	}
}

func TestFailedSaveLeavesStateUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := storage.NewClient(server.URL)
	if err != nil {
		t.Fatalf("client: %v", err)
	}

	session, _ := newTestSession(t, WithClient(client))
	field := session.AddField(model.VariantInput)
	before := session.Composition()

	if err := session.Save(context.Background()); err == nil {
		t.Fatal("expected save to fail")
	}
	if err := session.LoadRemote(context.Background()); err == nil {
		t.Fatal("expected load to fail")
	}

	if diff := cmp.Diff(before, session.Composition()); diff != "" {
		t.Fatalf("state changed across failed calls (-before +after):\n%s", diff)
	}
	if result := session.Submit(map[string]any{field.Name: "still here"}); !result.Valid {
		t.Fatalf("schema changed across failed calls: %v", result.Issues)
	}
}

func TestSaveWithoutClient(t *testing.T) {
	session, _ := newTestSession(t)
	if err := session.Save(context.Background()); err != ErrNoClient {
		t.Fatalf("err = %v, want ErrNoClient", err)
	}
	if err := session.LoadRemote(context.Background()); err != ErrNoClient {
		t.Fatalf("err = %v, want ErrNoClient", err)
	}
}

func TestThemeStoreRoundTrip(t *testing.T) {
	store := newThemeStore(t)

	session, _ := newTestSession(t, WithThemeStore(store))
	session.SetThemeVar("--radius", "1rem")
	if err := session.SaveTheme(); err != nil {
		t.Fatalf("save theme: %v", err)
	}

	fresh, _ := newTestSession(t, WithThemeStore(store))
	if err := fresh.LoadTheme(); err != nil {
		t.Fatalf("load theme: %v", err)
	}
	if fresh.ThemeVars()["--radius"] != "1rem" {
		t.Fatalf("theme vars = %v", fresh.ThemeVars())
	}
}
