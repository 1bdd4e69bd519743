package template_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formbuilder/pkg/render/template/gotemplate"
)

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	files := fstest.MapFS{
		"hello.tmpl":      {Data: []byte("Hello, {{ name }}!")},
		"use-global.tmpl": {Data: []byte("env={{ settings.env }}")},
		"card.tmpl":       {Data: []byte("{{ number|cardgroups }}")},
	}
	engine, err := gotemplate.New(gotemplate.WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello, Ada!" {
		t.Fatalf("result = %q", result)
	}
	if buf.String() != result {
		t.Fatalf("writer output %q differs from result %q", buf.String(), result)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("result = %q", result)
	}
}

func TestEngine_CardGroupsFilter(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("card", map[string]any{"number": "4242424242424242"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "4242 4242 4242 4242" {
		t.Fatalf("result = %q", result)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	result, err := engine.RenderString("{{ word|shout }}", map[string]any{"word": "go"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "GO!" {
		t.Fatalf("result = %q", result)
	}
}

func TestEngine_RequiresTemplateSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatal("engine without a source should fail")
	}
}
