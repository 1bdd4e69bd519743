package theme

import (
	"testing"

	gotheme "github.com/goliatone/go-theme"
)

func TestRendererConfigFromSelection(t *testing.T) {
	manifest := &gotheme.Manifest{
		Name:    "checkout",
		Version: "1.0.0",
		Tokens: map[string]string{
			"primary": "#000000",
			"radius":  "0.625rem",
		},
		Templates: map[string]string{
			"forms.input": "themes/checkout/input.tmpl",
		},
		Assets: gotheme.Assets{
			Prefix: "/assets/themes/checkout",
			Files: map[string]string{
				"stylesheet": "theme.css",
			},
		},
		Variants: map[string]gotheme.Variant{
			"dark": {
				Tokens: map[string]string{
					"primary": "#ffffff",
				},
			},
		},
	}

	selector := NewStaticSelector(manifest)
	sel, err := selector.Select("checkout", "dark")
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	fallbacks := map[string]string{
		"forms.input":    "defaults/input.tmpl",
		"forms.checkbox": "defaults/checkbox.tmpl",
	}
	cfg := RendererConfig(sel, fallbacks)

	if cfg.Theme != "checkout" || cfg.Variant != "dark" {
		t.Fatalf("selection not propagated: %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.Partials["forms.input"] != "themes/checkout/input.tmpl" {
		t.Fatalf("manifest template should win over fallback: %s", cfg.Partials["forms.input"])
	}
	if cfg.Partials["forms.checkbox"] != "defaults/checkbox.tmpl" {
		t.Fatalf("fallback partial lost: %s", cfg.Partials["forms.checkbox"])
	}
	if cfg.Tokens["primary"] != "#ffffff" {
		t.Fatalf("variant token overlay not applied: %s", cfg.Tokens["primary"])
	}
	if cfg.CSSVars["--primary"] != "#ffffff" {
		t.Fatalf("css vars not derived from tokens: %s", cfg.CSSVars["--primary"])
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/themes/checkout/theme.css" {
		t.Fatalf("asset resolution: %s", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("unknown asset should resolve empty, got %s", got)
	}
}

func TestStaticSelectorFallbackAndErrors(t *testing.T) {
	selector := NewStaticSelector(DefaultManifest())

	sel, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("empty name should use fallback: %v", err)
	}
	if sel.Theme != "checkout" {
		t.Fatalf("fallback theme = %s", sel.Theme)
	}

	if _, err := selector.Select("nope", ""); err == nil {
		t.Fatal("unknown theme should error")
	}
	if _, err := selector.Select("checkout", "neon"); err == nil {
		t.Fatal("unknown variant should error")
	}
}

func TestTokensFromVarsRoundTrip(t *testing.T) {
	cfg := RendererConfig(&gotheme.Selection{
		Theme:    "checkout",
		Manifest: Manifest("checkout", "1.0.0", Default()),
	}, nil)

	for key, value := range Default() {
		if cfg.CSSVars[key] != value {
			t.Fatalf("var %s lost in round trip: %s", key, cfg.CSSVars[key])
		}
	}
}
