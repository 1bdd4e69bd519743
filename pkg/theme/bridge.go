package theme

import (
	"fmt"
	"strings"
	"sync"

	gotheme "github.com/goliatone/go-theme"
)

// TokensFromVars converts CSS custom properties into manifest tokens by
// stripping the "--" prefix. Renderer configs derive the vars back the same
// way, so the round trip is lossless.
func TokensFromVars(vars Vars) map[string]string {
	if len(vars) == 0 {
		return nil
	}
	tokens := make(map[string]string, len(vars))
	for key, value := range vars {
		tokens[strings.TrimPrefix(key, "--")] = value
	}
	return tokens
}

// Manifest builds a go-theme manifest whose tokens carry the palette.
func Manifest(name, version string, vars Vars) *gotheme.Manifest {
	return &gotheme.Manifest{
		Name:    name,
		Version: version,
		Tokens:  TokensFromVars(vars),
	}
}

// DefaultManifest is the stock palette as a manifest.
func DefaultManifest() *gotheme.Manifest {
	return Manifest("checkout", "1.0.0", Default())
}

// StaticSelector resolves selections from a fixed set of manifests. It covers
// the common case of an embedded widget that ships its themes rather than
// discovering them.
type StaticSelector struct {
	mu        sync.RWMutex
	manifests map[string]*gotheme.Manifest
	fallback  string
}

// NewStaticSelector builds a selector over the given manifests. The first
// manifest is the fallback for empty or unknown theme names.
func NewStaticSelector(manifests ...*gotheme.Manifest) *StaticSelector {
	s := &StaticSelector{manifests: make(map[string]*gotheme.Manifest, len(manifests))}
	for _, m := range manifests {
		if m == nil {
			continue
		}
		if s.fallback == "" {
			s.fallback = m.Name
		}
		s.manifests[m.Name] = m
	}
	return s
}

// Select resolves a theme and variant. An empty name selects the fallback.
func (s *StaticSelector) Select(name, variant string, _ ...gotheme.QueryOption) (*gotheme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if name == "" {
		name = s.fallback
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("theme: unknown theme %q", name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("theme: theme %q has no variant %q", name, variant)
		}
	}
	return &gotheme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// RendererConfig derives the renderer-facing configuration from a selection:
// partials merged over the fallbacks, tokens with the variant overlay applied,
// CSS vars recovered from tokens, and an asset resolver over the manifest's
// asset table.
func RendererConfig(sel *gotheme.Selection, fallbackPartials map[string]string) *gotheme.RendererConfig {
	cfg := &gotheme.RendererConfig{
		Partials: make(map[string]string, len(fallbackPartials)),
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}
	for key, value := range fallbackPartials {
		cfg.Partials[key] = value
	}
	if sel == nil {
		return cfg
	}

	cfg.Theme = sel.Theme
	cfg.Variant = sel.Variant

	manifest := sel.Manifest
	if manifest == nil {
		return cfg
	}

	for key, value := range manifest.Templates {
		cfg.Partials[key] = value
	}
	for key, value := range manifest.Tokens {
		cfg.Tokens[key] = value
	}
	assets := manifest.Assets

	if variant, ok := manifest.Variants[sel.Variant]; ok {
		for key, value := range variant.Templates {
			cfg.Partials[key] = value
		}
		for key, value := range variant.Tokens {
			cfg.Tokens[key] = value
		}
		if len(variant.Assets.Files) > 0 {
			files := make(map[string]string, len(assets.Files)+len(variant.Assets.Files))
			for key, value := range assets.Files {
				files[key] = value
			}
			for key, value := range variant.Assets.Files {
				files[key] = value
			}
			assets.Files = files
		}
		if variant.Assets.Prefix != "" {
			assets.Prefix = variant.Assets.Prefix
		}
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}
	cfg.AssetURL = assetResolver(assets)
	return cfg
}

func assetResolver(assets gotheme.Assets) func(string) string {
	return func(name string) string {
		file, ok := assets.Files[name]
		if !ok {
			return ""
		}
		if assets.Prefix == "" {
			return file
		}
		return strings.TrimSuffix(assets.Prefix, "/") + "/" + file
	}
}
