// Package theme holds the checkout preview's visual configuration: a flat map
// of CSS custom properties, a durable single-slot store for it, and a bridge
// into goliatone/go-theme for renderers that consume manifests.
package theme

import (
	"sort"
	"strings"
)

// Vars maps CSS custom property names to their values.
type Vars map[string]string

// Custom property names recognized by the built-in renderers.
const (
	VarPrimary           = "--primary"
	VarPrimaryForeground = "--primary-foreground"
	VarBorder            = "--border"
	VarBackground        = "--background"
	VarInput             = "--input"
	VarMuted             = "--muted"
	VarAccent            = "--accent"
	VarRadius            = "--radius"
	VarRing              = "--ring"
)

// Default returns the stock palette applied when no stored configuration
// exists or the stored payload cannot be decoded.
func Default() Vars {
	return Vars{
		VarPrimary:           "#000000",
		VarPrimaryForeground: "#000000",
		VarBorder:            "#e5e5e5",
		VarBackground:        "#ffffff",
		VarInput:             "#e5e5e5",
		VarMuted:             "#f5f5f5",
		VarAccent:            "#f5f5f5",
		VarRadius:            "0.625rem",
		VarRing:              "#000000",
	}
}

// Clone returns an independent copy.
func (v Vars) Clone() Vars {
	if v == nil {
		return nil
	}
	out := make(Vars, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// Merge overlays the receiver's entries with the argument's; the receiver is
// not modified.
func (v Vars) Merge(overlay Vars) Vars {
	out := v.Clone()
	if out == nil {
		out = make(Vars, len(overlay))
	}
	for key, value := range overlay {
		out[key] = value
	}
	return out
}

// ApplyToScope renders a CSS block that sets the variables on a single
// container element, so multiple previews on one page style independently.
// Property order is sorted for stable output.
func ApplyToScope(containerID string, vars Vars) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("#")
	b.WriteString(containerID)
	b.WriteString(" {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
