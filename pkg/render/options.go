package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the composition itself.
type RenderOptions struct {
	// Values pre-populates rendered controls keyed by field name. Structured
	// payment values arrive as whole objects; renderers decide how to surface
	// their sub-fields.
	Values map[string]any
	// Errors surfaces validation feedback keyed by field name (sub-field
	// issues use dotted paths such as "card.cvv"). Renderers map these into
	// inline chrome next to the offending control.
	Errors map[string][]string
	// Theme carries the resolved theme configuration: CSS vars, partials, and
	// asset resolution. Nil means render with the stock palette.
	Theme *theme.RendererConfig
	// ContainerID scopes emitted styles to one host element so several
	// previews can share a page.
	ContainerID string
}
