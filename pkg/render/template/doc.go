// Package template defines the renderer-agnostic template engine contract and
// its pongo2-backed adapter. Renderers depend on the interface so the engine
// can be swapped without touching markup generation.
package template
