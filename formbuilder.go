// Package formbuilder composes schema-driven checkout forms: a typed field
// catalog, a validation schema regenerated on every edit, themable HTML and
// terminal previews, and JSON persistence of the whole composition. The root
// package re-exports the session entry points; the pkg tree holds the
// building blocks for callers that need finer control.
package formbuilder

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formbuilder/pkg/composer"
	"github.com/goliatone/go-formbuilder/pkg/fieldpath"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
)

// Composition is the persistence unit: the ordered field list plus theme
// variables.
type Composition = model.Composition

// Field is one field definition in a composition.
type Field = model.Field

// FieldOrGroup is a composition entry: a single field or a row group.
type FieldOrGroup = model.FieldOrGroup

// Variant tags a field with its editor and preview behavior.
type Variant = model.Variant

// Patch carries the mutable subset of a field definition for UpdateField.
type Patch = fieldpath.Patch

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// Session owns one composition while it is being edited.
type Session = composer.Session

// Option customises a session.
type Option = composer.Option

// NewSession exposes the session constructor from the top-level module,
// mirroring the quick start in the README.
func NewSession(options ...Option) *Session {
	return composer.New(options...)
}

// RenderHTML builds a session around an existing composition and renders it
// with the default vanilla renderer. It is the simplest entry point for
// callers that just want preview markup.
func RenderHTML(ctx context.Context, composition Composition, options ...Option) ([]byte, error) {
	opts := append([]Option{composer.WithComposition(composition)}, options...)
	session := composer.New(opts...)
	return session.Preview(ctx, "", render.RenderOptions{})
}

// DecodeComposition parses a persisted composition document, accepting both
// the combined {formFields, themeVars} object and the legacy bare field
// array.
func DecodeComposition(data []byte) (Composition, error) {
	return model.DecodeComposition(data)
}

// Catalog returns the built-in variant catalog in palette order.
func Catalog() []model.CatalogEntry {
	return model.Catalog()
}

// EmbeddedTemplates exposes the built-in vanilla renderer templates so
// callers can reuse or extend them without importing the renderer package
// directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedAssets exposes the vanilla renderer's static assets (stylesheet)
// for callers serving the preview from their own mux.
func EmbeddedAssets() fs.FS {
	return vanilla.AssetsFS()
}
