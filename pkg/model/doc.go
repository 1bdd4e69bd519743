// Package model defines the canonical field definition for the checkout form
// composer: the Field struct, the FieldOrGroup union used for side-by-side
// row layout, and the Composition persisted as a whole `{formFields,
// themeVars}` unit. Construction rules (unique names, per-variant default
// content) live here; behavior dispatch lives in pkg/variants and validation
// in pkg/schema.
package model
