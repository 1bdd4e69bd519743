// Package schema synthesises a validation schema and default-value map from
// an ordered field list. Generation is a pure function of the composition:
// the editor regenerates it on every field mutation and treats the previous
// result as disposable derived state.
package schema
