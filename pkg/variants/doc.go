// Package variants maps a field's declared variant to its runtime behavior:
// the shape of the value it produces, the option list it draws from, and the
// change contract its control honors. The registry is a closed but growable
// dispatch table with an explicit placeholder fallback, so one unknown
// variant never takes down a whole form.
package variants
