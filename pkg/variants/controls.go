package variants

import (
	"fmt"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/schema"
)

type baseControl struct {
	variant  model.Variant
	onChange ChangeFunc
}

func (c baseControl) Variant() model.Variant { return c.variant }
func (c baseControl) Inert() bool            { return false }

func (c baseControl) emit(value any) {
	if c.onChange != nil {
		c.onChange(value)
	}
}

// TextControl backs the scalar text variants (Input, Email, Phone, Textarea,
// Coupon Code, Amount Input). Every edit re-emits the raw string; debouncing
// is a presentation concern and does not belong here.
type TextControl struct {
	baseControl
	value string
}

func newTextControl(field *model.Field, onChange ChangeFunc) Control {
	value, _ := field.Value.(string)
	return &TextControl{
		baseControl: baseControl{variant: field.Variant, onChange: onChange},
		value:       value,
	}
}

// SetText replaces the value with the raw edit and emits it.
func (c *TextControl) SetText(value string) {
	c.value = value
	c.emit(value)
}

func (c *TextControl) Value() any { return c.value }

// SelectControl backs the single-selection variants. The value is always one
// of the fixed option list's values; a selection outside the list is a caller
// bug and is reported, not stored.
type SelectControl struct {
	baseControl
	options []Option
	value   string
}

func newSelectControl(field *model.Field, options []Option, onChange ChangeFunc) Control {
	value, _ := field.Value.(string)
	return &SelectControl{
		baseControl: baseControl{variant: field.Variant, onChange: onChange},
		options:     cloneOptions(options),
		value:       value,
	}
}

// Select commits a choice and emits it once.
func (c *SelectControl) Select(value string) error {
	if !containsOption(c.options, value) {
		return fmt.Errorf("variants: %q is not an option of %s", value, c.variant)
	}
	c.value = value
	c.emit(value)
	return nil
}

// Options returns the fixed option list.
func (c *SelectControl) Options() []Option { return cloneOptions(c.options) }

func (c *SelectControl) Value() any { return c.value }

// MultiSelectControl backs Multi Select. Selection order is
// first-selected-first and entries never repeat.
type MultiSelectControl struct {
	baseControl
	options  []Option
	selected []string
}

func newMultiSelectControl(field *model.Field, options []Option, onChange ChangeFunc) Control {
	var selected []string
	if initial, ok := field.Value.([]string); ok {
		selected = append(selected, initial...)
	}
	return &MultiSelectControl{
		baseControl: baseControl{variant: field.Variant, onChange: onChange},
		options:     cloneOptions(options),
		selected:    selected,
	}
}

// Toggle adds the option when absent and removes it when present, then emits
// the full selection.
func (c *MultiSelectControl) Toggle(value string) error {
	if !containsOption(c.options, value) {
		return fmt.Errorf("variants: %q is not an option of %s", value, c.variant)
	}

	for i, existing := range c.selected {
		if existing == value {
			c.selected = append(c.selected[:i], c.selected[i+1:]...)
			c.emit(c.snapshot())
			return nil
		}
	}
	c.selected = append(c.selected, value)
	c.emit(c.snapshot())
	return nil
}

// Options returns the fixed option list.
func (c *MultiSelectControl) Options() []Option { return cloneOptions(c.options) }

func (c *MultiSelectControl) snapshot() []string {
	return append([]string(nil), c.selected...)
}

func (c *MultiSelectControl) Value() any { return c.snapshot() }

// BoolControl backs Checkbox and Switch; the value toggles in place.
type BoolControl struct {
	baseControl
	value bool
}

func newBoolControl(field *model.Field, onChange ChangeFunc) Control {
	value, ok := field.Value.(bool)
	if !ok {
		value = false
	}
	return &BoolControl{
		baseControl: baseControl{variant: field.Variant, onChange: onChange},
		value:       value,
	}
}

// Set stores the checked state and emits it.
func (c *BoolControl) Set(checked bool) {
	c.value = checked
	c.emit(checked)
}

// Toggle flips the checked state and emits it.
func (c *BoolControl) Toggle() {
	c.Set(!c.value)
}

func (c *BoolControl) Value() any { return c.value }

// DateControl backs Date Picker. Clearing the selection stores the zero time
// sentinel so the default-value contract stays total; it never coerces an
// unset date to the current time.
type DateControl struct {
	baseControl
	value time.Time
}

func newDateControl(field *model.Field, onChange ChangeFunc) Control {
	value, _ := field.Value.(time.Time)
	return &DateControl{
		baseControl: baseControl{variant: field.Variant, onChange: onChange},
		value:       value,
	}
}

// SetDate commits a concrete date and emits it.
func (c *DateControl) SetDate(value time.Time) {
	c.value = value
	c.emit(value)
}

// Clear resets to the unset sentinel and emits it.
func (c *DateControl) Clear() {
	c.SetDate(time.Time{})
}

// Unset reports whether no date has been selected.
func (c *DateControl) Unset() bool { return c.value.IsZero() }

func (c *DateControl) Value() any { return c.value }

// OTPControl backs Input OTP: a fixed-length code accumulated character by
// character. Shorter values are valid intermediate state, not submittable.
type OTPControl struct {
	baseControl
	code string
}

func newOTPControl(field *model.Field, onChange ChangeFunc) Control {
	code, _ := field.Value.(string)
	if len(code) > schema.OTPLength {
		code = code[:schema.OTPLength]
	}
	return &OTPControl{
		baseControl: baseControl{variant: field.Variant, onChange: onChange},
		code:        code,
	}
}

// Input replaces the accumulated code, clamped to the OTP length, and emits
// the current accumulation.
func (c *OTPControl) Input(code string) {
	if len(code) > schema.OTPLength {
		code = code[:schema.OTPLength]
	}
	c.code = code
	c.emit(code)
}

// Complete reports whether the full length has been accumulated.
func (c *OTPControl) Complete() bool { return len(c.code) == schema.OTPLength }

func (c *OTPControl) Value() any { return c.code }

// PlaceholderControl stands in for unsupported variants: it renders as a
// clearly labeled placeholder and is inert for validation.
type PlaceholderControl struct {
	baseControl
	value any
}

func newPlaceholderControl(field *model.Field, onChange ChangeFunc) Control {
	return &PlaceholderControl{
		baseControl: baseControl{variant: field.Variant, onChange: onChange},
		value:       field.Value,
	}
}

// Label names the unsupported variant for display.
func (c *PlaceholderControl) Label() string {
	return fmt.Sprintf("Field type not supported: %s", c.variant)
}

func (c *PlaceholderControl) Inert() bool { return true }
func (c *PlaceholderControl) Value() any { return c.value }
