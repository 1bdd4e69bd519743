package variants

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/schema"
)

// objectState holds a structured payment value. Mutations re-emit the entire
// object so the committing field never holds a partially applied edit.
type objectState struct {
	keys   []string
	values map[string]string
}

func newObjectState(keys []string, initial any) *objectState {
	st := &objectState{
		keys:   keys,
		values: make(map[string]string, len(keys)),
	}
	for _, key := range keys {
		st.values[key] = ""
	}
	if seed, ok := initial.(map[string]any); ok {
		for _, key := range keys {
			if v, ok := seed[key].(string); ok {
				st.values[key] = v
			}
		}
	}
	return st
}

func (s *objectState) set(key, value string) error {
	if _, ok := s.values[key]; !ok {
		return fmt.Errorf("variants: unknown sub-field %q", key)
	}
	s.values[key] = value
	return nil
}

func (s *objectState) snapshot() map[string]any {
	out := make(map[string]any, len(s.keys))
	for _, key := range s.keys {
		out[key] = s.values[key]
	}
	return out
}

// CardControl backs Credit Card Details. Card numbers are stored without
// grouping spaces; FormatCardNumber is display only.
type CardControl struct {
	baseControl
	state *objectState
}

func newCardControl(field *model.Field, onChange ChangeFunc) Control {
	return &CardControl{
		baseControl: baseControl{variant: field.Variant, onChange: onChange},
		state: newObjectState([]string{
			"cardholderName", "cardNumber", "expiryMonth", "expiryYear", "cvv",
		}, field.Value),
	}
}

// SetField updates one sub-field and emits the whole card object. The card
// number is normalized by stripping spaces before storage.
func (c *CardControl) SetField(name, value string) error {
	if name == "cardNumber" {
		value = strings.ReplaceAll(value, " ", "")
	}
	if err := c.state.set(name, value); err != nil {
		return err
	}
	c.emit(c.state.snapshot())
	return nil
}

func (c *CardControl) Value() any { return c.state.snapshot() }

// FormatCardNumber renders a stored card number in display groups of four
// digits separated by single spaces.
func FormatCardNumber(number string) string {
	digits := strings.ReplaceAll(number, " ", "")
	if len(digits) <= 4 {
		return digits
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// PayPalControl backs PayPal Payment: a single billing email.
type PayPalControl struct {
	baseControl
	state *objectState
}

func newPayPalControl(field *model.Field, onChange ChangeFunc) Control {
	return &PayPalControl{
		baseControl: baseControl{variant: field.Variant, onChange: onChange},
		state:       newObjectState([]string{"email"}, field.Value),
	}
}

// SetEmail updates the billing email and emits the object.
func (c *PayPalControl) SetEmail(email string) {
	_ = c.state.set("email", email)
	c.emit(c.state.snapshot())
}

func (c *PayPalControl) Value() any { return c.state.snapshot() }

// ApplePayControl backs Apple Pay: an opaque token plus the device that
// produced it.
type ApplePayControl struct {
	baseControl
	state *objectState
}

func newApplePayControl(field *model.Field, onChange ChangeFunc) Control {
	return &ApplePayControl{
		baseControl: baseControl{variant: field.Variant, onChange: onChange},
		state:       newObjectState([]string{"token", "deviceId"}, field.Value),
	}
}

// SetField updates one sub-field and emits the object.
func (c *ApplePayControl) SetField(name, value string) error {
	if err := c.state.set(name, value); err != nil {
		return err
	}
	c.emit(c.state.snapshot())
	return nil
}

func (c *ApplePayControl) Value() any { return c.state.snapshot() }

// GooglePayControl backs Google Pay: an opaque token plus the account that
// produced it.
type GooglePayControl struct {
	baseControl
	state *objectState
}

func newGooglePayControl(field *model.Field, onChange ChangeFunc) Control {
	return &GooglePayControl{
		baseControl: baseControl{variant: field.Variant, onChange: onChange},
		state:       newObjectState([]string{"token", "accountId"}, field.Value),
	}
}

// SetField updates one sub-field and emits the object.
func (c *GooglePayControl) SetField(name, value string) error {
	if err := c.state.set(name, value); err != nil {
		return err
	}
	c.emit(c.state.snapshot())
	return nil
}

func (c *GooglePayControl) Value() any { return c.state.snapshot() }

// MethodSelectorControl backs Payment Method Selector. Every mode keeps its
// own sub-state while hidden so switching away and back loses nothing; only
// the active mode's state appears in the committed value.
type MethodSelectorControl struct {
	baseControl
	method string
	modes  map[string]*objectState
}

var methodModeKeys = map[string][]string{
	schema.MethodCreditCard: {"cardholderName", "cardNumber", "expiryMonth", "expiryYear", "cvv"},
	schema.MethodPayPal:     {"email"},
	schema.MethodApplePay:   {"token", "deviceId"},
	schema.MethodGooglePay:  {"token", "accountId"},
}

func newMethodSelectorControl(field *model.Field, onChange ChangeFunc) Control {
	c := &MethodSelectorControl{
		baseControl: baseControl{variant: field.Variant, onChange: onChange},
		method:      schema.MethodCreditCard,
		modes:       make(map[string]*objectState, len(methodModeKeys)),
	}

	seed, _ := field.Value.(map[string]any)
	if method, ok := seed["method"].(string); ok {
		if _, known := methodModeKeys[method]; known {
			c.method = method
		}
	}
	for method, keys := range methodModeKeys {
		c.modes[method] = newObjectState(keys, seed[method])
	}
	return c
}

// SetMethod switches the active payment mode and emits the committed value.
// Sub-state of the mode being left is retained, not discarded.
func (c *MethodSelectorControl) SetMethod(method string) error {
	if _, ok := c.modes[method]; !ok {
		return fmt.Errorf("variants: unknown payment method %q", method)
	}
	c.method = method
	c.emit(c.snapshot())
	return nil
}

// Method returns the active payment mode.
func (c *MethodSelectorControl) Method() string { return c.method }

// SetField updates one sub-field of the active mode and emits the committed
// value.
func (c *MethodSelectorControl) SetField(name, value string) error {
	if c.method == schema.MethodCreditCard && name == "cardNumber" {
		value = strings.ReplaceAll(value, " ", "")
	}
	if err := c.modes[c.method].set(name, value); err != nil {
		return err
	}
	c.emit(c.snapshot())
	return nil
}

// snapshot commits the discriminator and the active mode's object only.
func (c *MethodSelectorControl) snapshot() map[string]any {
	return map[string]any{
		"method": c.method,
		c.method: c.modes[c.method].snapshot(),
	}
}

func (c *MethodSelectorControl) Value() any { return c.snapshot() }
