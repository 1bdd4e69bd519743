package variants

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/schema"
)

// ChangeFunc receives the authoritative full value after every edit. For
// structured payment variants the payload is always the whole object, never a
// delta.
type ChangeFunc func(value any)

// Control is the behavior contract behind a variant. Concrete control types
// expose variant-specific edit methods; callers type-assert after Resolve.
type Control interface {
	Variant() model.Variant
	// Value returns the current committed value in the shape the variant's
	// schema rule expects.
	Value() any
	// Inert reports whether the control takes part in validation at all.
	Inert() bool
}

// Descriptor bundles everything the engine knows about one variant: the
// value shape it produces, its option list if any, and the control factory.
type Descriptor struct {
	Variant model.Variant
	Kind    schema.ValueKind
	Options []Option
	// NewControl builds the interactive control for a field. onChange may be
	// nil when the caller only needs the value shape.
	NewControl func(field *model.Field, onChange ChangeFunc) Control
}

// Registry resolves variants to descriptors. Unknown variants fall back to an
// inert placeholder descriptor rather than an error.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[model.Variant]Descriptor
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[model.Variant]Descriptor)}
}

// NewDefaultRegistry creates a registry with every built-in variant
// registered.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.registerBuiltins()
	return r
}

// Register adds or replaces a descriptor.
func (r *Registry) Register(descriptor Descriptor) error {
	if descriptor.Variant == "" {
		return fmt.Errorf("variants: descriptor variant is required")
	}
	if descriptor.NewControl == nil {
		return fmt.Errorf("variants: control factory for %q is nil", descriptor.Variant)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.Options = cloneOptions(descriptor.Options)
	r.descriptors[descriptor.Variant] = descriptor
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(descriptor Descriptor) {
	if err := r.Register(descriptor); err != nil {
		panic(err)
	}
}

// Resolve returns the descriptor for a variant, falling back to the
// placeholder descriptor when the variant is unknown.
func (r *Registry) Resolve(variant model.Variant) (Descriptor, bool) {
	r.mu.RLock()
	descriptor, ok := r.descriptors[variant]
	r.mu.RUnlock()
	if ok {
		descriptor.Options = cloneOptions(descriptor.Options)
		return descriptor, true
	}
	return placeholderDescriptor(variant), false
}

// Control builds the interactive control for a field, dispatching on its
// variant. Unknown variants come back as inert placeholders.
func (r *Registry) Control(field *model.Field, onChange ChangeFunc) Control {
	descriptor, _ := r.Resolve(field.Variant)
	return descriptor.NewControl(field, onChange)
}

// Variants returns the registered variant names, sorted for determinism.
func (r *Registry) Variants() []model.Variant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Variant, 0, len(r.descriptors))
	for variant := range r.descriptors {
		out = append(out, variant)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r *Registry) registerBuiltins() {
	text := func(variant model.Variant) Descriptor {
		return Descriptor{
			Variant:    variant,
			Kind:       schema.KindString,
			NewControl: newTextControl,
		}
	}
	selection := func(variant model.Variant, options []Option) Descriptor {
		return Descriptor{
			Variant: variant,
			Kind:    schema.KindString,
			Options: options,
			NewControl: func(field *model.Field, onChange ChangeFunc) Control {
				return newSelectControl(field, options, onChange)
			},
		}
	}

	r.MustRegister(text(model.VariantInput))
	r.MustRegister(text(model.VariantEmail))
	r.MustRegister(text(model.VariantPhone))
	r.MustRegister(text(model.VariantTextarea))
	r.MustRegister(text(model.VariantCouponCode))
	r.MustRegister(text(model.VariantAmountInput))

	r.MustRegister(selection(model.VariantSelect, countries))
	r.MustRegister(selection(model.VariantCombobox, states))
	r.MustRegister(selection(model.VariantCurrencySelect, currencies))

	r.MustRegister(Descriptor{
		Variant: model.VariantMultiSelect,
		Kind:    schema.KindStringArray,
		Options: paymentOptions,
		NewControl: func(field *model.Field, onChange ChangeFunc) Control {
			return newMultiSelectControl(field, paymentOptions, onChange)
		},
	})

	r.MustRegister(Descriptor{
		Variant:    model.VariantCheckbox,
		Kind:       schema.KindBoolean,
		NewControl: newBoolControl,
	})
	r.MustRegister(Descriptor{
		Variant:    model.VariantSwitch,
		Kind:       schema.KindBoolean,
		NewControl: newBoolControl,
	})

	r.MustRegister(Descriptor{
		Variant:    model.VariantDatePicker,
		Kind:       schema.KindDate,
		NewControl: newDateControl,
	})

	r.MustRegister(Descriptor{
		Variant:    model.VariantInputOTP,
		Kind:       schema.KindString,
		NewControl: newOTPControl,
	})

	r.MustRegister(Descriptor{
		Variant:    model.VariantCreditCard,
		Kind:       schema.KindObject,
		NewControl: newCardControl,
	})
	r.MustRegister(Descriptor{
		Variant:    model.VariantPayPal,
		Kind:       schema.KindObject,
		NewControl: newPayPalControl,
	})
	r.MustRegister(Descriptor{
		Variant:    model.VariantApplePay,
		Kind:       schema.KindObject,
		NewControl: newApplePayControl,
	})
	r.MustRegister(Descriptor{
		Variant:    model.VariantGooglePay,
		Kind:       schema.KindObject,
		NewControl: newGooglePayControl,
	})
	r.MustRegister(Descriptor{
		Variant: model.VariantPaymentMethodSelector,
		Kind:    schema.KindObject,
		Options: paymentMethods,
		NewControl: func(field *model.Field, onChange ChangeFunc) Control {
			return newMethodSelectorControl(field, onChange)
		},
	})
}

func placeholderDescriptor(variant model.Variant) Descriptor {
	return Descriptor{
		Variant:    variant,
		Kind:       schema.KindString,
		NewControl: newPlaceholderControl,
	}
}
