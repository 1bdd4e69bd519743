package variants

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/schema"
)

func TestRegistryResolvesEveryCatalogVariant(t *testing.T) {
	reg := NewDefaultRegistry()
	for _, entry := range model.Catalog() {
		desc, ok := reg.Resolve(entry.Variant)
		if !ok {
			t.Fatalf("Resolve(%s) reported no descriptor", entry.Variant)
		}
		if desc.Variant != entry.Variant {
			t.Fatalf("Resolve(%s) returned descriptor for %s", entry.Variant, desc.Variant)
		}
	}
}

func TestRegistryUnknownVariantFallsBack(t *testing.T) {
	reg := NewDefaultRegistry()
	field := model.New("Mystery Widget", 0)

	ctl := reg.Control(field, nil)
	if !ctl.Inert() {
		t.Fatal("unknown variant should produce an inert control")
	}
	ph, ok := ctl.(*PlaceholderControl)
	if !ok {
		t.Fatalf("expected *PlaceholderControl, got %T", ctl)
	}
	if ph.Label() != "Field type not supported: Mystery Widget" {
		t.Fatalf("unexpected placeholder label: %q", ph.Label())
	}
}

func TestTextControlEmitsEveryEdit(t *testing.T) {
	field := model.New(model.VariantInput, 0)
	var got []string
	ctl := newTextControl(field, func(v any) {
		got = append(got, v.(string))
	}).(*TextControl)

	ctl.SetText("h")
	ctl.SetText("he")
	ctl.SetText("hey")

	want := []string{"h", "he", "hey"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("emitted values mismatch (-want +got):\n%s", diff)
	}
	if ctl.Value() != "hey" {
		t.Fatalf("Value() = %v, want hey", ctl.Value())
	}
}

func TestSelectControlRejectsOffListValue(t *testing.T) {
	field := model.New(model.VariantSelect, 0)
	ctl := newSelectControl(field, countries, nil).(*SelectControl)

	if err := ctl.Select("US"); err != nil {
		t.Fatalf("Select(US) failed: %v", err)
	}
	if err := ctl.Select("FR"); err == nil {
		t.Fatal("Select(FR) should fail for the country list")
	}
	if ctl.Value() != "US" {
		t.Fatalf("rejected selection mutated value: %v", ctl.Value())
	}
}

func TestMultiSelectToggleOrderAndDedup(t *testing.T) {
	field := model.New(model.VariantMultiSelect, 0)
	var last []string
	ctl := newMultiSelectControl(field, paymentOptions, func(v any) {
		last = v.([]string)
	}).(*MultiSelectControl)

	for _, v := range []string{"save_card", "installments", "save_card", "split_payment"} {
		if err := ctl.Toggle(v); err != nil {
			t.Fatalf("Toggle(%s) failed: %v", v, err)
		}
	}

	// save_card toggled off then the remainder keeps insertion order.
	want := []string{"installments", "split_payment"}
	if diff := cmp.Diff(want, last); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}

	// The emitted slice is a copy; later toggles must not mutate it.
	held := last
	if err := ctl.Toggle("save_card"); err != nil {
		t.Fatalf("Toggle(save_card) failed: %v", err)
	}
	if diff := cmp.Diff(want, held); diff != "" {
		t.Fatalf("earlier emission was mutated (-want +got):\n%s", diff)
	}
}

func TestMultiSelectDoubleToggleRestoresOriginal(t *testing.T) {
	field := model.New(model.VariantMultiSelect, 0)
	field.Value = []string{"split_payment"}
	ctl := newMultiSelectControl(field, paymentOptions, nil).(*MultiSelectControl)

	if err := ctl.Toggle("installments"); err != nil {
		t.Fatal(err)
	}
	if err := ctl.Toggle("installments"); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"split_payment"}, ctl.Value()); diff != "" {
		t.Fatalf("double toggle changed selection (-want +got):\n%s", diff)
	}
}

func TestBoolControlToggle(t *testing.T) {
	field := model.New(model.VariantSwitch, 0)
	field.Value = true
	ctl := newBoolControl(field, nil).(*BoolControl)

	ctl.Toggle()
	if ctl.Value() != false {
		t.Fatal("toggle from true should yield false")
	}
	ctl.Toggle()
	if ctl.Value() != true {
		t.Fatal("second toggle should restore true")
	}
}

func TestDateControlClearKeepsSentinel(t *testing.T) {
	field := model.New(model.VariantDatePicker, 0)
	ctl := newDateControl(field, nil).(*DateControl)

	if !ctl.Unset() {
		t.Fatal("fresh date control should be unset")
	}
	ctl.SetDate(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	if ctl.Unset() {
		t.Fatal("SetDate should clear the unset state")
	}
	ctl.Clear()
	if !ctl.Unset() {
		t.Fatal("Clear should restore the unset sentinel, not the current time")
	}
	if got := ctl.Value().(time.Time); !got.IsZero() {
		t.Fatalf("cleared value = %v, want zero time", got)
	}
}

func TestOTPControlAccumulation(t *testing.T) {
	field := model.New(model.VariantInputOTP, 0)
	ctl := newOTPControl(field, nil).(*OTPControl)

	ctl.Input("123")
	if ctl.Complete() {
		t.Fatal("three characters should not be complete")
	}
	ctl.Input("1234567890")
	if got := ctl.Value(); got != "123456" {
		t.Fatalf("overlong input should clamp: got %v", got)
	}
	if !ctl.Complete() {
		t.Fatal("six characters should be complete")
	}
}

func TestCardControlReEmitsWholeObject(t *testing.T) {
	field := model.New(model.VariantCreditCard, 0)
	var last map[string]any
	ctl := newCardControl(field, func(v any) {
		last = v.(map[string]any)
	}).(*CardControl)

	if err := ctl.SetField("cardholderName", "Ada Lovelace"); err != nil {
		t.Fatal(err)
	}
	if err := ctl.SetField("cardNumber", "4242 4242 4242 4242"); err != nil {
		t.Fatal(err)
	}

	want := map[string]any{
		"cardholderName": "Ada Lovelace",
		"cardNumber":     "4242424242424242",
		"expiryMonth":    "",
		"expiryYear":     "",
		"cvv":            "",
	}
	if diff := cmp.Diff(want, last); diff != "" {
		t.Fatalf("card object mismatch (-want +got):\n%s", diff)
	}

	if err := ctl.SetField("nickname", "main"); err == nil {
		t.Fatal("unknown sub-field should be rejected")
	}
}

func TestFormatCardNumber(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"42", "42"},
		{"4242", "4242"},
		{"42424", "4242 4"},
		{"4242424242424242", "4242 4242 4242 4242"},
		{"4242 4242 4242 4242", "4242 4242 4242 4242"},
	}
	for _, tc := range cases {
		if got := FormatCardNumber(tc.in); got != tc.want {
			t.Errorf("FormatCardNumber(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMethodSelectorRetainsInactiveState(t *testing.T) {
	field := model.New(model.VariantPaymentMethodSelector, 0)
	ctl := newMethodSelectorControl(field, nil).(*MethodSelectorControl)

	if ctl.Method() != schema.MethodCreditCard {
		t.Fatalf("default method = %s, want %s", ctl.Method(), schema.MethodCreditCard)
	}
	if err := ctl.SetField("cardholderName", "Ada Lovelace"); err != nil {
		t.Fatal(err)
	}

	if err := ctl.SetMethod(schema.MethodPayPal); err != nil {
		t.Fatal(err)
	}
	if err := ctl.SetField("email", "ada@example.com"); err != nil {
		t.Fatal(err)
	}

	// Only the active mode appears in the committed value.
	want := map[string]any{
		"method": schema.MethodPayPal,
		schema.MethodPayPal: map[string]any{
			"email": "ada@example.com",
		},
	}
	if diff := cmp.Diff(want, ctl.Value()); diff != "" {
		t.Fatalf("committed value mismatch (-want +got):\n%s", diff)
	}

	// Switching back restores the retained card sub-state.
	if err := ctl.SetMethod(schema.MethodCreditCard); err != nil {
		t.Fatal(err)
	}
	card := ctl.Value().(map[string]any)[schema.MethodCreditCard].(map[string]any)
	if card["cardholderName"] != "Ada Lovelace" {
		t.Fatalf("card sub-state lost after mode round trip: %v", card)
	}

	if err := ctl.SetMethod("wire_transfer"); err == nil {
		t.Fatal("unknown method should be rejected")
	}
}
