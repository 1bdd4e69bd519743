package schema

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

func TestGenerate_IsPure(t *testing.T) {
	fields := []model.FieldOrGroup{
		model.Single(model.New(model.VariantEmail, 0)),
		model.Row(model.New(model.VariantInput, 0), model.New(model.VariantCheckbox, 1)),
		model.Single(model.New(model.VariantCreditCard, 0)),
	}

	first, firstDefaults := Generate(fields)
	second, secondDefaults := Generate(fields)

	if diff := cmp.Diff(first.Rules(), second.Rules()); diff != "" {
		t.Fatalf("rules differ across runs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(firstDefaults, secondDefaults); diff != "" {
		t.Fatalf("defaults differ across runs (-first +second):\n%s", diff)
	}

	samples := []map[string]any{
		firstDefaults,
		{},
		{fields[0].Field.Name: "john@example.com"},
	}
	for _, sample := range samples {
		if diff := cmp.Diff(first.Validate(sample), second.Validate(sample)); diff != "" {
			t.Fatalf("validation outcomes differ (-first +second):\n%s", diff)
		}
	}
}

func TestGenerate_SkipsDisabledFields(t *testing.T) {
	enabled := model.New(model.VariantInput, 0)
	disabled := model.New(model.VariantEmail, 0)
	disabled.Disabled = true

	generated, defaults := Generate([]model.FieldOrGroup{
		model.Single(enabled),
		model.Single(disabled),
	})

	if generated.Len() != 1 {
		t.Fatalf("expected one rule, got %d", generated.Len())
	}
	if _, ok := generated.Rule(disabled.Name); ok {
		t.Fatal("disabled field should be inert")
	}
	if _, ok := defaults[disabled.Name]; ok {
		t.Fatal("disabled field should contribute no default")
	}
}

func TestGenerate_DefaultsSatisfyOptionalSchema(t *testing.T) {
	fields := []model.FieldOrGroup{
		model.Single(model.New(model.VariantInput, 0)),
		model.Single(model.New(model.VariantCheckbox, 0)),
		model.Single(model.New(model.VariantMultiSelect, 0)),
		model.Single(model.New(model.VariantDatePicker, 0)),
		model.Single(model.New(model.VariantCreditCard, 0)),
	}
	for _, entry := range fields {
		entry.Field.Required = false
	}

	generated, defaults := Generate(fields)
	result := generated.Validate(defaults)
	if !result.Valid {
		t.Fatalf("optional defaults should validate, got issues: %+v", result.Issues)
	}
}

func TestGenerate_DefaultsMirrorDecodedValues(t *testing.T) {
	multi := model.New(model.VariantMultiSelect, 0)
	multi.Value = []string{"split_payment"}
	when := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	date := model.New(model.VariantDatePicker, 1)
	date.Value = when

	payload, err := json.Marshal(model.Composition{Fields: []model.FieldOrGroup{
		model.Single(multi),
		model.Single(date),
	}})
	if err != nil {
		t.Fatalf("marshal composition: %v", err)
	}
	decoded, err := model.DecodeComposition(payload)
	if err != nil {
		t.Fatalf("decode composition: %v", err)
	}

	_, defaults := Generate(decoded.Fields)

	if diff := cmp.Diff([]string{"split_payment"}, defaults[multi.Name]); diff != "" {
		t.Fatalf("multi-select default after round trip (-want +got):\n%s", diff)
	}
	got, ok := defaults[date.Name].(time.Time)
	if !ok || !got.Equal(when) {
		t.Fatalf("date default after round trip = %v (%T), want %v", defaults[date.Name], defaults[date.Name], when)
	}
}

func TestGenerate_RequiredEmptyTextFailsUntilFilled(t *testing.T) {
	field := model.New(model.VariantInput, 0)
	generated, defaults := Generate([]model.FieldOrGroup{model.Single(field)})

	result := generated.Validate(defaults)
	if result.Valid {
		t.Fatal("required empty text default must fail validation")
	}

	result = generated.Validate(map[string]any{field.Name: "Ada Lovelace"})
	if !result.Valid {
		t.Fatalf("filled value should validate, got %+v", result.Issues)
	}
}

func TestValidate_EmailAndCreditCardScenario(t *testing.T) {
	email := model.New(model.VariantEmail, 0)
	card := model.New(model.VariantCreditCard, 0)
	generated, _ := Generate([]model.FieldOrGroup{model.Single(email), model.Single(card)})

	fullCard := map[string]any{
		"cardholderName": "Ada Lovelace",
		"cardNumber":     "4242424242424242",
		"expiryMonth":    "12",
		"expiryYear":     "29",
		"cvv":            "123",
	}

	result := generated.Validate(map[string]any{
		email.Name: "not-an-email",
		card.Name:  fullCard,
	})
	if result.Valid {
		t.Fatal("expected email format failure")
	}
	for _, issue := range result.Issues {
		if issue.Field != email.Name {
			t.Fatalf("only the email field should fail, got issue on %q", issue.Field)
		}
	}

	result = generated.Validate(map[string]any{
		email.Name: "ada@example.com",
		card.Name:  fullCard,
	})
	if !result.Valid {
		t.Fatalf("expected success, got %+v", result.Issues)
	}
}

func TestValidate_CreditCardSubFields(t *testing.T) {
	card := model.New(model.VariantCreditCard, 0)
	generated, _ := Generate([]model.FieldOrGroup{model.Single(card)})

	result := generated.Validate(map[string]any{
		card.Name: map[string]any{
			"cardholderName": "Ada Lovelace",
			"cardNumber":     "4242 not a pan",
			"expiryMonth":    "12",
			"expiryYear":     "29",
			"cvv":            "12345",
		},
	})
	if result.Valid {
		t.Fatal("expected card number and cvv failures")
	}

	paths := make(map[string]bool)
	for _, issue := range result.Issues {
		paths[issue.Path] = true
	}
	if !paths["cardNumber"] || !paths["cvv"] {
		t.Fatalf("expected issues on cardNumber and cvv, got %+v", result.Issues)
	}
}

func TestValidate_PaymentMethodSelectorActiveModeOnly(t *testing.T) {
	selector := model.New(model.VariantPaymentMethodSelector, 0)
	generated, _ := Generate([]model.FieldOrGroup{model.Single(selector)})

	// Retained paypal sub-state must not affect the active credit card mode.
	value := map[string]any{
		"method": "credit_card",
		"paypal": map[string]any{"email": "not-an-email"},
		"credit_card": map[string]any{
			"cardholderName": "Ada Lovelace",
			"cardNumber":     "4242424242424242",
			"expiryMonth":    "12",
			"expiryYear":     "29",
			"cvv":            "123",
		},
	}

	result := generated.Validate(map[string]any{selector.Name: value})
	if !result.Valid {
		t.Fatalf("active mode is complete, got %+v", result.Issues)
	}

	result = generated.Validate(map[string]any{selector.Name: map[string]any{
		"method": "paypal",
		"paypal": map[string]any{"email": "not-an-email"},
	}})
	if result.Valid {
		t.Fatal("switching to paypal must validate its email")
	}

	result = generated.Validate(map[string]any{selector.Name: map[string]any{
		"method": "wire_transfer",
	}})
	if result.Valid {
		t.Fatal("unknown method must be rejected")
	}
}

func TestValidate_OTPIntermediateStateNotSubmittable(t *testing.T) {
	otp := model.New(model.VariantInputOTP, 0)
	generated, _ := Generate([]model.FieldOrGroup{model.Single(otp)})

	if generated.Validate(map[string]any{otp.Name: "123"}).Valid {
		t.Fatal("three characters should not submit")
	}
	if generated.Validate(map[string]any{otp.Name: "12a456"}).Valid {
		t.Fatal("non-digits should not submit")
	}
	if !generated.Validate(map[string]any{otp.Name: "123456"}).Valid {
		t.Fatal("six digits should submit")
	}
}

func TestValidate_DateSentinel(t *testing.T) {
	date := model.New(model.VariantDatePicker, 0)
	generated, _ := Generate([]model.FieldOrGroup{model.Single(date)})

	if generated.Validate(map[string]any{date.Name: time.Time{}}).Valid {
		t.Fatal("required date with zero sentinel should fail")
	}
	if !generated.Validate(map[string]any{date.Name: time.Now()}).Valid {
		t.Fatal("real date should pass")
	}

	date.Required = false
	generated, _ = Generate([]model.FieldOrGroup{model.Single(date)})
	if !generated.Validate(map[string]any{date.Name: time.Time{}}).Valid {
		t.Fatal("optional zero sentinel should pass")
	}
}

func TestValidate_UnknownVariantIsInert(t *testing.T) {
	field := model.New(model.Variant("Hologram"), 0)
	generated, _ := Generate([]model.FieldOrGroup{model.Single(field)})

	if !generated.Validate(map[string]any{}).Valid {
		t.Fatal("unknown variant must never fail the form")
	}
}
