package schema

import "github.com/goliatone/go-formbuilder/pkg/model"

// Built-in format identifiers referenced by rules and sub-fields.
const (
	FormatEmail      = "email"
	FormatCVV        = "cvv"
	FormatCardNumber = "card-number"
	FormatDigits     = "digits"
)

// OTPLength is the number of characters a one-time passcode accumulates
// before it becomes submittable.
const OTPLength = 6

// Payment method discriminator values accepted by the method selector.
const (
	MethodCreditCard = "credit_card"
	MethodPayPal     = "paypal"
	MethodApplePay   = "apple_pay"
	MethodGooglePay  = "google_pay"
)

func creditCardRule() *ObjectRule {
	return &ObjectRule{
		Fields: []SubField{
			{Name: "cardholderName", Required: true},
			{Name: "cardNumber", Required: true, Pattern: FormatCardNumber},
			{Name: "expiryMonth", Required: true},
			{Name: "expiryYear", Required: true},
			{Name: "cvv", Required: true, Pattern: FormatCVV},
		},
	}
}

func payPalRule() *ObjectRule {
	return &ObjectRule{
		Fields: []SubField{
			{Name: "email", Required: true, Pattern: FormatEmail},
		},
	}
}

func applePayRule() *ObjectRule {
	return &ObjectRule{
		Fields: []SubField{
			{Name: "token", Required: true},
			{Name: "deviceId", Required: true},
		},
	}
}

func googlePayRule() *ObjectRule {
	return &ObjectRule{
		Fields: []SubField{
			{Name: "token", Required: true},
			{Name: "accountId", Required: true},
		},
	}
}

func methodSelectorRule() *ObjectRule {
	return &ObjectRule{
		Discriminator: "method",
		Modes: map[string]*ObjectRule{
			MethodCreditCard: creditCardRule(),
			MethodPayPal:     payPalRule(),
			MethodApplePay:   applePayRule(),
			MethodGooglePay:  googlePayRule(),
		},
	}
}

// ruleFor maps a field definition to its validation rule. The mapping is the
// schema half of the variant contract: extend it together with the dispatcher
// registry and the default-content table.
func ruleFor(field *model.Field) Rule {
	rule := Rule{
		Field:    field.Name,
		Variant:  field.Variant,
		Required: field.Required,
		Kind:     KindString,
	}

	switch field.Variant {
	case model.VariantEmail:
		rule.Format = FormatEmail
	case model.VariantCheckbox, model.VariantSwitch:
		rule.Kind = KindBoolean
	case model.VariantDatePicker:
		rule.Kind = KindDate
	case model.VariantMultiSelect:
		rule.Kind = KindStringArray
	case model.VariantInputOTP:
		rule.ExactLength = OTPLength
		rule.Format = FormatDigits
	case model.VariantCreditCard:
		rule.Kind = KindObject
		rule.Object = creditCardRule()
	case model.VariantPayPal:
		rule.Kind = KindObject
		rule.Object = payPalRule()
	case model.VariantApplePay:
		rule.Kind = KindObject
		rule.Object = applePayRule()
	case model.VariantGooglePay:
		rule.Kind = KindObject
		rule.Object = googlePayRule()
	case model.VariantPaymentMethodSelector:
		rule.Kind = KindObject
		rule.Object = methodSelectorRule()
	case model.VariantInput, model.VariantPhone, model.VariantTextarea,
		model.VariantSelect, model.VariantCombobox, model.VariantCouponCode,
		model.VariantAmountInput, model.VariantCurrencySelect:
		// Plain string rules; requiredness alone decides.
	default:
		// Unknown variants validate as inert optional strings so one bad
		// variant never rejects the whole form.
		rule.Required = false
	}

	return rule
}
