package model

import (
	"strings"

	"github.com/google/uuid"
)

// DefaultContent holds the display text seeded into a freshly created field.
type DefaultContent struct {
	Label       string
	Description string
	Placeholder string
}

// defaultContent maps each variant to the content a new field starts with.
// Entries mirror the checkout catalog shipped with the editor.
var defaultContent = map[Variant]DefaultContent{
	VariantInput: {
		Label:       "Full Name",
		Description: "Enter your full name.",
		Placeholder: "John Doe",
	},
	VariantEmail: {
		Label:       "Email Address",
		Description: "We will send your receipt to this email.",
		Placeholder: "john@example.com",
	},
	VariantPhone: {
		Label:       "Phone Number",
		Description: "Contact number for billing.",
		Placeholder: "+1 (555) 000-0000",
	},
	VariantSelect: {
		Label:       "Billing Country",
		Description: "Select your country for billing.",
		Placeholder: "Select a country",
	},
	VariantMultiSelect: {
		Label:       "Payment Options",
		Description: "Select additional payment options.",
	},
	VariantPaymentMethodSelector: {
		Label:       "Select Payment Method",
		Description: "Choose your preferred payment method.",
		Placeholder: "Select payment method",
	},
	VariantCreditCard: {
		Label:       "Card Details",
		Description: "Enter your credit card information.",
	},
	VariantPayPal: {
		Label:       "PayPal Account",
		Description: "Sign in with your PayPal account.",
	},
	VariantApplePay: {
		Label:       "Apple Pay",
		Description: "Complete payment with Apple Pay.",
	},
	VariantGooglePay: {
		Label:       "Google Pay",
		Description: "Complete payment with Google Pay.",
	},
	VariantDatePicker: {
		Label:       "Transaction Date",
		Description: "Select the date for this payment.",
	},
	VariantTextarea: {
		Label:       "Billing Address",
		Description: "Enter your complete billing address.",
		Placeholder: "Street, City, State, ZIP",
	},
	VariantCheckbox: {
		Label:       "I agree to the payment terms",
		Description: "Please review and accept our terms.",
	},
	VariantInputOTP: {
		Label:       "Verification Code",
		Description: "Enter the verification code sent to your email.",
	},
	VariantCombobox: {
		Label:       "State/Province",
		Description: "Search and select your state.",
	},
	VariantSwitch: {
		Label:       "Same as billing address",
		Description: "Use the same address for billing.",
	},
	VariantCouponCode: {
		Label:       "Discount Code",
		Description: "Enter a coupon or promo code.",
		Placeholder: "PROMO2024",
	},
	VariantAmountInput: {
		Label:       "Payment Amount",
		Description: "Enter the amount to be charged.",
		Placeholder: "0.00",
	},
	VariantCurrencySelect: {
		Label:       "Currency",
		Description: "Select your preferred currency.",
		Placeholder: "Select currency",
	},
}

// ContentFor returns the default content table entry for a variant. Unknown
// variants yield the zero value.
func ContentFor(variant Variant) DefaultContent {
	return defaultContent[variant]
}

// New creates a field for the given variant with a freshly generated unique
// name and its default content. It never fails: unrecognized variants still
// produce a valid definition that falls back to the generated name as label.
//
// Names come from a high-entropy source rather than a counter because
// multiple editing sessions may run concurrently against the same backend.
func New(variant Variant, rowIndex int) *Field {
	name := generateName()

	content := defaultContent[variant]
	label := content.Label
	if label == "" {
		label = name
	}
	placeholder := content.Placeholder
	if placeholder == "" {
		placeholder = "Placeholder"
	}

	return &Field{
		Name:        name,
		Variant:     variant,
		Label:       label,
		Description: content.Description,
		Placeholder: placeholder,
		Required:    true,
		Disabled:    false,
		Checked:     true,
		Value:       "",
		RowIndex:    rowIndex,
	}
}

func generateName() string {
	return "name_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
