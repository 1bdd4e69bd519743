package variants

// Option is one selectable entry in a fixed option list.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Fixed option lists used by the selection variants. These mirror the
// checkout catalog; they are copied on access so callers can customise them.
var (
	countries = []Option{
		{Label: "United States", Value: "US"},
		{Label: "Canada", Value: "CA"},
		{Label: "Mexico", Value: "MX"},
		{Label: "Spain", Value: "ES"},
		{Label: "United Kingdom", Value: "GB"},
	}

	paymentMethods = []Option{
		{Label: "Credit Card", Value: "credit_card"},
		{Label: "PayPal", Value: "paypal"},
		{Label: "Apple Pay", Value: "apple_pay"},
		{Label: "Google Pay", Value: "google_pay"},
	}

	currencies = []Option{
		{Label: "USD - US Dollar", Value: "USD"},
		{Label: "EUR - Euro", Value: "EUR"},
		{Label: "GBP - British Pound", Value: "GBP"},
		{Label: "MXN - Mexican Peso", Value: "MXN"},
		{Label: "CAD - Canadian Dollar", Value: "CAD"},
	}

	paymentOptions = []Option{
		{Label: "Split Payment", Value: "split_payment"},
		{Label: "Installments", Value: "installments"},
		{Label: "Save Card for Future", Value: "save_card"},
	}

	states = []Option{
		{Label: "California", Value: "CA"},
		{Label: "Texas", Value: "TX"},
		{Label: "Florida", Value: "FL"},
		{Label: "New York", Value: "NY"},
	}
)

func cloneOptions(options []Option) []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

func containsOption(options []Option, value string) bool {
	for _, option := range options {
		if option.Value == value {
			return true
		}
	}
	return false
}
