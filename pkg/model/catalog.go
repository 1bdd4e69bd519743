package model

// CatalogEntry describes one selectable field type in the editor palette.
type CatalogEntry struct {
	Variant Variant `json:"variant"`
	IsNew   bool    `json:"isNew"`
}

var catalog = []CatalogEntry{
	{Variant: VariantInput},
	{Variant: VariantEmail},
	{Variant: VariantPhone},
	{Variant: VariantSelect},
	{Variant: VariantMultiSelect},
	{Variant: VariantPaymentMethodSelector},
	{Variant: VariantCreditCard},
	{Variant: VariantPayPal},
	{Variant: VariantApplePay},
	{Variant: VariantGooglePay},
	{Variant: VariantDatePicker},
	{Variant: VariantTextarea},
	{Variant: VariantCheckbox},
	{Variant: VariantInputOTP},
	{Variant: VariantCombobox},
	{Variant: VariantSwitch},
	{Variant: VariantCouponCode, IsNew: true},
	{Variant: VariantAmountInput, IsNew: true},
	{Variant: VariantCurrencySelect, IsNew: true},
}

// Catalog returns the ordered field type palette. The slice is a copy; callers
// may reorder or filter it freely.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}

// KnownVariant reports whether the variant belongs to the built-in catalog.
func KnownVariant(variant Variant) bool {
	for _, entry := range catalog {
		if entry.Variant == variant {
			return true
		}
	}
	return false
}
