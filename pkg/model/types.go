package model

// Variant tags a field with the behavior it exposes in the editor and in the
// rendered checkout. The set is closed but growable: adding a variant means
// extending the default-content table, the schema rules, and the dispatcher
// registry together.
type Variant string

const (
	VariantInput                 Variant = "Input"
	VariantEmail                 Variant = "Email"
	VariantPhone                 Variant = "Phone"
	VariantSelect                Variant = "Select"
	VariantMultiSelect           Variant = "Multi Select"
	VariantPaymentMethodSelector Variant = "Payment Method Selector"
	VariantCreditCard            Variant = "Credit Card"
	VariantPayPal                Variant = "PayPal"
	VariantApplePay              Variant = "Apple Pay"
	VariantGooglePay             Variant = "Google Pay"
	VariantDatePicker            Variant = "Date Picker"
	VariantTextarea              Variant = "Textarea"
	VariantCheckbox              Variant = "Checkbox"
	VariantInputOTP              Variant = "Input OTP"
	VariantCombobox              Variant = "Combobox"
	VariantSwitch                Variant = "Switch"
	VariantCouponCode            Variant = "Coupon Code"
	VariantAmountInput           Variant = "Amount Input"
	VariantCurrencySelect        Variant = "Currency Select"
)

// Field models one composable checkout input. Struct fields are annotated so
// the persistence payload and renderers can serialise them directly.
type Field struct {
	Name        string  `json:"name"`
	Variant     Variant `json:"variant"`
	Label       string  `json:"label,omitempty"`
	Description string  `json:"description,omitempty"`
	Placeholder string  `json:"placeholder,omitempty"`
	Required    bool    `json:"required"`
	Disabled    bool    `json:"disabled"`
	Checked     bool    `json:"checked"`
	Value       any     `json:"value"`
	RowIndex    int     `json:"rowIndex"`
}

// FieldOrGroup is the union the composition list is made of: either a single
// field or an ordered row group of fields laid out side by side. Exactly one
// of Field or Group is set; a well formed group holds two or more fields and
// groups never nest.
//
// Members are pointers on purpose: path-addressed updates rebuild only the
// spine down to the touched field, so untouched entries keep their identity
// and consumers can detect change by pointer comparison.
type FieldOrGroup struct {
	Field *Field
	Group []*Field
}

// IsGroup reports whether the entry is a row group.
func (fg FieldOrGroup) IsGroup() bool {
	return fg.Field == nil && len(fg.Group) > 0
}

// Single wraps a field into a FieldOrGroup entry.
func Single(f *Field) FieldOrGroup {
	return FieldOrGroup{Field: f}
}

// Row wraps fields into a row group entry. The caller is responsible for
// supplying at least two fields; NormalizeGroups repairs singleton rows.
func Row(fields ...*Field) FieldOrGroup {
	return FieldOrGroup{Group: fields}
}

// Composition is the unit of persistence: the ordered field list plus the
// theme variables applied to the preview. It is owned exclusively by one
// editing session and saved or loaded whole, never partially.
type Composition struct {
	Fields []FieldOrGroup    `json:"formFields"`
	Theme  map[string]string `json:"themeVars"`
}

// Flatten returns every field in document order, expanding row groups.
func Flatten(fields []FieldOrGroup) []*Field {
	out := make([]*Field, 0, len(fields))
	for _, entry := range fields {
		if entry.IsGroup() {
			out = append(out, entry.Group...)
			continue
		}
		if entry.Field != nil {
			out = append(out, entry.Field)
		}
	}
	return out
}

// Names returns the flattened field names in document order.
func Names(fields []FieldOrGroup) []string {
	flat := Flatten(fields)
	names := make([]string, 0, len(flat))
	for _, f := range flat {
		names = append(names, f.Name)
	}
	return names
}

// DuplicateNames reports names that appear more than once in the flattened
// list. A non-empty result is an invariant violation: duplicate names break
// path resolution and schema keying.
func DuplicateNames(fields []FieldOrGroup) []string {
	seen := make(map[string]int)
	var dupes []string
	for _, f := range Flatten(fields) {
		seen[f.Name]++
		if seen[f.Name] == 2 {
			dupes = append(dupes, f.Name)
		}
	}
	return dupes
}

// NormalizeGroups collapses singleton groups into single fields and drops
// empty entries. A one-field row is semantically a single field; keeping it
// as a group would double the path depth for no layout gain.
func NormalizeGroups(fields []FieldOrGroup) []FieldOrGroup {
	out := make([]FieldOrGroup, 0, len(fields))
	for _, entry := range fields {
		switch {
		case entry.IsGroup() && len(entry.Group) == 1:
			out = append(out, FieldOrGroup{Field: entry.Group[0]})
		case entry.IsGroup(), entry.Field != nil:
			out = append(out, entry)
		}
	}
	return out
}
