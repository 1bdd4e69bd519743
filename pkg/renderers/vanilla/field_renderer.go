package vanilla

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/schema"
	"github.com/goliatone/go-formbuilder/pkg/variants"
)

// renderRows walks the composition in document order. Groups share a row;
// their members split the 12-column grid evenly for two or three fields and
// stack full-width otherwise.
func (r *Renderer) renderRows(rows []model.FieldOrGroup, options render.RenderOptions) (string, error) {
	var b strings.Builder
	for _, row := range rows {
		switch {
		case row.Field != nil:
			if err := r.renderField(&b, row.Field, spanClass(1), options); err != nil {
				return "", err
			}
		case len(row.Group) > 0:
			span := spanClass(len(row.Group))
			for _, field := range row.Group {
				if err := r.renderField(&b, field, span, options); err != nil {
					return "", err
				}
			}
		}
	}
	return b.String(), nil
}

func spanClass(groupSize int) string {
	switch groupSize {
	case 2:
		return "fb-col-6"
	case 3:
		return "fb-col-4"
	default:
		return "fb-col-12"
	}
}

func (r *Renderer) renderField(b *strings.Builder, field *model.Field, span string, options render.RenderOptions) error {
	value := field.Value
	if options.Values != nil {
		if v, ok := options.Values[field.Name]; ok {
			value = v
		}
	}

	b.WriteString(`<div class="fb-field ` + span + `" data-field="` + html.EscapeString(field.Name) + `">`)
	b.WriteString("\n")

	if !model.KnownVariant(field.Variant) {
		b.WriteString(`<div class="fb-placeholder">Field type not supported: `)
		b.WriteString(html.EscapeString(string(field.Variant)))
		b.WriteString("</div>\n</div>\n")
		return nil
	}

	r.writeLabel(b, field)

	if err := r.writeControl(b, field, value); err != nil {
		return err
	}

	if field.Description != "" {
		b.WriteString(`<p class="fb-description">`)
		b.WriteString(r.sanitize.Sanitize(field.Description))
		b.WriteString("</p>\n")
	}
	for _, msg := range options.Errors[field.Name] {
		b.WriteString(`<p class="fb-error">`)
		b.WriteString(html.EscapeString(msg))
		b.WriteString("</p>\n")
	}

	b.WriteString("</div>\n")
	return nil
}

func (r *Renderer) writeLabel(b *strings.Builder, field *model.Field) {
	b.WriteString(`<label for="` + controlID(field.Name) + `">`)
	b.WriteString(html.EscapeString(field.Label))
	if field.Required {
		b.WriteString(`<span aria-hidden="true">*</span>`)
	}
	b.WriteString("</label>\n")
}

func (r *Renderer) writeControl(b *strings.Builder, field *model.Field, value any) error {
	attrs := commonAttrs(field)

	switch field.Variant {
	case model.VariantInput, model.VariantCouponCode, model.VariantAmountInput:
		writeInput(b, "text", field, value, attrs)
	case model.VariantEmail:
		writeInput(b, "email", field, value, attrs)
	case model.VariantPhone:
		writeInput(b, "tel", field, value, attrs)
	case model.VariantTextarea:
		b.WriteString(`<textarea id="` + controlID(field.Name) + `" name="` + html.EscapeString(field.Name) + `" placeholder="` + html.EscapeString(field.Placeholder) + `"` + attrs + `>`)
		b.WriteString(html.EscapeString(stringValue(value)))
		b.WriteString("</textarea>\n")
	case model.VariantSelect, model.VariantCombobox, model.VariantCurrencySelect:
		r.writeSelect(b, field, stringValue(value), attrs)
	case model.VariantMultiSelect:
		r.writeMultiSelect(b, field, value)
	case model.VariantCheckbox, model.VariantSwitch:
		checked := ""
		if v, ok := value.(bool); ok && v {
			checked = " checked"
		}
		b.WriteString(`<input type="checkbox" id="` + controlID(field.Name) + `" name="` + html.EscapeString(field.Name) + `"` + checked + attrs + ">\n")
	case model.VariantDatePicker:
		dateValue := ""
		if v, ok := dateOf(value); ok && !v.IsZero() {
			dateValue = v.Format("2006-01-02")
		}
		b.WriteString(`<input type="date" id="` + controlID(field.Name) + `" name="` + html.EscapeString(field.Name) + `" value="` + dateValue + `"` + attrs + ">\n")
	case model.VariantInputOTP:
		b.WriteString(fmt.Sprintf(`<input type="text" inputmode="numeric" maxlength="%d" id="%s" name="%s" value="%s"%s>`,
			schema.OTPLength, controlID(field.Name), html.EscapeString(field.Name), html.EscapeString(stringValue(value)), attrs))
		b.WriteString("\n")
	case model.VariantCreditCard:
		r.writeObjectControl(b, field, value, []subControl{
			{key: "cardholderName", label: "Cardholder name", typ: "text"},
			{key: "cardNumber", label: "Card number", typ: "text", card: true},
			{key: "expiryMonth", label: "Expiry month", typ: "text"},
			{key: "expiryYear", label: "Expiry year", typ: "text"},
			{key: "cvv", label: "CVV", typ: "password"},
		})
	case model.VariantPayPal:
		r.writeObjectControl(b, field, value, []subControl{
			{key: "email", label: "PayPal email", typ: "email"},
		})
	case model.VariantApplePay:
		r.writeObjectControl(b, field, value, []subControl{
			{key: "token", label: "Payment token", typ: "text"},
			{key: "deviceId", label: "Device", typ: "text"},
		})
	case model.VariantGooglePay:
		r.writeObjectControl(b, field, value, []subControl{
			{key: "token", label: "Payment token", typ: "text"},
			{key: "accountId", label: "Account", typ: "text"},
		})
	case model.VariantPaymentMethodSelector:
		r.writeMethodSelector(b, field, value)
	default:
		b.WriteString(`<div class="fb-placeholder">Field type not supported: `)
		b.WriteString(html.EscapeString(string(field.Variant)))
		b.WriteString("</div>\n")
	}
	return nil
}

func writeInput(b *strings.Builder, typ string, field *model.Field, value any, attrs string) {
	b.WriteString(`<input type="` + typ + `" id="` + controlID(field.Name) + `" name="` + html.EscapeString(field.Name) + `" placeholder="` + html.EscapeString(field.Placeholder) + `" value="` + html.EscapeString(stringValue(value)) + `"` + attrs + ">\n")
}

func (r *Renderer) writeSelect(b *strings.Builder, field *model.Field, selected, attrs string) {
	b.WriteString(`<select id="` + controlID(field.Name) + `" name="` + html.EscapeString(field.Name) + `"` + attrs + ">\n")
	b.WriteString(`<option value="">` + html.EscapeString(field.Placeholder) + "</option>\n")
	for _, opt := range r.optionsFor(field.Variant) {
		sel := ""
		if opt.Value == selected {
			sel = " selected"
		}
		b.WriteString(`<option value="` + html.EscapeString(opt.Value) + `"` + sel + `>` + html.EscapeString(opt.Label) + "</option>\n")
	}
	b.WriteString("</select>\n")
}

func (r *Renderer) writeMultiSelect(b *strings.Builder, field *model.Field, value any) {
	selected := map[string]bool{}
	if values, ok := value.([]string); ok {
		for _, v := range values {
			selected[v] = true
		}
	}

	b.WriteString(`<div class="fb-subgrid" role="group">` + "\n")
	for _, opt := range r.optionsFor(field.Variant) {
		checked := ""
		if selected[opt.Value] {
			checked = " checked"
		}
		b.WriteString(`<label><input type="checkbox" name="` + html.EscapeString(field.Name) + `" value="` + html.EscapeString(opt.Value) + `"` + checked + `> ` + html.EscapeString(opt.Label) + "</label>\n")
	}
	b.WriteString("</div>\n")
}

type subControl struct {
	key   string
	label string
	typ   string
	card  bool
}

func (r *Renderer) writeObjectControl(b *strings.Builder, field *model.Field, value any, subs []subControl) {
	object, _ := value.(map[string]any)

	b.WriteString(`<fieldset class="fb-subgrid">` + "\n")
	for _, sub := range subs {
		name := field.Name + "." + sub.key
		raw, _ := object[sub.key].(string)
		if sub.card {
			raw = variants.FormatCardNumber(raw)
		}
		b.WriteString(`<label>` + html.EscapeString(sub.label))
		b.WriteString(`<input type="` + sub.typ + `" name="` + html.EscapeString(name) + `" value="` + html.EscapeString(raw) + `">`)
		b.WriteString("</label>\n")
	}
	b.WriteString("</fieldset>\n")
}

func (r *Renderer) writeMethodSelector(b *strings.Builder, field *model.Field, value any) {
	object, _ := value.(map[string]any)
	method, _ := object["method"].(string)
	if method == "" {
		method = schema.MethodCreditCard
	}

	b.WriteString(`<select name="` + html.EscapeString(field.Name) + `.method">` + "\n")
	for _, opt := range r.optionsFor(field.Variant) {
		sel := ""
		if opt.Value == method {
			sel = " selected"
		}
		b.WriteString(`<option value="` + html.EscapeString(opt.Value) + `"` + sel + `>` + html.EscapeString(opt.Label) + "</option>\n")
	}
	b.WriteString("</select>\n")

	// Only the active mode's sub-fields render; hidden modes keep their
	// state in the session, not the markup.
	active, _ := object[method].(map[string]any)
	modeField := &model.Field{Name: field.Name + "." + method}
	switch method {
	case schema.MethodCreditCard:
		r.writeObjectControl(b, modeField, active, []subControl{
			{key: "cardholderName", label: "Cardholder name", typ: "text"},
			{key: "cardNumber", label: "Card number", typ: "text", card: true},
			{key: "expiryMonth", label: "Expiry month", typ: "text"},
			{key: "expiryYear", label: "Expiry year", typ: "text"},
			{key: "cvv", label: "CVV", typ: "password"},
		})
	case schema.MethodPayPal:
		r.writeObjectControl(b, modeField, active, []subControl{
			{key: "email", label: "PayPal email", typ: "email"},
		})
	case schema.MethodApplePay:
		r.writeObjectControl(b, modeField, active, []subControl{
			{key: "token", label: "Payment token", typ: "text"},
			{key: "deviceId", label: "Device", typ: "text"},
		})
	case schema.MethodGooglePay:
		r.writeObjectControl(b, modeField, active, []subControl{
			{key: "token", label: "Payment token", typ: "text"},
			{key: "accountId", label: "Account", typ: "text"},
		})
	}
}

func (r *Renderer) optionsFor(variant model.Variant) []variants.Option {
	descriptor, ok := r.registry.Resolve(variant)
	if !ok {
		return nil
	}
	return descriptor.Options
}

func commonAttrs(field *model.Field) string {
	var b strings.Builder
	if field.Required {
		b.WriteString(" required")
	}
	if field.Disabled {
		b.WriteString(" disabled")
	}
	return b.String()
}

func stringValue(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

// dateOf accepts both in-memory dates and the RFC 3339 strings they decode to
// after a persistence round trip.
func dateOf(value any) (time.Time, bool) {
	switch typed := value.(type) {
	case time.Time:
		return typed, true
	case string:
		if t, err := time.Parse(time.RFC3339, typed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func controlID(name string) string {
	return "fb-" + strings.TrimSpace(name)
}
