// Package tui drives a checkout composition as an interactive terminal
// session. Each field prompts through a PromptDriver, commits through its
// variant control, and the collected values validate against the generated
// schema before serialization.
package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/schema"
	"github.com/goliatone/go-formbuilder/pkg/variants"
)

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver            PromptDriver
	registry          *variants.Registry
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		registry:     variants.NewDefaultRegistry(),
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render walks the composition in document order, prompting for every enabled
// field. Validation issues are reported per field and the session output
// carries the collected values plus the validation verdict.
func (r *Renderer) Render(ctx context.Context, composition model.Composition, opts render.RenderOptions) ([]byte, error) {
	fieldSchema, defaults := schema.Generate(composition.Fields)

	state := NewState(defaults, opts.Errors)
	if opts.Values != nil {
		for name, value := range opts.Values {
			state.Set(name, value)
		}
	}

	for _, field := range model.Flatten(composition.Fields) {
		if field.Disabled {
			continue
		}
		if err := r.promptField(ctx, field, state); err != nil {
			return nil, err
		}
	}

	values := state.Values()
	if r.submitTransformer != nil {
		transformed, err := r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: transform values: %w", err)
		}
		values = transformed
	}

	result := fieldSchema.Validate(values)
	for _, issue := range result.Issues {
		location := issue.Field
		if issue.Path != "" && issue.Path != issue.Field {
			location = issue.Field + "." + issue.Path
		}
		_ = r.driver.Info(ctx, fmt.Sprintf("✗ %s: %s", location, issue.Message))
	}

	return r.serialize(values, result)
}

func (r *Renderer) promptField(ctx context.Context, field *model.Field, state *State) error {
	for _, msg := range state.ErrorsFor(field.Name) {
		if err := r.driver.Info(ctx, fmt.Sprintf("✗ %s: %s", field.Label, msg)); err != nil {
			return err
		}
	}

	control := r.registry.Control(field, func(value any) {
		state.Set(field.Name, value)
	})
	if control.Inert() {
		return r.driver.Info(ctx, fmt.Sprintf("Field type not supported: %s", field.Variant))
	}

	switch ctl := control.(type) {
	case *variants.TextControl:
		if field.Variant == model.VariantTextarea {
			out, err := r.driver.TextArea(ctx, TextAreaConfig{
				Message: field.Label,
				Default: stateString(state, field.Name),
				Help:    field.Description,
			})
			if err != nil {
				return err
			}
			ctl.SetText(out)
			return nil
		}
		out, err := r.driver.Input(ctx, InputConfig{
			Message:     field.Label,
			Default:     stateString(state, field.Name),
			Help:        field.Description,
			Placeholder: field.Placeholder,
		})
		if err != nil {
			return err
		}
		ctl.SetText(out)
	case *variants.SelectControl:
		return r.promptSelect(ctx, field, ctl, state)
	case *variants.MultiSelectControl:
		return r.promptMultiSelect(ctx, field, ctl, state)
	case *variants.BoolControl:
		out, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: field.Label,
			Default: stateBool(state, field.Name),
			Help:    field.Description,
		})
		if err != nil {
			return err
		}
		ctl.Set(out)
	case *variants.DateControl:
		return r.promptDate(ctx, field, ctl)
	case *variants.OTPControl:
		out, err := r.driver.Password(ctx, InputConfig{
			Message:   field.Label,
			Help:      fmt.Sprintf("%d digits", schema.OTPLength),
			Validator: digitsValidator,
		})
		if err != nil {
			return err
		}
		ctl.Input(out)
	case *variants.CardControl:
		return r.promptCard(ctx, field, ctl)
	case *variants.PayPalControl:
		out, err := r.driver.Input(ctx, InputConfig{Message: "PayPal email", Help: field.Description})
		if err != nil {
			return err
		}
		ctl.SetEmail(out)
	case *variants.ApplePayControl:
		return r.promptTokenPair(ctx, "Device", func(name, value string) error {
			return ctl.SetField(name, value)
		}, "deviceId")
	case *variants.GooglePayControl:
		return r.promptTokenPair(ctx, "Account", func(name, value string) error {
			return ctl.SetField(name, value)
		}, "accountId")
	case *variants.MethodSelectorControl:
		return r.promptMethodSelector(ctx, field, ctl)
	default:
		return r.driver.Info(ctx, fmt.Sprintf("Field type not supported: %s", field.Variant))
	}
	return nil
}

func (r *Renderer) promptSelect(ctx context.Context, field *model.Field, ctl *variants.SelectControl, state *State) error {
	options := ctl.Options()
	labels := optionLabels(options)

	defaultIndex := 0
	if current := stateString(state, field.Name); current != "" {
		for i, opt := range options {
			if opt.Value == current {
				defaultIndex = i
				break
			}
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      field.Label,
		Options:      labels,
		DefaultIndex: defaultIndex,
		Help:         field.Description,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(options) {
		return nil
	}
	return ctl.Select(options[idx].Value)
}

func (r *Renderer) promptMultiSelect(ctx context.Context, field *model.Field, ctl *variants.MultiSelectControl, state *State) error {
	options := ctl.Options()

	indices, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message: field.Label,
		Options: optionLabels(options),
		Help:    field.Description,
	})
	if err != nil {
		return err
	}
	for _, idx := range indices {
		if idx < 0 || idx >= len(options) {
			continue
		}
		if err := ctl.Toggle(options[idx].Value); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptDate(ctx context.Context, field *model.Field, ctl *variants.DateControl) error {
	out, err := r.driver.Input(ctx, InputConfig{
		Message:   field.Label,
		Help:      "YYYY-MM-DD, empty to leave unset",
		Validator: dateValidator,
	})
	if err != nil {
		return err
	}
	if strings.TrimSpace(out) == "" {
		ctl.Clear()
		return nil
	}
	parsed, err := parseDate(out)
	if err != nil {
		return err
	}
	ctl.SetDate(parsed)
	return nil
}

func (r *Renderer) promptCard(ctx context.Context, field *model.Field, ctl *variants.CardControl) error {
	prompts := []struct {
		key    string
		label  string
		secret bool
	}{
		{key: "cardholderName", label: "Cardholder name"},
		{key: "cardNumber", label: "Card number"},
		{key: "expiryMonth", label: "Expiry month"},
		{key: "expiryYear", label: "Expiry year"},
		{key: "cvv", label: "CVV", secret: true},
	}
	for _, p := range prompts {
		var out string
		var err error
		cfg := InputConfig{Message: p.label}
		if p.secret {
			out, err = r.driver.Password(ctx, cfg)
		} else {
			out, err = r.driver.Input(ctx, cfg)
		}
		if err != nil {
			return err
		}
		if err := ctl.SetField(p.key, out); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptTokenPair(ctx context.Context, secondLabel string, set func(name, value string) error, secondKey string) error {
	token, err := r.driver.Input(ctx, InputConfig{Message: "Payment token"})
	if err != nil {
		return err
	}
	if err := set("token", token); err != nil {
		return err
	}
	second, err := r.driver.Input(ctx, InputConfig{Message: secondLabel})
	if err != nil {
		return err
	}
	return set(secondKey, second)
}

func (r *Renderer) promptMethodSelector(ctx context.Context, field *model.Field, ctl *variants.MethodSelectorControl) error {
	methods := []string{
		schema.MethodCreditCard,
		schema.MethodPayPal,
		schema.MethodApplePay,
		schema.MethodGooglePay,
	}
	labels := []string{"Credit Card", "PayPal", "Apple Pay", "Google Pay"}

	defaultIndex := 0
	for i, m := range methods {
		if m == ctl.Method() {
			defaultIndex = i
			break
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      field.Label,
		Options:      labels,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return err
	}
	if idx >= 0 && idx < len(methods) {
		if err := ctl.SetMethod(methods[idx]); err != nil {
			return err
		}
	}

	switch ctl.Method() {
	case schema.MethodCreditCard:
		return r.promptModeFields(ctx, ctl, []modePrompt{
			{key: "cardholderName", label: "Cardholder name"},
			{key: "cardNumber", label: "Card number"},
			{key: "expiryMonth", label: "Expiry month"},
			{key: "expiryYear", label: "Expiry year"},
			{key: "cvv", label: "CVV", secret: true},
		})
	case schema.MethodPayPal:
		return r.promptModeFields(ctx, ctl, []modePrompt{
			{key: "email", label: "PayPal email"},
		})
	case schema.MethodApplePay:
		return r.promptModeFields(ctx, ctl, []modePrompt{
			{key: "token", label: "Payment token"},
			{key: "deviceId", label: "Device"},
		})
	case schema.MethodGooglePay:
		return r.promptModeFields(ctx, ctl, []modePrompt{
			{key: "token", label: "Payment token"},
			{key: "accountId", label: "Account"},
		})
	}
	return nil
}

type modePrompt struct {
	key    string
	label  string
	secret bool
}

func (r *Renderer) promptModeFields(ctx context.Context, ctl *variants.MethodSelectorControl, prompts []modePrompt) error {
	for _, p := range prompts {
		var out string
		var err error
		cfg := InputConfig{Message: p.label}
		if p.secret {
			out, err = r.driver.Password(ctx, cfg)
		} else {
			out, err = r.driver.Input(ctx, cfg)
		}
		if err != nil {
			return err
		}
		if err := ctl.SetField(p.key, out); err != nil {
			return err
		}
	}
	return nil
}

type sessionOutput struct {
	Values map[string]any `json:"values"`
	Valid  bool           `json:"valid"`
	Issues []schema.Issue `json:"issues,omitempty"`
}

func (r *Renderer) serialize(values map[string]any, result schema.Result) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatPrettyText:
		return prettyText(values, result), nil
	default:
		data, err := json.MarshalIndent(sessionOutput{
			Values: values,
			Valid:  result.Valid,
			Issues: result.Issues,
		}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: serialize session: %w", err)
		}
		return data, nil
	}
}

func prettyText(values map[string]any, result schema.Result) []byte {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %v\n", name, values[name])
	}
	if result.Valid {
		b.WriteString("valid: yes\n")
	} else {
		fmt.Fprintf(&b, "valid: no (%d issues)\n", len(result.Issues))
	}
	return []byte(b.String())
}

func optionLabels(options []variants.Option) []string {
	out := make([]string, len(options))
	for i, opt := range options {
		out[i] = opt.Label
	}
	return out
}

func stateString(state *State, name string) string {
	if value, ok := state.Get(name); ok {
		if s, ok := value.(string); ok {
			return s
		}
	}
	return ""
}

func stateBool(state *State, name string) bool {
	if value, ok := state.Get(name); ok {
		if b, ok := value.(bool); ok {
			return b
		}
	}
	return false
}
