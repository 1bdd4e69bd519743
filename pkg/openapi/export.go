// Package openapi exports a composition's validation contract as an OpenAPI 3
// document, so backends receiving checkout submissions can generate servers
// and validators from the same source of truth the builder uses.
package openapi

import (
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/schema"
	"github.com/goliatone/go-formbuilder/pkg/variants"
)

// SubmissionSchemaName is the component name of the exported payload schema.
const SubmissionSchemaName = "CheckoutSubmission"

// Exporter builds OpenAPI documents from compositions.
type Exporter struct {
	registry *variants.Registry
	title    string
	version  string
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithRegistry supplies the variant registry used to resolve option lists
// into enums.
func WithRegistry(registry *variants.Registry) ExporterOption {
	return func(e *Exporter) {
		if registry != nil {
			e.registry = registry
		}
	}
}

// WithInfo overrides the exported document's title and version.
func WithInfo(title, version string) ExporterOption {
	return func(e *Exporter) {
		if title != "" {
			e.title = title
		}
		if version != "" {
			e.version = version
		}
	}
}

// NewExporter builds an Exporter with defaults.
func NewExporter(opts ...ExporterOption) *Exporter {
	e := &Exporter{
		registry: variants.NewDefaultRegistry(),
		title:    "Checkout Form",
		version:  "1.0.0",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export derives the submission contract from a composition. The document
// declares a single POST /checkout operation whose request body is the
// generated payload schema.
func (e *Exporter) Export(composition model.Composition) (*openapi3.T, error) {
	fieldSchema, _ := schema.Generate(composition.Fields)

	payload := openapi3.NewObjectSchema()
	payload.Properties = openapi3.Schemas{}
	for _, rule := range fieldSchema.Rules() {
		property, err := e.propertyFor(rule)
		if err != nil {
			return nil, err
		}
		payload.Properties[rule.Field] = openapi3.NewSchemaRef("", property)
		if rule.Required {
			payload.Required = append(payload.Required, rule.Field)
		}
	}

	ref := openapi3.NewSchemaRef("#/components/schemas/"+SubmissionSchemaName, payload)

	operation := &openapi3.Operation{
		OperationID: "submitCheckout",
		Summary:     "Submit a completed checkout form",
		RequestBody: &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithJSONSchemaRef(ref).WithRequired(true),
		},
		Responses: openapi3.NewResponses(),
	}

	paths := openapi3.NewPaths()
	paths.Set("/checkout", &openapi3.PathItem{Post: operation})

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   e.title,
			Version: e.version,
		},
		Paths: paths,
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				SubmissionSchemaName: openapi3.NewSchemaRef("", payload),
			},
		},
	}, nil
}

// ExportJSON renders the exported document as JSON.
func (e *Exporter) ExportJSON(composition model.Composition) ([]byte, error) {
	doc, err := e.Export(composition)
	if err != nil {
		return nil, err
	}
	data, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal document: %w", err)
	}
	return data, nil
}

func (e *Exporter) propertyFor(rule schema.Rule) (*openapi3.Schema, error) {
	switch rule.Kind {
	case schema.KindBoolean:
		return openapi3.NewBoolSchema(), nil
	case schema.KindDate:
		return openapi3.NewStringSchema().WithFormat("date-time"), nil
	case schema.KindStringArray:
		item := openapi3.NewStringSchema()
		if values := e.optionValues(rule.Variant); len(values) > 0 {
			item.Enum = values
		}
		arr := openapi3.NewArraySchema()
		arr.Items = openapi3.NewSchemaRef("", item)
		return arr, nil
	case schema.KindObject:
		if rule.Object == nil {
			return openapi3.NewObjectSchema(), nil
		}
		return e.objectProperty(rule.Object)
	default:
		property := openapi3.NewStringSchema()
		applyStringFormat(property, rule.Format)
		if rule.ExactLength > 0 {
			property.WithMinLength(int64(rule.ExactLength)).WithMaxLength(int64(rule.ExactLength))
		}
		if values := e.optionValues(rule.Variant); len(values) > 0 {
			property.Enum = values
		}
		return property, nil
	}
}

func (e *Exporter) objectProperty(object *schema.ObjectRule) (*openapi3.Schema, error) {
	property := openapi3.NewObjectSchema()
	property.Properties = openapi3.Schemas{}

	if object.Discriminator != "" {
		method := openapi3.NewStringSchema()
		modes := make([]string, 0, len(object.Modes))
		for mode := range object.Modes {
			modes = append(modes, mode)
		}
		sort.Strings(modes)
		method.Enum = stringEnum(modes)
		property.Properties[object.Discriminator] = openapi3.NewSchemaRef("", method)
		property.Required = append(property.Required, object.Discriminator)

		for mode, modeRule := range object.Modes {
			nested, err := e.objectProperty(modeRule)
			if err != nil {
				return nil, err
			}
			property.Properties[mode] = openapi3.NewSchemaRef("", nested)
		}
		return property, nil
	}

	for _, sub := range object.Fields {
		field := openapi3.NewStringSchema()
		applyStringFormat(field, sub.Pattern)
		property.Properties[sub.Name] = openapi3.NewSchemaRef("", field)
		if sub.Required {
			property.Required = append(property.Required, sub.Name)
		}
	}
	return property, nil
}

func (e *Exporter) optionValues(variant model.Variant) []any {
	descriptor, ok := e.registry.Resolve(variant)
	if !ok || len(descriptor.Options) == 0 {
		return nil
	}
	values := make([]any, len(descriptor.Options))
	for i, opt := range descriptor.Options {
		values[i] = opt.Value
	}
	return values
}

func applyStringFormat(property *openapi3.Schema, format string) {
	switch format {
	case schema.FormatEmail:
		property.Format = "email"
	case schema.FormatCVV:
		property.Pattern = `^\d{3,4}$`
	case schema.FormatCardNumber:
		property.Pattern = `^\d{12,19}$`
	case schema.FormatDigits:
		property.Pattern = `^\d+$`
	}
}

func stringEnum(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
