// Package vanilla renders a composition as a standalone HTML checkout
// preview. Controls are plain markup styled through scoped CSS custom
// properties, so several previews with different palettes can share a page.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	rendertemplate "github.com/goliatone/go-formbuilder/pkg/render/template"
	gotemplate "github.com/goliatone/go-formbuilder/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formbuilder/pkg/theme"
	"github.com/goliatone/go-formbuilder/pkg/variants"
)

// DefaultContainerID hosts the preview when the caller does not scope it.
const DefaultContainerID = "formbuilder-checkout"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *variants.Registry
	title            string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithRegistry overrides the variant registry used to resolve option lists.
func WithRegistry(registry *variants.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithTitle sets the page title of the rendered preview.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if title != "" {
			cfg.title = title
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	registry  *variants.Registry
	sanitize  *bluemonday.Policy
	title     string
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		registry:   variants.NewDefaultRegistry(),
		title:      "Checkout",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		registry:  cfg.registry,
		sanitize:  bluemonday.UGCPolicy(),
		title:     cfg.title,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, composition model.Composition, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	containerID := options.ContainerID
	if containerID == "" {
		containerID = DefaultContainerID
	}

	vars := theme.Default().Merge(theme.Vars(composition.Theme))
	if options.Theme != nil {
		vars = vars.Merge(options.Theme.CSSVars)
	}

	body, err := r.renderRows(composition.Fields, options)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render controls: %w", err)
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"title":        r.title,
		"container_id": containerID,
		"stylesheet":   defaultStylesheet(),
		"scoped_vars":  theme.ApplyToScope(containerID, vars),
		"body":         body,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}
