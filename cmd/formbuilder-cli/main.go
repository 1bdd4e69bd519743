package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/composer"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/openapi"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
	"github.com/goliatone/go-formbuilder/pkg/storage"
	"github.com/goliatone/go-formbuilder/pkg/theme"
)

func main() {
	source := flag.String("source", "composition.json", "composition document path or URL")
	rendererName := flag.String("renderer", "vanilla", "renderer to use (vanilla, tui)")
	output := flag.String("output", "", "output file (stdout if empty)")
	themeDir := flag.String("theme-dir", "", "directory holding the saved theme config")
	exportSpec := flag.String("export-openapi", "", "also write the submission contract as OpenAPI JSON")
	flag.Parse()

	ctx := context.Background()

	composition, err := loadComposition(ctx, *source)
	if err != nil {
		log.Fatalf("Failed to load composition: %v", err)
	}

	opts := []composer.Option{
		composer.WithComposition(composition),
		composer.WithRegistry(buildRegistry()),
	}
	if *themeDir != "" {
		opts = append(opts, composer.WithThemeStore(theme.NewStore(theme.WithDir(*themeDir))))
	}

	session := composer.New(opts...)
	if err := session.LoadTheme(); err != nil {
		log.Fatalf("Failed to load theme config: %v", err)
	}

	rendered, err := session.Preview(ctx, *rendererName, render.RenderOptions{})
	if err != nil {
		log.Fatalf("Failed to render composition: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, rendered, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Output written to %s\n", *output)
	} else {
		fmt.Println(string(rendered))
	}

	if *exportSpec != "" {
		doc, err := openapi.NewExporter().ExportJSON(session.Composition())
		if err != nil {
			log.Fatalf("Failed to export OpenAPI document: %v", err)
		}
		if err := os.WriteFile(*exportSpec, doc, 0o644); err != nil {
			log.Fatalf("Failed to write OpenAPI document: %v", err)
		}
		fmt.Printf("OpenAPI contract written to %s\n", *exportSpec)
	}
}

func buildRegistry() *render.Registry {
	registry := render.NewRegistry()

	htmlRenderer, err := vanilla.New()
	if err != nil {
		log.Fatalf("Failed to initialise vanilla renderer: %v", err)
	}
	registry.MustRegister(htmlRenderer)

	tuiRenderer, err := tui.New()
	if err != nil {
		log.Fatalf("Failed to initialise tui renderer: %v", err)
	}
	registry.MustRegister(tuiRenderer)

	return registry
}

func loadComposition(ctx context.Context, source string) (model.Composition, error) {
	path := strings.TrimSpace(source)
	if path == "" {
		return model.Composition{}, fmt.Errorf("source is required")
	}

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		client, err := storage.NewClient(path)
		if err != nil {
			return model.Composition{}, err
		}
		return client.Load(ctx)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Composition{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeYAML(raw)
	default:
		return model.DecodeComposition(raw)
	}
}

// decodeYAML accepts the same composition document in YAML by round-tripping
// it through JSON, so both formats share one decode path.
func decodeYAML(raw []byte) (model.Composition, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return model.Composition{}, fmt.Errorf("parse yaml: %w", err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return model.Composition{}, fmt.Errorf("convert yaml document: %w", err)
	}
	return model.DecodeComposition(data)
}
