package render

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Renderer converts a composition into a byte representation (an HTML
// preview, a terminal transcript, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, composition model.Composition, options RenderOptions) ([]byte, error)
}
