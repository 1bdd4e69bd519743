// Package composer owns one editing session: the live field list, the theme
// variables, and the validation schema regenerated after every mutation. It
// coordinates the renderer registry, the persistence client, and the theme
// store while remaining open to dependency injection for advanced callers.
package composer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/fieldpath"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
	"github.com/goliatone/go-formbuilder/pkg/schema"
	"github.com/goliatone/go-formbuilder/pkg/storage"
	"github.com/goliatone/go-formbuilder/pkg/theme"
)

const defaultRendererName = "vanilla"

// ErrNoClient is returned by Save and LoadRemote when no persistence client
// was configured.
var ErrNoClient = errors.New("composer: no persistence client configured")

// Option customises the session configuration.
type Option func(*Session)

// WithClient injects the HTTP persistence client used by Save and LoadRemote.
func WithClient(client *storage.Client) Option {
	return func(s *Session) {
		s.client = client
	}
}

// WithThemeStore injects the local theme store used by LoadTheme and
// SaveTheme.
func WithThemeStore(store *theme.Store) Option {
	return func(s *Session) {
		s.themeStore = store
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(s *Session) {
		s.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when Preview is called with
// an empty name.
func WithDefaultRenderer(name string) Option {
	return func(s *Session) {
		s.defaultRenderer = name
	}
}

// WithComposition seeds the session with an existing composition instead of
// an empty field list.
func WithComposition(composition model.Composition) Option {
	return func(s *Session) {
		s.fields = model.NormalizeGroups(composition.Fields)
		s.themeVars = theme.Default().Merge(theme.Vars(composition.Theme))
	}
}

// Session is the single owner of one composition while it is being edited.
// Every mutation regenerates the validation schema synchronously, so Schema
// and Defaults never lag behind the field list.
type Session struct {
	mu sync.Mutex

	fields    []model.FieldOrGroup
	themeVars theme.Vars
	schema    schema.Schema
	defaults  map[string]any

	registry        *render.Registry
	defaultRenderer string
	client          *storage.Client
	themeStore      *theme.Store
	initialiseErr   error
}

// New constructs a Session applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Session {
	s := &Session{
		themeVars:       theme.Default(),
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.registry == nil {
		s.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			s.initialiseErr = fmt.Errorf("composer: initialise default renderer: %w", err)
		} else {
			s.registry.MustRegister(renderer)
		}
	}
	s.regenerate()
	return s
}

// AddField appends a fresh field of the given variant and returns a copy of
// its definition. Unknown variants are accepted; they surface as inert
// placeholders downstream rather than failing the edit.
func (s *Session) AddField(variant model.Variant) model.Field {
	s.mu.Lock()
	defer s.mu.Unlock()

	field := model.New(variant, len(s.fields))
	s.fields = append(s.fields, model.Single(field))
	s.regenerate()
	return *field
}

// UpdateField applies a patch to the named field. The untouched entries keep
// their identity; on any error the session state is unchanged.
func (s *Session) UpdateField(name string, patch fieldpath.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := fieldpath.Find(s.fields, name)
	if err != nil {
		return err
	}
	next, err := fieldpath.Apply(s.fields, path, patch)
	if err != nil {
		return err
	}
	s.fields = next
	s.regenerate()
	return nil
}

// RemoveField deletes the named field, collapsing its row group if the
// removal leaves a singleton behind.
func (s *Session) RemoveField(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := fieldpath.Find(s.fields, name)
	if err != nil {
		return err
	}
	next, err := fieldpath.Remove(s.fields, path)
	if err != nil {
		return err
	}
	s.fields = next
	s.regenerate()
	return nil
}

// MoveField reorders the top-level entry at index from to index to.
func (s *Session) MoveField(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fieldpath.Move(s.fields, from, to)
	if err != nil {
		return err
	}
	s.fields = next
	s.regenerate()
	return nil
}

// GroupFields merges the source entry into the target entry's row group.
func (s *Session) GroupFields(target, source int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fieldpath.Group(s.fields, target, source)
	if err != nil {
		return err
	}
	s.fields = next
	s.regenerate()
	return nil
}

// UngroupFields splits the row group at index back into single entries.
func (s *Session) UngroupFields(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fieldpath.Ungroup(s.fields, index)
	if err != nil {
		return err
	}
	s.fields = next
	s.regenerate()
	return nil
}

// SetThemeVar records one theme variable for the live preview.
func (s *Session) SetThemeVar(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.themeVars = s.themeVars.Merge(theme.Vars{name: value})
}

// ThemeVars returns a copy of the current theme variables.
func (s *Session) ThemeVars() theme.Vars {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.themeVars.Clone()
}

// Fields returns a copy of the top-level entry list. Entry members are shared
// pointers; callers must treat them as read-only.
func (s *Session) Fields() []model.FieldOrGroup {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.FieldOrGroup, len(s.fields))
	copy(out, s.fields)
	return out
}

// Composition snapshots the session as the persistence unit.
func (s *Session) Composition() model.Composition {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.composition()
}

// Schema returns the validation schema for the current field list.
func (s *Session) Schema() schema.Schema {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.schema
}

// Defaults returns a copy of the default value map derived from the current
// field list.
func (s *Session) Defaults() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]any, len(s.defaults))
	for k, v := range s.defaults {
		out[k] = v
	}
	return out
}

// Submit validates a submission value map against the current schema.
func (s *Session) Submit(values map[string]any) schema.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.schema.Validate(values)
}

// Preview renders the current composition through the named renderer, falling
// back to the configured default when name is empty.
func (s *Session) Preview(ctx context.Context, name string, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("composer: context is required")
	}
	if s.initialiseErr != nil {
		return nil, s.initialiseErr
	}

	target := name
	if target == "" {
		target = s.defaultRenderer
	}
	renderer, err := s.registry.Get(target)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, s.Composition(), options)
	if err != nil {
		return nil, fmt.Errorf("composer: render preview: %w", err)
	}
	return output, nil
}

// Save persists the composition through the HTTP client. The in-memory state
// is never touched, so a failed save loses nothing.
func (s *Session) Save(ctx context.Context) error {
	if s.client == nil {
		return ErrNoClient
	}
	return s.client.Save(ctx, s.Composition())
}

// LoadRemote replaces the session state with the persisted composition. On
// any transport or decode error the current state is left untouched.
func (s *Session) LoadRemote(ctx context.Context) error {
	if s.client == nil {
		return ErrNoClient
	}
	composition, err := s.client.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.fields = model.NormalizeGroups(composition.Fields)
	s.themeVars = theme.Default().Merge(theme.Vars(composition.Theme))
	s.regenerate()
	return nil
}

// LoadTheme restores theme variables from the local store, keeping the
// defaults when nothing was saved yet.
func (s *Session) LoadTheme() error {
	if s.themeStore == nil {
		return nil
	}
	vars, _, err := s.themeStore.Load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.themeVars = vars
	return nil
}

// SaveTheme writes the current theme variables to the local store.
func (s *Session) SaveTheme() error {
	if s.themeStore == nil {
		return nil
	}
	return s.themeStore.Save(s.ThemeVars())
}

func (s *Session) composition() model.Composition {
	fields := make([]model.FieldOrGroup, len(s.fields))
	copy(fields, s.fields)
	return model.Composition{
		Fields: fields,
		Theme:  map[string]string(s.themeVars.Clone()),
	}
}

// regenerate rebuilds schema and defaults from the field list. Callers hold
// the mutex.
func (s *Session) regenerate() {
	s.schema, s.defaults = schema.Generate(s.fields)
}
