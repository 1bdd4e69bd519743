package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

// slotName is the durable key the configuration lives under. The store holds
// exactly one configuration per installation.
const slotName = "theme-config.json"

// Store persists a single Vars slot as a JSON file.
type Store struct {
	path string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithDir relocates the slot into the given directory.
func WithDir(dir string) StoreOption {
	return func(s *Store) {
		s.path = filepath.Join(dir, slotName)
	}
}

// WithPath overrides the slot file path entirely.
func WithPath(path string) StoreOption {
	return func(s *Store) {
		s.path = path
	}
}

// NewStore builds a store rooted in the current directory unless relocated.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{path: slotName}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the stored configuration. A missing or undecodable slot yields
// the default palette and found=false; a corrupt slot never surfaces as an
// error because the preview must always have a usable palette.
func (s *Store) Load() (Vars, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), false, nil
		}
		return Default(), false, fmt.Errorf("theme: read slot: %w", err)
	}

	var vars Vars
	if err := json.Unmarshal(data, &vars); err != nil || len(vars) == 0 {
		return Default(), false, nil
	}
	return Default().Merge(vars), true, nil
}

// Save overwrites the slot with the given configuration.
func (s *Store) Save(vars Vars) error {
	data, err := json.MarshalIndent(vars, "", "  ")
	if err != nil {
		return fmt.Errorf("theme: encode slot: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("theme: create slot dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("theme: write slot: %w", err)
	}
	return nil
}
