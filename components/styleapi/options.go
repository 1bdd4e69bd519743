package styleapi

import (
	"net/http"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// GuardFunc vets a request before the handler touches the stored slot.
type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath string
	Guard     GuardFunc

	// Seed pre-populates the slot.
	Seed *model.Composition

	// LegacyListResponse serves GET responses as a bare field array without
	// theme variables, matching pre-theme deployments.
	LegacyListResponse bool
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath: "/api/form-config",
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/form-config"
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithSeed(composition model.Composition) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Seed = &composition
	}
}

func WithLegacyListResponse(enabled bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LegacyListResponse = enabled
	}
}
