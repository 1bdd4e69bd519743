package styleapi

import (
	"errors"
	"io"
	"net/http"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// HTTPError lets guards pick their own response status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError pairs a status code with an underlying error.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// slot holds the single stored composition.
type slot struct {
	mu          sync.RWMutex
	composition model.Composition
}

func newSlot(seed *model.Composition) *slot {
	s := &slot{composition: model.Composition{Theme: map[string]string{}}}
	if seed != nil {
		s.composition = *seed
	}
	return s
}

func (s *slot) get() model.Composition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.composition
}

func (s *slot) set(composition model.Composition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.composition = composition
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options
// value. Callers are expected to pass an Options value produced by NewOptions
// so defaults apply.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	store := newSlot(opts.Seed)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		switch r.Method {
		case http.MethodGet, http.MethodHead:
			serveComposition(w, r, store.get(), opts.LegacyListResponse)
		case http.MethodPost:
			acceptComposition(w, r, store)
		default:
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead+", "+http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	})
}

func serveComposition(w http.ResponseWriter, r *http.Request, composition model.Composition, legacy bool) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}

	enc := json.NewEncoder(w)
	if legacy {
		fields := composition.Fields
		if fields == nil {
			fields = []model.FieldOrGroup{}
		}
		_ = enc.Encode(fields)
		return
	}
	_ = enc.Encode(composition)
}

func acceptComposition(w http.ResponseWriter, r *http.Request, store *slot) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	composition, err := model.DecodeComposition(body)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusUnprocessableEntity), http.StatusUnprocessableEntity)
		return
	}

	store.set(composition)
	w.WriteHeader(http.StatusNoContent)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
