package palette

import (
	"net/http"

	"github.com/goliatone/go-formbuilder/pkg/elements"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath    string
	SearchParam  string
	GroupParam   string
	LimitParam   string
	DefaultLimit int
	MaxLimit     int
	Guard        GuardFunc

	Registry *elements.Registry
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    "/palette",
		SearchParam:  "q",
		GroupParam:   "group",
		LimitParam:   "limit",
		DefaultLimit: 50,
		MaxLimit:     200,
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
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 50
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 200
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/palette"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.GroupParam == "" {
		opts.GroupParam = "group"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.Registry == nil {
		opts.Registry = elements.Default()
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

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
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

// WithRegistry serves the palette of a custom element registry.
func WithRegistry(registry *elements.Registry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Registry = registry
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
