package palette

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux registers a handler for a path pattern. *http.ServeMux satisfies it.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath joins basePath with the configured route path.
func (c *Component) MountPath(basePath string) string {
	route := "/" + strings.Trim(strings.TrimSpace(c.Options().RoutePath), "/")
	base := strings.Trim(strings.TrimSpace(basePath), "/")
	if base == "" {
		return route
	}
	return "/" + base + route
}

// RegisterRoutes mounts the component handler on mux and returns the pattern
// it was registered under.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("palette: missing mux")
	}
	pattern := c.MountPath(basePath)
	mux.Handle(pattern, c.Handler())
	return pattern, nil
}
