// internal/component/registry.go
//
// Component registry.
//
// A component is one mountable feature: the record CRUD pages, the API
// documentation, the health check.  Components are built once the App is
// ready (they need its store and renderer), registered in order, and then
// attached to the root router, each inside its own chi Group so middleware
// a component adds stays local.  Paths are absolute, so order only matters
// for documentation output.
//
// Components that implement Documented contribute rows to the generated
// API documentation.

package component

import (
	"fmt"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Component contract.
//
// Routes(r) registers absolute paths on r, e.g.:
//
//	r.Get("/books", index)
//	r.With(guard).Delete("/books/{id}", destroy)
type Component interface {
	Name() string
	Routes(r chi.Router)
}

// Endpoint is one documented route.
type Endpoint struct {
	Method  string `json:"method"`
	Path    string `json:"path"`
	Summary string `json:"summary"`
	Guarded bool   `json:"guarded"`
}

// Documented is optional.  Components implementing it list their routes
// for the API documentation.
type Documented interface {
	Endpoints() []Endpoint
}

// Registry keeps components in registration order.
type Registry struct {
	mu    sync.RWMutex
	items []Component
	names map[string]bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: map[string]bool{}}
}

// Register adds c.  Names must be unique.
func (g *Registry) Register(c Component) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.names[c.Name()] {
		return fmt.Errorf("component: %q already registered", c.Name())
	}
	g.names[c.Name()] = true
	g.items = append(g.items, c)
	return nil
}

// All returns every registered component in registration order.
func (g *Registry) All() []Component {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Component, len(g.items))
	copy(out, g.items)
	return out
}

// Mount attaches every component's routes to r.
func (g *Registry) Mount(r chi.Router) {
	for _, c := range g.All() {
		r.Group(c.Routes)
	}
}

// Endpoints concatenates the documented routes of every component.
func (g *Registry) Endpoints() []Endpoint {
	var out []Endpoint
	for _, c := range g.All() {
		if d, ok := c.(Documented); ok {
			out = append(out, d.Endpoints()...)
		}
	}
	return out
}
