// internal/docs/docs.go
//
// Generated API documentation.
//
// Context
// -------
// The library app publishes its route table at /api-docs (HTML) and
// /api-docs.json (OpenAPI 3.0).  The document is built by mounting every
// registered component on a scratch chi router and walking it, so the
// listing is exactly what the server routes.  Summaries and the guard flag
// come from components implementing component.Documented.
//
// The document is built once, on first request.

package docs

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/folio/internal/app"
	"github.com/yanizio/folio/internal/auth"
	"github.com/yanizio/folio/internal/component"
	"github.com/yanizio/folio/internal/head"
	"github.com/yanizio/folio/internal/logger"
	"github.com/yanizio/folio/internal/view"
)

// Paths served by the component.
const (
	HTMLPath = "/api-docs"
	JSONPath = "/api-docs.json"
)

var (
	_ component.Component  = (*Component)(nil)
	_ component.Documented = (*Component)(nil)
)

// Component serves the documentation of reg.
type Component struct {
	app *app.App
	reg *component.Registry

	once   sync.Once
	routes []component.Endpoint
	body   []byte
	err    error
}

// New documents every component in reg, including itself once
// registered.
func New(a *app.App, reg *component.Registry) *Component {
	return &Component{app: a, reg: reg}
}

func (c *Component) Name() string { return "docs" }

func (c *Component) Routes(r chi.Router) {
	r.Get(HTMLPath, c.html)
	r.Get(JSONPath, c.json)
}

func (c *Component) Endpoints() []component.Endpoint {
	return []component.Endpoint{
		{Method: http.MethodGet, Path: HTMLPath, Summary: "API documentation (HTML)"},
		{Method: http.MethodGet, Path: JSONPath, Summary: "API documentation (OpenAPI 3.0)"},
	}
}

func (c *Component) build() {
	c.once.Do(func() {
		c.routes, c.err = Collect(c.reg)
		if c.err != nil {
			return
		}
		c.body, c.err = json.MarshalIndent(OpenAPI(c.app.Config.App.Name, c.routes), "", "  ")
	})
}

func (c *Component) json(w http.ResponseWriter, r *http.Request) {
	c.build()
	if c.err != nil {
		logger.FromContext(r.Context()).Errorw("api docs build failed", "err", c.err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(c.body)
}

func (c *Component) html(w http.ResponseWriter, r *http.Request) {
	c.build()
	if c.err != nil {
		logger.FromContext(r.Context()).Errorw("api docs build failed", "err", c.err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	p := view.Page{
		Entity:  c.app.Entity,
		Head:    head.Defaults("API"),
		Flashes: c.app.Sessions.Flashes(w, r),
		Data:    map[string]any{"Routes": c.routes},
	}
	if u, ok := auth.UserFrom(r.Context()); ok {
		p.CurrentUser = u
	}
	if err := c.app.Views.Render(w, http.StatusOK, "docs", "api", p); err != nil {
		logger.FromContext(r.Context()).Errorw("render failed", "template", "docs/api", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// Collect walks the routes reg mounts and joins each with its summary.
// Routes no component documents are listed without one.
func Collect(reg *component.Registry) ([]component.Endpoint, error) {
	known := map[string]component.Endpoint{}
	for _, ep := range reg.Endpoints() {
		known[ep.Method+" "+ep.Path] = ep
	}

	r := chi.NewRouter()
	reg.Mount(r)

	var out []component.Endpoint
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		route = normalize(route)
		ep, ok := known[method+" "+route]
		if !ok {
			ep = component.Endpoint{Method: method, Path: route}
		}
		out = append(out, ep)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out, nil
}

// normalize drops the "/*" chi appends to mounted subrouters and any
// trailing slash other than the root's.
func normalize(route string) string {
	route = strings.ReplaceAll(route, "/*/", "/")
	route = strings.TrimSuffix(route, "/*")
	if len(route) > 1 {
		route = strings.TrimSuffix(route, "/")
	}
	if route == "" {
		return "/"
	}
	return route
}
