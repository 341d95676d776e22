// internal/crud/crud.go
//
// Route-set generator for one record entity.
//
// Context
// -------
// The blog and library apps expose the same REST-style surface over
// different prefixes and form keys.  New builds that surface from a
// record.Entity: one endpoint table drives both the chi routes and the
// rows contributed to the API documentation, so the two never drift.
//
// Library-only groups (wishlist entries, all/deactivated listings, the
// request page) are switched on by Entity.Features.
//
// Error policy
// ------------
// Store failures are logged with the request logger and answered with a
// 303 to the list page carrying a flash message.  Pages that would loop
// (the list itself) or lose input (create, login, register) re-render
// with the error instead.  Template failures are 500s.
//
// Notes
// -----
//   • Guarded routes run acl.RequireLogin before the handler, so an
//     anonymous request never reaches the store.
//   • Oxford commas, two spaces after periods.

package crud

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/folio/internal/acl"
	"github.com/yanizio/folio/internal/app"
	"github.com/yanizio/folio/internal/component"
	"github.com/yanizio/folio/internal/record"
)

// Compile-time assertions.
var (
	_ component.Component  = (*Component)(nil)
	_ component.Documented = (*Component)(nil)
)

// endpoint is one row of the route table.
type endpoint struct {
	method  string
	path    string
	summary string
	guarded bool
	handler http.HandlerFunc
}

// Component serves one entity.
type Component struct {
	app   *app.App
	e     record.Entity
	guard func(http.Handler) http.Handler
	table []endpoint
}

// New builds the route set for e.
func New(a *app.App, e record.Entity) *Component {
	c := &Component{
		app:   a,
		e:     e,
		guard: acl.RequireLogin(e.Path("login")),
	}
	c.table = c.endpoints()
	return c
}

// Name returns the entity prefix.
func (c *Component) Name() string { return "crud:" + c.e.Prefix }

func (c *Component) endpoints() []endpoint {
	e := c.e
	id := "{id}"
	t := []endpoint{
		{http.MethodGet, "/", "Redirect to the " + e.Label + " list", false, c.root},
		{http.MethodGet, e.Path(""), "List every " + e.Label, false, c.index},
		{http.MethodGet, e.Path("new"), "New " + e.Label + " form", false, c.newForm},
		{http.MethodGet, e.Path("register"), "Registration form", false, c.registerForm},
		{http.MethodGet, e.Path("login"), "Login form", false, c.loginForm},
		{http.MethodGet, e.Path("logout"), "End the session", false, c.logout},
		{http.MethodPost, e.Path("register"), "Create a user account", false, c.register},
		{http.MethodPost, e.Path("login"), "Check credentials and start a session", false, c.login},
		{http.MethodPost, e.Path(""), "Create a " + e.Label, false, c.create},
		{http.MethodGet, e.Path(id), "Show one " + e.Label, false, c.show},
		{http.MethodGet, e.Path(id + "/edit"), "Edit form", true, c.recordPage("edit")},
		{http.MethodGet, e.Path(id + "/deactivate"), "Deactivate form", true, c.recordPage("deactivate")},
		{http.MethodGet, e.Path(id + "/activate"), "Activate form", true, c.recordPage("activate")},
		{http.MethodPut, e.Path(id), "Update submitted fields", false, c.update},
		{http.MethodDelete, e.Path(id), "Delete a " + e.Label, true, c.destroy},
	}

	if e.Features.Listings {
		t = append(t,
			endpoint{http.MethodGet, e.Path("all" + e.Prefix), "Every " + e.Label + " as a table", false, c.all},
			endpoint{http.MethodGet, e.Path("deactivated" + e.Prefix), "Deactivated " + e.Label + "s", false, c.deactivated},
		)
	}
	if e.Features.Entries {
		t = append(t,
			endpoint{http.MethodGet, e.Path("list"), "Wishlist entries", false, c.entries},
			endpoint{http.MethodPost, e.Path("list"), "Add a wishlist entry", false, c.addEntry},
		)
	}
	if e.Features.Request {
		t = append(t,
			endpoint{http.MethodGet, e.Path(id + "/request"), "Request form", true, c.recordPage("request")},
		)
	}
	return t
}

// Routes registers the table on r.
func (c *Component) Routes(r chi.Router) {
	for _, ep := range c.table {
		if ep.guarded {
			r.With(c.guard).Method(ep.method, ep.path, ep.handler)
			continue
		}
		r.Method(ep.method, ep.path, ep.handler)
	}
}

// Endpoints lists the table for the API documentation.
func (c *Component) Endpoints() []component.Endpoint {
	out := make([]component.Endpoint, 0, len(c.table))
	for _, ep := range c.table {
		out = append(out, component.Endpoint{
			Method:  ep.method,
			Path:    ep.path,
			Summary: ep.summary,
			Guarded: ep.guarded,
		})
	}
	return out
}
