package crud

import (
	"errors"
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/yanizio/folio/internal/auth"
	"github.com/yanizio/folio/internal/head"
	"github.com/yanizio/folio/internal/logger"
	"github.com/yanizio/folio/internal/metrics"
	"github.com/yanizio/folio/internal/requestinfo"
	"github.com/yanizio/folio/internal/store"
	"github.com/yanizio/folio/internal/view"
)

// page seeds the data every template receives.  It pops queued flashes,
// which writes the session cookie, so it must run before any body output.
func (c *Component) page(w http.ResponseWriter, r *http.Request, title string) view.Page {
	p := view.Page{
		Entity:    c.e,
		Head:      head.Defaults(title),
		Flashes:   c.app.Sessions.Flashes(w, r),
		CSRFField: csrf.TemplateField(r),
		Info:      requestinfo.FromContext(r.Context()),
	}
	if u, ok := auth.UserFrom(r.Context()); ok {
		p.CurrentUser = u
	}
	return p
}

// render writes page name with status.  name is a logical page; the
// entity may map it to a different template.
func (c *Component) render(w http.ResponseWriter, r *http.Request, status int, name string, p view.Page) {
	tpl := c.e.View(name)
	if err := c.app.Views.Render(w, status, c.e.Key, tpl, p); err != nil {
		logger.FromContext(r.Context()).Errorw("render failed",
			"entity", c.e.Key,
			"template", tpl,
			"err", err,
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// fail logs a store failure and redirects to the list page with a flash.
func (c *Component) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	c.failTo(w, r, c.e.Path(""), op, err)
}

// failTo is fail with an explicit destination.
func (c *Component) failTo(w http.ResponseWriter, r *http.Request, to, op string, err error) {
	c.metricsFail(op)

	msg := "Something went wrong.  Please try again."
	if errors.Is(err, store.ErrNotFound) {
		msg = c.e.Label + " not found."
		logger.FromContext(r.Context()).Infow("record not found",
			"entity", c.e.Key,
			"op", op,
			"id", idParam(r),
		)
	} else {
		logger.FromContext(r.Context()).Errorw("store op failed",
			"entity", c.e.Key,
			"op", op,
			"id", idParam(r),
			"err", err,
		)
	}
	c.flash(w, r, msg)
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// flash queues msg; a cookie failure is logged and otherwise ignored.
func (c *Component) flash(w http.ResponseWriter, r *http.Request, msg string) {
	if err := c.app.Sessions.AddFlash(w, r, msg); err != nil {
		logger.FromContext(r.Context()).Warnw("flash not saved", "err", err)
	}
}

// ok counts a successful store operation.
func (c *Component) ok(op string) {
	metrics.RecordOps.WithLabelValues(c.e.Key, op).Inc()
}

func (c *Component) metricsFail(op string) {
	metrics.StoreErrors.WithLabelValues(c.e.Key, op).Inc()
}
