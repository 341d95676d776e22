package crud

import (
	"net/http"

	"github.com/yanizio/folio/internal/logger"
	"github.com/yanizio/folio/internal/record"
)

func (c *Component) root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, c.e.Path(""), http.StatusFound)
}

// index lists every record.  A failing fetch renders the page empty with
// a 500 rather than redirecting to itself.
func (c *Component) index(w http.ResponseWriter, r *http.Request) {
	p := c.page(w, r, c.e.Label+"s")
	recs, err := c.app.Store.Records().All(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Errorw("list failed", "entity", c.e.Key, "err", err)
		c.metricsFail("list")
		p.Error = "Could not load " + c.e.Label + "s."
		c.render(w, r, http.StatusInternalServerError, "index", p)
		return
	}
	c.ok("list")
	p.Records = recs
	c.render(w, r, http.StatusOK, "index", p)
}

func (c *Component) newForm(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, "new", c.page(w, r, "New "+c.e.Label))
}

func (c *Component) create(w http.ResponseWriter, r *http.Request) {
	patch, err := c.readPatch(r, c.e.Key, c.e.Fields)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	rec := &record.Record{}
	rec.Apply(patch)

	if err := c.app.Store.Records().Create(r.Context(), rec); err != nil {
		logger.FromContext(r.Context()).Errorw("create failed", "entity", c.e.Key, "err", err)
		c.metricsFail("create")
		p := c.page(w, r, "New "+c.e.Label)
		p.Record = rec
		p.Error = "Could not save the " + c.e.Label + ".  Please try again."
		c.render(w, r, http.StatusInternalServerError, "new", p)
		return
	}
	c.ok("create")
	logger.FromContext(r.Context()).Infow("record created", "entity", c.e.Key, "id", rec.ID)
	http.Redirect(w, r, c.e.Path(""), http.StatusSeeOther)
}

func (c *Component) show(w http.ResponseWriter, r *http.Request) {
	rec, err := c.app.Store.Records().Get(r.Context(), idParam(r))
	if err != nil {
		c.fail(w, r, "get", err)
		return
	}
	c.ok("get")
	p := c.page(w, r, rec.Title)
	p.Record = rec
	c.render(w, r, http.StatusOK, "show", p)
}

// recordPage renders a page that only needs one record: edit, activate,
// deactivate, and request.  None of them mutate; their forms submit
// through update or the wishlist.
func (c *Component) recordPage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := c.app.Store.Records().Get(r.Context(), idParam(r))
		if err != nil {
			c.fail(w, r, name, err)
			return
		}
		c.ok("get")
		p := c.page(w, r, rec.Title)
		p.Record = rec
		c.render(w, r, http.StatusOK, name, p)
	}
}

func (c *Component) update(w http.ResponseWriter, r *http.Request) {
	patch, err := c.readPatch(r, c.e.Key, c.e.Fields)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	id := idParam(r)
	rec, err := c.app.Store.Records().Update(r.Context(), id, patch)
	if err != nil {
		c.fail(w, r, "update", err)
		return
	}
	c.ok("update")
	logger.FromContext(r.Context()).Infow("record updated",
		"entity", c.e.Key,
		"id", rec.ID,
		"fields", patch.Keys(),
	)
	http.Redirect(w, r, c.e.Path(rec.ID), http.StatusSeeOther)
}

func (c *Component) destroy(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if err := c.app.Store.Records().Delete(r.Context(), id); err != nil {
		c.fail(w, r, "delete", err)
		return
	}
	c.ok("delete")
	logger.FromContext(r.Context()).Infow("record deleted", "entity", c.e.Key, "id", id)
	c.flash(w, r, c.e.Label+" deleted.")
	http.Redirect(w, r, c.e.Path(""), http.StatusSeeOther)
}
