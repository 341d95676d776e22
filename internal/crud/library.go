package crud

import (
	"net/http"

	"github.com/yanizio/folio/internal/logger"
	"github.com/yanizio/folio/internal/record"
)

func (c *Component) all(w http.ResponseWriter, r *http.Request) {
	recs, err := c.app.Store.Records().All(r.Context())
	if err != nil {
		c.fail(w, r, "list", err)
		return
	}
	c.ok("list")
	p := c.page(w, r, "All "+c.e.Label+"s")
	p.Records = recs
	c.render(w, r, http.StatusOK, "all", p)
}

func (c *Component) deactivated(w http.ResponseWriter, r *http.Request) {
	recs, err := c.app.Store.Records().ByStatus(r.Context(), record.StatusDeactivated)
	if err != nil {
		c.fail(w, r, "by_status", err)
		return
	}
	c.ok("by_status")
	p := c.page(w, r, "Deactivated "+c.e.Label+"s")
	p.Records = recs
	c.render(w, r, http.StatusOK, "deactivated", p)
}

func (c *Component) entries(w http.ResponseWriter, r *http.Request) {
	p := c.page(w, r, "Wishlist")
	p.Data = map[string]any{
		"EntryKey":    record.EntryKey,
		"EntryFields": record.EntryFields,
	}
	es, err := c.app.Store.Entries().All(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Errorw("entry list failed", "err", err)
		c.metricsFail("entries")
		p.Error = "Could not load the wishlist."
		c.render(w, r, http.StatusInternalServerError, "list", p)
		return
	}
	c.ok("entries")
	p.Entries = es
	c.render(w, r, http.StatusOK, "list", p)
}

func (c *Component) addEntry(w http.ResponseWriter, r *http.Request) {
	patch, err := c.readPatch(r, record.EntryKey, record.EntryFields)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	en := &record.Entry{}
	en.Apply(patch)

	if err := c.app.Store.Entries().Create(r.Context(), en); err != nil {
		c.failTo(w, r, c.e.Path("list"), "add_entry", err)
		return
	}
	c.ok("add_entry")
	logger.FromContext(r.Context()).Infow("entry added", "id", en.ID, "title", en.Title)
	http.Redirect(w, r, c.e.Path("list"), http.StatusSeeOther)
}
