package crud

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/folio/internal/form"
	"github.com/yanizio/folio/internal/record"
)

// readPatch decodes the submitted key[field] inputs and sanitizes them.
// Missing inputs stay out of the patch, so updates leave those fields
// alone.
func (c *Component) readPatch(r *http.Request, key string, fields []record.Field) (record.Patch, error) {
	p, err := form.Read(r, key, fields)
	if err != nil {
		return nil, err
	}
	return c.app.Sanitizer.Patch(p), nil
}

func idParam(r *http.Request) string { return chi.URLParam(r, "id") }
