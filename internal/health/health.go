// Package health serves the liveness check.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/folio/internal/component"
	"github.com/yanizio/folio/internal/logger"
)

// Path of the check.
const Path = "/healthz"

// Pinger is the part of store.Store the check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Component answers 200 when the store responds, 503 otherwise.
type Component struct {
	db      Pinger
	timeout time.Duration
}

// New returns the check over db.
func New(db Pinger) *Component { return &Component{db: db, timeout: 2 * time.Second} }

func (c *Component) Name() string { return "health" }

func (c *Component) Routes(r chi.Router) { r.Get(Path, c.serve) }

func (c *Component) Endpoints() []component.Endpoint {
	return []component.Endpoint{{Method: http.MethodGet, Path: Path, Summary: "Store liveness check"}}
}

func (c *Component) serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), c.timeout)
	defer cancel()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := c.db.Ping(ctx); err != nil {
		logger.FromContext(r.Context()).Warnw("health check failed", "err", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("unavailable\n"))
		return
	}
	w.Write([]byte("ok\n"))
}
