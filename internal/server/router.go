// internal/server/router.go
//
// Root router.
//
// Middleware order (outermost first):
//
//	RealIP (trusted proxies only) → RequestID → Enrich → AccessLog → Recoverer → Security → ForceHTTPS
//	→ MethodOverride → session Load → CSRF (optional)
//
// AccessLog sits outside Recoverer so panics are logged as 500s.
// MethodOverride must run before routing, which r.Use guarantees.

package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanizio/folio/internal/app"
	"github.com/yanizio/folio/internal/auth"
	"github.com/yanizio/folio/internal/component"
	"github.com/yanizio/folio/internal/crud"
	"github.com/yanizio/folio/internal/docs"
	"github.com/yanizio/folio/internal/health"
	"github.com/yanizio/folio/internal/middleware"
	"github.com/yanizio/folio/web"
)

// Components registers every component the app's entity needs.
func Components(a *app.App) (*component.Registry, error) {
	reg := component.NewRegistry()
	cs := []component.Component{
		crud.New(a, a.Entity),
		health.New(a.Store),
	}
	if a.Entity.Features.APIDocs {
		cs = append(cs, docs.New(a, reg))
	}
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Router builds the root handler.
func Router(a *app.App, reg *component.Registry) http.Handler {
	cfg := a.Config
	r := chi.NewRouter()

	r.Use(middleware.RealIP(a.Proxies))
	r.Use(chimw.RequestID)
	r.Use(a.Info.Enrich)
	r.Use(middleware.AccessLog(a.Log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Security)
	r.Use(middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS))
	r.Use(middleware.MethodOverride)
	r.Use(a.Sessions.Load)
	if cfg.Security.CSRF {
		key := cfg.Security.CSRFKey
		if key == "" {
			key = cfg.Session.Secret
		}
		r.Use(middleware.CSRF(key, cfg.HTTP.ForceHTTPS))
	}

	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))
	if cfg.Security.Captcha {
		r.Handle("/captcha/*", auth.CaptchaHandler())
	}

	reg.Mount(r)
	return r
}
