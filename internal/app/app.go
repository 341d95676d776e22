// internal/app/app.go
//
// Process-wide dependencies.
//
// Context
// -------
// One binary serves one entity.  New wires everything a handler needs
// from the loaded Config: the store for the configured driver, the
// session manager, the auth service with its login limiter, the theme
// renderer, the sanitizer, and the request enricher.  Handlers receive
// the *App and never reach for globals.
//
// Close releases what New opened, in reverse order.  Reload (SIGHUP)
// re-validates the config file and purges the template cache.
//
// Notes
// -----
//   • Relative theme, log, and GeoIP paths resolve against Paths.Root.
//   • Oxford commas, two spaces after periods.

package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"github.com/yanizio/folio/internal/auth"
	"github.com/yanizio/folio/internal/config"
	"github.com/yanizio/folio/internal/middleware"
	"github.com/yanizio/folio/internal/record"
	"github.com/yanizio/folio/internal/requestinfo"
	"github.com/yanizio/folio/internal/sanitize"
	"github.com/yanizio/folio/internal/session"
	"github.com/yanizio/folio/internal/store"
	"github.com/yanizio/folio/internal/theme"
	"github.com/yanizio/folio/internal/view"
	"github.com/yanizio/folio/web"
)

// App bundles the dependencies shared by every component.
type App struct {
	Config    *config.Config
	Log       *zap.SugaredLogger
	Entity    record.Entity
	Store     store.Store
	Sessions  *session.Manager
	Auth      *auth.Service
	Limiter   *auth.Limiter
	Views     *view.Renderer
	Sanitizer *sanitize.Sanitizer
	Info      *requestinfo.Enricher
	Proxies   []*net.IPNet
}

// New builds the App for cfg.
func New(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (*App, error) {
	ent, err := record.Lookup(cfg.App.Entity)
	if err != nil {
		return nil, err
	}

	st, err := OpenStore(ctx, cfg.Database, ent, cfg.Paths.Root)
	if err != nil {
		return nil, err
	}

	a, err := Assemble(cfg, log, ent, st)
	if err != nil {
		_ = st.Close(ctx)
		return nil, err
	}
	log.Infow("app ready",
		"entity", ent.Key,
		"prefix", ent.Path(""),
		"driver", cfg.Database.Driver,
	)
	return a, nil
}

// Assemble wires an App around an already opened store.  Tests use it
// with an in-memory backend.
func Assemble(cfg *config.Config, log *zap.SugaredLogger, ent record.Entity, st store.Store) (*App, error) {
	th, err := theme.New(resolve(cfg.Paths.Root, cfg.Theme.Dir), web.Templates())
	if err != nil {
		return nil, err
	}
	if o, _ := th.Overrides(); len(o) > 0 {
		log.Infow("theme overrides", "dir", th.Dir, "files", o)
	}

	proxies, err := middleware.ParseProxies(cfg.HTTP.TrustedProxies)
	if err != nil {
		return nil, err
	}

	info, err := requestinfo.New(resolve(cfg.Paths.Root, cfg.GeoIP.DBPath))
	if err != nil {
		return nil, err
	}

	san := sanitize.New()
	return &App{
		Config:    cfg,
		Log:       log,
		Entity:    ent,
		Store:     st,
		Sessions:  session.New(cfg.Session.Secret, cfg.Session.MaxAge, cfg.HTTP.ForceHTTPS),
		Auth:      auth.NewService(st.Users(), auth.DefaultHasher),
		Limiter:   auth.NewLimiter(),
		Views:     view.New(th, san),
		Sanitizer: san,
		Info:      info,
		Proxies:   proxies,
	}, nil
}

// Close releases the store and the GeoIP reader.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if err := a.Info.Close(); err != nil {
		errs = append(errs, fmt.Errorf("geoip: %w", err))
	}
	if err := a.Store.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}
	return errors.Join(errs...)
}

// Reload re-reads the configuration and drops every parsed template, so
// edits under the theme directory show up on the next request.  The new
// config is validated but not swapped in: settings the App was built from
// need a restart, and each one that changed is logged.
func (a *App) Reload(ctx context.Context) error {
	if err := config.Reload(ctx); err != nil {
		return err
	}
	a.Views.Purge()
	for _, key := range restartOnly(a.Config, config.Get()) {
		a.Log.Warnw("config changed; restart to apply", "key", key)
	}
	a.Log.Infow("config reloaded", "file", a.Config.Paths.File)
	return nil
}

// restartOnly names the settings that differ between cur and next.
func restartOnly(cur, next *config.Config) []string {
	if next == nil {
		return nil
	}
	var keys []string
	diff := func(key string, changed bool) {
		if changed {
			keys = append(keys, key)
		}
	}
	diff("app.entity", cur.App.Entity != next.App.Entity)
	diff("http.listen_addr", cur.HTTP.ListenAddr != next.HTTP.ListenAddr)
	diff("http.force_https", cur.HTTP.ForceHTTPS != next.HTTP.ForceHTTPS)
	diff("http.trusted_proxies", !slices.Equal(cur.HTTP.TrustedProxies, next.HTTP.TrustedProxies))
	diff("session", cur.Session != next.Session)
	diff("database", cur.Database != next.Database)
	diff("security", cur.Security != next.Security)
	diff("log", cur.Log != next.Log)
	diff("geoip.db_path", cur.GeoIP != next.GeoIP)
	diff("theme.dir", cur.Theme != next.Theme)
	return keys
}

// resolve anchors a relative path at root.  Empty stays empty.
func resolve(root, p string) string {
	if p == "" || filepath.IsAbs(p) || root == "" {
		return p
	}
	return filepath.Join(root, p)
}
