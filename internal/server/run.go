// internal/server/run.go
//
// Process life-cycle shared by cmd/blog and cmd/library.
//
//  1. Load configuration (conf/<app>.yaml, env, Vault).
//  2. Start the daily rotating logger.
//  3. Build the App: store, sessions, renderer, enricher.
//  4. Register components and build the router.
//  5. Serve until ctx is cancelled, then shut down gracefully.  SIGHUP
//     reloads the config and purges the template cache in between.

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/yanizio/folio/internal/app"
	"github.com/yanizio/folio/internal/config"
	"github.com/yanizio/folio/internal/logger"
)

// Options tune Run.
type Options struct {
	// Tee duplicates log output to the console.
	Tee bool
}

// Run serves appName until ctx is done.
func Run(ctx context.Context, appName string, opt Options) error {
	cfg, err := config.Load(ctx, appName)
	if err != nil {
		return err
	}

	logDir := cfg.Log.Dir
	if !filepath.IsAbs(logDir) {
		logDir = filepath.Join(cfg.Paths.Root, logDir)
	}
	log, err := logger.New(logDir, cfg.Log.Level, opt.Tee)
	if err != nil {
		return fmt.Errorf("start logger: %w", err)
	}
	defer log.Sync()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Errorw("app init failed", "err", err)
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := a.Close(closeCtx); err != nil {
			log.Warnw("close failed", "err", err)
		}
	}()

	reg, err := Components(a)
	if err != nil {
		return err
	}
	srv := New(cfg.HTTP.ListenAddr, Router(a, reg))

	errCh := make(chan error, 1)
	go func() {
		log.Infow("listening", "addr", cfg.HTTP.ListenAddr, "app", cfg.App.Name)
		errCh <- srv.ListenAndServe()
	}()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

serve:
	for {
		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			log.Errorw("http server failed", "err", err)
			return err
		case <-hup:
			if err := a.Reload(ctx); err != nil {
				log.Errorw("config reload failed", "err", err)
			}
		case <-ctx.Done():
			break serve
		}
	}

	log.Infow("shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
