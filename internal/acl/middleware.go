// internal/acl/middleware.go
//
// Chi middleware that guards mutating and admin pages.
//
// The guard only consults the request identity attached by
// session.Manager.Load, so anonymous requests are turned away before any
// handler or store call runs.

package acl

import (
	"net/http"

	"github.com/yanizio/folio/internal/auth"
	"github.com/yanizio/folio/internal/logger"
)

// RequireLogin redirects anonymous requests to loginPath with 303 See
// Other.  The redirect also covers DELETE and PUT, so browsers follow it
// with a GET.
func RequireLogin(loginPath string) func(http.Handler) http.Handler {
	if loginPath == "" {
		panic("acl.RequireLogin: login path must be supplied")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := auth.UserFrom(r.Context()); !ok {
				logger.FromContext(r.Context()).Debugw("guard redirect",
					"method", r.Method,
					"path", r.URL.Path,
				)
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
