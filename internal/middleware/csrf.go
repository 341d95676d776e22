package middleware

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/csrf"
)

// CSRF protects every unsafe method with a per-session token.  The key is
// derived from secret.  secure=false marks requests as plain HTTP, which
// gorilla/csrf needs to skip its TLS-only Referer check in development.
// Forms render the token with csrf.TemplateField.
func CSRF(secret string, secure bool) func(http.Handler) http.Handler {
	key := sha256.Sum256([]byte(secret + "csrf"))
	protect := csrf.Protect(key[:],
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.FieldName("csrf_token"),
		csrf.SameSite(csrf.SameSiteLaxMode),
	)
	return func(next http.Handler) http.Handler {
		h := protect(next)
		if secure {
			return h
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}
