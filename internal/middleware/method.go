package middleware

import (
	"net/http"
	"strings"
)

// MethodField is the hidden form input HTML forms use to send PUT or
// DELETE.
const MethodField = "_method"

// MethodHeader is honoured for non-browser clients.
const MethodHeader = "X-HTTP-Method-Override"

var overridable = map[string]bool{
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// MethodOverride rewrites a POST into PUT, PATCH, or DELETE when the form
// field or header asks for it.  It must run before routing.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			m := r.Header.Get(MethodHeader)
			if m == "" {
				m = r.PostFormValue(MethodField)
			}
			m = strings.ToUpper(strings.TrimSpace(m))
			if overridable[m] {
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}
